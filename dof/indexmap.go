// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package dof implements dof index maps, cell dof maps and function spaces
package dof

import "github.com/cpmech/gosl/chk"

// MapSize selects which part of an IndexMap a size query refers to
type MapSize int

const (
	Owned MapSize = iota // owned dofs only
	All                  // owned + ghost dofs
)

// IndexMap maps this partition's local dof indices to global indices.
// Local indices [0,N) are owned and map to the contiguous global range
// [Offset,Offset+N); local indices [N,N+len(Ghosts)) are ghosts (shared
// dofs owned by another partition) and map to Ghosts[l-N].
type IndexMap struct {
	N      int   // number of owned dofs
	Offset int   // global index of first owned dof
	Ghosts []int // global indices of ghost dofs
	Ntot   int   // total number of dofs over all partitions
	Bs     int   // block size
}

// Size returns the number of owned (Owned) or owned+ghost (All) dofs
func (o *IndexMap) Size(which MapSize) int {
	if which == Owned {
		return o.N
	}
	return o.N + len(o.Ghosts)
}

// BlockSize returns the block size
func (o *IndexMap) BlockSize() int {
	if o.Bs < 1 {
		return 1
	}
	return o.Bs
}

// LocalToGlobal translates a local dof index (owned or ghost) to its global index
func (o *IndexMap) LocalToGlobal(l int) int {
	if l < o.N {
		return o.Offset + l
	}
	if l < o.N+len(o.Ghosts) {
		return o.Ghosts[l-o.N]
	}
	chk.Panic("local index %d is out of range. size(all)=%d", l, o.Size(All))
	return -1
}

// GlobalToLocal translates a global dof index to this partition's local
// index. Returns -1 if the dof is neither owned nor a ghost here.
func (o *IndexMap) GlobalToLocal(g int) int {
	if g >= o.Offset && g < o.Offset+o.N {
		return g - o.Offset
	}
	for i, gg := range o.Ghosts {
		if gg == g {
			return o.N + i
		}
	}
	return -1
}

// Owns tells whether the global dof g is owned by this partition
func (o *IndexMap) Owns(g int) bool {
	return g >= o.Offset && g < o.Offset+o.N
}

// BlockOffsets returns the running offsets of a sequence of blocks within a
// combined local index space: offsets[i] is the sum of the ALL (owned+ghost)
// sizes of the preceding blocks. The result is computed in a single
// left-to-right pass before any insertion begins.
func BlockOffsets(maps []*IndexMap) (offsets []int) {
	offsets = make([]int, len(maps))
	for i := 1; i < len(maps); i++ {
		offsets[i] = offsets[i-1] + maps[i-1].Size(All)
	}
	return
}

// GlobalOffsets returns the offsets of a sequence of blocks within the
// combined GLOBAL numbering: fields are concatenated by total dof count.
func GlobalOffsets(maps []*IndexMap) (offsets []int) {
	offsets = make([]int, len(maps))
	for i := 1; i < len(maps); i++ {
		offsets[i] = offsets[i-1] + maps[i-1].Ntot
	}
	return
}

// FieldGlobalIndex resolves a field-local global dof index into the single
// shared global numbering of a monolithic block system
func FieldGlobalIndex(maps []*IndexMap, field, gidx int) int {
	if field < 0 || field >= len(maps) {
		chk.Panic("field index %d is out of range. nfields=%d", field, len(maps))
	}
	return GlobalOffsets(maps)[field] + gidx
}
