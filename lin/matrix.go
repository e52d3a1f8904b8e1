// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lin

import (
	"github.com/cpmech/gofea/dof"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/james-bowman/sparse"
)

// Matrix is the global sparse matrix container. A flat matrix holds one
// combined local index space per axis: the fields' (owned+ghost) index
// ranges concatenated left-to-right. A nested matrix holds an independent
// flat sub-matrix per block, each with its own index space.
//
// Insertion is local-indexed; the matrix translates local indices to the
// shared global numbering on every write. The mutable store accepts both
// additive and overwrite insertion; Apply(Final) aggregates it into a
// compressed-column form for downstream solvers.
type Matrix struct {

	// flat storage
	rmaps []*dof.IndexMap // row-axis field index maps
	cmaps []*dof.IndexMap // column-axis field index maps
	roffs []int           // row block offsets in the combined local space
	coffs []int           // column block offsets in the combined local space
	rgoff []int           // row block offsets in the combined global numbering
	cgoff []int           // column block offsets in the combined global numbering
	store *sparse.DOK     // mutable global-indexed store
	cc    *la.CCMatrix    // finalized compressed form

	// nested storage
	subs [][]*Matrix

	kind  Kind
	alloc bool
}

// InitFlat initialises an empty matrix as a flat container. With one map
// per axis this is a single-field matrix; with several maps it is a
// monolithic block matrix whose offsets are computed by a single
// left-to-right pass before any insertion.
func (o *Matrix) InitFlat(rmaps, cmaps []*dof.IndexMap) {
	if o.alloc {
		chk.Panic("matrix is already initialised")
	}
	if len(rmaps) < 1 || len(cmaps) < 1 {
		chk.Panic("flat matrix needs at least one index map per axis")
	}
	o.rmaps, o.cmaps = rmaps, cmaps
	o.roffs = dof.BlockOffsets(rmaps)
	o.coffs = dof.BlockOffsets(cmaps)
	o.rgoff = dof.GlobalOffsets(rmaps)
	o.cgoff = dof.GlobalOffsets(cmaps)
	gr := o.rgoff[len(rmaps)-1] + rmaps[len(rmaps)-1].Ntot
	gc := o.cgoff[len(cmaps)-1] + cmaps[len(cmaps)-1].Ntot
	o.store = sparse.NewDOK(gr, gc)
	o.kind = KindFlat
	o.alloc = true
}

// InitNest initialises an empty matrix as a nested composite. Entries of
// subs may be nil for structurally absent blocks.
func (o *Matrix) InitNest(subs [][]*Matrix) {
	if o.alloc {
		chk.Panic("matrix is already initialised")
	}
	if len(subs) < 1 || len(subs[0]) < 1 {
		chk.Panic("nested matrix needs at least one block")
	}
	o.subs = subs
	o.kind = KindNest
	o.alloc = true
}

// Empty tells whether the container has not been initialised yet
func (o *Matrix) Empty() bool { return !o.alloc }

// Kind returns the storage kind. Must not be called on an empty container.
func (o *Matrix) Kind() Kind {
	if !o.alloc {
		chk.Panic("empty matrix has no storage kind")
	}
	return o.kind
}

// Sub returns the (i,j) sub-matrix of a nested container; may be nil
func (o *Matrix) Sub(i, j int) *Matrix {
	if o.kind != KindNest {
		chk.Panic("Sub requires a nested matrix")
	}
	return o.subs[i][j]
}

// NumBlocks returns the number of row and column blocks
func (o *Matrix) NumBlocks() (nrow, ncol int) {
	if o.kind == KindNest {
		return len(o.subs), len(o.subs[0])
	}
	return len(o.rmaps), len(o.cmaps)
}

// View returns an index-scoped view into block (i,j) of a flat matrix.
// The view exposes the same add/set contract but offsets every index by
// the block offsets; it must not outlive the assembly call that created it.
func (o *Matrix) View(i, j int) *MatView {
	if o.kind != KindFlat {
		chk.Panic("View requires a flat matrix")
	}
	return &MatView{m: o, roff: o.roffs[i], coff: o.coffs[j]}
}

// AddLocal adds a dense row-major block at the given combined-local indices
func (o *Matrix) AddLocal(vals []float64, rows, cols []int) {
	o.insert(vals, rows, cols, true)
}

// SetLocal overwrites entries at the given combined-local indices
func (o *Matrix) SetLocal(vals []float64, rows, cols []int) {
	o.insert(vals, rows, cols, false)
}

func (o *Matrix) insert(vals []float64, rows, cols []int, add bool) {
	if o.kind != KindFlat {
		chk.Panic("local insertion requires a flat matrix")
	}
	if o.cc != nil {
		chk.Panic("cannot insert after Apply(Final)")
	}
	nc := len(cols)
	for i, r := range rows {
		gr := localToGlobal(o.rmaps, o.roffs, o.rgoff, r)
		for j, c := range cols {
			v := vals[i*nc+j]
			gc := localToGlobal(o.cmaps, o.coffs, o.cgoff, c)
			if add {
				if v != 0 {
					o.store.Set(gr, gc, o.store.At(gr, gc)+v)
				}
			} else {
				o.store.Set(gr, gc, v)
			}
		}
	}
}

// Apply aggregates buffered writes. Final builds the compressed form; it
// must be called exactly once, after which the matrix is read-only.
func (o *Matrix) Apply(mode ApplyMode) {
	if o.kind == KindNest {
		for _, row := range o.subs {
			for _, sub := range row {
				if sub != nil {
					sub.Apply(mode)
				}
			}
		}
		return
	}
	if mode == Flush {
		return // writes to the store are immediate
	}
	if o.cc != nil {
		chk.Panic("Apply(Final) called twice")
	}
	gr, gc := o.store.Dims()
	t := new(la.Triplet)
	t.Init(gr, gc, imax(o.store.NNZ(), 1))
	o.store.DoNonZero(func(i, j int, v float64) {
		t.Put(i, j, v)
	})
	o.cc = t.ToMatrix(nil)
}

// Zero clears all entries and reopens a finalized matrix for insertion,
// keeping the container's shape. Nested containers recurse into subs.
func (o *Matrix) Zero() {
	if !o.alloc {
		chk.Panic("cannot zero an empty matrix")
	}
	if o.kind == KindNest {
		for _, row := range o.subs {
			for _, sub := range row {
				if sub != nil {
					sub.Zero()
				}
			}
		}
		return
	}
	gr, gc := o.store.Dims()
	o.store = sparse.NewDOK(gr, gc)
	o.cc = nil
}

// CC returns the finalized compressed-column form
func (o *Matrix) CC() *la.CCMatrix {
	if o.cc == nil {
		chk.Panic("matrix must be finalized with Apply(Final) first")
	}
	return o.cc
}

// Dense returns this partition's contributions as a dense global-sized
// matrix. Shared rows still need cross-partition summation; meant for
// verification and debugging.
func (o *Matrix) Dense() [][]float64 {
	if o.kind != KindFlat {
		chk.Panic("Dense requires a flat matrix")
	}
	gr, gc := o.store.Dims()
	d := la.MatAlloc(gr, gc)
	o.store.DoNonZero(func(i, j int, v float64) {
		d[i][j] = v
	})
	return d
}

// MatView is an index-scoped view into one block of a flat matrix.
// Ownership of storage stays with the parent container.
type MatView struct {
	m          *Matrix
	roff, coff int
}

// AddLocal adds a dense row-major block at block-local indices
func (o *MatView) AddLocal(vals []float64, rows, cols []int) {
	o.m.AddLocal(vals, o.shift(rows, o.roff), o.shift(cols, o.coff))
}

// SetLocal overwrites entries at block-local indices
func (o *MatView) SetLocal(vals []float64, rows, cols []int) {
	o.m.SetLocal(vals, o.shift(rows, o.roff), o.shift(cols, o.coff))
}

func (o *MatView) shift(idx []int, off int) []int {
	s := make([]int, len(idx))
	for i, l := range idx {
		s[i] = l + off
	}
	return s
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// localToGlobal translates a combined-local index to the shared global numbering
func localToGlobal(maps []*dof.IndexMap, offs, goffs []int, l int) int {
	b := len(offs) - 1
	for b > 0 && l < offs[b] {
		b--
	}
	return goffs[b] + maps[b].LocalToGlobal(l-offs[b])
}

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
