// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dof

import (
	"github.com/cpmech/gofea/msh"
	"github.com/cpmech/gosl/chk"
)

// Map holds per-cell local dof index arrays for one function space axis
type Map struct {
	Imap  *IndexMap // local-to-global index map
	Cells [][]int   // [ncells] local dof indices per cell
	Verts [][]int   // [nverts] local dof indices at each vertex
}

// CellDofs returns the local dof indices of cell cid
func (o *Map) CellDofs(cid int) []int {
	if cid < 0 || cid >= len(o.Cells) {
		chk.Panic("cell id %d is out of range. ncells=%d", cid, len(o.Cells))
	}
	return o.Cells[cid]
}

// VertDofs returns the local dof indices sitting at local vertex lv
func (o *Map) VertDofs(lv int) []int {
	return o.Verts[lv]
}

// Space represents a discrete function space: a mesh plus a dof map
type Space struct {
	Msh *msh.Mesh // mesh (this partition's local view)
	Dm  *Map      // dof map
}

// Contains tells whether other is this space or a space sharing its dof map
func (o *Space) Contains(other *Space) bool {
	return o == other || o.Dm == other.Dm
}

// NewP1Space builds a scalar P1 (one dof per vertex) function space over the
// local mesh m. Dof numbering follows the mesh's owned-first vertex numbering,
// so the index map inherits the mesh partition layout directly.
func NewP1Space(m *msh.Mesh) *Space {
	imap := &IndexMap{
		N:      m.NvertsOwned,
		Offset: m.VertOffset,
		Ntot:   m.NvertsGlob,
		Bs:     1,
	}
	for _, v := range m.Verts[m.NvertsOwned:] {
		imap.Ghosts = append(imap.Ghosts, v.Id)
	}
	dm := &Map{Imap: imap}
	dm.Cells = make([][]int, len(m.Cells))
	for i, c := range m.Cells {
		dm.Cells[i] = c.Verts
	}
	dm.Verts = make([][]int, len(m.Verts))
	for i := range m.Verts {
		dm.Verts[i] = []int{i}
	}
	return &Space{Msh: m, Dm: dm}
}
