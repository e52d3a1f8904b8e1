// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gofea/dof"
	"github.com/cpmech/gofea/lin"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// ApplyBC modifies the right-hand-side vector b for the essential boundary
// conditions of the bilinear form a by lifting: for every cell touching a
// boundary dof on the trial (column) axis, the local tensor is recomputed
// and column*value is subtracted from the local right-hand side, which is
// then scattered additively. The matrix's boundary rows are never touched.
//
// b must be a flat vector (pass a nested container's sub-vector directly);
// for monolithic block vectors the field is resolved from a's test space.
func (o *Assembler) ApplyBC(b *lin.Vector, a Form) (err error) {

	// checks
	if b.Empty() {
		return chk.Err("cannot apply boundary conditions to an empty vector")
	}
	if b.Kind() != lin.KindFlat {
		return chk.Err("ApplyBC requires a flat vector; pass nested sub-vectors directly")
	}
	if a.Rank() != 2 {
		return chk.Err("ApplyBC needs a bilinear form. rank %d is invalid", a.Rank())
	}

	// boundary values on the trial axis
	bvals, err := collectBCValues(a.Space(1), o.Bcs, o.Comm)
	if err != nil {
		return
	}

	// field offset of a's test space within b
	off, err := fieldOffset(b, a.Space(0).Dm.Imap)
	if err != nil {
		return
	}

	// iterate this partition's cells
	mesh := a.Mesh()
	dm0, dm1 := a.Space(0).Dm, a.Space(1).Dm
	var Ae, be []float64
	var rows []int
	for _, c := range mesh.Cells {
		if c.Ghost {
			continue
		}

		// skip cells not touching any boundary dof
		dmap1 := dm1.CellDofs(c.Id)
		hasBc := false
		for _, ld := range dmap1 {
			if _, ok := bvals[dm1.Imap.LocalToGlobal(ld)]; ok {
				hasBc = true
				break
			}
		}
		if !hasBc {
			continue
		}

		// recompute local tensor
		x := mesh.CoordsMatrix(c)
		dmap0 := dm0.CellDofs(c.Id)
		n0, n1 := len(dmap0), len(dmap1)
		if len(Ae) < n0*n1 {
			Ae = make([]float64, n0*n1)
			be = make([]float64, n0)
			rows = make([]int, n0)
		}
		la.VecFill(Ae[:n0*n1], 0)
		err = a.Tabulate(Ae[:n0*n1], c, x)
		if err != nil {
			return chk.Err("tabulation of cell %d failed:\n%v", c.Id, err)
		}

		// be -= column * prescribed value, for every boundary column
		la.VecFill(be[:n0], 0)
		for j, ld := range dmap1 {
			if v, ok := bvals[dm1.Imap.LocalToGlobal(ld)]; ok {
				for i := 0; i < n0; i++ {
					be[i] -= Ae[i*n1+j] * v
				}
			}
		}

		// additive scatter at the test-axis local indices
		for i, ld := range dmap0 {
			rows[i] = off + ld
		}
		b.AddLocal(be[:n0], rows[:n0])
	}

	// sum staged ghost contributions into their owners
	b.GhostUpdateBegin()
	b.GhostUpdateEnd()
	return
}

// SetBC overwrites the entries of b at the boundary dofs of the linear
// form's function space with the prescribed values, then finalizes b.
// Calling SetBC twice with the same conditions yields the same vector.
func (o *Assembler) SetBC(b *lin.Vector, l Form) (err error) {

	// checks
	if b.Empty() {
		return chk.Err("cannot set boundary conditions on an empty vector")
	}
	if b.Kind() != lin.KindFlat {
		return chk.Err("SetBC requires a flat vector; pass nested sub-vectors directly")
	}

	// boundary values
	bvals, err := collectBCValues(l.Space(0), o.Bcs, o.Comm)
	if err != nil {
		return
	}

	// field offset of l's space within b
	off, err := fieldOffset(b, l.Space(0).Dm.Imap)
	if err != nil {
		return
	}

	// overwrite entries
	imap := l.Space(0).Dm.Imap
	rows := make([]int, 0, len(bvals))
	vals := make([]float64, 0, len(bvals))
	for g, v := range bvals {
		ld := imap.GlobalToLocal(g)
		if ld < 0 {
			continue
		}
		rows = append(rows, off+ld)
		vals = append(vals, v)
	}
	b.SetLocal(vals, rows)
	b.Apply()
	return
}

// fieldOffset locates the field of b using the given index map and returns
// its offset within b's combined local space
func fieldOffset(b *lin.Vector, imap *dof.IndexMap) (off int, err error) {
	for i, m := range b.Maps() {
		if m == imap {
			return b.Offsets()[i], nil
		}
	}
	return 0, chk.Err("vector does not carry the form's function space")
}
