// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gofea/dof"
	"github.com/cpmech/gofea/lin"
	"github.com/cpmech/gosl/chk"
)

// initMatrix allocates an empty matrix container with the requested
// topology, shaped by the bilinear form grid's function spaces
func (o *Assembler) initMatrix(A *lin.Matrix, kind lin.Kind, blockMatrix bool) (err error) {

	// nested: one independent sub-matrix per non-nil block
	if kind == lin.KindNest {
		subs := make([][]*lin.Matrix, len(o.A))
		for i, row := range o.A {
			subs[i] = make([]*lin.Matrix, len(row))
			for j, a := range row {
				if a == nil {
					continue
				}
				sub := new(lin.Matrix)
				sub.InitFlat(
					[]*dof.IndexMap{a.Space(0).Dm.Imap},
					[]*dof.IndexMap{a.Space(1).Dm.Imap},
				)
				subs[i][j] = sub
			}
		}
		A.InitNest(subs)
		return
	}

	// monolithic block: one flat container over all fields
	if blockMatrix {
		rmaps := make([]*dof.IndexMap, len(o.A))
		for i, row := range o.A {
			for _, a := range row {
				if a != nil {
					rmaps[i] = a.Space(0).Dm.Imap
					break
				}
			}
			if rmaps[i] == nil {
				return chk.Err("row %d of the bilinear form grid has no non-nil block", i)
			}
		}
		cmaps := make([]*dof.IndexMap, len(o.A[0]))
		for j := range o.A[0] {
			for _, row := range o.A {
				if row[j] != nil {
					cmaps[j] = row[j].Space(1).Dm.Imap
					break
				}
			}
			if cmaps[j] == nil {
				return chk.Err("column %d of the bilinear form grid has no non-nil block", j)
			}
		}
		A.InitFlat(rmaps, cmaps)
		return
	}

	// single field
	a := o.A[0][0]
	if a == nil {
		return chk.Err("single-field assembly needs a non-nil bilinear form")
	}
	A.InitFlat(
		[]*dof.IndexMap{a.Space(0).Dm.Imap},
		[]*dof.IndexMap{a.Space(1).Dm.Imap},
	)
	return
}

// initVector allocates an empty vector container with the requested
// topology, shaped by the linear forms' function spaces
func (o *Assembler) initVector(b *lin.Vector, kind lin.Kind, blockVector bool) (err error) {

	// nested: one independent sub-vector per non-nil field
	if kind == lin.KindNest {
		subs := make([]*lin.Vector, len(o.L))
		for i, l := range o.L {
			if l == nil {
				continue
			}
			sub := new(lin.Vector)
			sub.InitFlat([]*dof.IndexMap{l.Space(0).Dm.Imap}, o.Comm)
			subs[i] = sub
		}
		b.InitNest(subs)
		return
	}

	// monolithic block: one flat container over all fields
	if blockVector {
		maps := make([]*dof.IndexMap, len(o.L))
		for i, l := range o.L {
			if l == nil {
				return chk.Err("field %d of the linear form list is nil; monolithic block vectors need all fields", i)
			}
			maps[i] = l.Space(0).Dm.Imap
		}
		b.InitFlat(maps, o.Comm)
		return
	}

	// single field
	if o.L[0] == nil {
		return chk.Err("single-field assembly needs a non-nil linear form")
	}
	b.InitFlat([]*dof.IndexMap{o.L[0].Space(0).Dm.Imap}, o.Comm)
	return
}
