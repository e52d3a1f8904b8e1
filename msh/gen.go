// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import "github.com/cpmech/gosl/chk"

// boundary tags used by generated meshes
const (
	TagBottom = -10 // edge y=0
	TagRight  = -11 // edge x=1
	TagTop    = -12 // edge y=1
	TagLeft   = -13 // edge x=0
	TagBryVer = -100
)

// UnitSquare generates a structured triangular (tri3) mesh of the unit square.
//  nx, ny -- number of quads along x and y; each quad is split into 2 triangles
// Boundary edges are tagged with TagBottom, TagRight, TagTop and TagLeft and
// boundary vertices with TagBryVer.
func UnitSquare(nx, ny int) (o *Mesh) {
	if nx < 1 || ny < 1 {
		chk.Panic("UnitSquare needs nx and ny greater than zero. nx=%d, ny=%d", nx, ny)
	}

	// vertices
	o = new(Mesh)
	o.Verts = make([]*Vert, (nx+1)*(ny+1))
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			id := j*(nx+1) + i
			tag := 0
			if i == 0 || i == nx || j == 0 || j == ny {
				tag = TagBryVer
			}
			o.Verts[id] = &Vert{
				Id:  id,
				Tag: tag,
				C:   []float64{float64(i) / float64(nx), float64(j) / float64(ny)},
			}
		}
	}

	// cells: split each quad along its first diagonal
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			v0 := j*(nx+1) + i
			v1 := v0 + 1
			v2 := v0 + nx + 2
			v3 := v0 + nx + 1

			// lower triangle (v0,v1,v2)
			ftA := []int{0, 0, 0}
			if j == 0 {
				ftA[0] = TagBottom
			}
			if i == nx-1 {
				ftA[1] = TagRight
			}
			o.Cells = append(o.Cells, &Cell{
				Id: len(o.Cells), Type: "tri3", Verts: []int{v0, v1, v2}, FTags: ftA,
			})

			// upper triangle (v0,v2,v3)
			ftB := []int{0, 0, 0}
			if j == ny-1 {
				ftB[1] = TagTop
			}
			if i == 0 {
				ftB[2] = TagLeft
			}
			o.Cells = append(o.Cells, &Cell{
				Id: len(o.Cells), Type: "tri3", Verts: []int{v0, v2, v3}, FTags: ftB,
			})
		}
	}

	// serial mesh: this partition owns everything
	o.NvertsOwned = len(o.Verts)
	o.NvertsGlob = len(o.Verts)
	err := o.CalcDerived()
	if err != nil {
		chk.Panic("UnitSquare: %v", err)
	}
	return
}
