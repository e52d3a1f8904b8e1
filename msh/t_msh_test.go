// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"sort"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_msh01(tst *testing.T) {

	chk.PrintTitle("msh01. read mesh file")

	m, err := ReadMsh("data", "square2.msh")
	if err != nil {
		tst.Errorf("ReadMsh failed:\n%v", err)
		return
	}
	chk.IntAssert(len(m.Verts), 4)
	chk.IntAssert(len(m.Cells), 2)
	chk.IntAssert(m.Ndim, 2)
	chk.IntAssert(m.NvertsOwned, 4)
	chk.IntAssert(m.NvertsGlob, 4)
	chk.Scalar(tst, "Xmin", 1e-17, m.Xmin, 0.0)
	chk.Scalar(tst, "Xmax", 1e-17, m.Xmax, 1.0)
	chk.Scalar(tst, "Ymin", 1e-17, m.Ymin, 0.0)
	chk.Scalar(tst, "Ymax", 1e-17, m.Ymax, 1.0)

	// tagged faces
	bottom := m.FaceTag2verts[-10]
	sort.Ints(bottom)
	chk.Ints(tst, "verts @ bottom", bottom, []int{0, 1})
	left := m.FaceTag2verts[-13]
	sort.Ints(left)
	chk.Ints(tst, "verts @ left", left, []int{0, 3})

	// tagged vertices
	chk.IntAssert(len(m.VertTag2verts[-100]), 4)
}

func Test_msh02(tst *testing.T) {

	chk.PrintTitle("msh02. generated unit square")

	m := UnitSquare(2, 2)
	chk.IntAssert(len(m.Verts), 9)
	chk.IntAssert(len(m.Cells), 8)
	chk.IntAssert(m.NvertsOwned, 9)
	chk.IntAssert(m.NvertsGlob, 9)
	chk.Scalar(tst, "Xmax", 1e-17, m.Xmax, 1.0)
	chk.Scalar(tst, "Ymax", 1e-17, m.Ymax, 1.0)

	// boundary edge tags
	for tag, want := range map[int][]int{
		TagBottom: {0, 1, 2},
		TagRight:  {2, 5, 8},
		TagTop:    {6, 7, 8},
		TagLeft:   {0, 3, 6},
	} {
		verts := m.FaceTag2verts[tag]
		sort.Ints(verts)
		chk.Ints(tst, "verts @ tagged edge", verts, want)
	}

	// all boundary vertices tagged; interior vertex untagged
	chk.IntAssert(len(m.VertTag2verts[TagBryVer]), 8)
	chk.IntAssert(m.Verts[4].Tag, 0)

	// coordinate matrix of first cell
	x := m.CoordsMatrix(m.Cells[0])
	chk.Matrix(tst, "x cell 0", 1e-17, x, [][]float64{
		{0, 0.5, 0.5},
		{0, 0, 0.5},
	})
}

func Test_msh03(tst *testing.T) {

	chk.PrintTitle("msh03. invalid meshes")

	m := new(Mesh)
	m.Verts = []*Vert{{Id: 0, C: []float64{0, 0}}}
	err := m.CalcDerived()
	if err == nil {
		tst.Errorf("CalcDerived should have failed with too few vertices")
		return
	}

	m = new(Mesh)
	m.Verts = []*Vert{
		{Id: 0, C: []float64{0, 0}},
		{Id: 1, C: []float64{1, 0}},
		{Id: 2, C: []float64{0, 1}},
	}
	m.Cells = []*Cell{{Id: 1, Type: "tri3", Verts: []int{0, 1, 2}}}
	err = m.CalcDerived()
	if err == nil {
		tst.Errorf("CalcDerived should have failed with non-sequential cell ids")
	}
}
