// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lin

import (
	"testing"

	"github.com/cpmech/gofea/dof"
	"github.com/cpmech/gosl/chk"
)

func Test_mat01(tst *testing.T) {

	chk.PrintTitle("mat01. single-field matrix insertion")

	im := &dof.IndexMap{N: 4, Offset: 0, Ntot: 4}
	A := new(Matrix)
	if !A.Empty() {
		tst.Errorf("new matrix must be empty")
		return
	}
	A.InitFlat([]*dof.IndexMap{im}, []*dof.IndexMap{im})
	if A.Empty() {
		tst.Errorf("initialised matrix must not be empty")
		return
	}
	if A.Kind() != KindFlat {
		tst.Errorf("flat matrix has wrong kind")
		return
	}
	nr, nc := A.NumBlocks()
	chk.IntAssert(nr, 1)
	chk.IntAssert(nc, 1)

	// overlapping additive blocks, then an overwrite
	A.AddLocal([]float64{1, 2, 3, 4}, []int{0, 1}, []int{0, 1})
	A.AddLocal([]float64{1, 0, 0, 1}, []int{1, 2}, []int{1, 2})
	A.SetLocal([]float64{7}, []int{0}, []int{0})
	chk.Matrix(tst, "A", 1e-17, A.Dense(), [][]float64{
		{7, 2, 0, 0},
		{3, 5, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 0},
	})

	// finalize and query the compressed form
	A.Apply(Final)
	cc := A.CC()
	if cc == nil {
		tst.Errorf("finalized matrix must expose its compressed form")
	}
}

func Test_mat02(tst *testing.T) {

	chk.PrintTitle("mat02. monolithic block matrix views")

	im0 := &dof.IndexMap{N: 3, Offset: 0, Ntot: 3}
	im1 := &dof.IndexMap{N: 2, Offset: 0, Ntot: 2}
	A := new(Matrix)
	A.InitFlat([]*dof.IndexMap{im0, im1}, []*dof.IndexMap{im0, im1})
	nr, nc := A.NumBlocks()
	chk.IntAssert(nr, 2)
	chk.IntAssert(nc, 2)

	// block views offset indices into the combined numbering
	A.View(1, 1).AddLocal([]float64{5}, []int{0}, []int{0})
	A.View(0, 1).SetLocal([]float64{2}, []int{2}, []int{1})
	A.View(1, 0).AddLocal([]float64{-1}, []int{1}, []int{0})
	chk.Matrix(tst, "A", 1e-17, A.Dense(), [][]float64{
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 2},
		{0, 0, 0, 5, 0},
		{-1, 0, 0, 0, 0},
	})
}

func Test_mat03(tst *testing.T) {

	chk.PrintTitle("mat03. nested matrix blocks")

	im0 := &dof.IndexMap{N: 2, Offset: 0, Ntot: 2}
	im1 := &dof.IndexMap{N: 3, Offset: 0, Ntot: 3}
	mk := func(rm, cm *dof.IndexMap) *Matrix {
		m := new(Matrix)
		m.InitFlat([]*dof.IndexMap{rm}, []*dof.IndexMap{cm})
		return m
	}
	A := new(Matrix)
	A.InitNest([][]*Matrix{
		{mk(im0, im0), nil},
		{nil, mk(im1, im1)},
	})
	if A.Kind() != KindNest {
		tst.Errorf("nested matrix has wrong kind")
		return
	}
	if A.Sub(0, 1) != nil || A.Sub(1, 0) != nil {
		tst.Errorf("absent blocks must stay nil")
		return
	}

	A.Sub(0, 0).AddLocal([]float64{1, 2, 3, 4}, []int{0, 1}, []int{0, 1})
	A.Sub(1, 1).SetLocal([]float64{9}, []int{2}, []int{2})
	A.Apply(Final)
	chk.Matrix(tst, "A00", 1e-17, A.Sub(0, 0).Dense(), [][]float64{{1, 2}, {3, 4}})
	chk.Matrix(tst, "A11", 1e-17, A.Sub(1, 1).Dense(), [][]float64{
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 9},
	})
	if A.Sub(1, 1).CC() == nil {
		tst.Errorf("finalize must recurse into sub-matrices")
	}
}
