// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lin

import (
	"sync"
	"testing"

	"github.com/cpmech/gofea/dof"
	"github.com/cpmech/gofea/prl"
	"github.com/cpmech/gosl/chk"
)

func Test_vec01(tst *testing.T) {

	chk.PrintTitle("vec01. serial flat vector")

	im := &dof.IndexMap{N: 3, Offset: 0, Ntot: 3}
	b := new(Vector)
	b.InitFlat([]*dof.IndexMap{im}, prl.Serial{})
	if b.Kind() != KindFlat {
		tst.Errorf("flat vector has wrong kind")
		return
	}

	// local accumulation, overwrite, staged global adds
	b.AddLocal([]float64{1, 2}, []int{0, 2})
	b.AddLocal([]float64{1}, []int{0})
	b.SetLocal([]float64{5}, []int{1})
	b.AddGlobal([]float64{10}, []int{2})
	b.Apply()
	chk.Vector(tst, "data", 1e-17, b.LocalArray(), []float64{2, 5, 12})
	chk.Vector(tst, "global", 1e-17, b.Global(), []float64{2, 5, 12})

	// collective calls without staged writes are harmless
	b.Apply()
	b.GhostUpdateBegin()
	b.GhostUpdateEnd()
	chk.Vector(tst, "data unchanged", 1e-17, b.LocalArray(), []float64{2, 5, 12})
}

func Test_vec02(tst *testing.T) {

	chk.PrintTitle("vec02. two-rank ghost accumulation")

	// dof 1 is shared (owner 0); dof 2 is shared (owner 1)
	imaps := []*dof.IndexMap{
		{N: 2, Offset: 0, Ghosts: []int{2}, Ntot: 3},
		{N: 1, Offset: 2, Ghosts: []int{1}, Ntot: 3},
	}
	adds := [][]float64{
		{1, 1, 1},
		{1, 1},
	}
	ranks := prl.NewGroup(2)
	locals := make([][]float64, 2)
	globals := make([][]float64, 2)
	var wg sync.WaitGroup
	for r := 0; r < 2; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			b := new(Vector)
			b.InitFlat([]*dof.IndexMap{imaps[r]}, ranks[r])
			idx := make([]int, len(adds[r]))
			for k := range idx {
				idx[k] = k
			}
			b.AddLocal(adds[r], idx)
			b.GhostUpdateBegin()
			b.GhostUpdateEnd()
			locals[r] = b.LocalArray()
			globals[r] = b.Global()
		}(r)
	}
	wg.Wait()

	// owners absorbed the ghost contributions; ghost slots were consumed
	chk.Vector(tst, "rank 0 data", 1e-17, locals[0], []float64{1, 2, 0})
	chk.Vector(tst, "rank 1 data", 1e-17, locals[1], []float64{2, 0})
	chk.Vector(tst, "rank 0 global", 1e-17, globals[0], []float64{1, 2, 2})
	chk.Vector(tst, "rank 1 global", 1e-17, globals[1], []float64{1, 2, 2})
}

func Test_vec03(tst *testing.T) {

	chk.PrintTitle("vec03. staged global adds across ranks")

	imaps := []*dof.IndexMap{
		{N: 2, Offset: 0, Ghosts: []int{2}, Ntot: 3},
		{N: 1, Offset: 2, Ghosts: []int{1}, Ntot: 3},
	}
	ranks := prl.NewGroup(2)
	globals := make([][]float64, 2)
	var wg sync.WaitGroup
	for r := 0; r < 2; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			b := new(Vector)
			b.InitFlat([]*dof.IndexMap{imaps[r]}, ranks[r])

			// each rank writes at global dofs r and 2
			b.AddGlobal([]float64{1, 1}, []int{r, 2})
			b.Apply()
			globals[r] = b.Global()
		}(r)
	}
	wg.Wait()

	chk.Vector(tst, "rank 0 global", 1e-17, globals[0], []float64{1, 1, 2})
	chk.Vector(tst, "rank 1 global", 1e-17, globals[1], []float64{1, 1, 2})
}

func Test_vec04(tst *testing.T) {

	chk.PrintTitle("vec04. repeated ghost updates ship each contribution once")

	imaps := []*dof.IndexMap{
		{N: 2, Offset: 0, Ghosts: []int{2}, Ntot: 3},
		{N: 1, Offset: 2, Ghosts: []int{1}, Ntot: 3},
	}
	adds := [][]float64{
		{1, 1, 1},
		{1, 1},
	}
	ranks := prl.NewGroup(2)
	locals := make([][]float64, 2)
	globals := make([][]float64, 2)
	var wg sync.WaitGroup
	for r := 0; r < 2; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			b := new(Vector)
			b.InitFlat([]*dof.IndexMap{imaps[r]}, ranks[r])
			idx := make([]int, len(adds[r]))
			for k := range idx {
				idx[k] = k
			}
			b.AddLocal(adds[r], idx)
			b.GhostUpdateBegin()
			b.GhostUpdateEnd()

			// rank 0 accumulates one more value into its ghost slot;
			// the second round must ship only this new contribution
			if r == 0 {
				b.AddLocal([]float64{1}, []int{2})
			}
			b.GhostUpdateBegin()
			b.GhostUpdateEnd()
			locals[r] = b.LocalArray()
			globals[r] = b.Global()
		}(r)
	}
	wg.Wait()

	chk.Vector(tst, "rank 0 data", 1e-17, locals[0], []float64{1, 2, 0})
	chk.Vector(tst, "rank 1 data", 1e-17, locals[1], []float64{3, 0})
	chk.Vector(tst, "rank 0 global", 1e-17, globals[0], []float64{1, 2, 3})
	chk.Vector(tst, "rank 1 global", 1e-17, globals[1], []float64{1, 2, 3})
}

func Test_vec05(tst *testing.T) {

	chk.PrintTitle("vec05. local insertion requires a flat vector")

	sub := new(Vector)
	sub.InitFlat([]*dof.IndexMap{{N: 2, Offset: 0, Ntot: 2}}, prl.Serial{})
	b := new(Vector)
	b.InitNest([]*Vector{sub})

	mustPanic := func(name string, f func()) {
		defer func() {
			if recover() == nil {
				tst.Errorf("%s on a nested vector must panic", name)
			}
		}()
		f()
	}
	mustPanic("AddLocal", func() { b.AddLocal([]float64{1}, []int{0}) })
	mustPanic("SetLocal", func() { b.SetLocal([]float64{1}, []int{0}) })
}
