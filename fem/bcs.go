// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gofea/dof"
	"github.com/cpmech/gofea/prl"
	"github.com/cpmech/gosl/chk"
	fun "github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
)

// BcConflictTol is the tolerance used to decide whether two boundary
// condition sets prescribe conflicting values at the same dof
const BcConflictTol = 1e-12

// Method defines how a DirichletBC finds its constrained dofs
type Method int

const (
	Topological Method = iota // dofs on tagged boundary faces
	Pointwise                 // dofs selected by a coordinate marker; purely local
)

// DirichletBC prescribes values at the dofs of a region of the boundary of
// the domain of a function space. The set is a read-only collaborator of
// the assembly engine: it produces a mapping from global dof index to
// prescribed value and is never mutated during assembly.
type DirichletBC struct {
	Space  *dof.Space             // function space the condition constrains
	Value  fun.T                  // prescribed value; evaluated as Value.F(0, x)
	Ftags  []int                  // tagged boundary faces (Topological method)
	Marker func(x []float64) bool // coordinate marker (Pointwise method)
	Mtd    Method                 // enforcement method
}

// Method returns the enforcement method
func (o *DirichletBC) Method() Method { return o.Mtd }

// BoundaryValues fills bvals (additively) with this set's prescribed
// values keyed by global dof index. Only dofs visible on this partition
// (owned or ghost) are produced; a gather step makes remotely-determined
// values visible when running distributed.
func (o *DirichletBC) BoundaryValues(bvals map[int]float64) (err error) {
	m := o.Space.Msh
	imap := o.Space.Dm.Imap
	put := func(lv int) {
		x := m.Verts[lv].C
		v := o.Value.F(0, x)
		for _, ld := range o.Space.Dm.VertDofs(lv) {
			bvals[imap.LocalToGlobal(ld)] = v
		}
	}
	switch o.Mtd {
	case Topological:
		if len(o.Ftags) < 1 {
			return chk.Err("topological boundary condition needs at least one face tag")
		}
		for _, ftag := range o.Ftags {
			for _, lv := range m.FaceTag2verts[ftag] {
				put(lv)
			}
		}
	case Pointwise:
		if o.Marker == nil {
			return chk.Err("pointwise boundary condition needs a coordinate marker")
		}
		for lv, v := range m.Verts {
			if o.Marker(v.C) {
				put(lv)
			}
		}
	default:
		return chk.Err("unknown boundary condition method %d", o.Mtd)
	}
	return
}

// Gather makes boundary values determined on other partitions visible
// locally. Collective: every rank of the group must call Gather for the
// same boundary condition set.
func (o *DirichletBC) Gather(bvals map[int]float64, comm prl.Comm) {
	imap := o.Space.Dm.Imap
	n := imap.Ntot
	vals := make([]float64, n)
	cnt := make([]float64, n)
	w := make([]float64, n)
	for g, v := range bvals {
		vals[g] = v
		cnt[g] = 1
	}
	comm.AllReduceSum(vals, w)
	la.VecFill(w, 0)
	comm.AllReduceSum(cnt, w)
	for g := 0; g < n; g++ {
		if cnt[g] > 0 && imap.GlobalToLocal(g) >= 0 {
			bvals[g] = vals[g] / cnt[g]
		}
	}
}

// collectBCValues builds one deduplicated map from global dof index to
// prescribed value for all boundary condition sets contained in the target
// space. Sets are merged in caller-supplied order; two sets prescribing
// different values at the same dof is an error rather than a silent
// last-write-wins.
func collectBCValues(space *dof.Space, bcs []*DirichletBC, comm prl.Comm) (bvals map[int]float64, err error) {
	bvals = make(map[int]float64)
	for _, bc := range bcs {
		if bc == nil {
			return nil, chk.Err("boundary condition set must not be nil")
		}
		if !space.Contains(bc.Space) {
			continue
		}
		vals := make(map[int]float64)
		err = bc.BoundaryValues(vals)
		if err != nil {
			return nil, err
		}
		if comm.Size() > 1 && bc.Method() != Pointwise {
			bc.Gather(vals, comm)
		}
		for g, v := range vals {
			if old, ok := bvals[g]; ok {
				if math.Abs(old-v) > BcConflictTol {
					return nil, chk.Err("conflicting boundary values at global dof %d: %v != %v", g, old, v)
				}
				continue
			}
			bvals[g] = v
		}
	}
	return
}
