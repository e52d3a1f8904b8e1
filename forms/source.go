// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package forms

import (
	"github.com/cpmech/gofea/dof"
	"github.com/cpmech/gofea/msh"
	"github.com/cpmech/gofea/shp"
	"github.com/cpmech/gosl/chk"
	fun "github.com/cpmech/gosl/fun/dbf"
)

// Source is the linear form of a volumetric source term
//
//	L(v) = ∫ f(x) v dΩ
type Source struct {
	V  *dof.Space // test function space
	F  fun.T      // source f(x), evaluated as F.F(0, x)
	sp *shp.Shape
}

// NewSource returns a new source form over V with source function f
func NewSource(V *dof.Space, f fun.T) (o *Source, err error) {
	sp, err := shapeFor(V.Msh)
	if err != nil {
		return nil, err
	}
	return &Source{V: V, F: f, sp: sp}, nil
}

// Rank returns 1
func (o *Source) Rank() int { return 1 }

// Space returns the function space
func (o *Source) Space(axis int) *dof.Space { return o.V }

// Mesh returns the mesh the form is defined over
func (o *Source) Mesh() *msh.Mesh { return o.V.Msh }

// Tabulate fills the local source vector of one cell
func (o *Source) Tabulate(out []float64, c *msh.Cell, x [][]float64) (err error) {
	sp := o.sp
	n := sp.Nverts
	if len(out) != n {
		return chk.Err("output buffer has wrong size. %d != %d", len(out), n)
	}
	for _, ip := range shp.IpsTri3 {
		err = sp.CalcAtIp(x, ip, true)
		if err != nil {
			return
		}
		cf := o.F.F(0, ipRealCoords(sp, x)) * sp.J * ip[2]
		for i := 0; i < n; i++ {
			out[i] += cf * sp.S[i]
		}
	}
	return
}
