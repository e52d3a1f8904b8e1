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

// Mass is the bilinear form of the (possibly mixed-space) mass operator
//
//	a(u,v) = ∫ ρ(x) u v dΩ
//
// The test and trial spaces may be two different fields over one mesh,
// which makes this form usable as an off-diagonal coupling block.
type Mass struct {
	V0, V1 *dof.Space // test and trial function spaces
	Rho    fun.T      // density ρ(x), evaluated as Rho.F(0, x)
	sp     *shp.Shape
}

// NewMass returns a new mass form with test space v0 and trial space v1
func NewMass(v0, v1 *dof.Space, rho fun.T) (o *Mass, err error) {
	if v0.Msh != v1.Msh {
		return nil, chk.Err("test and trial spaces must share one mesh")
	}
	sp, err := shapeFor(v0.Msh)
	if err != nil {
		return nil, err
	}
	return &Mass{V0: v0, V1: v1, Rho: rho, sp: sp}, nil
}

// Rank returns 2
func (o *Mass) Rank() int { return 2 }

// Space returns the function space of the given axis
func (o *Mass) Space(axis int) *dof.Space {
	if axis == 0 {
		return o.V0
	}
	return o.V1
}

// Mesh returns the mesh the form is defined over
func (o *Mass) Mesh() *msh.Mesh { return o.V0.Msh }

// Tabulate fills the local mass matrix of one cell
func (o *Mass) Tabulate(out []float64, c *msh.Cell, x [][]float64) (err error) {
	sp := o.sp
	n := sp.Nverts
	if len(out) != n*n {
		return chk.Err("output buffer has wrong size. %d != %d", len(out), n*n)
	}
	for _, ip := range shp.IpsTri3 {
		err = sp.CalcAtIp(x, ip, true)
		if err != nil {
			return
		}
		cf := o.Rho.F(0, ipRealCoords(sp, x)) * sp.J * ip[2]
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				out[i*n+j] += cf * sp.S[i] * sp.S[j]
			}
		}
	}
	return
}
