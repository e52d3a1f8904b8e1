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

// Poisson is the bilinear form of the Poisson operator
//
//	a(u,v) = ∫ k(x) ∇u·∇v dΩ
type Poisson struct {
	V    *dof.Space // test == trial function space
	Kcon fun.T      // conductivity k(x), evaluated as Kcon.F(0, x)
	sp   *shp.Shape
}

// NewPoisson returns a new Poisson form over V with conductivity kcon
func NewPoisson(V *dof.Space, kcon fun.T) (o *Poisson, err error) {
	sp, err := shapeFor(V.Msh)
	if err != nil {
		return nil, err
	}
	return &Poisson{V: V, Kcon: kcon, sp: sp}, nil
}

// Rank returns 2
func (o *Poisson) Rank() int { return 2 }

// Space returns the function space of the given axis
func (o *Poisson) Space(axis int) *dof.Space { return o.V }

// Mesh returns the mesh the form is defined over
func (o *Poisson) Mesh() *msh.Mesh { return o.V.Msh }

// Tabulate fills the local stiffness matrix of one cell
func (o *Poisson) Tabulate(out []float64, c *msh.Cell, x [][]float64) (err error) {
	sp := o.sp
	n := sp.Nverts
	if len(out) != n*n {
		return chk.Err("output buffer has wrong size. %d != %d", len(out), n*n)
	}
	for _, ip := range sp.Ips {
		err = sp.CalcAtIp(x, ip, true)
		if err != nil {
			return
		}
		k := o.Kcon.F(0, ipRealCoords(sp, x))
		cf := k * sp.J * ip[2]
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				gg := 0.0
				for d := 0; d < sp.Gndim; d++ {
					gg += sp.G[i][d] * sp.G[j][d]
				}
				out[i*n+j] += cf * gg
			}
		}
	}
	return
}
