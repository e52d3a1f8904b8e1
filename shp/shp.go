// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape structures/routines for reference cells
package shp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// constants
const MINDET = 1.0e-14 // minimum determinant allowed for dxdR

// Ipoint holds integration point data: natural coordinates and weight [r, s, w]
type Ipoint []float64

// ShpFunc is the shape functions callback function
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Shape holds geometry data and a per-cell scratchpad
type Shape struct {

	// geometry
	Type   string   // name; e.g. "tri3"
	Func   ShpFunc  // shape/derivs callback function
	Gndim  int      // geometry dimension
	Nverts int      // number of vertices in cell
	Ips    []Ipoint // quadrature points

	// scratchpad
	S    []float64   // [nverts] shape functions
	DSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates
	G    [][]float64 // [nverts][gndim] G == dSdx. derivative of shape function
	J    float64     // Jacobian: determinant of dxdR
}

// Get returns a new Shape structure for the given geometry type
func Get(geoType string) (o *Shape, err error) {
	switch geoType {
	case "tri3":
		o = &Shape{
			Type:   "tri3",
			Func:   Tri3Func,
			Gndim:  2,
			Nverts: 3,
			Ips:    IpsTri1,
		}
	default:
		return nil, chk.Err("shape %q is not available", geoType)
	}
	o.S = make([]float64, o.Nverts)
	o.DSdR = la.MatAlloc(o.Nverts, o.Gndim)
	o.G = la.MatAlloc(o.Nverts, o.Gndim)
	return
}

// CalcAtIp computes the shape functions and, if derivs is true, the
// cartesian derivatives G and the Jacobian J at one integration point.
//  x -- coordinate matrix [ndim][nverts]
func (o *Shape) CalcAtIp(x [][]float64, ip Ipoint, derivs bool) (err error) {

	// shape functions and natural derivatives
	o.Func(o.S, o.DSdR, ip, derivs)
	if !derivs {
		return
	}

	// dxdR matrix
	nd := o.Gndim
	dxdR := mat.NewDense(nd, nd, nil)
	for i := 0; i < nd; i++ {
		for j := 0; j < nd; j++ {
			v := 0.0
			for m := 0; m < o.Nverts; m++ {
				v += x[i][m] * o.DSdR[m][j]
			}
			dxdR.Set(i, j, v)
		}
	}

	// Jacobian and inverse mapping
	o.J = mat.Det(dxdR)
	if o.J < MINDET {
		return chk.Err("%q shape: cannot compute determinant of Jacobian. %v < %v", o.Type, o.J, MINDET)
	}
	var dRdx mat.Dense
	err = dRdx.Inverse(dxdR)
	if err != nil {
		return chk.Err("%q shape: cannot invert Jacobian matrix:\n%v", o.Type, err)
	}

	// cartesian derivatives
	for m := 0; m < o.Nverts; m++ {
		for i := 0; i < nd; i++ {
			v := 0.0
			for j := 0; j < nd; j++ {
				v += o.DSdR[m][j] * dRdx.At(j, i)
			}
			o.G[m][i] = v
		}
	}
	return
}
