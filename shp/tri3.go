// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// IpsTri1 is the 1-point integration rule for triangles (exact for linears)
var IpsTri1 = []Ipoint{
	{1.0 / 3.0, 1.0 / 3.0, 1.0 / 2.0},
}

// IpsTri3 is the 3-point integration rule for triangles (exact for quadratics)
var IpsTri3 = []Ipoint{
	{1.0 / 6.0, 1.0 / 6.0, 1.0 / 6.0},
	{2.0 / 3.0, 1.0 / 6.0, 1.0 / 6.0},
	{1.0 / 6.0, 2.0 / 3.0, 1.0 / 6.0},
}

// Tri3Func computes the shape functions and derivatives of a 3-node triangle
//
//     s
//     |
//     2
//     | \
//     |  \
//     |   \
//     0----1 --- r
//
func Tri3Func(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	S[0] = 1.0 - r[0] - r[1]
	S[1] = r[0]
	S[2] = r[1]
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = -1.0, -1.0
	dSdR[1][0], dSdR[1][1] = 1.0, 0.0
	dSdR[2][0], dSdR[2][1] = 0.0, 1.0
}
