// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical (closed-form) assembled references
package ana

import (
	"github.com/cpmech/gofea/msh"
	"github.com/cpmech/gosl/la"
)

// P1 triangle closed forms. With b[i], c[i] the gradient coefficients of
// the linear shape functions, ∇Si = (b[i], c[i]) / (2 A):
//
//   Ke[i][j] = k (b[i] b[j] + c[i] c[j]) / (4 A)
//   Me[i][j] = ρ A (1 + δij) / 12
//   fe[i]    = f A / 3
//
// These are assembled here over all cells of a serial mesh, independently
// of the shp/forms numerical quadrature path, for verification.

// TriGradCoefs returns the P1 gradient coefficients and the area of a
// triangular cell
func TriGradCoefs(m *msh.Mesh, cell *msh.Cell) (b, c []float64, area float64) {
	v := cell.Verts
	x0, y0 := m.Verts[v[0]].C[0], m.Verts[v[0]].C[1]
	x1, y1 := m.Verts[v[1]].C[0], m.Verts[v[1]].C[1]
	x2, y2 := m.Verts[v[2]].C[0], m.Verts[v[2]].C[1]
	b = []float64{y1 - y2, y2 - y0, y0 - y1}
	c = []float64{x2 - x1, x0 - x2, x1 - x0}
	area = 0.5 * ((x1-x0)*(y2-y0) - (x2-x0)*(y1-y0))
	return
}

// PoissonStiffness assembles the global stiffness matrix of the Poisson
// operator with constant conductivity kcon over a serial tri3 mesh
func PoissonStiffness(m *msh.Mesh, kcon float64) [][]float64 {
	n := len(m.Verts)
	K := la.MatAlloc(n, n)
	for _, cell := range m.Cells {
		b, c, area := TriGradCoefs(m, cell)
		for i, vi := range cell.Verts {
			for j, vj := range cell.Verts {
				K[vi][vj] += kcon * (b[i]*b[j] + c[i]*c[j]) / (4.0 * area)
			}
		}
	}
	return K
}

// MassMatrix assembles the global mass matrix with constant density rho
// over a serial tri3 mesh
func MassMatrix(m *msh.Mesh, rho float64) [][]float64 {
	n := len(m.Verts)
	M := la.MatAlloc(n, n)
	for _, cell := range m.Cells {
		_, _, area := TriGradCoefs(m, cell)
		for i, vi := range cell.Verts {
			for j, vj := range cell.Verts {
				me := rho * area / 12.0
				if i == j {
					me *= 2.0
				}
				M[vi][vj] += me
			}
		}
	}
	return M
}

// SourceVector assembles the global source vector with constant source f
// over a serial tri3 mesh
func SourceVector(m *msh.Mesh, f float64) []float64 {
	s := make([]float64, len(m.Verts))
	for _, cell := range m.Cells {
		_, _, area := TriGradCoefs(m, cell)
		for _, vi := range cell.Verts {
			s[vi] += f * area / 3.0
		}
	}
	return s
}
