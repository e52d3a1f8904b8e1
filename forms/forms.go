// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package forms implements reference cell tensor providers for common weak forms
package forms

import (
	"github.com/cpmech/gofea/msh"
	"github.com/cpmech/gofea/shp"
)

// ipRealCoords computes the real coordinates of an integration point
func ipRealCoords(sp *shp.Shape, x [][]float64) (y []float64) {
	y = make([]float64, len(x))
	for i := 0; i < len(x); i++ {
		for m := 0; m < sp.Nverts; m++ {
			y[i] += sp.S[m] * x[i][m]
		}
	}
	return
}

// shapeFor returns a shape structure matching the mesh's cell type
func shapeFor(m *msh.Mesh) (*shp.Shape, error) {
	return shp.Get(m.Cells[0].Type)
}
