// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the global assembly engine
package fem

import (
	"github.com/cpmech/gofea/dof"
	"github.com/cpmech/gofea/msh"
)

// Form is the cell tensor provider: the weak-form contribution of one cell,
// tabulated by an external (typically code-generated) routine. A bilinear
// form has rank 2 and two function spaces (test axis 0, trial axis 1); a
// linear form has rank 1 and one function space.
//
// Tabulate writes a dense row-major tensor into caller-allocated storage
// sized exactly to the product (or single value) of the cell dof counts of
// the relevant axes. Implementations must not retain out after returning.
type Form interface {
	Rank() int                                                // 2 for bilinear, 1 for linear
	Space(axis int) *dof.Space                                // function space of the given axis
	Mesh() *msh.Mesh                                          // mesh the form is defined over
	Tabulate(out []float64, c *msh.Cell, x [][]float64) error // fill local tensor for one cell
}
