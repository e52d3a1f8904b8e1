// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gofea/dof"
	"github.com/cpmech/gofea/fem"
	"github.com/cpmech/gofea/msh"
	"github.com/cpmech/gosl/chk"
	fun "github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Data holds global data of one assembly problem
type Data struct {
	Desc string  `json:"desc"` // description of simulation
	Msh  string  `json:"msh"`  // mesh filename (relative to the sim file)
	Kcon float64 `json:"kcon"` // conductivity of the Poisson operator
	Src  float64 `json:"src"`  // volumetric source
}

// EssenBc holds one essential boundary condition specification
type EssenBc struct {
	Tag   int     `json:"tag"`   // negative boundary face tag
	Value float64 `json:"value"` // prescribed value
}

// Sim holds a complete assembly problem read from a (.sim) JSON file
type Sim struct {

	// from JSON
	Data     Data       `json:"data"`     // global data
	EssenBcs []*EssenBc `json:"essenbcs"` // essential boundary conditions

	// derived
	Dir       string // directory of the sim file
	FnamePath string // complete filename path
}

// ReadSim reads a simulation file
func ReadSim(dir, fn string) (o *Sim, err error) {
	o = new(Sim)
	o.Dir = dir
	o.FnamePath = filepath.Join(dir, fn)
	b, err := io.ReadFile(o.FnamePath)
	if err != nil {
		return nil, chk.Err("cannot read simulation file:\n%v", err)
	}
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal simulation file %q:\n%v", o.FnamePath, err)
	}

	// defaults and checks
	if o.Data.Msh == "" {
		return nil, chk.Err("simulation file %q must name a mesh file", o.FnamePath)
	}
	if o.Data.Kcon == 0 {
		o.Data.Kcon = 1.0
	}
	for i, bc := range o.EssenBcs {
		if bc.Tag >= 0 {
			return nil, chk.Err("essential boundary condition %d must use a negative face tag. tag=%d", i, bc.Tag)
		}
	}
	return
}

// LoadMesh reads the mesh file named by the simulation data
func (o *Sim) LoadMesh() (*msh.Mesh, error) {
	return msh.ReadMsh(o.Dir, o.Data.Msh)
}

// DirichletBCs builds the essential boundary condition sets over V
func (o *Sim) DirichletBCs(V *dof.Space) (bcs []*fem.DirichletBC) {
	for _, bc := range o.EssenBcs {
		bcs = append(bcs, &fem.DirichletBC{
			Space: V,
			Value: &fun.Cte{C: bc.Value},
			Ftags: []int{bc.Tag},
		})
	}
	return
}
