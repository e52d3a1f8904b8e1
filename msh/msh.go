// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msh implements a lightweight partitioned mesh for FE assembly
package msh

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// Vert holds vertex data
type Vert struct {
	Id    int       // global id
	Tag   int       // tag
	Owner int       // partition owning this vertex (and its dofs)
	C     []float64 // coordinates (size==2 or 3)
}

// Cell holds cell data
type Cell struct {

	// input data
	Id    int    // id
	Tag   int    // tag
	Type  string // geometry type; e.g. "tri3"
	Part  int    // partition id
	Ghost bool   // cell is a halo replica owned by another partition
	Verts []int  // vertices (indices into Mesh.Verts)
	FTags []int  // edge (2D) or face (3D) tags
}

// Mesh holds a mesh (or one partition's local view of a mesh) for FE assembly
type Mesh struct {

	// from JSON
	Verts []*Vert // vertices
	Cells []*Cell // cells

	// partition data. for a serial mesh: NvertsOwned == len(Verts),
	// VertOffset == 0 and NvertsGlob == len(Verts)
	NvertsOwned int // local vertices [0,NvertsOwned) are owned; the rest are ghosts
	VertOffset  int // global id of first owned vertex
	NvertsGlob  int // total number of vertices over all partitions

	// derived
	FnamePath  string  // complete filename path
	Ndim       int     // space dimension
	Xmin, Xmax float64 // min and max x-coordinate
	Ymin, Ymax float64 // min and max y-coordinate

	// derived: maps
	VertTag2verts map[int][]*Vert // vertex tag => set of vertices
	FaceTag2verts map[int][]int   // face tag => local ids of vertices on tagged faces
	Part2cells    map[int][]*Cell // partition number => set of cells
}

// ReadMsh reads a mesh from a JSON file (same layout as gofem .msh files)
func ReadMsh(dir, fn string) (o *Mesh, err error) {

	// read file
	o = new(Mesh)
	o.FnamePath = filepath.Join(dir, fn)
	b, err := io.ReadFile(o.FnamePath)
	if err != nil {
		return nil, chk.Err("cannot read mesh file:\n%v", err)
	}

	// decode
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal mesh file %q:\n%v", o.FnamePath, err)
	}

	// serial mesh: this partition owns everything
	o.NvertsOwned = len(o.Verts)
	o.NvertsGlob = len(o.Verts)

	// derived data
	err = o.CalcDerived()
	if err != nil {
		return nil, err
	}
	return
}

// CalcDerived computes dimensions, limits and auxiliary maps.
// Must be called after Verts and Cells are set.
func (o *Mesh) CalcDerived() (err error) {

	// check
	if len(o.Verts) < 2 {
		return chk.Err("mesh must have at least 2 vertices. %d is invalid", len(o.Verts))
	}
	if len(o.Cells) < 1 {
		return chk.Err("mesh must have at least 1 cell. %d is invalid", len(o.Cells))
	}

	// vertex related data
	o.Ndim = len(o.Verts[0].C)
	o.Xmin, o.Xmax = o.Verts[0].C[0], o.Verts[0].C[0]
	o.Ymin, o.Ymax = o.Verts[0].C[1], o.Verts[0].C[1]
	o.VertTag2verts = make(map[int][]*Vert)
	for _, v := range o.Verts {
		if len(v.C) != o.Ndim {
			return chk.Err("vertex %d has wrong number of coordinates. %d != %d", v.Id, len(v.C), o.Ndim)
		}
		if v.Tag < 0 {
			o.VertTag2verts[v.Tag] = append(o.VertTag2verts[v.Tag], v)
		}
		o.Xmin = utl.Min(o.Xmin, v.C[0])
		o.Xmax = utl.Max(o.Xmax, v.C[0])
		o.Ymin = utl.Min(o.Ymin, v.C[1])
		o.Ymax = utl.Max(o.Ymax, v.C[1])
	}

	// cell related data
	o.FaceTag2verts = make(map[int][]int)
	o.Part2cells = make(map[int][]*Cell)
	faceSeen := make(map[int]map[int]bool) // face tag => local vertex id => recorded
	for i, c := range o.Cells {
		if c.Id != i {
			return chk.Err("cell ids must be sequential. cell %d has id=%d", i, c.Id)
		}
		o.Part2cells[c.Part] = append(o.Part2cells[c.Part], c)
		for j, ftag := range c.FTags {
			if ftag >= 0 {
				continue
			}
			if faceSeen[ftag] == nil {
				faceSeen[ftag] = make(map[int]bool)
			}
			// local face j of a tri/qua connects vertices j and (j+1)%nverts
			nv := len(c.Verts)
			for _, lv := range []int{c.Verts[j], c.Verts[(j+1)%nv]} {
				if !faceSeen[ftag][lv] {
					faceSeen[ftag][lv] = true
					o.FaceTag2verts[ftag] = append(o.FaceTag2verts[ftag], lv)
				}
			}
		}
	}
	return
}

// CoordsMatrix returns the coordinate matrix of a particular cell
//  x -- [ndim][nverts]
func (o *Mesh) CoordsMatrix(c *Cell) (x [][]float64) {
	x = la.MatAlloc(o.Ndim, len(c.Verts))
	for i := 0; i < o.Ndim; i++ {
		for j, v := range c.Verts {
			x[i][j] = o.Verts[v].C[i]
		}
	}
	return
}
