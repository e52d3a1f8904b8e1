// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"sort"

	"github.com/cpmech/gosl/chk"
)

// PartitionMesh splits a serial mesh into np per-partition local meshes.
// Cells are striped into contiguous blocks; the owner of a vertex is the
// smallest partition number among the cells touching it, hence every
// partition derives the same ownership without communication.
//
// Each local mesh holds the partition's owned cells plus a halo of ghost
// cells (Ghost:true) sharing at least one vertex with an owned cell. Local
// vertices are numbered owned-first; vertex ids are rewritten to a global
// numbering in which each partition owns a contiguous range. perm maps the
// input mesh's vertex ids to the new global numbering.
func PartitionMesh(m *Mesh, np int) (locals []*Mesh, perm []int, err error) {

	// check
	ncells := len(m.Cells)
	if np < 1 || np > ncells {
		return nil, nil, chk.Err("number of partitions must be in [1,ncells]. np=%d, ncells=%d", np, ncells)
	}

	// stripe cells into contiguous blocks
	part := make([]int, ncells)
	for i := 0; i < ncells; i++ {
		part[i] = i * np / ncells
	}

	// vertex ownership
	nverts := len(m.Verts)
	owner := make([]int, nverts)
	for i := 0; i < nverts; i++ {
		owner[i] = np // larger than any partition number
	}
	for _, c := range m.Cells {
		for _, v := range c.Verts {
			if part[c.Id] < owner[v] {
				owner[v] = part[c.Id]
			}
		}
	}

	// new global numbering: owned ranges are contiguous per partition
	newId := make([]int, nverts)
	perm = newId
	ownedCount := make([]int, np)
	next := 0
	for r := 0; r < np; r++ {
		for v := 0; v < nverts; v++ {
			if owner[v] == r {
				newId[v] = next
				ownedCount[r]++
				next++
			}
		}
	}
	offset := make([]int, np)
	for r := 1; r < np; r++ {
		offset[r] = offset[r-1] + ownedCount[r-1]
	}

	// vertex => touching cells
	v2cells := make([][]int, nverts)
	for _, c := range m.Cells {
		for _, v := range c.Verts {
			v2cells[v] = append(v2cells[v], c.Id)
		}
	}

	// build local meshes
	locals = make([]*Mesh, np)
	for r := 0; r < np; r++ {

		// cells of this partition: owned first, then halo
		inSet := make(map[int]bool)
		var cids []int
		for _, c := range m.Cells {
			if part[c.Id] == r {
				cids = append(cids, c.Id)
				inSet[c.Id] = true
			}
		}
		for _, c := range m.Cells {
			if part[c.Id] != r {
				continue
			}
			for _, v := range c.Verts {
				for _, nc := range v2cells[v] {
					if !inSet[nc] {
						cids = append(cids, nc)
						inSet[nc] = true
					}
				}
			}
		}
		sort.Ints(cids[ownedCountCells(part, r):]) // halo in deterministic order

		// local vertices: owned sorted by global id, then ghosts
		vSeen := make(map[int]bool)
		var vOwned, vGhost []int
		for _, cid := range cids {
			for _, v := range m.Cells[cid].Verts {
				if vSeen[v] {
					continue
				}
				vSeen[v] = true
				if owner[v] == r {
					vOwned = append(vOwned, v)
				} else {
					vGhost = append(vGhost, v)
				}
			}
		}
		byNewId := func(s []int) { sort.Slice(s, func(i, j int) bool { return newId[s[i]] < newId[s[j]] }) }
		byNewId(vOwned)
		byNewId(vGhost)

		// assemble local mesh
		loc := new(Mesh)
		old2loc := make(map[int]int)
		for _, v := range append(vOwned, vGhost...) {
			old2loc[v] = len(loc.Verts)
			loc.Verts = append(loc.Verts, &Vert{
				Id:    newId[v],
				Tag:   m.Verts[v].Tag,
				Owner: owner[v],
				C:     m.Verts[v].C,
			})
		}
		for _, cid := range cids {
			c := m.Cells[cid]
			verts := make([]int, len(c.Verts))
			for j, v := range c.Verts {
				verts[j] = old2loc[v]
			}
			loc.Cells = append(loc.Cells, &Cell{
				Id:    len(loc.Cells),
				Tag:   c.Tag,
				Type:  c.Type,
				Part:  part[cid],
				Ghost: part[cid] != r,
				Verts: verts,
				FTags: c.FTags,
			})
		}
		loc.NvertsOwned = len(vOwned)
		loc.VertOffset = offset[r]
		loc.NvertsGlob = nverts
		err = loc.CalcDerived()
		if err != nil {
			return nil, nil, chk.Err("partition %d: %v", r, err)
		}
		locals[r] = loc
	}
	return
}

// ownedCountCells returns the number of cells striped to partition r
func ownedCountCells(part []int, r int) (n int) {
	for _, p := range part {
		if p == r {
			n++
		}
	}
	return
}
