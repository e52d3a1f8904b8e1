// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_part01(tst *testing.T) {

	chk.PrintTitle("part01. partition of the unit square")

	m := UnitSquare(2, 2)
	np := 3
	locals, perm, err := PartitionMesh(m, np)
	if err != nil {
		tst.Errorf("PartitionMesh failed:\n%v", err)
		return
	}
	chk.IntAssert(len(locals), np)
	chk.IntAssert(len(perm), len(m.Verts))

	// perm is a permutation of the vertex ids
	seen := make([]bool, len(m.Verts))
	for _, g := range perm {
		if g < 0 || g >= len(m.Verts) || seen[g] {
			tst.Errorf("perm is not a permutation")
			return
		}
		seen[g] = true
	}

	// ownership: owned ranges are contiguous, disjoint and complete
	nownedTot := 0
	for r, loc := range locals {
		chk.IntAssert(loc.NvertsGlob, len(m.Verts))
		chk.IntAssert(loc.VertOffset, nownedTot)
		nownedTot += loc.NvertsOwned
		for lv, v := range loc.Verts {
			if lv < loc.NvertsOwned {
				chk.IntAssert(v.Owner, r)
				if v.Id < loc.VertOffset || v.Id >= loc.VertOffset+loc.NvertsOwned {
					tst.Errorf("owned vertex %d outside partition %d's global range", v.Id, r)
					return
				}
			} else if v.Owner == r {
				tst.Errorf("ghost vertex %d of partition %d claims local ownership", v.Id, r)
				return
			}
		}
	}
	chk.IntAssert(nownedTot, len(m.Verts))

	// every input cell is non-ghost in exactly one local mesh
	nowned := 0
	for _, loc := range locals {
		for _, c := range loc.Cells {
			if !c.Ghost {
				nowned++
			}
		}
	}
	chk.IntAssert(nowned, len(m.Cells))

	// coordinates survive the renumbering
	coords := make([][]float64, len(m.Verts))
	for _, v := range m.Verts {
		coords[perm[v.Id]] = v.C
	}
	for _, loc := range locals {
		for _, v := range loc.Verts {
			chk.Vector(tst, "coords", 1e-17, v.C, coords[v.Id])
		}
	}
}

func Test_part02(tst *testing.T) {

	chk.PrintTitle("part02. partition count limits")

	m := UnitSquare(1, 1)
	if _, _, err := PartitionMesh(m, 0); err == nil {
		tst.Errorf("PartitionMesh should have failed with np=0")
		return
	}
	if _, _, err := PartitionMesh(m, 3); err == nil {
		tst.Errorf("PartitionMesh should have failed with np > ncells")
		return
	}

	// one partition reproduces the serial mesh
	locals, _, err := PartitionMesh(m, 1)
	if err != nil {
		tst.Errorf("PartitionMesh failed:\n%v", err)
		return
	}
	chk.IntAssert(len(locals), 1)
	chk.IntAssert(locals[0].NvertsOwned, len(m.Verts))
	chk.IntAssert(len(locals[0].Cells), len(m.Cells))
	for _, c := range locals[0].Cells {
		if c.Ghost {
			tst.Errorf("serial partition must not have ghost cells")
			return
		}
	}
}
