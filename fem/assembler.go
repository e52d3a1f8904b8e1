// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gofea/dof"
	"github.com/cpmech/gofea/lin"
	"github.com/cpmech/gofea/msh"
	"github.com/cpmech/gofea/prl"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// Assembler orchestrates global assembly: it iterates this partition's
// non-ghost cells, invokes the forms' tabulation callbacks, scatters local
// tensors into global containers and applies essential boundary conditions.
//
// The bilinear forms are organised as a rectangular grid of blocks (test
// fields by trial fields; nil entries are structurally absent) and the
// linear forms as a list, one per field. Forms and boundary condition sets
// are read-only collaborators supplied by the caller.
type Assembler struct {
	A       [][]Form       // bilinear form blocks [nrow][ncol]
	L       []Form         // linear forms [nrow]
	Bcs     []*DirichletBC // essential boundary condition sets
	Comm    prl.Comm       // process group
	Verbose bool           // show messages (rank 0 only)
}

// NewAssembler checks the supplied forms and returns a new Assembler.
// Precondition violations (empty form grid, wrong ranks, mismatched
// meshes) fail here, before any container is touched.
func NewAssembler(a [][]Form, l []Form, bcs []*DirichletBC, comm prl.Comm) (o *Assembler, err error) {
	if len(a) < 1 || len(a[0]) < 1 {
		return nil, chk.Err("empty bilinear form array is invalid")
	}
	ncol := len(a[0])
	var mesh *msh.Mesh
	for i, row := range a {
		if len(row) != ncol {
			return nil, chk.Err("bilinear form array must be rectangular. row %d has %d columns. %d expected", i, len(row), ncol)
		}
		for j, f := range row {
			if f == nil {
				continue
			}
			if f.Rank() != 2 {
				return nil, chk.Err("form at block (%d,%d) must be bilinear (rank 2). rank %d is invalid", i, j, f.Rank())
			}
			if f.Space(0) == nil || f.Space(1) == nil {
				return nil, chk.Err("form at block (%d,%d) must define both function spaces", i, j)
			}
			if mesh == nil {
				mesh = f.Mesh()
			}
			if f.Mesh() != mesh {
				return nil, chk.Err("all forms must share one mesh. block (%d,%d) uses a different mesh", i, j)
			}
		}
	}
	for i, f := range l {
		if f == nil {
			continue
		}
		if f.Rank() != 1 {
			return nil, chk.Err("form %d in the linear list must have rank 1. rank %d is invalid", i, f.Rank())
		}
		if mesh != nil && f.Mesh() != mesh {
			return nil, chk.Err("all forms must share one mesh. linear form %d uses a different mesh", i)
		}
	}
	return &Assembler{A: a, L: l, Bcs: bcs, Comm: comm}, nil
}

// AssembleMatrix assembles the bilinear form grid into A and applies
// essential boundary conditions. When A is empty it is allocated with the
// requested topology; otherwise its storage kind must match and it is
// zeroed and reopened for reassembly. The container is finalized exactly
// once, at the end of this call.
func (o *Assembler) AssembleMatrix(A *lin.Matrix, kind lin.Kind) (err error) {

	// allocate, or zero an already shaped container for reuse
	blockMatrix := len(o.A) > 1 || len(o.A[0]) > 1
	if A.Empty() {
		err = o.initMatrix(A, kind, blockMatrix)
		if err != nil {
			return
		}
	} else if A.Kind() != kind {
		return chk.Err("existing container storage kind does not match requested topology")
	} else {
		A.Zero()
	}

	// dispatch on the container's storage kind
	switch {

	// nested: each sub-block is an independent single-field target
	case A.Kind() == lin.KindNest:
		for i, row := range o.A {
			for j, a := range row {
				if a == nil {
					continue // structurally absent block
				}
				err = o.assembleMatrixBlock(A.Sub(i, j), a)
				if err != nil {
					return
				}
			}
		}

	// monolithic block: index-scoped views with offsets computed up front
	case blockMatrix:
		for i, row := range o.A {
			for j, a := range row {
				if a == nil {
					return chk.Err("null block (%d,%d) in monolithic block assembly is not supported", i, j)
				}
				err = o.assembleMatrixBlock(A.View(i, j), a)
				if err != nil {
					return
				}
			}
		}

	// single field
	default:
		err = o.assembleMatrixBlock(A, o.A[0][0])
		if err != nil {
			return
		}
	}

	// finalize exactly once at top level
	A.Apply(lin.Final)
	if o.Verbose && o.Comm.Rank() == 0 {
		io.Pf(">> matrix assembled\n")
	}
	return
}

// assembleMatrixBlock runs the per-cell loop for one bilinear form into one
// insertion target (full container, sub-matrix or block view). Boundary
// rows and columns are zeroed on the local tensor before insertion, so
// condition-violating values never reach the global container; blocks with
// equal test and trial spaces get 1.0 on the diagonal at boundary dofs.
func (o *Assembler) assembleMatrixBlock(target lin.MatSetter, a Form) (err error) {

	// dof maps and boundary values per matrix axis
	mesh := a.Mesh()
	dm0, dm1 := a.Space(0).Dm, a.Space(1).Dm
	bvals0, err := collectBCValues(a.Space(0), o.Bcs, o.Comm)
	if err != nil {
		return
	}
	bvals1, err := collectBCValues(a.Space(1), o.Bcs, o.Comm)
	if err != nil {
		return
	}

	// iterate this partition's cells
	var Ae []float64
	for _, c := range mesh.Cells {

		// ghost cells never contribute: their owner assembles them
		if c.Ghost {
			continue
		}

		// cell geometry and dof maps
		x := mesh.CoordsMatrix(c)
		dmap0 := dm0.CellDofs(c.Id)
		dmap1 := dm1.CellDofs(c.Id)
		n0, n1 := len(dmap0), len(dmap1)

		// tabulate local tensor
		if len(Ae) < n0*n1 {
			Ae = make([]float64, n0*n1)
		}
		la.VecFill(Ae[:n0*n1], 0)
		err = a.Tabulate(Ae[:n0*n1], c, x)
		if err != nil {
			return chk.Err("tabulation of cell %d failed:\n%v", c.Id, err)
		}

		// zero boundary rows and columns on the local tensor
		for i, ld := range dmap0 {
			if _, ok := bvals0[dm0.Imap.LocalToGlobal(ld)]; ok {
				for j := 0; j < n1; j++ {
					Ae[i*n1+j] = 0
				}
			}
		}
		for j, ld := range dmap1 {
			if _, ok := bvals1[dm1.Imap.LocalToGlobal(ld)]; ok {
				for i := 0; i < n0; i++ {
					Ae[i*n1+j] = 0
				}
			}
		}

		// additive scatter at block-local dof indices
		target.AddLocal(Ae[:n0*n1], dmap0, dmap1)
	}

	// place 1.0 on the diagonal at boundary dofs of equal-space blocks
	if a.Space(0).Contains(a.Space(1)) && a.Space(1).Contains(a.Space(0)) {
		one := []float64{1.0}
		for g := range bvals0 {
			if !dm0.Imap.Owns(g) {
				continue
			}
			ld := dm0.Imap.GlobalToLocal(g)
			target.SetLocal(one, []int{ld}, []int{ld})
		}
	}
	return
}

// AssembleVector assembles the linear form list into b. When b is empty it
// is allocated with the requested topology; otherwise its storage kind
// must match and it is zeroed before reassembly. Every path that touches
// ghost-capable storage issues the
// two-phase ghost accumulation exactly once, after the local loop.
func (o *Assembler) AssembleVector(b *lin.Vector, kind lin.Kind) (err error) {

	// checks, allocation or reuse
	if len(o.L) < 1 {
		return chk.Err("empty linear form list is invalid")
	}
	blockVector := len(o.L) > 1
	if b.Empty() {
		err = o.initVector(b, kind, blockVector)
		if err != nil {
			return
		}
	} else if b.Kind() != kind {
		return chk.Err("existing container storage kind does not match requested topology")
	} else {
		b.Zero()
	}

	// dispatch on the container's storage kind
	switch {

	// nested: per-field local accumulation, then ghost reduction per sub
	case b.Kind() == lin.KindNest:
		for i, l := range o.L {
			if l == nil {
				if o.Verbose && o.Comm.Rank() == 0 {
					io.Pf(">> warning: null linear form %d skipped\n", i)
				}
				continue
			}
			sub := b.Sub(i)
			err = o.assembleLocalVector(sub.LocalArray(), l)
			if err != nil {
				return
			}
			sub.GhostUpdateBegin()
			sub.GhostUpdateEnd()
		}

	// monolithic block: per-field scratch buffer scattered with
	// combined-numbering indices, one flush at the end
	case blockVector:
		imaps := make([]*dof.IndexMap, len(o.L))
		for i, l := range o.L {
			if l == nil {
				return chk.Err("null linear form %d in monolithic block assembly is not supported", i)
			}
			imaps[i] = l.Space(0).Dm.Imap
		}
		for i, l := range o.L {
			m := imaps[i]
			buf := make([]float64, m.Size(dof.All))
			err = o.assembleLocalVector(buf, l)
			if err != nil {
				return
			}
			idx := make([]int, len(buf))
			for k := range buf {
				idx[k] = dof.FieldGlobalIndex(imaps, i, m.LocalToGlobal(k))
			}
			b.AddGlobal(buf, idx)
		}
		b.Apply()

	// single field
	default:
		err = o.assembleLocalVector(b.LocalArray(), o.L[0])
		if err != nil {
			return
		}
		b.GhostUpdateBegin()
		b.GhostUpdateEnd()
	}

	if o.Verbose && o.Comm.Rank() == 0 {
		io.Pf(">> vector assembled\n")
	}
	return
}

// assembleLocalVector is the raw per-cell accumulation primitive: it adds
// every non-ghost cell's local element vector into a flat buffer addressed
// by local dof index. Purely local, no communication; safe to call
// repeatedly on disjoint cell sets.
func (o *Assembler) assembleLocalVector(buf []float64, l Form) (err error) {
	mesh := l.Mesh()
	dm := l.Space(0).Dm
	var be []float64
	for _, c := range mesh.Cells {
		if c.Ghost {
			continue
		}
		x := mesh.CoordsMatrix(c)
		dmap := dm.CellDofs(c.Id)
		n := len(dmap)
		if len(be) < n {
			be = make([]float64, n)
		}
		la.VecFill(be[:n], 0)
		err = l.Tabulate(be[:n], c, x)
		if err != nil {
			return chk.Err("tabulation of cell %d failed:\n%v", c.Id, err)
		}
		for k, ld := range dmap {
			buf[ld] += be[k]
		}
	}
	return
}
