// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/cpmech/gofea/dof"
	"github.com/cpmech/gofea/fem"
	"github.com/cpmech/gofea/forms"
	"github.com/cpmech/gofea/inp"
	"github.com/cpmech/gofea/lin"
	"github.com/cpmech/gofea/msh"
	"github.com/cpmech/gofea/prl"
	"github.com/cpmech/gosl/chk"
	fun "github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/mpi"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				io.PfRed("\nERROR: %v", err)
				io.Pf("See location of error below:\n")
				chk.Verbose = true
				for i := 5; i > 3; i-- {
					chk.CallerInfo(i)
				}
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "inp/data/square2", ".sim", true)
	verbose := io.ArgToBool(1, true)

	// communicator: MPI when running under mpirun, serial otherwise
	comm := prl.NewComm()

	// message
	if comm.Rank() == 0 && verbose {
		io.PfWhite("\nGofea -- Go Finite Element Assembly\n")
		io.Pf("Copyright 2016 The Gofea Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n")

		io.Pf("\n%v\n", io.ArgsTable(
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
		))
	}

	// simulation input
	sim, err := inp.ReadSim(filepath.Dir(fnamepath), filepath.Base(fnamepath))
	if err != nil {
		chk.Panic("cannot read simulation file:\n%v", err)
	}
	mesh, err := sim.LoadMesh()
	if err != nil {
		chk.Panic("cannot load mesh:\n%v", err)
	}

	// partition the mesh when running on more than one processor
	if comm.Size() > 1 {
		locals, _, e := msh.PartitionMesh(mesh, comm.Size())
		if e != nil {
			chk.Panic("mesh partitioning failed:\n%v", e)
		}
		mesh = locals[comm.Rank()]
	}

	// function space and variational forms
	V := dof.NewP1Space(mesh)
	a, err := forms.NewPoisson(V, &fun.Cte{C: sim.Data.Kcon})
	if err != nil {
		chk.Panic("cannot allocate stiffness form:\n%v", err)
	}
	l, err := forms.NewSource(V, &fun.Cte{C: sim.Data.Src})
	if err != nil {
		chk.Panic("cannot allocate source form:\n%v", err)
	}

	// assembler with essential boundary conditions from the .sim file
	asm, err := fem.NewAssembler([][]fem.Form{{a}}, []fem.Form{l}, sim.DirichletBCs(V), comm)
	if err != nil {
		chk.Panic("cannot allocate assembler:\n%v", err)
	}

	// global system
	A := new(lin.Matrix)
	err = asm.AssembleMatrix(A, lin.KindFlat)
	if err != nil {
		chk.Panic("matrix assembly failed:\n%v", err)
	}
	b := new(lin.Vector)
	err = asm.AssembleVector(b, lin.KindFlat)
	if err != nil {
		chk.Panic("vector assembly failed:\n%v", err)
	}
	err = asm.ApplyBC(b, a)
	if err != nil {
		chk.Panic("lifting of boundary conditions failed:\n%v", err)
	}
	err = asm.SetBC(b, l)
	if err != nil {
		chk.Panic("setting of boundary values failed:\n%v", err)
	}

	// summary. Global is collective and must run on every processor
	g := b.Global()
	if comm.Rank() == 0 && verbose {
		io.Pf("\n")
		io.Pf("number of processors  = %v\n", comm.Size())
		io.Pf("number of local cells = %v\n", len(mesh.Cells))
		io.Pf("number of global dofs = %v\n", V.Dm.Imap.Ntot)
		io.Pf("norm of rhs           = %v\n", la.VecNorm(g))
	}
}
