// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prl

import "github.com/cpmech/gosl/mpi"

// MPI is the process group of a real multi-process MPI run
type MPI struct{}

// Rank returns this processor's number
func (o MPI) Rank() int { return mpi.Rank() }

// Size returns the number of processors
func (o MPI) Size() int { return mpi.Size() }

// AllReduceSum sums x over all processors using w as workspace
func (o MPI) AllReduceSum(x, w []float64) { mpi.AllReduceSum(x, w) }

// NewComm returns the MPI group when MPI is on; otherwise the serial group
func NewComm() Comm {
	if mpi.IsOn() {
		return MPI{}
	}
	return Serial{}
}
