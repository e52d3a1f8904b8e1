// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package prl implements the process group used by distributed assembly
package prl

// Comm represents one rank's view of an SPMD process group. All "waiting"
// in the assembly engine is collective: AllReduceSum must be entered by
// every rank of the group and blocks until the sum over all ranks' x is
// visible in every rank's x.
type Comm interface {
	Rank() int                   // this rank's number
	Size() int                   // number of ranks in the group
	AllReduceSum(x, w []float64) // x = sum over all ranks of x; w is workspace
}

// Serial is the single-process group: reductions are no-ops
type Serial struct{}

// Rank returns 0
func (o Serial) Rank() int { return 0 }

// Size returns 1
func (o Serial) Size() int { return 1 }

// AllReduceSum does nothing: the local sum is already the global sum
func (o Serial) AllReduceSum(x, w []float64) {}
