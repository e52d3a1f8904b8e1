// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package lin implements the global sparse-matrix and ghosted-vector containers
package lin

// Kind identifies the concrete storage of a global container. The kind is
// chosen once at allocation time and threaded through the assembly engine
// as a parameter; there is no runtime type introspection.
type Kind int

const (
	KindFlat Kind = iota // one flat index space (single-field or monolithic block)
	KindNest             // composite of independent per-block sub-containers
)

// ApplyMode selects the finalization behaviour of Apply
type ApplyMode int

const (
	Flush ApplyMode = iota // aggregate buffered writes; container stays writable
	Final                  // aggregate and build the durable, query-ready form
)

// MatSetter is the insertion contract shared by the full matrix container
// and its index-scoped block views
type MatSetter interface {
	AddLocal(vals []float64, rows, cols []int) // additive, local-indexed, row-major vals
	SetLocal(vals []float64, rows, cols []int) // overwrite, local-indexed, row-major vals
}
