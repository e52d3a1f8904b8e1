// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lin

import (
	"github.com/cpmech/gofea/dof"
	"github.com/cpmech/gofea/prl"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Vector is the global distributed vector container. A flat vector stores
// this partition's values contiguously, owned slots first and ghost slots
// after, per field, with fields concatenated left-to-right. A nested vector
// holds one independent flat sub-vector per field.
//
// Values written to ghost slots are staged locally; the two-phase ghost
// update (GhostUpdateBegin/GhostUpdateEnd) sums them into the owning
// partitions' entries and resets the ghost slots. Writes at arbitrary
// global indices (AddGlobal) are staged as well and flushed by Apply. Both
// protocols are collective: every rank of the group must take part.
type Vector struct {

	// flat storage
	maps  []*dof.IndexMap // field index maps
	offs  []int           // field offsets in the combined local space
	goffs []int           // field offsets in the combined global numbering
	data  []float64       // local values, owned+ghost slots, fields concatenated
	stage []float64       // [nglob] staged cross-partition adds (lazily allocated)
	w     []float64       // workspace for reductions

	// nested storage
	subs []*Vector

	comm   prl.Comm
	nglob  int
	kind   Kind
	alloc  bool
	ghosts bool // ghost update begun, end pending
}

// InitFlat initialises an empty vector as a flat container (single-field
// when len(maps)==1, monolithic block otherwise)
func (o *Vector) InitFlat(maps []*dof.IndexMap, comm prl.Comm) {
	if o.alloc {
		chk.Panic("vector is already initialised")
	}
	if len(maps) < 1 {
		chk.Panic("flat vector needs at least one index map")
	}
	o.maps = maps
	o.offs = dof.BlockOffsets(maps)
	o.goffs = dof.GlobalOffsets(maps)
	o.nglob = o.goffs[len(maps)-1] + maps[len(maps)-1].Ntot
	n := o.offs[len(maps)-1] + maps[len(maps)-1].Size(dof.All)
	o.data = make([]float64, n)
	o.comm = comm
	o.kind = KindFlat
	o.alloc = true
}

// InitNest initialises an empty vector as a nested composite
func (o *Vector) InitNest(subs []*Vector) {
	if o.alloc {
		chk.Panic("vector is already initialised")
	}
	if len(subs) < 1 {
		chk.Panic("nested vector needs at least one sub-vector")
	}
	o.subs = subs
	o.kind = KindNest
	o.alloc = true
}

// Empty tells whether the container has not been initialised yet
func (o *Vector) Empty() bool { return !o.alloc }

// Kind returns the storage kind. Must not be called on an empty container.
func (o *Vector) Kind() Kind {
	if !o.alloc {
		chk.Panic("empty vector has no storage kind")
	}
	return o.kind
}

// Sub returns the i-th sub-vector of a nested container
func (o *Vector) Sub(i int) *Vector {
	if o.kind != KindNest {
		chk.Panic("Sub requires a nested vector")
	}
	return o.subs[i]
}

// Maps returns the field index maps of a flat vector
func (o *Vector) Maps() []*dof.IndexMap { return o.maps }

// Offsets returns the field offsets within the combined local space
func (o *Vector) Offsets() []int { return o.offs }

// LocalArray returns the process-local contiguous view, including ghost
// slots. Accumulating into this view is purely local: no communication.
func (o *Vector) LocalArray() []float64 {
	if o.kind != KindFlat {
		chk.Panic("LocalArray requires a flat vector")
	}
	return o.data
}

// AddLocal adds values at combined-local indices
func (o *Vector) AddLocal(vals []float64, idx []int) {
	if o.kind != KindFlat {
		chk.Panic("local insertion requires a flat vector")
	}
	for k, l := range idx {
		o.data[l] += vals[k]
	}
}

// SetLocal overwrites values at combined-local indices
func (o *Vector) SetLocal(vals []float64, idx []int) {
	if o.kind != KindFlat {
		chk.Panic("local insertion requires a flat vector")
	}
	for k, l := range idx {
		o.data[l] = vals[k]
	}
}

// AddGlobal stages additive writes at combined-global indices; entries
// owned by other partitions reach their owners at the next Apply
func (o *Vector) AddGlobal(vals []float64, idx []int) {
	if o.kind != KindFlat {
		chk.Panic("AddGlobal requires a flat vector")
	}
	if o.stage == nil {
		o.stage = make([]float64, o.nglob)
	}
	for k, g := range idx {
		o.stage[g] += vals[k]
	}
}

// Apply flushes staged cross-partition adds into the owning entries.
// Collective: every rank must call Apply, with or without staged writes.
func (o *Vector) Apply() {
	if o.kind == KindNest {
		for _, sub := range o.subs {
			if sub != nil {
				sub.Apply()
			}
		}
		return
	}
	if o.stage == nil {
		if o.comm.Size() == 1 {
			return
		}
		o.stage = make([]float64, o.nglob)
	}
	o.reduce(o.stage)
	o.absorbOwned(o.stage)
	o.stage = nil
}

// GhostUpdateBegin starts the ghost-accumulation protocol: ghost-slot
// values are staged for additive reduction to their owning partitions
func (o *Vector) GhostUpdateBegin() {
	if o.kind != KindFlat {
		chk.Panic("ghost update requires a flat vector")
	}
	if o.ghosts {
		chk.Panic("GhostUpdateBegin called twice without GhostUpdateEnd")
	}
	o.ghosts = true
	if o.comm.Size() == 1 {
		return
	}
	if o.stage == nil {
		o.stage = make([]float64, o.nglob)
	}
	for b, m := range o.maps {
		for l := m.N; l < m.Size(dof.All); l++ {
			o.stage[o.goffs[b]+m.LocalToGlobal(l)] += o.data[o.offs[b]+l]
		}
	}
}

// GhostUpdateEnd completes the ghost accumulation: blocks until every
// partition's ghost contributions are summed into the owning entries.
// Ghost slots are consumed: a later update communicates only values
// accumulated after this one.
func (o *Vector) GhostUpdateEnd() {
	if !o.ghosts {
		chk.Panic("GhostUpdateEnd called without GhostUpdateBegin")
	}
	o.ghosts = false
	if o.comm.Size() == 1 {
		return
	}
	o.reduce(o.stage)
	o.absorbOwned(o.stage)
	o.stage = nil
	for b, m := range o.maps {
		for l := m.N; l < m.Size(dof.All); l++ {
			o.data[o.offs[b]+l] = 0
		}
	}
}

// Zero clears all local values and pending staged writes, keeping the
// container's shape. Nested containers recurse into subs. Purely local.
func (o *Vector) Zero() {
	if !o.alloc {
		chk.Panic("cannot zero an empty vector")
	}
	if o.kind == KindNest {
		for _, sub := range o.subs {
			if sub != nil {
				sub.Zero()
			}
		}
		return
	}
	la.VecFill(o.data, 0)
	o.stage = nil
}

// Global gathers the fully assembled vector in the combined global
// numbering, each owned entry taken from its owning partition. Collective;
// meant for verification and small extractions.
func (o *Vector) Global() []float64 {
	if o.kind != KindFlat {
		chk.Panic("Global requires a flat vector")
	}
	g := make([]float64, o.nglob)
	for b, m := range o.maps {
		for l := 0; l < m.N; l++ {
			g[o.goffs[b]+m.LocalToGlobal(l)] = o.data[o.offs[b]+l]
		}
	}
	o.reduce(g)
	return g
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func (o *Vector) reduce(x []float64) {
	if o.comm.Size() == 1 {
		return
	}
	if o.w == nil {
		o.w = make([]float64, o.nglob)
	}
	la.VecFill(o.w, 0)
	o.comm.AllReduceSum(x, o.w)
}

// absorbOwned adds reduced cross-partition contributions into owned slots
func (o *Vector) absorbOwned(red []float64) {
	for b, m := range o.maps {
		for l := 0; l < m.N; l++ {
			o.data[o.offs[b]+l] += red[o.goffs[b]+m.LocalToGlobal(l)]
		}
	}
}
