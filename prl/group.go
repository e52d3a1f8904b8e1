// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prl

import (
	"sync"

	"github.com/cpmech/gosl/chk"
)

// groupState is the reducer shared by the ranks of an in-process group
type groupState struct {
	n    int        // number of ranks
	mu   sync.Mutex // protects the fields below
	cond *sync.Cond
	buf  []float64 // accumulated sum of the current round
	cnt  int       // ranks that have contributed to the current round
	left int       // ranks yet to copy the result out
	gen  int       // round number
}

// GroupRank is one rank of an in-process SPMD group. Ranks run as
// goroutines within a single process; collective operations synchronize
// through a shared reducer. Used to exercise the distributed assembly
// protocols without MPI.
type GroupRank struct {
	rank int
	st   *groupState
}

// NewGroup creates an in-process group with n ranks
func NewGroup(n int) (ranks []*GroupRank) {
	if n < 1 {
		chk.Panic("group must have at least 1 rank. n=%d", n)
	}
	st := &groupState{n: n}
	st.cond = sync.NewCond(&st.mu)
	ranks = make([]*GroupRank, n)
	for i := 0; i < n; i++ {
		ranks[i] = &GroupRank{rank: i, st: st}
	}
	return
}

// Rank returns this rank's number
func (o *GroupRank) Rank() int { return o.rank }

// Size returns the number of ranks in the group
func (o *GroupRank) Size() int { return o.st.n }

// AllReduceSum sums x over all ranks of the group. Blocks until every rank
// has entered the reduction with a slice of the same length.
func (o *GroupRank) AllReduceSum(x, w []float64) {
	s := o.st
	s.mu.Lock()
	defer s.mu.Unlock()

	// previous round must fully drain first
	for s.left > 0 {
		s.cond.Wait()
	}

	// contribute
	if s.cnt == 0 {
		s.buf = make([]float64, len(x))
	}
	if len(s.buf) != len(x) {
		chk.Panic("ranks entered AllReduceSum with different lengths. %d != %d", len(s.buf), len(x))
	}
	for i, v := range x {
		s.buf[i] += v
	}
	s.cnt++

	// last contributor opens the round; others wait for it
	if s.cnt == s.n {
		s.cnt = 0
		s.left = s.n
		s.gen++
		s.cond.Broadcast()
	} else {
		g := s.gen
		for s.gen == g {
			s.cond.Wait()
		}
	}

	// copy result out
	copy(x, s.buf)
	s.left--
	if s.left == 0 {
		s.cond.Broadcast()
	}
}
