// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prl

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerial(t *testing.T) {
	var c Serial
	assert.Equal(t, 0, c.Rank())
	assert.Equal(t, 1, c.Size())

	// serial reduction leaves the input untouched
	x := []float64{1, 2, 3}
	c.AllReduceSum(x, make([]float64, 3))
	assert.Equal(t, []float64{1, 2, 3}, x)
}

func TestGroupReduce(t *testing.T) {
	n := 3
	ranks := NewGroup(n)
	assert.Equal(t, n, len(ranks))

	results := make([][]float64, n)
	var wg sync.WaitGroup
	for _, rk := range ranks {
		wg.Add(1)
		go func(rk *GroupRank) {
			defer wg.Done()
			r := float64(rk.Rank() + 1)
			x := []float64{r, 2 * r, 0}
			rk.AllReduceSum(x, make([]float64, 3))
			results[rk.Rank()] = x
		}(rk)
	}
	wg.Wait()

	// every rank sees the same sum: 1+2+3 and 2+4+6
	for r := 0; r < n; r++ {
		assert.Equal(t, []float64{6, 12, 0}, results[r])
	}
}

func TestGroupRounds(t *testing.T) {
	n := 4
	nrounds := 50
	ranks := NewGroup(n)

	sums := make([][]float64, n)
	var wg sync.WaitGroup
	for _, rk := range ranks {
		wg.Add(1)
		go func(rk *GroupRank) {
			defer wg.Done()
			sums[rk.Rank()] = make([]float64, nrounds)
			for round := 0; round < nrounds; round++ {
				// slice length varies per round; all ranks agree on it
				m := 1 + round%3
				x := make([]float64, m)
				x[0] = float64(rk.Rank() * (round + 1))
				rk.AllReduceSum(x, make([]float64, m))
				sums[rk.Rank()][round] = x[0]
			}
		}(rk)
	}
	wg.Wait()

	// 0+1+2+3 ranks scaled by the round number, identical on every rank
	for r := 0; r < n; r++ {
		for round := 0; round < nrounds; round++ {
			assert.InDelta(t, float64(6*(round+1)), sums[r][round], 1e-15)
		}
	}
}
