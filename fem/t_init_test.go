// Copyright 2016 The Gofea Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sync"

	"github.com/cpmech/gofea/prl"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// runRanks runs f concurrently on every rank of an in-process group
func runRanks(np int, f func(r int, c prl.Comm)) {
	ranks := prl.NewGroup(np)
	var wg sync.WaitGroup
	for r := 0; r < np; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			f(r, ranks[r])
		}(r)
	}
	wg.Wait()
}

// withBC returns a copy of K with boundary rows/columns zeroed and a unit
// diagonal at the boundary dofs
func withBC(K [][]float64, bdofs []int) [][]float64 {
	n := len(K)
	isB := make([]bool, n)
	for _, g := range bdofs {
		isB[g] = true
	}
	D := la.MatAlloc(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			switch {
			case isB[i] || isB[j]:
				if i == j {
					D[i][j] = 1.0
				}
			default:
				D[i][j] = K[i][j]
			}
		}
	}
	return D
}

// lifted returns src - Σ_{j∈bdofs} K[:,j] * value
func lifted(K [][]float64, src []float64, bdofs []int, value float64) []float64 {
	out := make([]float64, len(src))
	copy(out, src)
	for i := range out {
		for _, j := range bdofs {
			out[i] -= K[i][j] * value
		}
	}
	return out
}
