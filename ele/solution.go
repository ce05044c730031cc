// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Solution holds the solution of one load case
//
//        / u_0 \
//  y =   |  …  |  (neq x 1)  with u_i the unconstrained dofs
//        \ u_n /
//
type Solution struct {
	Lc int       // load case
	Y  []float64 // dofs (solution variables)
}

// NewSolution allocates a zeroed solution
func NewSolution(lc, neq int) *Solution {
	return &Solution{Lc: lc, Y: make([]float64, neq)}
}

// Reset clear values
func (o *Solution) Reset() {
	for i := 0; i < len(o.Y); i++ {
		o.Y[i] = 0
	}
}

// Get returns the value of equation I or zero if I is not an unknown
func (o *Solution) Get(I int) float64 {
	if I < 0 {
		return 0
	}
	return o.Y[I]
}
