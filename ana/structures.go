// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// AxialBar computes the solution of a bar fixed at one end and loaded axially at the other end
//
//  |>o===========o--> F
//          L
//
type AxialBar struct {
	F float64 // axial load
	L float64 // length
	A float64 // cross-sectional area
	E float64 // Young's modulus
}

// Displ returns the displacement of the loaded end: u = F L / (A E)
func (o AxialBar) Displ() float64 {
	return o.F * o.L / (o.A * o.E)
}

// Compliance returns c = F u
func (o AxialBar) Compliance() float64 {
	return o.F * o.Displ()
}

// CheckDispl checks the displacement of the loaded end
func (o AxialBar) CheckDispl(tst *testing.T, u, tol float64) {
	chk.Float64(tst, "u", tol, u, o.Displ())
}

// SimpleBeam computes the solution of a simply-supported beam with a central point load
//
//              | P
//              V
//   o=====================o
//   △          L          ○
//
type SimpleBeam struct {
	P float64 // central load
	L float64 // span
	E float64 // Young's modulus
	I float64 // moment of inertia about the bending axis
}

// Deflection returns the deflection at x ∈ [0, L]
func (o SimpleBeam) Deflection(x float64) float64 {
	if x > o.L/2.0 {
		x = o.L - x
	}
	return o.P * x * (3.0*o.L*o.L - 4.0*x*x) / (48.0 * o.E * o.I)
}

// MaxDeflection returns P L³ / (48 E I)
func (o SimpleBeam) MaxDeflection() float64 {
	return o.P * o.L * o.L * o.L / (48.0 * o.E * o.I)
}

// CheckDeflection checks the deflection at x
func (o SimpleBeam) CheckDeflection(tst *testing.T, x, w, tol float64) {
	chk.Float64(tst, io.Sf("w(%g)", x), tol, w, o.Deflection(x))
}

// Cantilever computes the solution of a cantilever beam with a tip load
//
//  |>o=====================o
//            L             |
//                          V P
//
type Cantilever struct {
	P float64 // tip load
	L float64 // length
	E float64 // Young's modulus
	I float64 // moment of inertia about the bending axis
}

// TipDeflection returns P L³ / (3 E I)
func (o Cantilever) TipDeflection() float64 {
	return o.P * o.L * o.L * o.L / (3.0 * o.E * o.I)
}

// TipRotation returns P L² / (2 E I)
func (o Cantilever) TipRotation() float64 {
	return o.P * o.L * o.L / (2.0 * o.E * o.I)
}
