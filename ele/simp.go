// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "math"

// EminRatio is the ratio Emin/E0 of the void material
const EminRatio = 1e-6

// SimpModulus returns the SIMP-interpolated Young's modulus
//
//  E(x) = Emin + x^p・(E0 - Emin)
//
func SimpModulus(x, penal, e0 float64) float64 {
	emin := EminRatio * e0
	return emin + math.Pow(x, penal)*(e0-emin)
}

// SimpDeriv returns dE/dx of the SIMP interpolation
func SimpDeriv(x, penal, e0 float64) float64 {
	emin := EminRatio * e0
	if x <= 0 {
		if penal == 1 {
			return e0 - emin
		}
		return 0
	}
	return penal * math.Pow(x, penal-1) * (e0 - emin)
}

// SimpRatio returns E(x)/E0; i.e. the factor applied to the original stiffness matrix
func SimpRatio(x, penal float64) float64 {
	return SimpModulus(x, penal, 1)
}
