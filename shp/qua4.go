// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape functions for quadrilateral surface elements
package shp

// Qua4NatCoords holds the natural coordinates of the vertices of a 4-node quadrilateral
//
//    3-----------2
//    |     η     |
//    |     |     |
//    |     +--ξ  |
//    |           |
//    |           |
//    0-----------1
//
var Qua4NatCoords = [2][4]float64{
	{-1, 1, 1, -1},
	{-1, -1, 1, 1},
}

// Qua4 calculates the bilinear shape functions S and their derivatives with respect to
// the natural coordinates at (ξ, η)
func Qua4(ξ, η float64) (S, dSdξ, dSdη [4]float64) {
	for m := 0; m < 4; m++ {
		rm, sm := Qua4NatCoords[0][m], Qua4NatCoords[1][m]
		S[m] = 0.25 * (1 + ξ*rm) * (1 + η*sm)
		dSdξ[m] = 0.25 * rm * (1 + η*sm)
		dSdη[m] = 0.25 * sm * (1 + ξ*rm)
	}
	return
}

// Qua4Jacobian calculates the Jacobian J[i][j] = d(x_j)/d(r_i) at (ξ, η) from the in-plane
// coordinates x of the vertices. It also returns the shape functions and their derivatives
func Qua4Jacobian(x [4][2]float64, ξ, η float64) (S, dSdξ, dSdη [4]float64, J [2][2]float64) {
	S, dSdξ, dSdη = Qua4(ξ, η)
	for m := 0; m < 4; m++ {
		J[0][0] += dSdξ[m] * x[m][0]
		J[0][1] += dSdξ[m] * x[m][1]
		J[1][0] += dSdη[m] * x[m][0]
		J[1][1] += dSdη[m] * x[m][1]
	}
	return
}
