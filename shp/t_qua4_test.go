// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/diff/fd"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_qua401(tst *testing.T) {

	//verbose()
	chk.PrintTitle("qua401. shape functions evaluate to 1.0 @ nodes")

	errS := 0.0
	for n := 0; n < 4; n++ {
		S, _, _ := Qua4(Qua4NatCoords[0][n], Qua4NatCoords[1][n])
		io.Pforan("S = %v\n", S)
		for m := 0; m < 4; m++ {
			if n == m {
				errS += math.Abs(S[m] - 1.0)
			} else {
				errS += math.Abs(S[m])
			}
		}
	}
	chk.Float64(tst, "errS", 1e-17, errS, 0)

	// partition of unity
	for _, r := range [][]float64{{0, 0}, {0.3, -0.7}, {-0.5, 0.9}} {
		S, dSdξ, dSdη := Qua4(r[0], r[1])
		chk.Float64(tst, "ΣS", 1e-15, S[0]+S[1]+S[2]+S[3], 1)
		chk.Float64(tst, "ΣdSdξ", 1e-15, dSdξ[0]+dSdξ[1]+dSdξ[2]+dSdξ[3], 0)
		chk.Float64(tst, "ΣdSdη", 1e-15, dSdη[0]+dSdη[1]+dSdη[2]+dSdη[3], 0)
	}
}

func Test_qua402(tst *testing.T) {

	//verbose()
	chk.PrintTitle("qua402. derivatives of shape functions")

	ξ, η := 0.25, -0.4
	_, dSdξ, dSdη := Qua4(ξ, η)
	for m := 0; m < 4; m++ {
		numξ := fd.Derivative(func(x float64) float64 {
			S, _, _ := Qua4(x, η)
			return S[m]
		}, ξ, nil)
		numη := fd.Derivative(func(x float64) float64 {
			S, _, _ := Qua4(ξ, x)
			return S[m]
		}, η, nil)
		chk.AnaNum(tst, io.Sf("dS%d/dξ", m), 1e-6, dSdξ[m], numξ, chk.Verbose)
		chk.AnaNum(tst, io.Sf("dS%d/dη", m), 1e-6, dSdη[m], numη, chk.Verbose)
	}
}

func Test_qua403(tst *testing.T) {

	//verbose()
	chk.PrintTitle("qua403. Jacobian of a 2 × 1 rectangle")

	x := [4][2]float64{{0, 0}, {2, 0}, {2, 1}, {0, 1}}
	_, _, _, J := Qua4Jacobian(x, 0.3, 0.1)
	io.Pforan("J = %v\n", J)
	chk.Float64(tst, "J00", 1e-15, J[0][0], 1.0)
	chk.Float64(tst, "J01", 1e-15, J[0][1], 0.0)
	chk.Float64(tst, "J10", 1e-15, J[1][0], 0.0)
	chk.Float64(tst, "J11", 1e-15, J[1][1], 0.5)
}
