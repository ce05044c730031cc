// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opt

import (
	"errors"
	"fmt"
	"math"

	"github.com/cpmech/gosl/chk"
)

// ErrBisection is returned when the Lagrange multiplier of the volume constraint cannot be found
var ErrBisection = errors.New("bisection of the volume multiplier did not converge")

// bisection constants
const (
	OcMaxSteps = 200  // max number of doubling and bisection steps
	OcRelTol   = 1e-3 // tolerance on (λhi - λlo) / (λhi + λlo)
)

// OC computes new densities with the optimality criteria update
//
//  xnew_i = clip(x_i sqrt(-dc_i / (λ dv_i)), max(xmin, x_i - move), min(1, x_i + move))
//
// where λ is found by bisection such that Σ xnew_i dv_i / Σ dv_i = f. When the move limits keep
// f out of reach, every element is clamped to the bound closest to f
func OC(x, dc, dv []float64, f, move, xmin float64) (xnew []float64, λ float64, err error) {

	// check
	n := len(x)
	if len(dc) != n || len(dv) != n {
		return nil, 0, chk.Err("OC: sizes of x, dc and dv must be equal; %d, %d, %d given", n, len(dc), len(dv))
	}
	var total float64
	for i := 0; i < n; i++ {
		if dv[i] <= 0 {
			return nil, 0, chk.Err("OC: volume sensitivity %d must be positive; %g is invalid", i, dv[i])
		}
		total += dv[i]
	}
	target := f * total

	// update at given λ and resulting volume
	xnew = make([]float64, n)
	update := func(λ float64) (vol float64) {
		for i := 0; i < n; i++ {
			lo := math.Max(xmin, x[i]-move)
			hi := math.Min(1, x[i]+move)
			v := lo
			if arg := -dc[i] / (λ * dv[i]); arg > 0 {
				v = math.Max(lo, math.Min(hi, x[i]*math.Sqrt(arg)))
			}
			xnew[i] = v
			vol += v * dv[i]
		}
		return
	}

	// volume reachable within the move limits: λ → ∞ takes every element to its lower bound and
	// λ = 0 takes elements with negative sensitivity to their upper bound
	var vmin float64
	for i := 0; i < n; i++ {
		vmin += math.Max(xmin, x[i]-move) * dv[i]
	}
	if update(0) <= target {
		return xnew, 0, nil
	}

	// upper bound. The clamped design is returned if the target is out of reach in this iteration
	lo, hi := 0.0, 1.0
	steps := 0
	for vol := update(hi); vol > target; vol = update(hi) {
		if vol <= vmin {
			return xnew, hi, nil
		}
		lo = hi
		hi *= 2
		steps++
		if steps > OcMaxSteps || math.IsInf(hi, 0) {
			return nil, 0, fmt.Errorf("%w: no multiplier satisfies the volume %g", ErrBisection, f)
		}
	}

	// bisection
	for steps = 0; (hi-lo)/(hi+lo) >= OcRelTol; steps++ {
		if steps > OcMaxSteps {
			return nil, 0, fmt.Errorf("%w: %d steps exceeded", ErrBisection, OcMaxSteps)
		}
		λ = 0.5 * (lo + hi)
		if update(λ) > target {
			lo = λ
		} else {
			hi = λ
		}
	}
	λ = hi
	update(λ)
	return
}

// Volfrac returns the volume-weighted fraction Σ x_i v_i / Σ v_i
func Volfrac(x, v []float64) float64 {
	var num, den float64
	for i := range x {
		num += x[i] * v[i]
		den += v[i]
	}
	if den == 0 {
		return 0
	}
	return num / den
}
