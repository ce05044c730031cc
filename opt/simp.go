// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opt

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/fem"
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNotConverged is returned when the max number of iterations is reached before convergence
var ErrNotConverged = errors.New("topology optimisation did not converge")

// State is a state of the optimiser
type State int

// states
const (
	StateInit State = iota
	StateFilterSetup
	StateAssemble
	StateSolve
	StateSensitivity
	StateFilter
	StateBisect
	StateUpdate
	StateCheck
	StateConverged
	StateNotConverged
	StateFailed
)

var stateNames = []string{"INIT", "FILTER_SETUP", "ASSEMBLE", "SOLVE", "SENSITIVITY", "FILTER",
	"BISECT_VOLUME", "UPDATE_DENSITIES", "CHECK_CONVERGENCE", "CONVERGED", "NOT_CONVERGED", "FAILED"}

// String returns the name of the state
func (o State) String() string {
	if o < 0 || int(o) >= len(stateNames) {
		return io.Sf("State(%d)", int(o))
	}
	return stateNames[o]
}

// Terminal tells whether no further transition is possible
func (o State) Terminal() bool {
	return o == StateConverged || o == StateNotConverged || o == StateFailed
}

// Record holds the results of one iteration
type Record struct {
	Iter       int           // iteration number, starting at 1
	Compliance float64       // compliance summed over load cases
	Cases      []float64     // compliance of each load case
	Volfrac    float64       // volume fraction after the update
	Change     float64       // max |xnew - x|
	Lambda     float64       // multiplier of the volume constraint
	Duration   time.Duration // wall time of the iteration
}

// Observer is notified after each iteration
type Observer interface {
	Observe(o *Optimizer, rec *Record)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(o *Optimizer, rec *Record)

// Observe calls fcn
func (fcn ObserverFunc) Observe(o *Optimizer, rec *Record) { fcn(o, rec) }

// Optimizer runs the SIMP loop on a finalised domain
type Optimizer struct {

	// input
	Dom       *fem.Domain  // domain
	Ctrl      *inp.Control // control parameters
	Resume    bool         // start from the current densities of the domain instead of volfrac
	ShowMsg   bool         // show messages
	Observers []Observer   // called after each iteration

	// state
	State   State     // current state
	Iter    int       // number of completed iterations
	X       []float64 // densities
	Dc      []float64 // (filtered) compliance sensitivities
	Dv      []float64 // volume sensitivities
	Total   float64   // total volume
	Filter  *Filter   // sensitivity filter
	History []*Record // one record per iteration
	Lcs     []int     // load cases

	// auxiliary
	cases []float64 // compliance per load case of the current iteration
}

// NewOptimizer returns a new optimiser
func NewOptimizer(dom *fem.Domain, ctrl *inp.Control) (o *Optimizer, err error) {
	if dom == nil || len(dom.Elems) == 0 {
		return nil, chk.Err("optimiser needs a domain with elements")
	}
	if ctrl == nil {
		ctrl = inp.DefaultControl()
	}
	if err = ctrl.Validate(); err != nil {
		return
	}
	o = &Optimizer{Dom: dom, Ctrl: ctrl, ShowMsg: ctrl.Verbose || dom.ShowMsg}
	return
}

// Run runs the optimisation until convergence or maxit iterations
func (o *Optimizer) Run(ctx context.Context) (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// initialise
	if o.State == StateInit {
		if err = o.Init(); err != nil {
			return
		}
	}

	// loop
	for !o.State.Terminal() {
		if err = ctx.Err(); err != nil {
			o.State = StateFailed
			return
		}
		if err = o.Step(); err != nil {
			return
		}
	}
	if o.State == StateNotConverged {
		err = fmt.Errorf("%w after %d iterations: change = %g > tol = %g", ErrNotConverged, o.Iter, o.History[len(o.History)-1].Change, o.Ctrl.Tol)
	}
	return
}

// Init sets the initial densities, computes volumes and sets up the filter
func (o *Optimizer) Init() (err error) {

	// INIT
	o.State = StateInit
	dom := o.Dom
	n := len(dom.Elems)
	o.X = make([]float64, n)
	o.Dc = make([]float64, n)
	o.Dv = make([]float64, n)
	o.Total = 0
	for i, e := range dom.Elems {
		o.X[i] = o.Ctrl.Volfrac
		if o.Resume {
			o.X[i] = math.Max(o.Ctrl.Xmin, math.Min(1, e.Density()))
		}
		o.Dv[i] = e.VolumeSensitivity()
		o.Total += e.Volume()
	}
	o.Lcs = dom.LoadCases()
	if len(o.Lcs) == 0 {
		o.State = StateFailed
		return chk.Err("domain has no loads")
	}
	o.cases = make([]float64, len(o.Lcs))
	o.Iter = 0
	o.History = nil
	dom.Nworkers = o.Ctrl.Nworkers
	if err = dom.UpdateDensities(o.X, o.Ctrl.Penal); err != nil {
		o.State = StateFailed
		return
	}

	// FILTER_SETUP
	o.State = StateFilterSetup
	rmin := o.Ctrl.Rmin
	if rmin <= 0 {
		rmin = DefaultRadius(dom.Elems, o.Ctrl.RminFactor)
	}
	centers := make([]r3.Vec, n)
	for i, e := range dom.Elems {
		centers[i] = e.Center()
	}
	if o.Filter, err = NewFilter(centers, rmin, o.Ctrl.Nworkers); err != nil {
		o.State = StateFailed
		return
	}
	if o.ShowMsg {
		io.Pf("> SIMP: %d elements, %d load cases, volume = %g, rmin = %g, filter weights = %d\n", n, len(o.Lcs), o.Total, rmin, o.Filter.Nnz())
	}
	o.State = StateAssemble
	return
}

// Step runs one iteration: ASSEMBLE → SOLVE → SENSITIVITY → FILTER → BISECT_VOLUME →
// UPDATE_DENSITIES → CHECK_CONVERGENCE
func (o *Optimizer) Step() (err error) {

	// check
	if o.State != StateAssemble {
		return chk.Err("cannot step optimiser in state %v", o.State)
	}
	start := time.Now()
	dom := o.Dom
	penal := o.Ctrl.Penal
	defer func() {
		if err != nil {
			o.State = StateFailed
		}
	}()

	// ASSEMBLE
	if err = dom.AssembleK(); err != nil {
		return
	}

	// SOLVE and SENSITIVITY, summed over load cases
	for i := range o.Dc {
		o.Dc[i] = 0
	}
	var c float64
	for k, lc := range o.Lcs {
		o.State = StateSolve
		if err = dom.Solve(lc); err != nil {
			return fmt.Errorf("iteration %d: cannot solve load case %d: %w", o.Iter+1, lc, err)
		}
		o.State = StateSensitivity
		o.cases[k] = dom.Compliance()
		c += o.cases[k]
		for i, e := range dom.Elems {
			o.Dc[i] += 2.0 * e.EnergySensitivity(penal)
		}
	}

	// FILTER
	o.State = StateFilter
	o.Filter.Apply(o.Dc, o.X, o.Dc)

	// BISECT_VOLUME
	o.State = StateBisect
	xnew, λ, err := OC(o.X, o.Dc, o.Dv, o.Ctrl.Volfrac, o.Ctrl.Move, o.Ctrl.Xmin)
	if err != nil {
		return fmt.Errorf("iteration %d: %w", o.Iter+1, err)
	}

	// UPDATE_DENSITIES
	o.State = StateUpdate
	change := 0.0
	for i := range xnew {
		change = math.Max(change, math.Abs(xnew[i]-o.X[i]))
	}
	copy(o.X, xnew)
	if err = dom.UpdateDensities(o.X, penal); err != nil {
		return
	}

	// record
	o.Iter++
	rec := &Record{
		Iter:       o.Iter,
		Compliance: c,
		Cases:      append([]float64{}, o.cases...),
		Volfrac:    Volfrac(o.X, o.Dv),
		Change:     change,
		Lambda:     λ,
		Duration:   time.Since(start),
	}
	o.History = append(o.History, rec)
	if o.ShowMsg {
		io.Pf("%4d: c = %13.6e  vol = %.4f  change = %.4f\n", rec.Iter, rec.Compliance, rec.Volfrac, rec.Change)
	}
	for _, obs := range o.Observers {
		obs.Observe(o, rec)
	}

	// CHECK_CONVERGENCE
	o.State = StateCheck
	switch {
	case change <= o.Ctrl.Tol:
		o.State = StateConverged
	case o.Iter >= o.Ctrl.Maxit:
		o.State = StateNotConverged
	default:
		o.State = StateAssemble
	}
	return
}

// Last returns the last record or nil
func (o *Optimizer) Last() *Record {
	if len(o.History) == 0 {
		return nil
	}
	return o.History[len(o.History)-1]
}

// onexit prints the final message
func (o *Optimizer) onexit(cputime time.Time, prevErr error) error {
	if o.ShowMsg {
		if prevErr == nil {
			io.PfGreen("> SIMP converged after %d iterations\n", o.Iter)
		} else {
			io.PfRed("> SIMP stopped in state %v\n", o.State)
		}
		io.Pf("> CPU time = %v\n", time.Since(cputime))
	}
	return prevErr
}
