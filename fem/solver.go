// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"fmt"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"
)

// ErrSingular is returned when the global stiffness matrix cannot be factorised;
// e.g. because of rigid-body modes or void regions
var ErrSingular = errors.New("global stiffness matrix is singular")

// Solve solves the system for load case lc using the last assembled stiffness matrix.
// After Solve, nodal displacements and the strain energy of all elements correspond to lc
func (o *Domain) Solve(lc int) (err error) {

	// check
	if !o.finalized {
		return chk.Err("domain must be finalised before solving")
	}
	if o.Neq == 0 {
		return fmt.Errorf("load case %d: %w: there are no unknowns", lc, ErrSingular)
	}

	// factorisation
	if !o.factored {
		if ok := o.chol.Factorize(o.Kb); !ok {
			return fmt.Errorf("load case %d: %w: matrix is not positive definite", lc, ErrSingular)
		}
		if o.MaxCond > 0 {
			if cond := o.chol.Cond(); cond > o.MaxCond || math.IsNaN(cond) {
				return fmt.Errorf("load case %d: %w: condition number estimate %g exceeds %g", lc, ErrSingular, cond, o.MaxCond)
			}
		}
		o.factored = true
	}

	// solve
	if err = o.AssembleF(lc); err != nil {
		return
	}
	var u mat.VecDense
	if err = o.chol.SolveVecTo(&u, mat.NewVecDense(o.Neq, o.Fb)); err != nil {
		return fmt.Errorf("load case %d: %w: %v", lc, ErrSingular, err)
	}
	for i := 0; i < o.Neq; i++ {
		v := u.AtVec(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("load case %d: %w: non-finite displacement at equation %d", lc, ErrSingular, i)
		}
		o.Sol.Y[i] = v
	}
	o.Sol.Lc = lc

	// nodes and elements
	for _, nod := range o.Nodes {
		for dof, I := range nod.Eqs {
			nod.U[dof] = o.Sol.Get(I)
		}
	}
	for _, e := range o.Elems {
		e.Update(o.Sol)
	}
	if o.ShowMsg {
		io.Pf("> Load case %d solved. compliance = %g\n", lc, o.Compliance())
	}
	return
}

// AssembleAndSolve assembles the stiffness matrix and solves load case lc
func (o *Domain) AssembleAndSolve(lc int) (err error) {
	if err = o.AssembleK(); err != nil {
		return
	}
	return o.Solve(lc)
}
