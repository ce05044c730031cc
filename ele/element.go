// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements structural finite elements with SIMP density interpolation
package ele

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Element defines what all elements must implement
type Element interface {

	// information and initialisation
	Id() int                        // returns the element Id
	Kind() string                   // element kind; e.g. "truss", "beam", "flatshell"
	Group() string                  // group (e.g. space) the element belongs to
	Verts() []int                   // indices of nodes in the domain's arena
	Freedoms() []Freedom            // element freedom signature of each vertex
	SetEqs(eqs [][]int) (err error) // set equations. eqs[m][dof] == -1 means "not an unknown"

	// geometry (unscaled)
	Volume() float64   // element volume
	Center() r3.Vec    // element centre
	Diagonal() float64 // largest distance between two vertices

	// properties and stiffness
	Nprops() int              // number of properties
	Property(i int) float64   // current value of property i; panics if i is out of range
	Scale(factor float64)     // scales the cross-section (truss, beam) or the thickness (shell)
	ResetScale()              // restores the reference properties
	Stiffness() *mat.SymDense // current (density-scaled) stiffness in global coordinates
	AddToKb(Kb *mat.SymDense) // adds K to the upper triangle of the global matrix

	// density
	Density() float64               // current density
	UpdateDensity(x, penal float64) // recomputes K = E(x)/E0・K0

	// results
	Update(sol *Solution)                    // gathers displacements and computes the strain energy
	Displacements() []float64                // local displacements of the last Update
	Energy() float64                         // ½ uᵀ K u
	EnergySensitivity(penal float64) float64 // -∂(½ uᵀ K u)/∂x at fixed displacements
	VolumeSensitivity() float64              // d(Volume)/dx
}
