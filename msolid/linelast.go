// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msolid implements linear elastic models for structural elements
package msolid

import (
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/ana"
	"github.com/cpmech/gosl/chk"
)

// LinElast implements isotropic linear elasticity for plates and shells
type LinElast struct {
	E  float64 // Young's modulus
	Nu float64 // Poisson's coefficient
	G  float64 // shear modulus
}

// NewLinElast returns a new isotropic model
func NewLinElast(E, ν float64) (o *LinElast) {
	if E <= 0 || ν <= -1 || ν >= 0.5 {
		chk.Panic("invalid elastic parameters: E=%g, ν=%g", E, ν)
	}
	return &LinElast{E: E, Nu: ν, G: E / (2.0 * (1.0 + ν))}
}

// PlaneStress returns the membrane rigidity t・D of a plane-stress layer of thickness t
//  {nx, ny, nxy} = t D {εx, εy, γxy}
func (o *LinElast) PlaneStress(t float64) [][]float64 {
	return o.layer(t)
}

// Plate returns the bending rigidity of a plate of thickness t
//  {mx, my, mxy} = t³/12 D {κx, κy, κxy}
func (o *LinElast) Plate(t float64) [][]float64 {
	return o.layer(t * t * t / 12.0)
}

// TransverseShear returns the transverse shear rigidity of a plate of thickness t with
// shear correction factor κ
func (o *LinElast) TransverseShear(t, κ float64) [][]float64 {
	c := κ * o.G * t
	return [][]float64{{c, 0}, {0, c}}
}

// BendingStiffness returns E t³ / (12 (1 - ν²))
func (o *LinElast) BendingStiffness(t float64) float64 {
	return o.E * t * t * t / (12.0 * (1.0 - o.Nu*o.Nu))
}

// layer returns s・D where D is the plane-stress elasticity matrix
func (o *LinElast) layer(s float64) [][]float64 {
	c := s * o.E / (1.0 - o.Nu*o.Nu)
	return [][]float64{
		{c, c * o.Nu, 0},
		{c * o.Nu, c, 0},
		{0, 0, c * (1.0 - o.Nu) / 2.0},
	}
}

// OnedLinElast implements a linear elastic model for 1D elements with a rectangular section
type OnedLinElast struct {
	E   float64 // Young's modulus
	G   float64 // shear modulus
	A   float64 // cross-sectional area
	Iy  float64 // moment of inertia about local y
	Iz  float64 // moment of inertia about local z
	Jtt float64 // torsional constant
}

// NewOnedLinElast returns a new model for the given section
func NewOnedLinElast(E, ν float64, sec *ana.Rectangle) (o *OnedLinElast) {
	m := NewLinElast(E, ν)
	return &OnedLinElast{E: E, G: m.G, A: sec.A, Iy: sec.Iy, Iz: sec.Iz, Jtt: sec.J}
}

// Axial returns E A
func (o *OnedLinElast) Axial() float64 { return o.E * o.A }

// Torsion returns G J
func (o *OnedLinElast) Torsion() float64 { return o.G * o.Jtt }

// BendingY returns E Iy; i.e. bending in the local x-z plane
func (o *OnedLinElast) BendingY() float64 { return o.E * o.Iy }

// BendingZ returns E Iz; i.e. bending in the local x-y plane
func (o *OnedLinElast) BendingZ() float64 { return o.E * o.Iz }
