// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions and reference data
package ana

import (
	"github.com/cpmech/gosl/chk"
)

// Rectangle holds the properties of a solid rectangular cross-section
//
//          z (local)
//          ^
//     +----|----+  ---
//     |    |    |   |
//     |    +----|---|---> y (local)
//     |         |   | h = hei
//     +---------+  ---
//     |<-- b -->|
//
type Rectangle struct {

	// input
	B float64 // width (along local y)
	H float64 // height (along local z)

	// derived
	A  float64 // cross-sectional area
	Iy float64 // moment of inertia about local y (bending in x-z plane)
	Iz float64 // moment of inertia about local z (bending in x-y plane)
	J  float64 // torsional constant
}

// NewRectangle computes the properties of a b × h rectangle
func NewRectangle(b, h float64) (o *Rectangle) {
	if b <= 0 || h <= 0 {
		chk.Panic("rectangle dimensions must be positive. b=%g, h=%g is invalid", b, h)
	}
	o = &Rectangle{B: b, H: h}
	o.A = b * h
	o.Iy = b * h * h * h / 12.0
	o.Iz = h * b * b * b / 12.0
	o.J = TorsionConstant(b, h)
	return
}

// TorsionConstant returns the (approximate) torsional constant of a solid rectangle
func TorsionConstant(b, h float64) float64 {
	if b == h {
		return 9.0 * b * b * b * b / 64.0
	}
	if b > h {
		b, h = h, b
	}
	b3 := b * b * b
	h3 := h * h * h
	return h * b3 * (1.0/3.0 - 0.21*(b/h)*(1.0-b*b3/(12.0*h*h3)))
}

// Material holds parameters of some reference materials
type Material struct {
	Desc string  // description
	E    float64 // Young's modulus [MPa]
	Nu   float64 // Poisson's coefficient
	G    float64 // shear modulus [MPa]
}

// NewMaterial returns reference material parameters
func NewMaterial(typ string) (o *Material) {
	o = new(Material)
	switch typ {
	case "steel":
		o.Desc = "Steel: structural A36"
		o.E = 200000.0 // [MPa]
		o.Nu = 0.32    // [-]
	case "aluminum":
		o.Desc = "Aluminum: 2014-T6"
		o.E = 73100.0 // [MPa]
		o.Nu = 0.35   // [-]
	case "concrete-low":
		o.Desc = "Concrete: low strength"
		o.E = 22100.0 // [MPa]
		o.Nu = 0.15   // [-]
	case "concrete-high":
		o.Desc = "Concrete: high strength"
		o.E = 30000.0 // [MPa]
		o.Nu = 0.15   // [-]
	case "wood-douglas-fir":
		o.Desc = "Wood: Douglas-fir"
		o.E = 13100.0 // [MPa]
		o.Nu = 0.29   // [-]
	default:
		chk.Panic("material type %q is unavailable", typ)
	}
	o.G = o.E / (2.0 * (1.0 + o.Nu))
	return
}
