// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"

	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/ana"
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/ele"
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/inp"
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/msolid"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Beam represents a structural beam element (Euler-Bernoulli, linear elastic)
// with a solid b × h rectangular cross-section
//
//                        ,o--------o    ,x
//                      ,' |     ,' |  ,'
//        z           ,'       ,'   |,'
//         ^        ,'       ,'    ,|
//         |      ,'       ,'    ,  |       Props:        Nodes:
//         |    ,'       ,'    ,    |        b, h, E, ν    0 and 1
//         |  ,'       ,'  | ,      |
//         |,'       ,'   (1) - - - o
//         o--------o    ,        ,'       x: axis from (0) to (1)
//         |        |  ,        ,'         y: along b; unit(Z × x) or global Y if x is vertical
//         |        |,        ,'           z: along h; x × y
//         |       ,|       ,'
//         |     ,  |     ,'
//         |   ,    |   ,'
//         | ,      | ,'
//        (0)-------o' --------> y
//
type Beam struct {
	ele.Base

	// parameters and properties
	B0  float64              // reference width
	Sec *ana.Rectangle       // current cross-section
	Poi float64              // Poisson's coefficient
	Mdl *msolid.OnedLinElast // section model at full density
	L   float64              // length of beam

	// unit vectors aligned with beam element
	E0v r3.Vec // local x
	E1v r3.Vec // local y
	E2v r3.Vec // local z

	// transformation
	R *mat.Dense // [3][3] global-to-local rotation; rows are local axes
}

// VerticalTol is the tolerance (relative to L) on the horizontal projection of the axis
// below which a beam is considered vertical
const VerticalTol = 1e-6

// register element
func init() {
	ele.SetAllocator(inp.KindBeam, 2, func(id int, group string, prop *inp.PropSet, verts []int, x []r3.Vec) (ele.Element, error) {

		// check
		if len(verts) != 2 {
			chk.Panic("beam element %d needs 2 vertices; %d given", id, len(verts))
		}
		if len(prop.Vals) != 4 {
			return nil, chk.Err("beam needs {b, h, E, ν}; %d values given", len(prop.Vals))
		}

		// basic data
		var o Beam
		o.Base = ele.NewBase(inp.KindBeam, id, group, verts, x, ele.FreeAll, prop.Vals[2])
		o.B0 = prop.Vals[0]
		o.Sec = ana.NewRectangle(o.B0, prop.Vals[1])
		o.Poi = prop.Vals[3]
		if o.Poi <= -1 || o.Poi >= 0.5 {
			return nil, chk.Err("beam element %d: Poisson's coefficient ν = %g is invalid", id, o.Poi)
		}
		o.Mdl = msolid.NewOnedLinElast(o.E0, o.Poi, o.Sec)

		// geometry
		d := r3.Sub(x[1], x[0])
		o.L = r3.Norm(d)
		if o.L < 1e-12 {
			return nil, chk.Err("beam element %d has zero length", id)
		}
		o.E0v, o.E1v, o.E2v = BeamFrame(d)
		o.R = ele.Frame(o.E0v, o.E1v, o.E2v)
		o.Vol = o.Sec.A * o.L

		// K matrix
		o.SetK0(o.stiffness())
		return &o, nil
	})
}

// BeamFrame returns the local axes of a beam with axis d
func BeamFrame(d r3.Vec) (ex, ey, ez r3.Vec) {
	L := r3.Norm(d)
	ex = r3.Scale(1.0/L, d)
	if math.Hypot(d.X, d.Y) < VerticalTol*L {
		ey = r3.Vec{Y: 1}
	} else {
		ey = r3.Unit(r3.Cross(r3.Vec{Z: 1}, ex))
	}
	ez = r3.Cross(ex, ey)
	return
}

// Nprops returns the number of properties
func (o *Beam) Nprops() int { return 4 }

// Property returns b, h, E(x) or ν
func (o *Beam) Property(i int) float64 {
	switch i {
	case 0:
		return o.Sec.B
	case 1:
		return o.Sec.H
	case 2:
		return o.Modulus()
	case 3:
		return o.Poi
	}
	chk.Panic("beam element %d: property index %d is out of range [0, 4)", o.Eid, i)
	return 0
}

// Scale scales the width of the cross-section
func (o *Beam) Scale(factor float64) {
	o.Sec = ana.NewRectangle(o.B0*factor, o.Sec.H)
	o.Mdl = msolid.NewOnedLinElast(o.E0, o.Poi, o.Sec)
	o.SetK0(o.stiffness())
}

// ResetScale restores the reference width
func (o *Beam) ResetScale() {
	o.Scale(1)
}

// stiffness computes K = Tᵀ Kl T
func (o *Beam) stiffness() *mat.SymDense {

	// constants
	EIr := o.Mdl.BendingZ() // bending in x-y plane
	EIs := o.Mdl.BendingY() // bending in x-z plane
	GJ := o.Mdl.Torsion()
	EA := o.Mdl.Axial()
	l := o.L
	ll := l * l
	lll := l * ll

	// stiffness matrix in local system (upper triangle)
	Kl := mat.NewSymDense(12, nil)
	Kl.SetSym(0, 0, EA/l)
	Kl.SetSym(0, 6, -EA/l)

	Kl.SetSym(1, 1, 12.0*EIr/lll)
	Kl.SetSym(1, 5, 6.0*EIr/ll)
	Kl.SetSym(1, 7, -12.0*EIr/lll)
	Kl.SetSym(1, 11, 6.0*EIr/ll)

	Kl.SetSym(2, 2, 12.0*EIs/lll)
	Kl.SetSym(2, 4, -6.0*EIs/ll)
	Kl.SetSym(2, 8, -12.0*EIs/lll)
	Kl.SetSym(2, 10, -6.0*EIs/ll)

	Kl.SetSym(3, 3, GJ/l)
	Kl.SetSym(3, 9, -GJ/l)

	Kl.SetSym(4, 4, 4.0*EIs/l)
	Kl.SetSym(4, 8, 6.0*EIs/ll)
	Kl.SetSym(4, 10, 2.0*EIs/l)

	Kl.SetSym(5, 5, 4.0*EIr/l)
	Kl.SetSym(5, 7, -6.0*EIr/ll)
	Kl.SetSym(5, 11, 2.0*EIr/l)

	Kl.SetSym(6, 6, EA/l)

	Kl.SetSym(7, 7, 12.0*EIr/lll)
	Kl.SetSym(7, 11, -6.0*EIr/ll)

	Kl.SetSym(8, 8, 12.0*EIs/lll)
	Kl.SetSym(8, 10, 6.0*EIs/ll)

	Kl.SetSym(9, 9, GJ/l)

	Kl.SetSym(10, 10, 4.0*EIs/l)

	Kl.SetSym(11, 11, 4.0*EIr/l)

	// stiffness matrix in global system
	return ele.Transform(Kl, o.R)
}
