// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solid implements structural elements: trusses, beams and flat shells
package solid

import (
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/ele"
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/inp"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Truss represents a structural rod element (for axial loads only) with 2 nodes;
// implemented with constant stiffness matrix; i.e. no numerical integration is needed
//
//  Props: A, E            Nodes: 0 and 1
//
//   (0)o====================o(1)
//
type Truss struct {
	ele.Base

	// parameters and properties
	A0 float64 // reference cross-sectional area
	A  float64 // current cross-sectional area
	L  float64 // length of rod
	C  r3.Vec  // direction cosines
}

// register element
func init() {
	ele.SetAllocator(inp.KindTruss, 2, func(id int, group string, prop *inp.PropSet, verts []int, x []r3.Vec) (ele.Element, error) {

		// check
		if len(verts) != 2 {
			chk.Panic("truss element %d needs 2 vertices; %d given", id, len(verts))
		}
		if len(prop.Vals) != 2 {
			return nil, chk.Err("truss needs {A, E}; %d values given", len(prop.Vals))
		}

		// basic data
		var o Truss
		o.Base = ele.NewBase(inp.KindTruss, id, group, verts, x, ele.FreeTranslation, prop.Vals[1])
		o.A0 = prop.Vals[0]
		o.A = o.A0

		// geometry
		d := r3.Sub(x[1], x[0])
		o.L = r3.Norm(d)
		if o.L < 1e-12 {
			return nil, chk.Err("truss element %d has zero length", id)
		}
		o.C = r3.Scale(1.0/o.L, d)
		o.Vol = o.A0 * o.L

		// K matrix
		o.SetK0(o.stiffness())
		return &o, nil
	})
}

// Nprops returns the number of properties
func (o *Truss) Nprops() int { return 2 }

// Property returns A or E(x)
func (o *Truss) Property(i int) float64 {
	switch i {
	case 0:
		return o.A
	case 1:
		return o.Modulus()
	}
	chk.Panic("truss element %d: property index %d is out of range [0, 2)", o.Eid, i)
	return 0
}

// Scale scales the cross-sectional area
func (o *Truss) Scale(factor float64) {
	o.A = o.A0 * factor
	o.SetK0(o.stiffness())
}

// ResetScale restores the reference cross-sectional area
func (o *Truss) ResetScale() {
	o.Scale(1)
}

// stiffness computes K = (A E / L) [c cᵀ, -c cᵀ; -c cᵀ, c cᵀ]
func (o *Truss) stiffness() (K *mat.SymDense) {
	α := o.A * o.E0 / o.L
	c := []float64{o.C.X, o.C.Y, o.C.Z}
	K = mat.NewSymDense(6, nil)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			k := α * c[i] * c[j]
			K.SetSym(i, j, k)
			K.SetSym(i+3, j+3, k)
		}
		for j := 0; j < 3; j++ {
			K.SetSym(i, j+3, -α*c[i]*c[j])
		}
	}
	return
}
