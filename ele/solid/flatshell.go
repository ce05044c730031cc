// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"

	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/ele"
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/inp"
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/msolid"
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// FlatShell represents a planar 4-node quadrilateral shell element: bilinear plane-stress
// membrane + Mindlin plate with MITC4 transverse shear + drilling stiffness
//
//   (3)o----------o(2)      local x: along (0)->(1)
//      |    η     |         local z: normal = unit((2)-(0) × (3)-(1))
//      |    ^     |         local y: z × x
//      |    +-> ξ |
//      |          |         Props: t, E, ν
//   (0)o----------o(1)      Nodes: 0, 1, 2, 3 (counter-clockwise about the normal)
//
//  local dofs per node: u, v, w, θx, θy, θz with u = z θy and v = -z θx across the thickness
type FlatShell struct {
	ele.Base

	// parameters and properties
	T0   float64          // reference thickness
	T    float64          // current thickness
	Poi  float64          // Poisson's coefficient
	Area float64          // area of mid-surface
	Mdl  *msolid.LinElast // material model at full density

	// local system
	Ex r3.Vec        // local x
	Ey r3.Vec        // local y
	Ez r3.Vec        // normal
	Xl [4][2]float64 // local coordinates of vertices
	R  *mat.Dense    // [3][3] global-to-local rotation; rows are local axes
}

// constants
const (
	ShearCorrection = 5.0 / 6.0 // shear correction factor
	DrillRatio      = 1e-3      // drilling stiffness as a fraction of the bending stiffness
	WarpTol         = 1e-3      // max out-of-plane distance of vertices, relative to the diagonal
)

// integration points (2 × 2 Gauss-Legendre)
var gaussX, gaussW = make([]float64, 2), make([]float64, 2)

// register element
func init() {
	quad.Legendre{}.FixedLocations(gaussX, gaussW, -1, 1)

	ele.SetAllocator(inp.KindShell, 4, func(id int, group string, prop *inp.PropSet, verts []int, x []r3.Vec) (ele.Element, error) {

		// check
		if len(verts) != 4 {
			chk.Panic("flat shell element %d needs 4 vertices; %d given", id, len(verts))
		}
		if len(prop.Vals) != 3 {
			return nil, chk.Err("flat shell needs {t, E, ν}; %d values given", len(prop.Vals))
		}

		// basic data
		var o FlatShell
		o.Base = ele.NewBase(inp.KindShell, id, group, verts, x, ele.FreeAll, prop.Vals[1])
		o.T0 = prop.Vals[0]
		o.T = o.T0
		o.Poi = prop.Vals[2]
		if o.Poi <= -1 || o.Poi >= 0.5 {
			return nil, chk.Err("flat shell element %d: Poisson's coefficient ν = %g is invalid", id, o.Poi)
		}
		o.Mdl = msolid.NewLinElast(o.E0, o.Poi)

		// local system
		n := r3.Cross(r3.Sub(x[2], x[0]), r3.Sub(x[3], x[1]))
		if r3.Norm(n) < 1e-12*o.Diag*o.Diag {
			return nil, chk.Err("flat shell element %d is degenerated", id)
		}
		o.Ez = r3.Unit(n)
		d01 := r3.Sub(x[1], x[0])
		o.Ex = r3.Unit(r3.Sub(d01, r3.Scale(r3.Dot(d01, o.Ez), o.Ez)))
		o.Ey = r3.Cross(o.Ez, o.Ex)
		o.R = ele.Frame(o.Ex, o.Ey, o.Ez)
		for m := 0; m < 4; m++ {
			d := r3.Sub(x[m], o.Ctr)
			if warp := math.Abs(r3.Dot(d, o.Ez)); warp > WarpTol*o.Diag {
				return nil, chk.Err("flat shell element %d is not planar: vertex %d is %g away from the mid-plane", id, m, warp)
			}
			o.Xl[m][0] = r3.Dot(d, o.Ex)
			o.Xl[m][1] = r3.Dot(d, o.Ey)
		}

		// area
		for p, ξ := range gaussX {
			for q, η := range gaussX {
				_, _, _, J := o.shape(ξ, η)
				det := J[0][0]*J[1][1] - J[0][1]*J[1][0]
				if det <= 0 {
					return nil, chk.Err("flat shell element %d has a non-positive Jacobian (det=%g); check vertex ordering and convexity", id, det)
				}
				o.Area += det * gaussW[p] * gaussW[q]
			}
		}
		o.Vol = o.T0 * o.Area

		// K matrix
		o.SetK0(o.stiffness())
		return &o, nil
	})
}

// Nprops returns the number of properties
func (o *FlatShell) Nprops() int { return 3 }

// Property returns t, E(x) or ν
func (o *FlatShell) Property(i int) float64 {
	switch i {
	case 0:
		return o.T
	case 1:
		return o.Modulus()
	case 2:
		return o.Poi
	}
	chk.Panic("flat shell element %d: property index %d is out of range [0, 3)", o.Eid, i)
	return 0
}

// Scale scales the thickness
func (o *FlatShell) Scale(factor float64) {
	o.T = o.T0 * factor
	o.SetK0(o.stiffness())
}

// ResetScale restores the reference thickness
func (o *FlatShell) ResetScale() {
	o.Scale(1)
}

// shape computes shape functions, their derivatives w.r.t natural coordinates and the Jacobian
//  J = [[dx/dξ, dy/dξ], [dx/dη, dy/dη]]
func (o *FlatShell) shape(ξ, η float64) (N, dNdξ, dNdη [4]float64, J [2][2]float64) {
	return shp.Qua4Jacobian(o.Xl, ξ, η)
}

// covariant computes the rows of the covariant transverse shear strains {γξ, γη} at (ξ, η).
// Columns are w, θx, θy of each vertex
func (o *FlatShell) covariant(ξ, η float64) (bξ, bη [12]float64) {
	N, dNdξ, dNdη, J := o.shape(ξ, η)
	for i := 0; i < 4; i++ {
		bξ[3*i] = dNdξ[i]
		bξ[3*i+1] = -N[i] * J[0][1]
		bξ[3*i+2] = N[i] * J[0][0]
		bη[3*i] = dNdη[i]
		bη[3*i+1] = -N[i] * J[1][1]
		bη[3*i+2] = N[i] * J[1][0]
	}
	return
}

// stiffness computes K = Tᵀ Kl T
func (o *FlatShell) stiffness() *mat.SymDense {

	// constitutive matrices
	t := o.T
	Dm := o.Mdl.PlaneStress(t)
	Db := o.Mdl.Plate(t)
	Ds := o.Mdl.TransverseShear(t, ShearCorrection)

	// local equations
	var mIdx, bIdx []int
	for i := 0; i < 4; i++ {
		mIdx = append(mIdx, 6*i, 6*i+1)
		bIdx = append(bIdx, 6*i+2, 6*i+3, 6*i+4)
	}

	// MITC4 tying points: A(0,1), B(-1,0), C(0,-1), D(1,0)
	bξA, _ := o.covariant(0, 1)
	_, bηB := o.covariant(-1, 0)
	bξC, _ := o.covariant(0, -1)
	_, bηD := o.covariant(1, 0)

	// integration
	Kl := mat.NewSymDense(24, nil)
	Bm := utl.Alloc(3, 8)
	Bb := utl.Alloc(3, 12)
	Bs := utl.Alloc(2, 12)
	for p, ξ := range gaussX {
		for q, η := range gaussX {
			_, dNdξ, dNdη, J := o.shape(ξ, η)
			det := J[0][0]*J[1][1] - J[0][1]*J[1][0]
			Ji := [2][2]float64{{J[1][1] / det, -J[0][1] / det}, {-J[1][0] / det, J[0][0] / det}}
			coef := det * gaussW[p] * gaussW[q]

			// membrane and bending
			for i := 0; i < 4; i++ {
				dNdx := Ji[0][0]*dNdξ[i] + Ji[0][1]*dNdη[i]
				dNdy := Ji[1][0]*dNdξ[i] + Ji[1][1]*dNdη[i]
				Bm[0][2*i], Bm[0][2*i+1] = dNdx, 0
				Bm[1][2*i], Bm[1][2*i+1] = 0, dNdy
				Bm[2][2*i], Bm[2][2*i+1] = dNdy, dNdx
				Bb[0][3*i], Bb[0][3*i+1], Bb[0][3*i+2] = 0, 0, dNdx
				Bb[1][3*i], Bb[1][3*i+1], Bb[1][3*i+2] = 0, -dNdy, 0
				Bb[2][3*i], Bb[2][3*i+1], Bb[2][3*i+2] = 0, -dNdx, dNdy
			}
			addBtDB(Kl, mIdx, Bm, Dm, coef)
			addBtDB(Kl, bIdx, Bb, Db, coef)

			// assumed transverse shear
			for k := 0; k < 12; k++ {
				gξ := 0.5*(1+η)*bξA[k] + 0.5*(1-η)*bξC[k]
				gη := 0.5*(1+ξ)*bηD[k] + 0.5*(1-ξ)*bηB[k]
				Bs[0][k] = Ji[0][0]*gξ + Ji[0][1]*gη
				Bs[1][k] = Ji[1][0]*gξ + Ji[1][1]*gη
			}
			addBtDB(Kl, bIdx, Bs, Ds, coef)
		}
	}

	// drilling
	kd := DrillRatio * o.Mdl.BendingStiffness(t)
	for i := 0; i < 4; i++ {
		Kl.SetSym(6*i+5, 6*i+5, kd)
	}

	// stiffness matrix in global system
	return ele.Transform(Kl, o.R)
}

// addBtDB adds coef・Bᵀ D B into the upper triangle of K. idx maps columns of B to rows of K
// and must be increasing
func addBtDB(K *mat.SymDense, idx []int, B, D [][]float64, coef float64) {
	nr, nc := len(B), len(idx)
	DB := utl.Alloc(nr, nc)
	for k := 0; k < nr; k++ {
		for b := 0; b < nc; b++ {
			for l := 0; l < nr; l++ {
				DB[k][b] += D[k][l] * B[l][b]
			}
		}
	}
	for a := 0; a < nc; a++ {
		for b := a; b < nc; b++ {
			s := 0.0
			for k := 0; k < nr; k++ {
				s += B[k][a] * DB[k][b]
			}
			if s != 0 {
				K.SetSym(idx[a], idx[b], K.At(idx[a], idx[b])+coef*s)
			}
		}
	}
}
