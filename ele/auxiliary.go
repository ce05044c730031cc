// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Base holds the data and methods shared by all structural elements.
// Variants embed Base and implement Nprops, Property, Scale and ResetScale
type Base struct {

	// basic data
	Eid   int       // element id
	Ekind string    // element kind
	Egrp  string    // group; e.g. space
	Vids  []int     // node indices
	Efs   []Freedom // element freedom signature of each vertex
	X     []r3.Vec  // nodal coordinates
	Nu    int       // total number of local dofs

	// geometry and material
	E0   float64 // reference Young's modulus
	Vol  float64 // volume computed from unscaled geometry
	Ctr  r3.Vec  // centre
	Diag float64 // largest distance between two vertices

	// density
	Rho   float64 // current density
	Penal float64 // penalisation exponent of the last update

	// matrices
	K0 *mat.SymDense // [nu][nu] stiffness at full density (current scaled properties)
	K  *mat.SymDense // [nu][nu] current stiffness

	// problem variables
	Umap   []int     // assembly map (location array/element equations)
	ue     []float64 // local displacements
	energy float64   // strain energy
}

// NewBase returns a Base with geometry computed from the vertices coordinates
func NewBase(kind string, id int, group string, verts []int, x []r3.Vec, efs Freedom, e0 float64) (o Base) {
	if len(verts) != len(x) {
		chk.Panic("%s element %d: number of vertices (%d) and coordinates (%d) differ", kind, id, len(verts), len(x))
	}
	o.Eid = id
	o.Ekind = kind
	o.Egrp = group
	o.Vids = verts
	o.X = x
	o.Efs = make([]Freedom, len(verts))
	for m := range o.Efs {
		o.Efs[m] = efs
		o.Nu += efs.Count()
	}
	o.E0 = e0
	o.Rho = 1
	o.Penal = 1
	for _, p := range x {
		o.Ctr = r3.Add(o.Ctr, p)
	}
	o.Ctr = r3.Scale(1.0/float64(len(x)), o.Ctr)
	for i := 0; i < len(x); i++ {
		for j := i + 1; j < len(x); j++ {
			o.Diag = math.Max(o.Diag, r3.Norm(r3.Sub(x[j], x[i])))
		}
	}
	o.ue = make([]float64, o.Nu)
	return
}

// SetK0 sets the stiffness at full density and recomputes the current stiffness
func (o *Base) SetK0(K0 *mat.SymDense) {
	if n := K0.SymmetricDim(); n != o.Nu {
		chk.Panic("%s element %d: stiffness dimension %d is incorrect; expected %d", o.Ekind, o.Eid, n, o.Nu)
	}
	o.K0 = K0
	if o.K == nil {
		o.K = mat.NewSymDense(o.Nu, nil)
	}
	o.UpdateDensity(o.Rho, o.Penal)
}

// Id returns the element Id
func (o *Base) Id() int { return o.Eid }

// Kind returns the element kind
func (o *Base) Kind() string { return o.Ekind }

// Group returns the group the element belongs to
func (o *Base) Group() string { return o.Egrp }

// Verts returns the node indices
func (o *Base) Verts() []int { return o.Vids }

// Freedoms returns the element freedom signatures
func (o *Base) Freedoms() []Freedom { return o.Efs }

// SetEqs set equations
func (o *Base) SetEqs(eqs [][]int) (err error) {
	if len(eqs) != len(o.Vids) {
		return chk.Err("%s element %d: number of equation sets (%d) must be equal to the number of vertices (%d)", o.Ekind, o.Eid, len(eqs), len(o.Vids))
	}
	o.Umap = make([]int, 0, o.Nu)
	for m, efs := range o.Efs {
		if len(eqs[m]) != Ndof {
			return chk.Err("%s element %d: vertex %d needs %d equations; %d given", o.Ekind, o.Eid, m, Ndof, len(eqs[m]))
		}
		for _, dof := range efs.Dofs() {
			o.Umap = append(o.Umap, eqs[m][dof])
		}
	}
	return
}

// Volume returns the element volume
func (o *Base) Volume() float64 { return o.Vol }

// Center returns the element centre
func (o *Base) Center() r3.Vec { return o.Ctr }

// Diagonal returns the largest distance between two vertices
func (o *Base) Diagonal() float64 { return o.Diag }

// Stiffness returns the current stiffness matrix
func (o *Base) Stiffness() *mat.SymDense { return o.K }

// AddToKb adds element K to global upper triangle of Kb. Constrained dofs are skipped
func (o *Base) AddToKb(Kb *mat.SymDense) {
	for i, I := range o.Umap {
		if I < 0 {
			continue
		}
		for j, J := range o.Umap {
			if J < I {
				continue
			}
			Kb.SetSym(I, J, Kb.At(I, J)+o.K.At(i, j))
		}
	}
}

// Density returns the current density
func (o *Base) Density() float64 { return o.Rho }

// UpdateDensity recomputes K = E(x)/E0・K0
func (o *Base) UpdateDensity(x, penal float64) {
	if x < 0 || x > 1 || math.IsNaN(x) {
		chk.Panic("%s element %d: density must be in [0, 1]; x = %g is invalid", o.Ekind, o.Eid, x)
	}
	o.Rho = x
	o.Penal = penal
	if o.K0 != nil {
		o.K.ScaleSym(SimpRatio(x, penal), o.K0)
	}
}

// Modulus returns the effective Young's modulus E(x)
func (o *Base) Modulus() float64 {
	return SimpModulus(o.Rho, o.Penal, o.E0)
}

// Update gathers local displacements and computes the strain energy
func (o *Base) Update(sol *Solution) {
	for i, I := range o.Umap {
		o.ue[i] = sol.Get(I)
	}
	u := mat.NewVecDense(o.Nu, o.ue)
	o.energy = 0.5 * mat.Inner(u, o.K, u)
}

// Displacements returns the local displacements of the last Update
func (o *Base) Displacements() []float64 { return o.ue }

// Energy returns the strain energy ½ uᵀ K u
func (o *Base) Energy() float64 { return o.energy }

// EnergySensitivity returns -p・x^(p-1)・(E0 - Emin)/E(x)・Energy
func (o *Base) EnergySensitivity(penal float64) float64 {
	return -SimpDeriv(o.Rho, penal, 1) / SimpRatio(o.Rho, penal) * o.energy
}

// VolumeSensitivity returns the element volume
func (o *Base) VolumeSensitivity() float64 { return o.Vol }

// Transform computes K = Tᵀ Kl T where T holds one rotation block R per dof triple
func Transform(Kl *mat.SymDense, R *mat.Dense) (K *mat.SymDense) {
	n := Kl.SymmetricDim()
	T := mat.NewDense(n, n, nil)
	for b := 0; b < n/3; b++ {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				T.Set(3*b+i, 3*b+j, R.At(i, j))
			}
		}
	}
	var KT, TKT mat.Dense
	KT.Mul(Kl, T)
	TKT.Mul(T.T(), &KT)
	K = mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			K.SetSym(i, j, 0.5*(TKT.At(i, j)+TKT.At(j, i)))
		}
	}
	return
}

// Frame returns the rotation matrix R = [e1; e2; e3] (rows are the local axes)
func Frame(e1, e2, e3 r3.Vec) (R *mat.Dense) {
	return mat.NewDense(3, 3, []float64{
		e1.X, e1.Y, e1.Z,
		e2.X, e2.Y, e2.Z,
		e3.X, e3.Y, e3.Z,
	})
}
