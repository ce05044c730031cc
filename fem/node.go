// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"sort"

	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/ele"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/spatial/r3"
)

// Node holds node dofs information
type Node struct {
	Id    int                 // index in Domain.Nodes
	X     r3.Vec              // coordinates
	Nfs   ele.Freedom         // node freedom signature: OR of the EFS of attached elements
	Loads map[int]*[6]float64 // load case => load components (forces and moments)
	Fixed [ele.Ndof]bool      // constraint mask
	Eqs   [ele.Ndof]int       // equation numbers; -1 means "not an unknown"
	U     [ele.Ndof]float64   // displacements of the last solved load case
}

// NewNode allocates a new Node
func NewNode(id int, x r3.Vec) (o *Node) {
	o = &Node{Id: id, X: x, Loads: make(map[int]*[6]float64)}
	for dof := 0; dof < ele.Ndof; dof++ {
		o.Eqs[dof] = -1
	}
	return
}

// AddLoad accumulates a load component
func (o *Node) AddLoad(lc, dof int, mag float64) {
	f, ok := o.Loads[lc]
	if !ok {
		f = new([6]float64)
		o.Loads[lc] = f
	}
	f[dof] += mag
}

// Load returns the load components of load case lc
func (o *Node) Load(lc int) (f [6]float64) {
	if p, ok := o.Loads[lc]; ok {
		f = *p
	}
	return
}

// LoadCases returns the sorted load cases acting on node
func (o *Node) LoadCases() (lcs []int) {
	for lc := range o.Loads {
		lcs = append(lcs, lc)
	}
	sort.Ints(lcs)
	return
}

// Fix constrains dof
func (o *Node) Fix(dof int) {
	o.Fixed[dof] = true
}

// String returns a string representation of node
func (o *Node) String() string {
	return io.Sf("{id:%d x:[%g %g %g] nfs:%v eqs:%v}", o.Id, o.X.X, o.X.Y, o.X.Z, o.Nfs, o.Eqs)
}

// CoordKey returns a key built from coordinates rounded to the given number of digits
func CoordKey(x r3.Vec, digits int) string {
	return io.Sf("%.*f,%.*f,%.*f", digits, round(x.X, digits), digits, round(x.Y, digits), digits, round(x.Z, digits))
}

// round rounds v to the given number of digits. Negative zero is mapped to zero
func round(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	r := math.Round(v*p) / p
	if r == 0 {
		r = 0
	}
	return r
}
