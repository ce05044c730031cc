// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/ele"
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/spatial/r3"
)

// ApplyPointLoad applies an abstract point load to node
func (o *Domain) ApplyPointLoad(load *inp.Load, node int) (err error) {
	if load.Type != inp.LoadPoint {
		return chk.Err("load of type %q cannot be applied to a node", load.Type)
	}
	return o.addForce(load.Case, node, load.Force())
}

// ApplyDistributedLoad applies an abstract distributed load to all elements of group.
// The magnitude is per unit area (shells) or per unit length (trusses and beams); the resultant of
// each element is lumped equally to its nodes as translational forces
func (o *Domain) ApplyDistributedLoad(load *inp.Load, group string) (err error) {
	if load.Type != inp.LoadDistributed {
		return chk.Err("load of type %q cannot be distributed over group %q", load.Type, group)
	}
	q := load.Force()
	count := 0
	for _, e := range o.Elems {
		if e.Group() != group {
			continue
		}
		verts := e.Verts()
		f := r3.Scale(Measure(o.coords(verts))/float64(len(verts)), q)
		for _, v := range verts {
			if err = o.addForce(load.Case, v, f); err != nil {
				return
			}
		}
		count++
	}
	if count == 0 {
		return chk.Err("cannot apply distributed load: group %q has no elements", group)
	}
	if o.ShowMsg {
		io.Pf("> Distributed load %g applied to %d elements of group %q\n", load.Mag, count, group)
	}
	return
}

// Measure returns the length of a 2-node element or the area of a planar 4-node element
func Measure(x []r3.Vec) float64 {
	switch len(x) {
	case 2:
		return r3.Norm(r3.Sub(x[1], x[0]))
	case 4:
		return 0.5 * r3.Norm(r3.Cross(r3.Sub(x[2], x[0]), r3.Sub(x[3], x[1])))
	}
	chk.Panic("cannot compute the measure of an element with %d vertices", len(x))
	return 0
}

// coords returns the coordinates of nodes
func (o *Domain) coords(nodes []int) (x []r3.Vec) {
	x = make([]r3.Vec, len(nodes))
	for i, n := range nodes {
		x[i] = o.Nodes[n].X
	}
	return
}

// addForce adds the non-zero components of f to node
func (o *Domain) addForce(lc, node int, f r3.Vec) (err error) {
	for dof, v := range []float64{f.X, f.Y, f.Z} {
		if v == 0 {
			continue
		}
		if err = o.AddLoad(lc, node, ele.Ux+dof, v); err != nil {
			return
		}
	}
	return
}
