// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"sort"

	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/ele"
)

// GroupResult holds aggregated results of the elements of one group (e.g. space)
type GroupResult struct {
	Group      string  // group name
	Nelems     int     // number of elements
	Volume     float64 // total (unscaled) volume
	Material   float64 // material volume Σ x v
	Compliance float64 // 2 Σ energy summed over load cases
}

// Fraction returns the material volume fraction of the group
func (o *GroupResult) Fraction() float64 {
	if o.Volume == 0 {
		return 0
	}
	return o.Material / o.Volume
}

// Results aggregates compliance and material volume per element group, sorted by group.
// Every load case is solved with the current densities and the compliance of a group is summed
// over load cases. The last load case remains solved
func (o *Domain) Results() (res []*GroupResult, err error) {
	g2r := make(map[string]*GroupResult)
	for _, e := range o.Elems {
		r, ok := g2r[e.Group()]
		if !ok {
			r = &GroupResult{Group: e.Group()}
			g2r[e.Group()] = r
			res = append(res, r)
		}
		r.Nelems++
		r.Volume += e.Volume()
		r.Material += e.Density() * e.Volume()
	}
	if err = o.AssembleK(); err != nil {
		return nil, err
	}
	for _, lc := range o.LoadCases() {
		if err = o.Solve(lc); err != nil {
			return nil, err
		}
		for _, e := range o.Elems {
			g2r[e.Group()].Compliance += 2.0 * e.Energy()
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Group < res[j].Group })
	return
}

// Compliance returns c = 2 Σ energy = Fᵀ u of the last solved load case
func (o *Domain) Compliance() (c float64) {
	for _, e := range o.Elems {
		c += 2.0 * e.Energy()
	}
	return
}

// Volume returns the total (unscaled) volume and the material volume Σ x v
func (o *Domain) Volume() (total, material float64) {
	for _, e := range o.Elems {
		total += e.Volume()
		material += e.Density() * e.Volume()
	}
	return
}

// MaxDispl returns the largest translation magnitude of the last solved load case and the node
func (o *Domain) MaxDispl() (umax float64, node int) {
	node = -1
	for _, nod := range o.Nodes {
		u := math.Sqrt(nod.U[ele.Ux]*nod.U[ele.Ux] + nod.U[ele.Uy]*nod.U[ele.Uy] + nod.U[ele.Uz]*nod.U[ele.Uz])
		if u > umax || node < 0 {
			umax, node = u, nod.Id
		}
	}
	return
}
