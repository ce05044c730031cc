// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
)

// AssembleK zeroes the global stiffness matrix and adds the current stiffness of all elements
func (o *Domain) AssembleK() (err error) {
	if !o.finalized {
		return chk.Err("domain must be finalised before assembling the stiffness matrix")
	}
	o.factored = false
	if o.Kb == nil {
		return
	}
	o.Kb.Zero()
	for _, e := range o.Elems {
		e.AddToKb(o.Kb)
	}
	return
}

// AssembleF builds the global load vector of load case lc
func (o *Domain) AssembleF(lc int) (err error) {
	if !o.finalized {
		return chk.Err("domain must be finalised before assembling the load vector")
	}
	for i := range o.Fb {
		o.Fb[i] = 0
	}
	for _, nod := range o.Nodes {
		f, ok := nod.Loads[lc]
		if !ok {
			continue
		}
		for dof, I := range nod.Eqs {
			if I >= 0 {
				o.Fb[I] += f[dof]
			}
		}
	}
	return
}
