// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"strings"

	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/inp"
)

// Dof indices of the six nodal degrees of freedom
const (
	Ux = iota // translation along x
	Uy        // translation along y
	Uz        // translation along z
	Rx        // rotation about x
	Ry        // rotation about y
	Rz        // rotation about z

	Ndof = 6 // max number of dofs per node
)

// DofKeys holds the names of the dofs; e.g. for messages
var DofKeys = inp.DofKeys

// Freedom is a freedom signature: bit k is set if dof k is used.
//  EFS -- element freedom signature: dofs an element exercises at one of its nodes
//  NFS -- node freedom signature: OR of the EFS of all elements attached to a node
type Freedom uint8

// common signatures
const (
	FreeNone        Freedom = 0
	FreeTranslation Freedom = 1<<Ux | 1<<Uy | 1<<Uz
	FreeRotation    Freedom = 1<<Rx | 1<<Ry | 1<<Rz
	FreeAll         Freedom = FreeTranslation | FreeRotation
)

// Has tells whether dof is active
func (o Freedom) Has(dof int) bool {
	return o&(1<<uint(dof)) != 0
}

// Count returns the number of active dofs
func (o Freedom) Count() (n int) {
	for dof := 0; dof < Ndof; dof++ {
		if o.Has(dof) {
			n++
		}
	}
	return
}

// Dofs returns the list of active dofs in increasing order
func (o Freedom) Dofs() (dofs []int) {
	for dof := 0; dof < Ndof; dof++ {
		if o.Has(dof) {
			dofs = append(dofs, dof)
		}
	}
	return
}

// String returns the signature as "110000"-like string
func (o Freedom) String() string {
	var sb strings.Builder
	for dof := 0; dof < Ndof; dof++ {
		if o.Has(dof) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
