// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/inp"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/spatial/r3"
)

// AllocatorType defines a function that allocates an element
//  id    -- element id
//  group -- group (e.g. space) the element belongs to
//  prop  -- resolved property set
//  verts -- node indices
//  x     -- nodal coordinates
type AllocatorType func(id int, group string, prop *inp.PropSet, verts []int, x []r3.Vec) (Element, error)

// New returns a new element from factory
func New(kind string, id int, group string, prop *inp.PropSet, verts []int, x []r3.Vec) (ele Element, err error) {
	if prop == nil {
		err = chk.Err("cannot allocate %s element %d: property set is missing", kind, id)
		return
	}
	if prop.Kind != kind {
		err = chk.Err("cannot allocate %s element %d: property set %q is of kind %q", kind, id, prop.Id, prop.Kind)
		return
	}
	fcn, ok := allocators[kind]
	if !ok {
		err = chk.Err("cannot get allocator for element {kind=%q, id=%d}", kind, id)
		return
	}
	ele, err = fcn(id, group, prop, verts, x)
	if err != nil {
		err = chk.Err("cannot allocate %s element %d with property set %q:\n%v", kind, id, prop.Id, err)
	}
	return
}

// Nverts returns the number of vertices required by an element kind; or -1 if kind is unknown
func Nverts(kind string) int {
	if n, ok := nverts[kind]; ok {
		return n
	}
	return -1
}

// SetAllocator sets a new callback function to allocate an element
func SetAllocator(kind string, nv int, fcn AllocatorType) {
	if _, ok := allocators[kind]; ok {
		chk.Panic("cannot set allocator function for %q because element name exists already", kind)
	}
	allocators[kind] = fcn
	nverts[kind] = nv
}

// allocators holds all element allocators
var allocators = make(map[string]AllocatorType)

// nverts holds the number of vertices of each element kind
var nverts = make(map[string]int)
