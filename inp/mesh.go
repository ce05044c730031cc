// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	goio "io"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vert holds a mesh vertex
type Vert struct {
	Id int    // id
	X  r3.Vec // coordinates
}

// Cell holds a mesh cell resolved to an element kind and a property set
type Cell struct {
	Kind  string // element kind
	Prop  string // property-set ID
	Group string // group; e.g. space
	Verts []int  // vertex ids
	Line  int    // line of definition
}

// Constraint holds a fixed dof
type Constraint struct {
	Vert int // vertex id
	Dof  int // dof index
}

// Force holds a nodal force component of a load case
type Force struct {
	Case int     // load case
	Vert int     // vertex id
	Dof  int     // dof index
	Mag  float64 // magnitude
}

// Applied holds the application of an abstract load (from settings) to a target
type Applied struct {
	Load   int    // index of load in Settings.Loads
	Target string // vertex id (point loads) or group (distributed loads)
}

// Mesh holds the geometry/grammar inputs
type Mesh struct {
	File        string        // file name
	Verts       []*Vert       // vertices
	Cells       []*Cell       // cells
	Constraints []*Constraint // constraints
	Forces      []*Force      // nodal forces
	Applied     []*Applied    // applied abstract loads

	// derived
	VertId2idx map[int]int // vertex id => index in Verts
}

// Vert returns the vertex with the given id or nil
func (o *Mesh) Vert(id int) *Vert {
	if idx, ok := o.VertId2idx[id]; ok {
		return o.Verts[idx]
	}
	return nil
}

// Coords returns the coordinates of vertices; ok == false if any id is unknown
func (o *Mesh) Coords(ids []int) (x []r3.Vec, ok bool) {
	x = make([]r3.Vec, len(ids))
	for i, id := range ids {
		v := o.Vert(id)
		if v == nil {
			return nil, false
		}
		x[i] = v.X
	}
	return x, true
}

// ReadMesh reads a mesh file
func ReadMesh(fn string) (o *Mesh, err error) {
	f, err := os.Open(fn)
	if err != nil {
		err = chk.Err("cannot open mesh file %q:\n%v", fn, err)
		return
	}
	defer f.Close()
	return ParseMesh(f, fn)
}

// ParseMesh parses the records of a mesh file
//  N,<id>,<x>,<y>,<z>
//  E,<kind>,<prop>,<group>,<n1>,<n2>[,<n3>,<n4>]
//  C,<node>,<dof>
//  F,<case>,<node>,<dof>,<magnitude>
//  AL,<load index>,<node|group>
// blank and unknown lines are ignored. Vertices must be defined before being referenced
func ParseMesh(r goio.Reader, fn string) (o *Mesh, err error) {
	o = &Mesh{File: fn, VertId2idx: make(map[int]int)}
	err = scanRecords(r, fn, func(line int, rec string, tokens []string) (msg string) {
		switch strings.ToUpper(tokens[0]) {
		case "N":
			if len(tokens) != 5 {
				return io.Sf("vertex record needs 4 fields; %d given", len(tokens)-1)
			}
			id, msg := parseInts(tokens[:2], 1)
			if msg != "" {
				return msg
			}
			x, msg := parseFloats(tokens, 2)
			if msg != "" {
				return msg
			}
			if _, ok := o.VertId2idx[id[0]]; ok {
				return io.Sf("vertex %d is already defined", id[0])
			}
			o.VertId2idx[id[0]] = len(o.Verts)
			o.Verts = append(o.Verts, &Vert{Id: id[0], X: r3.Vec{X: x[0], Y: x[1], Z: x[2]}})

		case "E":
			if len(tokens) < 6 {
				return io.Sf("element record needs at least 5 fields; %d given", len(tokens)-1)
			}
			verts, msg := parseInts(tokens, 4)
			if msg != "" {
				return msg
			}
			for _, v := range verts {
				if o.Vert(v) == nil {
					return io.Sf("vertex %d is not defined", v)
				}
			}
			kind := strings.ToLower(tokens[1])
			if kind == "flat_shell" || kind == "shell" {
				kind = KindShell
			}
			o.Cells = append(o.Cells, &Cell{Kind: kind, Prop: tokens[2], Group: tokens[3], Verts: verts, Line: line})

		case "C":
			if len(tokens) != 3 {
				return io.Sf("constraint record needs 2 fields; %d given", len(tokens)-1)
			}
			ids, msg := parseInts(tokens[:2], 1)
			if msg != "" {
				return msg
			}
			if o.Vert(ids[0]) == nil {
				return io.Sf("vertex %d is not defined", ids[0])
			}
			if tokens[2] == "*" {
				for dof := range DofKeys {
					o.Constraints = append(o.Constraints, &Constraint{Vert: ids[0], Dof: dof})
				}
				return ""
			}
			dof, ok := DofIndex(tokens[2])
			if !ok {
				return io.Sf("dof %q is invalid", tokens[2])
			}
			o.Constraints = append(o.Constraints, &Constraint{Vert: ids[0], Dof: dof})

		case "F":
			if len(tokens) != 5 {
				return io.Sf("force record needs 4 fields; %d given", len(tokens)-1)
			}
			ids, msg := parseInts(tokens[:3], 1)
			if msg != "" {
				return msg
			}
			if o.Vert(ids[1]) == nil {
				return io.Sf("vertex %d is not defined", ids[1])
			}
			dof, ok := DofIndex(tokens[3])
			if !ok {
				return io.Sf("dof %q is invalid", tokens[3])
			}
			mag, msg := parseFloats(tokens, 4)
			if msg != "" {
				return msg
			}
			o.Forces = append(o.Forces, &Force{Case: ids[0], Vert: ids[1], Dof: dof, Mag: mag[0]})

		case "AL":
			if len(tokens) != 3 {
				return io.Sf("applied-load record needs 2 fields; %d given", len(tokens)-1)
			}
			idx, err := strconv.Atoi(tokens[1])
			if err != nil || idx < 0 {
				return io.Sf("load index %q is invalid", tokens[1])
			}
			o.Applied = append(o.Applied, &Applied{Load: idx, Target: tokens[2]})
		}
		return
	})
	return
}
