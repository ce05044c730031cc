// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	goio "io"
	"os"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/spatial/r3"
)

// DumpElem holds the corner nodes and the density of a dumped element
type DumpElem struct {
	Nodes   []int   // node ids
	Density float64 // density
	Line    int     // line of definition
}

// Dump holds densities written by a previous run
type Dump struct {
	File  string         // file name
	Nodes map[int]r3.Vec // node id => coordinates
	Elems []*DumpElem    // elements
}

// ReadDump reads a density dump file
func ReadDump(fn string) (o *Dump, err error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, chk.Err("cannot open dump file %q:\n%v", fn, err)
	}
	defer f.Close()
	return ParseDump(f, fn)
}

// ParseDump parses density dump records:
//  N,<id>,<x>,<y>,<z>
//  DE,<n1>,<n2>[,<n3>,<n4>],<density>
// blank and unknown lines are ignored
func ParseDump(r goio.Reader, fn string) (o *Dump, err error) {
	o = &Dump{File: fn, Nodes: make(map[int]r3.Vec)}
	err = scanRecords(r, fn, func(line int, rec string, tokens []string) (msg string) {
		switch strings.ToUpper(tokens[0]) {
		case "N":
			if len(tokens) != 5 {
				return io.Sf("node record needs 4 fields; %d given", len(tokens)-1)
			}
			id, msg := parseInts(tokens[:2], 1)
			if msg != "" {
				return msg
			}
			x, msg := parseFloats(tokens, 2)
			if msg != "" {
				return msg
			}
			o.Nodes[id[0]] = r3.Vec{X: x[0], Y: x[1], Z: x[2]}

		case "DE":
			n := len(tokens) - 2
			if n != 2 && n != 4 {
				return io.Sf("density record needs 2 or 4 nodes and a density; %d fields given", len(tokens)-1)
			}
			ids, msg := parseInts(tokens[:n+1], 1)
			if msg != "" {
				return msg
			}
			for _, id := range ids {
				if _, ok := o.Nodes[id]; !ok {
					return io.Sf("node %d is not defined", id)
				}
			}
			rho, msg := parseFloats(tokens, n+1)
			if msg != "" {
				return msg
			}
			if rho[0] < 0 || rho[0] > 1 {
				return io.Sf("density %g is outside [0, 1]", rho[0])
			}
			o.Elems = append(o.Elems, &DumpElem{Nodes: ids, Density: rho[0], Line: line})
		}
		return
	})
	if err != nil {
		return nil, err
	}
	return
}
