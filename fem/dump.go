// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bufio"
	"fmt"
	goio "io"
	"sort"
	"strings"

	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/spatial/r3"
)

// DumpDigits is the number of digits used to match dumped elements by geometry
const DumpDigits = 3

// WriteDump writes nodes and element densities
func (o *Domain) WriteDump(w goio.Writer) (err error) {
	bw := bufio.NewWriter(w)
	for _, nod := range o.Nodes {
		fmt.Fprintf(bw, "N,%d,%g,%g,%g\n", nod.Id, nod.X.X, nod.X.Y, nod.X.Z)
	}
	for _, e := range o.Elems {
		fmt.Fprintf(bw, "DE")
		for _, v := range e.Verts() {
			fmt.Fprintf(bw, ",%d", v)
		}
		fmt.Fprintf(bw, ",%g\n", e.Density())
	}
	if err = bw.Flush(); err != nil {
		return chk.Err("cannot write dump:\n%v", err)
	}
	return
}

// MatchDump returns the densities of all elements taken from the dumped element with the same
// corner coordinates (rounded to digits); unmatched elements keep their current density
func (o *Domain) MatchDump(d *inp.Dump, digits int) (x []float64, nmatched int) {
	key2rho := make(map[string]float64)
	for _, de := range d.Elems {
		xs := make([]r3.Vec, len(de.Nodes))
		for i, id := range de.Nodes {
			xs[i] = d.Nodes[id]
		}
		key2rho[cornersKey(xs, digits)] = de.Density
	}
	x = o.Densities()
	for i, e := range o.Elems {
		if rho, ok := key2rho[cornersKey(o.coords(e.Verts()), digits)]; ok {
			x[i] = rho
			nmatched++
		}
	}
	return
}

// ApplyDump sets element densities from a dump; see MatchDump
func (o *Domain) ApplyDump(d *inp.Dump, penal float64) (nmatched int, err error) {
	x, nmatched := o.MatchDump(d, DumpDigits)
	if err = o.UpdateDensities(x, penal); err != nil {
		return
	}
	if o.ShowMsg {
		io.Pf("> Densities of %d out of %d elements taken from %q\n", nmatched, len(o.Elems), d.File)
	}
	return
}

// cornersKey returns a key independent of the order of corners
func cornersKey(x []r3.Vec, digits int) string {
	keys := make([]string, len(x))
	for i := range x {
		keys[i] = CoordKey(x[i], digits)
	}
	sort.Strings(keys)
	return strings.Join(keys, ";")
}
