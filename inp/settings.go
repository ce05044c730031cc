// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from settings, mesh and control files
package inp

import (
	"bufio"
	goio "io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/spatial/r3"
)

// element kinds
const (
	KindTruss = "truss"
	KindBeam  = "beam"
	KindShell = "flatshell"
)

// load types
const (
	LoadPoint       = "point"
	LoadDistributed = "distributed"
)

// DofKeys holds the names of the six nodal dofs
var DofKeys = [6]string{"ux", "uy", "uz", "rx", "ry", "rz"}

// ConfigError reports a malformed record of an input file
type ConfigError struct {
	File   string // file name; may be empty
	Line   int    // line number (1-based)
	Record string // offending record
	Msg    string // reason
}

// Error implements error
func (o *ConfigError) Error() string {
	return io.Sf("%s:%d: %s\n  record: %q", o.File, o.Line, o.Msg, o.Record)
}

// PropSet holds a named set of element properties
//  truss     -- {A, E}
//  beam      -- {b, h, E, ν}
//  flatshell -- {t, E, ν}
type PropSet struct {
	Id   string    // property-set ID
	Kind string    // element kind
	Vals []float64 // values
	Line int       // line of definition
}

// Load holds an abstract load definition
type Load struct {
	Case     int     // load case
	Mag      float64 // magnitude (force, force/length or force/area)
	Azimuth  float64 // azimuth in degrees, measured in the x-y plane from +x towards +y
	Altitude float64 // altitude in degrees, measured from the x-y plane towards +z
	Type     string  // "point" or "distributed"
}

// Direction returns the unit vector of the load. Components below 1e-12 are set to zero so
// that axis-aligned loads do not leak into other dofs
func (o *Load) Direction() (d r3.Vec) {
	az := o.Azimuth * math.Pi / 180.0
	al := o.Altitude * math.Pi / 180.0
	d = r3.Vec{X: math.Cos(al) * math.Cos(az), Y: math.Cos(al) * math.Sin(az), Z: math.Sin(al)}
	for _, c := range []*float64{&d.X, &d.Y, &d.Z} {
		if math.Abs(*c) < 1e-12 {
			*c = 0
		}
	}
	return
}

// Force returns the load vector Mag*Direction
func (o *Load) Force() r3.Vec {
	return r3.Scale(o.Mag, o.Direction())
}

// Settings holds the data read from a settings file
type Settings struct {
	File  string              // file name
	Mesh  int                 // mesh-division count
	Loads []*Load             // abstract loads in order of definition
	Props map[string]*PropSet // property sets
}

// Prop returns the property set with the given ID
func (o *Settings) Prop(id string) (prop *PropSet, err error) {
	prop, ok := o.Props[id]
	if !ok {
		err = chk.Err("cannot find property set %q in settings %q", id, o.File)
	}
	return
}

// PropIds returns the sorted property-set IDs
func (o *Settings) PropIds() (ids []string) {
	for id := range o.Props {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return
}

// ReadSettings reads a settings file
func ReadSettings(fn string) (o *Settings, err error) {
	f, err := os.Open(fn)
	if err != nil {
		err = chk.Err("cannot open settings file %q:\n%v", fn, err)
		return
	}
	defer f.Close()
	return ParseSettings(f, fn)
}

// ParseSettings parses the records of a settings file
//  MESH,<n>
//  LOAD,<case>,<magnitude>,<azimuth>,<altitude>,<type>
//  TRUSS,<id>,<A>,<E>
//  BEAM,<id>,<b>,<h>,<E>,<v>
//  FLAT_SHELL,<id>,<t>,<E>,<v>
// blank and unknown lines are ignored
func ParseSettings(r goio.Reader, fn string) (o *Settings, err error) {
	o = &Settings{File: fn, Props: make(map[string]*PropSet)}
	err = scanRecords(r, fn, func(line int, rec string, tokens []string) (msg string) {
		switch strings.ToUpper(tokens[0]) {
		case "MESH":
			vals, msg := parseInts(tokens, 1)
			if msg != "" {
				return msg
			}
			if vals[0] < 1 {
				return "mesh-division count must be positive"
			}
			o.Mesh = vals[0]

		case "LOAD":
			if len(tokens) != 6 {
				return io.Sf("load record needs 5 fields; %d given", len(tokens)-1)
			}
			lc, msg := parseInts(tokens[:2], 1)
			if msg != "" {
				return msg
			}
			vals, msg := parseFloats(tokens[:5], 2)
			if msg != "" {
				return msg
			}
			typ := strings.ToLower(tokens[5])
			if typ != LoadPoint && typ != LoadDistributed {
				return io.Sf("load type must be %q or %q; %q is invalid", LoadPoint, LoadDistributed, tokens[5])
			}
			o.Loads = append(o.Loads, &Load{Case: lc[0], Mag: vals[0], Azimuth: vals[1], Altitude: vals[2], Type: typ})

		case "TRUSS":
			return o.addProp(line, KindTruss, tokens, 2)

		case "BEAM":
			return o.addProp(line, KindBeam, tokens, 4)

		case "FLAT_SHELL":
			return o.addProp(line, KindShell, tokens, 3)
		}
		return
	})
	return
}

// addProp adds a property set with nvals values
func (o *Settings) addProp(line int, kind string, tokens []string, nvals int) (msg string) {
	if len(tokens) != nvals+2 {
		return io.Sf("%s property set needs %d fields; %d given", kind, nvals+1, len(tokens)-1)
	}
	id := tokens[1]
	if id == "" {
		return "property-set ID is empty"
	}
	if prev, ok := o.Props[id]; ok {
		return io.Sf("property set %q is already defined at line %d", id, prev.Line)
	}
	vals, msg := parseFloats(tokens, 2)
	if msg != "" {
		return
	}
	nv := len(vals)
	if kind != KindTruss {
		nv-- // Poisson's coefficient
		if ν := vals[nv]; ν <= -1 || ν >= 0.5 {
			return io.Sf("Poisson's coefficient must be in (-1, 0.5); ν = %g is invalid", ν)
		}
	}
	for i := 0; i < nv; i++ {
		if vals[i] <= 0 {
			return io.Sf("property #%d must be positive; %g is invalid", i, vals[i])
		}
	}
	o.Props[id] = &PropSet{Id: id, Kind: kind, Vals: vals, Line: line}
	return
}

// scanRecords calls fcn for each non-blank line split by commas. A non-empty message from fcn
// becomes a *ConfigError
func scanRecords(r goio.Reader, fn string, fcn func(line int, rec string, tokens []string) (msg string)) (err error) {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		rec := strings.TrimSpace(sc.Text())
		if rec == "" {
			continue
		}
		tokens := strings.Split(rec, ",")
		for i := range tokens {
			tokens[i] = strings.TrimSpace(tokens[i])
		}
		if msg := fcn(line, rec, tokens); msg != "" {
			return &ConfigError{File: fn, Line: line, Record: rec, Msg: msg}
		}
	}
	if err = sc.Err(); err != nil {
		err = chk.Err("cannot read %q:\n%v", fn, err)
	}
	return
}

// parseFloats parses tokens[start:]
func parseFloats(tokens []string, start int) (vals []float64, msg string) {
	if len(tokens) <= start {
		return nil, io.Sf("at least %d fields are required", start)
	}
	vals = make([]float64, len(tokens)-start)
	for i, s := range tokens[start:] {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, io.Sf("field #%d = %q is not a valid number", start+i, s)
		}
		vals[i] = v
	}
	return
}

// parseInts parses tokens[start:]
func parseInts(tokens []string, start int) (vals []int, msg string) {
	if len(tokens) <= start {
		return nil, io.Sf("at least %d fields are required", start)
	}
	vals = make([]int, len(tokens)-start)
	for i, s := range tokens[start:] {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, io.Sf("field #%d = %q is not a valid integer", start+i, s)
		}
		vals[i] = v
	}
	return
}

// DofIndex returns the index of a dof given by its name ("ux" … "rz") or number (0 … 5)
func DofIndex(s string) (dof int, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, key := range DofKeys {
		if s == key {
			return i, true
		}
	}
	dof, err := strconv.Atoi(s)
	if err != nil || dof < 0 || dof > 5 {
		return -1, false
	}
	return dof, true
}
