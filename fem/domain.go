// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"runtime"
	"sort"
	"strconv"

	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/ele"
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
	"golang.org/x/sync/errgroup"
)

// Domain holds all Nodes and Elements of a structure in addition to the global system.
// Elements refer to nodes by their index in Nodes
type Domain struct {

	// init: auxiliary variables
	Props           map[string]*inp.PropSet // property sets
	ShowMsg         bool                    // show messages
	Digits          int                     // number of digits used to match coordinates of nodes
	LoadsOnSupports bool                    // drop loads on constrained dofs instead of failing
	Nworkers        int                     // number of workers for element updates; 0 means GOMAXPROCS
	MaxCond         float64                 // max condition number estimate of the global matrix; 0 means no check

	// nodes and elements
	Nodes []*Node        // all nodes (arena)
	Elems []ele.Element  // all elements
	x2n   map[string]int // coordinates key => index in Nodes

	// equations
	Neq       int  // number of equations
	finalized bool // Finalize was called after the last modification

	// global system
	Kb       *mat.SymDense // global stiffness matrix (upper triangle is assembled)
	Fb       []float64     // global load vector
	Sol      *ele.Solution // solution of the last load case
	chol     mat.Cholesky  // factorisation of Kb
	factored bool          // chol is up to date with Kb
}

// default values
const (
	DefaultDigits  = 6
	DefaultMaxCond = 1e15
)

// NewDomain returns a new empty domain
func NewDomain(props map[string]*inp.PropSet, verbose bool) (o *Domain) {
	o = new(Domain)
	o.Props = props
	if o.Props == nil {
		o.Props = make(map[string]*inp.PropSet)
	}
	o.ShowMsg = verbose
	o.Digits = DefaultDigits
	o.MaxCond = DefaultMaxCond
	o.x2n = make(map[string]int)
	return
}

// NewDomainFromInput builds a domain from settings and mesh data and finalises it
func NewDomainFromInput(set *inp.Settings, msh *inp.Mesh, verbose bool) (o *Domain, err error) {

	// new domain
	o = NewDomain(set.Props, verbose)
	vid2node := make(map[int]int)
	for _, v := range msh.Verts {
		vid2node[v.Id] = o.AddNode(v.X)
	}
	if o.ShowMsg {
		io.Pf("> Nodes allocated: %d\n", len(o.Nodes))
	}

	// elements
	for _, c := range msh.Cells {
		x, ok := msh.Coords(c.Verts)
		if !ok {
			return nil, chk.Err("%s:%d: element references unknown vertices %v", msh.File, c.Line, c.Verts)
		}
		if _, err = set.Prop(c.Prop); err != nil {
			return nil, chk.Err("%s:%d: %v", msh.File, c.Line, err)
		}
		if _, err = o.AddElement(c.Kind, c.Prop, c.Group, x); err != nil {
			return nil, chk.Err("%s:%d: cannot add element:\n%v", msh.File, c.Line, err)
		}
	}
	if o.ShowMsg {
		io.Pf("> Elements allocated: %d\n", len(o.Elems))
	}

	// constraints and nodal forces
	for _, c := range msh.Constraints {
		if err = o.AddConstraint(vid2node[c.Vert], c.Dof); err != nil {
			return
		}
	}
	for _, f := range msh.Forces {
		if err = o.AddLoad(f.Case, vid2node[f.Vert], f.Dof, f.Mag); err != nil {
			return
		}
	}

	// abstract loads
	for _, a := range msh.Applied {
		if a.Load >= len(set.Loads) {
			return nil, chk.Err("load index %d is out of range; settings %q define %d loads", a.Load, set.File, len(set.Loads))
		}
		load := set.Loads[a.Load]
		switch load.Type {
		case inp.LoadPoint:
			vid, e := strconv.Atoi(a.Target)
			if e != nil {
				return nil, chk.Err("point load %d needs a vertex id; %q is invalid", a.Load, a.Target)
			}
			nid, ok := vid2node[vid]
			if !ok {
				return nil, chk.Err("point load %d: vertex %d does not exist", a.Load, vid)
			}
			err = o.ApplyPointLoad(load, nid)
		case inp.LoadDistributed:
			err = o.ApplyDistributedLoad(load, a.Target)
		}
		if err != nil {
			return
		}
	}

	// equations
	err = o.Finalize()
	return
}

// AddNode returns the index of the node at x; a new node is created if no node
// with the same (rounded) coordinates exists
func (o *Domain) AddNode(x r3.Vec) (idx int) {
	key := CoordKey(x, o.Digits)
	if idx, ok := o.x2n[key]; ok {
		return idx
	}
	idx = len(o.Nodes)
	o.Nodes = append(o.Nodes, NewNode(idx, x))
	o.x2n[key] = idx
	o.finalized = false
	return
}

// FindNode returns the index of the node at x or -1
func (o *Domain) FindNode(x r3.Vec) int {
	if idx, ok := o.x2n[CoordKey(x, o.Digits)]; ok {
		return idx
	}
	return -1
}

// AddElement allocates a new element of given kind using property set propId. Nodes are created
// for coordinates not present yet. A rejected element leaves the nodes unchanged
func (o *Domain) AddElement(kind, propId, group string, x []r3.Vec) (e ele.Element, err error) {
	nv := ele.Nverts(kind)
	if nv < 0 {
		return nil, chk.Err("element kind %q is not available", kind)
	}
	if len(x) != nv {
		return nil, chk.Err("%s element needs %d vertices; %d given", kind, nv, len(x))
	}
	prop, ok := o.Props[propId]
	if !ok {
		return nil, chk.Err("cannot find property set %q for %s element", propId, kind)
	}

	// node indices; new nodes are created only if the element is valid
	verts := make([]int, nv)
	var xnew []r3.Vec
	pending := make(map[string]int)
	for m := range x {
		key := CoordKey(x[m], o.Digits)
		if idx, ok := o.x2n[key]; ok {
			verts[m] = idx
			continue
		}
		if idx, ok := pending[key]; ok {
			verts[m] = idx
			continue
		}
		verts[m] = len(o.Nodes) + len(xnew)
		pending[key] = verts[m]
		xnew = append(xnew, x[m])
	}
	e, err = ele.New(kind, len(o.Elems), group, prop, verts, x)
	if err != nil {
		return
	}
	for _, xn := range xnew {
		o.AddNode(xn)
	}
	o.Elems = append(o.Elems, e)
	o.finalized = false
	return
}

// AddConstraint fixes dof of node
func (o *Domain) AddConstraint(node, dof int) (err error) {
	if err = o.check(node, dof); err != nil {
		return
	}
	o.Nodes[node].Fix(dof)
	o.finalized = false
	return
}

// AddLoad accumulates a load component on node for load case lc
func (o *Domain) AddLoad(lc, node, dof int, mag float64) (err error) {
	if err = o.check(node, dof); err != nil {
		return
	}
	o.Nodes[node].AddLoad(lc, dof, mag)
	return
}

// Finalize builds node freedom signatures from the element freedom signatures, checks loads,
// numbers equations and sets equations of elements
func (o *Domain) Finalize() (err error) {

	// check
	if len(o.Elems) == 0 {
		return chk.Err("domain has no elements")
	}

	// node freedom signatures
	for _, nod := range o.Nodes {
		nod.Nfs = ele.FreeNone
	}
	for _, e := range o.Elems {
		efs := e.Freedoms()
		for m, v := range e.Verts() {
			o.Nodes[v].Nfs |= efs[m]
		}
	}

	// loads
	for _, nod := range o.Nodes {
		for _, lc := range nod.LoadCases() {
			f := nod.Loads[lc]
			for dof := 0; dof < ele.Ndof; dof++ {
				if f[dof] == 0 {
					continue
				}
				if !nod.Nfs.Has(dof) {
					return chk.Err("node %d has a load on dof %q (load case %d) but no element uses this dof", nod.Id, ele.DofKeys[dof], lc)
				}
				if nod.Fixed[dof] {
					if !o.LoadsOnSupports {
						return chk.Err("node %d has a load on constrained dof %q (load case %d)", nod.Id, ele.DofKeys[dof], lc)
					}
					if o.ShowMsg {
						io.Pfyel("> Load %g on constrained dof %q of node %d (load case %d) dropped\n", f[dof], ele.DofKeys[dof], nod.Id, lc)
					}
					f[dof] = 0
				}
			}
		}
	}

	// equations
	o.NumberEquations()
	for _, e := range o.Elems {
		verts := e.Verts()
		eqs := make([][]int, len(verts))
		for m, v := range verts {
			eqs[m] = o.Nodes[v].Eqs[:]
		}
		if err = e.SetEqs(eqs); err != nil {
			return
		}
	}

	// global system
	o.Kb = nil
	if o.Neq > 0 {
		o.Kb = mat.NewSymDense(o.Neq, nil)
	}
	o.Fb = make([]float64, o.Neq)
	o.Sol = ele.NewSolution(0, o.Neq)
	o.factored = false
	o.finalized = true
	if o.ShowMsg {
		io.Pf("> Number of equations: %d\n", o.Neq)
	}
	return
}

// NumberEquations numbers equations by walking nodes in index order and dofs in ux…rz order.
// Dofs absent from the node freedom signature and constrained dofs are skipped
func (o *Domain) NumberEquations() (neq int) {
	for _, nod := range o.Nodes {
		for dof := 0; dof < ele.Ndof; dof++ {
			nod.Eqs[dof] = -1
			if nod.Nfs.Has(dof) && !nod.Fixed[dof] {
				nod.Eqs[dof] = neq
				neq++
			}
		}
	}
	o.Neq = neq
	return
}

// LoadCases returns the sorted load cases
func (o *Domain) LoadCases() (lcs []int) {
	set := make(map[int]bool)
	for _, nod := range o.Nodes {
		for lc := range nod.Loads {
			set[lc] = true
		}
	}
	for lc := range set {
		lcs = append(lcs, lc)
	}
	sort.Ints(lcs)
	return
}

// UpdateDensities sets the density of all elements; x[i] corresponds to Elems[i]
func (o *Domain) UpdateDensities(x []float64, penal float64) (err error) {
	if len(x) != len(o.Elems) {
		return chk.Err("number of densities (%d) must be equal to the number of elements (%d)", len(x), len(o.Elems))
	}
	nw := o.workers()
	chunk := (len(o.Elems) + nw - 1) / nw
	var g errgroup.Group
	for start := 0; start < len(o.Elems); start += chunk {
		start, end := start, min(start+chunk, len(o.Elems))
		g.Go(func() error {
			for i := start; i < end; i++ {
				o.Elems[i].UpdateDensity(x[i], penal)
			}
			return nil
		})
	}
	err = g.Wait()
	o.factored = false
	return
}

// Densities returns the densities of all elements
func (o *Domain) Densities() (x []float64) {
	x = make([]float64, len(o.Elems))
	for i, e := range o.Elems {
		x[i] = e.Density()
	}
	return
}

// workers returns the number of workers
func (o *Domain) workers() int {
	if o.Nworkers > 0 {
		return o.Nworkers
	}
	return runtime.GOMAXPROCS(0)
}

// check checks node and dof indices
func (o *Domain) check(node, dof int) error {
	if node < 0 || node >= len(o.Nodes) {
		return chk.Err("node %d does not exist", node)
	}
	if dof < 0 || dof >= ele.Ndof {
		return chk.Err("dof %d is invalid", dof)
	}
	return nil
}
