// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/ana"
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/ele"
	_ "github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/ele/solid"
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/spatial/r3"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// testProps returns one property set per element kind
func testProps() map[string]*inp.PropSet {
	return map[string]*inp.PropSet{
		"bar":   {Id: "bar", Kind: inp.KindTruss, Vals: []float64{0.01, 1000}},
		"beam":  {Id: "beam", Kind: inp.KindBeam, Vals: []float64{0.2, 0.4, 1000, 0.3}},
		"plate": {Id: "plate", Kind: inp.KindShell, Vals: []float64{0.1, 1000, 0.25}},
	}
}

// addElement adds an element or stops the test
func addElement(tst *testing.T, dom *Domain, kind, prop, group string, x ...r3.Vec) ele.Element {
	e, err := dom.AddElement(kind, prop, group, x)
	if err != nil {
		tst.Fatalf("cannot add element:\n%v", err)
	}
	return e
}

// fix constrains dofs of node or stops the test
func fix(tst *testing.T, dom *Domain, node int, dofs ...int) {
	for _, dof := range dofs {
		if err := dom.AddConstraint(node, dof); err != nil {
			tst.Fatalf("cannot add constraint:\n%v", err)
		}
	}
}

// simpleBeam returns a simply-supported beam of span 4 with a central load of -1 along z
// loadOf returns the loads of node in load case lc
func loadOf(nod *Node, lc int) []float64 {
	f := nod.Load(lc)
	return f[:]
}

func simpleBeam(tst *testing.T) *Domain {
	dom := NewDomain(testProps(), chk.Verbose)
	addElement(tst, dom, inp.KindBeam, "beam", "left", r3.Vec{}, r3.Vec{X: 2})
	addElement(tst, dom, inp.KindBeam, "beam", "right", r3.Vec{X: 2}, r3.Vec{X: 4})
	fix(tst, dom, 0, ele.Ux, ele.Uy, ele.Uz, ele.Rx)
	fix(tst, dom, 2, ele.Uy, ele.Uz)
	if err := dom.AddLoad(0, 1, ele.Uz, -1); err != nil {
		tst.Fatalf("%v", err)
	}
	if err := dom.Finalize(); err != nil {
		tst.Fatalf("cannot finalise:\n%v", err)
	}
	return dom
}

// mixed returns a cantilever beam with a truss-only node hanging below its tip
func mixed(tst *testing.T) *Domain {
	dom := NewDomain(testProps(), chk.Verbose)
	A, B, C := r3.Vec{}, r3.Vec{X: 2}, r3.Vec{X: 1, Z: 1}
	addElement(tst, dom, inp.KindBeam, "beam", "frame", A, B)
	addElement(tst, dom, inp.KindTruss, "bar", "bars", A, C)
	addElement(tst, dom, inp.KindTruss, "bar", "bars", B, C)
	fix(tst, dom, 0, ele.Ux, ele.Uy, ele.Uz, ele.Rx, ele.Ry, ele.Rz)
	fix(tst, dom, 2, ele.Uy)
	if err := dom.AddLoad(0, 2, ele.Uz, -2); err != nil {
		tst.Fatalf("%v", err)
	}
	if err := dom.AddLoad(1, 1, ele.Uy, 0.5); err != nil {
		tst.Fatalf("%v", err)
	}
	if err := dom.Finalize(); err != nil {
		tst.Fatalf("cannot finalise:\n%v", err)
	}
	return dom
}

func Test_numbering01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("numbering01. equation numbers without elements")

	dom := NewDomain(nil, false)
	n0 := dom.AddNode(r3.Vec{})
	n1 := dom.AddNode(r3.Vec{X: 1})
	n2 := dom.AddNode(r3.Vec{X: 1, Y: 1e-9})
	chk.Int(tst, "coincident node", n2, n1)
	chk.Int(tst, "FindNode", dom.FindNode(r3.Vec{X: -1e-9}), n0)
	chk.Int(tst, "FindNode(missing)", dom.FindNode(r3.Vec{Y: 5}), -1)

	dom.Nodes[n0].Nfs = ele.FreeTranslation
	dom.Nodes[n1].Nfs = ele.FreeAll
	dom.Nodes[n0].Fix(ele.Uy)
	dom.Nodes[n1].Fix(ele.Rx)
	neq := dom.NumberEquations()
	chk.Int(tst, "neq", neq, 7)
	chk.Ints(tst, "eqs0", dom.Nodes[n0].Eqs[:], []int{0, -1, 1, -1, -1, -1})
	chk.Ints(tst, "eqs1", dom.Nodes[n1].Eqs[:], []int{2, 3, 4, -1, 5, 6})
}

func Test_truss01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("truss01. axial bar u = F L / (A E)")

	dom := NewDomain(testProps(), chk.Verbose)
	addElement(tst, dom, inp.KindTruss, "bar", "g", r3.Vec{}, r3.Vec{X: 2})
	fix(tst, dom, 0, ele.Ux, ele.Uy, ele.Uz)
	fix(tst, dom, 1, ele.Uy, ele.Uz)
	if err := dom.AddLoad(0, 1, ele.Ux, 5); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if err := dom.Finalize(); err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.Int(tst, "neq", dom.Neq, 1)
	if err := dom.AssembleAndSolve(0); err != nil {
		tst.Errorf("%v", err)
		return
	}
	bar := ana.AxialBar{F: 5, L: 2, A: 0.01, E: 1000}
	bar.CheckDispl(tst, dom.Nodes[1].U[ele.Ux], 1e-12)
	chk.Float64(tst, "compliance", 1e-12, dom.Compliance(), bar.Compliance())
	chk.Array(tst, "U0", 1e-15, dom.Nodes[0].U[:], make([]float64, 6))
}

func Test_beam01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("beam01. simply-supported beam w = P L³ / (48 E I)")

	dom := simpleBeam(tst)
	if err := dom.AssembleAndSolve(0); err != nil {
		tst.Errorf("%v", err)
		return
	}
	sec := ana.NewRectangle(0.2, 0.4)
	beam := ana.SimpleBeam{P: -1, L: 4, E: 1000, I: sec.Iy}
	chk.Float64(tst, "wmax", 1e-10, dom.Nodes[1].U[ele.Uz], beam.MaxDeflection())
	beam.CheckDeflection(tst, 2, dom.Nodes[1].U[ele.Uz], 1e-10)
	chk.Float64(tst, "compliance", 1e-10, dom.Compliance(), beam.P*beam.MaxDeflection())
	chk.Float64(tst, "rotations", 1e-10, dom.Nodes[0].U[ele.Ry], -dom.Nodes[2].U[ele.Ry])

	res, err := dom.Results()
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.Int(tst, "ngroups", len(res), 2)
	chk.Float64(tst, "left volume", 1e-15, res[0].Volume, 0.2*0.4*2)
	chk.Float64(tst, "left fraction", 1e-15, res[0].Fraction(), 1)
	chk.Float64(tst, "symmetric compliance", 1e-10, res[0].Compliance, res[1].Compliance)
	if res[0].Group != "left" || res[1].Group != "right" {
		tst.Errorf("groups must be sorted: %q %q", res[0].Group, res[1].Group)
	}
}

func Test_mixed01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mixed01. truss-only node has no rotational dofs")

	dom := mixed(tst)
	chk.Ints(tst, "eqs of truss-only node", dom.Nodes[2].Eqs[:], []int{6, -1, 7, -1, -1, -1})
	chk.Int(tst, "neq", dom.Neq, 8)
	if nfs := dom.Nodes[2].Nfs.String(); nfs != "111000" {
		tst.Errorf("NFS of truss-only node is incorrect: %s", nfs)
	}
	chk.Ints(tst, "load cases", dom.LoadCases(), []int{0, 1})
	for _, lc := range dom.LoadCases() {
		if err := dom.AssembleAndSolve(lc); err != nil {
			tst.Errorf("%v", err)
			return
		}
		if dom.Compliance() <= 0 {
			tst.Errorf("compliance of load case %d must be positive", lc)
		}
	}

	// the dangling node moves down
	if err := dom.Solve(0); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if dom.Nodes[2].U[ele.Uz] >= 0 {
		tst.Errorf("truss-only node must move down: uz = %g", dom.Nodes[2].U[ele.Uz])
	}
	umax, _ := dom.MaxDispl()
	if umax < math.Abs(dom.Nodes[2].U[ele.Uz]) {
		tst.Errorf("max displacement %g is smaller than uz of node 2", umax)
	}
}

func Test_singular01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("singular01. unconstrained mechanism")

	dom := NewDomain(testProps(), chk.Verbose)
	addElement(tst, dom, inp.KindTruss, "bar", "g", r3.Vec{}, r3.Vec{X: 1})
	fix(tst, dom, 0, ele.Ux, ele.Uy, ele.Uz)
	if err := dom.AddLoad(0, 1, ele.Ux, 1); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if err := dom.Finalize(); err != nil {
		tst.Errorf("%v", err)
		return
	}
	err := dom.AssembleAndSolve(0)
	if !errors.Is(err, ErrSingular) {
		tst.Errorf("error must be ErrSingular; got %v", err)
	}

	// nothing to solve
	dom = NewDomain(testProps(), chk.Verbose)
	addElement(tst, dom, inp.KindTruss, "bar", "g", r3.Vec{}, r3.Vec{X: 1})
	fix(tst, dom, 0, ele.Ux, ele.Uy, ele.Uz)
	fix(tst, dom, 1, ele.Ux, ele.Uy, ele.Uz)
	if err = dom.Finalize(); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if err = dom.AssembleAndSolve(0); !errors.Is(err, ErrSingular) {
		tst.Errorf("error must be ErrSingular; got %v", err)
	}
}

func Test_loads01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("loads01. loads on supports and inactive dofs")

	build := func() *Domain {
		dom := NewDomain(testProps(), chk.Verbose)
		addElement(tst, dom, inp.KindTruss, "bar", "g", r3.Vec{}, r3.Vec{X: 1})
		fix(tst, dom, 0, ele.Ux, ele.Uy, ele.Uz)
		fix(tst, dom, 1, ele.Uy, ele.Uz)
		return dom
	}

	// load on support
	dom := build()
	if err := dom.AddLoad(0, 0, ele.Ux, 3); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if err := dom.Finalize(); err == nil {
		tst.Errorf("load on support must fail")
	}
	dom.LoadsOnSupports = true
	if err := dom.Finalize(); err != nil {
		tst.Errorf("load on support must be dropped:\n%v", err)
		return
	}
	f := dom.Nodes[0].Load(0)
	chk.Float64(tst, "dropped load", 1e-15, f[ele.Ux], 0)

	// load on rotation of truss node
	dom = build()
	if err := dom.AddLoad(0, 1, ele.Rz, 1); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if err := dom.Finalize(); err == nil {
		tst.Errorf("load on inactive dof must fail")
	}

	// invalid indices
	if err := dom.AddLoad(0, 5, ele.Ux, 1); err == nil {
		tst.Errorf("load on missing node must fail")
	}
	if err := dom.AddConstraint(0, 6); err == nil {
		tst.Errorf("constraint on invalid dof must fail")
	}

	// element errors
	if _, err := dom.AddElement("solid", "bar", "g", []r3.Vec{{}, {X: 1}}); err == nil {
		tst.Errorf("unknown kind must fail")
	}
	if _, err := dom.AddElement(inp.KindTruss, "nope", "g", []r3.Vec{{}, {X: 1}}); err == nil {
		tst.Errorf("unknown property set must fail")
	}
	if _, err := dom.AddElement(inp.KindShell, "plate", "g", []r3.Vec{{}, {X: 1}}); err == nil {
		tst.Errorf("wrong number of vertices must fail")
	}
	if _, err := dom.AddElement(inp.KindTruss, "beam", "g", []r3.Vec{{X: 5}, {X: 6}}); err == nil {
		tst.Errorf("property set of another kind must fail")
	}
	if _, err := dom.AddElement(inp.KindBeam, "beam", "g", []r3.Vec{{X: 7}, {X: 7}}); err == nil {
		tst.Errorf("zero-length beam must fail")
	}

	// rejected elements leave no nodes behind
	chk.Int(tst, "nnodes", len(dom.Nodes), 2)
	if idx := dom.FindNode(r3.Vec{X: 5}); idx != -1 {
		tst.Errorf("node of rejected element must not exist; found %d", idx)
	}
	var buf bytes.Buffer
	if err := dom.WriteDump(&buf); err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.Int(tst, "node records in dump", strings.Count(buf.String(), "N,"), 2)

	// nodes of a valid element are appended in order; shared vertices are reused
	e, err := dom.AddElement(inp.KindTruss, "bar", "g", []r3.Vec{{X: 1}, {X: 5}})
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.Ints(tst, "verts", e.Verts(), []int{1, 2})
	chk.Int(tst, "nnodes", len(dom.Nodes), 3)
}

func Test_loads02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("loads02. abstract loads")

	dom := NewDomain(testProps(), chk.Verbose)
	addElement(tst, dom, inp.KindShell, "plate", "floor", r3.Vec{}, r3.Vec{X: 2}, r3.Vec{X: 2, Y: 3}, r3.Vec{Y: 3})
	addElement(tst, dom, inp.KindTruss, "bar", "bars", r3.Vec{X: 2}, r3.Vec{X: 2, Z: 4})

	// distributed over area
	q := &inp.Load{Case: 0, Mag: 2, Altitude: -90, Type: inp.LoadDistributed}
	if err := dom.ApplyDistributedLoad(q, "floor"); err != nil {
		tst.Errorf("%v", err)
		return
	}
	for n := 0; n < 4; n++ {
		chk.Array(tst, io.Sf("F%d", n), 1e-15, loadOf(dom.Nodes[n], 0), []float64{0, 0, -3, 0, 0, 0})
	}

	// distributed over length
	w := &inp.Load{Case: 1, Mag: 0.5, Azimuth: 90, Type: inp.LoadDistributed}
	if err := dom.ApplyDistributedLoad(w, "bars"); err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.Array(tst, "F4", 1e-15, loadOf(dom.Nodes[4], 1), []float64{0, 1, 0, 0, 0, 0})
	chk.Array(tst, "F1", 1e-15, loadOf(dom.Nodes[1], 1), []float64{0, 1, 0, 0, 0, 0})

	// point
	p := &inp.Load{Case: 1, Mag: 4, Azimuth: 180, Altitude: 60, Type: inp.LoadPoint}
	if err := dom.ApplyPointLoad(p, 4); err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.Array(tst, "F4", 1e-14, loadOf(dom.Nodes[4], 1), []float64{-2, 1, 2 * 1.7320508075688772, 0, 0, 0})

	// errors
	if err := dom.ApplyDistributedLoad(q, "roof"); err == nil {
		tst.Errorf("empty group must fail")
	}
	if err := dom.ApplyPointLoad(q, 0); err == nil {
		tst.Errorf("distributed load applied to node must fail")
	}
	if err := dom.ApplyDistributedLoad(p, "floor"); err == nil {
		tst.Errorf("point load applied to group must fail")
	}
}

func Test_sensitivity01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sensitivity01. compliance sensitivities")

	dom := mixed(tst)
	penal := 3.0
	x := []float64{0.6, 0.4, 0.8}
	compliance := func() float64 {
		if err := dom.UpdateDensities(x, penal); err != nil {
			tst.Fatalf("%v", err)
		}
		if err := dom.AssembleAndSolve(0); err != nil {
			tst.Fatalf("%v", err)
		}
		return dom.Compliance()
	}
	compliance()
	dc := make([]float64, len(x))
	for i, e := range dom.Elems {
		dc[i] = 2.0 * e.EnergySensitivity(penal)
	}
	for i := range x {
		xi := x[i]
		num := fd.Derivative(func(v float64) float64 {
			x[i] = v
			return compliance()
		}, xi, &fd.Settings{Formula: fd.Central, Step: 1e-6})
		x[i] = xi
		chk.AnaNum(tst, io.Sf("dc/dx%d", i), 1e-6*(1+math.Abs(dc[i])), dc[i], num, chk.Verbose)
	}
}

func Test_densities01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("densities01. parallel density updates")

	dom := mixed(tst)
	dom.Nworkers = 2
	x := []float64{0.3, 0.5, 0.9}
	if err := dom.UpdateDensities(x, 3); err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.Array(tst, "x", 1e-15, dom.Densities(), x)
	for i, e := range dom.Elems {
		K0 := e.Stiffness().At(0, 0) / ele.SimpRatio(x[i], 3)
		if err := dom.UpdateDensities([]float64{1, 1, 1}, 3); err != nil {
			tst.Errorf("%v", err)
			return
		}
		chk.Float64(tst, io.Sf("K%d(0,0)", i), 1e-10*K0, e.Stiffness().At(0, 0), K0)
		if err := dom.UpdateDensities(x, 3); err != nil {
			tst.Errorf("%v", err)
			return
		}
	}
	if err := dom.UpdateDensities([]float64{1}, 3); err == nil {
		tst.Errorf("wrong number of densities must fail")
	}
	total, material := dom.Volume()
	chk.Float64(tst, "total volume", 1e-14, total, 0.2*0.4*2+2*0.01*1.4142135623730951)
	chk.Float64(tst, "material", 1e-14, material, 0.3*0.2*0.4*2+(0.5+0.9)*0.01*1.4142135623730951)
}

func Test_results01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("results01. group compliance summed over load cases")

	dom := mixed(tst)
	x := []float64{0.6, 0.4, 0.8}
	if err := dom.UpdateDensities(x, 3); err != nil {
		tst.Errorf("%v", err)
		return
	}

	// solve the first load case with other densities; results must not depend on it
	if err := dom.UpdateDensities([]float64{1, 1, 1}, 3); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if err := dom.AssembleAndSolve(0); err != nil {
		tst.Errorf("%v", err)
		return
	}
	if err := dom.UpdateDensities(x, 3); err != nil {
		tst.Errorf("%v", err)
		return
	}

	// reference: compliance per load case
	if err := dom.AssembleK(); err != nil {
		tst.Errorf("%v", err)
		return
	}
	var cref, clast float64
	for _, lc := range dom.LoadCases() {
		if err := dom.Solve(lc); err != nil {
			tst.Errorf("%v", err)
			return
		}
		clast = dom.Compliance()
		cref += clast
	}

	res, err := dom.Results()
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.Int(tst, "ngroups", len(res), 2)
	var c float64
	for _, r := range res {
		io.Pforan("%s: c = %g\n", r.Group, r.Compliance)
		c += r.Compliance
	}
	chk.Float64(tst, "Σ group compliance", 1e-12*cref, c, cref)
	if cref-clast <= 0 {
		tst.Errorf("both load cases must contribute to the compliance")
	}
	chk.Float64(tst, "last case still solved", 1e-12*clast, dom.Compliance(), clast)
	chk.Float64(tst, "bars material", 1e-14, res[0].Material, (0.4+0.8)*0.01*1.4142135623730951)
}

func Test_dump01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dump01. write and read densities")

	dom := simpleBeam(tst)
	if err := dom.UpdateDensities([]float64{0.25, 0.75}, 3); err != nil {
		tst.Errorf("%v", err)
		return
	}
	var buf bytes.Buffer
	if err := dom.WriteDump(&buf); err != nil {
		tst.Errorf("%v", err)
		return
	}
	io.Pforan("%s", buf.String())
	if !strings.Contains(buf.String(), "DE,1,2,0.75\n") {
		tst.Errorf("dump is incorrect:\n%s", buf.String())
	}
	d, err := inp.ParseDump(&buf, "dump")
	if err != nil {
		tst.Errorf("%v", err)
		return
	}

	// same geometry, reversed order and orientation
	other := NewDomain(testProps(), chk.Verbose)
	addElement(tst, other, inp.KindBeam, "beam", "right", r3.Vec{X: 4}, r3.Vec{X: 2.0000001})
	addElement(tst, other, inp.KindBeam, "beam", "left", r3.Vec{X: 2}, r3.Vec{})
	addElement(tst, other, inp.KindBeam, "beam", "extra", r3.Vec{X: 4}, r3.Vec{X: 6})
	n, err := other.ApplyDump(d, 3)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.Int(tst, "matched", n, 2)
	chk.Array(tst, "x", 1e-15, other.Densities(), []float64{0.75, 0.25, 1})
}
