// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out writes results of topology optimisation runs
package out

import (
	goio "io"

	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/fem"
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/opt"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/xuri/excelize/v2"
)

// sheet names
const (
	SheetHistory  = "history"
	SheetGroups   = "groups"
	SheetElements = "elements"
)

// Report holds the data written to a workbook
type Report struct {
	History []*opt.Record      // iterations
	Lcs     []int              // load cases; column per case in the history sheet
	Groups  []*fem.GroupResult // results per group
	Dom     *fem.Domain        // domain; elements are written if not nil
}

// NewReport collects the results of an optimiser. Group results correspond to its current densities
func NewReport(o *opt.Optimizer) (rep *Report, err error) {
	groups, err := o.Dom.Results()
	if err != nil {
		return nil, chk.Err("cannot compute results per group:\n%v", err)
	}
	return &Report{History: o.History, Lcs: o.Lcs, Groups: groups, Dom: o.Dom}, nil
}

// Write writes the report as an xlsx workbook
func (o *Report) Write(w goio.Writer) (err error) {
	f := excelize.NewFile()
	defer f.Close()
	if err = o.fill(f); err != nil {
		return
	}
	if err = f.Write(w); err != nil {
		return chk.Err("cannot write report:\n%v", err)
	}
	return
}

// Save saves the report to an xlsx file
func (o *Report) Save(fn string) (err error) {
	f := excelize.NewFile()
	defer f.Close()
	if err = o.fill(f); err != nil {
		return
	}
	if err = f.SaveAs(fn); err != nil {
		return chk.Err("cannot save report %q:\n%v", fn, err)
	}
	io.Pf("file <%s> written\n", fn)
	return
}

// fill writes all sheets
func (o *Report) fill(f *excelize.File) (err error) {

	// history
	if err = f.SetSheetName("Sheet1", SheetHistory); err != nil {
		return
	}
	header := []interface{}{"iter", "compliance", "volfrac", "change", "lambda", "seconds"}
	for _, lc := range o.Lcs {
		header = append(header, io.Sf("c%d", lc))
	}
	rows := [][]interface{}{header}
	for _, r := range o.History {
		row := []interface{}{r.Iter, r.Compliance, r.Volfrac, r.Change, r.Lambda, r.Duration.Seconds()}
		for _, c := range r.Cases {
			row = append(row, c)
		}
		rows = append(rows, row)
	}
	if err = setRows(f, SheetHistory, rows); err != nil {
		return
	}

	// groups
	rows = [][]interface{}{{"group", "nelems", "volume", "material", "fraction", "compliance"}}
	for _, g := range o.Groups {
		rows = append(rows, []interface{}{g.Group, g.Nelems, g.Volume, g.Material, g.Fraction(), g.Compliance})
	}
	if _, err = f.NewSheet(SheetGroups); err != nil {
		return
	}
	if err = setRows(f, SheetGroups, rows); err != nil {
		return
	}

	// elements
	if o.Dom == nil {
		return
	}
	rows = [][]interface{}{{"id", "kind", "group", "density", "volume", "energy", "cx", "cy", "cz"}}
	for _, e := range o.Dom.Elems {
		c := e.Center()
		rows = append(rows, []interface{}{e.Id(), e.Kind(), e.Group(), e.Density(), e.Volume(), e.Energy(), c.X, c.Y, c.Z})
	}
	if _, err = f.NewSheet(SheetElements); err != nil {
		return
	}
	return setRows(f, SheetElements, rows)
}

// setRows writes rows starting at A1
func setRows(f *excelize.File, sheet string, rows [][]interface{}) (err error) {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return chk.Err("cannot write row %d of sheet %q:\n%v", i+1, sheet, err)
		}
	}
	return
}
