// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/ele"
	_ "github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/ele/solid"
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/fem"
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/inp"
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/opt"
	"github.com/cpmech/gosl/chk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/spatial/r3"
)

// optimised returns an optimiser that ran on three bars with two load cases
func optimised(t *testing.T) *opt.Optimizer {
	props := map[string]*inp.PropSet{"bar": {Id: "bar", Kind: inp.KindTruss, Vals: []float64{0.01, 1000}}}
	dom := fem.NewDomain(props, false)
	for _, x := range [][]r3.Vec{{{}, {X: 1}}, {{X: 1}, {X: 2}}, {{X: 1, Y: 1}, {X: 1}}} {
		_, err := dom.AddElement(inp.KindTruss, "bar", "space"+strconv.Itoa(len(dom.Elems)%2), x)
		require.NoError(t, err)
	}
	for dof := ele.Ux; dof <= ele.Uz; dof++ {
		require.NoError(t, dom.AddConstraint(0, dof))
		require.NoError(t, dom.AddConstraint(3, dof))
	}
	for n := 1; n <= 2; n++ {
		require.NoError(t, dom.AddConstraint(n, ele.Uz))
	}
	require.NoError(t, dom.AddConstraint(2, ele.Uy))
	require.NoError(t, dom.AddLoad(0, 2, ele.Ux, 1))
	require.NoError(t, dom.AddLoad(3, 1, ele.Uy, -1))
	require.NoError(t, dom.Finalize())

	ctrl := inp.DefaultControl()
	ctrl.Maxit = 3
	o, err := opt.NewOptimizer(dom, ctrl)
	require.NoError(t, err)
	err = o.Run(context.Background())
	if err != nil {
		require.ErrorIs(t, err, opt.ErrNotConverged)
	}
	return o
}

func Test_report01(t *testing.T) {

	chk.PrintTitle("report01. xlsx workbook")

	o := optimised(t)
	rep, err := NewReport(o)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, rep.Write(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetHistory, SheetGroups, SheetElements}, f.GetSheetList())

	hist, err := f.GetRows(SheetHistory)
	require.NoError(t, err)
	require.Len(t, hist, len(o.History)+1)
	assert.Equal(t, []string{"iter", "compliance", "volfrac", "change", "lambda", "seconds", "c0", "c3"}, hist[0])
	assert.Equal(t, "1", hist[1][0])
	c, err := strconv.ParseFloat(hist[1][1], 64)
	require.NoError(t, err)
	assert.InDelta(t, o.History[0].Compliance, c, 1e-9*c)

	groups, err := f.GetRows(SheetGroups)
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, "space0", groups[1][0])
	assert.Equal(t, "2", groups[1][1])

	elems, err := f.GetRows(SheetElements)
	require.NoError(t, err)
	require.Len(t, elems, 4)
	assert.Equal(t, []string{"2", "truss", "space0"}, elems[3][:3])
}

func Test_report02(t *testing.T) {

	chk.PrintTitle("report02. save to file")

	rep := &Report{}
	fn := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, rep.Save(fn))
	f, err := excelize.OpenFile(fn)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetHistory)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, []string{SheetHistory, SheetGroups}, f.GetSheetList())
}
