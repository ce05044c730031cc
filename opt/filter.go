// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package opt implements SIMP topology optimisation: sensitivity filter, optimality
// criteria update and the optimisation loop
package opt

import (
	"math"
	"runtime"

	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/ele"
	"github.com/cpmech/gosl/chk"
	"github.com/james-bowman/sparse"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// FilterEps is the smallest density used in the denominator of the filter
const FilterEps = 1e-3

// Filter implements the sensitivity filter
//
//            Σ_j w_ij x_j dc_j
//  dc_i = ─────────────────────     w_ij = max(0, rmin - |c_i - c_j|)
//          Hs_i max(ε, x_i)         Hs_i = Σ_j w_ij
//
type Filter struct {
	Rmin float64     // radius
	H    *sparse.CSR // weights
	Hs   []float64   // row sums of H
	tmp  []float64   // x_j dc_j
}

// NewFilter computes the weights between all element centres closer than rmin
func NewFilter(centers []r3.Vec, rmin float64, nworkers int) (o *Filter, err error) {

	// check
	n := len(centers)
	if n == 0 {
		return nil, chk.Err("filter needs at least one element")
	}
	if rmin <= 0 {
		return nil, chk.Err("filter radius must be positive; %g is invalid", rmin)
	}

	// neighbours
	pts := make(points, n)
	for i, c := range centers {
		pts[i] = point{i, c}
	}
	tree := kdtree.New(pts, false)
	cols := make([][]int, n)
	vals := make([][]float64, n)
	if nworkers < 1 {
		nworkers = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(nworkers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			keep := kdtree.NewDistKeeper(rmin * rmin)
			tree.NearestSet(keep, point{i, centers[i]})
			for _, cd := range keep.Heap {
				if cd.Comparable == nil {
					continue
				}
				r := math.Sqrt(cd.Dist)
				if r < rmin {
					cols[i] = append(cols[i], cd.Comparable.(point).idx)
					vals[i] = append(vals[i], rmin-r)
				}
			}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return
	}

	// weights
	dok := sparse.NewDOK(n, n)
	o = &Filter{Rmin: rmin, Hs: make([]float64, n), tmp: make([]float64, n)}
	for i := 0; i < n; i++ {
		for k, j := range cols[i] {
			dok.Set(i, j, vals[i][k])
			o.Hs[i] += vals[i][k]
		}
	}
	o.H = dok.ToCSR()
	return
}

// DefaultRadius returns factor times the smallest element diagonal
func DefaultRadius(elems []ele.Element, factor float64) (rmin float64) {
	rmin = math.Inf(1)
	for _, e := range elems {
		rmin = math.Min(rmin, e.Diagonal())
	}
	return factor * rmin
}

// Apply filters the sensitivities dc using the densities x. dst may be dc
func (o *Filter) Apply(dst, x, dc []float64) {
	for j := range x {
		o.tmp[j] = x[j] * dc[j]
		dst[j] = 0
	}
	o.H.MulVecTo(dst, false, o.tmp)
	for i := range dst {
		dst[i] /= o.Hs[i] * math.Max(FilterEps, x[i])
	}
}

// Nnz returns the number of stored weights
func (o *Filter) Nnz() int {
	return o.H.NNZ()
}

// point is an element centre in the kd-tree
type point struct {
	idx int
	x   r3.Vec
}

func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(point)
	switch d {
	case 0:
		return p.x.X - q.x.X
	case 1:
		return p.x.Y - q.x.Y
	}
	return p.x.Z - q.x.Z
}

func (p point) Dims() int { return 3 }

// Distance returns the squared distance
func (p point) Distance(c kdtree.Comparable) float64 {
	d := r3.Sub(p.x, c.(point).x)
	return r3.Dot(d, d)
}

type points []point

func (p points) Index(i int) kdtree.Comparable         { return p[i] }
func (p points) Len() int                              { return len(p) }
func (p points) Pivot(d kdtree.Dim) int                { return plane{Dim: d, points: p}.Pivot() }
func (p points) Slice(start, end int) kdtree.Interface { return p[start:end] }

// plane sorts points along one dimension
type plane struct {
	kdtree.Dim
	points
}

func (p plane) Less(i, j int) bool {
	return p.points[i].Compare(p.points[j], p.Dim) < 0
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}
