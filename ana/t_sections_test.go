// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_sections01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sections01. rectangular cross-sections")

	rect := NewRectangle(4, 6)
	io.Pforan("4 x 6 rectangle: %+v\n", rect)
	chk.Float64(tst, "A ", 1e-17, rect.A, 24.0)
	chk.Float64(tst, "Iy", 1e-17, rect.Iy, 72.0)
	chk.Float64(tst, "Iz", 1e-17, rect.Iz, 32.0)
	chk.Float64(tst, "J ", 1e-11, rect.J, 75.1249382716)

	rect = NewRectangle(6, 4)
	chk.Float64(tst, "Iy (rotated)", 1e-17, rect.Iy, 32.0)
	chk.Float64(tst, "Iz (rotated)", 1e-17, rect.Iz, 72.0)
	chk.Float64(tst, "J  (rotated)", 1e-11, rect.J, 75.1249382716)

	rect = NewRectangle(4, 4)
	chk.Float64(tst, "A ", 1e-17, rect.A, 16.0)
	chk.Float64(tst, "Iy", 1e-13, rect.Iy, 21.3333333333333)
	chk.Float64(tst, "Iz", 1e-13, rect.Iz, 21.3333333333333)
	chk.Float64(tst, "J ", 1e-17, rect.J, 36.0)
}

func Test_materials01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("materials01. reference materials parameters")

	steel := NewMaterial("steel")
	io.Pforan("%s: E=%g ν=%g G=%g\n", steel.Desc, steel.E, steel.Nu, steel.G)
	chk.Float64(tst, "E", 1e-17, steel.E, 200000.0)
	chk.Float64(tst, "G", 1e-10, steel.G, 200000.0/2.64)

	defer func() {
		if err := recover(); err == nil {
			tst.Errorf("unknown material should panic")
		}
	}()
	NewMaterial("unobtainium")
}

func Test_structures01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("structures01. closed-form solutions")

	bar := AxialBar{F: 10, L: 2, A: 0.5, E: 200}
	chk.Float64(tst, "bar: u", 1e-15, bar.Displ(), 0.2)
	chk.Float64(tst, "bar: c", 1e-15, bar.Compliance(), 2.0)

	beam := SimpleBeam{P: 48, L: 2, E: 1, I: 1}
	chk.Float64(tst, "beam: wmax", 1e-15, beam.MaxDeflection(), 8.0)
	beam.CheckDeflection(tst, 1, beam.MaxDeflection(), 1e-15)
	chk.Float64(tst, "beam: symmetry", 1e-15, beam.Deflection(0.5), beam.Deflection(1.5))
	chk.Float64(tst, "beam: support", 1e-15, beam.Deflection(0), 0)

	cant := Cantilever{P: 3, L: 1, E: 1, I: 1}
	chk.Float64(tst, "cantilever: w", 1e-15, cant.TipDeflection(), 1.0)
	chk.Float64(tst, "cantilever: θ", 1e-15, cant.TipRotation(), 1.5)
}
