// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"strconv"

	"github.com/cpmech/gosl/chk"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Control holds the optimiser control parameters
type Control struct {
	Volfrac    float64 `yaml:"volfrac" validate:"gt=0,lte=1"`         // target volume fraction f
	Penal      float64 `yaml:"penal" validate:"gte=1"`                // penalisation exponent p
	Rmin       float64 `yaml:"rmin" validate:"gte=0"`                 // filter radius; 0 means rminfactor × smallest element diagonal
	RminFactor float64 `yaml:"rminfactor" validate:"gt=0"`            // factor applied to the smallest element diagonal
	Move       float64 `yaml:"move" validate:"gt=0,lte=1"`            // move limit
	Tol        float64 `yaml:"tol" validate:"gt=0"`                   // convergence tolerance on max density change
	Maxit      int     `yaml:"maxit" validate:"gte=1"`                // max number of iterations
	Xmin       float64 `yaml:"xmin" validate:"gt=0,ltefield=Volfrac"` // min density
	Nworkers   int     `yaml:"nworkers" validate:"gte=0"`             // number of workers; 0 means GOMAXPROCS
	Verbose    bool    `yaml:"verbose"`                               // show messages
}

// env keys overriding control parameters
const (
	EnvVolfrac = "SIMP_VOLFRAC"
	EnvPenal   = "SIMP_PENAL"
	EnvMaxit   = "SIMP_MAXIT"
	EnvTol     = "SIMP_TOL"
)

// DefaultControl returns the default control parameters
func DefaultControl() *Control {
	return &Control{
		Volfrac:    0.5,
		Penal:      3,
		RminFactor: 1.5,
		Move:       0.2,
		Tol:        0.01,
		Maxit:      100,
		Xmin:       1e-3,
	}
}

// ReadControl reads a YAML control file. Missing keys keep their default values.
// An empty filename returns the defaults
func ReadControl(fn string) (o *Control, err error) {
	if fn == "" {
		o = DefaultControl()
		return
	}
	b, err := os.ReadFile(fn)
	if err != nil {
		err = chk.Err("cannot read control file %q:\n%v", fn, err)
		return
	}
	o, err = ParseControl(b)
	if err != nil {
		err = chk.Err("control file %q is invalid:\n%v", fn, err)
	}
	return
}

// ParseControl parses YAML data and validates the result
func ParseControl(b []byte) (o *Control, err error) {
	o = DefaultControl()
	if err = yaml.Unmarshal(b, o); err != nil {
		return nil, err
	}
	if err = o.Validate(); err != nil {
		return nil, err
	}
	return
}

// Validate checks the control parameters
func (o *Control) Validate() error {
	if err := validate.Struct(o); err != nil {
		return chk.Err("invalid control parameters:\n%v", err)
	}
	return nil
}

// ApplyEnv overrides parameters from the environment and validates the result
func (o *Control) ApplyEnv() (err error) {
	for _, key := range []string{EnvVolfrac, EnvPenal, EnvTol} {
		s, ok := os.LookupEnv(key)
		if !ok || s == "" {
			continue
		}
		v, e := strconv.ParseFloat(s, 64)
		if e != nil {
			return chk.Err("environment variable %s=%q is not a valid number", key, s)
		}
		switch key {
		case EnvVolfrac:
			o.Volfrac = v
		case EnvPenal:
			o.Penal = v
		case EnvTol:
			o.Tol = v
		}
	}
	if s, ok := os.LookupEnv(EnvMaxit); ok && s != "" {
		n, e := strconv.Atoi(s)
		if e != nil {
			return chk.Err("environment variable %s=%q is not a valid integer", EnvMaxit, s)
		}
		o.Maxit = n
	}
	return o.Validate()
}

var validate = validator.New(validator.WithRequiredStructEnabled())
