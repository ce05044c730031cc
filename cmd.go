// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	_ "github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/ele/solid"
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/fem"
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/inp"
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/opt"
	"github.com/TUe-excellent-buildings/MSc-2023-Heuvelman-sub003/out"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// runOptions holds the flags of the run command
type runOptions struct {
	settings string // settings file
	mesh     string // mesh file
	control  string // control file (YAML)
	env      string // dotenv file with SIMP_* overrides
	dump     string // output: densities
	report   string // output: xlsx report
	metrics  string // output: metrics in Prometheus text format
	resume   string // input: densities of a previous run
	verbose  bool   // show messages
}

// newRootCmd returns the command tree
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gosimp",
		Short:         "Structural analysis and SIMP topology optimisation of trusses, beams and flat shells",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	return root
}

// newRunCmd returns the run command
func newRunCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the topology optimisation of a structure",
		Long: `Reads the settings and mesh files, builds the structure, minimises its compliance
for the given volume fraction and writes densities and reports.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return run(ctx, &opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.settings, "settings", "s", "", "settings file (MESH, LOAD and property-set records)")
	f.StringVarP(&opts.mesh, "mesh", "m", "", "mesh file (N, E, C, F and AL records)")
	f.StringVarP(&opts.control, "control", "c", "", "optimiser control file (YAML); defaults are used if empty")
	f.StringVar(&opts.env, "env", ".env", "dotenv file with SIMP_* overrides; ignored if missing")
	f.StringVarP(&opts.dump, "dump", "d", "", "write densities to this file")
	f.StringVarP(&opts.report, "report", "r", "", "write an xlsx report to this file")
	f.StringVar(&opts.metrics, "metrics", "", "write metrics in Prometheus text format to this file")
	f.StringVar(&opts.resume, "resume", "", "start from the densities of a dump file")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "show messages")
	cmd.MarkFlagRequired("settings")
	cmd.MarkFlagRequired("mesh")
	return cmd
}

// run runs the optimisation
func run(ctx context.Context, opts *runOptions) (err error) {

	// environment
	if opts.env != "" {
		if _, e := os.Stat(opts.env); e == nil {
			if err = godotenv.Load(opts.env); err != nil {
				return chk.Err("cannot load %q:\n%v", opts.env, err)
			}
		}
	}

	// input
	set, err := inp.ReadSettings(opts.settings)
	if err != nil {
		return
	}
	msh, err := inp.ReadMesh(opts.mesh)
	if err != nil {
		return
	}
	ctrl, err := inp.ReadControl(opts.control)
	if err != nil {
		return
	}
	if err = ctrl.ApplyEnv(); err != nil {
		return
	}
	ctrl.Verbose = ctrl.Verbose || opts.verbose
	if ctrl.Verbose {
		io.Pf("%v\n", io.ArgsTable("INPUT",
			"settings file", "settings", opts.settings,
			"mesh file", "mesh", opts.mesh,
			"control file", "control", opts.control,
			"volume fraction", "volfrac", ctrl.Volfrac,
			"penalisation", "penal", ctrl.Penal,
			"max iterations", "maxit", ctrl.Maxit,
		))
	}

	// structure
	dom, err := fem.NewDomainFromInput(set, msh, ctrl.Verbose)
	if err != nil {
		return
	}
	if opts.resume != "" {
		d, e := inp.ReadDump(opts.resume)
		if e != nil {
			return e
		}
		if _, err = dom.ApplyDump(d, ctrl.Penal); err != nil {
			return
		}
	}

	// optimiser
	o, err := opt.NewOptimizer(dom, ctrl)
	if err != nil {
		return
	}
	o.Resume = opts.resume != ""
	reg := prometheus.NewRegistry()
	o.Observers = append(o.Observers, opt.NewMetrics(reg))
	start := time.Now()
	runErr := o.Run(ctx)
	if runErr != nil && !errors.Is(runErr, opt.ErrNotConverged) {
		return runErr
	}

	// results
	if ctrl.Verbose {
		io.Pf("\n%8s %6s %12s %12s %12s\n", "group", "nelems", "volume", "fraction", "compliance")
		groups, e := dom.Results()
		if e != nil {
			return e
		}
		for _, g := range groups {
			io.Pf("%8s %6d %12.4e %12.4f %12.4e\n", g.Group, g.Nelems, g.Volume, g.Fraction(), g.Compliance)
		}
		io.Pf("> elapsed time = %v\n", time.Since(start))
	}
	if err = write(o, opts, reg); err != nil {
		return
	}
	return runErr
}

// write writes output files
func write(o *opt.Optimizer, opts *runOptions, reg *prometheus.Registry) (err error) {
	if opts.dump != "" {
		f, e := os.Create(opts.dump)
		if e != nil {
			return chk.Err("cannot create dump file %q:\n%v", opts.dump, e)
		}
		defer f.Close()
		if err = o.Dom.WriteDump(f); err != nil {
			return
		}
		if o.ShowMsg {
			io.Pf("file <%s> written\n", opts.dump)
		}
	}
	if opts.report != "" {
		rep, e := out.NewReport(o)
		if e != nil {
			return e
		}
		if err = rep.Save(opts.report); err != nil {
			return
		}
	}
	if opts.metrics != "" {
		if err = prometheus.WriteToTextfile(opts.metrics, reg); err != nil {
			return chk.Err("cannot write metrics to %q:\n%v", opts.metrics, err)
		}
	}
	return
}
