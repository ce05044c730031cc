// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opt

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics namespace
const (
	metricsNamespace = "simp"
)

// Metrics exports the progress of an optimiser to Prometheus. It implements Observer
type Metrics struct {
	Iterations prometheus.Counter   // completed iterations
	Compliance *prometheus.GaugeVec // compliance per load case ("all" for the sum)
	Volfrac    prometheus.Gauge     // volume fraction
	Change     prometheus.Gauge     // max density change
	Duration   prometheus.Histogram // iteration wall time in seconds
}

// NewMetrics registers optimiser metrics with reg; nil means the default registerer
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		Iterations: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "iterations_total",
			Help:      "Total number of completed SIMP iterations",
		}),
		Compliance: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "compliance",
			Help:      "Compliance of the last iteration by load case",
		}, []string{"case"}),
		Volfrac: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "volume_fraction",
			Help:      "Volume fraction after the last update",
		}),
		Change: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "density_change",
			Help:      "Max density change of the last iteration",
		}),
		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "iteration_duration_seconds",
			Help:      "Wall time of SIMP iterations in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 16),
		}),
	}
}

// Observe records one iteration
func (o *Metrics) Observe(opt *Optimizer, rec *Record) {
	o.Iterations.Inc()
	o.Compliance.WithLabelValues("all").Set(rec.Compliance)
	for k, c := range rec.Cases {
		o.Compliance.WithLabelValues(caseLabel(opt.Lcs[k])).Set(c)
	}
	o.Volfrac.Set(rec.Volfrac)
	o.Change.Set(rec.Change)
	o.Duration.Observe(rec.Duration.Seconds())
}

// caseLabel returns the label of load case lc
func caseLabel(lc int) string {
	return strconv.Itoa(lc)
}
