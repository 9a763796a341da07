// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only

// Package metrics exposes conversion counters to prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dnsrdf"

// Record outcomes.
const (
	OutcomeMapped  = "mapped"
	OutcomeSkipped = "skipped"
)

var (
	recordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Number of input records processed, by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
	quadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quads_emitted_total",
			Help:      "Number of quads written, by record kind",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(recordsTotal, quadsTotal)
}

// RecordMapped counts a record whose block of n quads was emitted.
func RecordMapped(kind string, n int) {
	recordsTotal.WithLabelValues(kind, OutcomeMapped).Inc()
	quadsTotal.WithLabelValues(kind).Add(float64(n))
}

// RecordSkipped counts a record that produced no output.
func RecordSkipped(kind string) {
	recordsTotal.WithLabelValues(kind, OutcomeSkipped).Inc()
}
