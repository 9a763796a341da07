// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only

// Package graph provides the append-only statement store that collects the
// quads of a single DNS observation.
package graph

import "dnsrdf/rdf"

// Accumulator collects statements for one observation. It is bound to the
// observation's probe identifier, which names its graph. An Accumulator is
// owned by one mapping call and must not be shared between goroutines.
type Accumulator struct {
	probe rdf.IRI
	quads []rdf.Quad
}

// NewAccumulator returns an empty accumulator bound to probe.
func NewAccumulator(probe rdf.IRI) *Accumulator {
	return &Accumulator{probe: probe, quads: make([]rdf.Quad, 0, 12)}
}

// Probe returns the probe identifier naming the observation graph.
func (a *Accumulator) Probe() rdf.IRI {
	return a.probe
}

// AssertDefault appends (s, p, o) to the default graph.
func (a *Accumulator) AssertDefault(s rdf.Term, p rdf.IRI, o rdf.Term) {
	a.quads = append(a.quads, rdf.Quad{S: s, P: p, O: o})
}

// AssertNamed appends (s, p, o) to the graph named by the probe identifier.
func (a *Accumulator) AssertNamed(s rdf.Term, p rdf.IRI, o rdf.Term) {
	a.quads = append(a.quads, rdf.Quad{S: s, P: p, O: o, G: a.probe})
}

// Len returns the number of statements asserted so far.
func (a *Accumulator) Len() int {
	return len(a.quads)
}

// Drain returns the statements in assertion order and empties the accumulator.
// Identical statements are kept as separate quads.
func (a *Accumulator) Drain() []rdf.Quad {
	out := a.quads
	a.quads = nil
	return out
}
