// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only

// Package mapper turns typed DNS observation records into RDF quads.
//
// Each record yields one self-contained block: timeless type and label facts
// in the default graph, the observed relationship in a named graph identified
// by the observation's probe URI, and the probe's own type and creation time.
// A record either maps completely or not at all.
package mapper

import (
	"fmt"

	"dnsrdf/dnsrecords"
	"dnsrdf/graph"
	"dnsrdf/identifier"
	"dnsrdf/rdf"
	"dnsrdf/vocab"
)

// Block is the statement set produced for one record.
type Block struct {
	Kind  dnsrecords.Kind
	Name  string
	Probe rdf.IRI
	Quads []rdf.Quad
}

// Mapper maps records using one identifier scheme. It holds no per-record
// state and is safe for concurrent use.
type Mapper struct {
	scheme identifier.Scheme
}

// New returns a Mapper minting probe identifiers with scheme.
func New(scheme identifier.Scheme) *Mapper {
	return &Mapper{scheme: scheme}
}

// Default maps with identifier.Default.
var Default = New(identifier.Default)

// Map maps rec with the Default mapper.
func Map(rec dnsrecords.Record) (Block, error) {
	return Default.Map(rec)
}

// Map builds the block for rec. On error no statements are returned.
func (m *Mapper) Map(rec dnsrecords.Record) (Block, error) {
	if rec == nil {
		return Block{}, fmt.Errorf("mapper: %w: nil record", dnsrecords.ErrUnknownKind)
	}
	probe, err := m.scheme.ProbeURI(rec.ObservedAt())
	if err != nil {
		return Block{}, fmt.Errorf("mapper: %s %q: %w", rec.Kind(), rec.RecordName(), err)
	}
	acc := graph.NewAccumulator(probe)

	switch r := rec.(type) {
	case dnsrecords.A:
		mapA(acc, r)
	case dnsrecords.AAAA:
		err = mapAAAA(acc, r)
	case dnsrecords.CNAME:
		mapCNAME(acc, r)
	case dnsrecords.DNAME:
		mapDNAME(acc, r)
	case dnsrecords.MX:
		mapMX(acc, r)
	case dnsrecords.NS:
		mapNS(acc, r)
	case dnsrecords.SOA:
		mapSOA(acc, r)
	case dnsrecords.TXT:
		mapTXT(acc, r)
	default:
		err = fmt.Errorf("%w: %T", dnsrecords.ErrUnknownKind, rec)
	}
	if err != nil {
		return Block{}, fmt.Errorf("mapper: %s %q: %w", rec.Kind(), rec.RecordName(), err)
	}
	registerProbe(acc, rec.ObservedAt())

	return Block{
		Kind:  rec.Kind(),
		Name:  rec.RecordName(),
		Probe: probe,
		Quads: acc.Drain(),
	}, nil
}

func registerFQDN(acc *graph.Accumulator, uri rdf.IRI, label string) {
	acc.AssertDefault(uri, vocab.RDFType, vocab.FQDN)
	acc.AssertDefault(uri, vocab.RDFSLabel, rdf.NewString(label))
}

func registerDomain(acc *graph.Accumulator, uri rdf.IRI, label string) {
	acc.AssertDefault(uri, vocab.RDFType, vocab.Domain)
	acc.AssertDefault(uri, vocab.RDFSLabel, rdf.NewString(label))
}

// registerProbe records the probe's creation time with the raw timestamp text.
func registerProbe(acc *graph.Accumulator, isotime string) {
	probe := acc.Probe()
	acc.AssertDefault(probe, vocab.DCCreated, rdf.NewDateTime(isotime))
	acc.AssertDefault(probe, vocab.RDFType, vocab.Probe)
}
