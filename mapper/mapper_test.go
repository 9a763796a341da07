// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only
package mapper

import (
	"testing"

	"dnsrdf/dnsrecords"
	"dnsrdf/identifier"
	"dnsrdf/rdf"
	"dnsrdf/vocab"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	isotime  = "2013-01-01T00:00:00"
	probeURI = "https://dnscensus2013.neocities.org/probe-2013-01-01T00:00:00+00:00"
)

func obs(name string) dnsrecords.Observation {
	return dnsrecords.Observation{Name: name, IsoTime: isotime}
}

func iri(v string) rdf.IRI { return rdf.NewIRI(v) }

func TestMapA(t *testing.T) {
	block, err := Map(dnsrecords.A{Observation: obs("a.example"), IP4Address: "1.2.3.4"})
	require.NoError(t, err)

	probe := iri(probeURI)
	name := iri("uri:domain:a.example")
	addr := iri("uri:ipv4:1.2.3.4")
	want := []rdf.Quad{
		{S: name, P: vocab.RDFType, O: vocab.FQDN},
		{S: name, P: vocab.RDFSLabel, O: rdf.NewString("a.example")},
		{S: name, P: vocab.A, O: addr, G: probe},
		{S: addr, P: vocab.RDFType, O: vocab.IPv4Address},
		{S: addr, P: vocab.RDFSLabel, O: rdf.NewString("1.2.3.4")},
		{S: probe, P: vocab.DCCreated, O: rdf.NewDateTime(isotime)},
		{S: probe, P: vocab.RDFType, O: vocab.Probe},
	}
	assert.Equal(t, want, block.Quads)
	assert.Equal(t, probe, block.Probe)
	assert.Equal(t, dnsrecords.KindA, block.Kind)
}

func TestMapAAAACanonicalises(t *testing.T) {
	block, err := Map(dnsrecords.AAAA{Observation: obs("a.example"), IP6Address: "2001:0db8:0000:0000:0000:0000:0000:0001"})
	require.NoError(t, err)
	addr := iri("uri:ipv6:2001:db8::1")
	assert.Contains(t, block.Quads, rdf.Quad{S: iri("uri:domain:a.example"), P: vocab.AAAA, O: addr, G: iri(probeURI)})
	assert.Contains(t, block.Quads, rdf.Quad{S: addr, P: vocab.RDFType, O: vocab.IPv6Address})
	assert.Contains(t, block.Quads, rdf.Quad{S: addr, P: vocab.RDFSLabel, O: rdf.NewString("2001:0db8:0000:0000:0000:0000:0000:0001")})
}

func TestMapAAAAInvalidAddress(t *testing.T) {
	block, err := Map(dnsrecords.AAAA{Observation: obs("a.example"), IP6Address: "1.2.3.4"})
	require.ErrorIs(t, err, identifier.ErrInvalidAddress)
	assert.Empty(t, block.Quads)
}

func TestMapInvalidTimestamp(t *testing.T) {
	rec := dnsrecords.A{Observation: dnsrecords.Observation{Name: "a.example", IsoTime: "yesterday"}, IP4Address: "1.2.3.4"}
	block, err := Map(rec)
	require.ErrorIs(t, err, identifier.ErrInvalidTimestamp)
	assert.Empty(t, block.Quads)
}

func TestMapNilRecord(t *testing.T) {
	_, err := Map(nil)
	require.ErrorIs(t, err, dnsrecords.ErrUnknownKind)
}

func TestMapCNAMEAndDNAME(t *testing.T) {
	block, err := Map(dnsrecords.CNAME{Observation: obs("www.example"), Target: "example.net"})
	require.NoError(t, err)
	target := iri("uri:domain:example.net")
	assert.Contains(t, block.Quads, rdf.Quad{S: target, P: vocab.RDFType, O: vocab.FQDN})
	assert.Contains(t, block.Quads, rdf.Quad{S: iri("uri:domain:www.example"), P: vocab.CNAME, O: target, G: iri(probeURI)})

	block, err = Map(dnsrecords.DNAME{Observation: obs("old.example"), Target: "new.example"})
	require.NoError(t, err)
	assert.Len(t, block.Quads, 5)
	for _, q := range block.Quads {
		assert.NotEqual(t, iri("uri:domain:new.example"), q.S, "DNAME target must not be typed")
	}
	assert.Contains(t, block.Quads, rdf.Quad{S: iri("uri:domain:old.example"), P: vocab.RDFType, O: vocab.Domain})
}

func TestMapMXBlankNode(t *testing.T) {
	rec := dnsrecords.MX{Observation: obs("example.com"), Exchange: "mx.example.com", Preference: 10}
	first, err := Map(rec)
	require.NoError(t, err)
	second, err := Map(rec)
	require.NoError(t, err)

	bnode := func(quads []rdf.Quad) rdf.BlankNode {
		var found []rdf.BlankNode
		for _, q := range quads {
			if b, ok := q.S.(rdf.BlankNode); ok {
				found = append(found, b)
			}
			if b, ok := q.O.(rdf.BlankNode); ok {
				found = append(found, b)
			}
		}
		require.Len(t, found, 4)
		for _, b := range found[1:] {
			require.Equal(t, found[0], b, "one blank node per MX record")
		}
		return found[0]
	}
	b1, b2 := bnode(first.Quads), bnode(second.Quads)
	assert.NotEqual(t, b1, b2, "blank nodes must not be shared between records")

	assert.Contains(t, first.Quads, rdf.Quad{S: b1, P: vocab.HasExchange, O: rdf.NewString("mx.example.com")})
	assert.Contains(t, first.Quads, rdf.Quad{S: b1, P: vocab.HasMXPreference, O: rdf.NewNonNegativeInteger("10")})
	assert.Contains(t, first.Quads, rdf.Quad{S: b1, P: vocab.RDFType, O: vocab.MXRecord})
	assert.Contains(t, first.Quads, rdf.Quad{S: iri("uri:domain:example.com"), P: vocab.RDFType, O: vocab.EmailExchange})
	assert.Contains(t, first.Quads, rdf.Quad{S: iri("uri:domain:example.com"), P: vocab.HasMXRecord, O: b1, G: iri(probeURI)})
}

func TestMapNS(t *testing.T) {
	block, err := Map(dnsrecords.NS{Observation: obs("example.com"), Nameserver: "ns1.example.net"})
	require.NoError(t, err)
	ns := iri("uri:domain:ns1.example.net")
	assert.Contains(t, block.Quads, rdf.Quad{S: ns, P: vocab.RDFType, O: vocab.Nameserver})
	assert.Contains(t, block.Quads, rdf.Quad{S: ns, P: vocab.RDFType, O: vocab.FQDN})
	assert.Contains(t, block.Quads, rdf.Quad{S: iri("uri:domain:example.com"), P: vocab.HasNameserver, O: ns, G: iri(probeURI)})
}

func TestMapSOA(t *testing.T) {
	rec := dnsrecords.SOA{Observation: obs("example.com"), MName: "ns.example.com", RName: "hostmaster.example.com", Serial: 2013010101, Refresh: 7200, Retry: 900}
	block, err := Map(rec)
	require.NoError(t, err)
	name := iri("uri:domain:example.com")
	probe := iri(probeURI)
	assert.Len(t, block.Quads, 13)
	assert.Contains(t, block.Quads, rdf.Quad{S: name, P: vocab.HasSOASerial, O: rdf.NewNonNegativeInteger("2013010101"), G: probe})
	assert.Contains(t, block.Quads, rdf.Quad{S: name, P: vocab.HasSOARefresh, O: rdf.NewNonNegativeInteger("7200"), G: probe})
	assert.Contains(t, block.Quads, rdf.Quad{S: name, P: vocab.HasSOARetry, O: rdf.NewNonNegativeInteger("900"), G: probe})
	assert.Contains(t, block.Quads, rdf.Quad{S: iri("uri:domain:hostmaster.example.com"), P: vocab.RDFType, O: vocab.Domain})
}

func TestMapTXT(t *testing.T) {
	name := iri("uri:domain:example.com")
	probe := iri(probeURI)
	tests := []struct {
		name     string
		text     string
		hasText  bool
		wantAttr *rdf.Quad
	}{
		{
			name:     "spf",
			text:     "v=spf1 include:example.com ~all",
			hasText:  true,
			wantAttr: &rdf.Quad{S: name, P: vocab.TXTAttribute("v"), O: rdf.NewString("spf1 include:example.com ~all"), G: probe},
		},
		{name: "no separator", text: "no-equals-here", hasText: true},
		{
			name:     "escaped separator stays in key",
			text:     "a`=b=c",
			hasText:  true,
			wantAttr: &rdf.Quad{S: name, P: vocab.TXTAttribute("a`=b"), O: rdf.NewString("c"), G: probe},
		},
		{name: "absent text", hasText: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, err := Map(dnsrecords.TXT{Observation: obs("example.com"), Text: tt.text, HasText: tt.hasText})
			require.NoError(t, err)
			assert.Equal(t, rdf.Quad{S: name, P: vocab.HasTXTRecord, O: rdf.NewString(tt.text), G: probe}, block.Quads[0])
			assert.Equal(t, rdf.Quad{S: name, P: vocab.RDFType, O: vocab.TXTRecord, G: probe}, block.Quads[1])
			if tt.wantAttr == nil {
				assert.Len(t, block.Quads, 4)
				return
			}
			require.Len(t, block.Quads, 5)
			assert.Equal(t, *tt.wantAttr, block.Quads[2])
		})
	}
}

func TestEveryBlockHasOneProbe(t *testing.T) {
	records := []dnsrecords.Record{
		dnsrecords.A{Observation: obs("a.example"), IP4Address: "1.2.3.4"},
		dnsrecords.AAAA{Observation: obs("a.example"), IP6Address: "::1"},
		dnsrecords.CNAME{Observation: obs("a.example"), Target: "b.example"},
		dnsrecords.DNAME{Observation: obs("a.example"), Target: "b.example"},
		dnsrecords.MX{Observation: obs("a.example"), Exchange: "mx.example"},
		dnsrecords.NS{Observation: obs("a.example"), Nameserver: "ns.example"},
		dnsrecords.SOA{Observation: obs("a.example"), MName: "m", RName: "r"},
		dnsrecords.TXT{Observation: obs("a.example"), Text: "k=v", HasText: true},
	}
	probe := iri(probeURI)
	for _, rec := range records {
		block, err := Map(rec)
		require.NoError(t, err, rec.Kind())
		var types, created int
		for _, q := range block.Quads {
			if q.S == probe && q.P == vocab.RDFType && q.O == vocab.Probe {
				types++
			}
			if q.S == probe && q.P == vocab.DCCreated {
				created++
				assert.Equal(t, rdf.NewDateTime(isotime), q.O)
			}
		}
		assert.Equal(t, 1, types, "%s probe type", rec.Kind())
		assert.Equal(t, 1, created, "%s probe created", rec.Kind())
	}
}

func TestCustomProbeBase(t *testing.T) {
	m := New(identifier.NewScheme("https://probes.example"))
	block, err := m.Map(dnsrecords.NS{Observation: obs("example.com"), Nameserver: "ns.example"})
	require.NoError(t, err)
	assert.Equal(t, "https://probes.example/probe-2013-01-01T00:00:00+00:00", block.Probe.Value)
}
