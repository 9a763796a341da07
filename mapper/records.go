// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only
package mapper

import (
	"strconv"

	"dnsrdf/dnsrecords"
	"dnsrdf/graph"
	"dnsrdf/identifier"
	"dnsrdf/rdf"
	"dnsrdf/vocab"
)

func mapA(acc *graph.Accumulator, r dnsrecords.A) {
	name := identifier.DomainURI(r.Name)
	target := identifier.IPv4URI(r.IP4Address)
	registerFQDN(acc, name, r.Name)
	acc.AssertNamed(name, vocab.A, target)
	acc.AssertDefault(target, vocab.RDFType, vocab.IPv4Address)
	acc.AssertDefault(target, vocab.RDFSLabel, rdf.NewString(r.IP4Address))
}

func mapAAAA(acc *graph.Accumulator, r dnsrecords.AAAA) error {
	target, err := identifier.IPv6URI(r.IP6Address)
	if err != nil {
		return err
	}
	name := identifier.DomainURI(r.Name)
	registerFQDN(acc, name, r.Name)
	acc.AssertNamed(name, vocab.AAAA, target)
	acc.AssertDefault(target, vocab.RDFType, vocab.IPv6Address)
	acc.AssertDefault(target, vocab.RDFSLabel, rdf.NewString(r.IP6Address))
	return nil
}

// mapCNAME types both ends as FQDNs: a CNAME aliases exactly one name.
func mapCNAME(acc *graph.Accumulator, r dnsrecords.CNAME) {
	name := identifier.DomainURI(r.Name)
	target := identifier.DomainURI(r.Target)
	registerFQDN(acc, name, r.Name)
	acc.AssertNamed(name, vocab.CNAME, target)
	registerFQDN(acc, target, r.Target)
}

// mapDNAME leaves the target untyped: a DNAME aliases a whole subtree,
// which need not resolve to a single name.
func mapDNAME(acc *graph.Accumulator, r dnsrecords.DNAME) {
	name := identifier.DomainURI(r.Name)
	registerDomain(acc, name, r.Name)
	acc.AssertNamed(name, vocab.DNAME, identifier.DomainURI(r.Target))
}

// mapMX reifies the exchange/preference pair on a blank node private to this record.
func mapMX(acc *graph.Accumulator, r dnsrecords.MX) {
	name := identifier.DomainURI(r.Name)
	exchange := identifier.DomainURI(r.Exchange)
	registerFQDN(acc, name, r.Name)
	mx := rdf.NewBlankNode()
	registerFQDN(acc, exchange, r.Exchange)
	acc.AssertDefault(mx, vocab.HasExchange, rdf.NewString(r.Exchange))
	acc.AssertDefault(mx, vocab.HasMXPreference, nonNegativeInteger(r.Preference))
	acc.AssertDefault(mx, vocab.RDFType, vocab.MXRecord)
	acc.AssertDefault(name, vocab.RDFType, vocab.EmailExchange)
	acc.AssertNamed(name, vocab.HasMXRecord, mx)
}

func mapNS(acc *graph.Accumulator, r dnsrecords.NS) {
	name := identifier.DomainURI(r.Name)
	ns := identifier.DomainURI(r.Nameserver)
	registerDomain(acc, name, r.Name)
	registerFQDN(acc, ns, r.Nameserver)
	acc.AssertDefault(ns, vocab.RDFType, vocab.Nameserver)
	acc.AssertNamed(name, vocab.HasNameserver, ns)
}

func mapSOA(acc *graph.Accumulator, r dnsrecords.SOA) {
	name := identifier.DomainURI(r.Name)
	mname := identifier.DomainURI(r.MName)
	rname := identifier.DomainURI(r.RName)
	registerDomain(acc, name, r.Name)
	acc.AssertNamed(name, vocab.HasSOANameserver, mname)
	registerDomain(acc, mname, r.MName)
	acc.AssertNamed(name, vocab.HasSOARName, rname)
	registerDomain(acc, rname, r.RName)
	acc.AssertNamed(name, vocab.HasSOASerial, nonNegativeInteger(r.Serial))
	acc.AssertNamed(name, vocab.HasSOARefresh, nonNegativeInteger(r.Refresh))
	acc.AssertNamed(name, vocab.HasSOARetry, nonNegativeInteger(r.Retry))
}

func mapTXT(acc *graph.Accumulator, r dnsrecords.TXT) {
	name := identifier.DomainURI(r.Name)
	acc.AssertNamed(name, vocab.HasTXTRecord, rdf.NewString(r.Text))
	acc.AssertNamed(name, vocab.RDFType, vocab.TXTRecord)
	if !r.HasText {
		return
	}
	if key, value, ok := SplitAttribute(r.Text); ok {
		acc.AssertNamed(name, vocab.TXTAttribute(key), rdf.NewString(value))
	}
}

func nonNegativeInteger(n uint64) rdf.Literal {
	return rdf.NewNonNegativeInteger(strconv.FormatUint(n, 10))
}
