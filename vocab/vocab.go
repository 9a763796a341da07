// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only

// Package vocab holds the fixed catalogue of term URIs used as RDF types and
// predicates when mapping DNS observations.
package vocab

import (
	"fmt"
	"net/url"

	"dnsrdf/rdf"
)

// Namespaces.
const (
	DNSNamespace  = "http://purl.org/dns#"
	IETFNamespace = "http://purl.org/ietf#"
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	DCNamespace   = "http://purl.org/dc/elements/1.1/"
)

// txtAttributePrefix is the local-name prefix of dynamically named TXT attribute predicates.
const txtAttributePrefix = "hasTXTAttribute_"

// Well-known external terms.
var (
	RDFType   = rdf.NewIRI(RDFNamespace + "type")
	RDFSLabel = rdf.NewIRI(RDFSNamespace + "label")
	DCCreated = rdf.NewIRI(DCNamespace + "created")
)

// dnsTerms lists every local name defined under DNSNamespace.
var dnsTerms = []string{
	"Domain",
	"FQDN",
	"A",
	"AAAA",
	"CNAME",
	"DNAME",
	"Probe",
	"Nameserver",
	"hasNameserver",
	"EmailExchange",
	"hasSOANameserver",
	"hasSOARName",
	"hasSOASerial",
	"hasSOARefresh",
	"hasSOARetry",
	"hasExchange",
	"hasMXRecord",
	"MXRecord",
	"hasMXPreference",
	"hasTXTRecord",
	"TXTRecord",
}

var ietfTerms = []string{
	"IPv4Address",
	"IPv6Address",
}

var (
	dnsRegistry  = buildRegistry(DNSNamespace, dnsTerms)
	ietfRegistry = buildRegistry(IETFNamespace, ietfTerms)
)

func buildRegistry(namespace string, names []string) map[string]rdf.IRI {
	reg := make(map[string]rdf.IRI, len(names))
	for _, name := range names {
		reg[name] = rdf.NewIRI(namespace + name)
	}
	return reg
}

// DNS returns the dns: term with the given local name.
// An unknown name is a programming error and panics.
func DNS(name string) rdf.IRI {
	term, ok := dnsRegistry[name]
	if !ok {
		panic(fmt.Sprintf("vocab: unknown dns term %q", name))
	}
	return term
}

// IETF returns the ietf: term with the given local name.
// An unknown name is a programming error and panics.
func IETF(name string) rdf.IRI {
	term, ok := ietfRegistry[name]
	if !ok {
		panic(fmt.Sprintf("vocab: unknown ietf term %q", name))
	}
	return term
}

// LookupDNS reports whether name is a registered dns: term and returns it.
func LookupDNS(name string) (rdf.IRI, bool) {
	term, ok := dnsRegistry[name]
	return term, ok
}

// TXTAttribute builds the dns:hasTXTAttribute_<key> predicate for a TXT
// attribute key. The key is percent-encoded as a URI path segment.
func TXTAttribute(key string) rdf.IRI {
	return rdf.NewIRI(DNSNamespace + txtAttributePrefix + url.PathEscape(key))
}

// DNSTerms returns the registered dns: local names in declaration order.
func DNSTerms() []string {
	out := make([]string, len(dnsTerms))
	copy(out, dnsTerms)
	return out
}

// Frequently used dns: and ietf: terms.
var (
	Domain           = DNS("Domain")
	FQDN             = DNS("FQDN")
	A                = DNS("A")
	AAAA             = DNS("AAAA")
	CNAME            = DNS("CNAME")
	DNAME            = DNS("DNAME")
	Probe            = DNS("Probe")
	Nameserver       = DNS("Nameserver")
	HasNameserver    = DNS("hasNameserver")
	EmailExchange    = DNS("EmailExchange")
	HasSOANameserver = DNS("hasSOANameserver")
	HasSOARName      = DNS("hasSOARName")
	HasSOASerial     = DNS("hasSOASerial")
	HasSOARefresh    = DNS("hasSOARefresh")
	HasSOARetry      = DNS("hasSOARetry")
	HasExchange      = DNS("hasExchange")
	HasMXRecord      = DNS("hasMXRecord")
	MXRecord         = DNS("MXRecord")
	HasMXPreference  = DNS("hasMXPreference")
	HasTXTRecord     = DNS("hasTXTRecord")
	TXTRecord        = DNS("TXTRecord")

	IPv4Address = IETF("IPv4Address")
	IPv6Address = IETF("IPv6Address")
)
