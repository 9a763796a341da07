// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only

// Package dnsrecords contains the typed DNS observation records fed to the
// mappers and the functions that build them from tabular rows.
package dnsrecords

import (
	"errors"
	"fmt"
	"strings"

	"github.com/miekg/dns"
)

var (
	// ErrUnknownKind is returned for record kinds that have no mapper.
	ErrUnknownKind = errors.New("unknown record kind")
	// ErrMissingField is returned when a field required by the kind is absent.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidInteger is returned when a numeric field is not a non-negative integer.
	ErrInvalidInteger = errors.New("invalid non-negative integer")
)

// Kind is a DNS record kind with a mapper.
type Kind string

const (
	KindA     Kind = "A"
	KindAAAA  Kind = "AAAA"
	KindCNAME Kind = "CNAME"
	KindDNAME Kind = "DNAME"
	KindMX    Kind = "MX"
	KindNS    Kind = "NS"
	KindSOA   Kind = "SOA"
	KindTXT   Kind = "TXT"
)

var supportedKinds = []Kind{KindA, KindAAAA, KindCNAME, KindDNAME, KindMX, KindNS, KindSOA, KindTXT}

// Kinds returns every supported kind.
func Kinds() []Kind {
	out := make([]Kind, len(supportedKinds))
	copy(out, supportedKinds)
	return out
}

// ParseKind normalises a record type name and checks that it has a mapper.
func ParseKind(recordType string) (Kind, error) {
	name := normalizeRecordType(recordType)
	if _, ok := dns.StringToType[name]; !ok {
		return "", fmt.Errorf("%w: invalid DNS record type %q", ErrUnknownKind, recordType)
	}
	for _, k := range supportedKinds {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %s records are not mapped", ErrUnknownKind, name)
}

// RRType returns the miekg/dns type code of the kind.
func (k Kind) RRType() uint16 {
	return dns.StringToType[string(k)]
}

func (k Kind) String() string { return string(k) }

func normalizeRecordType(recordType string) string {
	return strings.ToUpper(strings.TrimSpace(recordType))
}

// Record is one observation of a DNS resource record. The set of
// implementations is closed: A, AAAA, CNAME, DNAME, MX, NS, SOA and TXT.
type Record interface {
	Kind() Kind
	RecordName() string
	ObservedAt() string
	sealed()
}

// Observation carries the fields every record has.
type Observation struct {
	Name    string `json:"name"`
	IsoTime string `json:"isotime"`
}

// RecordName returns the owner name of the record.
func (o Observation) RecordName() string { return o.Name }

// ObservedAt returns the raw observation timestamp.
func (o Observation) ObservedAt() string { return o.IsoTime }

func (Observation) sealed() {}

// A is an IPv4 address record.
type A struct {
	Observation
	IP4Address string `json:"ip4address"`
}

// AAAA is an IPv6 address record.
type AAAA struct {
	Observation
	IP6Address string `json:"ip6address"`
}

// CNAME is a canonical name record.
type CNAME struct {
	Observation
	Target string `json:"target"`
}

// DNAME is a delegation name record (RFC 6672).
type DNAME struct {
	Observation
	Target string `json:"target"`
}

// MX is a mail exchange record.
type MX struct {
	Observation
	Exchange   string `json:"exchange"`
	Preference uint64 `json:"preference"`
}

// NS is a nameserver record.
type NS struct {
	Observation
	Nameserver string `json:"nameserver"`
}

// SOA is a start of authority record.
type SOA struct {
	Observation
	MName   string `json:"mname"`
	RName   string `json:"rname"`
	Serial  uint64 `json:"serial"`
	Refresh uint64 `json:"refresh"`
	Retry   uint64 `json:"retry"`
}

// TXT is a text record. HasText is false when the text column was absent.
type TXT struct {
	Observation
	Text    string `json:"text"`
	HasText bool   `json:"-"`
}

func (A) Kind() Kind     { return KindA }
func (AAAA) Kind() Kind  { return KindAAAA }
func (CNAME) Kind() Kind { return KindCNAME }
func (DNAME) Kind() Kind { return KindDNAME }
func (MX) Kind() Kind    { return KindMX }
func (NS) Kind() Kind    { return KindNS }
func (SOA) Kind() Kind   { return KindSOA }
func (TXT) Kind() Kind   { return KindTXT }
