// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only
package dnsrecords

import (
	"fmt"
	"strconv"
	"strings"
)

// Column names, matched against lower-cased input headers.
const (
	FieldName       = "name"
	FieldIsoTime    = "isotime"
	FieldIP4Address = "ip4address"
	FieldIP6Address = "ip6address"
	FieldTarget     = "target"
	FieldExchange   = "exchange"
	FieldPreference = "preference"
	FieldNameserver = "nameserver"
	FieldMName      = "mname"
	FieldRName      = "rname"
	FieldSerial     = "serial"
	FieldRefresh    = "refresh"
	FieldRetry      = "retry"
	FieldText       = "text"
)

// Row holds the column values of one input row keyed by lower-cased header.
// Empty values count as absent.
type Row map[string]string

// Get returns the value of field and whether it is present and non-empty.
func (r Row) Get(field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Fields returns the columns a kind reads, in input order.
func Fields(kind Kind) []FieldSpec {
	common := []FieldSpec{{FieldName, true}, {FieldIsoTime, true}}
	switch kind {
	case KindA:
		return append(common, FieldSpec{FieldIP4Address, true})
	case KindAAAA:
		return append(common, FieldSpec{FieldIP6Address, true})
	case KindCNAME, KindDNAME:
		return append(common, FieldSpec{FieldTarget, true})
	case KindMX:
		return append(common, FieldSpec{FieldExchange, true}, FieldSpec{FieldPreference, true})
	case KindNS:
		return append(common, FieldSpec{FieldNameserver, true})
	case KindSOA:
		return append(common,
			FieldSpec{FieldMName, true}, FieldSpec{FieldRName, true},
			FieldSpec{FieldSerial, true}, FieldSpec{FieldRefresh, true}, FieldSpec{FieldRetry, true})
	case KindTXT:
		return append(common, FieldSpec{FieldText, false})
	default:
		return common
	}
}

// FieldSpec describes one column read by a kind.
type FieldSpec struct {
	Name     string
	Required bool
}

// rowReader collects the first lookup failure so FromRow reads linearly.
type rowReader struct {
	row Row
	err error
}

func (r *rowReader) str(field string) string {
	if r.err != nil {
		return ""
	}
	v, ok := r.row.Get(field)
	if !ok {
		r.err = fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	return v
}

func (r *rowReader) uint(field string) uint64 {
	v := r.str(field)
	if r.err != nil {
		return 0
	}
	n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
	if err != nil {
		r.err = fmt.Errorf("%w: %s=%q", ErrInvalidInteger, field, v)
		return 0
	}
	return n
}

// FromRow builds a record of the given kind from a row. It fails with
// ErrMissingField when a required column is absent and ErrInvalidInteger
// when a numeric column does not parse. Timestamp and address syntax are
// checked by the mappers.
func FromRow(kind Kind, row Row) (Record, error) {
	r := &rowReader{row: row}
	obs := Observation{Name: r.str(FieldName), IsoTime: r.str(FieldIsoTime)}

	var rec Record
	switch kind {
	case KindA:
		rec = A{Observation: obs, IP4Address: r.str(FieldIP4Address)}
	case KindAAAA:
		rec = AAAA{Observation: obs, IP6Address: r.str(FieldIP6Address)}
	case KindCNAME:
		rec = CNAME{Observation: obs, Target: r.str(FieldTarget)}
	case KindDNAME:
		rec = DNAME{Observation: obs, Target: r.str(FieldTarget)}
	case KindMX:
		rec = MX{Observation: obs, Exchange: r.str(FieldExchange), Preference: r.uint(FieldPreference)}
	case KindNS:
		rec = NS{Observation: obs, Nameserver: r.str(FieldNameserver)}
	case KindSOA:
		rec = SOA{
			Observation: obs,
			MName:       r.str(FieldMName),
			RName:       r.str(FieldRName),
			Serial:      r.uint(FieldSerial),
			Refresh:     r.uint(FieldRefresh),
			Retry:       r.uint(FieldRetry),
		}
	case KindTXT:
		text, ok := row.Get(FieldText)
		rec = TXT{Observation: obs, Text: text, HasText: ok}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
	if r.err != nil {
		return nil, r.err
	}
	return rec, nil
}
