// Package converters turns parsed DNS resource records into record rows.
// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only
//
package converters

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"dnsrdf/dnsrecords"

	"github.com/miekg/dns"
)

// ErrUnsupportedRR is returned for resource records with no mapped kind.
var ErrUnsupportedRR = errors.New("unsupported resource record")

// TrimFQDN drops the trailing root dots of a fully qualified name. Case is kept.
func TrimFQDN(name string) string {
	for len(name) > 1 && strings.HasSuffix(name, ".") {
		name = strings.TrimSuffix(name, ".")
	}
	return name
}

// RRToRow converts a parsed resource record into the row a CSV scan would
// have produced for it, observed at isotime.
func RRToRow(rr dns.RR, isotime string) (dnsrecords.Kind, dnsrecords.Row, error) {
	if rr == nil {
		return "", nil, fmt.Errorf("%w: nil", ErrUnsupportedRR)
	}
	hdr := rr.Header()
	row := dnsrecords.Row{
		dnsrecords.FieldName:    TrimFQDN(hdr.Name),
		dnsrecords.FieldIsoTime: isotime,
	}

	var kind dnsrecords.Kind
	switch v := rr.(type) {
	case *dns.A:
		kind = dnsrecords.KindA
		row[dnsrecords.FieldIP4Address] = v.A.String()
	case *dns.AAAA:
		kind = dnsrecords.KindAAAA
		row[dnsrecords.FieldIP6Address] = v.AAAA.String()
	case *dns.CNAME:
		kind = dnsrecords.KindCNAME
		row[dnsrecords.FieldTarget] = TrimFQDN(v.Target)
	case *dns.DNAME:
		kind = dnsrecords.KindDNAME
		row[dnsrecords.FieldTarget] = TrimFQDN(v.Target)
	case *dns.MX:
		kind = dnsrecords.KindMX
		row[dnsrecords.FieldExchange] = TrimFQDN(v.Mx)
		row[dnsrecords.FieldPreference] = strconv.FormatUint(uint64(v.Preference), 10)
	case *dns.NS:
		kind = dnsrecords.KindNS
		row[dnsrecords.FieldNameserver] = TrimFQDN(v.Ns)
	case *dns.SOA:
		kind = dnsrecords.KindSOA
		row[dnsrecords.FieldMName] = TrimFQDN(v.Ns)
		row[dnsrecords.FieldRName] = TrimFQDN(v.Mbox)
		row[dnsrecords.FieldSerial] = strconv.FormatUint(uint64(v.Serial), 10)
		row[dnsrecords.FieldRefresh] = strconv.FormatUint(uint64(v.Refresh), 10)
		row[dnsrecords.FieldRetry] = strconv.FormatUint(uint64(v.Retry), 10)
	case *dns.TXT:
		kind = dnsrecords.KindTXT
		// Character-strings of one TXT RR form a single value.
		row[dnsrecords.FieldText] = strings.Join(v.Txt, "")
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedRR, dns.TypeToString[hdr.Rrtype])
	}
	return kind, row, nil
}

// RRToRecord converts a resource record straight into a typed record.
func RRToRecord(rr dns.RR, isotime string) (dnsrecords.Record, error) {
	kind, row, err := RRToRow(rr, isotime)
	if err != nil {
		return nil, err
	}
	return dnsrecords.FromRow(kind, row)
}
