// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only

// Package identifier mints the stable URIs that make repeated observations of
// the same DNS entity resolve to one RDF node.
package identifier

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"dnsrdf/ipvalidator"
	"dnsrdf/rdf"

	"github.com/araddon/dateparse"
)

// DefaultProbeBase is the base under which probe-<timestamp> identifiers are minted.
const DefaultProbeBase = "https://dnscensus2013.neocities.org"

const (
	domainPrefix = "uri:domain:"
	ipv4Prefix   = "uri:ipv4:"
	ipv6Prefix   = "uri:ipv6:"
	probePrefix  = "probe-"

	// iso8601Layout renders offsets as +hh:mm, UTC included.
	iso8601Layout = "2006-01-02T15:04:05-07:00"
)

var isoDateTime = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})?$`)

var (
	// ErrInvalidAddress is returned for address fields that fail validation.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrInvalidTimestamp is returned when an observation time cannot be parsed.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// Scheme mints identifiers. The zero value uses DefaultProbeBase.
type Scheme struct {
	ProbeBase string
}

// Default is the scheme used by the package-level helpers.
var Default = Scheme{ProbeBase: DefaultProbeBase}

// NewScheme returns a scheme minting probe identifiers under probeBase.
// Trailing slashes are dropped; an empty base selects DefaultProbeBase.
func NewScheme(probeBase string) Scheme {
	probeBase = strings.TrimRight(strings.TrimSpace(probeBase), "/")
	if probeBase == "" {
		probeBase = DefaultProbeBase
	}
	return Scheme{ProbeBase: probeBase}
}

// DomainURI maps a domain name to uri:domain:<name>. The name is used
// verbatim: no case folding, no trailing-dot handling.
func DomainURI(name string) rdf.IRI {
	return rdf.NewIRI(domainPrefix + name)
}

// IPv4URI maps an IPv4 literal to uri:ipv4:<addr>. The value is not
// validated so that identifiers of historically dirty input stay stable.
func IPv4URI(addr string) rdf.IRI {
	return rdf.NewIRI(ipv4Prefix + addr)
}

// IPv6URI maps an IPv6 literal to uri:ipv6:<canonical form>.
func IPv6URI(addr string) (rdf.IRI, error) {
	canonical, err := ipvalidator.CanonicalIPv6(addr)
	if err != nil {
		return rdf.IRI{}, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	return rdf.NewIRI(ipv6Prefix + canonical), nil
}

// ParseTimestamp parses an ISO-8601 observation time of the xsd:dateTime
// shape YYYY-MM-DDThh:mm:ss[.fff][Z|+hh:mm|-hh:mm]. Times without an offset
// are taken as UTC. Other date spellings are rejected so that the raw text
// is always a valid xsd:dateTime lexical form.
func ParseTimestamp(ts string) (time.Time, error) {
	trimmed := strings.TrimSpace(ts)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidTimestamp)
	}
	if trimmed != ts || !isoDateTime.MatchString(trimmed) {
		return time.Time{}, fmt.Errorf("%w: %q is not an ISO-8601 date-time", ErrInvalidTimestamp, ts)
	}
	t, err := dateparse.ParseIn(trimmed, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimestamp, ts, err)
	}
	return t, nil
}

// FormatTimestamp renders t as ISO-8601 with a numeric offset and whole seconds.
func FormatTimestamp(t time.Time) string {
	return t.Format(iso8601Layout)
}

// ProbeURI maps an observation time to <probe-base>/probe-<iso8601>.
func (s Scheme) ProbeURI(ts string) (rdf.IRI, error) {
	t, err := ParseTimestamp(ts)
	if err != nil {
		return rdf.IRI{}, err
	}
	base := s.ProbeBase
	if base == "" {
		base = DefaultProbeBase
	}
	return rdf.NewIRI(base + "/" + probePrefix + url.PathEscape(FormatTimestamp(t))), nil
}

// ProbeURI maps an observation time using the Default scheme.
func ProbeURI(ts string) (rdf.IRI, error) {
	return Default.ProbeURI(ts)
}
