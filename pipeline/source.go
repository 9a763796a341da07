// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only
package pipeline

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"dnsrdf/converters"
	"dnsrdf/dnsrecords"

	"github.com/miekg/dns"
)

// Item is one input record, or the reason it could not be built.
type Item struct {
	// Line is the input line for CSV rows and the record ordinal for zones.
	Line   int
	Kind   dnsrecords.Kind
	Record dnsrecords.Record
	Err    error
}

// Source yields items in input order. Next returns io.EOF when the input is
// exhausted; any other error is fatal for the whole run.
type Source interface {
	Next() (Item, error)
}

// ErrLineEnding is returned when the header row is not terminated by CR LF,
// which means the input uses another row separator.
var ErrLineEnding = errors.New("rows must be separated by CR LF")

const maxRecordSize = 16 << 20

// bareLF stands in for LF bytes while a record is handed to encoding/csv,
// which would otherwise end the record there. U+FDD0 is a Unicode
// noncharacter and does not occur in interchanged text.
const bareLF = "\ufdd0"

// CSVSource reads header-addressed rows of a single record kind. Rows are
// separated by CR LF only; a bare LF is part of the field it occurs in.
type CSVSource struct {
	kind    dnsrecords.Kind
	scanner *bufio.Scanner
	header  []string
	line    int
}

// NewCSVSource returns a source reading rows of kind from r. The first row is
// the header; header names are lower-cased and matched against record fields.
func NewCSVSource(r io.Reader, kind dnsrecords.Kind) *CSVSource {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxRecordSize)
	sc.Split(scanCRLFRecords)
	return &CSVSource{kind: kind, scanner: sc}
}

// scanCRLFRecords is a bufio.SplitFunc yielding one CSV record per token.
// A CR LF inside a quoted field does not end the record.
func scanCRLFRecords(data []byte, atEOF bool) (advance int, token []byte, err error) {
	inQuotes := false
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '"':
			inQuotes = !inQuotes
		case '\r':
			if !inQuotes && i+1 < len(data) && data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
		}
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// nextRecord returns the fields of the next non-empty record and the line it
// starts on.
func (s *CSVSource) nextRecord() ([]string, int, error) {
	for s.scanner.Scan() {
		raw := s.scanner.Text()
		start := s.line + 1
		s.line += 1 + strings.Count(raw, "\r\n")
		if raw == "" {
			continue
		}
		cr := csv.NewReader(strings.NewReader(strings.ReplaceAll(raw, "\n", bareLF)))
		cr.FieldsPerRecord = -1
		cr.LazyQuotes = true
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			continue
		}
		for i := range fields {
			fields[i] = strings.ReplaceAll(fields[i], bareLF, "\n")
		}
		return fields, start, err
	}
	if err := s.scanner.Err(); err != nil {
		return nil, 0, err
	}
	return nil, 0, io.EOF
}

// Next returns the next row as an item.
func (s *CSVSource) Next() (Item, error) {
	if s.header == nil {
		header, _, err := s.nextRecord()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Item{}, io.EOF
			}
			return Item{}, fmt.Errorf("pipeline: read header: %w", err)
		}
		s.header = make([]string, len(header))
		for i, h := range header {
			if strings.Contains(h, "\n") {
				return Item{}, fmt.Errorf("pipeline: read header: %w", ErrLineEnding)
			}
			s.header[i] = NormalizeHeader(h)
		}
	}

	fields, line, err := s.nextRecord()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Item{}, io.EOF
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return Item{Line: line, Kind: s.kind, Err: err}, nil
		}
		return Item{}, fmt.Errorf("pipeline: read row: %w", err)
	}

	row := make(dnsrecords.Row, len(fields))
	for i, value := range fields {
		if i >= len(s.header) {
			break
		}
		if _, seen := row[s.header[i]]; !seen {
			row[s.header[i]] = value
		}
	}
	rec, err := dnsrecords.FromRow(s.kind, row)
	return Item{Line: line, Kind: s.kind, Record: rec, Err: err}, nil
}

// NormalizeHeader turns a header cell into a field key: lower-cased,
// punctuation dropped, inner whitespace collapsed to underscores.
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	var sb strings.Builder
	for _, r := range strings.ToLower(h) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			sb.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(sb.String()), "_")
}

// ZoneSource reads resource records from an RFC 1035 master file. Every
// record is stamped with the same observation time.
type ZoneSource struct {
	parser  *dns.ZoneParser
	isotime string
	count   int
}

// NewZoneSource returns a source parsing a zone from r. origin is used for
// relative names and may be empty.
func NewZoneSource(r io.Reader, origin, isotime string) *ZoneSource {
	if origin != "" {
		origin = dns.Fqdn(origin)
	}
	return &ZoneSource{parser: dns.NewZoneParser(r, origin, ""), isotime: isotime}
}

// Next returns the next resource record as an item.
func (s *ZoneSource) Next() (Item, error) {
	rr, ok := s.parser.Next()
	if !ok {
		if err := s.parser.Err(); err != nil {
			return Item{}, fmt.Errorf("pipeline: parse zone: %w", err)
		}
		return Item{}, io.EOF
	}
	s.count++
	kind, row, err := converters.RRToRow(rr, s.isotime)
	if err != nil {
		return Item{Line: s.count, Kind: dnsrecords.Kind(dns.TypeToString[rr.Header().Rrtype]), Err: err}, nil
	}
	rec, err := dnsrecords.FromRow(kind, row)
	return Item{Line: s.count, Kind: kind, Record: rec, Err: err}, nil
}
