// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only
package rdf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	knakk "github.com/knakk/rdf"
)

// ErrIncompleteQuad is returned when a quad lacks a subject, predicate or object.
var ErrIncompleteQuad = errors.New("nquads: missing statement fields")

// Encoder streams quads to an output in N-Quads syntax, one statement per line.
type Encoder struct {
	writer *bufio.Writer
	err    error
}

// NewEncoder returns an Encoder writing to w. Output is buffered; call Flush.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{writer: bufio.NewWriter(w)}
}

// Write encodes one quad.
func (e *Encoder) Write(q Quad) error {
	if e.err != nil {
		return e.err
	}
	if q.S == nil || q.P.Value == "" || q.O == nil {
		return ErrIncompleteQuad
	}
	if _, err := e.writer.WriteString(renderQuad(q) + "\n"); err != nil {
		e.err = err
		return err
	}
	return nil
}

// WriteBlock encodes quads followed by one blank separator line.
func (e *Encoder) WriteBlock(quads []Quad) error {
	for _, q := range quads {
		if err := e.Write(q); err != nil {
			return err
		}
	}
	if e.err != nil {
		return e.err
	}
	if err := e.writer.WriteByte('\n'); err != nil {
		e.err = err
		return err
	}
	return nil
}

// Flush writes buffered output to the underlying writer.
func (e *Encoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	if err := e.writer.Flush(); err != nil {
		e.err = err
		return err
	}
	return nil
}

// Close flushes the encoder.
func (e *Encoder) Close() error {
	return e.Flush()
}

// Format renders quads as N-Quads text, one line per quad.
func Format(quads []Quad) string {
	var sb strings.Builder
	for _, q := range quads {
		sb.WriteString(renderQuad(q))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func renderQuad(q Quad) string {
	line := renderTerm(q.S) + " " + renderIRI(q.P) + " " + renderTerm(q.O)
	if q.G != nil {
		line += " " + renderTerm(q.G)
	}
	return line + " ."
}

// renderIRI serializes clean IRIs through knakk/rdf. Values it rejects,
// such as addresses with embedded spaces, are written with \u escapes.
func renderIRI(iri IRI) string {
	value := strings.ToValidUTF8(iri.Value, "\uFFFD")
	if term, err := knakk.NewIRI(value); err == nil {
		return term.Serialize(knakk.NQuads)
	}
	return "<" + escapeIRI(value) + ">"
}

func renderBlank(b BlankNode) string {
	if term, err := knakk.NewBlank(b.ID); err == nil {
		return term.Serialize(knakk.NQuads)
	}
	return b.String()
}

func renderTerm(term Term) string {
	switch value := term.(type) {
	case IRI:
		return renderIRI(value)
	case BlankNode:
		return renderBlank(value)
	case Literal:
		return renderLiteral(value)
	default:
		return ""
	}
}

// renderLiteral writes xsd:string literals in canonical form (no datatype)
// and every other literal as "lexical"^^<datatype>.
func renderLiteral(l Literal) string {
	quoted := `"` + escapeString(l.Lexical) + `"`
	if l.IsString() {
		return quoted
	}
	return quoted + "^^" + renderIRI(l.Datatype)
}

// escapeString applies the N-Quads STRING_LITERAL_QUOTE escapes. Invalid
// UTF-8 is replaced with U+FFFD.
func escapeString(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	if !strings.ContainsAny(s, "\"\\\n\r\t\b\f") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// escapeIRI replaces characters that IRIREF forbids with \u escapes so that
// identifiers built from dirty input still produce parseable lines.
func escapeIRI(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	clean := true
	for _, r := range s {
		if iriForbidden(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		if iriForbidden(r) {
			fmt.Fprintf(&sb, `\u%04X`, r)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func iriForbidden(r rune) bool {
	if r <= 0x20 {
		return true
	}
	switch r {
	case '<', '>', '"', '{', '}', '|', '^', '`', '\\':
		return true
	}
	return false
}
