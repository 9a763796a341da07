// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only
package rdf

const (
	xsdString             = "http://www.w3.org/2001/XMLSchema#string"
	xsdDateTime           = "http://www.w3.org/2001/XMLSchema#dateTime"
	xsdNonNegativeInteger = "http://www.w3.org/2001/XMLSchema#nonNegativeInteger"
)

// NewString returns an xsd:string literal.
func NewString(lexical string) Literal {
	return Literal{Lexical: lexical, Datatype: IRI{Value: xsdString}}
}

// NewDateTime returns an xsd:dateTime literal carrying lexical unchanged.
func NewDateTime(lexical string) Literal {
	return Literal{Lexical: lexical, Datatype: IRI{Value: xsdDateTime}}
}

// NewNonNegativeInteger returns an xsd:nonNegativeInteger literal.
func NewNonNegativeInteger(lexical string) Literal {
	return Literal{Lexical: lexical, Datatype: IRI{Value: xsdNonNegativeInteger}}
}

// IsString reports whether the literal is a plain xsd:string.
func (l Literal) IsString() bool {
	return l.Datatype.Value == "" || l.Datatype.Value == xsdString
}
