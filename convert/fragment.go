// Package convert implements the hook layer that sits between the parser and the document tree:
// the ordered value/node converter lists consulted during parsing (§4.2 "Tag application" and
// "Node conversion"), the ParseFragment handle passed to every hook, and the built-in reserved
// tag table (§6) that backs the default host-native adapters. It depends one-way on document and
// is never imported back by it.
package convert

import (
	"github.com/sblinch/kdl-go/kdlerr"
)

// ParseFragment is the opaque handle a converter receives alongside the value or node it is being
// asked to convert: the exact raw source text of the literal, its position, and a factory for
// positioned errors that abort the parse exactly as a built-in parse failure would.
type ParseFragment struct {
	// Text is the raw literal text as it appeared in the source, before any tag-driven
	// interpretation (e.g. the digits of a number, or the quoted/raw form of a string including
	// its delimiters).
	Text string
	Line int
	Col  int
}

// Error builds a *kdlerr.ParseError positioned at the fragment's location. Converters return this
// from their Fn to abort the parse (as opposed to returning ok=false, which just means "this hook
// doesn't apply, try the next one").
func (f ParseFragment) Error(format string, args ...interface{}) error {
	return kdlerr.New(f.Line, f.Col, format, args...)
}
