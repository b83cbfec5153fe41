// Package kdl is the top-level convenience surface for parsing and printing KDL Document Language
// text: Parse for one-shot use, Parser for a reusable parse/print configuration pair. It mirrors
// sblinch/kdl-go's root kdl.go, rebuilt over this module's document/parser/printer split.
package kdl

import (
	"github.com/sblinch/kdl-go/document"
	"github.com/sblinch/kdl-go/parser"
)

// ParseConfig controls parsing; see parser.ParseConfig.
type ParseConfig = parser.ParseConfig

// PrintConfig controls printing; see document.PrintConfig.
type PrintConfig = document.PrintConfig

// Relaxed is a bitset of non-compliant grammar extensions a parse may opt into.
type Relaxed = parser.Relaxed

// Document is a parsed or hand-built KDL document tree.
type Document = document.Document

// Node is a single node within a Document.
type Node = document.Node

// Value is the tagged-variant payload carried by every node argument and property value.
type Value = document.Value

// Parser holds a reusable parse/print configuration pair.
type Parser = parser.Parser

// New creates a Parser with the given configuration; either argument may be nil to use the
// corresponding default.
func New(parseConfig *ParseConfig, printConfig *PrintConfig) *Parser {
	return parser.New(parseConfig, printConfig)
}

// Parse parses text into a Document using config, or the library default if config is nil.
func Parse(text string, config *ParseConfig) (*Document, error) {
	return parser.Parse(text, config)
}
