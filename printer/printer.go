// Package printer is a thin facade over document's printer: it exists only to give the printing
// half of the public surface its own importable package name, symmetric with parser. All the
// actual formatting logic lives in document (print.go), mirroring sblinch/kdl-go's
// internal/generator being a thin wrapper over document.Node.WriteToOptions.
package printer

import (
	"io"

	"github.com/sblinch/kdl-go/document"
)

// PrintConfig is an alias for document.PrintConfig.
type PrintConfig = document.PrintConfig

// DefaultConfig is document's library-wide default PrintConfig.
var DefaultConfig = document.DefaultPrintConfig

// Print renders doc to a string using config (nil for the document's own config, or the default).
func Print(doc *document.Document, config *PrintConfig) (string, error) {
	return doc.Print(config)
}

// Fprint writes doc to w using config (nil for the document's own config, or the default).
func Fprint(w io.Writer, doc *document.Document, config *PrintConfig) error {
	return doc.Fprint(w, config)
}
