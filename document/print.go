package document

import (
	"io"
	"math/big"
	"strings"

	"github.com/sblinch/kdl-go/internal/lexer"
	"github.com/sblinch/kdl-go/kdlerr"
)

// PrintConfig controls how a Document/Node/Value is rendered back to KDL text (§4.3, §6).
type PrintConfig struct {
	// Indent is the string repeated once per nesting depth. The default is a single tab,
	// matching sblinch/kdl-go's generator.DefaultOptions and the reference CLI's `--indent -1`.
	Indent string
	// Semicolons causes each node to be terminated with `;` in addition to its newline.
	Semicolons bool
	// RespectRadix reproduces a numeric value's original Hex/Octal/Binary radix; when false,
	// every number is printed in decimal (§8 property 3).
	RespectRadix bool
	// RespectStringType reproduces RawString values in raw (r"…") form; when false, every string
	// is printed as a FormattedString.
	RespectStringType bool
	// ExponentChar selects 'e' or 'E' for Decimal scientific notation.
	ExponentChar byte
	// PrintNullArgs controls whether null arguments are emitted or silently dropped.
	PrintNullArgs bool
	// PrintNullProps controls whether null-valued properties are emitted or silently dropped.
	PrintNullProps bool
	// PreserveComments re-emits captured leading/trailing node comments (requires the document to
	// have been parsed with ParseConfig.PreserveComments).
	PreserveComments bool
}

// DefaultPrintConfig is the library-wide default, matching the reference CLI's defaults: tab
// indentation, radix- and string-type-preserving, nulls printed, no semicolons.
var DefaultPrintConfig = PrintConfig{
	Indent:            "\t",
	RespectRadix:      true,
	RespectStringType: true,
	ExponentChar:      'e',
	PrintNullArgs:     true,
	PrintNullProps:    true,
}

func (cfg *PrintConfig) orDefault() *PrintConfig {
	if cfg != nil {
		return cfg
	}
	return &DefaultPrintConfig
}

// Print renders the document using cfg, falling back to d.PrintConfig and then
// DefaultPrintConfig.
func (d *Document) Print(cfg *PrintConfig) (string, error) {
	var b strings.Builder
	if err := d.Fprint(&b, cfg); err != nil {
		return "", err
	}
	return b.String(), nil
}

// String renders the document with its attached config (or the library default), discarding any
// serialization error. Prefer Print for error-checked output.
func (d *Document) String() string {
	s, _ := d.Print(nil)
	return s
}

// Fprint writes the document to w using cfg, falling back to d.PrintConfig and then
// DefaultPrintConfig.
func (d *Document) Fprint(w io.Writer, cfg *PrintConfig) error {
	if cfg == nil {
		cfg = d.PrintConfig
	}
	cfg = cfg.orDefault()
	for _, n := range d.Nodes {
		if err := n.fprint(w, cfg, 0); err != nil {
			return err
		}
	}
	return nil
}

// Print renders a single node (and its children) using cfg.
func (n *Node) Print(cfg *PrintConfig) (string, error) {
	var b strings.Builder
	if err := n.fprint(&b, cfg.orDefault(), 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (n *Node) fprint(w io.Writer, cfg *PrintConfig, depth int) error {
	write := func(s string) error {
		_, err := io.WriteString(w, s)
		return err
	}

	if cfg.PreserveComments && n.Comment != nil && n.Comment.Before != "" {
		for _, line := range strings.Split(strings.TrimRight(n.Comment.Before, "\n"), "\n") {
			if err := write(strings.Repeat(cfg.Indent, depth) + line + "\n"); err != nil {
				return err
			}
		}
	}

	if err := write(strings.Repeat(cfg.Indent, depth)); err != nil {
		return err
	}

	if n.Tag != "" {
		if err := write("(" + quoteIdentIfNeeded(n.Tag) + ")"); err != nil {
			return err
		}
	}
	if err := write(quoteIdentIfNeeded(n.Name)); err != nil {
		return err
	}

	for _, arg := range n.Args {
		if arg.IsNull() && !cfg.PrintNullArgs {
			continue
		}
		b, err := formatValue(nil, arg, cfg)
		if err != nil {
			return err
		}
		if err := write(" " + string(b)); err != nil {
			return err
		}
	}

	if n.Props != nil {
		var propErr error
		n.Props.Each(func(key string, v *Value) {
			if propErr != nil {
				return
			}
			if v.IsNull() && !cfg.PrintNullProps {
				return
			}
			b, err := formatValue(nil, v, cfg)
			if err != nil {
				propErr = err
				return
			}
			propErr = write(" " + quoteIdentIfNeeded(key) + "=" + string(b))
		})
		if propErr != nil {
			return propErr
		}
	}

	if len(n.Children) > 0 {
		if err := write(" {\n"); err != nil {
			return err
		}
		for _, child := range n.Children {
			if err := child.fprint(w, cfg, depth+1); err != nil {
				return err
			}
		}
		if err := write(strings.Repeat(cfg.Indent, depth) + "}"); err != nil {
			return err
		}
	}

	if cfg.Semicolons {
		if err := write(";"); err != nil {
			return err
		}
	}

	if cfg.PreserveComments && n.Comment != nil && n.Comment.After != "" {
		if err := write(" " + strings.TrimRight(n.Comment.After, "\n")); err != nil {
			return err
		}
	}

	return write("\n")
}

// quoteIdentIfNeeded returns s bare if it re-lexes as a legal bare identifier (§4.3
// "Name/property quoting"), otherwise quoted.
func quoteIdentIfNeeded(s string) string {
	if lexer.IsBareIdentifier(s) {
		return s
	}
	return QuoteString(s)
}

// formatValue renders a single Value, applying host-native adapters first (§4.3 "Host-native
// adapters"), then type-directed formatting.
func formatValue(b []byte, v *Value, cfg *PrintConfig) ([]byte, error) {
	if v.Tag != "" {
		b = append(b, '(')
		b = append(b, quoteIdentIfNeeded(v.Tag)...)
		b = append(b, ')')
	}

	if v.Native != nil {
		if adapter, ok := v.Native.(ToKDLer); ok {
			nv, err := adapter.ToKDL()
			if err != nil {
				return nil, kdlerr.NewSerializeError("%s", err.Error())
			}
			return appendValueLiteral(b, nv, cfg)
		}
	}

	return appendValueLiteral(b, v, cfg)
}

// appendValueLiteral appends only the literal (untagged) form of v; the tag, if any, has already
// been written by the caller.
func appendValueLiteral(b []byte, v *Value, cfg *PrintConfig) ([]byte, error) {
	switch v.Kind {
	case KindExact:
		return append(b, v.Text...), nil
	case KindString:
		return AppendQuotedString(b, v.Text), nil
	case KindRawString:
		if cfg.RespectStringType {
			return AppendRawString(b, v.Text), nil
		}
		return AppendQuotedString(b, v.Text), nil
	case KindDecimal:
		return appendDecimal(b, v, cfg), nil
	case KindHex:
		return appendRadix(b, v, cfg, "0x", 16), nil
	case KindOctal:
		return appendRadix(b, v, cfg, "0o", 8), nil
	case KindBinary:
		return appendRadix(b, v, cfg, "0b", 2), nil
	case KindBool:
		if v.Bool {
			return append(b, "true"...), nil
		}
		return append(b, "false"...), nil
	case KindNull:
		return append(b, "null"...), nil
	default:
		return nil, kdlerr.NewSerializeError("unknown value kind %v", v.Kind)
	}
}

func appendRadix(b []byte, v *Value, cfg *PrintConfig, prefix string, radix int) []byte {
	n := v.Int
	if n == nil {
		n = new(big.Int)
	}
	if !cfg.RespectRadix {
		return append(b, n.String()...)
	}
	digits := v.Digits
	if digits == "" {
		abs := new(big.Int).Abs(n)
		digits = strings.ToLower(abs.Text(radix))
	}
	if n.Sign() < 0 {
		b = append(b, '-')
	}
	b = append(b, prefix...)
	return append(b, digits...)
}

func appendDecimal(b []byte, v *Value, cfg *PrintConfig) []byte {
	if v.IsFloat {
		f := v.Float
		if f == nil {
			f = new(big.Float)
		}
		text := f.Text('f', -1)
		if !strings.Contains(text, ".") {
			// an integral float still prints with a trailing .0 to preserve type intent (§9).
			text += ".0"
		}
		return append(b, text...)
	}

	n := v.Int
	if n == nil {
		n = new(big.Int)
	}
	b = append(b, n.String()...)
	if v.Exponent != 0 {
		b = append(b, cfg.ExponentChar)
		if v.Exponent > 0 {
			b = append(b, '+')
		}
		exp := big.NewInt(int64(v.Exponent))
		b = append(b, exp.String()...)
	}
	return b
}
