// Package document implements the KDL value/node/document tree (§3 of the language spec), the
// matcher DSL used to look entries up (§6), and the printer that turns the tree back into KDL
// text (§4.3). It is grounded on sblinch/kdl-go's document package, generalized from that
// library's reflection-based struct model into the tagged-variant Value described by the
// specification.
package document

import (
	"math/big"
)

// Kind discriminates the concrete variant held by a Value.
type Kind int

const (
	// KindString is a quoted ("…") string.
	KindString Kind = iota
	// KindRawString is a raw (r"…", r#"…"#, ...) string.
	KindRawString
	// KindDecimal is a base-10 number, integer or floating point.
	KindDecimal
	// KindHex is a 0x… integer (optionally signed).
	KindHex
	// KindOctal is a 0o… integer (optionally signed).
	KindOctal
	// KindBinary is a 0b… integer (optionally signed).
	KindBinary
	// KindBool is true/false.
	KindBool
	// KindNull is the null keyword.
	KindNull
	// KindExact is a printer-only escape hatch: Text is emitted verbatim. The parser never
	// produces this variant.
	KindExact
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindRawString:
		return "RawString"
	case KindDecimal:
		return "Decimal"
	case KindHex:
		return "Hex"
	case KindOctal:
		return "Octal"
	case KindBinary:
		return "Binary"
	case KindBool:
		return "Bool"
	case KindNull:
		return "Null"
	case KindExact:
		return "ExactValue"
	default:
		return "Unknown"
	}
}

// ToKDLer is implemented by host-native adapters (e.g. a UUID or date-time type produced by a
// value converter) that know how to re-render themselves as a Value when printed. The printer's
// "host-native adapters" step (§4.3) calls this once and recurses on the result.
type ToKDLer interface {
	ToKDL() (*Value, error)
}

// Value is the tagged-variant payload carried by every node argument and property value. Exactly
// one of the Kind-specific fields below is meaningful for a given Kind.
type Value struct {
	// Tag is the value's optional type annotation, or "" if none.
	Tag string

	// Kind discriminates the variant.
	Kind Kind

	// Text holds the String/RawString payload, or the verbatim literal for KindExact.
	Text string
	// Hashes is the RawString hash count used when this value was parsed (0 for r"…").
	Hashes int

	// Int is the Decimal integer mantissa when !IsFloat, or the signed Hex/Octal/Binary value.
	Int *big.Int
	// Exponent is the Decimal exponent (0 when absent); meaningless outside KindDecimal.
	Exponent int
	// Float is the Decimal value when IsFloat is true.
	Float *big.Float
	// IsFloat distinguishes the two Decimal forms.
	IsFloat bool
	// Digits is the original (case-preserved) digit string of a parsed Hex/Octal/Binary value,
	// without sign, radix prefix or underscores, used so the printer reproduces the source's
	// letter case rather than a re-lowercased rendering.
	Digits string

	// Bool is the KindBool payload.
	Bool bool

	// Native holds the result of a value converter (§4.2 "Tag application") or, when
	// nativeUntaggedValues is enabled, the host-native equivalent of an untagged value as given by
	// ResolvedValue: a plain string, *big.Int, *big.Float, bool or nil. Converters may also store
	// any adapter type implementing ToKDLer. When non-nil,
	// Native is authoritative for the value's meaning; the Kind-specific fields above still
	// describe the literal as parsed, so the printer can fall back to them for values with no
	// special native rendering.
	Native interface{}
}

// NewString creates an untagged KindString value.
func NewString(s string) *Value { return &Value{Kind: KindString, Text: s} }

// NewRawString creates an untagged KindRawString value with the given hash count.
func NewRawString(s string, hashes int) *Value {
	return &Value{Kind: KindRawString, Text: s, Hashes: hashes}
}

// NewInt creates an untagged KindDecimal value with an integer mantissa and exponent 0.
func NewInt(i int64) *Value {
	return &Value{Kind: KindDecimal, Int: big.NewInt(i)}
}

// NewBigInt creates an untagged KindDecimal value from an arbitrary-precision mantissa.
func NewBigInt(i *big.Int, exponent int) *Value {
	return &Value{Kind: KindDecimal, Int: i, Exponent: exponent}
}

// NewFloat creates an untagged KindDecimal value holding a floating-point number.
func NewFloat(f float64) *Value {
	return &Value{Kind: KindDecimal, Float: big.NewFloat(f), IsFloat: true}
}

// NewHex creates an untagged KindHex value.
func NewHex(v *big.Int) *Value { return &Value{Kind: KindHex, Int: v} }

// NewOctal creates an untagged KindOctal value.
func NewOctal(v *big.Int) *Value { return &Value{Kind: KindOctal, Int: v} }

// NewBinary creates an untagged KindBinary value.
func NewBinary(v *big.Int) *Value { return &Value{Kind: KindBinary, Int: v} }

// NewBool creates an untagged KindBool value.
func NewBool(b bool) *Value { return &Value{Kind: KindBool, Bool: b} }

// NewNull creates an untagged KindNull value.
func NewNull() *Value { return &Value{Kind: KindNull} }

// NewExact creates a printer-only value that emits text verbatim, bypassing all formatting. The
// parser never produces this variant; it exists for ToKDLer implementations that need bit-exact
// control over their rendering.
func NewExact(text string) *Value { return &Value{Kind: KindExact, Text: text} }

// IsNull reports whether v represents the null literal, either directly or via a nil Native.
func (v *Value) IsNull() bool {
	if v == nil {
		return true
	}
	if v.Native != nil {
		return false
	}
	return v.Kind == KindNull
}

// ResolvedValue returns the Go-native interpretation of v: Native if a converter set one,
// otherwise a plain string/*big.Int/*big.Float/bool/nil derived from the Kind-specific fields.
func (v *Value) ResolvedValue() interface{} {
	if v.Native != nil {
		return v.Native
	}
	switch v.Kind {
	case KindString, KindRawString:
		return v.Text
	case KindDecimal:
		if v.IsFloat {
			return v.Float
		}
		return v.Int
	case KindHex, KindOctal, KindBinary:
		return v.Int
	case KindBool:
		return v.Bool
	case KindNull:
		return nil
	default:
		return v.Text
	}
}
