package parser

// Relaxed specifies a bitset of non-compliant grammar extensions a Parser may opt into. The zero
// value parses strictly to the 1.0.0 grammar; every flag is a pure syntactic superset, never
// required to parse a compliant document. Adapted from sblinch/kdl-go's relaxed.Flags, trimmed to
// the extensions that make sense for a tagged-variant value model rather than a struct-unmarshal
// target.
type Relaxed int

const (
	// AllowUnquotedKeywordNames permits a node name equal to true/false/null to stand unquoted,
	// where the strict grammar requires it to be quoted since it would otherwise lex as the
	// keyword value rather than an identifier.
	AllowUnquotedKeywordNames Relaxed = 1 << iota

	// AllowMissingSpaceBeforeBrace permits a children block to immediately follow a node's last
	// argument/property with no intervening node-space, e.g. `node 1{ child }`.
	AllowMissingSpaceBeforeBrace
)

// Permit reports whether every bit set in q is also set in f.
func (f Relaxed) Permit(q Relaxed) bool {
	return f&q == q
}
