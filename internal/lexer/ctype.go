// Package lexer provides the low-level character classification and cursor primitives shared by
// the KDL parser. KDL has no separate tokenization pass: the parser reads the source one rune at a
// time through a Cursor and decides what it is looking at using the predicates in this file.
package lexer

// IsWhitespace returns true if c is KDL non-newline whitespace (the `ws` production): tab, space,
// and the fixed set of Unicode space separators, including a leading BOM.
func IsWhitespace(c rune) bool {
	switch c {
	case '\t', ' ',
		' ', // NBSP
		' ', // OGHAM SPACE MARK
		' ', ' ', ' ', ' ', ' ',
		' ', ' ', ' ', ' ', ' ', ' ',
		' ', // NARROW NBSP
		' ', // MEDIUM MATHEMATICAL SPACE
		'　', // IDEOGRAPHIC SPACE
		0xFEFF: // BOM
		return true
	default:
		return false
	}
}

// IsNewline returns true if c is a KDL line terminator. CRLF is handled as a pair by the caller;
// each of these runes otherwise counts as exactly one line break.
func IsNewline(c rune) bool {
	switch c {
	case '\r', '\n', '', '', ' ', ' ':
		return true
	default:
		return false
	}
}

// IsLineSpace returns true if c is whitespace or a newline (the `linespace` production's atoms).
func IsLineSpace(c rune) bool {
	return IsWhitespace(c) || IsNewline(c)
}

// IsDigit returns true if c is an ASCII decimal digit.
func IsDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// IsHexDigit returns true if c is a hexadecimal digit (0-9, a-f, A-F).
func IsHexDigit(c rune) bool {
	return IsDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// IsOctalDigit returns true if c is an octal digit.
func IsOctalDigit(c rune) bool {
	return c >= '0' && c <= '7'
}

// IsBinaryDigit returns true if c is a binary digit.
func IsBinaryDigit(c rune) bool {
	return c == '0' || c == '1'
}

// IsSign returns true if c is + or -.
func IsSign(c rune) bool {
	return c == '+' || c == '-'
}

// reservedIdentChar is the set of ASCII punctuation that can never appear in a bare identifier,
// regardless of position.
func reservedIdentChar(c rune) bool {
	switch c {
	case '"', '\\', '/', '(', ')', '{', '}', '<', '>', ';', '[', ']', '=', ',':
		return true
	default:
		return false
	}
}

// IsIdentifierChar returns true if c may appear anywhere in a bare identifier (identifier-continue).
func IsIdentifierChar(c rune) bool {
	if IsLineSpace(c) {
		return false
	}
	if c <= 0x20 || c > 0x10FFFF {
		return false
	}
	return !reservedIdentChar(c)
}

// IsIdentifierStartChar returns true if c may begin a bare identifier (identifier-start). Per
// §4.1, a sign (+/-) is a legal start character on its own; the caller is responsible for rejecting
// a sign that is immediately followed by a digit, since that begins a number instead.
func IsIdentifierStartChar(c rune) bool {
	if !IsIdentifierChar(c) {
		return false
	}
	return !IsDigit(c)
}

// IsKeyword returns true if s is one of the three reserved KDL keywords.
func IsKeyword(s string) bool {
	switch s {
	case "true", "false", "null":
		return true
	default:
		return false
	}
}

// IsBareIdentifier returns true if s, taken as a whole, is a legal (unquoted) bare identifier: it
// satisfies the identifier character classes, is non-empty, and is not a reserved keyword.
func IsBareIdentifier(s string) bool {
	if len(s) == 0 || IsKeyword(s) {
		return false
	}
	runes := []rune(s)
	for i, r := range runes {
		if i == 0 {
			if !IsIdentifierStartChar(r) {
				return false
			}
			// a leading sign followed immediately by a digit begins a number, not an identifier.
			if IsSign(r) && len(runes) > 1 && IsDigit(runes[1]) {
				return false
			}
		} else if !IsIdentifierChar(r) {
			return false
		}
	}
	return true
}
