package document

import (
	"strconv"
	"strings"
)

// noEscapeTable maps each ASCII byte to whether it can be emitted into a FormattedString without
// escaping. Grounded on sblinch/kdl-go's document/strings.go, which in turn credits the table
// layout to the MIT-licensed zerolog JSON string encoder, adapted here to KDL's escape set.
var noEscapeTable = [256]bool{}

func init() {
	for i := 0; i <= 0x7e; i++ {
		noEscapeTable[i] = i >= 0x20 && i != '\\' && i != '"'
	}
}

// AppendQuotedString appends s to b as a KDL FormattedString ("…"), using the minimal escape set
// from §4.1: \\, \", \n, \r, \t, \b, \f, and \u{…} for other control characters.
func AppendQuotedString(b []byte, s string) []byte {
	b = append(b, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if noEscapeTable[c] {
			b = append(b, c)
			continue
		}
		if c >= 0x80 {
			b = append(b, c)
			continue
		}
		switch c {
		case '"':
			b = append(b, '\\', '"')
		case '\\':
			b = append(b, '\\', '\\')
		case '\n':
			b = append(b, '\\', 'n')
		case '\r':
			b = append(b, '\\', 'r')
		case '\t':
			b = append(b, '\\', 't')
		case '\b':
			b = append(b, '\\', 'b')
		case '\f':
			b = append(b, '\\', 'f')
		default:
			b = append(b, '\\', 'u', '{')
			b = strconv.AppendUint(b, uint64(c), 16)
			b = append(b, '}')
		}
	}
	b = append(b, '"')
	return b
}

// QuoteString returns s formatted as a KDL FormattedString.
func QuoteString(s string) string {
	return string(AppendQuotedString(make([]byte, 0, len(s)+2), s))
}

// AppendRawString appends s to b as a KDL RawString, choosing the minimum hash count (0 or more
// '#' characters) such that s's payload never accidentally contains the closing delimiter.
func AppendRawString(b []byte, s string) []byte {
	hashes := 0
	for {
		closer := "\"" + strings.Repeat("#", hashes)
		if !strings.Contains(s, closer) {
			break
		}
		hashes++
	}
	b = append(b, 'r')
	b = append(b, strings.Repeat("#", hashes)...)
	b = append(b, '"')
	b = append(b, s...)
	b = append(b, '"')
	b = append(b, strings.Repeat("#", hashes)...)
	return b
}
