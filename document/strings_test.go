package document

import "testing"

func TestQuoteStringEscapes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{"a\"b", `"a\"b"`},
		{"a\\b", `"a\\b"`},
		{"a\nb", `"a\nb"`},
		{"a\tb", `"a\tb"`},
		{"a\x01b", `"a\u{1}b"`},
	}
	for _, c := range cases {
		if got := QuoteString(c.in); got != c.want {
			t.Errorf("QuoteString(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestAppendRawStringMinimalHashes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain", `r"plain"`},
		{`a "quoted" b`, `r#"a "quoted" b"#`},
		{`has "# inside`, `r##"has "# inside"##`},
	}
	for _, c := range cases {
		got := string(AppendRawString(nil, c.in))
		if got != c.want {
			t.Errorf("AppendRawString(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
