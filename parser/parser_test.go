package parser

import (
	"math/big"
	"strings"
	"testing"

	"github.com/sblinch/kdl-go/convert"
	"github.com/sblinch/kdl-go/document"
)

func mustParse(t *testing.T, text string, cfg *ParseConfig) *document.Document {
	t.Helper()
	doc, err := Parse(text, cfg)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", text, err)
	}
	return doc
}

// S1 — basic node/args/children.
func TestParseBasicNode(t *testing.T) {
	doc := mustParse(t, "node_name \"arg\" {\n    child_node foo=1 bar=true\n}\n", nil)
	if len(doc.Nodes) != 1 {
		t.Fatalf("got %d root nodes, want 1", len(doc.Nodes))
	}
	n := doc.Nodes[0]
	if n.Name != "node_name" {
		t.Errorf("Name = %q, want node_name", n.Name)
	}
	if len(n.Args) != 1 || n.Args[0].Text != "arg" {
		t.Fatalf("Args = %v, want [\"arg\"]", n.Args)
	}
	if len(n.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(n.Children))
	}
	child := n.Children[0]
	if child.Name != "child_node" {
		t.Errorf("child.Name = %q, want child_node", child.Name)
	}
	foo, ok := child.Props.Get("foo")
	if !ok || foo.Int.Int64() != 1 {
		t.Errorf("child.Props[foo] = %v, want 1", foo)
	}
	bar, ok := child.Props.Get("bar")
	if !ok || !bar.Bool {
		t.Errorf("child.Props[bar] = %v, want true", bar)
	}
}

// S2 — slash-dash on args/children.
func TestParseSlashDash(t *testing.T) {
	doc := mustParse(t, "foo 1 /- 2 3 /- { should be ignored }\n", nil)
	if len(doc.Nodes) != 1 {
		t.Fatalf("got %d root nodes, want 1", len(doc.Nodes))
	}
	n := doc.Nodes[0]
	if n.Name != "foo" {
		t.Fatalf("Name = %q, want foo", n.Name)
	}
	if len(n.Args) != 2 || n.Args[0].Int.Int64() != 1 || n.Args[1].Int.Int64() != 3 {
		t.Fatalf("Args = %v, want [1, 3]", n.Args)
	}
	if len(n.Children) != 0 {
		t.Fatalf("Children = %v, want none (slash-dashed away)", n.Children)
	}
}

// S3 — raw strings & radix preservation.
func TestParseRawStringAndHex(t *testing.T) {
	doc := mustParse(t, `n r#"a "quoted" b"# 0x1F`+"\n", nil)
	n := doc.Nodes[0]
	if len(n.Args) != 2 {
		t.Fatalf("got %d args, want 2", len(n.Args))
	}
	raw := n.Args[0]
	if raw.Kind != document.KindRawString || raw.Text != `a "quoted" b` || raw.Hashes != 1 {
		t.Errorf("raw string arg = %+v", raw)
	}
	hex := n.Args[1]
	if hex.Kind != document.KindHex || hex.Int.Int64() != 31 {
		t.Errorf("hex arg = %+v", hex)
	}
	if hex.Digits != "1F" {
		t.Errorf("hex.Digits = %q, want 1F (original case preserved)", hex.Digits)
	}
}

// S4 — line continuation & comments.
func TestParseLineContinuation(t *testing.T) {
	doc := mustParse(t, "n a=1 \\\n  /* mid */ b=2\n", nil)
	n := doc.Nodes[0]
	a, ok := n.Props.Get("a")
	if !ok || a.Int.Int64() != 1 {
		t.Errorf("Props[a] = %v, want 1", a)
	}
	b, ok := n.Props.Get("b")
	if !ok || b.Int.Int64() != 2 {
		t.Errorf("Props[b] = %v, want 2", b)
	}
}

// S5 — tagged native conversion.
func TestParseTaggedNativeConversion(t *testing.T) {
	cfg := ParseConfig{NativeTaggedValues: true}
	doc := mustParse(t, `when (date)"2021-02-03"`+"\n", &cfg)
	n := doc.Nodes[0]
	if len(n.Args) != 1 {
		t.Fatalf("got %d args, want 1", len(n.Args))
	}
	d, ok := n.Args[0].Native.(convert.Date)
	if !ok {
		t.Fatalf("Native = %#v, want convert.Date", n.Args[0].Native)
	}
	if d.Format("2006-01-02") != "2021-02-03" {
		t.Errorf("date = %v, want 2021-02-03", d)
	}
}

// S6 — property last-wins.
func TestParsePropertyLastWins(t *testing.T) {
	doc := mustParse(t, "n a=1 b=2 a=3\n", nil)
	n := doc.Nodes[0]
	keys := n.Props.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("Keys() = %v, want [a b] (a's original position preserved)", keys)
	}
	a, _ := n.Props.Get("a")
	if a.Int.Int64() != 3 {
		t.Errorf("Props[a] = %v, want 3 (last value wins)", a)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	doc := mustParse(t, "", nil)
	if len(doc.Nodes) != 0 {
		t.Errorf("got %d nodes for empty document, want 0", len(doc.Nodes))
	}
}

func TestParseLoneSlashDashIsError(t *testing.T) {
	if _, err := Parse("/-\n", nil); err == nil {
		t.Error("Parse(lone /-) should fail, nothing follows to discard")
	}
}

func TestParseUnterminatedBlockComment(t *testing.T) {
	_, err := Parse("n /* unterminated\n", nil)
	if err == nil {
		t.Fatal("Parse(unterminated /* ) should fail")
	}
}

func TestParseSizedIntOutOfRange(t *testing.T) {
	cfg := ParseConfig{NativeTaggedValues: true}
	_, err := Parse("n (u8)256\n", &cfg)
	if err == nil {
		t.Error("Parse((u8)256) should fail, out of range for u8")
	}
}

func TestParseInvalidUnicodeEscape(t *testing.T) {
	_, err := Parse(`n "\u{D800}"`+"\n", nil)
	if err == nil {
		t.Error("Parse with surrogate unicode escape should fail")
	}
}

func TestParseTrailingUnderscoreInNumber(t *testing.T) {
	_, err := Parse("n 1_\n", nil)
	if err == nil {
		t.Error("Parse(1_) should fail, trailing underscore not permitted")
	}
}

func TestParseKeywordNodeNameRejectedUnlessQuoted(t *testing.T) {
	if _, err := Parse("true\n", nil); err == nil {
		t.Error("Parse(bare `true` as node name) should fail")
	}
	doc := mustParse(t, "\"true\"\n", nil)
	if doc.Nodes[0].Name != "true" {
		t.Errorf("quoted keyword node name = %q, want true", doc.Nodes[0].Name)
	}
}

func TestParseTaggedKeywordNodeNameAccepted(t *testing.T) {
	doc := mustParse(t, "(tag)true\n", nil)
	if doc.Nodes[0].Name != "true" || doc.Nodes[0].Tag != "tag" {
		t.Errorf("node = %+v, want name=true tag=tag", doc.Nodes[0])
	}
}

func TestParseRelaxedAllowsUnquotedKeywordNames(t *testing.T) {
	cfg := ParseConfig{Relaxed: AllowUnquotedKeywordNames}
	doc := mustParse(t, "true\n", &cfg)
	if doc.Nodes[0].Name != "true" {
		t.Errorf("Name = %q, want true", doc.Nodes[0].Name)
	}
}

func TestParseRelaxedAllowsMissingSpaceBeforeBrace(t *testing.T) {
	cfg := ParseConfig{Relaxed: AllowMissingSpaceBeforeBrace}
	doc := mustParse(t, "node 1{\n  child\n}\n", &cfg)
	n := doc.Nodes[0]
	if len(n.Children) != 1 || n.Children[0].Name != "child" {
		t.Errorf("Children = %v, want [child]", n.Children)
	}
}

func TestParseStrictRejectsMissingSpaceBeforeBrace(t *testing.T) {
	if _, err := Parse("node 1{\n  child\n}\n", nil); err == nil {
		t.Error("strict parse should require node-space before '{'")
	}
}

func TestParseSignedBareIdentifier(t *testing.T) {
	doc := mustParse(t, "n +foo=1\n", nil)
	v, ok := doc.Nodes[0].Props.Get("+foo")
	if !ok || v.Int.Int64() != 1 {
		t.Errorf("Props[+foo] = %v, ok=%v, want 1 (sign-prefixed identifier accepted as a property key)", v, ok)
	}
}

func TestParseSignedBareIdentifierAsNodeName(t *testing.T) {
	doc := mustParse(t, "+foo 1\n", nil)
	if doc.Nodes[0].Name != "+foo" {
		t.Errorf("Name = %q, want +foo", doc.Nodes[0].Name)
	}
}

func TestParseUnderscoreSeparatedNumber(t *testing.T) {
	doc := mustParse(t, "n 1_000_000\n", nil)
	if doc.Nodes[0].Args[0].Int.Cmp(big.NewInt(1000000)) != 0 {
		t.Errorf("arg = %v, want 1000000", doc.Nodes[0].Args[0].Int)
	}
}

func TestParsePositionMonotonicity(t *testing.T) {
	var calls []convert.ParseFragment
	cfg := ParseConfig{
		ValueConverters: convert.ValueConverters{
			{
				Key: document.ByTag(document.AnyName()),
				Fn: func(v *document.Value, frag convert.ParseFragment) (interface{}, bool, error) {
					calls = append(calls, frag)
					return nil, false, nil
				},
			},
		},
	}
	_, err := Parse("n (t)1 (t)2\nm (t)3\n", &cfg)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	for i := 1; i < len(calls); i++ {
		prev, cur := calls[i-1], calls[i]
		if cur.Line < prev.Line || (cur.Line == prev.Line && cur.Col < prev.Col) {
			t.Errorf("position went backwards: %+v then %+v", prev, cur)
		}
	}
}

func TestParseNodeConverter(t *testing.T) {
	cfg := ParseConfig{
		NodeConverters: convert.NodeConverters{
			{
				Key: document.ByName(document.ExactName("rename-me")),
				Fn: func(n *document.Node) (*document.Node, bool, error) {
					n.Name = "renamed"
					return n, true, nil
				},
			},
		},
	}
	doc := mustParse(t, "rename-me\n", &cfg)
	if doc.Nodes[0].Name != "renamed" {
		t.Errorf("Name = %q, want renamed", doc.Nodes[0].Name)
	}
}

func TestParsePreserveComments(t *testing.T) {
	cfg := ParseConfig{PreserveComments: true}
	doc := mustParse(t, "// leading\nn 1 // trailing\n", &cfg)
	n := doc.Nodes[0]
	if n.Comment == nil {
		t.Fatal("Comment not captured")
	}
	if !strings.Contains(n.Comment.Before, "leading") {
		t.Errorf("Comment.Before = %q, want to contain leading", n.Comment.Before)
	}
	if !strings.Contains(n.Comment.After, "trailing") {
		t.Errorf("Comment.After = %q, want to contain trailing", n.Comment.After)
	}
}

func TestParseNativeUntaggedValues(t *testing.T) {
	cfg := ParseConfig{NativeUntaggedValues: true}
	doc := mustParse(t, "n 1 \"s\" true null\n", &cfg)
	n := doc.Nodes[0]
	if n.Args[0].Native == nil {
		t.Error("untagged int should get a Native value when NativeUntaggedValues is set")
	}
	if s, ok := n.Args[1].Native.(string); !ok || s != "s" {
		t.Errorf("Native = %v, want string s", n.Args[1].Native)
	}
}
