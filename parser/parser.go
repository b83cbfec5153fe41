// Package parser implements the hand-written recursive-descent parser that turns KDL source text
// into a document.Document (§4.2). Unlike sblinch/kdl-go's internal/parser + internal/tokenizer
// pair, it has no separate token stream or state-machine transition table: lexical rules from
// internal/lexer are applied directly as the recursive descent walks the source cursor.
package parser

import (
	"math/big"
	"strings"

	"github.com/sblinch/kdl-go/convert"
	"github.com/sblinch/kdl-go/document"
	"github.com/sblinch/kdl-go/internal/lexer"
	"github.com/sblinch/kdl-go/kdlerr"
)

// Parser holds a reusable parse/print configuration pair. The zero value is usable and parses
// with DefaultParseConfig.
type Parser struct {
	ParseConfig *ParseConfig
	PrintConfig *document.PrintConfig
}

// New creates a Parser with the given configuration; either argument may be nil to use the
// corresponding default.
func New(parseConfig *ParseConfig, printConfig *document.PrintConfig) *Parser {
	return &Parser{ParseConfig: parseConfig, PrintConfig: printConfig}
}

// Parse parses text using p's configured ParseConfig (or config, if non-nil, overriding it).
func (p *Parser) Parse(text string, config *ParseConfig) (*document.Document, error) {
	if config == nil {
		config = p.ParseConfig
	}
	return parseDocument(text, config)
}

// Print renders doc using p's configured PrintConfig (or config, if non-nil, overriding it).
func (p *Parser) Print(doc *document.Document, config *document.PrintConfig) (string, error) {
	if config == nil {
		config = p.PrintConfig
	}
	return doc.Print(config)
}

// Parse parses text into a Document using config, or DefaultParseConfig if config is nil.
func Parse(text string, config *ParseConfig) (*document.Document, error) {
	return parseDocument(text, config)
}

func parseDocument(text string, config *ParseConfig) (*document.Document, error) {
	p := &parseState{
		c:   lexer.NewCursor(text),
		cfg: config.orDefault(),
	}
	doc := document.New()
	nodes, err := p.parseNodes(true)
	if err != nil {
		return nil, err
	}
	doc.Nodes = nodes
	return doc, nil
}

// parseState is the single-owner mutable state of one parse: the source cursor and the resolved
// configuration. It is never shared across goroutines or captured by a closure (§5, §9 "Parser
// state").
type parseState struct {
	c   *lexer.Cursor
	cfg *ParseConfig

	// pendingComment accumulates `//` comment lines seen by skipLineSpace since the last node, for
	// capture as the next node's Comment.Before when cfg.PreserveComments is set.
	pendingComment strings.Builder
}

func (p *parseState) errf(format string, args ...interface{}) error {
	line, col := p.c.Pos()
	return kdlerr.New(line, col, format, args...)
}

func (p *parseState) errfAt(line, col int, format string, args ...interface{}) error {
	return kdlerr.New(line, col, format, args...)
}

// ---- whitespace, comments, line continuation ----

// skipWS consumes a run of non-newline whitespace and nested /* */ block comments. It never
// consumes a `//` line comment, nor a newline outside a block comment (a block comment it skips
// may itself span lines).
func (p *parseState) skipWS() (bool, error) {
	any := false
	for {
		r, size := p.c.Peek()
		if size == 0 {
			return any, nil
		}
		if lexer.IsWhitespace(r) {
			p.c.Advance()
			any = true
			continue
		}
		if p.c.PeekString("/*") {
			if err := p.skipBlockComment(); err != nil {
				return any, err
			}
			any = true
			continue
		}
		return any, nil
	}
}

// skipBlockComment consumes a /* … */ comment, honoring nesting, starting at the cursor
// positioned on the opening '/'.
func (p *parseState) skipBlockComment() error {
	line, col := p.c.Pos()
	p.c.Advance() // /
	p.c.Advance() // *
	depth := 1
	for depth > 0 {
		if p.c.AtEOF() {
			return p.errfAt(line, col, "unterminated block comment")
		}
		if p.c.PeekString("/*") {
			p.c.Advance()
			p.c.Advance()
			depth++
			continue
		}
		if p.c.PeekString("*/") {
			p.c.Advance()
			p.c.Advance()
			depth--
			continue
		}
		if r, _ := p.c.Peek(); lexer.IsNewline(r) {
			p.c.AdvanceNewline()
			continue
		}
		p.c.Advance()
	}
	return nil
}

// skipLineComment consumes a `// …` comment up to, but not including, the terminating newline (or
// EOF), returning its text (without the leading `//`).
func (p *parseState) skipLineComment() string {
	start := p.c.Offset()
	p.c.Advance() // /
	p.c.Advance() // /
	for {
		r, size := p.c.Peek()
		if size == 0 || lexer.IsNewline(r) {
			break
		}
		p.c.Advance()
	}
	return p.c.Slice(start + 2)
}

// tryEscline consumes a `\` line continuation if present: backslash, then node-space/line
// comments, then a mandatory newline. Reports whether one was consumed.
func (p *parseState) tryEscline() (bool, error) {
	if r, _ := p.c.Peek(); r != '\\' {
		return false, nil
	}
	line, col := p.c.Pos()
	p.c.Advance()
	for {
		if _, err := p.skipWS(); err != nil {
			return false, err
		}
		if p.c.PeekString("//") {
			p.skipLineComment()
			continue
		}
		break
	}
	if r, _ := p.c.Peek(); lexer.IsNewline(r) {
		p.c.AdvanceNewline()
		return true, nil
	}
	return false, p.errfAt(line, col, "expected newline after line continuation")
}

// skipNodeSpace consumes zero or more node-space tokens (ws | escline). Reports whether at least
// one was consumed.
func (p *parseState) skipNodeSpace() (bool, error) {
	any := false
	for {
		ws, err := p.skipWS()
		if err != nil {
			return any, err
		}
		if ws {
			any = true
			continue
		}
		esc, err := p.tryEscline()
		if err != nil {
			return any, err
		}
		if esc {
			any = true
			continue
		}
		return any, nil
	}
}

// skipLineSpace consumes zero or more linespace tokens (ws | newline | single-line-comment).
func (p *parseState) skipLineSpace() error {
	for {
		ws, err := p.skipWS()
		if err != nil {
			return err
		}
		if ws {
			continue
		}
		if r, _ := p.c.Peek(); lexer.IsNewline(r) {
			p.c.AdvanceNewline()
			continue
		}
		if p.c.PeekString("//") {
			text := p.skipLineComment()
			if p.cfg.PreserveComments {
				p.pendingComment.WriteString(strings.TrimSpace(text))
				p.pendingComment.WriteByte('\n')
			}
			continue
		}
		return nil
	}
}

// takePendingComment returns and clears any comment text accumulated by skipLineSpace since the
// last call.
func (p *parseState) takePendingComment() string {
	s := p.pendingComment.String()
	p.pendingComment.Reset()
	return s
}

// atSlashdash reports whether the cursor is positioned on a `/-` marker and, if so, consumes it
// along with any trailing whitespace and block comments (not a line continuation).
func (p *parseState) atSlashdash() (bool, error) {
	if !p.c.PeekString("/-") {
		return false, nil
	}
	p.c.Advance()
	p.c.Advance()
	if _, err := p.skipWS(); err != nil {
		return false, err
	}
	return true, nil
}

// ---- identifiers, tags ----

// parseIdentifierOrString scans a bare identifier or a quoted/raw string, returning its text. Used
// for node names, tag contents, and property keys, none of which may themselves be tagged.
func (p *parseState) parseIdentifierOrString() (string, error) {
	r, size := p.c.Peek()
	if size == 0 {
		return "", p.errf("expected identifier")
	}
	if r == '"' {
		value, _, err := lexer.ScanQuotedString(p.c)
		if err != nil {
			return "", p.wrap(err)
		}
		return value, nil
	}
	if p.isRawStringStart() {
		value, _, err := lexer.ScanRawString(p.c)
		if err != nil {
			return "", p.wrap(err)
		}
		return value, nil
	}
	if lexer.IsIdentifierStartChar(r) {
		return lexer.ScanBareIdentifier(p.c), nil
	}
	return "", p.errf("unexpected character %q", r)
}

// isRawStringStart reports whether the cursor is positioned at the start of a raw string
// (`r"`, `r#"`, `r##"`, ...), as opposed to a bare identifier that merely begins with 'r'.
func (p *parseState) isRawStringStart() bool {
	r, _ := p.c.Peek()
	if r != 'r' {
		return false
	}
	n := 1
	for {
		next := p.c.PeekRune(n)
		if next == '#' {
			n++
			continue
		}
		return next == '"'
	}
}

// parseTag parses an optional `(identifier)` type annotation, returning the tag text and whether
// one was present.
func (p *parseState) parseTag() (string, bool, error) {
	if r, _ := p.c.Peek(); r != '(' {
		return "", false, nil
	}
	p.c.Advance()
	if _, err := p.skipWS(); err != nil {
		return "", false, err
	}
	tag, err := p.parseIdentifierOrString()
	if err != nil {
		return "", false, err
	}
	if _, err := p.skipWS(); err != nil {
		return "", false, err
	}
	if r, _ := p.c.Peek(); r != ')' {
		return "", false, p.errf("expected ')' to close type annotation")
	}
	p.c.Advance()
	return tag, true, nil
}

func (p *parseState) wrap(err *lexer.PositionedError) error {
	return kdlerr.New(err.Line, err.Column, "%s", err.Message)
}

// ---- literals and values ----

// parseLiteral scans a single untagged value literal: a quoted or raw string, a number, or one of
// the three keywords. It does not handle tags or conversion hooks.
func (p *parseState) parseLiteral() (*document.Value, error) {
	r, size := p.c.Peek()
	if size == 0 {
		return nil, p.errf("expected value")
	}
	switch {
	case r == '"':
		text, _, err := lexer.ScanQuotedString(p.c)
		if err != nil {
			return nil, p.wrap(err)
		}
		return document.NewString(text), nil
	case p.isRawStringStart():
		text, hashes, err := lexer.ScanRawString(p.c)
		if err != nil {
			return nil, p.wrap(err)
		}
		return document.NewRawString(text, hashes), nil
	case lexer.IsDigit(r) || (lexer.IsSign(r) && lexer.IsDigit(p.c.PeekRune(1))):
		return p.parseNumber()
	case lexer.IsIdentifierStartChar(r):
		line, col := p.c.Pos()
		ident := lexer.ScanBareIdentifier(p.c)
		switch ident {
		case "true":
			return document.NewBool(true), nil
		case "false":
			return document.NewBool(false), nil
		case "null":
			return document.NewNull(), nil
		default:
			return nil, p.errfAt(line, col, "unexpected identifier %q, expected a value", ident)
		}
	default:
		return nil, p.errf("unexpected character %q, expected a value", r)
	}
}

// parseNumber scans a number literal via internal/lexer.ScanNumber and interprets its raw text
// into a Decimal/Hex/Octal/Binary Value.
func (p *parseState) parseNumber() (*document.Value, error) {
	line, col := p.c.Pos()
	raw, radix, err := lexer.ScanNumber(p.c)
	if err != nil {
		return nil, p.wrap(err)
	}
	switch radix {
	case 16, 8, 2:
		return parseRadixNumber(raw, radix, line, col)
	default:
		return parseDecimalNumber(raw, line, col)
	}
}

func parseRadixNumber(raw string, radix int, line, col int) (*document.Value, error) {
	neg := false
	s := raw
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	s = s[2:] // 0x/0o/0b
	digits := strings.ReplaceAll(s, "_", "")
	n, ok := new(big.Int).SetString(digits, radix)
	if !ok {
		return nil, kdlerr.New(line, col, "invalid number literal %q", raw)
	}
	if neg {
		n.Neg(n)
	}
	v := &document.Value{Int: n, Digits: digits}
	switch radix {
	case 16:
		v.Kind = document.KindHex
	case 8:
		v.Kind = document.KindOctal
	case 2:
		v.Kind = document.KindBinary
	}
	return v, nil
}

func parseDecimalNumber(raw string, line, col int) (*document.Value, error) {
	clean := strings.ReplaceAll(raw, "_", "")
	if !strings.ContainsAny(clean, ".eE") {
		n, ok := new(big.Int).SetString(clean, 10)
		if !ok {
			return nil, kdlerr.New(line, col, "invalid number literal %q", raw)
		}
		return document.NewBigInt(n, 0), nil
	}
	f, ok := new(big.Float).SetString(clean)
	if !ok {
		return nil, kdlerr.New(line, col, "invalid number literal %q", raw)
	}
	return &document.Value{Kind: document.KindDecimal, Float: f, IsFloat: true}, nil
}

// parseValue parses an optionally-tagged value: `(tag)? literal`, applying tag conversion hooks
// when tagged is true and discard is false.
func (p *parseState) parseValue(discard bool) (*document.Value, error) {
	tag, hasTag, err := p.parseTag()
	if err != nil {
		return nil, err
	}
	if hasTag {
		if _, err := p.skipWS(); err != nil {
			return nil, err
		}
	}
	lineBeforeLiteral, colBeforeLiteral := p.c.Pos()
	startOffset := p.c.Offset()
	v, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	if !hasTag {
		if p.cfg.NativeUntaggedValues && !discard {
			v.Native = v.ResolvedValue()
		}
		return v, nil
	}
	v.Tag = tag
	if discard {
		return v, nil
	}
	frag := convert.ParseFragment{Text: p.c.Slice(startOffset), Line: lineBeforeLiteral, Col: colBeforeLiteral}
	if result, ok, err := p.cfg.ValueConverters.Apply(v, frag); err != nil {
		return nil, err
	} else if ok {
		v.Native = result
		return v, nil
	}
	if p.cfg.NativeTaggedValues {
		result, ok, err := convert.ApplyBuiltinTag(tag, v, frag)
		if err != nil {
			return nil, err
		}
		if ok {
			v.Native = result
		}
	}
	return v, nil
}

// ---- nodes ----

// parseNodes parses a sequence of sibling nodes until '}' (topLevel=false) or EOF (topLevel=true).
func (p *parseState) parseNodes(topLevel bool) ([]*document.Node, error) {
	if err := p.skipLineSpace(); err != nil {
		return nil, err
	}
	var nodes []*document.Node
	for {
		if p.c.AtEOF() {
			break
		}
		if !topLevel {
			if r, _ := p.c.Peek(); r == '}' {
				break
			}
		}
		n, discarded, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		if !discarded && n != nil {
			nodes = append(nodes, n)
		}
		if err := p.skipLineSpace(); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// parseNode parses a single node: slashdash? (tag)? identifier (prop/arg/children)* terminator.
func (p *parseState) parseNode() (*document.Node, bool, error) {
	beforeComment := strings.TrimSpace(p.takePendingComment())

	discardNode, err := p.atSlashdash()
	if err != nil {
		return nil, false, err
	}

	tag, hasTag, err := p.parseTag()
	if err != nil {
		return nil, false, err
	}
	if hasTag {
		if _, err := p.skipWS(); err != nil {
			return nil, false, err
		}
	}

	name, err := p.parseNodeName(hasTag)
	if err != nil {
		return nil, false, err
	}

	n := document.NewNode(name)
	n.Tag = tag

	for {
		sawSpace, err := p.skipNodeSpace()
		if err != nil {
			return nil, false, err
		}
		if p.c.AtEOF() {
			break
		}
		r, _ := p.c.Peek()
		if r == '}' || lexer.IsNewline(r) || r == ';' || p.c.PeekString("//") {
			break
		}
		if !sawSpace && !(r == '{' && p.cfg.Relaxed.Permit(AllowMissingSpaceBeforeBrace)) {
			return nil, false, p.errf("expected node-space before %q", r)
		}

		discardItem, err := p.atSlashdash()
		if err != nil {
			return nil, false, err
		}

		if r2, _ := p.c.Peek(); r2 == '{' {
			children, err := p.parseChildrenBlock()
			if err != nil {
				return nil, false, err
			}
			if !discardItem {
				n.Children = append(n.Children, children...)
			}
			continue
		}

		isProp, key, val, err := p.parsePropOrArg(discardNode || discardItem)
		if err != nil {
			return nil, false, err
		}
		if discardNode || discardItem {
			continue
		}
		if isProp {
			n.SetProp(key, val)
		} else {
			n.AddArg(val)
		}
	}

	var afterComment string
	if p.cfg.PreserveComments {
		if _, err := p.skipWS(); err != nil {
			return nil, false, err
		}
		if p.c.PeekString("//") {
			afterComment = strings.TrimSpace(p.skipLineComment())
		}
	}

	if r, _ := p.c.Peek(); r == ';' {
		p.c.Advance()
	} else if lexer.IsNewline(r) {
		p.c.AdvanceNewline()
	}

	if discardNode {
		return nil, true, nil
	}

	if p.cfg.PreserveComments && (beforeComment != "" || afterComment != "") {
		n.Comment = &document.Comment{Before: beforeComment, After: afterComment}
	}

	if result, ok, err := p.cfg.NodeConverters.Apply(n); err != nil {
		return nil, false, err
	} else if ok {
		return result, false, nil
	}
	return n, false, nil
}

// parseNodeName parses a node's mandatory name: a bare identifier or a quoted/raw string. A bare
// name equal to one of the three reserved keywords is rejected unless the node is tagged (e.g.
// `(tag)true`) or the AllowUnquotedKeywordNames relaxed flag is set.
func (p *parseState) parseNodeName(tagged bool) (string, error) {
	r, size := p.c.Peek()
	if size == 0 {
		return "", p.errf("expected node name")
	}
	if r == '"' {
		text, _, err := lexer.ScanQuotedString(p.c)
		if err != nil {
			return "", p.wrap(err)
		}
		return text, nil
	}
	if p.isRawStringStart() {
		text, _, err := lexer.ScanRawString(p.c)
		if err != nil {
			return "", p.wrap(err)
		}
		return text, nil
	}
	if lexer.IsIdentifierStartChar(r) {
		line, col := p.c.Pos()
		ident := lexer.ScanBareIdentifier(p.c)
		if lexer.IsKeyword(ident) && !tagged && !p.cfg.Relaxed.Permit(AllowUnquotedKeywordNames) {
			return "", p.errfAt(line, col, "node name %q must be quoted", ident)
		}
		return ident, nil
	}
	return "", p.errf("unexpected character %q, expected a node name", r)
}

// parsePropOrArg parses a single property-or-argument token, applying tag conversion to its value
// unless discard is true.
func (p *parseState) parsePropOrArg(discard bool) (isProp bool, key string, val *document.Value, err error) {
	r, _ := p.c.Peek()

	if r == '(' {
		v, err := p.parseValue(discard)
		return false, "", v, err
	}

	if r == '"' || p.isRawStringStart() {
		var text string
		var hashes int
		var perr *lexer.PositionedError
		if r == '"' {
			text, _, perr = lexer.ScanQuotedString(p.c)
		} else {
			text, hashes, perr = lexer.ScanRawString(p.c)
		}
		if perr != nil {
			return false, "", nil, p.wrap(perr)
		}
		if r2, _ := p.c.Peek(); r2 == '=' {
			p.c.Advance()
			v, err := p.parseValue(discard)
			return true, text, v, err
		}
		if r == '"' {
			return false, "", document.NewString(text), nil
		}
		return false, "", document.NewRawString(text, hashes), nil
	}

	if lexer.IsDigit(r) || (lexer.IsSign(r) && lexer.IsDigit(p.c.PeekRune(1))) {
		v, err := p.parseNumber()
		return false, "", v, err
	}

	if lexer.IsIdentifierStartChar(r) {
		line, col := p.c.Pos()
		ident := lexer.ScanBareIdentifier(p.c)
		if r2, _ := p.c.Peek(); r2 == '=' {
			if lexer.IsKeyword(ident) {
				return false, "", nil, p.errfAt(line, col, "property key %q is a reserved keyword", ident)
			}
			p.c.Advance()
			v, err := p.parseValue(discard)
			return true, ident, v, err
		}
		switch ident {
		case "true":
			return false, "", document.NewBool(true), nil
		case "false":
			return false, "", document.NewBool(false), nil
		case "null":
			return false, "", document.NewNull(), nil
		default:
			return false, "", nil, p.errfAt(line, col, "unexpected identifier %q", ident)
		}
	}

	return false, "", nil, p.errf("unexpected character %q", r)
}

// parseChildrenBlock parses a `{ nodes }` block, the cursor positioned at the opening brace.
func (p *parseState) parseChildrenBlock() ([]*document.Node, error) {
	p.c.Advance() // {
	nodes, err := p.parseNodes(false)
	if err != nil {
		return nil, err
	}
	if r, _ := p.c.Peek(); r != '}' {
		return nil, p.errf("expected '}' to close children block")
	}
	p.c.Advance()
	return nodes, nil
}
