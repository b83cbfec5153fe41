package document

import "regexp"

// NameKey matches a node name or a value's tag against one of: absence (None), anything (Any), an
// exact string (Exact), an anchored regular expression (Regex, matched from the start of the
// string per §6), or an arbitrary predicate (Func). It doubles as TagKey, since the two share
// identical match semantics over a `string | none` per the specification.
type NameKey struct {
	kind nameKeyKind
	str  string
	re   *regexp.Regexp
	fn   func(s string, present bool) bool
}

type nameKeyKind int

const (
	nameKeyAny nameKeyKind = iota
	nameKeyNone
	nameKeyExact
	nameKeyRegex
	nameKeyFunc
)

// TagKey is an alias for NameKey: tags and names share the same `string | none` matcher shape.
type TagKey = NameKey

// AnyName matches any node name or tag, present or absent.
func AnyName() NameKey { return NameKey{kind: nameKeyAny} }

// NoName matches only absence (an empty tag, or — for a TagKey — "no tag annotation").
func NoName() NameKey { return NameKey{kind: nameKeyNone} }

// ExactName matches a name/tag equal to s.
func ExactName(s string) NameKey { return NameKey{kind: nameKeyExact, str: s} }

// RegexName matches a name/tag whose start matches re (anchored at the beginning, per §6).
func RegexName(re *regexp.Regexp) NameKey { return NameKey{kind: nameKeyRegex, re: re} }

// FuncName matches using an arbitrary predicate over the (value, present) pair.
func FuncName(fn func(s string, present bool) bool) NameKey {
	return NameKey{kind: nameKeyFunc, fn: fn}
}

// Matches reports whether s (with presence present) satisfies the key. NodeKey.Matches treats a
// NoName name key as matching every node, since node names can never be absent (§6).
func (k NameKey) Matches(s string, present bool) bool {
	switch k.kind {
	case nameKeyAny:
		return true
	case nameKeyNone:
		return !present
	case nameKeyExact:
		return present && s == k.str
	case nameKeyRegex:
		if !present || k.re == nil {
			return false
		}
		loc := k.re.FindStringIndex(s)
		return loc != nil && loc[0] == 0
	case nameKeyFunc:
		return k.fn != nil && k.fn(s, present)
	default:
		return false
	}
}

// NodeKey selects nodes by name alone, or by (tag, name) pair.
type NodeKey struct {
	hasTag bool
	tag    TagKey
	name   NameKey
}

// ByName builds a NodeKey that matches on name only (any tag).
func ByName(name NameKey) NodeKey { return NodeKey{name: name} }

// ByTagName builds a NodeKey that matches on both tag and name.
func ByTagName(tag TagKey, name NameKey) NodeKey { return NodeKey{hasTag: true, tag: tag, name: name} }

// Matches reports whether a node with the given tag ("" = none) and name satisfies the key.
func (k NodeKey) Matches(tag, name string) bool {
	if k.name.kind != nameKeyNone && !k.name.Matches(name, true) {
		return false
	}
	if k.hasTag {
		return k.tag.Matches(tag, tag != "")
	}
	return true
}

// TypeKind classifies a Value for matching by TypeKey when no specific native adapter type is
// involved; Native matches any value whose Native field is of the given Go type via a predicate.
type TypeKind int

const (
	// TypeAny matches any Kind.
	TypeAny TypeKind = iota
	TypeString
	TypeRawString
	TypeDecimal
	TypeHex
	TypeOctal
	TypeBinary
	TypeBool
	TypeNull
)

// TypeKey matches a Value's shape: either "any" or a specific Kind/native predicate.
type TypeKey struct {
	any  bool
	kind TypeKind
	fn   func(v *Value) bool
}

// AnyType matches any value shape.
func AnyType() TypeKey { return TypeKey{any: true} }

// OfKind matches values of the given Kind.
func OfKind(k TypeKind) TypeKey { return TypeKey{kind: k} }

// OfNative matches values whose Native payload satisfies fn (e.g. a type assertion).
func OfNative(fn func(v *Value) bool) TypeKey { return TypeKey{fn: fn} }

func (k TypeKey) matches(v *Value) bool {
	if k.any {
		return true
	}
	if k.fn != nil {
		return k.fn(v)
	}
	switch k.kind {
	case TypeAny:
		return true
	case TypeString:
		return v.Kind == KindString
	case TypeRawString:
		return v.Kind == KindRawString
	case TypeDecimal:
		return v.Kind == KindDecimal
	case TypeHex:
		return v.Kind == KindHex
	case TypeOctal:
		return v.Kind == KindOctal
	case TypeBinary:
		return v.Kind == KindBinary
	case TypeBool:
		return v.Kind == KindBool
	case TypeNull:
		return v.Kind == KindNull
	default:
		return false
	}
}

// ValueKey selects values by tag alone, or by (tag, shape) pair.
type ValueKey struct {
	tag      TagKey
	hasShape bool
	shape    TypeKey
}

// ByTag builds a ValueKey that matches on tag only.
func ByTag(tag TagKey) ValueKey { return ValueKey{tag: tag} }

// ByTagType builds a ValueKey that matches on both tag and shape.
func ByTagType(tag TagKey, shape TypeKey) ValueKey {
	return ValueKey{tag: tag, hasShape: true, shape: shape}
}

// MatchesKey reports whether v satisfies key.
func (v *Value) MatchesKey(key ValueKey) bool {
	if !key.tag.Matches(v.Tag, v.Tag != "") {
		return false
	}
	if key.hasShape {
		return key.shape.matches(v)
	}
	return true
}
