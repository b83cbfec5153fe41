package document

// Comment holds the raw comment text immediately preceding or following a node, captured when
// ParseConfig.PreserveComments is enabled. This is outside spec.md's data model (see
// SPEC_FULL.md §3 EXPANSION) and is grounded on sblinch/kdl-go's document.Comment.
type Comment struct {
	Before string
	After  string
}

// Node is a single named record in a KDL document: an optional type tag, a mandatory name, an
// ordered list of positional arguments, an ordered last-wins property map, and an ordered list of
// child nodes.
type Node struct {
	Tag      string
	Name     string
	Args     []*Value
	Props    *Properties
	Children []*Node
	Comment  *Comment
}

// NewNode creates an empty Node with the given name.
func NewNode(name string) *Node {
	return &Node{Name: name, Props: NewProperties()}
}

// AddArg appends an argument to the node.
func (n *Node) AddArg(v *Value) {
	n.Args = append(n.Args, v)
}

// SetProp assigns a property, applying last-wins semantics via Properties.Set.
func (n *Node) SetProp(key string, v *Value) {
	if n.Props == nil {
		n.Props = NewProperties()
	}
	n.Props.Set(key, v)
}

// AddChild appends a child node.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// GetArgs returns the node's arguments whose value matches key, in order.
func (n *Node) GetArgs(key ValueKey) []*Value {
	var out []*Value
	for _, v := range n.Args {
		if v.MatchesKey(key) {
			out = append(out, v)
		}
	}
	return out
}

// GetProps returns the node's properties whose value matches key, keyed by property name, in
// iteration order traversal (callers wanting order should use Props directly).
func (n *Node) GetProps(key ValueKey) map[string]*Value {
	out := make(map[string]*Value)
	if n.Props == nil {
		return out
	}
	n.Props.Each(func(k string, v *Value) {
		if v.MatchesKey(key) {
			out[k] = v
		}
	})
	return out
}

// MatchesKey reports whether this node matches nodeKey (§6 matcher DSL).
func (n *Node) MatchesKey(key NodeKey) bool {
	return key.Matches(n.Tag, n.Name)
}
