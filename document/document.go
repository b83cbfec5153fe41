package document

import "github.com/sblinch/kdl-go/kdlerr"

// Document is the top-level container for a parsed or hand-built KDL document: an ordered
// sequence of child nodes plus an optional default PrintConfig used by Document.Print.
type Document struct {
	Nodes []*Node

	// PrintConfig, if non-nil, is used by Print/String when the caller supplies no explicit
	// config. See §6 ("stringifying a document uses the document's attached printConfig or the
	// library default").
	PrintConfig *PrintConfig
}

// New creates an empty Document.
func New() *Document {
	return &Document{Nodes: make([]*Node, 0, 8)}
}

// AddNode appends a node to the document.
func (d *Document) AddNode(n *Node) {
	d.Nodes = append(d.Nodes, n)
}

// Get returns the first node matching key, or a non-nil error if none match.
func (d *Document) Get(key NodeKey) (*Node, error) {
	for _, n := range d.Nodes {
		if n.MatchesKey(key) {
			return n, nil
		}
	}
	return nil, kdlerr.ErrKeyNotFound
}

// GetDefault returns the first node matching key, or def if none match.
func (d *Document) GetDefault(key NodeKey, def *Node) *Node {
	if n, err := d.Get(key); err == nil {
		return n
	}
	return def
}

// GetAll returns every node matching key, in document order.
func (d *Document) GetAll(key NodeKey) []*Node {
	var out []*Node
	for _, n := range d.Nodes {
		if n.MatchesKey(key) {
			out = append(out, n)
		}
	}
	return out
}
