package convert

import "github.com/sblinch/kdl-go/document"

// ValueConverterFunc attempts to convert a freshly-parsed value. It returns ok=false to signal
// "not applicable, try the next hook"; a non-nil error aborts the parse. Use frag.Error to build
// that error so it carries the value's source position.
type ValueConverterFunc func(v *document.Value, frag ParseFragment) (result interface{}, ok bool, err error)

// ValueConverter pairs a ValueConverterFunc with the ValueKey that selects which tagged values it
// is offered.
type ValueConverter struct {
	Key document.ValueKey
	Fn  ValueConverterFunc
}

// NodeConverterFunc attempts to convert a fully-assembled node. It returns ok=false to signal "not
// applicable"; a non-nil error aborts the parse.
type NodeConverterFunc func(n *document.Node) (result *document.Node, ok bool, err error)

// NodeConverter pairs a NodeConverterFunc with the NodeKey that selects which nodes it is offered.
type NodeConverter struct {
	Key document.NodeKey
	Fn  NodeConverterFunc
}

// ValueConverters is an ordered list of value hooks, tried in order until one reports ok=true or
// returns an error.
type ValueConverters []ValueConverter

// Apply runs the chain against v, returning the first hook's result with ok=true, or ok=false if
// none of the entries' keys matched v or all matching entries declined.
func (cs ValueConverters) Apply(v *document.Value, frag ParseFragment) (result interface{}, ok bool, err error) {
	for _, c := range cs {
		if !v.MatchesKey(c.Key) {
			continue
		}
		result, ok, err = c.Fn(v, frag)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return result, true, nil
		}
	}
	return nil, false, nil
}

// NodeConverters is an ordered list of node hooks, tried in order until one reports ok=true or
// returns an error.
type NodeConverters []NodeConverter

// Apply runs the chain against n, returning the first hook's result with ok=true, or ok=false if
// none of the entries' keys matched n or all matching entries declined.
func (cs NodeConverters) Apply(n *document.Node) (result *document.Node, ok bool, err error) {
	for _, c := range cs {
		if !n.MatchesKey(c.Key) {
			continue
		}
		result, ok, err = c.Fn(n)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return result, true, nil
		}
	}
	return nil, false, nil
}
