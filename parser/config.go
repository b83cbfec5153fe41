package parser

import "github.com/sblinch/kdl-go/convert"

// ParseConfig controls how Parse/Parser.Parse interprets a document: which conversion hooks run,
// whether the built-in reserved tag table applies, and whether untagged values are unwrapped to
// their host-native Go equivalents.
type ParseConfig struct {
	// ValueConverters are consulted, in order, for every tagged value (§4.2 "Tag application").
	ValueConverters convert.ValueConverters
	// NodeConverters are consulted, in order, for every fully-assembled node (§4.2 "Node
	// conversion").
	NodeConverters convert.NodeConverters

	// NativeTaggedValues enables the built-in reserved tag table (§6) for any tagged value no
	// user ValueConverter claimed.
	NativeTaggedValues bool
	// NativeUntaggedValues unwraps every untagged value to its plain Go equivalent (string,
	// *big.Int/*big.Float, bool, nil) instead of leaving it wrapped only in the document.Value
	// shape.
	NativeUntaggedValues bool

	// Relaxed opts into non-compliant grammar extensions; the zero value is strict KDL 1.0.0.
	Relaxed Relaxed

	// PreserveComments captures each node's immediately preceding/following comment text into
	// document.Node.Comment.
	PreserveComments bool
}

// DefaultParseConfig is used when Parse/Parser.Parse is given a nil config: strict grammar,
// built-in tags enabled, values left wrapped, no comment capture.
var DefaultParseConfig = ParseConfig{
	NativeTaggedValues: true,
}

func (cfg *ParseConfig) orDefault() *ParseConfig {
	if cfg != nil {
		return cfg
	}
	return &DefaultParseConfig
}
