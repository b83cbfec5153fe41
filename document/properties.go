package document

// Properties is a node's ordered property map: re-assigning an existing key overwrites its value
// in place but does not move its position, while a new key is appended at the end. This matches
// §4.2's "last-wins" rule and is grounded on sblinch/kdl-go's deterministic (order-preserving)
// Properties implementation (document/properties_deterministic.go), always enabled here since the
// spec requires iteration order to be observable (§3, §8 property 6).
type Properties struct {
	order []string
	vals  map[string]*Value
}

// NewProperties creates an empty, allocated Properties map.
func NewProperties() *Properties {
	return &Properties{vals: make(map[string]*Value)}
}

// Len returns the number of distinct property keys.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.order)
}

// Set assigns value to key. If key already exists, its value is replaced and its position in
// iteration order is unchanged; otherwise key is appended at the end.
func (p *Properties) Set(key string, value *Value) {
	if p.vals == nil {
		p.vals = make(map[string]*Value)
	}
	if _, exists := p.vals[key]; !exists {
		p.order = append(p.order, key)
	}
	p.vals[key] = value
}

// Get returns the value for key and whether it was present.
func (p *Properties) Get(key string) (*Value, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.vals[key]
	return v, ok
}

// Delete removes key from the map, if present.
func (p *Properties) Delete(key string) {
	if p == nil {
		return
	}
	if _, ok := p.vals[key]; !ok {
		return
	}
	delete(p.vals, key)
	for i, k := range p.order {
		if k == key {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// Keys returns the property keys in iteration (first-insertion) order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Each calls fn for every property in iteration order.
func (p *Properties) Each(fn func(key string, value *Value)) {
	if p == nil {
		return
	}
	for _, k := range p.order {
		fn(k, p.vals[k])
	}
}
