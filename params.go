package sqlcraft

// paramStore holds the values substituted for placeholder tokens during a
// single build: an ordered positional sequence consumed left-to-right by a
// cursor, and a name-keyed map for "?:name" references.
//
// The cursor is never reset. A store belongs to exactly one Builder and is
// consumed by exactly one Build call; sharing it between two compilations
// corrupts the positional order.
type paramStore struct {
	positional []any
	named      map[string]any
	cursor     int
}

func newParamStore() *paramStore {
	return &paramStore{named: make(map[string]any)}
}

// add appends values to the positional sequence.
func (p *paramStore) add(values ...any) {
	p.positional = append(p.positional, values...)
}

// merge adds named values, later values overwriting earlier ones.
func (p *paramStore) merge(values map[string]any) {
	for k, v := range values {
		p.named[k] = v
	}
}

// next returns the next positional value and advances the cursor.
// It reports false when the positional values are exhausted.
func (p *paramStore) next() (any, bool) {
	if p.cursor >= len(p.positional) {
		return nil, false
	}
	v := p.positional[p.cursor]
	p.cursor++
	return v, true
}

// byName returns the value registered under name, if any.
func (p *paramStore) byName(name string) (any, bool) {
	v, ok := p.named[name]
	return v, ok
}
