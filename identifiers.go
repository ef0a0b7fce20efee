package sqlcraft

// identifierSet tracks the table names and aliases introduced by the current
// statement. It gates identifier quoting: a dotted token is quoted only when
// its first segment is a known table or alias, so raw SQL expressions that
// happen to contain a dot pass through untouched.
//
// The set is append-only for the lifetime of one Builder. Registration is
// order-dependent: a condition compiled before its table is registered falls
// back to raw passthrough.
type identifierSet map[string]struct{}

// add registers names, skipping empty strings.
func (s identifierSet) add(names ...string) {
	for _, n := range names {
		if n != "" {
			s[n] = struct{}{}
		}
	}
}

// has reports whether name was registered.
func (s identifierSet) has(name string) bool {
	_, ok := s[name]
	return ok
}
