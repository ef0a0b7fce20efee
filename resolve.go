package sqlcraft

import (
	"fmt"
	"regexp"
	"strings"
)

// valueKind is the closed classification a token resolves through. Every
// value the builder renders is first classified, which keeps the resolver a
// total function instead of scattered type switches.
type valueKind uint8

const (
	kindNull valueKind = iota
	kindBool
	kindNumber
	kindString
	kindOther // coerced through fmt (fmt.Stringer, driver-specific types)
)

// classify maps an arbitrary value to its kind and textual base form.
// Booleans render as 1/0; numbers keep their Go formatting.
func classify(v any) (valueKind, string) {
	switch x := v.(type) {
	case nil:
		return kindNull, ""
	case bool:
		if x {
			return kindBool, "1"
		}
		return kindBool, "0"
	case string:
		return kindString, x
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return kindNumber, fmt.Sprint(x)
	case fmt.Stringer:
		return kindOther, x.String()
	default:
		return kindOther, fmt.Sprint(x)
	}
}

var (
	// identRe matches qualified "table.column" and "table.*" references.
	identRe = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\.([A-Za-z_][A-Za-z0-9_]*|\*)`)
	// aliasRe matches "AS alias" following a quoted identifier.
	aliasRe = regexp.MustCompile(`\bAS\s+([A-Za-z_][A-Za-z0-9_]*)`)
)

// resolver renders tokens into SQL text. It is the only place values are
// escaped or quoted, and carries the per-build state it needs explicitly: the
// registered identifiers and the parameter store with its positional cursor.
type resolver struct {
	idents identifierSet
	params *paramStore
}

// resolve renders a token from a clause position (condition columns and
// values, select/group/order lists). Decision order, first match wins:
// NULL, boolean, number, positional placeholder, named placeholder,
// qualified identifier, raw passthrough. quote forces single-quoting of
// numbers and backtick-wrapping of bare unmatched tokens; it is set in
// GROUP BY, ORDER BY and IN/BETWEEN positions.
func (r *resolver) resolve(v any, quote bool) string {
	kind, s := classify(v)
	switch kind {
	case kindNull:
		return "NULL"
	case kindBool:
		return s
	case kindNumber:
		if quote {
			return "'" + s + "'"
		}
		return s
	case kindString:
		return r.resolveString(s, quote)
	default:
		return "'" + Escape(s) + "'"
	}
}

// resolveString handles the string token path: placeholder substitution
// first (a placeholder is syntactically indistinguishable from a short
// identifier, so it must win), then identifier resolution.
func (r *resolver) resolveString(s string, quote bool) string {
	if s == "?" {
		v, ok := r.params.next()
		if !ok {
			// Exhausted positional parameters: the unresolved
			// placeholder is echoed back verbatim.
			return s
		}
		return r.resolveValue(v, quote)
	}
	if name, found := strings.CutPrefix(s, "?:"); found {
		if v, ok := r.params.byName(name); ok {
			return r.resolveValue(v, quote)
		}
		// Unknown name: fall through to identifier handling.
	}
	return r.identify(s, quote)
}

// identify quotes the qualified identifiers inside s. Each "first.second"
// segment is backtick-quoted only when the first segment is a registered
// table or alias; a lone "*" stays bare. When any segment matched, trailing
// "AS alias" forms are quoted as well. Unmatched tokens are wrapped whole
// when quote is set and the token contains no space, and otherwise pass
// through byte-for-byte.
func (r *resolver) identify(s string, quote bool) string {
	matched := false
	out := identRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := identRe.FindStringSubmatch(m)
		if !r.idents.has(sub[1]) {
			return m
		}
		matched = true
		if sub[2] == "*" {
			return "`" + sub[1] + "`.*"
		}
		return "`" + sub[1] + "`.`" + sub[2] + "`"
	})
	if matched {
		return aliasRe.ReplaceAllString(out, "AS `$1`")
	}
	if quote && !strings.Contains(s, " ") {
		return "`" + s + "`"
	}
	return s
}

// resolveData renders an INSERT/UPDATE value: placeholder tokens are
// expanded, everything else renders through resolveValue. Identifier
// scanning never applies to data positions.
func (r *resolver) resolveData(v any, quote bool) string {
	if s, ok := v.(string); ok {
		if s == "?" {
			pv, ok := r.params.next()
			if !ok {
				return s
			}
			return r.resolveValue(pv, quote)
		}
		if name, found := strings.CutPrefix(s, "?:"); found {
			if pv, ok := r.params.byName(name); ok {
				return r.resolveValue(pv, quote)
			}
		}
	}
	return r.resolveValue(v, quote)
}

// resolveValue renders a plain value with identifier scanning bypassed:
// strings always become single-quoted escaped literals. This path is used
// for placeholder substitutions and for INSERT/UPDATE values, where a string
// is data, never a column reference.
func (r *resolver) resolveValue(v any, quote bool) string {
	kind, s := classify(v)
	switch kind {
	case kindNull:
		return "NULL"
	case kindBool:
		return s
	case kindNumber:
		if quote {
			return "'" + s + "'"
		}
		return s
	default:
		return "'" + Escape(s) + "'"
	}
}
