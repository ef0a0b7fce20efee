package sqlcraft

import (
	"reflect"
	"strings"
)

// condKind tags the Cond variants. The compiler dispatches on a closed set
// instead of inspecting runtime shapes; the duck-typed JSON forms are
// normalized into these variants at the API boundary (see queryspec.go).
type condKind uint8

const (
	condInvalid condKind = iota
	condLeaf
	condGroup
	condRaw
)

// Cond is one element of a boolean expression: a (column, operator, value)
// leaf, an AND/OR group of nested elements, or a raw SQL fragment. Construct
// values with C, And, Or and Raw; the zero value is skipped by the compiler.
type Cond struct {
	kind condKind

	// leaf
	column string
	op     string
	value  any

	// group
	combinator string
	children   []Cond

	// raw
	raw string
}

// C returns a leaf condition comparing column against value with the given
// operator. The column is resolved as a token, so registered "table.column"
// references are quoted and "?"/"?:name" values are substituted.
func C(column, op string, value any) Cond {
	return Cond{kind: condLeaf, column: column, op: op, value: value}
}

// And returns a group whose children are joined with AND and wrapped in
// parentheses.
func And(children ...Cond) Cond {
	return Cond{kind: condGroup, combinator: "AND", children: children}
}

// Or returns a group whose children are joined with OR and wrapped in
// parentheses.
func Or(children ...Cond) Cond {
	return Cond{kind: condGroup, combinator: "OR", children: children}
}

// Raw returns a condition inserted into the expression verbatim. No escaping
// or quoting is applied: this is a caller-owned trust boundary.
func Raw(sql string) Cond {
	return Cond{kind: condRaw, raw: sql}
}

// compileConds renders a condition list into fragments. The caller joins
// them: top-level WHERE/HAVING/ON lists with AND, groups with their own
// combinator. Leaves that degrade (malformed BETWEEN/IN values) and empty
// groups contribute nothing.
func (r *resolver) compileConds(conds []Cond) ([]string, error) {
	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		switch c.kind {
		case condLeaf:
			frag, err := r.compileLeaf(c)
			if err != nil {
				return nil, err
			}
			if frag != "" {
				parts = append(parts, frag)
			}
		case condGroup:
			sub, err := r.compileConds(c.children)
			if err != nil {
				return nil, err
			}
			if len(sub) > 0 {
				parts = append(parts, "("+strings.Join(sub, " "+c.combinator+" ")+")")
			}
		case condRaw:
			if c.raw != "" {
				parts = append(parts, c.raw)
			}
		default:
			// Unrecognized shapes are skipped silently.
		}
	}
	return parts, nil
}

// compileLeaf renders one (column, operator, value) comparison through the
// operator table. Operators are matched case-insensitively.
func (r *resolver) compileLeaf(c Cond) (string, error) {
	col := r.resolve(c.column, false)
	op := strings.ToLower(strings.TrimSpace(c.op))
	switch op {
	case "=", "<=", ">=", "<", ">", "!=", "<>":
		if op == "<>" {
			op = "!="
		}
		return col + " " + op + " " + r.resolve(c.value, false), nil
	case "is", "is not":
		return col + " " + strings.ToUpper(op) + " " + r.resolve(c.value, false), nil
	case "between":
		vs, ok := sequenceOf(c.value)
		if !ok || len(vs) != 2 {
			// Malformed bounds degrade to an empty fragment, they do
			// not error. Callers relying on the clause must validate.
			return "", nil
		}
		return col + " BETWEEN " + r.resolve(vs[0], true) + " AND " + r.resolve(vs[1], true), nil
	case "in", "not in":
		vs, ok := sequenceOf(c.value)
		if !ok {
			return "", nil
		}
		items := make([]string, len(vs))
		for i, v := range vs {
			items[i] = r.resolve(v, true)
		}
		kw := "IN"
		if op == "not in" {
			kw = "NOT IN"
		}
		return col + " " + kw + " (" + strings.Join(items, ", ") + ")", nil
	case "contains", "begins", "ends":
		// LIKE values are escaped directly and never consult the
		// parameter store, so "?" is not expanded here.
		_, s := classify(c.value)
		switch op {
		case "contains":
			return col + " LIKE '%" + Escape(s) + "%'", nil
		case "begins":
			return col + " LIKE '" + Escape(s) + "%'", nil
		default:
			return col + " LIKE '%" + Escape(s) + "'", nil
		}
	case "in set":
		return "FIND_IN_SET(" + col + ", " + r.resolve(c.value, true) + ")", nil
	default:
		return "", &UnknownOperatorError{Op: c.op}
	}
}

// sequenceOf reports whether v is a sequence (slice or array, but not a
// string or byte slice) and returns its elements.
func sequenceOf(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if vs, ok := v.([]any); ok {
		return vs, true
	}
	if _, ok := v.([]byte); ok {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	vs := make([]any, rv.Len())
	for i := range vs {
		vs[i] = rv.Index(i).Interface()
	}
	return vs, true
}
