package sqlcraft

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// QuerySpec is a language-neutral statement description, decoded from JSON or
// YAML. Exactly one of Select, Insert, Update or Delete must be set.
//
// Conditions use the loose wire shapes: a 3-element array is a leaf, an
// object with a single "and"/"or" key is a group, a string is a raw fragment,
// and anything else is skipped silently.
type QuerySpec struct {
	Select *SelectSpec `json:"select,omitempty" yaml:"select,omitempty"`
	Insert *InsertSpec `json:"insert,omitempty" yaml:"insert,omitempty"`
	Update *UpdateSpec `json:"update,omitempty" yaml:"update,omitempty"`
	Delete *TableSpec  `json:"delete,omitempty" yaml:"delete,omitempty"`

	Joins  []JoinSpec `json:"joins,omitempty" yaml:"joins,omitempty"`
	Where  []any      `json:"where,omitempty" yaml:"where,omitempty"`
	Having []any      `json:"having,omitempty" yaml:"having,omitempty"`
	Group  []string   `json:"group,omitempty" yaml:"group,omitempty"`
	Order  []any      `json:"order,omitempty" yaml:"order,omitempty"`
	Limit  *int       `json:"limit,omitempty" yaml:"limit,omitempty"`
	Offset *int       `json:"offset,omitempty" yaml:"offset,omitempty"`

	// Params is either an array (positional) or an object (named).
	Params any `json:"params,omitempty" yaml:"params,omitempty"`

	OnDuplicateKeyUpdate string `json:"on_duplicate_key_update,omitempty" yaml:"on_duplicate_key_update,omitempty"`
}

// TableSpec names a statement's target table with an optional alias.
type TableSpec struct {
	Table string `json:"table" yaml:"table"`
	Alias string `json:"alias,omitempty" yaml:"alias,omitempty"`
}

// SelectSpec describes a SELECT clause.
type SelectSpec struct {
	TableSpec `yaml:",inline"`
	Columns   []string `json:"columns" yaml:"columns"`
}

// InsertSpec describes an INSERT clause.
type InsertSpec struct {
	Table string           `json:"table" yaml:"table"`
	Rows  []map[string]any `json:"rows" yaml:"rows"`
}

// UpdateSpec describes an UPDATE clause.
type UpdateSpec struct {
	TableSpec `yaml:",inline"`
	Set       map[string]any `json:"set" yaml:"set"`
}

// JoinSpec describes a JOIN clause.
type JoinSpec struct {
	Kind  string `json:"kind" yaml:"kind"`
	Table string `json:"table" yaml:"table"`
	Alias string `json:"alias,omitempty" yaml:"alias,omitempty"`
	On    []any  `json:"on,omitempty" yaml:"on,omitempty"`
}

// FromJSON decodes a QuerySpec from JSON and returns the populated Builder.
func FromJSON(data []byte) (*Builder, error) {
	var qs QuerySpec
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, err
	}
	return qs.Builder()
}

// FromYAML decodes a QuerySpec from YAML and returns the populated Builder.
func FromYAML(data []byte) (*Builder, error) {
	var qs QuerySpec
	if err := yaml.Unmarshal(data, &qs); err != nil {
		return nil, err
	}
	return qs.Builder()
}

// Builder converts the description into a Builder, registering clauses in a fixed
// order so every table and alias is known before conditions compile.
func (qs *QuerySpec) Builder() (*Builder, error) {
	b := New()
	statements := 0
	if qs.Select != nil {
		statements++
		b.SelectAs(qs.Select.Table, qs.Select.Alias, qs.Select.Columns...)
	}
	if qs.Insert != nil {
		statements++
		b.Insert(qs.Insert.Table, qs.Insert.Rows...)
	}
	if qs.Update != nil {
		statements++
		b.Update(qs.Update.Table, qs.Update.Set)
		b.alias = qs.Update.Alias
		b.idents.add(qs.Update.Alias)
	}
	if qs.Delete != nil {
		statements++
		b.Delete(qs.Delete.Table)
		b.alias = qs.Delete.Alias
		b.idents.add(qs.Delete.Alias)
	}
	if statements != 1 {
		return nil, newConfigError("statement", "exactly one of select/insert/update/delete is required")
	}
	for _, j := range qs.Joins {
		b.Join(j.Kind, j.Table, j.Alias, normalizeConds(j.On)...)
	}
	b.Where(normalizeConds(qs.Where)...)
	b.Having(normalizeConds(qs.Having)...)
	b.GroupBy(qs.Group...)
	for _, o := range qs.Order {
		col, dir, ok := normalizeOrder(o)
		if ok {
			b.OrderBy(col, dir)
		}
	}
	if qs.Limit != nil {
		b.Limit(*qs.Limit)
	}
	if qs.Offset != nil {
		b.Offset(*qs.Offset)
	}
	switch p := qs.Params.(type) {
	case nil:
	case []any:
		b.Params(p...)
	case map[string]any:
		b.NamedParams(p)
	default:
		return nil, newConfigError("params", "must be an array or an object")
	}
	if qs.OnDuplicateKeyUpdate != "" {
		b.OnDuplicateKeyUpdate(qs.OnDuplicateKeyUpdate)
	}
	return b, nil
}

// normalizeConds converts the wire shapes into Cond values, skipping
// unrecognized items.
func normalizeConds(items []any) []Cond {
	conds := make([]Cond, 0, len(items))
	for _, it := range items {
		if c, ok := normalizeCond(it); ok {
			conds = append(conds, c)
		}
	}
	return conds
}

func normalizeCond(v any) (Cond, bool) {
	switch x := v.(type) {
	case string:
		return Raw(x), true
	case []any:
		if len(x) != 3 {
			return Cond{}, false
		}
		column, ok := x[0].(string)
		if !ok {
			return Cond{}, false
		}
		op, ok := x[1].(string)
		if !ok {
			return Cond{}, false
		}
		return C(column, op, x[2]), true
	case map[string]any:
		if len(x) != 1 {
			return Cond{}, false
		}
		for key, children := range x {
			list, ok := children.([]any)
			if !ok {
				return Cond{}, false
			}
			switch strings.ToUpper(key) {
			case "AND":
				return And(normalizeConds(list)...), true
			case "OR":
				return Or(normalizeConds(list)...), true
			}
		}
		return Cond{}, false
	default:
		return Cond{}, false
	}
}

// normalizeOrder accepts "column" strings and {column, dir} objects.
func normalizeOrder(v any) (column, dir string, ok bool) {
	switch x := v.(type) {
	case string:
		return x, "", x != ""
	case map[string]any:
		column, _ = x["column"].(string)
		dir, _ = x["dir"].(string)
		return column, dir, column != ""
	default:
		return "", "", false
	}
}
