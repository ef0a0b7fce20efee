package sqlcraft

import (
	"sort"
	"strconv"
	"strings"
)

// stmtKind identifies the statement clause a Builder renders.
type stmtKind uint8

const (
	stmtNone stmtKind = iota
	stmtSelect
	stmtInsert
	stmtUpdate
	stmtDelete
)

// joinKinds is the allow-list of JOIN kinds, normalized upper-case.
var joinKinds = map[string]bool{
	"INNER": true, "LEFT": true, "RIGHT": true,
	"LEFT OUTER": true, "RIGHT OUTER": true, "FULL": true, "CROSS": true,
}

type joinClause struct {
	kind  string
	table string
	alias string
	on    []Cond
}

type orderClause struct {
	column string
	dir    string
}

// Builder assembles one SQL statement. Clause methods are chainable and may
// be called in any order before Build; each table or alias they mention is
// registered so that qualified column references resolve to quoted
// identifiers.
//
// A Builder is a single unit of mutable state: it must not be used from
// multiple goroutines, and it renders exactly one statement. The positional
// parameter cursor is not reset between Build calls, so a second independent
// statement needs a fresh Builder.
type Builder struct {
	stmt    stmtKind
	table   string
	alias   string
	columns []string
	rows    []map[string]any
	set     map[string]any
	joins   []joinClause
	where   []Cond
	having  []Cond
	groups  []string
	orders  []orderClause

	limit     int
	offset    int
	hasLimit  bool
	hasOffset bool

	dupKey string

	idents identifierSet
	params *paramStore
	errs   []error
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{
		idents: identifierSet{},
		params: newParamStore(),
	}
}

// fail records a configuration error. The first recorded error aborts Build
// before any SQL is produced.
func (b *Builder) fail(op, reason string) {
	b.errs = append(b.errs, newConfigError(op, reason))
}

func (b *Builder) setStatement(kind stmtKind, op, table string) {
	if b.stmt != stmtNone {
		b.fail(op, "statement clause already configured")
		return
	}
	if table == "" {
		b.fail(op, "table is required")
		return
	}
	b.stmt = kind
	b.table = table
	b.idents.add(table)
}

// Select configures a SELECT statement over table.
func (b *Builder) Select(table string, columns ...string) *Builder {
	return b.SelectAs(table, "", columns...)
}

// SelectAs configures a SELECT statement over table with an alias. Both the
// table name and the alias are registered for identifier resolution.
func (b *Builder) SelectAs(table, alias string, columns ...string) *Builder {
	b.setStatement(stmtSelect, "select", table)
	b.alias = alias
	b.idents.add(alias)
	if len(columns) == 0 {
		b.fail("select", "at least one column is required")
	}
	b.columns = columns
	return b
}

// Insert configures an INSERT statement. The column set is taken from the
// first row and sorted, so output is deterministic; columns absent from a
// later row render as NULL.
func (b *Builder) Insert(table string, rows ...map[string]any) *Builder {
	b.setStatement(stmtInsert, "insert", table)
	if len(rows) == 0 || len(rows[0]) == 0 {
		b.fail("insert", "at least one non-empty row is required")
	}
	b.rows = rows
	return b
}

// Update configures an UPDATE statement with the given SET mapping. Columns
// render in sorted order.
func (b *Builder) Update(table string, set map[string]any) *Builder {
	b.setStatement(stmtUpdate, "update", table)
	if len(set) == 0 {
		b.fail("update", "set mapping must not be empty")
	}
	b.set = set
	return b
}

// Delete configures a DELETE statement.
func (b *Builder) Delete(table string) *Builder {
	b.setStatement(stmtDelete, "delete", table)
	return b
}

// Join adds a JOIN clause. kind is one of INNER, LEFT, RIGHT, LEFT OUTER,
// RIGHT OUTER, FULL or CROSS (a trailing " JOIN" is tolerated). The joined
// table and its alias are registered before any condition compiles.
func (b *Builder) Join(kind, table, alias string, on ...Cond) *Builder {
	k := strings.ToUpper(strings.TrimSpace(kind))
	k = strings.TrimSuffix(k, " JOIN")
	if !joinKinds[k] {
		b.fail("join", "unknown join kind "+strings.TrimSpace(kind))
		return b
	}
	if table == "" {
		b.fail("join", "table is required")
		return b
	}
	b.idents.add(table, alias)
	b.joins = append(b.joins, joinClause{kind: k, table: table, alias: alias, on: on})
	return b
}

// Where appends conditions to the WHERE clause. Conditions accumulated over
// multiple calls are joined with AND.
func (b *Builder) Where(conds ...Cond) *Builder {
	b.where = append(b.where, conds...)
	return b
}

// Having appends conditions to the HAVING clause.
func (b *Builder) Having(conds ...Cond) *Builder {
	b.having = append(b.having, conds...)
	return b
}

// GroupBy appends GROUP BY columns.
func (b *Builder) GroupBy(columns ...string) *Builder {
	b.groups = append(b.groups, columns...)
	return b
}

// OrderBy appends an ORDER BY column. dir is ASC or DESC, case-insensitive;
// the empty string defaults to ASC.
func (b *Builder) OrderBy(column, dir string) *Builder {
	d := strings.ToUpper(strings.TrimSpace(dir))
	switch d {
	case "":
		d = "ASC"
	case "ASC", "DESC":
	default:
		b.fail("order by", "direction must be ASC or DESC, got "+dir)
		return b
	}
	b.orders = append(b.orders, orderClause{column: column, dir: d})
	return b
}

// Limit sets the LIMIT row count.
func (b *Builder) Limit(n int) *Builder {
	if n < 0 {
		b.fail("limit", "row count must not be negative")
		return b
	}
	b.limit = n
	b.hasLimit = true
	return b
}

// Offset sets the LIMIT offset. An offset requires a limit.
func (b *Builder) Offset(n int) *Builder {
	if n < 0 {
		b.fail("offset", "offset must not be negative")
		return b
	}
	b.offset = n
	b.hasOffset = true
	return b
}

// Params appends positional parameter values, consumed left-to-right as "?"
// placeholders resolve.
func (b *Builder) Params(values ...any) *Builder {
	b.params.add(values...)
	return b
}

// NamedParams merges named parameter values for "?:name" placeholders.
// Later values overwrite earlier ones under the same name.
func (b *Builder) NamedParams(values map[string]any) *Builder {
	b.params.merge(values)
	return b
}

// OnDuplicateKeyUpdate appends a raw ON DUPLICATE KEY UPDATE clause to an
// INSERT statement. The text is inserted verbatim with no escaping: a
// caller-owned trust boundary, like Raw conditions.
func (b *Builder) OnDuplicateKeyUpdate(raw string) *Builder {
	b.dupKey = raw
	return b
}

// Build renders the statement. Configuration errors recorded by clause
// methods and unknown operators abort the build with no text produced.
func (b *Builder) Build() (string, error) {
	if len(b.errs) > 0 {
		return "", b.errs[0]
	}
	if b.hasOffset && !b.hasLimit {
		return "", newConfigError("offset", "offset requires a limit")
	}
	r := &resolver{idents: b.idents, params: b.params}
	switch b.stmt {
	case stmtSelect:
		return b.buildSelect(r)
	case stmtInsert:
		return b.buildInsert(r)
	case stmtUpdate:
		return b.buildUpdate(r)
	case stmtDelete:
		return b.buildDelete(r)
	default:
		return "", newConfigError("build", "no statement clause configured")
	}
}

// tableRef renders the statement's target table, with its alias if any.
func (b *Builder) tableRef() string {
	ref := "`" + b.table + "`"
	if b.alias != "" {
		ref += " AS `" + b.alias + "`"
	}
	return ref
}

func (b *Builder) buildSelect(r *resolver) (string, error) {
	cols := make([]string, len(b.columns))
	for i, c := range b.columns {
		cols[i] = r.resolve(c, false)
	}
	parts := []string{"SELECT " + strings.Join(cols, ", "), "FROM " + b.tableRef()}
	joins, err := b.buildJoins(r)
	if err != nil {
		return "", err
	}
	parts = append(parts, joins...)
	if clause, err := b.buildBool(r, "WHERE", b.where); err != nil {
		return "", err
	} else if clause != "" {
		parts = append(parts, clause)
	}
	if len(b.groups) > 0 {
		gs := make([]string, len(b.groups))
		for i, g := range b.groups {
			gs[i] = r.resolve(g, true)
		}
		parts = append(parts, "GROUP BY "+strings.Join(gs, ", "))
	}
	if clause, err := b.buildBool(r, "HAVING", b.having); err != nil {
		return "", err
	} else if clause != "" {
		parts = append(parts, clause)
	}
	if clause := b.buildOrder(r); clause != "" {
		parts = append(parts, clause)
	}
	if clause := b.buildLimit(); clause != "" {
		parts = append(parts, clause)
	}
	return strings.Join(parts, " "), nil
}

func (b *Builder) buildInsert(r *resolver) (string, error) {
	columns := make([]string, 0, len(b.rows[0]))
	for c := range b.rows[0] {
		columns = append(columns, c)
	}
	sort.Strings(columns)

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = "`" + c + "`"
	}
	tuples := make([]string, len(b.rows))
	for i, row := range b.rows {
		values := make([]string, len(columns))
		for j, c := range columns {
			values[j] = r.resolveData(row[c], false)
		}
		tuples[i] = "(" + strings.Join(values, ", ") + ")"
	}

	stmt := "INSERT INTO `" + b.table + "` (" + strings.Join(quoted, ", ") + ") VALUES " + strings.Join(tuples, ", ")
	if b.dupKey != "" {
		stmt += " ON DUPLICATE KEY UPDATE " + b.dupKey
	}
	return stmt, nil
}

func (b *Builder) buildUpdate(r *resolver) (string, error) {
	if b.dupKey != "" {
		return "", newConfigError("on duplicate key update", "requires an insert statement")
	}
	columns := make([]string, 0, len(b.set))
	for c := range b.set {
		columns = append(columns, c)
	}
	sort.Strings(columns)

	assignments := make([]string, len(columns))
	for i, c := range columns {
		assignments[i] = r.resolve(c, true) + " = " + r.resolveData(b.set[c], false)
	}
	parts := []string{"UPDATE " + b.tableRef(), "SET " + strings.Join(assignments, ", ")}
	joins, err := b.buildJoins(r)
	if err != nil {
		return "", err
	}
	// MySQL places UPDATE joins before SET; keep that order.
	if len(joins) > 0 {
		parts = append(parts[:1], append(joins, parts[1:]...)...)
	}
	if clause, err := b.buildBool(r, "WHERE", b.where); err != nil {
		return "", err
	} else if clause != "" {
		parts = append(parts, clause)
	}
	if clause := b.buildOrder(r); clause != "" {
		parts = append(parts, clause)
	}
	if clause := b.buildLimit(); clause != "" {
		parts = append(parts, clause)
	}
	return strings.Join(parts, " "), nil
}

func (b *Builder) buildDelete(r *resolver) (string, error) {
	if len(b.joins) > 0 {
		return "", newConfigError("join", "joins are not supported on delete statements")
	}
	if b.dupKey != "" {
		return "", newConfigError("on duplicate key update", "requires an insert statement")
	}
	parts := []string{"DELETE FROM " + b.tableRef()}
	if clause, err := b.buildBool(r, "WHERE", b.where); err != nil {
		return "", err
	} else if clause != "" {
		parts = append(parts, clause)
	}
	if clause := b.buildOrder(r); clause != "" {
		parts = append(parts, clause)
	}
	if clause := b.buildLimit(); clause != "" {
		parts = append(parts, clause)
	}
	return strings.Join(parts, " "), nil
}

func (b *Builder) buildJoins(r *resolver) ([]string, error) {
	clauses := make([]string, 0, len(b.joins))
	for _, j := range b.joins {
		ref := "`" + j.table + "`"
		if j.alias != "" {
			ref += " AS `" + j.alias + "`"
		}
		clause := j.kind + " JOIN " + ref
		frags, err := r.compileConds(j.on)
		if err != nil {
			return nil, err
		}
		if len(frags) > 0 {
			clause += " ON " + strings.Join(frags, " AND ")
		}
		clauses = append(clauses, clause)
	}
	return clauses, nil
}

// buildBool compiles a condition list into a keyword-prefixed boolean clause.
// Top-level conditions are joined with AND.
func (b *Builder) buildBool(r *resolver, keyword string, conds []Cond) (string, error) {
	if len(conds) == 0 {
		return "", nil
	}
	frags, err := r.compileConds(conds)
	if err != nil {
		return "", err
	}
	if len(frags) == 0 {
		return "", nil
	}
	return keyword + " " + strings.Join(frags, " AND "), nil
}

func (b *Builder) buildOrder(r *resolver) string {
	if len(b.orders) == 0 {
		return ""
	}
	parts := make([]string, len(b.orders))
	for i, o := range b.orders {
		parts[i] = r.resolve(o.column, true) + " " + o.dir
	}
	return "ORDER BY " + strings.Join(parts, ", ")
}

func (b *Builder) buildLimit() string {
	switch {
	case b.hasLimit && b.hasOffset:
		return "LIMIT " + strconv.Itoa(b.offset) + ", " + strconv.Itoa(b.limit)
	case b.hasLimit:
		return "LIMIT " + strconv.Itoa(b.limit)
	default:
		return ""
	}
}
