// Package sqlcraft renders SELECT, INSERT, UPDATE and DELETE statements as
// MySQL-dialect SQL text from a structured description of their clauses. It
// performs identifier quoting, literal escaping and parameter substitution so
// callers never hand-concatenate untrusted values into SQL, without adopting
// a full ORM.
//
// # Building statements
//
// Clause methods are chainable and may be called in any order before Build:
//
//	sql, err := sqlcraft.New().
//	    Select("user", "user.id", "user.first_name").
//	    Where(
//	        sqlcraft.C("user.active", "=", true),
//	        sqlcraft.Or(
//	            sqlcraft.C("user.first_name", "=", "?"),
//	            sqlcraft.C("user.last_name", "=", "?"),
//	        ),
//	    ).
//	    Params("John", "Doe").
//	    Build()
//
//	// SELECT `user`.`id`, `user`.`first_name` FROM `user`
//	// WHERE `user`.`active` = 1 AND (`user`.`first_name` = 'John' OR `user`.`last_name` = 'Doe')
//
// # Conditions
//
// Conditions form a tree: C leaves, And/Or groups of arbitrary depth (every
// group fully parenthesized), and Raw fragments inserted verbatim. The
// operator table covers the comparison operators, IS/IS NOT, BETWEEN, IN,
// NOT IN, the LIKE shorthands contains/begins/ends, and FIND_IN_SET via
// "in set". An unrecognized operator fails the build with
// UnknownOperatorError.
//
// # Identifiers
//
// A dotted token such as "user.first_name" is quoted to `user`.`first_name`
// only when its first segment is a table or alias the statement introduced;
// anything else passes through untouched. This keeps raw expressions like
// COUNT(user.id) usable while quoting real column references. "user.*" keeps
// its star bare, and "AS alias" forms are quoted alongside.
//
// # Parameters
//
// "?" consumes the next positional parameter; "?:name" resolves from the
// named map. Parameter values render as escaped literals, never as
// identifiers. Resolving "?" past the supplied count echoes the placeholder
// back instead of erroring, and an unknown "?:name" falls through to
// identifier handling.
//
// # Trust boundaries
//
// Raw conditions and OnDuplicateKeyUpdate text are inserted with no escaping.
// They are deliberate escape hatches for SQL the builder cannot express.
//
// # Wire form
//
// QuerySpec, FromJSON and FromYAML accept the same statement description as
// data, for callers that assemble queries outside Go.
//
// A Builder renders exactly one statement and must not be shared between
// goroutines; the positional parameter cursor is not reset between builds.
package sqlcraft
