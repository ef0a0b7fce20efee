package sqlcraft

import (
	"errors"
	"fmt"
)

// ConfigError reports a statement that is structurally unbuildable: a missing
// table, an empty column list, an unknown join kind. It is returned before
// any SQL text is produced.
type ConfigError struct {
	Op     string // clause that was misconfigured, e.g. "select", "join"
	Reason string
}

// Error returns the error string.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("sqlcraft: %s: %s", e.Op, e.Reason)
}

// newConfigError returns a new ConfigError for the given clause.
func newConfigError(op, reason string) *ConfigError {
	return &ConfigError{Op: op, Reason: reason}
}

// IsConfig returns true if the error is a ConfigError.
func IsConfig(err error) bool {
	if err == nil {
		return false
	}
	var e *ConfigError
	return errors.As(err, &e)
}

// UnknownOperatorError reports a condition leaf whose operator is not in the
// operator table. Compilation of the offending condition aborts the whole
// build; malformed BETWEEN/IN values, by contrast, degrade silently.
type UnknownOperatorError struct {
	Op string // the offending operator token, as given by the caller
}

// Error returns the error string.
func (e *UnknownOperatorError) Error() string {
	return fmt.Sprintf("sqlcraft: unknown operator %q", e.Op)
}

// IsUnknownOperator returns true if the error is an UnknownOperatorError.
func IsUnknownOperator(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownOperatorError
	return errors.As(err, &e)
}
