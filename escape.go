package sqlcraft

import "strings"

// Escape replaces the characters MySQL requires escaping inside single-quoted
// string literals with their backslash forms. All other characters pass
// through unchanged. It is applied exactly once per literal value; all value
// rendering is centralized in the resolver so callers never escape twice.
func Escape(s string) string {
	if !strings.ContainsAny(s, "\x00\b\t\n\r\x1a\"'\\") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	for _, r := range s {
		switch r {
		case '\x00':
			b.WriteString(`\0`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\x1a':
			b.WriteString(`\Z`)
		case '"':
			b.WriteString(`\"`)
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
