package planner

import (
	"strconv"
	"strings"
)

// escapeLike escapes %, _, and \ so the value can be embedded in a LIKE
// pattern used with "ESCAPE '\'".
func escapeLike(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 8)
	for _, r := range value {
		switch r {
		case '%', '_', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseYear accepts an optionally signed base-10 integer.
func parseYear(s string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
