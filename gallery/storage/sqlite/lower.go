package sqlite

import (
	"fmt"
	"strings"
)

// foldLower replaces SQLite's built-in lower(), which only folds ASCII,
// so LOWER(col) agrees with the Go-side strings.ToLower of bound values.
// NULL stays NULL.
func foldLower(v any) any {
	switch s := v.(type) {
	case nil:
		return nil
	case string:
		return strings.ToLower(s)
	case []byte:
		return strings.ToLower(string(s))
	default:
		return strings.ToLower(fmt.Sprint(s))
	}
}
