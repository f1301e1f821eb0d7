//go:build !cgo_sqlite

package sqlite

import (
	"database/sql/driver"

	"modernc.org/sqlite"
)

// DefaultDriver is the database/sql driver name registered by this build.
const DefaultDriver = "sqlite"

func init() {
	// Applied to every connection the driver opens; overrides the built-in lower(X).
	sqlite.MustRegisterDeterministicScalarFunction("lower", 1,
		func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			return foldLower(args[0]), nil
		})
}
