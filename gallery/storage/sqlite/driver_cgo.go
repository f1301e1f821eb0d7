//go:build cgo_sqlite

package sqlite

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
)

// DefaultDriver is the database/sql driver name registered by this build.
const DefaultDriver = "sqlite3_gallery"

func init() {
	sql.Register(DefaultDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", foldLower, true)
		},
	})
}
