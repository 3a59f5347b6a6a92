package database

import (
	"database/sql"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// DriverName is the sqlite3 driver carrying the SQL functions the repositories
// rely on.
const DriverName = "sqlite3_bookapi"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: registerFunctions,
	})
}

// registerFunctions adds casefold(text), a lower() that folds non-ASCII
// letters too. sqlite's built-in lower() only handles ASCII.
func registerFunctions(conn *sqlite3.SQLiteConn) error {
	return conn.RegisterFunc("casefold", strings.ToLower, true)
}
