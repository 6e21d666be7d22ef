//go:build !sqlite_cgo

package sqlstore

// Pure Go SQLite, no C toolchain needed. Build with -tags sqlite_cgo to use
// github.com/mattn/go-sqlite3 instead.

import (
	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"
