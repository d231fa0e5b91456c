// Package database connects stowgate to its optional relational row store.
//
// # Supported Backends
//
//   - PostgreSQL: pgx connection pool
//   - SQLite: modernc.org/sqlite, suitable for development and single node use
//
// # Usage
//
//	rows, cleanup, err := database.Connect(ctx, database.Config{
//	    Type: "sqlite",
//	    DSN:  "stowgate.db",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cleanup()
//
// The row store is only queried; no migrations are run. A Type of "none"
// returns a nil RowStore, which the diagnostics service treats as an empty
// database.
//
// # Subpackages
//
//   - database/postgres: PostgreSQL implementation using pgx
//   - database/sqlite: SQLite implementation using modernc.org/sqlite
package database
