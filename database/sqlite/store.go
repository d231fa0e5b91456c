// Package sqlite implements stowgate.RowStore on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sagarc03/stowgate"

	_ "modernc.org/sqlite" // SQLite driver
)

// Store runs queries against a SQLite database.
type Store struct {
	db *sql.DB
}

var _ stowgate.RowStore = (*Store)(nil)

// Open opens and pings the database at dsn. A single connection is kept so
// that ":memory:" databases behave as one database.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return New(db), nil
}

// New wraps an open database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Dialect() stowgate.Dialect {
	return stowgate.DialectSQLite
}

// Query runs query and returns every row keyed by column name.
func (s *Store) Query(ctx context.Context, query string, args ...any) (stowgate.QueryResult, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return stowgate.QueryResult{}, fmt.Errorf("sqlite query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return stowgate.QueryResult{}, fmt.Errorf("sqlite query: columns: %w", err)
	}

	result := stowgate.QueryResult{Results: []stowgate.Row{}}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return stowgate.QueryResult{}, fmt.Errorf("sqlite query: scan: %w", err)
		}

		row := make(stowgate.Row, len(cols))
		for i, col := range cols {
			row[col] = values[i]
		}
		result.Results = append(result.Results, row)
	}

	if err := rows.Err(); err != nil {
		return stowgate.QueryResult{}, fmt.Errorf("sqlite query: rows: %w", err)
	}

	return result, nil
}

// Exec runs a statement that returns no rows.
func (s *Store) Exec(ctx context.Context, query string, args ...any) error {
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("sqlite exec: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
