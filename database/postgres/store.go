// Package postgres implements stowgate.RowStore on PostgreSQL using pgx.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/stowgate"
)

// Store runs queries through a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

var _ stowgate.RowStore = (*Store)(nil)

// Open connects to dsn and pings the server.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return New(pool), nil
}

// New wraps an existing pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Dialect() stowgate.Dialect {
	return stowgate.DialectPostgres
}

// Query runs query and returns every row keyed by column name.
func (s *Store) Query(ctx context.Context, query string, args ...any) (stowgate.QueryResult, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return stowgate.QueryResult{}, fmt.Errorf("postgres query: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()

	result := stowgate.QueryResult{Results: []stowgate.Row{}}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return stowgate.QueryResult{}, fmt.Errorf("postgres query: values: %w", err)
		}

		row := make(stowgate.Row, len(fields))
		for i, f := range fields {
			row[f.Name] = values[i]
		}
		result.Results = append(result.Results, row)
	}

	if err := rows.Err(); err != nil {
		return stowgate.QueryResult{}, fmt.Errorf("postgres query: rows: %w", err)
	}

	return result, nil
}

func (s *Store) Close() {
	s.pool.Close()
}
