package stowgate

import (
	"context"
	"fmt"
	"strconv"
)

// RowStore runs read-only SQL against the relational backend.
type RowStore interface {
	Query(ctx context.Context, query string, args ...any) (QueryResult, error)
	Dialect() Dialect
}

const postgresListTables = `SELECT table_name::text AS name FROM information_schema.tables
WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'
ORDER BY table_name`

const sqliteListTables = `SELECT name FROM sqlite_master WHERE type='table'`

// DiagnosticsService answers the database probe endpoints.
type DiagnosticsService struct {
	rows   RowStore
	tables Tables
}

// NewDiagnosticsService creates a DiagnosticsService. rows may be nil, in
// which case every query sees an empty result set.
func NewDiagnosticsService(rows RowStore, tables Tables) (*DiagnosticsService, error) {
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("new diagnostics service: %w", err)
	}
	return &DiagnosticsService{rows: rows, tables: tables}, nil
}

func (s *DiagnosticsService) query(ctx context.Context, q string) (QueryResult, error) {
	if s.rows == nil {
		return QueryResult{}, nil
	}
	return s.rows.Query(ctx, q)
}

// CountUsers returns the row count of the users table, 0 when there is no
// result.
func (s *DiagnosticsService) CountUsers(ctx context.Context) (int64, error) {
	res, err := s.query(ctx, fmt.Sprintf("SELECT COUNT(*) AS c FROM %s", s.tables.Users))
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}

	if len(res.Results) == 0 {
		return 0, nil
	}

	n, err := toInt64(res.Results[0]["c"])
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// ListTables returns the names of the user tables in the row store.
func (s *DiagnosticsService) ListTables(ctx context.Context) ([]string, error) {
	q := sqliteListTables
	if s.rows != nil && s.rows.Dialect() == DialectPostgres {
		q = postgresListTables
	}

	res, err := s.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	names := make([]string, 0, len(res.Results))
	for _, row := range res.Results {
		if name, ok := row["name"].(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case []byte:
		return strconv.ParseInt(string(n), 10, 64)
	case string:
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected count type %T", v)
	}
}
