package stowgate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sagarc03/stowgate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type SpyRowStore struct {
	mock.Mock
	dialect stowgate.Dialect
}

func (s *SpyRowStore) Query(ctx context.Context, query string, args ...any) (stowgate.QueryResult, error) {
	called := s.Called(ctx, query)
	return called.Get(0).(stowgate.QueryResult), called.Error(1)
}

func (s *SpyRowStore) Dialect() stowgate.Dialect {
	return s.dialect
}

func newDiagnostics(t *testing.T, rows stowgate.RowStore) *stowgate.DiagnosticsService {
	t.Helper()
	s, err := stowgate.NewDiagnosticsService(rows, stowgate.DefaultTables())
	require.NoError(t, err)
	return s
}

func TestNewDiagnosticsService_InvalidTables(t *testing.T) {
	_, err := stowgate.NewDiagnosticsService(nil, stowgate.Tables{Users: "users; DROP TABLE x"})
	assert.Error(t, err)
}

func TestDiagnosticsService_CountUsers(t *testing.T) {
	tests := []struct {
		name   string
		result stowgate.QueryResult
		want   int64
	}{
		{name: "int64", result: stowgate.QueryResult{Results: []stowgate.Row{{"c": int64(7)}}}, want: 7},
		{name: "float64", result: stowgate.QueryResult{Results: []stowgate.Row{{"c": float64(3)}}}, want: 3},
		{name: "string", result: stowgate.QueryResult{Results: []stowgate.Row{{"c": "12"}}}, want: 12},
		{name: "bytes", result: stowgate.QueryResult{Results: []stowgate.Row{{"c": []byte("4")}}}, want: 4},
		{name: "missing column", result: stowgate.QueryResult{Results: []stowgate.Row{{}}}, want: 0},
		{name: "no rows", result: stowgate.QueryResult{}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := &SpyRowStore{dialect: stowgate.DialectSQLite}
			ctx := context.Background()
			rows.On("Query", ctx, "SELECT COUNT(*) AS c FROM users").Return(tt.result, nil)

			n, err := newDiagnostics(t, rows).CountUsers(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
			rows.AssertExpectations(t)
		})
	}

	t.Run("unbound row store", func(t *testing.T) {
		n, err := newDiagnostics(t, nil).CountUsers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run("query error", func(t *testing.T) {
		rows := &SpyRowStore{dialect: stowgate.DialectSQLite}
		ctx := context.Background()
		queryErr := errors.New("no such table: users")
		rows.On("Query", ctx, mock.Anything).Return(stowgate.QueryResult{}, queryErr)

		_, err := newDiagnostics(t, rows).CountUsers(ctx)
		assert.ErrorIs(t, err, queryErr)
	})
}

func TestDiagnosticsService_ListTables(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		rows := &SpyRowStore{dialect: stowgate.DialectSQLite}
		ctx := context.Background()
		rows.On("Query", ctx, "SELECT name FROM sqlite_master WHERE type='table'").Return(stowgate.QueryResult{
			Results: []stowgate.Row{{"name": "users"}, {"name": "orders"}},
		}, nil)

		tables, err := newDiagnostics(t, rows).ListTables(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"users", "orders"}, tables)
	})

	t.Run("postgres uses information schema", func(t *testing.T) {
		rows := &SpyRowStore{dialect: stowgate.DialectPostgres}
		ctx := context.Background()
		rows.On("Query", ctx, mock.MatchedBy(func(q string) bool {
			return assert.Contains(t, q, "information_schema.tables")
		})).Return(stowgate.QueryResult{Results: []stowgate.Row{{"name": "users"}}}, nil)

		tables, err := newDiagnostics(t, rows).ListTables(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"users"}, tables)
	})

	t.Run("unbound row store yields empty list", func(t *testing.T) {
		tables, err := newDiagnostics(t, nil).ListTables(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, tables)
		assert.Empty(t, tables)
	})
}
