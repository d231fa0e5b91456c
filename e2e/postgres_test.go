package e2e_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
)

var (
	testPool     *pgxpool.Pool
	testPoolOnce sync.Once
	testCleanup  func()
	testDSN      string
)

// getSharedPostgresDatabase returns a DSN for a PostgreSQL container shared
// by all tests in the package.
func getSharedPostgresDatabase(t *testing.T) string {
	t.Helper()

	testPoolOnce.Do(func() {
		ctx := context.Background()

		pgContainer, err := pgcontainer.Run(ctx,
			"postgres:18-alpine",
			pgcontainer.WithDatabase("testdb"),
			pgcontainer.WithUsername("testuser"),
			pgcontainer.WithPassword("testpass"),
			pgcontainer.BasicWaitStrategies(),
		)
		if err != nil {
			t.Fatalf("failed to start postgres container: %v", err)
		}

		testCleanup = func() {
			if testPool != nil {
				testPool.Close()
			}
			if err := testcontainers.TerminateContainer(pgContainer); err != nil {
				fmt.Printf("failed to terminate container: %s\n", err)
			}
		}

		connectionStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			testCleanup()
			t.Fatalf("failed to get connection string: %v", err)
		}

		pool, err := pgxpool.New(ctx, connectionStr)
		if err != nil {
			testCleanup()
			t.Fatalf("could not connect to database: %v", err)
		}

		testPool = pool
		testDSN = connectionStr
	})

	if testDSN == "" {
		t.Fatal("postgres container unavailable")
	}
	return testDSN
}

// seedPostgres recreates the users table with n rows.
func seedPostgres(t *testing.T, n int) {
	t.Helper()

	ctx := context.Background()
	_, err := testPool.Exec(ctx, `DROP TABLE IF EXISTS users, orders`)
	require.NoError(t, err)
	_, err = testPool.Exec(ctx, `CREATE TABLE users (id SERIAL PRIMARY KEY, email TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = testPool.Exec(ctx, `CREATE TABLE orders (id SERIAL PRIMARY KEY)`)
	require.NoError(t, err)
	for i := range n {
		_, err = testPool.Exec(ctx, `INSERT INTO users (email) VALUES ($1)`, fmt.Sprintf("user%d@example.com", i))
		require.NoError(t, err)
	}
}
