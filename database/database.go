package database

import (
	"context"
	"fmt"

	"github.com/sagarc03/stowgate"
	"github.com/sagarc03/stowgate/database/postgres"
	"github.com/sagarc03/stowgate/database/sqlite"
)

// Config holds the configuration for connecting to a row store.
type Config struct {
	// Type specifies the database type: "none", "sqlite" or "postgres"
	Type string
	// DSN is the data source name (connection string)
	DSN string
}

// Connect opens the configured row store. The "none" type, or an empty one,
// leaves the row store unbound and returns a nil RowStore.
// The returned cleanup function should be called to close the connection.
func Connect(ctx context.Context, cfg Config) (stowgate.RowStore, func(), error) {
	switch cfg.Type {
	case "", "none":
		return nil, func() {}, nil
	case "sqlite":
		store, err := sqlite.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case "postgres":
		store, err := postgres.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
}
