package storage

import (
	"context"
	"fmt"

	"authored-notes/internal/config"
	"authored-notes/internal/repository"
	"authored-notes/internal/repository/memory"
	"authored-notes/internal/repository/mongostore"
	"authored-notes/internal/repository/sqlstore"
)

// Open открывает хранилище, выбранное в конфигурации
func Open(ctx context.Context, cfg *config.ConfigStorage) (repository.Store, error) {
	const op = "storage.Open"

	switch cfg.Driver {
	case config.DriverMemory, "":
		return memory.NewRepository(), nil
	case config.DriverMySQL:
		return openSQL(ctx, sqlstore.DriverMySQL, cfg.DSN)
	case config.DriverPostgres:
		return openSQL(ctx, sqlstore.DriverPostgres, cfg.DSN)
	case config.DriverMongo:
		store, err := mongostore.Connect(ctx, cfg.DSN, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%s: unknown driver %q", op, cfg.Driver)
	}
}

func openSQL(ctx context.Context, driver, dsn string) (repository.Store, error) {
	store, err := sqlstore.Open(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("storage.Open: %w", err)
	}
	return store, nil
}
