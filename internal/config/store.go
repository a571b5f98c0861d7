package config

import (
	"context"
	"fmt"
	"log"

	"food_delivery/internal/repository"
)

// OpenStore opens the record store selected by cfg.StoreBackend. The returned
// close func releases whatever the backend holds and is safe to defer.
func OpenStore(ctx context.Context, cfg *Config) (repository.RecordStore, func(), error) {
	switch cfg.StoreBackend {
	case BackendMemory:
		log.Println("Using in-memory record store; nothing will be persisted")
		return repository.NewMemoryStore(), func() {}, nil

	case BackendPostgres:
		dbCfg, err := LoadDBConfig()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load DB config: %w", err)
		}
		pool, err := ConnectDB(ctx, dbCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := AutoMigrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repository.NewPostgresStore(pool), pool.Close, nil

	case BackendSQLite:
		store, err := repository.OpenSQLite(cfg.StorePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store %s: %w", cfg.StorePath, err)
		}
		log.Printf("Using sqlite record store at %s", cfg.StorePath)
		return store, func() {
			if err := store.Close(); err != nil {
				log.Printf("ERROR: closing sqlite store: %v", err)
			}
		}, nil
	}
	return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
}
