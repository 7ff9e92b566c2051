// Package bootstrap opens the storage backend selected by configuration.
package bootstrap

import (
	"context"

	"hivery/backend/internal/graph"
	"hivery/backend/internal/store"
	"hivery/backend/internal/store/badgerstore"
	"hivery/backend/pkg/config"
	apperrors "hivery/backend/pkg/errors"
	"hivery/backend/pkg/logger"
)

// OpenStore opens the configured backend. Neo4j schema constraints are
// ensured before the store is returned.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendNeo4j:
		repo, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, logger.Named("graph"))
		if err != nil {
			return nil, err
		}
		if err := repo.EnsureSchema(ctx); err != nil {
			repo.Close()
			return nil, err
		}
		return repo, nil
	case config.BackendBadger:
		db, err := badgerstore.Open(badgerstore.Config{
			Path:       cfg.BadgerPath,
			InMemory:   cfg.BadgerInMemory,
			SyncWrites: cfg.IsProduction(),
			Logger:     logger.Named("badger"),
		})
		if err != nil {
			return nil, err
		}
		return db, nil
	}
	return nil, apperrors.NewConfigValidationFailed("STORE_BACKEND", "unknown backend "+cfg.StoreBackend)
}
