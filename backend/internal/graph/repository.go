// Package graph is the Neo4j storage backend. Companies, people and foods are
// nodes; employment, food preferences and friendships are relationships:
//
//	(:Person)-[:WORKS_AT]->(:Company)
//	(:Person)-[:LIKES]->(:Food)
//	(:Person)-[:FRIENDS_WITH]->(:Person)   stored once per pair, read undirected
package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"hivery/backend/internal/store"
	apperrors "hivery/backend/pkg/errors"
	"hivery/backend/pkg/logger"
)

// Repository handles all Neo4j database operations
type Repository struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

var _ store.Store = (*Repository)(nil)

// NewRepository creates a new graph repository
func NewRepository(driver neo4j.DriverWithContext, log *zap.Logger) *Repository {
	return &Repository{
		driver: driver,
		logger: logger.OrNop(log),
	}
}

// Connect opens a driver, verifies connectivity and wraps it in a Repository
func Connect(ctx context.Context, uri, user, password string, log *zap.Logger) (*Repository, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, apperrors.NewStoreFailed("create neo4j driver", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, apperrors.NewStoreFailed("verify neo4j connectivity", err)
	}
	return NewRepository(driver, log), nil
}

// Close closes the Neo4j driver connection
func (r *Repository) Close() error {
	return r.driver.Close(context.Background())
}

func (r *Repository) readSession(ctx context.Context) neo4j.SessionWithContext {
	return r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
}

func (r *Repository) writeSession(ctx context.Context) neo4j.SessionWithContext {
	return r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
}

// run executes a standalone statement and discards its result
func (r *Repository) run(ctx context.Context, query string, params map[string]any) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return err
	}
	if _, err := result.Consume(ctx); err != nil {
		return fmt.Errorf("consume result: %w", err)
	}
	return nil
}
