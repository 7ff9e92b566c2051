package graph

import (
	"context"

	"go.uber.org/zap"

	apperrors "hivery/backend/pkg/errors"
)

var schemaStatements = []struct {
	name  string
	query string
}{
	{"company_id_unique", "CREATE CONSTRAINT company_id_unique IF NOT EXISTS FOR (c:Company) REQUIRE c.id IS UNIQUE"},
	{"person_id_unique", "CREATE CONSTRAINT person_id_unique IF NOT EXISTS FOR (p:Person) REQUIRE p.id IS UNIQUE"},
	{"food_id_unique", "CREATE CONSTRAINT food_id_unique IF NOT EXISTS FOR (f:Food) REQUIRE f.id IS UNIQUE"},
	{"person_company_index", "CREATE INDEX person_company_index IF NOT EXISTS FOR (p:Person) ON (p.company_id)"},
}

// EnsureSchema creates the uniqueness constraints and indexes. It is
// idempotent and safe to call on every start.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if err := r.run(ctx, stmt.query, nil); err != nil {
			return apperrors.NewStoreFailed("ensure schema "+stmt.name, err)
		}
		r.logger.Debug("Schema statement applied", zap.String("name", stmt.name))
	}
	r.logger.Info("Schema ensured", zap.Int("statements", len(schemaStatements)))
	return nil
}
