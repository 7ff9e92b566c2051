package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"hivery/backend/internal/model"
	apperrors "hivery/backend/pkg/errors"
)

// Reset removes every imported node along with its relationships
func (r *Repository) Reset(ctx context.Context) error {
	for _, label := range []string{"Person", "Company", "Food"} {
		query := fmt.Sprintf("MATCH (n:%s) DETACH DELETE n", label)
		if err := r.run(ctx, query, nil); err != nil {
			return apperrors.NewStoreFailed("reset "+label, err)
		}
	}
	r.logger.Info("Graph reset")
	return nil
}

const (
	saveCompaniesQuery = `
		UNWIND $rows AS row
		CREATE (:Company {id: row.id, name: row.name})
	`
	saveFoodsQuery = `
		UNWIND $rows AS row
		CREATE (:Food {id: row.id, category: row.category})
	`
	savePeopleQuery = `
		UNWIND $rows AS row
		MATCH (c:Company {id: row.company_id})
		CREATE (p:Person {
			id: row.id,
			name: row.name,
			age: row.age,
			address: row.address,
			email: row.email,
			phone: row.phone,
			eye_color: row.eye_color,
			alive: row.alive,
			company_id: row.company_id
		})
		CREATE (p)-[:WORKS_AT]->(c)
	`
	saveLikesQuery = `
		UNWIND $rows AS row
		MATCH (p:Person {id: row.person_id})
		MATCH (f:Food {id: row.food_id})
		CREATE (p)-[:LIKES]->(f)
	`
	saveFriendshipsQuery = `
		UNWIND $rows AS row
		MATCH (a:Person {id: row.a})
		MATCH (b:Person {id: row.b})
		CREATE (a)-[:FRIENDS_WITH]->(b)
	`
)

// SaveAll writes the dataset inside one managed write transaction. A failure
// in any batch rolls back every batch.
func (r *Repository) SaveAll(ctx context.Context, ds *model.Dataset) error {
	batches := []struct {
		name  string
		query string
		rows  []map[string]any
	}{
		{"companies", saveCompaniesQuery, companyRows(ds)},
		{"foods", saveFoodsQuery, foodRows(ds)},
		{"people", savePeopleQuery, personRows(ds)},
		{"likes", saveLikesQuery, likeRows(ds)},
		{"friendships", saveFriendshipsQuery, friendshipRows(ds)},
	}

	session := r.writeSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, b := range batches {
			if len(b.rows) == 0 {
				continue
			}
			result, err := tx.Run(ctx, b.query, map[string]any{"rows": b.rows})
			if err != nil {
				return nil, fmt.Errorf("save %s: %w", b.name, err)
			}
			if _, err := result.Consume(ctx); err != nil {
				return nil, fmt.Errorf("save %s: %w", b.name, err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return apperrors.NewStoreFailed("save all", err)
	}

	r.logger.Info("Dataset saved",
		zap.Int("companies", len(ds.Companies)),
		zap.Int("people", len(ds.People)),
		zap.Int("foods", len(ds.Foods)),
		zap.Int("friendships", ds.Friends.Len()),
	)
	return nil
}

func companyRows(ds *model.Dataset) []map[string]any {
	rows := make([]map[string]any, 0, len(ds.Companies))
	for _, id := range ds.CompanyIDs() {
		rows = append(rows, map[string]any{"id": int64(id), "name": ds.Companies[id].Name})
	}
	return rows
}

func foodRows(ds *model.Dataset) []map[string]any {
	rows := make([]map[string]any, 0, len(ds.Foods))
	for _, id := range ds.FoodIDs() {
		rows = append(rows, map[string]any{"id": id, "category": ds.Foods[id].Category})
	}
	return rows
}

func personRows(ds *model.Dataset) []map[string]any {
	rows := make([]map[string]any, 0, len(ds.People))
	for _, id := range ds.PersonIDs() {
		p := ds.People[id]
		rows = append(rows, map[string]any{
			"id":         int64(p.ID),
			"name":       p.Name,
			"age":        int64(p.Age),
			"address":    p.Address,
			"email":      p.Email,
			"phone":      p.Phone,
			"eye_color":  p.EyeColor,
			"alive":      p.Alive,
			"company_id": int64(p.CompanyID),
		})
	}
	return rows
}

func likeRows(ds *model.Dataset) []map[string]any {
	var rows []map[string]any
	for _, id := range ds.PersonIDs() {
		for _, food := range ds.FavouriteFoods[id] {
			rows = append(rows, map[string]any{"person_id": int64(id), "food_id": food})
		}
	}
	return rows
}

func friendshipRows(ds *model.Dataset) []map[string]any {
	pairs := ds.Friends.Pairs()
	rows := make([]map[string]any, 0, len(pairs))
	for _, pair := range pairs {
		rows = append(rows, map[string]any{"a": int64(pair[0]), "b": int64(pair[1])})
	}
	return rows
}
