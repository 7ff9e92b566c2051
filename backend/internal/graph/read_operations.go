package graph

import (
	"context"
	"fmt"

	"hivery/backend/internal/model"
	"hivery/backend/internal/store"
	apperrors "hivery/backend/pkg/errors"
)

// CompanyByID returns the company or nil
func (r *Repository) CompanyByID(ctx context.Context, id int) (*model.Company, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (c:Company {id: $id})
		RETURN c.id AS id, c.name AS name
	`

	result, err := session.Run(ctx, query, map[string]any{"id": int64(id)})
	if err != nil {
		return nil, apperrors.NewStoreFailed("company by id", err)
	}
	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, apperrors.NewStoreFailed("company by id", err)
		}
		return nil, nil
	}

	record := result.Record()
	return &model.Company{
		ID:   getIntFromRecord(record, "id"),
		Name: getStringFromRecord(record, "name"),
	}, nil
}

// PersonByID returns the person with foods and friends resolved, or nil
func (r *Repository) PersonByID(ctx context.Context, id int) (*store.PersonDetail, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (p:Person {id: $id})
		OPTIONAL MATCH (p)-[:LIKES]->(f:Food)
		WITH p, f ORDER BY f.id
		WITH p, collect(f {.id, .category}) AS foods
		OPTIONAL MATCH (p)-[:FRIENDS_WITH]-(friend:Person)
		WITH p, foods, friend ORDER BY friend.id
		RETURN p {.*} AS person, foods, collect(friend {.*}) AS friends
	`

	result, err := session.Run(ctx, query, map[string]any{"id": int64(id)})
	if err != nil {
		return nil, apperrors.NewStoreFailed("person by id", err)
	}
	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, apperrors.NewStoreFailed("person by id", err)
		}
		return nil, nil
	}

	record := result.Record()
	personMap, ok := getMapFromRecord(record, "person")
	if !ok {
		return nil, apperrors.NewStoreFailed("person by id", fmt.Errorf("person %d: unexpected record shape", id))
	}

	detail := &store.PersonDetail{
		Person:  personFromMap(personMap),
		Foods:   []model.Food{},
		Friends: []model.Person{},
	}
	for _, m := range getMapSliceFromRecord(record, "foods") {
		detail.Foods = append(detail.Foods, model.Food{
			ID:       getStringFromMap(m, "id", ""),
			Category: getStringFromMap(m, "category", ""),
		})
	}
	for _, m := range getMapSliceFromRecord(record, "friends") {
		detail.Friends = append(detail.Friends, personFromMap(m))
	}
	return detail, nil
}

// PersonsByCompanyID returns the employees of a company ordered by id
func (r *Repository) PersonsByCompanyID(ctx context.Context, companyID int) ([]model.Person, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (p:Person)-[:WORKS_AT]->(:Company {id: $companyID})
		RETURN p {.*} AS person
		ORDER BY p.id
	`

	result, err := session.Run(ctx, query, map[string]any{"companyID": int64(companyID)})
	if err != nil {
		return nil, apperrors.NewStoreFailed("persons by company id", err)
	}

	people := []model.Person{}
	for result.Next(ctx) {
		if m, ok := getMapFromRecord(result.Record(), "person"); ok {
			people = append(people, personFromMap(m))
		}
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewStoreFailed("persons by company id", err)
	}
	return people, nil
}

func personFromMap(m map[string]any) model.Person {
	return model.Person{
		ID:        getIntFromMap(m, "id", 0),
		Name:      getStringFromMap(m, "name", ""),
		Age:       getIntFromMap(m, "age", 0),
		Address:   getStringFromMap(m, "address", ""),
		Email:     getStringFromMap(m, "email", ""),
		Phone:     getStringFromMap(m, "phone", ""),
		EyeColor:  getStringFromMap(m, "eye_color", ""),
		Alive:     getBoolFromMap(m, "alive", false),
		CompanyID: getIntFromMap(m, "company_id", 0),
	}
}
