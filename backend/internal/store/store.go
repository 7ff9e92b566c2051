// Package store defines the storage contract shared by the import pipeline
// and the query engine.
package store

import (
	"context"

	"hivery/backend/internal/model"
)

// PersonDetail is a person with its relationship sets already resolved
type PersonDetail struct {
	Person  model.Person
	Foods   []model.Food   // ordered by food id
	Friends []model.Person // ordered by person id
}

// Writer persists an import
type Writer interface {
	// Reset removes every previously imported entity
	Reset(ctx context.Context) error
	// SaveAll writes the dataset atomically: all of it becomes visible or none
	SaveAll(ctx context.Context, ds *model.Dataset) error
}

// Reader serves read-only lookups. Lookups of absent ids return (nil, nil).
type Reader interface {
	CompanyByID(ctx context.Context, id int) (*model.Company, error)
	PersonByID(ctx context.Context, id int) (*PersonDetail, error)
	// PersonsByCompanyID returns the employees of a company ordered by id
	PersonsByCompanyID(ctx context.Context, companyID int) ([]model.Person, error)
}

// Store is a complete storage backend
type Store interface {
	Writer
	Reader
	Close() error
}
