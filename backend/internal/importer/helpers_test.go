package importer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func intp(i int) *int { return &i }

func company(index int, name string) CompanyRecord {
	return CompanyRecord{Index: intp(index), Company: name}
}

// person builds a living, brown-eyed person record
func person(index, companyID int, friends []int, foods ...string) PersonRecord {
	refs := make([]FriendRef, 0, len(friends))
	for _, f := range friends {
		refs = append(refs, FriendRef{Index: intp(f)})
	}
	return PersonRecord{
		Index:         intp(index),
		Name:          "person",
		Age:           30,
		Email:         "person@example.com",
		EyeColor:      "brown",
		CompanyID:     intp(companyID),
		Friends:       refs,
		FavouriteFood: foods,
	}
}

func sources(t *testing.T, companies []CompanyRecord, people []PersonRecord, categories FoodCategories) *Sources {
	t.Helper()
	c, err := NewRecords(SourceCompanies, companies)
	require.NoError(t, err)
	p, err := NewRecords(SourcePeople, people)
	require.NoError(t, err)
	if categories == nil {
		categories = FoodCategories{"orange": "fruit", "capsicum": "vegetable"}
	}
	return &Sources{Companies: c, People: p, Categories: categories}
}
