package importer

import (
	"strconv"

	"hivery/backend/internal/model"
	apperrors "hivery/backend/pkg/errors"
)

// referenceResolver checks a person's company and food references against
// the entities built so far. Foods are materialized on first use and shared.
type referenceResolver struct {
	ds         *model.Dataset
	categories FoodCategories
}

// resolvedRefs holds everything a person record points at. Nothing is
// written to the dataset until every reference of the record resolved.
type resolvedRefs struct {
	companyID int
	foods     []*model.Food
}

func newReferenceResolver(ds *model.Dataset, categories FoodCategories) *referenceResolver {
	return &referenceResolver{ds: ds, categories: categories}
}

func (r *referenceResolver) resolve(index, personID int, rec PersonRecord) (resolvedRefs, error) {
	cid := *rec.CompanyID
	if _, ok := r.ds.Companies[cid]; !ok {
		return resolvedRefs{}, apperrors.NewUnknownReference(apperrors.ReferenceCompany, strconv.Itoa(cid), personID, index)
	}

	refs := resolvedRefs{companyID: cid}
	seen := make(map[string]struct{}, len(rec.FavouriteFood))
	for _, name := range rec.FavouriteFood {
		food, err := r.food(index, personID, name)
		if err != nil {
			return resolvedRefs{}, err
		}
		if _, dup := seen[food.ID]; dup {
			continue
		}
		seen[food.ID] = struct{}{}
		refs.foods = append(refs.foods, food)
	}
	return refs, nil
}

// food returns the shared Food for name, or a new unattached one
func (r *referenceResolver) food(index, personID int, name string) (*model.Food, error) {
	id := NormalizeFoodName(name)
	if existing, ok := r.ds.Foods[id]; ok {
		return existing, nil
	}
	category, ok := r.categories.Category(id)
	if id == "" || !ok {
		return nil, apperrors.NewUnknownReference(apperrors.ReferenceFood, name, personID, index)
	}
	return &model.Food{ID: id, Category: category}, nil
}

func (r *referenceResolver) apply(personID int, refs resolvedRefs) {
	r.ds.Employees[refs.companyID] = append(r.ds.Employees[refs.companyID], personID)

	ids := make([]string, 0, len(refs.foods))
	for _, food := range refs.foods {
		if _, ok := r.ds.Foods[food.ID]; !ok {
			r.ds.Foods[food.ID] = food
		}
		ids = append(ids, food.ID)
	}
	r.ds.FavouriteFoods[personID] = ids
}
