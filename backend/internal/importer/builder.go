package importer

import (
	"hivery/backend/internal/model"
	apperrors "hivery/backend/pkg/errors"
)

// CompanyIDOffset aligns 0-based company indices with the 1-based company
// ids that person records reference.
const CompanyIDOffset = 1

// buildCompanies constructs one Company per record, keyed by its canonical id
func buildCompanies(records *Records[CompanyRecord], ds *model.Dataset) error {
	return records.Each(func(i int, rec CompanyRecord) error {
		cid := *rec.Index + CompanyIDOffset
		if _, ok := ds.Companies[cid]; ok {
			return apperrors.NewDuplicateIdentifier(SourceCompanies, cid, i)
		}
		ds.Companies[cid] = &model.Company{ID: cid, Name: rec.Company}
		return nil
	})
}

// claimTable maps a person id to the friend ids it claims, self references removed
type claimTable map[int][]int

// peopleBuilder turns person records into Person entities, resolving their
// references and collecting friend claims for the reconciler.
type peopleBuilder struct {
	ds       *model.Dataset
	resolver *referenceResolver
	claims   claimTable
}

func newPeopleBuilder(ds *model.Dataset, categories FoodCategories) *peopleBuilder {
	return &peopleBuilder{
		ds:       ds,
		resolver: newReferenceResolver(ds, categories),
		claims:   make(claimTable),
	}
}

func (b *peopleBuilder) build(records *Records[PersonRecord]) error {
	return records.Each(b.add)
}

func (b *peopleBuilder) add(i int, rec PersonRecord) error {
	pid := *rec.Index
	if _, ok := b.ds.People[pid]; ok {
		return apperrors.NewDuplicateIdentifier(SourcePeople, pid, i)
	}

	refs, err := b.resolver.resolve(i, pid, rec)
	if err != nil {
		return err
	}

	person := &model.Person{
		ID:        pid,
		Name:      rec.Name,
		Age:       rec.Age,
		Address:   rec.Address,
		Email:     rec.Email,
		Phone:     rec.Phone,
		EyeColor:  rec.EyeColor,
		Alive:     !rec.HasDied,
		CompanyID: refs.companyID,
	}
	b.ds.People[pid] = person
	b.resolver.apply(pid, refs)

	friends := make([]int, 0, len(rec.Friends))
	for _, f := range rec.Friends {
		if *f.Index != pid {
			friends = append(friends, *f.Index)
		}
	}
	b.claims[pid] = friends
	return nil
}
