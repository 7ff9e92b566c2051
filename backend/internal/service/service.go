// Package service answers the read-only queries over an imported dataset.
package service

import (
	"context"
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"hivery/backend/internal/metrics"
	"hivery/backend/internal/model"
	"hivery/backend/internal/store"
	apperrors "hivery/backend/pkg/errors"
	"hivery/backend/pkg/logger"
)

const (
	kindCompany = "company"
	kindPerson  = "person"
)

// FriendPredicate selects which friends take part in a comparison
type FriendPredicate func(model.Person) bool

// AliveWithBrownEyes is the filter applied by the compare endpoint
func AliveWithBrownEyes(p model.Person) bool {
	return p.Alive && p.EyeColor == "brown"
}

// Employee is one row of a company's employee list
type Employee struct {
	ID    int    `json:"pid"`
	Email string `json:"email"`
}

// PersonProfile is a person with favourite foods grouped by category
type PersonProfile struct {
	Person          model.Person
	FoodsByCategory map[string][]string
}

// Foods returns the food ids of a category, never nil
func (p *PersonProfile) Foods(category string) []string {
	if foods := p.FoodsByCategory[category]; foods != nil {
		return foods
	}
	return []string{}
}

// Comparison is the result of CompareFriends
type Comparison struct {
	This            model.Person
	Other           model.Person
	CommonFriendIDs []int
}

// Service is the query engine. The dataset is immutable after import, so
// person details are cached without invalidation.
type Service struct {
	reader store.Reader
	cache  *lru.Cache[int, *store.PersonDetail]
	logger *zap.Logger
}

// New creates a query service reading from reader
func New(reader store.Reader, cacheSize int, log *zap.Logger) (*Service, error) {
	cache, err := lru.New[int, *store.PersonDetail](cacheSize)
	if err != nil {
		return nil, apperrors.NewConfigValidationFailed("PERSON_CACHE_SIZE", err.Error())
	}
	return &Service{
		reader: reader,
		cache:  cache,
		logger: logger.OrNop(log),
	}, nil
}

// EmployeesByCompany lists a company's employees ordered by person id. An
// existing company with no employees yields an empty list.
func (s *Service) EmployeesByCompany(ctx context.Context, companyID int) (employees []Employee, err error) {
	defer s.observe("employees_by_company", time.Now(), &err)

	company, err := s.reader.CompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperrors.NewUnknownInstance(kindCompany, companyID)
	}

	people, err := s.reader.PersonsByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	employees = make([]Employee, 0, len(people))
	for _, p := range people {
		employees = append(employees, Employee{ID: p.ID, Email: p.Email})
	}
	return employees, nil
}

// PersonByID returns the person's profile. Absence is reported through the
// bool, not as an error.
func (s *Service) PersonByID(ctx context.Context, personID int) (profile *PersonProfile, found bool, err error) {
	start := time.Now()
	defer func() {
		outcome := metrics.OutcomeOK
		switch {
		case err != nil:
			outcome = metrics.OutcomeError
		case !found:
			outcome = metrics.OutcomeNotFound
		}
		metrics.ObserveQuery("person_by_id", outcome, time.Since(start))
	}()

	detail, err := s.detail(ctx, personID)
	if err != nil || detail == nil {
		return nil, false, err
	}

	profile = &PersonProfile{
		Person:          detail.Person,
		FoodsByCategory: make(map[string][]string),
	}
	for _, f := range detail.Foods {
		profile.FoodsByCategory[f.Category] = append(profile.FoodsByCategory[f.Category], f.ID)
	}
	return profile, true, nil
}

// CompareFriends returns both people and the ids of friends they share after
// pred is applied to each side. A nil pred means AliveWithBrownEyes. personA
// is looked up before personB so the reported unknown id is deterministic.
func (s *Service) CompareFriends(ctx context.Context, personA, personB int, pred FriendPredicate) (cmp *Comparison, err error) {
	defer s.observe("compare_friends", time.Now(), &err)

	if pred == nil {
		pred = AliveWithBrownEyes
	}

	a, err := s.requirePerson(ctx, personA)
	if err != nil {
		return nil, err
	}
	b, err := s.requirePerson(ctx, personB)
	if err != nil {
		return nil, err
	}

	theirs := filteredFriends(b, pred)
	common := []int{}
	for id := range filteredFriends(a, pred) {
		if _, ok := theirs[id]; ok {
			common = append(common, id)
		}
	}
	sort.Ints(common)

	s.logger.Debug("Friends compared",
		zap.Int("person_a", personA),
		zap.Int("person_b", personB),
		zap.Int("common", len(common)),
	)
	return &Comparison{This: a.Person, Other: b.Person, CommonFriendIDs: common}, nil
}

func (s *Service) requirePerson(ctx context.Context, id int) (*store.PersonDetail, error) {
	detail, err := s.detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, apperrors.NewUnknownInstance(kindPerson, id)
	}
	return detail, nil
}

// detail reads through the cache. Misses for absent ids are not cached.
func (s *Service) detail(ctx context.Context, id int) (*store.PersonDetail, error) {
	if d, ok := s.cache.Get(id); ok {
		return d, nil
	}
	d, err := s.reader.PersonByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d != nil {
		s.cache.Add(id, d)
	}
	return d, nil
}

func filteredFriends(d *store.PersonDetail, pred FriendPredicate) map[int]struct{} {
	set := make(map[int]struct{}, len(d.Friends))
	for _, f := range d.Friends {
		if pred(f) {
			set[f.ID] = struct{}{}
		}
	}
	return set
}

func (s *Service) observe(operation string, start time.Time, errp *error) {
	outcome := metrics.OutcomeOK
	if err := *errp; err != nil {
		outcome = metrics.OutcomeError
		if apperrors.IsUnknownInstance(err) {
			outcome = metrics.OutcomeNotFound
		} else {
			s.logger.Error("Query failed", zap.String("operation", operation), zap.Error(err))
		}
	}
	metrics.ObserveQuery(operation, outcome, time.Since(start))
}
