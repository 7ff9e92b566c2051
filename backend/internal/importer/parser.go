package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "hivery/backend/pkg/errors"
)

// Source names used in diagnostics
const (
	SourceCompanies = "companies"
	SourcePeople    = "people"
	SourceFoods     = "foods"
)

// recordValidate checks single-record field constraints. Cross-record checks
// belong to the builder and resolver.
var recordValidate = validator.New()

// CompanyRecord is one entry of the companies source
type CompanyRecord struct {
	Index   *int   `json:"index" validate:"required,gte=0"`
	Company string `json:"company"`
}

// FriendRef is one claimed friend of a person record
type FriendRef struct {
	Index *int `json:"index" validate:"required,gte=0"`
}

// PersonRecord is one entry of the people source
type PersonRecord struct {
	Index         *int        `json:"index" validate:"required,gte=0"`
	Name          string      `json:"name"`
	Age           int         `json:"age" validate:"gte=0"`
	Address       string      `json:"address"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	EyeColor      string      `json:"eyeColor"`
	HasDied       bool        `json:"has_died"`
	CompanyID     *int        `json:"company_id" validate:"required"`
	Friends       []FriendRef `json:"friends" validate:"dive"`
	FavouriteFood []string    `json:"favouriteFood"`
}

// FoodCategories maps a normalized food name to its category
type FoodCategories map[string]string

// Category returns the category of a food name, normalizing it first
func (c FoodCategories) Category(name string) (string, bool) {
	category, ok := c[NormalizeFoodName(name)]
	return category, ok
}

// NormalizeFoodName maps a raw food reference to its canonical identifier
func NormalizeFoodName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Records is a lazily decoded, restartable sequence of source records.
// The document shape is checked when the Records is created; each element
// is decoded and validated on every pass.
type Records[T any] struct {
	source string
	raw    []json.RawMessage
}

// Source returns the source name the records were parsed from
func (r *Records[T]) Source() string {
	return r.source
}

// Len returns the number of records
func (r *Records[T]) Len() int {
	return len(r.raw)
}

// Each calls fn for every record in input order with its natural index.
// Iteration stops at the first decode, validation or callback error.
func (r *Records[T]) Each(fn func(index int, rec T) error) error {
	for i, raw := range r.raw {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			return apperrors.NewMalformedInput(r.source, i, err)
		}
		if err := recordValidate.Struct(rec); err != nil {
			return apperrors.NewMalformedInput(r.source, i, err)
		}
		if err := fn(i, rec); err != nil {
			return err
		}
	}
	return nil
}

// NewRecords builds a sequence from already decoded values, mainly for tests
// and tooling that assemble records in memory.
func NewRecords[T any](source string, items []T) (*Records[T], error) {
	raw := make([]json.RawMessage, 0, len(items))
	for i, item := range items {
		b, err := json.Marshal(item)
		if err != nil {
			return nil, apperrors.NewMalformedInput(source, i, err)
		}
		raw = append(raw, b)
	}
	return &Records[T]{source: source, raw: raw}, nil
}

// ParseCompanies decodes the companies source
func ParseCompanies(r io.Reader) (*Records[CompanyRecord], error) {
	return parseCollection[CompanyRecord](SourceCompanies, r)
}

// ParsePeople decodes the people source
func ParsePeople(r io.Reader) (*Records[PersonRecord], error) {
	return parseCollection[PersonRecord](SourcePeople, r)
}

func parseCollection[T any](source string, r io.Reader) (*Records[T], error) {
	var raw []json.RawMessage
	if err := decodeDocument(r, &raw); err != nil {
		return nil, apperrors.NewMalformedInput(source, -1, err)
	}
	if raw == nil {
		return nil, apperrors.NewMalformedInput(source, -1, fmt.Errorf("expected a record collection, got null"))
	}
	return &Records[T]{source: source, raw: raw}, nil
}

// ParseFoodCategories decodes the food vocabulary. Keys are normalized; two
// keys that normalize to the same food must agree on the category.
func ParseFoodCategories(r io.Reader) (FoodCategories, error) {
	var raw map[string]string
	if err := decodeDocument(r, &raw); err != nil {
		return nil, apperrors.NewMalformedInput(SourceFoods, -1, err)
	}
	if raw == nil {
		return nil, apperrors.NewMalformedInput(SourceFoods, -1, fmt.Errorf("expected a food category mapping, got null"))
	}

	categories := make(FoodCategories, len(raw))
	for name, category := range raw {
		key := NormalizeFoodName(name)
		if key == "" {
			return nil, apperrors.NewMalformedInput(SourceFoods, -1, fmt.Errorf("empty food name"))
		}
		if existing, ok := categories[key]; ok && existing != category {
			return nil, apperrors.NewMalformedInput(SourceFoods, -1,
				fmt.Errorf("food %q has conflicting categories %q and %q", key, existing, category))
		}
		categories[key] = category
	}
	return categories, nil
}

// decodeDocument decodes exactly one JSON value from r. Anything but
// whitespace after it is an error.
func decodeDocument(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected data after the top-level value")
	}
	return nil
}
