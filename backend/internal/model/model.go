// Package model holds the entities produced by an import. Entities reference
// each other by id only; relationships live in the Dataset's adjacency tables.
package model

import "sort"

// Company is an employer of people
type Company struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Person is a citizen record
type Person struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Address   string `json:"address"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	EyeColor  string `json:"eye_color"`
	Alive     bool   `json:"alive"`
	CompanyID int    `json:"company_id"`
}

// Food categories the API reports on. The vocabulary may carry others.
const (
	CategoryFruit     = "fruit"
	CategoryVegetable = "vegetable"
)

// Food is a categorised food, keyed by its normalized name
type Food struct {
	ID       string `json:"id"`
	Category string `json:"category"`
}

// Dataset is the complete, reconciled entity graph of one import
type Dataset struct {
	Companies map[int]*Company
	People    map[int]*Person
	Foods     map[string]*Food

	// Employees maps a company id to its person ids in import order
	Employees map[int][]int
	// FavouriteFoods maps a person id to its food ids in first-seen order
	FavouriteFoods map[int][]string
	Friends        *FriendGraph
}

// NewDataset returns an empty dataset
func NewDataset() *Dataset {
	return &Dataset{
		Companies:      make(map[int]*Company),
		People:         make(map[int]*Person),
		Foods:          make(map[string]*Food),
		Employees:      make(map[int][]int),
		FavouriteFoods: make(map[int][]string),
		Friends:        NewFriendGraph(),
	}
}

// CompanyIDs returns all company ids in ascending order
func (d *Dataset) CompanyIDs() []int {
	return sortedKeys(d.Companies)
}

// PersonIDs returns all person ids in ascending order
func (d *Dataset) PersonIDs() []int {
	return sortedKeys(d.People)
}

// FoodIDs returns all food ids in ascending order
func (d *Dataset) FoodIDs() []string {
	ids := make([]string, 0, len(d.Foods))
	for id := range d.Foods {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedKeys[V any](m map[int]V) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
