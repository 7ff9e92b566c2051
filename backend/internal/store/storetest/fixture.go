// Package storetest provides a small reconciled dataset shared by storage and
// query tests.
package storetest

import "hivery/backend/internal/model"

// Company ids in the fixture
const (
	Hivery   = 1
	Acme     = 2
	EmptyCo  = 3
	NoSuchCo = 999
)

// Dataset returns a fresh fixture:
//
//	Hivery: 1 Thor
//	Acme:   2 Ironman, 3 CaptainAmerica, 4 Hulk, 5 Loki (dead), 6 Vision (blue eyes)
//	Empty Co: nobody
//
// Friendships: 1-2 1-3 2-3 2-4 3-4 1-5 4-5 1-6 4-6.
// Foods: Ironman likes orange and capsicum, CaptainAmerica likes orange.
func Dataset() *model.Dataset {
	ds := model.NewDataset()

	ds.Companies[Hivery] = &model.Company{ID: Hivery, Name: "Hivery"}
	ds.Companies[Acme] = &model.Company{ID: Acme, Name: "Acme"}
	ds.Companies[EmptyCo] = &model.Company{ID: EmptyCo, Name: "Empty Co"}

	ds.Foods["orange"] = &model.Food{ID: "orange", Category: "fruit"}
	ds.Foods["capsicum"] = &model.Food{ID: "capsicum", Category: "vegetable"}

	people := []*model.Person{
		{ID: 1, Name: "Thor", Age: 65, Address: "SYD", Email: "thor@gmail.com", Phone: "+61459849686", EyeColor: "brown", Alive: true, CompanyID: Hivery},
		{ID: 2, Name: "Ironman", Age: 40, Address: "BNE", Email: "ironman@gmail.com", Phone: "+61480123456", EyeColor: "brown", Alive: true, CompanyID: Acme},
		{ID: 3, Name: "CaptainAmerica", Age: 75, Address: "BNE", Email: "captain@gmail.com", Phone: "+61480123456", EyeColor: "brown", Alive: true, CompanyID: Acme},
		{ID: 4, Name: "Hulk", Age: 40, Address: "BNE", Email: "hulk@gmail.com", Phone: "+61480123456", EyeColor: "brown", Alive: true, CompanyID: Acme},
		{ID: 5, Name: "Loki", Age: 1050, Address: "ASG", Email: "loki@gmail.com", Phone: "+61400000005", EyeColor: "brown", Alive: false, CompanyID: Acme},
		{ID: 6, Name: "Vision", Age: 3, Address: "NYC", Email: "vision@gmail.com", Phone: "+61400000006", EyeColor: "blue", Alive: true, CompanyID: Acme},
	}
	for _, p := range people {
		ds.People[p.ID] = p
		ds.Employees[p.CompanyID] = append(ds.Employees[p.CompanyID], p.ID)
	}

	ds.FavouriteFoods[2] = []string{"orange", "capsicum"}
	ds.FavouriteFoods[3] = []string{"orange"}

	for _, pair := range [][2]int{{1, 2}, {1, 3}, {2, 3}, {4, 2}, {4, 3}, {1, 5}, {4, 5}, {1, 6}, {4, 6}} {
		ds.Friends.Add(pair[0], pair[1])
	}
	return ds
}
