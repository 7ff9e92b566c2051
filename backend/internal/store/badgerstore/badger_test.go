package badgerstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hivery/backend/internal/model"
	"hivery/backend/internal/store/storetest"
)

func openSeeded(t *testing.T) *Store {
	t.Helper()
	s, err := Open(InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.SaveAll(context.Background(), storetest.Dataset()))
	return s
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(Config{})
	assert.Error(t, err)
}

func TestOpen_OnDisk(t *testing.T) {
	s, err := Open(Config{Path: filepath.Join(t.TempDir(), "hivery.db")})
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestCompanyByID(t *testing.T) {
	s := openSeeded(t)
	ctx := context.Background()

	c, err := s.CompanyByID(ctx, storetest.Acme)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Acme", c.Name)

	c, err = s.CompanyByID(ctx, storetest.NoSuchCo)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestPersonsByCompanyID(t *testing.T) {
	s := openSeeded(t)
	ctx := context.Background()

	people, err := s.PersonsByCompanyID(ctx, storetest.Acme)
	require.NoError(t, err)
	ids := make([]int, 0, len(people))
	for _, p := range people {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{2, 3, 4, 5, 6}, ids)
	assert.Equal(t, "ironman@gmail.com", people[0].Email)

	people, err = s.PersonsByCompanyID(ctx, storetest.EmptyCo)
	require.NoError(t, err)
	assert.NotNil(t, people)
	assert.Empty(t, people)
}

func TestPersonsByCompanyID_WideIDsStayOrdered(t *testing.T) {
	s, err := Open(InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ds := model.NewDataset()
	ds.Companies[1] = &model.Company{ID: 1, Name: "Hivery"}
	for _, id := range []int{10000000000, 9999999999, 7} {
		ds.People[id] = &model.Person{ID: id, CompanyID: 1}
		ds.Employees[1] = append(ds.Employees[1], id)
	}
	require.NoError(t, s.SaveAll(context.Background(), ds))

	people, err := s.PersonsByCompanyID(context.Background(), 1)
	require.NoError(t, err)
	ids := make([]int, 0, len(people))
	for _, p := range people {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{7, 9999999999, 10000000000}, ids)

	detail, err := s.PersonByID(context.Background(), 10000000000)
	require.NoError(t, err)
	assert.Equal(t, 10000000000, detail.Person.ID)
}

func TestPersonByID_ResolvesRelationships(t *testing.T) {
	s := openSeeded(t)
	ctx := context.Background()

	d, err := s.PersonByID(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, d)

	assert.Equal(t, "Ironman", d.Person.Name)
	assert.Equal(t, []model.Food{
		{ID: "capsicum", Category: "vegetable"},
		{ID: "orange", Category: "fruit"},
	}, d.Foods)

	friendIDs := make([]int, 0, len(d.Friends))
	for _, f := range d.Friends {
		friendIDs = append(friendIDs, f.ID)
	}
	assert.Equal(t, []int{1, 3, 4}, friendIDs)
	assert.Equal(t, "Thor", d.Friends[0].Name)
}

func TestPersonByID_FriendshipIsSymmetric(t *testing.T) {
	s := openSeeded(t)
	ctx := context.Background()

	for id := 1; id <= 6; id++ {
		d, err := s.PersonByID(ctx, id)
		require.NoError(t, err)
		for _, f := range d.Friends {
			other, err := s.PersonByID(ctx, f.ID)
			require.NoError(t, err)
			found := false
			for _, back := range other.Friends {
				if back.ID == id {
					found = true
				}
			}
			assert.True(t, found, "%d lists %d but not vice versa", id, f.ID)
		}
	}
}

func TestPersonByID_Absent(t *testing.T) {
	s := openSeeded(t)

	d, err := s.PersonByID(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestSaveAll_SharedFoodStoredOnce(t *testing.T) {
	s := openSeeded(t)
	ctx := context.Background()

	ironman, err := s.PersonByID(ctx, 2)
	require.NoError(t, err)
	captain, err := s.PersonByID(ctx, 3)
	require.NoError(t, err)

	var fromIronman model.Food
	for _, f := range ironman.Foods {
		if f.ID == "orange" {
			fromIronman = f
		}
	}
	require.Len(t, captain.Foods, 1)
	assert.Equal(t, fromIronman, captain.Foods[0])
}

func TestReset(t *testing.T) {
	s := openSeeded(t)
	ctx := context.Background()

	require.NoError(t, s.Reset(ctx))

	c, err := s.CompanyByID(ctx, storetest.Hivery)
	require.NoError(t, err)
	assert.Nil(t, c)

	people, err := s.PersonsByCompanyID(ctx, storetest.Acme)
	require.NoError(t, err)
	assert.Empty(t, people)
}
