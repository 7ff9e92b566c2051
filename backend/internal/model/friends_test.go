package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFriendGraph_AddIsSymmetric(t *testing.T) {
	g := NewFriendGraph()

	assert.True(t, g.Add(1, 2))
	assert.True(t, g.Has(1, 2))
	assert.True(t, g.Has(2, 1))
	assert.Equal(t, 1, g.Len())
}

func TestFriendGraph_RejectsSelfAndDuplicates(t *testing.T) {
	g := NewFriendGraph()

	assert.False(t, g.Add(3, 3))
	assert.False(t, g.Has(3, 3))

	assert.True(t, g.Add(1, 2))
	assert.False(t, g.Add(2, 1))
	assert.Equal(t, 1, g.Len())
	assert.Equal(t, 1, g.Degree(1))
}

func TestFriendGraph_PairsAndFriends(t *testing.T) {
	g := NewFriendGraph()
	g.Add(4, 1)
	g.Add(2, 1)
	g.Add(3, 2)

	assert.Equal(t, []int{2, 4}, g.Friends(1))
	assert.Equal(t, []int{1, 3}, g.Friends(2))
	assert.Equal(t, []int{}, g.Friends(99))
	assert.Equal(t, [][2]int{{1, 2}, {1, 4}, {2, 3}}, g.Pairs())
}

func TestDataset_SortedIDs(t *testing.T) {
	d := NewDataset()
	d.Companies[3] = &Company{ID: 3}
	d.Companies[1] = &Company{ID: 1}
	d.People[10] = &Person{ID: 10}
	d.People[2] = &Person{ID: 2}
	d.Foods["orange"] = &Food{ID: "orange"}
	d.Foods["apple"] = &Food{ID: "apple"}

	assert.Equal(t, []int{1, 3}, d.CompanyIDs())
	assert.Equal(t, []int{2, 10}, d.PersonIDs())
	assert.Equal(t, []string{"apple", "orange"}, d.FoodIDs())
}
