package model

import "sort"

// FriendGraph is a symmetric, irreflexive relation over person ids
type FriendGraph struct {
	adj   map[int]map[int]struct{}
	pairs int
}

// NewFriendGraph returns an empty graph
func NewFriendGraph() *FriendGraph {
	return &FriendGraph{adj: make(map[int]map[int]struct{})}
}

// Add records a friendship between a and b in both directions. Self pairs
// and pairs already present are ignored; the return value reports whether
// a new edge was added.
func (g *FriendGraph) Add(a, b int) bool {
	if a == b || g.Has(a, b) {
		return false
	}
	g.link(a, b)
	g.link(b, a)
	g.pairs++
	return true
}

func (g *FriendGraph) link(from, to int) {
	set, ok := g.adj[from]
	if !ok {
		set = make(map[int]struct{})
		g.adj[from] = set
	}
	set[to] = struct{}{}
}

// Has reports whether a and b are friends
func (g *FriendGraph) Has(a, b int) bool {
	_, ok := g.adj[a][b]
	return ok
}

// Friends returns the friend ids of id in ascending order
func (g *FriendGraph) Friends(id int) []int {
	set := g.adj[id]
	ids := make([]int, 0, len(set))
	for f := range set {
		ids = append(ids, f)
	}
	sort.Ints(ids)
	return ids
}

// Degree returns the number of friends of id
func (g *FriendGraph) Degree(id int) int {
	return len(g.adj[id])
}

// Len returns the number of unordered friendship pairs
func (g *FriendGraph) Len() int {
	return g.pairs
}

// Pairs returns every friendship once as [lower, higher], sorted
func (g *FriendGraph) Pairs() [][2]int {
	out := make([][2]int, 0, g.pairs)
	for a, set := range g.adj {
		for b := range set {
			if a < b {
				out = append(out, [2]int{a, b})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}
