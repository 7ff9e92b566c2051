package importer

import (
	"sort"

	"hivery/backend/internal/model"
)

// ReconcileStats counts how claimed friendships were settled
type ReconcileStats struct {
	Confirmed int `json:"confirmed"`
	// OneSided counts claims between known people that were not reciprocated
	OneSided int `json:"one_sided"`
	// Dangling counts claims naming a person absent from the dataset
	Dangling int `json:"dangling"`
}

// reconcileFriendships derives confirmed friendships from raw claims. A pair
// is a friendship iff each side claims the other. Each unordered pair is
// settled once, when visited from its lower id.
func reconcileFriendships(claims claimTable) (*model.FriendGraph, ReconcileStats) {
	sets := make(map[int]map[int]struct{}, len(claims))
	for pid, friends := range claims {
		set := make(map[int]struct{}, len(friends))
		for _, f := range friends {
			if f != pid {
				set[f] = struct{}{}
			}
		}
		sets[pid] = set
	}

	ids := make([]int, 0, len(sets))
	for pid := range sets {
		ids = append(ids, pid)
	}
	sort.Ints(ids)

	graph := model.NewFriendGraph()
	var stats ReconcileStats
	for _, a := range ids {
		for b := range sets[a] {
			theirs, known := sets[b]
			if !known {
				stats.Dangling++
				continue
			}
			_, mutual := theirs[a]
			switch {
			case !mutual:
				stats.OneSided++
			case a < b:
				graph.Add(a, b)
				stats.Confirmed++
			}
		}
	}
	return graph, stats
}
