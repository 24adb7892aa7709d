package ranking

import "sort"

// DefaultK is the rank damping constant used when none is configured.
const DefaultK = 60

// Fuse merges ranked lists with Reciprocal Rank Fusion.
//
// Every id scores sum(1 / (k + rank + 1)) over the lists it appears in, with
// rank zero-based. Input scores are ignored. The result is sorted by fused
// score descending; ids with equal scores keep the order in which they were
// first seen. Empty lists contribute nothing.
func Fuse(lists [][]Ranked, k int) []Ranked {
	scores := make(map[string]float64)
	var order []string

	for _, list := range lists {
		for rank, item := range list {
			if _, seen := scores[item.ID]; !seen {
				order = append(order, item.ID)
			}
			scores[item.ID] += 1.0 / float64(k+rank+1)
		}
	}

	if len(order) == 0 {
		return nil
	}

	fused := make([]Ranked, len(order))
	for i, id := range order {
		fused[i] = Ranked{ID: id, Score: scores[id]}
	}

	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].Score > fused[j].Score
	})

	return fused
}
