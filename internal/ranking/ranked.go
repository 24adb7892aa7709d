// Package ranking holds the ranked-list types shared by retrieval signals and
// the Reciprocal Rank Fusion used to merge them.
package ranking

// Ranked is one entry of a signal's ranked list. Higher scores are better.
// Scores from different signals are not comparable.
type Ranked struct {
	ID    string
	Score float64
}

// Neighbor is a nearest-neighbour hit from a vector index.
// Smaller distances are closer.
type Neighbor struct {
	ID       string
	Distance float64
}

// Similarity converts a vector distance into a score where higher is better.
func Similarity(distance float64) float64 {
	return 1.0 / (1.0 + distance)
}

// FromNeighbors converts nearest-neighbour hits into a ranked list, keeping order.
func FromNeighbors(neighbors []Neighbor) []Ranked {
	if len(neighbors) == 0 {
		return nil
	}
	ranked := make([]Ranked, len(neighbors))
	for i, n := range neighbors {
		ranked[i] = Ranked{ID: n.ID, Score: Similarity(n.Distance)}
	}
	return ranked
}

// IDs returns the ids of a ranked list in order.
func IDs(ranked []Ranked) []string {
	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ID
	}
	return ids
}
