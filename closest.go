package hclust

import (
	"fmt"
	"math"
)

// Pair is the result of a closest-pair search.
type Pair struct {
	First, Second Cluster
	Distance      float64

	// Positions of First and Second in the searched slice; i < j.
	i, j int
}

// ClosestPair evaluates linkage on every unordered pair of clusters and
// returns the pair with the smallest comparable distance. Each cluster is
// flattened into the vectors of its leaves, looked up in data.
//
// Pairs are enumerated as (clusters[i], clusters[j]) with i < j, outer loop
// over i. On equal distances the first pair enumerated wins. Incomparable
// pairs are skipped; if no pair is comparable, ErrNoComparablePair is
// returned. A linkage reporting NaN with ok set is treated as incomparable.
func ClosestPair(data *Dataset, clusters []Cluster, linkage Linkage) (Pair, error) {
	p, _, err := closestPair(data, clusters, linkage)
	return p, err
}

// closestPair also reports how many pairs were skipped as incomparable.
func closestPair(data *Dataset, clusters []Cluster, linkage Linkage) (Pair, int, error) {
	if data == nil {
		return Pair{}, 0, ErrNilDataset
	}
	if len(clusters) < 2 {
		return Pair{}, 0, fmt.Errorf("%w: got %d", ErrTooFewClusters, len(clusters))
	}

	members := make([][][]float64, len(clusters))
	for k, c := range clusters {
		vs, err := data.vectorsOf(c)
		if err != nil {
			return Pair{}, 0, err
		}
		members[k] = vs
	}

	best := Pair{i: -1, j: -1}
	skipped := 0
	for i := 0; i < len(clusters); i++ {
		for j := i + 1; j < len(clusters); j++ {
			d, ok := linkage.Distance(members[i], members[j])
			if !ok || math.IsNaN(d) {
				skipped++
				continue
			}
			if best.i == -1 || d < best.Distance {
				best = Pair{First: clusters[i], Second: clusters[j], Distance: d, i: i, j: j}
			}
		}
	}

	if best.i == -1 {
		return Pair{}, skipped, ErrNoComparablePair
	}
	return best, skipped, nil
}
