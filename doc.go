// Package hclust implements agglomerative hierarchical clustering over
// labeled numeric vectors whose coordinates may be missing.
//
// Every item starts as its own cluster. The two closest clusters are merged
// repeatedly until a single root remains; the result is a binary merge tree
// (dendrogram) whose shape records the merge order.
//
// Basic usage:
//
//	data := hclust.NewDataset()
//	data.MustAdd("a", []float64{1, 2})
//	data.MustAdd("b", []float64{2, 3})
//	data.MustAdd("c", []float64{5, 5})
//
//	cfg := hclust.DefaultConfig()
//	cfg.Method = hclust.LinkageAverage
//	cfg.Metric = hclust.ManhattanMetric{}
//	cfg.ReturnDistances = true
//	clusters, err := hclust.Run(data, cfg)
//	// clusters[0].String() == `[["c"], [["a"], ["b"], 2], 6]`
//
// # Missing values
//
// A missing coordinate is NaN (see [Missing]). Vector metrics use only the
// coordinates present in both vectors and rescale the partial sum by
// n/valid; a pair with no comparable coordinate has distance NaN. Linkages
// drop NaN pairwise distances and report ok == false when nothing is left.
// If no pair of clusters is comparable, clustering fails with
// [ErrNoComparablePair].
//
// # Determinism
//
// Items are processed in [Dataset] insertion order. Ties between equally
// close pairs go to the pair enumerated first, scanning clusters in their
// current order with the outer index lower than the inner one. Merged
// clusters are appended at the end.
package hclust
