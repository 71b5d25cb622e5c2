package hclust

import "fmt"

// FlatLabels cuts a complete dendrogram into k flat clusters. linkage is the
// n-1 row matrix produced by RunLinkage; the first n-k merges are replayed
// and every leaf is labeled 0..k-1 in order of first appearance.
func FlatLabels(linkage [][4]float64, n, k int) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("hclust: n must be >= 0, got %d", n)
	}
	if n == 0 {
		return []int{}, nil
	}
	if len(linkage) != n-1 {
		return nil, fmt.Errorf("hclust: linkage has %d rows, want %d for n=%d", len(linkage), n-1, n)
	}
	if k < 1 || k > n {
		return nil, fmt.Errorf("hclust: k must be in [1, %d], got %d", n, k)
	}

	uf := newUnionFind(n)
	for r, row := range linkage[:n-k] {
		a, b := int(row[0]), int(row[1])
		if a == b || !uf.isRoot(a) || !uf.isRoot(b) {
			return nil, fmt.Errorf("hclust: linkage row %d joins %d and %d, which are not both unmerged clusters", r, a, b)
		}
		uf.merge(a, b)
	}

	labels := make([]int, n)
	seen := make(map[int]int, k)
	for i := range labels {
		root := uf.find(i)
		l, ok := seen[root]
		if !ok {
			l = len(seen)
			seen[root] = l
		}
		labels[i] = l
	}
	return labels, nil
}
