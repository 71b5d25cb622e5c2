package hclust

// unionFind replays a linkage matrix. It has 2*n - 1 slots: leaves are
// 0..n-1 and the k-th merge creates cluster n+k, which becomes the parent
// of both merged roots.
type unionFind struct {
	parent []int
	// next is the id handed to the next merge, starting at n.
	next int
}

func newUnionFind(n int) *unionFind {
	total := max(2*n-1, 1)
	parent := make([]int, total)
	for i := range parent {
		parent[i] = -1 // -1 means "is a root"
	}
	return &unionFind{parent: parent, next: n}
}

// find returns the root of x, with path compression.
func (uf *unionFind) find(x int) int {
	root := x
	for uf.parent[root] != -1 {
		root = uf.parent[root]
	}
	for uf.parent[x] != -1 {
		x, uf.parent[x] = uf.parent[x], root
	}
	return root
}

// isRoot reports whether x is a cluster id that exists and is not yet merged.
func (uf *unionFind) isRoot(x int) bool {
	return x >= 0 && x < uf.next && uf.parent[x] == -1
}

// merge joins the roots a and b under a fresh id and returns it.
func (uf *unionFind) merge(a, b int) int {
	id := uf.next
	uf.parent[a] = id
	uf.parent[b] = id
	uf.next++
	return id
}
