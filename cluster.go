package hclust

import (
	"math"
	"strconv"
	"strings"
)

// Cluster is a node of the dendrogram: either a *Leaf holding one identifier
// or a *Merge joining two child clusters. Clusters are never modified after
// construction; merging creates a new parent.
type Cluster interface {
	// Leaves returns the identifiers under this node, left to right.
	Leaves() []string
	// Size is the number of leaves under this node.
	Size() int
	String() string

	appendLeaves(dst []string) []string
	writeTo(sb *strings.Builder)
}

// Leaf wraps a single input identifier.
type Leaf struct {
	ID string
}

func (l *Leaf) Leaves() []string { return []string{l.ID} }
func (l *Leaf) Size() int        { return 1 }

func (l *Leaf) String() string {
	var sb strings.Builder
	l.writeTo(&sb)
	return sb.String()
}

func (l *Leaf) appendLeaves(dst []string) []string { return append(dst, l.ID) }

func (l *Leaf) writeTo(sb *strings.Builder) {
	sb.WriteByte('[')
	sb.WriteString(strconv.Quote(l.ID))
	sb.WriteByte(']')
}

// Merge is an internal node. Distance is meaningful only when HasDistance is
// set, which happens when the engine runs with Config.ReturnDistances.
type Merge struct {
	Left, Right Cluster
	Distance    float64
	HasDistance bool
}

// NewMerge joins left and right without a recorded distance.
func NewMerge(left, right Cluster) *Merge {
	return &Merge{Left: left, Right: right}
}

// NewMergeWithDistance joins left and right at distance d.
func NewMergeWithDistance(left, right Cluster, d float64) *Merge {
	m := NewMerge(left, right)
	m.Distance = d
	m.HasDistance = true
	return m
}

func (m *Merge) Leaves() []string { return m.appendLeaves(make([]string, 0, m.Size())) }

func (m *Merge) Size() int { return m.Left.Size() + m.Right.Size() }

// String renders the nested-list form, e.g. [["c"], [["a"], ["b"], 2], 6].
// The trailing distance is present only when recorded.
func (m *Merge) String() string {
	var sb strings.Builder
	m.writeTo(&sb)
	return sb.String()
}

func (m *Merge) appendLeaves(dst []string) []string {
	dst = m.Left.appendLeaves(dst)
	return m.Right.appendLeaves(dst)
}

func (m *Merge) writeTo(sb *strings.Builder) {
	sb.WriteByte('[')
	m.Left.writeTo(sb)
	sb.WriteString(", ")
	m.Right.writeTo(sb)
	if m.HasDistance {
		sb.WriteString(", ")
		sb.WriteString(strconv.FormatFloat(m.Distance, 'g', -1, 64))
	}
	sb.WriteByte(']')
}

// Walk visits c and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func Walk(c Cluster, fn func(Cluster) bool) {
	if !fn(c) {
		return
	}
	if m, ok := c.(*Merge); ok {
		Walk(m.Left, fn)
		Walk(m.Right, fn)
	}
}

// Equivalent reports whether a and b describe the same dendrogram, treating
// the two children of every merge as unordered. Recorded distances must be
// present on both or neither, and agree within tol.
func Equivalent(a, b Cluster, tol float64) bool {
	switch x := a.(type) {
	case *Leaf:
		y, ok := b.(*Leaf)
		return ok && x.ID == y.ID
	case *Merge:
		y, ok := b.(*Merge)
		if !ok || x.HasDistance != y.HasDistance {
			return false
		}
		if x.HasDistance && math.Abs(x.Distance-y.Distance) > tol {
			return false
		}
		if Equivalent(x.Left, y.Left, tol) && Equivalent(x.Right, y.Right, tol) {
			return true
		}
		return Equivalent(x.Left, y.Right, tol) && Equivalent(x.Right, y.Left, tol)
	}
	return false
}
