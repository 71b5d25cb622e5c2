package hclust

import (
	"errors"
	"fmt"
)

var (
	// ErrNoComparablePair is returned when every candidate pair of clusters
	// has an incomparable (missing) distance, so no merge can be chosen.
	ErrNoComparablePair = errors.New("hclust: no pair of clusters has a comparable distance")

	// ErrTooFewClusters is returned when a closest-pair search is asked to
	// choose among fewer than two clusters.
	ErrTooFewClusters = errors.New("hclust: at least two clusters are required")

	ErrDuplicateID = errors.New("hclust: duplicate identifier")
	ErrUnknownID   = errors.New("hclust: unknown identifier")
	ErrEmptyVector = errors.New("hclust: vector has no coordinates")
	ErrNilDataset  = errors.New("hclust: dataset is nil")
)

// DimensionMismatchError reports a vector whose length differs from the
// dataset's dimensionality.
type DimensionMismatchError struct {
	ID       string
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("hclust: dimension mismatch for %q: expected %d, got %d", e.ID, e.Expected, e.Actual)
}
