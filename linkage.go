package hclust

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// LinkageMethod names a built-in linkage policy.
type LinkageMethod string

const (
	LinkageSingle   LinkageMethod = "single"
	LinkageComplete LinkageMethod = "complete"
	LinkageAverage  LinkageMethod = "average"
)

// Linkage computes the distance between two clusters, each given as the list
// of its member vectors. ok is false when no pair of members is comparable.
type Linkage interface {
	Distance(a, b [][]float64) (d float64, ok bool)
}

// LinkageFunc adapts a plain function into a Linkage.
type LinkageFunc func(a, b [][]float64) (float64, bool)

func (f LinkageFunc) Distance(a, b [][]float64) (float64, bool) { return f(a, b) }

// SingleLinkage uses the smallest comparable pairwise distance.
type SingleLinkage struct {
	Metric DistanceMetric
}

func (l SingleLinkage) Distance(a, b [][]float64) (float64, bool) {
	ds := pairwise(a, b, l.Metric)
	if len(ds) == 0 {
		return 0, false
	}
	return floats.Min(ds), true
}

// CompleteLinkage uses the largest comparable pairwise distance.
type CompleteLinkage struct {
	Metric DistanceMetric
}

func (l CompleteLinkage) Distance(a, b [][]float64) (float64, bool) {
	ds := pairwise(a, b, l.Metric)
	if len(ds) == 0 {
		return 0, false
	}
	return floats.Max(ds), true
}

// AverageLinkage uses the arithmetic mean of the comparable pairwise
// distances.
type AverageLinkage struct {
	Metric DistanceMetric
}

func (l AverageLinkage) Distance(a, b [][]float64) (float64, bool) {
	ds := pairwise(a, b, l.Metric)
	if len(ds) == 0 {
		return 0, false
	}
	return stat.Mean(ds, nil), true
}

// pairwise returns metric(x, y) for every x in a and y in b, in row-major
// order, leaving out incomparable pairs.
func pairwise(a, b [][]float64, metric DistanceMetric) []float64 {
	ds := make([]float64, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			if d := metric.Distance(x, y); !math.IsNaN(d) {
				ds = append(ds, d)
			}
		}
	}
	return ds
}

// NewLinkage builds the built-in linkage for method over metric.
func NewLinkage(method LinkageMethod, metric DistanceMetric) (Linkage, error) {
	if metric == nil {
		return nil, fmt.Errorf("hclust: linkage %q needs a metric", method)
	}
	switch method {
	case LinkageSingle:
		return SingleLinkage{Metric: metric}, nil
	case LinkageComplete:
		return CompleteLinkage{Metric: metric}, nil
	case LinkageAverage:
		return AverageLinkage{Metric: metric}, nil
	default:
		return nil, fmt.Errorf("hclust: invalid linkage method %q", method)
	}
}
