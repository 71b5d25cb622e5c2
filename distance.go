package hclust

import (
	"fmt"
	"math"
)

// Missing returns the marker used for an absent coordinate and for an
// incomparable distance.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether x is the missing-value marker.
func IsMissing(x float64) bool { return math.IsNaN(x) }

// DistanceMetric computes the distance between two equal-length vectors.
// Implementations return the missing-value marker (NaN) when the vectors
// share no comparable coordinate.
type DistanceMetric interface {
	Distance(a, b []float64) float64
}

// DistanceFunc adapts a plain function into a DistanceMetric.
type DistanceFunc func(a, b []float64) float64

func (f DistanceFunc) Distance(a, b []float64) float64 { return f(a, b) }

// EuclideanMetric computes the Euclidean (L2) distance over the coordinates
// present in both vectors. The sum of squares is rescaled by n/valid before
// the square root, so a partially observed pair is projected to the full
// dimensionality.
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 {
	sum, valid := rawSum(a, b, func(d float64) float64 { return d * d })
	if valid == 0 {
		return math.NaN()
	}
	return math.Sqrt(rescale(sum, len(a), valid))
}

// ManhattanMetric computes the Manhattan (L1 / city-block) distance over the
// coordinates present in both vectors, rescaled by n/valid.
type ManhattanMetric struct{}

func (ManhattanMetric) Distance(a, b []float64) float64 {
	sum, valid := rawSum(a, b, math.Abs)
	if valid == 0 {
		return math.NaN()
	}
	return rescale(sum, len(a), valid)
}

// MinkowskiMetric computes the Minkowski distance parameterized by P, with
// the same missing-coordinate rescaling as EuclideanMetric. P = 1 matches
// ManhattanMetric and P = 2 matches EuclideanMetric.
// P must be >= 1. Panics if P < 1.
type MinkowskiMetric struct {
	P float64
}

func (m MinkowskiMetric) Distance(a, b []float64) float64 {
	if m.P < 1 {
		panic("MinkowskiMetric: P must be >= 1")
	}
	sum, valid := rawSum(a, b, func(d float64) float64 {
		return math.Pow(math.Abs(d), m.P)
	})
	if valid == 0 {
		return math.NaN()
	}
	return math.Pow(rescale(sum, len(a), valid), 1.0/m.P)
}

// rawSum accumulates term(a[i]-b[i]) over coordinates where neither value is
// missing and returns the sum with the number of coordinates it covers.
func rawSum(a, b []float64, term func(float64) float64) (float64, int) {
	var sum float64
	valid := 0
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		sum += term(a[i] - b[i])
		valid++
	}
	return sum, valid
}

func rescale(sum float64, n, valid int) float64 {
	return sum * float64(n) / float64(valid)
}

// MetricByName resolves a built-in metric from its lowercase name.
func MetricByName(name string) (DistanceMetric, error) {
	switch name {
	case "euclidean":
		return EuclideanMetric{}, nil
	case "manhattan":
		return ManhattanMetric{}, nil
	default:
		return nil, fmt.Errorf("hclust: unknown metric %q (want \"euclidean\" or \"manhattan\")", name)
	}
}
