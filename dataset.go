package hclust

import (
	"fmt"
	"slices"
)

// Dataset is an ordered mapping from identifier to vector. Insertion order is
// the canonical processing order: it fixes the initial clustering and
// therefore how ties between equally distant pairs are broken.
type Dataset struct {
	ids     []string
	vectors map[string][]float64
	dim     int
}

// NewDataset returns an empty Dataset.
func NewDataset() *Dataset {
	return &Dataset{vectors: make(map[string][]float64)}
}

// DatasetFromMap builds a Dataset from m, taking identifiers in the order
// given by ids. Every id must be present in m.
func DatasetFromMap(ids []string, m map[string][]float64) (*Dataset, error) {
	d := NewDataset()
	for _, id := range ids {
		v, ok := m[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownID, id)
		}
		if err := d.Add(id, v); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Add appends id with a copy of vec. The first vector fixes the
// dimensionality; later vectors must match it.
func (d *Dataset) Add(id string, vec []float64) error {
	if _, dup := d.vectors[id]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	if len(vec) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyVector, id)
	}
	if len(d.ids) == 0 {
		d.dim = len(vec)
	} else if len(vec) != d.dim {
		return &DimensionMismatchError{ID: id, Expected: d.dim, Actual: len(vec)}
	}
	d.ids = append(d.ids, id)
	d.vectors[id] = slices.Clone(vec)
	return nil
}

// MustAdd is like Add but panics on error. Intended for fixtures and examples.
func (d *Dataset) MustAdd(id string, vec []float64) *Dataset {
	if err := d.Add(id, vec); err != nil {
		panic(err)
	}
	return d
}

// IDs returns the identifiers in canonical order.
func (d *Dataset) IDs() []string { return slices.Clone(d.ids) }

// Vector returns the vector stored for id. The returned slice must not be
// modified.
func (d *Dataset) Vector(id string) ([]float64, bool) {
	v, ok := d.vectors[id]
	return v, ok
}

func (d *Dataset) Len() int { return len(d.ids) }

// Dim returns the dimensionality, or 0 for an empty Dataset.
func (d *Dataset) Dim() int { return d.dim }

// vectorsOf flattens c into the vectors of its leaves, left to right.
func (d *Dataset) vectorsOf(c Cluster) ([][]float64, error) {
	ids := c.Leaves()
	out := make([][]float64, len(ids))
	for i, id := range ids {
		v, ok := d.vectors[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownID, id)
		}
		out[i] = v
	}
	return out, nil
}
