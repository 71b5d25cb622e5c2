// Package dataio decodes clustering input files.
//
// An input document is a YAML (or JSON) mapping from identifier to a
// sequence of numbers:
//
//	Albert: [22, 81, 32]
//	Branka: [91, ~, 65]
//	Cene:   [51, 89, .nan]
//
// Mapping order is kept and becomes the dataset's canonical order. A missing
// coordinate may be written as null, ~, .nan, NaN, NA or "?".
package dataio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/TrevorS/hclust"
)

// Decode reads one document from r. An empty document yields an empty
// dataset.
func Decode(r io.Reader) (*hclust.Dataset, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return hclust.NewDataset(), nil
		}
		return nil, fmt.Errorf("dataio: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return hclust.NewDataset(), nil
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("dataio: line %d: expected a mapping of identifier to vector", root.Line)
	}

	data := hclust.NewDataset()
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("dataio: line %d: identifier must be a scalar", key.Line)
		}
		vec, err := decodeVector(val)
		if err != nil {
			return nil, fmt.Errorf("dataio: %q: %w", key.Value, err)
		}
		if err := data.Add(key.Value, vec); err != nil {
			return nil, fmt.Errorf("dataio: line %d: %w", key.Line, err)
		}
	}
	return data, nil
}

// LoadFile decodes the file at path.
func LoadFile(path string) (*hclust.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataio: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func decodeVector(n *yaml.Node) ([]float64, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: expected a sequence of numbers", n.Line)
	}
	vec := make([]float64, len(n.Content))
	for i, c := range n.Content {
		x, err := decodeValue(c)
		if err != nil {
			return nil, err
		}
		vec[i] = x
	}
	return vec, nil
}

func decodeValue(n *yaml.Node) (float64, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		return 0, fmt.Errorf("line %d column %d: expected a number", n.Line, n.Column)
	}
	if n.ShortTag() == "!!null" {
		return math.NaN(), nil
	}
	switch strings.TrimSpace(n.Value) {
	case "?", "NaN", "nan", "NA":
		return math.NaN(), nil
	}
	var x float64
	if err := n.Decode(&x); err != nil {
		return 0, fmt.Errorf("line %d column %d: %q is not a number", n.Line, n.Column, n.Value)
	}
	return x, nil
}
