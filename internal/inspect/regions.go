package inspect

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/backtension/internal/errors"
	"github.com/vango-dev/backtension/pkg/zone"
)

// LoadRegions reads a YAML region file. A missing path yields an empty
// descriptor.
func LoadRegions(path string) (zone.Descriptor, error) {
	if path == "" {
		return zone.Descriptor{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E144").
			WithLocation(path, 0, 0).
			WithSuggestion("Check the --regions path").
			Wrap(err)
	}
	return ParseRegions(path, data)
}

// ParseRegions decodes a region descriptor. Every value must be a
// selector string, null, or a nested mapping of the same shape; name is
// used in error locations.
func ParseRegions(name string, data []byte) (zone.Descriptor, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.New("E143").
			WithLocationFromError(name, err).
			Wrap(err)
	}
	if len(doc.Content) == 0 {
		return zone.Descriptor{}, nil
	}
	d, err := decodeRegions(name, doc.Content[0])
	if err != nil {
		return nil, err
	}
	return zone.Descriptor(d), nil
}

func decodeRegions(name string, n *yaml.Node) (map[string]any, error) {
	if n.Kind != yaml.MappingNode {
		return nil, regionShapeError(name, n, "expected a mapping of region names")
	}
	out := make(map[string]any, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		switch value.Kind {
		case yaml.ScalarNode:
			if value.Tag == "!!null" {
				out[key.Value] = nil
				continue
			}
			out[key.Value] = value.Value
		case yaml.MappingNode:
			nested, err := decodeRegions(name, value)
			if err != nil {
				return nil, err
			}
			out[key.Value] = nested
		default:
			return nil, regionShapeError(name, value,
				fmt.Sprintf("region %q must be a selector or a mapping", key.Value))
		}
	}
	return out, nil
}

func regionShapeError(name string, n *yaml.Node, detail string) error {
	return errors.New("E143").
		WithLocation(name, n.Line, n.Column).
		WithDetail(detail).
		WithSuggestion("Write leaves as name: selector and nest regions as mappings")
}
