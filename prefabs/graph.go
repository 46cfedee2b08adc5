package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hollowpine/cryptling/behavior"
)

// LoadSpec decodes an embedded YAML prefab into the given spec type.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GraphSpec wraps a behavior graph with the metadata a graph file carries:
// a display name and an optional script that supplies the handlers.
type GraphSpec struct {
	Name   string         `yaml:"name"`
	Script string         `yaml:"script,omitempty"`
	Graph  behavior.Graph `yaml:"graph"`
}

// LoadGraph reads a graph descriptor from graphs/<name>.yaml.
func LoadGraph(name string) (GraphSpec, error) {
	spec, err := LoadSpec[GraphSpec](name)
	if err != nil {
		return GraphSpec{}, err
	}
	if spec.Graph.Initial == "" {
		return GraphSpec{}, fmt.Errorf("prefabs: graph %s has no initial state", name)
	}
	return spec, nil
}
