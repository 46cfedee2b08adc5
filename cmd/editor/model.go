package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/hollowpine/cryptling/behavior"
	"github.com/hollowpine/cryptling/prefabs"
)

// Model is the editable graph document: a GraphSpec plus the file it came
// from and the currently selected state.
type Model struct {
	Path     string
	Spec     prefabs.GraphSpec
	Selected string
	Dirty    bool
}

func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("editor: read %s: %w", path, err)
	}
	var spec prefabs.GraphSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("editor: parse %s: %w", path, err)
	}
	if spec.Graph.States == nil {
		spec.Graph.States = map[string]behavior.StateSpec{}
	}
	m := &Model{Path: path, Spec: spec, Selected: spec.Graph.Initial}
	return m, nil
}

// NewModel starts an empty document with a single initial state, so the
// editor never has to render a graph with no states.
func NewModel(path string) *Model {
	return &Model{
		Path: path,
		Spec: prefabs.GraphSpec{
			Name: "untitled",
			Graph: behavior.Graph{
				Initial: "idle",
				States:  map[string]behavior.StateSpec{"idle": {}},
			},
		},
		Selected: "idle",
		Dirty:    true,
	}
}

// StateNames returns the declared states sorted, for stable UI layout.
func (m *Model) StateNames() []string {
	names := make([]string, 0, len(m.Spec.Graph.States))
	for name := range m.Spec.Graph.States {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Model) AddState(name string) bool {
	if name == "" {
		return false
	}
	if _, exists := m.Spec.Graph.States[name]; exists {
		return false
	}
	m.Spec.Graph.States[name] = behavior.StateSpec{}
	m.Selected = name
	m.Dirty = true
	return true
}

// RemoveState deletes a state and scrubs it from every allowed list. The
// initial state cannot be removed; re-point the initial first.
func (m *Model) RemoveState(name string) bool {
	if name == m.Spec.Graph.Initial {
		return false
	}
	if _, exists := m.Spec.Graph.States[name]; !exists {
		return false
	}
	delete(m.Spec.Graph.States, name)
	for from, spec := range m.Spec.Graph.States {
		kept := spec.AllowedTransitions[:0]
		for _, t := range spec.AllowedTransitions {
			if t != name {
				kept = append(kept, t)
			}
		}
		spec.AllowedTransitions = kept
		m.Spec.Graph.States[from] = spec
	}
	if m.Selected == name {
		m.Selected = m.Spec.Graph.Initial
	}
	m.Dirty = true
	return true
}

func (m *Model) SetInitial(name string) bool {
	if _, exists := m.Spec.Graph.States[name]; !exists {
		return false
	}
	m.Spec.Graph.Initial = name
	m.Dirty = true
	return true
}

// HasTransition reports whether from's allowed list names to.
func (m *Model) HasTransition(from, to string) bool {
	for _, t := range m.Spec.Graph.States[from].AllowedTransitions {
		if t == to {
			return true
		}
	}
	return false
}

// ToggleTransition adds to to from's allowed list, or removes it when
// already present.
func (m *Model) ToggleTransition(from, to string) {
	spec, exists := m.Spec.Graph.States[from]
	if !exists {
		return
	}
	if m.HasTransition(from, to) {
		kept := spec.AllowedTransitions[:0]
		for _, t := range spec.AllowedTransitions {
			if t != to {
				kept = append(kept, t)
			}
		}
		spec.AllowedTransitions = kept
	} else {
		spec.AllowedTransitions = append(spec.AllowedTransitions, to)
	}
	m.Spec.Graph.States[from] = spec
	m.Dirty = true
}

// Problems runs graph validation: dangling allowed-transition targets.
func (m *Model) Problems() []string {
	return behavior.Validate(m.Spec.Graph)
}

func (m *Model) YAML() ([]byte, error) {
	return yaml.Marshal(m.Spec)
}

func (m *Model) Save() error {
	raw, err := m.YAML()
	if err != nil {
		return fmt.Errorf("editor: marshal: %w", err)
	}
	if err := os.WriteFile(m.Path, raw, 0o644); err != nil {
		return fmt.Errorf("editor: write %s: %w", m.Path, err)
	}
	m.Dirty = false
	return nil
}
