package behavior

import (
	"fmt"
	"sort"
)

// Graph is the declarative shape of a state machine: names and wiring only,
// no behavior. It is what the editor writes and what prefab YAML decodes
// into; handlers arrive separately through a HandlerTable.
type Graph struct {
	Initial string               `yaml:"initial"`
	States  map[string]StateSpec `yaml:"states"`
}

// StateSpec carries the serializable half of a Definition.
type StateSpec struct {
	AllowedTransitions []string `yaml:"allowed_transitions,omitempty"`
}

// HandlerTable maps "{state}_{phase}" keys to hook functions. Accepted value
// types are EnterFunc, UpdateFunc and ExitFunc (or their underlying func
// signatures). A missing key means the state has no hook for that phase.
type HandlerTable map[string]any

// HandlerKey builds the lookup key for one state/phase pair.
func HandlerKey(state string, phase Phase) string {
	return fmt.Sprintf("%s_%s", state, phase)
}

// Compile binds a graph to a handler table and returns a ready machine,
// already inside the graph's initial state. Handler lookups are independent
// per phase; a state with no entries in the table simply has no hooks.
func Compile(actor string, g Graph, handlers HandlerTable, opts ...Option) (*Machine, error) {
	if g.Initial == "" {
		return nil, fmt.Errorf("behavior: graph for actor %s has no initial state", actor)
	}
	if _, ok := g.States[g.Initial]; !ok {
		return nil, fmt.Errorf("behavior: initial state %q is not declared in graph for actor %s", g.Initial, actor)
	}

	built := make([]Option, 0, len(g.States)+len(opts))
	for name, spec := range g.States {
		def := Definition{AllowedTransitions: toStateIDs(spec.AllowedTransitions)}

		if h, ok := handlers[HandlerKey(name, PhaseEnter)]; ok {
			fn, err := asEnterFunc(h)
			if err != nil {
				return nil, fmt.Errorf("behavior: state %s enter handler: %w", name, err)
			}
			def.OnEnter = fn
		}
		if h, ok := handlers[HandlerKey(name, PhaseUpdate)]; ok {
			fn, err := asUpdateFunc(h)
			if err != nil {
				return nil, fmt.Errorf("behavior: state %s update handler: %w", name, err)
			}
			def.OnUpdate = fn
		}
		if h, ok := handlers[HandlerKey(name, PhaseExit)]; ok {
			fn, err := asExitFunc(h)
			if err != nil {
				return nil, fmt.Errorf("behavior: state %s exit handler: %w", name, err)
			}
			def.OnExit = fn
		}

		built = append(built, WithState(StateID(name), def))
	}
	built = append(built, opts...)

	return New(actor, StateID(g.Initial), built...), nil
}

// Validate lists the names referenced by allowed-transition lists that the
// graph never declares. Dangling references are legal at registration time
// (they only fail when a transition targets them), so this is a lint for
// tooling, not a compile error.
func Validate(g Graph) []string {
	declared := make(map[string]bool, len(g.States))
	for name := range g.States {
		declared[name] = true
	}
	seen := map[string]bool{}
	var missing []string
	for _, spec := range g.States {
		for _, target := range spec.AllowedTransitions {
			if !declared[target] && !seen[target] {
				seen[target] = true
				missing = append(missing, target)
			}
		}
	}
	sort.Strings(missing)
	return missing
}

func toStateIDs(names []string) []StateID {
	if len(names) == 0 {
		return nil
	}
	out := make([]StateID, len(names))
	for i, n := range names {
		out[i] = StateID(n)
	}
	return out
}

func asEnterFunc(h any) (EnterFunc, error) {
	switch fn := h.(type) {
	case EnterFunc:
		return fn, nil
	case func(Data):
		return fn, nil
	default:
		return nil, fmt.Errorf("want func(Data), got %T", h)
	}
}

func asUpdateFunc(h any) (UpdateFunc, error) {
	switch fn := h.(type) {
	case UpdateFunc:
		return fn, nil
	case func(float64):
		return fn, nil
	default:
		return nil, fmt.Errorf("want func(float64), got %T", h)
	}
}

func asExitFunc(h any) (ExitFunc, error) {
	switch fn := h.(type) {
	case ExitFunc:
		return fn, nil
	case func():
		return fn, nil
	default:
		return nil, fmt.Errorf("want func(), got %T", h)
	}
}
