package behavior

// Snapshot is a structural picture of a machine: identity and wiring, never
// behavior. Handler functions are deliberately absent; they are host-owned
// code, not serializable configuration.
type Snapshot struct {
	Actor   string               `yaml:"actor"`
	Initial string               `yaml:"initial"`
	Current string               `yaml:"current"`
	States  map[string]StateSpec `yaml:"states"`
}

// Snapshot captures the machine's registered states and their allowed
// transitions alongside the actor id, initial and current state names.
func (m *Machine) Snapshot() Snapshot {
	states := make(map[string]StateSpec, len(m.states))
	for name, def := range m.states {
		var allowed []string
		if len(def.AllowedTransitions) > 0 {
			allowed = make([]string, len(def.AllowedTransitions))
			for i, t := range def.AllowedTransitions {
				allowed[i] = string(t)
			}
		}
		states[string(name)] = StateSpec{AllowedTransitions: allowed}
	}
	return Snapshot{
		Actor:   m.actor,
		Initial: string(m.initial),
		Current: string(m.current),
		States:  states,
	}
}

// Graph converts the snapshot back into a compilable graph, closing the
// round trip: Compile(actor, snap.Graph(), handlers) rebuilds an equivalent
// machine in its initial state.
func (s Snapshot) Graph() Graph {
	states := make(map[string]StateSpec, len(s.States))
	for name, spec := range s.States {
		states[name] = spec
	}
	return Graph{Initial: s.Initial, States: states}
}
