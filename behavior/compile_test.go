package behavior

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func patrolGraph() Graph {
	return Graph{
		Initial: "idle",
		States: map[string]StateSpec{
			"idle":   {AllowedTransitions: []string{"chase"}},
			"chase":  {AllowedTransitions: []string{"idle", "attack"}},
			"attack": {AllowedTransitions: []string{"idle"}},
		},
	}
}

func TestCompileErrors(t *testing.T) {
	cases := []struct {
		name  string
		graph Graph
	}{
		{"missing_initial", Graph{States: map[string]StateSpec{"idle": {}}}},
		{"initial_not_declared", Graph{Initial: "ghost", States: map[string]StateSpec{"idle": {}}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Compile("enemy", c.graph, nil); err == nil {
				t.Fatalf("expected compile error")
			}
		})
	}
}

func TestCompileBindsHandlersPerPhase(t *testing.T) {
	var calls []string
	handlers := HandlerTable{
		"idle_enter":  func(Data) { calls = append(calls, "idle_enter") },
		"idle_update": func(dt float64) { calls = append(calls, "idle_update") },
		"idle_exit":   func() { calls = append(calls, "idle_exit") },
		"chase_enter": func(Data) { calls = append(calls, "chase_enter") },
		// chase has no update/exit entries: absence is not an error.
	}

	m, err := Compile("enemy", patrolGraph(), handlers, WithReporter(NopReporter{}))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if m.CurrentState() != "idle" {
		t.Fatalf("compiled machine starts in %q, want idle", m.CurrentState())
	}

	m.Update(0.016)
	m.Transition("chase", nil)
	m.Update(0.016) // chase has no OnUpdate; must be a clean no-op

	want := []string{"idle_enter", "idle_update", "idle_exit", "chase_enter"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("call %d = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestCompileRejectsWrongHandlerType(t *testing.T) {
	cases := []struct {
		name string
		key  string
		fn   any
	}{
		{"enter_with_exit_signature", "idle_enter", func() {}},
		{"update_with_enter_signature", "idle_update", func(Data) {}},
		{"exit_with_update_signature", "idle_exit", func(dt float64) {}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Compile("enemy", patrolGraph(), HandlerTable{c.key: c.fn})
			if err == nil {
				t.Fatalf("expected type error for %s", c.key)
			}
		})
	}
}

func TestCompiledMachineEnforcesGraph(t *testing.T) {
	m, err := Compile("enemy", patrolGraph(), nil, WithReporter(NopReporter{}))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if m.Transition("attack", nil) {
		t.Fatalf("idle -> attack should be rejected by the compiled graph")
	}
	if !m.Transition("chase", nil) || !m.Transition("attack", nil) {
		t.Fatalf("idle -> chase -> attack should be accepted")
	}
}

func TestValidateReportsDanglingTargets(t *testing.T) {
	g := Graph{
		Initial: "idle",
		States: map[string]StateSpec{
			"idle":  {AllowedTransitions: []string{"chase", "flee"}},
			"chase": {AllowedTransitions: []string{"idle", "burrow"}},
		},
	}
	missing := Validate(g)
	if len(missing) != 2 || missing[0] != "burrow" || missing[1] != "flee" {
		t.Fatalf("missing = %v, want [burrow flee]", missing)
	}
	if got := Validate(patrolGraph()); len(got) != 0 {
		t.Fatalf("complete graph reported missing states: %v", got)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	m, err := Compile("ghoul-7", patrolGraph(), nil, WithReporter(NopReporter{}))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	m.Transition("chase", nil)

	snap := m.Snapshot()
	if snap.Actor != "ghoul-7" || snap.Initial != "idle" || snap.Current != "chase" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if got := snap.States["chase"].AllowedTransitions; len(got) != 2 {
		t.Fatalf("chase allowed = %v", got)
	}

	// The snapshot survives YAML and still compiles back into a machine
	// with the same wiring, in the initial state.
	raw, err := yaml.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded Snapshot
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	rebuilt, err := Compile(decoded.Actor, decoded.Graph(), nil, WithReporter(NopReporter{}))
	if err != nil {
		t.Fatalf("recompile: %v", err)
	}
	if rebuilt.CurrentState() != "idle" {
		t.Fatalf("rebuilt machine starts in %q, want idle", rebuilt.CurrentState())
	}
	if rebuilt.Transition("attack", nil) {
		t.Fatalf("rebuilt machine lost the allowed-transition wiring")
	}
}
