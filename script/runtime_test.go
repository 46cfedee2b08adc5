package script

import (
	"testing"

	"github.com/d5/tengo/v2"

	"github.com/hollowpine/cryptling/behavior"
)

const testScript = `
onEnter := func(api, state, current, data) {
	api.log("enter:" + current)
	if current == "alert" {
		state.ticks = 0
	}
}

update := func(api, state, current, dt) {
	if current == "calm" {
		if api.threat() > 0.5 {
			api.transition("alert")
		}
	} else if current == "alert" {
		state.ticks += 1
		if state.ticks >= 3 {
			api.transition("calm")
		}
	}
}

onExit := func(api, state, current) {
	api.log("exit:" + current)
}
`

func testGraph() behavior.Graph {
	return behavior.Graph{
		Initial: "calm",
		States: map[string]behavior.StateSpec{
			"calm":  {AllowedTransitions: []string{"alert"}},
			"alert": {AllowedTransitions: []string{"calm"}},
		},
	}
}

func TestRuntimeDrivesMachine(t *testing.T) {
	rt, err := NewRuntime([]byte(testScript))
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}

	var logged []string
	threat := 0.0
	var m *behavior.Machine

	api := API(map[string]tengo.Object{
		"log": Func("log", func(args ...tengo.Object) (tengo.Object, error) {
			logged = append(logged, ArgString(args, 0))
			return tengo.UndefinedValue, nil
		}),
		"threat": Func("threat", func(args ...tengo.Object) (tengo.Object, error) {
			return &tengo.Float{Value: threat}, nil
		}),
		"transition": Func("transition", func(args ...tengo.Object) (tengo.Object, error) {
			if m.Transition(behavior.StateID(ArgString(args, 0)), nil) {
				return tengo.TrueValue, nil
			}
			return tengo.FalseValue, nil
		}),
	})

	m, err = behavior.Compile("wisp-1", testGraph(), rt.Handlers(testGraph(), api),
		behavior.WithReporter(behavior.NopReporter{}))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	// The implicit entry fires inside Compile, before m is assigned; enter
	// hooks only touch the log api so that is safe.
	if len(logged) != 1 || logged[0] != "enter:calm" {
		t.Fatalf("logged = %v after construction", logged)
	}

	m.Update(0.016)
	if m.CurrentState() != "calm" {
		t.Fatalf("low threat should keep calm, got %q", m.CurrentState())
	}

	threat = 0.9
	m.Update(0.016) // script requests alert; applied next tick
	m.Update(0.016)
	if m.CurrentState() != "alert" {
		t.Fatalf("current = %q, want alert", m.CurrentState())
	}

	// Three alert ticks send it back to calm on the following tick.
	threat = 0.0
	m.Update(0.016)
	m.Update(0.016)
	m.Update(0.016)
	if m.CurrentState() != "calm" {
		t.Fatalf("current = %q, want calm after alert ticks", m.CurrentState())
	}

	wantLog := []string{"enter:calm", "exit:calm", "enter:alert", "exit:alert", "enter:calm"}
	if len(logged) != len(wantLog) {
		t.Fatalf("logged = %v, want %v", logged, wantLog)
	}
	for i := range wantLog {
		if logged[i] != wantLog[i] {
			t.Fatalf("log %d = %q, want %q", i, logged[i], wantLog[i])
		}
	}
}

func TestRuntimeScratchStatePersists(t *testing.T) {
	src := `
onEnter := func(api, state, current, data) {}
update := func(api, state, current, dt) {
	if is_undefined(state.total) {
		state.total = 0.0
	}
	state.total += dt
	api.report(state.total)
}
onExit := func(api, state, current) {}
`
	rt, err := NewRuntime([]byte(src))
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}

	var last float64
	api := API(map[string]tengo.Object{
		"report": Func("report", func(args ...tengo.Object) (tengo.Object, error) {
			last = ArgFloat(args, 0)
			return tengo.UndefinedValue, nil
		}),
	})

	g := behavior.Graph{Initial: "only", States: map[string]behavior.StateSpec{"only": {}}}
	m, err := behavior.Compile("wisp-2", g, rt.Handlers(g, api))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	m.Update(0.5)
	m.Update(0.25)
	if last != 0.75 {
		t.Fatalf("script scratch state lost between runs: total = %v", last)
	}
}

func TestRuntimeRejectsIncompleteScript(t *testing.T) {
	if _, err := NewRuntime([]byte(`update := func(api, state, current, dt) {}`)); err == nil {
		t.Fatalf("script without onEnter/onExit should fail to compile")
	}
}
