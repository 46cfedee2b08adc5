// Package script binds behavior graphs to handlers written in tengo, so
// graphs authored in the editor can change actor behavior without touching
// Go code. A script defines three functions:
//
//	onEnter(api, state, current, data)
//	update(api, state, current, dt)
//	onExit(api, state, current)
//
// where api is the host-supplied function table, state is a script-owned
// scratch map that persists across calls, and current is the state name.
// All three must be defined; the dispatch stub references them.
package script

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/hollowpine/cryptling/behavior"
)

const dispatchStub = `
if __phase == "enter" {
	onEnter(__api, __state, __current, __data)
} else if __phase == "update" {
	update(__api, __state, __current, __dt)
} else if __phase == "exit" {
	onExit(__api, __state, __current)
}
`

// Runtime is one compiled behavior script plus its persistent scratch map.
// One Runtime serves one actor; the scratch map is per-actor state.
type Runtime struct {
	compiled *tengo.Compiled
	state    *tengo.Map
}

// NewRuntime compiles the script source with the tengo stdlib available and
// the lifecycle dispatch stub appended.
func NewRuntime(src []byte) (*Runtime, error) {
	full := make([]byte, 0, len(src)+len(dispatchStub)+1)
	full = append(full, src...)
	full = append(full, '\n')
	full = append(full, dispatchStub...)

	s := tengo.NewScript(full)
	_ = s.Add("__phase", "")
	_ = s.Add("__api", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	_ = s.Add("__current", "")
	_ = s.Add("__dt", 0.0)
	_ = s.Add("__data", map[string]any{})
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile: %w", err)
	}
	return &Runtime{
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// Handlers builds a handler table covering every state in the graph. Each
// hook re-runs the script with the phase, state name and api injected.
// Script errors cannot surface through hook signatures, so they go to the
// standard logger.
func (rt *Runtime) Handlers(g behavior.Graph, api *tengo.ImmutableMap) behavior.HandlerTable {
	table := make(behavior.HandlerTable, len(g.States)*3)
	for name := range g.States {
		state := name
		table[behavior.HandlerKey(state, behavior.PhaseEnter)] = behavior.EnterFunc(func(data behavior.Data) {
			if err := rt.run(behavior.PhaseEnter, state, api, 0, data); err != nil {
				log.Printf("script: state %s enter: %v", state, err)
			}
		})
		table[behavior.HandlerKey(state, behavior.PhaseUpdate)] = behavior.UpdateFunc(func(dt float64) {
			if err := rt.run(behavior.PhaseUpdate, state, api, dt, nil); err != nil {
				log.Printf("script: state %s update: %v", state, err)
			}
		})
		table[behavior.HandlerKey(state, behavior.PhaseExit)] = behavior.ExitFunc(func() {
			if err := rt.run(behavior.PhaseExit, state, api, 0, nil); err != nil {
				log.Printf("script: state %s exit: %v", state, err)
			}
		})
	}
	return table
}

func (rt *Runtime) run(phase behavior.Phase, current string, api *tengo.ImmutableMap, dt float64, data behavior.Data) error {
	if api == nil {
		api = &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	}
	payload, err := tengo.FromInterface(map[string]any(data))
	if err != nil {
		return err
	}
	if err := rt.compiled.Set("__phase", string(phase)); err != nil {
		return err
	}
	if err := rt.compiled.Set("__api", api); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	if err := rt.compiled.Set("__current", current); err != nil {
		return err
	}
	if err := rt.compiled.Set("__dt", dt); err != nil {
		return err
	}
	if err := rt.compiled.Set("__data", payload); err != nil {
		return err
	}
	return rt.compiled.Run()
}
