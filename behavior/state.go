package behavior

// StateID identifies a named state inside a Machine.
type StateID string

// Phase names one of the three lifecycle hooks of a state.
type Phase string

const (
	PhaseEnter  Phase = "enter"
	PhaseUpdate Phase = "update"
	PhaseExit   Phase = "exit"
)

// Data carries contextual payload into a state's enter hook. The machine
// only forwards it; it never reads or mutates the map.
type Data map[string]any

type (
	EnterFunc  func(data Data)
	UpdateFunc func(dt float64)
	ExitFunc   func()
)

// Definition describes one state. All three hooks are optional. An empty
// AllowedTransitions list means the state may transition anywhere; it does
// NOT mean "no outgoing transitions". Authors wanting a terminal state must
// list a transition target that is never requested.
type Definition struct {
	OnEnter            EnterFunc
	OnUpdate           UpdateFunc
	OnExit             ExitFunc
	AllowedTransitions []StateID
}

func (d Definition) allows(target StateID) bool {
	if len(d.AllowedTransitions) == 0 {
		return true
	}
	for _, t := range d.AllowedTransitions {
		if t == target {
			return true
		}
	}
	return false
}
