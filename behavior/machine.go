package behavior

import "time"

// Machine is a per-actor finite state machine. One instance governs one
// actor; the host game loop drives it with Update once per tick and requests
// state changes through Transition/ForceTransition. All calls are
// synchronous and single-threaded, matching the host loop.
type Machine struct {
	actor    string
	initial  StateID
	states   map[StateID]Definition
	current  StateID
	previous StateID
	elapsed  float64
	active   bool
	history  *historyRing
	reporter Reporter

	// Transitions requested from inside a hook are parked here and applied
	// at the start of the next Update tick, because the exit/enter
	// bookkeeping is not reentrant. Last request wins.
	inHandler  bool
	hasPending bool
	pending    pendingRequest
}

type pendingRequest struct {
	target StateID
	data   Data
	forced bool
}

type Option func(*Machine)

// WithState registers a state before the machine performs its implicit
// first entry, so the initial state's OnEnter fires during New.
func WithState(name StateID, def Definition) Option {
	return func(m *Machine) {
		m.states[name] = def
	}
}

// WithHistorySize overrides the default history capacity of 10.
func WithHistorySize(n int) Option {
	return func(m *Machine) {
		m.history = newHistoryRing(n)
	}
}

func WithReporter(r Reporter) Option {
	return func(m *Machine) {
		if r != nil {
			m.reporter = r
		}
	}
}

// New builds a machine and immediately enters the initial state: elapsed
// time starts at zero, a history record with no origin is appended, and the
// initial state's OnEnter (if registered) runs with empty data.
func New(actor string, initial StateID, opts ...Option) *Machine {
	m := &Machine{
		actor:    actor,
		initial:  initial,
		states:   map[StateID]Definition{},
		active:   true,
		history:  newHistoryRing(DefaultHistorySize),
		reporter: LogReporter{},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.enterInitial()
	return m
}

// RegisterState inserts or replaces a state definition. The current state
// is never affected, even when it is the one being replaced.
func (m *Machine) RegisterState(name StateID, def Definition) {
	m.states[name] = def
}

func (m *Machine) Actor() string          { return m.actor }
func (m *Machine) InitialState() StateID  { return m.initial }
func (m *Machine) CurrentState() StateID  { return m.current }
func (m *Machine) PreviousState() StateID { return m.previous }
func (m *Machine) ElapsedTime() float64   { return m.elapsed }
func (m *Machine) Active() bool           { return m.active }

// Transition requests a state change subject to the current state's allowed
// list. It returns false and leaves the machine untouched when the target is
// unregistered or not allowed; both rejections go to the reporter. On
// success the current state's OnExit and the target's OnEnter run, in that
// order, before Transition returns.
func (m *Machine) Transition(target StateID, data Data) bool {
	return m.request(target, data, false)
}

// ForceTransition is Transition without the allowed-list check. The target
// must still be registered.
func (m *Machine) ForceTransition(target StateID, data Data) bool {
	return m.request(target, data, true)
}

func (m *Machine) request(target StateID, data Data, forced bool) bool {
	if _, ok := m.states[target]; !ok {
		m.reporter.ReportUnknownState(m.actor, target)
		return false
	}
	if m.inHandler {
		m.pending = pendingRequest{target: target, data: data, forced: forced}
		m.hasPending = true
		return true
	}
	if !forced {
		if cur, ok := m.states[m.current]; ok && !cur.allows(target) {
			m.reporter.ReportIllegalTransition(m.actor, m.current, target)
			return false
		}
	}
	m.perform(target, data)
	return true
}

func (m *Machine) perform(target StateID, data Data) {
	if cur, ok := m.states[m.current]; ok && cur.OnExit != nil {
		m.invoke(func() { cur.OnExit() })
	}
	m.previous = m.current
	m.current = target
	m.elapsed = 0
	m.history.push(Record{State: target, EnteredAt: time.Now(), CameFrom: m.previous})
	if def, ok := m.states[target]; ok && def.OnEnter != nil {
		if data == nil {
			data = Data{}
		}
		m.invoke(func() { def.OnEnter(data) })
	}
}

// Update advances the frame tick: any deferred transition is applied first,
// then elapsed time accumulates, then the current state's OnUpdate runs (so
// it always observes the post-increment elapsed time). A paused machine
// ignores Update entirely; time does not accumulate while paused.
func (m *Machine) Update(dt float64) {
	if !m.active || m.current == "" {
		return
	}
	if m.hasPending {
		p := m.pending
		m.hasPending = false
		m.request(p.target, p.data, p.forced)
	}
	m.elapsed += dt
	if def, ok := m.states[m.current]; ok && def.OnUpdate != nil {
		m.invoke(func() { def.OnUpdate(dt) })
	}
}

// Pause stops Update from having any effect. The current state and its
// elapsed time are left as they are; Transition still works while paused.
func (m *Machine) Pause() { m.active = false }

// Resume undoes Pause.
func (m *Machine) Resume() { m.active = true }

// Reset exits the current state, clears the previous-state marker and the
// history, and re-enters the initial state exactly as construction does.
func (m *Machine) Reset() {
	if cur, ok := m.states[m.current]; ok && cur.OnExit != nil {
		m.invoke(func() { cur.OnExit() })
	}
	m.previous = ""
	m.hasPending = false
	m.history.clear()
	m.enterInitial()
}

// History returns the transition records oldest-first. The slice is a copy;
// mutating it cannot affect the machine.
func (m *Machine) History() []Record {
	return m.history.snapshot()
}

func (m *Machine) enterInitial() {
	m.current = m.initial
	m.elapsed = 0
	m.history.push(Record{State: m.initial, EnteredAt: time.Now()})
	if def, ok := m.states[m.initial]; ok && def.OnEnter != nil {
		m.invoke(func() { def.OnEnter(Data{}) })
	}
}

func (m *Machine) invoke(hook func()) {
	saved := m.inHandler
	m.inHandler = true
	hook()
	m.inHandler = saved
}
