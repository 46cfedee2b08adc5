package behavior

import (
	"math"
	"testing"
)

type recordingReporter struct {
	unknown int
	illegal int
}

func (r *recordingReporter) ReportUnknownState(string, StateID) { r.unknown++ }
func (r *recordingReporter) ReportIllegalTransition(string, StateID, StateID) { r.illegal++ }

// newPatrolMachine builds the canonical enemy graph used across these tests:
// idle may only chase, chase may idle or attack, attack may only idle.
func newPatrolMachine(rep Reporter, opts ...Option) *Machine {
	base := []Option{
		WithState("idle", Definition{AllowedTransitions: []StateID{"chase"}}),
		WithState("chase", Definition{AllowedTransitions: []StateID{"idle", "attack"}}),
		WithState("attack", Definition{AllowedTransitions: []StateID{"idle"}}),
		WithReporter(rep),
	}
	return New("enemy-1", "idle", append(base, opts...)...)
}

func TestTransitionLegality(t *testing.T) {
	cases := []struct {
		name         string
		target       StateID
		force        bool
		wantOK       bool
		wantCurrent  StateID
		wantPrevious StateID
	}{
		{"unregistered_target", "flee", false, false, "idle", ""},
		{"not_in_allowed_list", "attack", false, false, "idle", ""},
		{"allowed_target", "chase", false, true, "chase", "idle"},
		{"force_ignores_allowed_list", "attack", true, true, "attack", "idle"},
		{"force_still_needs_registration", "flee", true, false, "idle", ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rep := &recordingReporter{}
			m := newPatrolMachine(rep)

			var ok bool
			if c.force {
				ok = m.ForceTransition(c.target, nil)
			} else {
				ok = m.Transition(c.target, nil)
			}
			if ok != c.wantOK {
				t.Fatalf("transition returned %v, want %v", ok, c.wantOK)
			}
			if m.CurrentState() != c.wantCurrent {
				t.Fatalf("current = %q, want %q", m.CurrentState(), c.wantCurrent)
			}
			if m.PreviousState() != c.wantPrevious {
				t.Fatalf("previous = %q, want %q", m.PreviousState(), c.wantPrevious)
			}
			if !c.wantOK && rep.unknown+rep.illegal != 1 {
				t.Fatalf("expected exactly one reported rejection, got unknown=%d illegal=%d", rep.unknown, rep.illegal)
			}
		})
	}
}

func TestRejectedTransitionLeavesMachineUntouched(t *testing.T) {
	m := newPatrolMachine(NopReporter{})
	m.Update(0.25)
	before := m.History()

	if m.Transition("attack", nil) {
		t.Fatalf("attack should be rejected from idle")
	}
	if m.CurrentState() != "idle" || m.PreviousState() != "" {
		t.Fatalf("state changed on rejection: current=%q previous=%q", m.CurrentState(), m.PreviousState())
	}
	if m.ElapsedTime() != 0.25 {
		t.Fatalf("elapsed changed on rejection: %v", m.ElapsedTime())
	}
	after := m.History()
	if len(after) != len(before) {
		t.Fatalf("history changed on rejection: %d -> %d entries", len(before), len(after))
	}

	// Rejection is deterministic: the identical call fails identically.
	if m.Transition("attack", nil) {
		t.Fatalf("retry of rejected transition should fail again")
	}
}

func TestEmptyAllowedListMeansUnrestricted(t *testing.T) {
	// An empty allowed list opens every registered state, it does not seal
	// the state off. Intentional and easy to trip over.
	m := New("enemy-2", "roam",
		WithState("roam", Definition{}),
		WithState("sleep", Definition{AllowedTransitions: []StateID{"roam"}}),
		WithReporter(NopReporter{}),
	)
	if !m.Transition("sleep", nil) {
		t.Fatalf("empty allowed list should permit any registered target")
	}
	if m.CurrentState() != "sleep" {
		t.Fatalf("current = %q, want sleep", m.CurrentState())
	}
}

func TestHookOrderAndPayload(t *testing.T) {
	var calls []string
	var got Data
	m := New("enemy-3", "idle",
		WithState("idle", Definition{
			OnEnter: func(Data) { calls = append(calls, "idle.enter") },
			OnExit:  func() { calls = append(calls, "idle.exit") },
		}),
		WithState("chase", Definition{
			OnEnter: func(d Data) {
				calls = append(calls, "chase.enter")
				got = d
			},
		}),
		WithReporter(NopReporter{}),
	)

	if !m.Transition("chase", Data{"target": "player"}) {
		t.Fatalf("transition failed")
	}
	want := []string{"idle.enter", "idle.exit", "chase.enter"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("call %d = %q, want %q", i, calls[i], want[i])
		}
	}
	if got["target"] != "player" {
		t.Fatalf("enter payload = %v", got)
	}
}

func TestUpdateAccumulatesElapsedTime(t *testing.T) {
	ticks := 0
	var seen float64
	m := New("enemy-4", "idle",
		WithState("idle", Definition{
			OnUpdate: func(dt float64) {
				ticks++
				seen = dt
			},
			AllowedTransitions: []StateID{"chase"},
		}),
		WithState("chase", Definition{}),
		WithReporter(NopReporter{}),
	)

	steps := []float64{0.016, 0.016, 0.033, 0.016}
	sum := 0.0
	for _, dt := range steps {
		m.Update(dt)
		sum += dt
	}
	if ticks != len(steps) {
		t.Fatalf("OnUpdate ran %d times, want %d", ticks, len(steps))
	}
	if seen != steps[len(steps)-1] {
		t.Fatalf("OnUpdate saw dt=%v, want %v", seen, steps[len(steps)-1])
	}
	if math.Abs(m.ElapsedTime()-sum) > 1e-12 {
		t.Fatalf("elapsed = %v, want %v", m.ElapsedTime(), sum)
	}

	m.Transition("chase", nil)
	if m.ElapsedTime() != 0 {
		t.Fatalf("elapsed should reset on transition, got %v", m.ElapsedTime())
	}
	m.Update(0.5)
	if m.ElapsedTime() != 0.5 {
		t.Fatalf("elapsed = %v after fresh state tick, want 0.5", m.ElapsedTime())
	}
}

func TestPauseAndResume(t *testing.T) {
	m := newPatrolMachine(NopReporter{})
	m.Update(1.0)

	m.Pause()
	if m.Active() {
		t.Fatalf("machine should be inactive after Pause")
	}
	for i := 0; i < 5; i++ {
		m.Update(1.0)
	}
	if m.ElapsedTime() != 1.0 {
		t.Fatalf("elapsed accumulated while paused: %v", m.ElapsedTime())
	}
	if m.CurrentState() != "idle" {
		t.Fatalf("current changed while paused: %q", m.CurrentState())
	}

	// Transitions still work while paused.
	if !m.Transition("chase", nil) {
		t.Fatalf("transition should work while paused")
	}

	m.Resume()
	m.Update(0.5)
	if m.ElapsedTime() != 0.5 {
		t.Fatalf("elapsed = %v after resume, want 0.5", m.ElapsedTime())
	}
}

func TestReset(t *testing.T) {
	exits := 0
	m := New("enemy-5", "idle",
		WithState("idle", Definition{AllowedTransitions: []StateID{"chase"}}),
		WithState("chase", Definition{
			OnExit:             func() { exits++ },
			AllowedTransitions: []StateID{"idle"},
		}),
		WithReporter(NopReporter{}),
	)
	m.Transition("chase", nil)
	m.Update(2.0)

	m.Reset()
	if exits != 1 {
		t.Fatalf("OnExit ran %d times on reset, want 1", exits)
	}
	if m.CurrentState() != "idle" {
		t.Fatalf("current = %q after reset, want idle", m.CurrentState())
	}
	if m.PreviousState() != "" {
		t.Fatalf("previous = %q after reset, want empty", m.PreviousState())
	}
	if m.ElapsedTime() != 0 {
		t.Fatalf("elapsed = %v after reset, want 0", m.ElapsedTime())
	}
	h := m.History()
	if len(h) != 1 {
		t.Fatalf("history has %d entries after reset, want 1", len(h))
	}
	if h[0].State != "idle" || h[0].CameFrom != "" {
		t.Fatalf("reset history entry = %+v", h[0])
	}
}

func TestNestedTransitionIsDeferredToNextUpdate(t *testing.T) {
	// A hook asking for a transition must not re-enter the bookkeeping; the
	// request parks until the next Update tick and is validated there.
	m := New("enemy-6", "hurt",
		WithState("hurt", Definition{AllowedTransitions: []StateID{"idle"}}),
		WithState("idle", Definition{}),
		WithReporter(NopReporter{}),
	)
	m.RegisterState("hurt", Definition{
		OnEnter:            func(Data) { m.Transition("idle", nil) },
		AllowedTransitions: []StateID{"idle"},
	})

	m.Reset() // re-enter hurt with the self-transitioning hook in place
	if m.CurrentState() != "hurt" {
		t.Fatalf("nested request applied synchronously: current=%q", m.CurrentState())
	}
	m.Update(0.016)
	if m.CurrentState() != "idle" {
		t.Fatalf("deferred request not applied on Update: current=%q", m.CurrentState())
	}
}

func TestPatrolScenario(t *testing.T) {
	// idle -> attack rejected, idle -> chase -> attack accepted, and
	// attack -> chase rejected because attack only allows idle.
	rep := &recordingReporter{}
	m := newPatrolMachine(rep)

	if m.Transition("attack", nil) {
		t.Fatalf("idle -> attack should be rejected")
	}
	if m.CurrentState() != "idle" {
		t.Fatalf("current = %q, want idle", m.CurrentState())
	}
	if !m.Transition("chase", nil) {
		t.Fatalf("idle -> chase should be accepted")
	}
	if m.CurrentState() != "chase" || m.PreviousState() != "idle" {
		t.Fatalf("after chase: current=%q previous=%q", m.CurrentState(), m.PreviousState())
	}
	if !m.Transition("attack", nil) {
		t.Fatalf("chase -> attack should be accepted")
	}
	if m.Transition("chase", nil) {
		t.Fatalf("attack -> chase should be rejected, attack only allows idle")
	}
	if rep.illegal != 2 {
		t.Fatalf("illegal rejections = %d, want 2", rep.illegal)
	}
}

func TestRegisterStateReplacesWithoutTouchingCurrent(t *testing.T) {
	entered := 0
	m := newPatrolMachine(NopReporter{})
	m.Update(0.4)

	m.RegisterState("idle", Definition{
		OnEnter:            func(Data) { entered++ },
		AllowedTransitions: []StateID{"chase", "attack"},
	})
	if entered != 0 {
		t.Fatalf("re-registration must not re-enter the current state")
	}
	if m.ElapsedTime() != 0.4 {
		t.Fatalf("re-registration must not reset elapsed time")
	}

	// The widened allowed list takes effect on the next request.
	if !m.Transition("attack", nil) {
		t.Fatalf("idle -> attack should be allowed after re-registration")
	}
}
