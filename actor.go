package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/d5/tengo/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"

	"github.com/hollowpine/cryptling/behavior"
	"github.com/hollowpine/cryptling/prefabs"
	"github.com/hollowpine/cryptling/script"
)

const actorRadius = 12

const (
	ghoulAggroRange  = 170.0
	ghoulLeashRange  = 230.0
	ghoulAttackRange = 40.0
	ghoulSpeed       = 70.0
	ghoulAttackTime  = 0.6
)

// Actor is one enemy: a physics body plus the behavior machine that steers
// it. The machine's hooks are the only place movement decisions live;
// Actor.Update just forwards the frame tick.
type Actor struct {
	id        string
	graphFile string
	space     *cp.Space
	body      *cp.Body
	target    *Player

	machine *behavior.Machine
	runtime *script.Runtime

	attackTime float64
	lastState  behavior.StateID
}

// NewActor loads the actor's graph prefab and compiles its machine. Graphs
// with a script entry get tengo handlers; the rest get the built-in ghoul
// close-combat handlers.
func NewActor(space *cp.Space, id, graphFile string, x, y float64, target *Player) (*Actor, error) {
	a := &Actor{
		id:        id,
		graphFile: graphFile,
		space:     space,
		target:    target,
	}

	a.body = space.AddBody(cp.NewBody(1, cp.MomentForCircle(1, 0, actorRadius, cp.Vector{})))
	a.body.SetPosition(cp.Vector{X: x, Y: y})
	shape := space.AddShape(cp.NewCircle(a.body, actorRadius, cp.Vector{}))
	shape.SetElasticity(0.2)
	shape.SetFriction(0.7)

	if err := a.Reload(); err != nil {
		return nil, err
	}
	return a, nil
}

// Reload re-reads the graph (and script) prefab and swaps in a freshly
// compiled machine. The hot-reload watcher calls this on edits; the physics
// body stays where it is.
func (a *Actor) Reload() error {
	spec, err := prefabs.LoadGraph(a.graphFile)
	if err != nil {
		return err
	}

	var handlers behavior.HandlerTable
	if spec.Script != "" {
		src, err := prefabs.LoadScript(spec.Script)
		if err != nil {
			return fmt.Errorf("actor %s: %w", a.id, err)
		}
		rt, err := script.NewRuntime(src)
		if err != nil {
			return fmt.Errorf("actor %s: %w", a.id, err)
		}
		a.runtime = rt
		handlers = rt.Handlers(spec.Graph, a.scriptAPI())
	} else {
		a.runtime = nil
		handlers = a.ghoulHandlers()
	}

	m, err := behavior.Compile(a.id, spec.Graph, handlers)
	if err != nil {
		return fmt.Errorf("actor %s: %w", a.id, err)
	}
	a.machine = m
	a.lastState = m.CurrentState()
	a.attackTime = 0
	return nil
}

func (a *Actor) Machine() *behavior.Machine { return a.machine }

func (a *Actor) Update(dt float64) {
	a.machine.Update(dt)
}

// StateChanged reports and consumes one observed state change since the
// last call. The game uses it for host-side effects like awarding XP.
func (a *Actor) StateChanged() (from, to behavior.StateID, changed bool) {
	current := a.machine.CurrentState()
	if current == a.lastState {
		return "", "", false
	}
	from = a.lastState
	a.lastState = current
	return from, current, true
}

func (a *Actor) Pos() (x, y float64) {
	pos := a.body.Position()
	return pos.X, pos.Y
}

func (a *Actor) Draw(screen *ebiten.Image, debug bool) {
	x, y := a.Pos()
	vector.DrawFilledCircle(screen, float32(x), float32(y), actorRadius, stateColor(a.machine.CurrentState()), true)
	if debug {
		label := fmt.Sprintf("%s %.1fs", a.machine.CurrentState(), a.machine.ElapsedTime())
		ebitenutil.DebugPrintAt(screen, label, int(x)-20, int(y)-32)
	}
}

func (a *Actor) ghoulHandlers() behavior.HandlerTable {
	stop := func() { a.body.SetVelocity(0, 0) }
	return behavior.HandlerTable{
		"idle_enter": behavior.EnterFunc(func(behavior.Data) { stop() }),
		"idle_update": behavior.UpdateFunc(func(float64) {
			if a.distToPlayer() < ghoulAggroRange {
				a.machine.Transition("chase", nil)
			}
		}),
		"chase_update": behavior.UpdateFunc(func(float64) {
			dist := a.distToPlayer()
			switch {
			case dist > ghoulLeashRange:
				a.machine.Transition("idle", nil)
			case dist < ghoulAttackRange:
				a.machine.Transition("attack", behavior.Data{"dist": dist})
			default:
				a.moveTowardPlayer(ghoulSpeed)
			}
		}),
		"chase_exit": behavior.ExitFunc(stop),
		"attack_enter": behavior.EnterFunc(func(behavior.Data) {
			a.attackTime = 0
			stop()
		}),
		"attack_update": behavior.UpdateFunc(func(dt float64) {
			a.attackTime += dt
			if a.attackTime >= ghoulAttackTime {
				a.machine.Transition("idle", nil)
			}
		}),
	}
}

func (a *Actor) scriptAPI() *tengo.ImmutableMap {
	return script.API(map[string]tengo.Object{
		"get_position": script.Func("get_position", func(args ...tengo.Object) (tengo.Object, error) {
			x, y := a.Pos()
			return script.Vec2(x, y), nil
		}),
		"get_player_position": script.Func("get_player_position", func(args ...tengo.Object) (tengo.Object, error) {
			x, y := a.target.Pos()
			return script.Vec2(x, y), nil
		}),
		"set_velocity": script.Func("set_velocity", func(args ...tengo.Object) (tengo.Object, error) {
			a.body.SetVelocity(script.ArgFloat(args, 0), script.ArgFloat(args, 1))
			return tengo.UndefinedValue, nil
		}),
		"transition": script.Func("transition", func(args ...tengo.Object) (tengo.Object, error) {
			if a.machine.Transition(behavior.StateID(script.ArgString(args, 0)), nil) {
				return tengo.TrueValue, nil
			}
			return tengo.FalseValue, nil
		}),
	})
}

func (a *Actor) distToPlayer() float64 {
	ax, ay := a.Pos()
	px, py := a.target.Pos()
	return math.Hypot(px-ax, py-ay)
}

func (a *Actor) moveTowardPlayer(speed float64) {
	ax, ay := a.Pos()
	px, py := a.target.Pos()
	dx, dy := px-ax, py-ay
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}
	a.body.SetVelocity(dx/dist*speed, dy/dist*speed)
}

func stateColor(s behavior.StateID) color.NRGBA {
	switch s {
	case "idle":
		return color.NRGBA{R: 0x8a, G: 0x8a, B: 0x92, A: 0xff}
	case "chase":
		return color.NRGBA{R: 0xe6, G: 0x9a, B: 0x3c, A: 0xff}
	case "attack":
		return color.NRGBA{R: 0xd6, G: 0x3c, B: 0x3c, A: 0xff}
	case "drift":
		return color.NRGBA{R: 0x4c, G: 0xc4, B: 0xb8, A: 0xff}
	case "swarm":
		return color.NRGBA{R: 0xe0, G: 0xd0, B: 0x40, A: 0xff}
	case "flee":
		return color.NRGBA{R: 0xa0, G: 0x60, B: 0xd0, A: 0xff}
	default:
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
}
