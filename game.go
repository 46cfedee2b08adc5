package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"

	"github.com/hollowpine/cryptling/hud"
	"github.com/hollowpine/cryptling/prefabs"
)

const (
	baseWidth  = 960
	baseHeight = 540
)

type Game struct {
	space  *cp.Space
	player *Player
	actors []*Actor

	joystick *hud.Joystick
	clock    *hud.Clock
	xpBar    *hud.XPBar
	rewards  *hud.Calendar

	widgets prefabs.WidgetsSpec
	watcher *prefabs.Watcher
	pauseUI *ebitenui.UI

	paused      bool
	quit        bool
	rewardsOpen bool
	debug       bool
}

func NewGame(debug bool, countdown float64) (*Game, error) {
	widgets, err := prefabs.LoadWidgetsSpec()
	if err != nil {
		return nil, err
	}

	space := cp.NewSpace()
	space.SetDamping(0.9)

	g := &Game{space: space, widgets: widgets, debug: debug}
	g.player = NewPlayer(space, baseWidth/2, baseHeight/2)

	spawns := []struct {
		id    string
		graph string
		x, y  float64
	}{
		{"ghoul-1", "ghoul.yaml", 140, 110},
		{"ghoul-2", "ghoul.yaml", 820, 120},
		{"wisp-1", "wisp.yaml", 160, 430},
		{"wisp-2", "wisp.yaml", 800, 420},
	}
	for _, s := range spawns {
		actor, err := NewActor(space, s.id, s.graph, s.x, s.y, g.player)
		if err != nil {
			return nil, err
		}
		g.actors = append(g.actors, actor)
	}

	g.joystick = hud.NewJoystick(widgets.Joystick.Radius, widgets.Joystick.KnobRadius, widgets.Joystick.Deadzone)
	if countdown > 0 {
		g.clock = hud.NewCountdown(countdown, g.onTimeUp)
	} else {
		g.clock = hud.NewCountUp()
	}
	g.xpBar = hud.NewXPBar()
	g.rewards = hud.NewCalendar(rewardCycle(widgets.Rewards))
	g.pauseUI = NewPauseUI(g)

	// Hot reload only works when the prefab sources are on disk, i.e. when
	// running from the repo root. Anywhere else the embedded copies serve.
	if w, err := prefabs.NewWatcher("prefabs/graphs", "prefabs/scripts"); err != nil {
		log.Printf("hot reload disabled: %v", err)
	} else {
		g.watcher = w
	}

	return g, nil
}

func rewardCycle(spec prefabs.RewardsSpec) []hud.Reward {
	cycle := make([]hud.Reward, 0, len(spec.Cycle))
	for _, r := range spec.Cycle {
		cycle = append(cycle, hud.Reward{Day: r.Day, Item: r.Item, Amount: r.Amount})
	}
	return cycle
}

func (g *Game) Update() error {
	if g.quit {
		if g.watcher != nil {
			_ = g.watcher.Close()
		}
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.drainWatcher()

	dt := 1.0 / float64(ebiten.TPS())

	g.joystick.Update()
	g.player.Update(g.joystick.Axis())
	for _, a := range g.actors {
		a.Update(dt)
	}
	g.space.Step(dt)
	g.clampToArena()
	g.handleStateChanges()

	g.clock.Update(dt)
	g.xpBar.Update(dt)

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.rewardsOpen = !g.rewardsOpen
	}
	if g.rewardsOpen && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if reward, ok := g.rewards.Claim(); ok {
			log.Printf("claimed day %d reward: %d %s (streak %d)", reward.Day, reward.Amount, reward.Item, g.rewards.Streak())
		}
	}
	if g.debug && inpututil.IsKeyJustPressed(ebiten.KeyY) {
		g.dumpSnapshots()
	}

	return nil
}

// drainWatcher recompiles every actor when a graph or script prefab
// changes on disk. One event reloads everything; actors are cheap.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	reload := false
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefab changed: %s", name)
			reload = true
		case err := <-g.watcher.Errors:
			log.Printf("prefab watcher: %v", err)
		default:
			if reload {
				for _, a := range g.actors {
					if err := a.Reload(); err != nil {
						log.Printf("reload: %v", err)
					}
				}
			}
			return
		}
	}
}

// handleStateChanges applies host-side effects of actor transitions.
// Scattering a wisp into its flee state is the demo's XP source.
func (g *Game) handleStateChanges() {
	for _, a := range g.actors {
		if _, to, changed := a.StateChanged(); changed && to == "flee" {
			if levels := g.xpBar.AddXP(40); levels > 0 {
				log.Printf("level up: now %d", g.xpBar.Level())
			}
		}
	}
}

// onTimeUp freezes every actor's machine when the countdown ends; the
// player keeps moving so the round-over screen stays lively.
func (g *Game) onTimeUp() {
	log.Printf("time up")
	for _, a := range g.actors {
		a.Machine().Pause()
	}
}

func (g *Game) resetActors() {
	for _, a := range g.actors {
		a.Machine().Reset()
		a.Machine().Resume()
	}
	g.clock.Reset()
	g.clock.Start()
}

func (g *Game) dumpSnapshots() {
	for _, a := range g.actors {
		raw, err := yaml.Marshal(a.Machine().Snapshot())
		if err != nil {
			log.Printf("snapshot %s: %v", a.id, err)
			continue
		}
		log.Printf("snapshot %s:\n%s", a.id, raw)
	}
}

func (g *Game) clampToArena() {
	clamp := func(body *cp.Body, r float64) {
		pos := body.Position()
		x := min(max(pos.X, r), baseWidth-r)
		y := min(max(pos.Y, r), baseHeight-r)
		if x != pos.X || y != pos.Y {
			body.SetPosition(cp.Vector{X: x, Y: y})
		}
	}
	clamp(g.player.body, playerRadius)
	for _, a := range g.actors {
		clamp(a.body, actorRadius)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 0x14, G: 0x12, B: 0x1a, A: 0xff})

	for _, a := range g.actors {
		a.Draw(screen, g.debug)
	}
	g.player.Draw(screen)

	g.clock.Draw(screen, g.widgets.Clock.X, g.widgets.Clock.Y)
	g.xpBar.Draw(screen, g.widgets.XPBar.X, g.widgets.XPBar.Y, g.widgets.XPBar.Width, g.widgets.XPBar.Height)
	g.joystick.Draw(screen)

	if g.rewardsOpen {
		g.rewards.Draw(screen, 150, 230)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f  actors: %d", ebiten.ActualFPS(), len(g.actors)))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
