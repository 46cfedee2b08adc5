package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

const playerRadius = 14

// Player is the joystick-driven body the actors react to. It carries no
// state machine of its own; it exists so the demo has something to chase.
type Player struct {
	body  *cp.Body
	speed float64
}

func NewPlayer(space *cp.Space, x, y float64) *Player {
	body := space.AddBody(cp.NewBody(1, cp.MomentForCircle(1, 0, playerRadius, cp.Vector{})))
	body.SetPosition(cp.Vector{X: x, Y: y})
	shape := space.AddShape(cp.NewCircle(body, playerRadius, cp.Vector{}))
	shape.SetElasticity(0)
	shape.SetFriction(0.7)

	return &Player{body: body, speed: 140}
}

// Update applies joystick deflection, falling back to WASD/arrow keys on
// desktop. Keyboard diagonals are normalized so they aren't faster.
func (p *Player) Update(axisX, axisY float64) {
	if axisX == 0 && axisY == 0 {
		axisX, axisY = keyboardAxis()
	}
	p.body.SetVelocity(axisX*p.speed, axisY*p.speed)
}

func (p *Player) Pos() (x, y float64) {
	pos := p.body.Position()
	return pos.X, pos.Y
}

func (p *Player) Draw(screen *ebiten.Image) {
	x, y := p.Pos()
	vector.DrawFilledCircle(screen, float32(x), float32(y), playerRadius, color.NRGBA{R: 0x5a, G: 0x9c, B: 0xe6, A: 0xff}, true)
}

func keyboardAxis() (float64, float64) {
	var ax, ay float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		ax -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		ax += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		ay -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		ay += 1
	}
	if ax != 0 && ay != 0 {
		inv := 1 / math.Sqrt2
		ax *= inv
		ay *= inv
	}
	return ax, ay
}
