package hud

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Joystick is a floating virtual stick: it anchors where the press lands,
// tracks that touch (or the mouse as a desktop fallback) and exposes a
// normalized axis. It draws nothing while idle.
type Joystick struct {
	Radius     float64
	KnobRadius float64
	Deadzone   float64

	originX, originY float64
	knobX, knobY     float64
	axisX, axisY     float64

	touching bool
	touchID  ebiten.TouchID
	mouse    bool

	touchIDs []ebiten.TouchID
}

func NewJoystick(radius, knobRadius, deadzone float64) *Joystick {
	if radius <= 0 {
		radius = 56
	}
	if knobRadius <= 0 {
		knobRadius = radius * 0.4
	}
	return &Joystick{Radius: radius, KnobRadius: knobRadius, Deadzone: deadzone}
}

func (j *Joystick) Update() {
	switch {
	case j.touching:
		if inpututil.IsTouchJustReleased(j.touchID) {
			j.release()
			return
		}
		x, y := ebiten.TouchPosition(j.touchID)
		j.drag(float64(x), float64(y))
	case j.mouse:
		if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			j.release()
			return
		}
		x, y := ebiten.CursorPosition()
		j.drag(float64(x), float64(y))
	default:
		j.touchIDs = inpututil.AppendJustPressedTouchIDs(j.touchIDs[:0])
		if len(j.touchIDs) > 0 {
			j.touching = true
			j.touchID = j.touchIDs[0]
			x, y := ebiten.TouchPosition(j.touchID)
			j.press(float64(x), float64(y))
			return
		}
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			j.mouse = true
			x, y := ebiten.CursorPosition()
			j.press(float64(x), float64(y))
		}
	}
}

// Axis returns the stick deflection in [-1, 1] per component; (0, 0) while
// idle or inside the deadzone.
func (j *Joystick) Axis() (x, y float64) {
	return j.axisX, j.axisY
}

func (j *Joystick) Active() bool {
	return j.touching || j.mouse
}

func (j *Joystick) press(x, y float64) {
	j.originX, j.originY = x, y
	j.knobX, j.knobY = x, y
	j.axisX, j.axisY = 0, 0
}

func (j *Joystick) drag(x, y float64) {
	dx, dy := clampToRadius(x-j.originX, y-j.originY, j.Radius)
	j.knobX = j.originX + dx
	j.knobY = j.originY + dy
	j.axisX, j.axisY = applyDeadzone(dx/j.Radius, dy/j.Radius, j.Deadzone)
}

func (j *Joystick) release() {
	j.touching = false
	j.mouse = false
	j.axisX, j.axisY = 0, 0
}

func (j *Joystick) Draw(screen *ebiten.Image) {
	if !j.Active() {
		return
	}
	base := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x30}
	rim := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x70}
	knob := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xb0}
	vector.DrawFilledCircle(screen, float32(j.originX), float32(j.originY), float32(j.Radius), base, true)
	vector.StrokeCircle(screen, float32(j.originX), float32(j.originY), float32(j.Radius), 2, rim, true)
	vector.DrawFilledCircle(screen, float32(j.knobX), float32(j.knobY), float32(j.KnobRadius), knob, true)
}

func clampToRadius(dx, dy, radius float64) (float64, float64) {
	dist := math.Hypot(dx, dy)
	if dist <= radius || dist == 0 {
		return dx, dy
	}
	return dx / dist * radius, dy / dist * radius
}

func applyDeadzone(ax, ay, deadzone float64) (float64, float64) {
	if math.Hypot(ax, ay) < deadzone {
		return 0, 0
	}
	return ax, ay
}
