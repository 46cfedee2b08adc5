package hud

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

var hudFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

// Clock is a count-up or countdown timer display. The host feeds it the
// same per-frame dt it feeds everything else; a stopped clock ignores dt.
type Clock struct {
	countdown bool
	duration  float64
	elapsed   float64
	running   bool
	expired   bool
	onExpire  func()
}

// NewCountUp returns a running stopwatch-style clock.
func NewCountUp() *Clock {
	return &Clock{running: true}
}

// NewCountdown returns a running countdown; onExpire fires once when the
// duration runs out, and the clock stops itself.
func NewCountdown(duration float64, onExpire func()) *Clock {
	return &Clock{countdown: true, duration: duration, running: true, onExpire: onExpire}
}

func (c *Clock) Start() { c.running = true }
func (c *Clock) Stop()  { c.running = false }

func (c *Clock) Reset() {
	c.elapsed = 0
	c.expired = false
}

func (c *Clock) Update(dt float64) {
	if !c.running {
		return
	}
	c.elapsed += dt
	if c.countdown && !c.expired && c.elapsed >= c.duration {
		c.expired = true
		c.running = false
		c.elapsed = c.duration
		if c.onExpire != nil {
			c.onExpire()
		}
	}
}

func (c *Clock) Elapsed() float64 { return c.elapsed }
func (c *Clock) Expired() bool    { return c.expired }

// Remaining is only meaningful for countdown clocks; it never goes below 0.
func (c *Clock) Remaining() float64 {
	return math.Max(0, c.duration-c.elapsed)
}

func (c *Clock) Text() string {
	if c.countdown {
		return formatClock(c.Remaining())
	}
	return formatClock(c.elapsed)
}

func (c *Clock) Draw(screen *ebiten.Image, x, y float64) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.White)
	ebtext.Draw(screen, c.Text(), hudFace, op)
}

func formatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
