package hud

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// XPBar tracks experience and level and renders a fill bar that eases
// toward the real progress instead of jumping.
type XPBar struct {
	level int
	xp    float64
	fill  float64
}

func NewXPBar() *XPBar {
	return &XPBar{level: 1}
}

func (b *XPBar) Level() int { return b.level }

// XPToNext is the cost of the current level, quadratic so later levels
// stretch out.
func (b *XPBar) XPToNext() float64 {
	return xpCost(b.level)
}

func xpCost(level int) float64 {
	return float64(40*level*level + 60*level)
}

// AddXP banks experience and applies as many level-ups as the amount
// covers, carrying the remainder into the new level. It returns the number
// of levels gained.
func (b *XPBar) AddXP(amount float64) int {
	if amount <= 0 {
		return 0
	}
	b.xp += amount
	gained := 0
	for b.xp >= xpCost(b.level) {
		b.xp -= xpCost(b.level)
		b.level++
		gained++
	}
	if gained > 0 {
		// Restart the fill animation from the left edge of the new level.
		b.fill = 0
	}
	return gained
}

// Progress reports completion of the current level in [0, 1).
func (b *XPBar) Progress() float64 {
	return b.xp / xpCost(b.level)
}

func (b *XPBar) Update(dt float64) {
	target := b.Progress()
	b.fill += (target - b.fill) * math.Min(1, dt*8)
}

func (b *XPBar) Draw(screen *ebiten.Image, x, y, w, h float64) {
	back := color.NRGBA{R: 0x20, G: 0x20, B: 0x28, A: 0xc0}
	fill := color.NRGBA{R: 0x62, G: 0xc4, B: 0x52, A: 0xff}
	rim := color.NRGBA{R: 0xd8, G: 0xd8, B: 0xe0, A: 0xff}

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), back, false)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w*b.fill), float32(h), fill, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, rim, false)

	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x+w+8, y)
	op.ColorScale.ScaleWithColor(color.White)
	ebtext.Draw(screen, fmt.Sprintf("Lv %d", b.level), hudFace, op)
}
