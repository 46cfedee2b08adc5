package hud

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Reward is one cell of the daily-login calendar.
type Reward struct {
	Day    int
	Item   string
	Amount int
}

// Calendar hands out one reward per real-world day. Claiming on consecutive
// days advances the streak through the cycle; skipping a day resets the
// streak to the first cell. The cycle wraps after its last day.
type Calendar struct {
	cycle     []Reward
	streak    int
	lastClaim time.Time
	now       func() time.Time
}

// CalendarState is the serializable part of a Calendar. Persisting it is
// the host's job; the widget only produces and consumes the value.
type CalendarState struct {
	Streak    int       `yaml:"streak"`
	LastClaim time.Time `yaml:"last_claim"`
}

type CalendarOption func(*Calendar)

// WithClock injects the time source, for tests and replays.
func WithClock(now func() time.Time) CalendarOption {
	return func(c *Calendar) {
		if now != nil {
			c.now = now
		}
	}
}

func NewCalendar(cycle []Reward, opts ...CalendarOption) *Calendar {
	c := &Calendar{cycle: cycle, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Calendar) Streak() int { return c.streak }

func (c *Calendar) State() CalendarState {
	return CalendarState{Streak: c.streak, LastClaim: c.lastClaim}
}

func (c *Calendar) SetState(s CalendarState) {
	c.streak = s.Streak
	c.lastClaim = s.LastClaim
}

// Claimable reports whether a reward is still available today.
func (c *Calendar) Claimable() bool {
	if len(c.cycle) == 0 {
		return false
	}
	if c.lastClaim.IsZero() {
		return true
	}
	return daysBetween(c.lastClaim, c.now()) >= 1
}

// NextReward is the cell Claim would grant right now.
func (c *Calendar) NextReward() Reward {
	return c.cycle[c.nextIndex()]
}

// Claim grants today's reward. It returns false when today's reward was
// already taken or the cycle is empty.
func (c *Calendar) Claim() (Reward, bool) {
	if !c.Claimable() {
		return Reward{}, false
	}
	reward := c.cycle[c.nextIndex()]
	if c.lastClaim.IsZero() || daysBetween(c.lastClaim, c.now()) > 1 {
		c.streak = 1
	} else {
		c.streak++
	}
	c.lastClaim = c.now()
	return reward, true
}

func (c *Calendar) nextIndex() int {
	streak := c.streak
	if c.lastClaim.IsZero() || daysBetween(c.lastClaim, c.now()) > 1 {
		streak = 0
	}
	return streak % len(c.cycle)
}

func (c *Calendar) Draw(screen *ebiten.Image, x, y float64) {
	const cellW, cellH, gap = 64.0, 40.0, 6.0

	if len(c.cycle) == 0 {
		return
	}
	claimed := c.streak % len(c.cycle)
	if c.streak > 0 && c.streak%len(c.cycle) == 0 {
		claimed = len(c.cycle)
	}
	for i, r := range c.cycle {
		cx := x + float64(i)*(cellW+gap)
		bg := color.NRGBA{R: 0x20, G: 0x20, B: 0x28, A: 0xc0}
		if i < claimed {
			bg = color.NRGBA{R: 0x2f, G: 0x55, B: 0x2f, A: 0xc0}
		} else if i == c.nextIndex() && c.Claimable() {
			bg = color.NRGBA{R: 0x55, G: 0x4d, B: 0x20, A: 0xc0}
		}
		vector.DrawFilledRect(screen, float32(cx), float32(y), cellW, cellH, bg, false)
		vector.StrokeRect(screen, float32(cx), float32(y), cellW, cellH, 1, color.NRGBA{R: 0xd8, G: 0xd8, B: 0xe0, A: 0xff}, false)

		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(cx+4, y+4)
		op.ColorScale.ScaleWithColor(color.White)
		ebtext.Draw(screen, fmt.Sprintf("D%d\n%d %s", r.Day, r.Amount, r.Item), hudFace, op)
	}
}

// daysBetween counts calendar-day boundaries crossed between a and b in
// local time, so 23:59 to 00:01 counts as one day.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, a.Location())
	end := time.Date(by, bm, bd, 0, 0, 0, 0, b.Location())
	return int(end.Sub(start) / (24 * time.Hour))
}
