// Package clock implements the per-side timers: untimed, Fischer increment,
// and Bronstein delay modes. Ticking is externally driven by caller-supplied
// timestamps; a Clock never owns a thread and never reads the wall clock
// itself — callers pass timestamps explicitly and the clock computes the
// elapsed durations from them, rather than polling time on its own.
package clock

import (
	"time"

	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/tobagin/draughts-core/pkg/board"
)

// Mode selects how a Clock accounts for elapsed time on Stop.
type Mode uint8

const (
	Untimed Mode = iota
	Fischer
	Bronstein
)

func (m Mode) String() string {
	switch m {
	case Untimed:
		return "untimed"
	case Fischer:
		return "fischer"
	case Bronstein:
		return "bronstein"
	default:
		return "?"
	}
}

// Clock is one side's timer.
type Clock struct {
	Mode      Mode
	Base      time.Duration
	Increment time.Duration
	Remaining time.Duration
	Running   bool
	StartedAt lang.Optional[time.Time]
}

// New builds a clock with remaining time set to base. Untimed clocks ignore
// increment entirely.
func New(mode Mode, base, increment time.Duration) *Clock {
	return &Clock{Mode: mode, Base: base, Increment: increment, Remaining: base}
}

// Start marks the clock as running from now. A no-op for Untimed clocks.
func (c *Clock) Start(now time.Time) {
	if c.Mode == Untimed {
		return
	}
	c.Running = true
	c.StartedAt = lang.Some(now)
}

// Stop accounts for the elapsed time since Start and halts the clock, applying
// the mode's accounting rule:
//   - Fischer: remaining -= elapsed, then remaining += increment.
//   - Bronstein: the first `increment` of elapsed wall time is free; only time
//     beyond that is deducted.
//
// Returns the wall-clock duration that elapsed, for callers (e.g. the session
// controller) that report it alongside the move.
func (c *Clock) Stop(now time.Time) time.Duration {
	if c.Mode == Untimed || !c.Running {
		return 0
	}
	started, _ := c.StartedAt.V()
	elapsed := now.Sub(started)

	switch c.Mode {
	case Fischer:
		c.Remaining -= elapsed
		c.Remaining += c.Increment
	case Bronstein:
		if chargeable := elapsed - c.Increment; chargeable > 0 {
			c.Remaining -= chargeable
		}
	}

	c.Running = false
	c.StartedAt = lang.Optional[time.Time]{}
	return elapsed
}

// Expired reports whether, projected to now, this clock's remaining time has
// run out. A clock that is not running never expires (an idle clock cannot
// time out; only the side to move can flag).
func (c *Clock) Expired(now time.Time) bool {
	if c.Mode == Untimed || !c.Running {
		return false
	}
	started, _ := c.StartedAt.V()
	elapsed := now.Sub(started)

	projected := c.Remaining
	switch c.Mode {
	case Fischer:
		projected -= elapsed
	case Bronstein:
		if chargeable := elapsed - c.Increment; chargeable > 0 {
			projected -= chargeable
		}
	}
	return projected <= 0
}

// Projected returns the clock's remaining time as of now, without mutating any
// state: a pure read used for clock-tick reporting while a clock is running.
func (c *Clock) Projected(now time.Time) time.Duration {
	if c.Mode == Untimed || !c.Running {
		return c.Remaining
	}
	started, _ := c.StartedAt.V()
	elapsed := now.Sub(started)

	switch c.Mode {
	case Fischer:
		return c.Remaining - elapsed
	case Bronstein:
		if chargeable := elapsed - c.Increment; chargeable > 0 {
			return c.Remaining - chargeable
		}
		return c.Remaining
	default:
		return c.Remaining
	}
}

// Pair owns both sides' clocks for one game.
type Pair struct {
	Red, Black *Clock
}

// NewPair builds a same-mode pair for both colours.
func NewPair(mode Mode, base, increment time.Duration) *Pair {
	return &Pair{
		Red:   New(mode, base, increment),
		Black: New(mode, base, increment),
	}
}

// For returns the clock belonging to the given colour.
func (p *Pair) For(c board.Colour) *Clock {
	if c == board.Red {
		return p.Red
	}
	return p.Black
}

// OnMoveStarted starts the given colour's clock. The controller calls this
// once play begins and again each time the active colour switches.
func (p *Pair) OnMoveStarted(c board.Colour, now time.Time) {
	p.For(c).Start(now)
}

// OnMoveEnded stops the given colour's clock, applying its mode's accounting
// rule, and returns the elapsed duration for that move.
func (p *Pair) OnMoveEnded(c board.Colour, now time.Time) time.Duration {
	return p.For(c).Stop(now)
}

// CheckExpired reports whether either clock has run out, projected to now.
// Expiration is a pure projection: calling it repeatedly without an
// intervening Stop does not change state, so the controller may poll freely
// before deciding to transmute the result into a Timeout.
func (p *Pair) CheckExpired(now time.Time) (board.Colour, bool) {
	if p.Red.Expired(now) {
		return board.Red, true
	}
	if p.Black.Expired(now) {
		return board.Black, true
	}
	return board.ZeroColour, false
}
