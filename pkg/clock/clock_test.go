package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tobagin/draughts-core/pkg/board"
	"github.com/tobagin/draughts-core/pkg/clock"
)

// Fischer clock scenario from spec: 2:00 + 0:05 per side, Red takes 30s to move.
// Expected after the move: Red remaining = 1:35, Black remaining = 2:00, Black running.
func TestFischerClockScenario(t *testing.T) {
	base := 2 * time.Minute
	inc := 5 * time.Second
	p := clock.NewPair(clock.Fischer, base, inc)

	t0 := time.Unix(0, 0)
	p.OnMoveStarted(board.Red, t0)

	t1 := t0.Add(30 * time.Second)
	elapsed := p.OnMoveEnded(board.Red, t1)
	p.OnMoveStarted(board.Black, t1)

	assert.Equal(t, 30*time.Second, elapsed)
	assert.Equal(t, time.Minute+35*time.Second, p.Red.Remaining)
	assert.Equal(t, 2*time.Minute, p.Black.Remaining)
	assert.True(t, p.Black.Running)
	assert.False(t, p.Red.Running)
}

func TestUntimedClockNeverExpires(t *testing.T) {
	p := clock.NewPair(clock.Untimed, 0, 0)
	now := time.Unix(0, 0)
	p.OnMoveStarted(board.Red, now)

	_, expired := p.CheckExpired(now.Add(24 * time.Hour))
	assert.False(t, expired)
	assert.False(t, p.Red.Running, "untimed Start is a no-op")
}

func TestBronsteinDelayIsFreeUpToIncrement(t *testing.T) {
	c := clock.New(clock.Bronstein, time.Minute, 10*time.Second)
	now := time.Unix(0, 0)
	c.Start(now)

	// 8s elapsed, under the 10s delay budget: no deduction.
	c.Stop(now.Add(8 * time.Second))
	assert.Equal(t, time.Minute, c.Remaining)

	c.Start(now.Add(8 * time.Second))
	// 15s elapsed this time: only the 5s beyond the 10s delay is charged.
	c.Stop(now.Add(23 * time.Second))
	assert.Equal(t, time.Minute-5*time.Second, c.Remaining)
}

func TestClockExpiredProjection(t *testing.T) {
	c := clock.New(clock.Fischer, 10*time.Second, 0)
	now := time.Unix(0, 0)
	c.Start(now)

	assert.False(t, c.Expired(now.Add(5*time.Second)))
	assert.True(t, c.Expired(now.Add(11*time.Second)))
}

func TestCheckExpiredIdentifiesWhichSide(t *testing.T) {
	p := clock.NewPair(clock.Fischer, 10*time.Second, 0)
	now := time.Unix(0, 0)
	p.OnMoveStarted(board.Black, now)

	colour, expired := p.CheckExpired(now.Add(11 * time.Second))
	assert.True(t, expired)
	assert.Equal(t, board.Black, colour)
}
