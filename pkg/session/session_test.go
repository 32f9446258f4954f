package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tobagin/draughts-core/pkg/board"
	"github.com/tobagin/draughts-core/pkg/clock"
	"github.com/tobagin/draughts-core/pkg/rules"
	"github.com/tobagin/draughts-core/pkg/session"
	"github.com/tobagin/draughts-core/pkg/variant"
)

func drain(t *testing.T, s *session.Session, n int) []session.Event {
	t.Helper()
	var out []session.Event
	for i := 0; i < n; i++ {
		select {
		case e := <-s.Events():
			out = append(out, e)
		default:
			t.Fatalf("expected %d events, got %d", n, i)
		}
	}
	return out
}

func TestSessionMakeMoveEmitsMoveAndStateChanged(t *testing.T) {
	v, err := variant.ByID(variant.American)
	require.NoError(t, err)

	red := session.Player{ID: "r1", Kind: session.Human, Name: "Red"}
	black := session.Player{ID: "b1", Kind: session.Human, Name: "Black"}
	s := session.New(v, red, black, clock.Untimed, 0, 0, false)

	now := time.Unix(0, 0)
	s.Start(now)
	drain(t, s, 1) // initial state-changed

	move := rules.GenerateLegalMoves(s.LiveState(), v)[0]
	require.NoError(t, s.MakeMove(move, now))

	events := drain(t, s, 2)
	assert.Equal(t, session.MoveMade, events[0].Type)
	assert.Equal(t, session.StateChanged, events[1].Type)
	assert.Equal(t, board.Black, events[1].State.Active)
}

func TestSessionResignEndsGame(t *testing.T) {
	v, err := variant.ByID(variant.American)
	require.NoError(t, err)
	s := session.New(v, session.Player{}, session.Player{}, clock.Untimed, 0, 0, false)

	s.Start(time.Unix(0, 0))
	drain(t, s, 1)

	s.Resign(board.Red)
	events := drain(t, s, 1)
	assert.Equal(t, session.GameEnded, events[0].Type)
	assert.Equal(t, board.BlackWins, events[0].Status)
	assert.Equal(t, "resignation", events[0].Reason)
}

func TestSessionCheckTimeoutEndsGame(t *testing.T) {
	v, err := variant.ByID(variant.American)
	require.NoError(t, err)
	s := session.New(v, session.Player{}, session.Player{}, clock.Fischer, 10*time.Second, 0, false)

	now := time.Unix(0, 0)
	s.Start(now)
	drain(t, s, 1)

	ended := s.CheckTimeout(now.Add(11 * time.Second))
	assert.True(t, ended)

	events := drain(t, s, 1)
	assert.Equal(t, session.GameEnded, events[0].Type)
	assert.Equal(t, board.BlackWins, events[0].Status, "red was on the clock and ran out")
	assert.Equal(t, "timeout", events[0].Reason)
}

func TestSessionUndoRedoDisabledInMultiplayer(t *testing.T) {
	v, err := variant.ByID(variant.American)
	require.NoError(t, err)
	s := session.New(v, session.Player{}, session.Player{}, clock.Untimed, 0, 0, true)

	s.Start(time.Unix(0, 0))
	drain(t, s, 1)

	move := rules.GenerateLegalMoves(s.LiveState(), v)[0]
	require.NoError(t, s.MakeMove(move, time.Unix(0, 0)))
	drain(t, s, 2)

	assert.Error(t, s.Undo(context.Background()))
}
