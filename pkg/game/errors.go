// Package game is the deterministic game state machine: a linear move history
// with apply/undo/redo/view-at-position, owned and mutated only by a Machine.
// The rule engine in pkg/rules stays pure; Machine is the one place state
// actually changes, behind a small operation surface.
package game

import "errors"

// ErrGameOver is returned by Apply once the live state has a terminal status.
var ErrGameOver = errors.New("game already ended")

// ErrNothingToUndo is returned by Undo when the cursor is already at the initial
// setup (no move to retreat past).
var ErrNothingToUndo = errors.New("nothing to undo")

// ErrNothingToRedo is returned by Redo when the redo tail is empty.
var ErrNothingToRedo = errors.New("nothing to redo")

// ErrHistoryNavigationDisabled is returned by Undo and Redo on a Machine created
// for multiplayer play: undo/redo are disabled once a game is relayed.
var ErrHistoryNavigationDisabled = errors.New("undo/redo disabled in multiplayer")

// ErrNoSuchPosition is returned by ViewAt for an index outside [-1, len(history)-1].
var ErrNoSuchPosition = errors.New("no such history position")
