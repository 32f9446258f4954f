package rules

import (
	"fmt"

	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/tobagin/draughts-core/pkg/board"
	"github.com/tobagin/draughts-core/pkg/variant"
)

// GenerateLegalMoves enumerates every legal move for the active colour in state
// under v. If the variant mandates capture and at least one capture is available,
// only captures (filtered by the variant's priority rule) are returned; otherwise
// every simple move is included too. Returns nil once the game has ended.
func GenerateLegalMoves(state *board.GameState, v variant.Variant) []board.Move {
	if state.Status != board.InProgress {
		return nil
	}

	var captures []board.Move
	for _, p := range state.PiecesOf(state.Active) {
		captures = append(captures, generateCaptures(state, v, p)...)
	}

	if v.MandatoryCapture && len(captures) > 0 {
		return applyPriority(captures, v.Priority)
	}

	var moves []board.Move
	moves = append(moves, applyPriority(captures, v.Priority)...)
	for _, p := range state.PiecesOf(state.Active) {
		moves = append(moves, generateSimpleMoves(state, v, p)...)
	}
	return moves
}

// ValidateMove reports whether m is one of the moves GenerateLegalMoves would
// produce for state. Returns a wrapped ErrIllegalMove when it is not.
func ValidateMove(state *board.GameState, v variant.Variant, m board.Move) error {
	for _, legal := range GenerateLegalMoves(state, v) {
		if legal.Equals(m) {
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrIllegalMove, m)
}

// Execute validates m against state and, if legal, returns the resulting state.
// The input state is untouched. Execute resolves win/loss via CheckResult but does
// not perform draw detection, since that requires the position-hash history a pure
// per-call function does not carry; callers that need draw adjudication call
// CheckDraw themselves and fold the result into the returned state's Status and
// DrawReason.
func Execute(state *board.GameState, v variant.Variant, m board.Move) (*board.GameState, error) {
	if err := ValidateMove(state, v, m); err != nil {
		return nil, err
	}

	next := state.Clone()
	mover, ok := next.Pieces[m.MoverID]
	if !ok {
		return nil, fmt.Errorf("%w: mover %d not found", ErrIllegalMove, m.MoverID)
	}

	for _, id := range m.Captured {
		delete(next.Pieces, id)
	}

	wasMan := mover.Kind == board.Man
	mover.Position = m.To
	if m.Promoted {
		mover.Kind = board.King
	}
	next.Pieces[m.MoverID] = mover

	if len(m.Captured) > 0 || wasMan {
		next.NoProgressCount = 0
	} else {
		next.NoProgressCount++
	}

	next.Active = next.Active.Opposite()
	next.MoveCount++
	next.LastMove = lang.Some(m)
	next.Status = CheckResult(next, v)

	return next, nil
}

// CheckResult adjudicates a win/loss for state: the active colour loses either by
// having no pieces left or by having no legal move (stalemate counts as a loss,
// per the mandatory-move convention shared by every supported variant).
func CheckResult(state *board.GameState, v variant.Variant) board.GameStatus {
	opponent := state.Active.Opposite()

	if len(state.PiecesOf(state.Active)) == 0 {
		return board.WinFor(opponent)
	}
	if len(GenerateLegalMoves(state, v)) == 0 {
		return board.WinFor(opponent)
	}
	return board.InProgress
}

// CheckDraw reports whether state is drawn under v, given the caller-maintained
// history of recent position hashes (state.Hash() already appended). Two draw
// conditions are checked: the variant's no-progress move limit, and (when the
// variant enables it) threefold repetition of the current position.
func CheckDraw(state *board.GameState, v variant.Variant, recentHashes []board.Hash) (board.DrawReason, bool) {
	if v.MoveLimit != nil {
		if limit := v.MoveLimit(state); limit > 0 && state.NoProgressCount >= limit {
			return board.MoveLimitWithoutProgress, true
		}
	}

	if v.RepetitionDrawEnabled {
		h := state.Hash()
		count := 0
		for _, seen := range recentHashes {
			if seen == h {
				count++
			}
		}
		if count >= 3 {
			return board.Repetition, true
		}
	}

	return board.NoDrawReason, false
}
