package rules

import (
	"github.com/tobagin/draughts-core/pkg/board"
	"github.com/tobagin/draughts-core/pkg/variant"
)

// generateSimpleMoves returns every non-capturing move available to p. Flying kings
// slide to any empty square along a clear diagonal; men and non-flying kings step
// exactly one square.
func generateSimpleMoves(state *board.GameState, v variant.Variant, p board.Piece) []board.Move {
	var moves []board.Move

	if p.Kind == board.King && v.KingsFly {
		for _, dir := range board.Diagonals {
			it := board.IterateDiagonal(p.Position, dir)
			for {
				to, ok := it.Next()
				if !ok {
					break
				}
				if _, occupied := state.PieceAt(to); occupied {
					break
				}
				moves = append(moves, board.Move{
					MoverID: p.ID,
					From:    p.Position,
					To:      to,
					Kind:    board.Simple,
				})
			}
		}
		return moves
	}

	for _, dir := range stepDirections(v, p) {
		to := p.Position.Translate(dir.DRow, dir.DCol)
		if !to.IsOnBoard() {
			continue
		}
		if _, occupied := state.PieceAt(to); occupied {
			continue
		}
		promoted := p.Kind == board.Man && to.Row == v.PromotionRow(p.Colour)
		moves = append(moves, board.Move{
			MoverID:  p.ID,
			From:     p.Position,
			To:       to,
			Kind:     board.Simple,
			Promoted: promoted,
		})
	}
	return moves
}

func stepDirections(v variant.Variant, p board.Piece) []board.Direction {
	if p.Kind == board.King {
		return board.Diagonals
	}
	return board.ForwardDiagonals(p.Colour)
}

// applyPriority filters a set of capture moves down to those satisfying the
// variant's mandatory-capture tie-break rule. Free leaves every capture on the
// table; MaximumCount and MaximumSequence both reduce to keeping only the
// longest sequence(s), since a sequence's length already equals its capture count
// in this engine.
func applyPriority(moves []board.Move, p variant.CapturePriority) []board.Move {
	if p == variant.Free || len(moves) == 0 {
		return moves
	}

	best := 0
	for _, m := range moves {
		if n := len(m.Captured); n > best {
			best = n
		}
	}

	var ret []board.Move
	for _, m := range moves {
		if len(m.Captured) == best {
			ret = append(ret, m)
		}
	}
	return ret
}
