package rules

import (
	"github.com/tobagin/draughts-core/pkg/board"
	"github.com/tobagin/draughts-core/pkg/variant"
)

// captureOption is one single-capture hop available from a position.
type captureOption struct {
	victimID int
	landing  board.Position
}

// generateCaptures returns every complete (maximal) multi-capture sequence
// available to mover from its current position. An empty result means mover has
// no capture available at all.
func generateCaptures(state *board.GameState, v variant.Variant, mover board.Piece) []board.Move {
	visited := map[board.Position]bool{mover.Position: true}
	return extendCapture(state, v, mover, mover.Position, nil, nil, visited, map[int]bool{})
}

func extendCapture(state *board.GameState, v variant.Variant, mover board.Piece, cur board.Position, captured []int, path []board.Position, visited map[board.Position]bool, capturedSet map[int]bool) []board.Move {
	options := captureOptionsFrom(state, v, cur, mover.Colour, mover.Kind, visited, capturedSet)
	if len(options) == 0 {
		if len(captured) == 0 {
			return nil
		}
		return []board.Move{buildCaptureMove(mover, path, captured, v)}
	}

	var moves []board.Move
	for _, opt := range options {
		newVisited := make(map[board.Position]bool, len(visited)+1)
		for p := range visited {
			newVisited[p] = true
		}
		newVisited[opt.landing] = true

		newCaptured := append(append([]int(nil), captured...), opt.victimID)
		newPath := append(append([]board.Position(nil), path...), opt.landing)

		newCapturedSet := make(map[int]bool, len(capturedSet)+1)
		for id := range capturedSet {
			newCapturedSet[id] = true
		}
		newCapturedSet[opt.victimID] = true

		moves = append(moves, extendCapture(state, v, mover, opt.landing, newCaptured, newPath, newVisited, newCapturedSet)...)
	}
	return moves
}

// captureOptionsFrom returns every single-capture hop available from cur, for a
// piece of the given colour/kind, honouring visited squares (no turning back onto a
// square already traversed by this same move) and the set of victims already
// captured earlier in this move (which remain on the board, blocking, but may not
// be captured a second time).
func captureOptionsFrom(state *board.GameState, v variant.Variant, cur board.Position, colour board.Colour, kind board.PieceKind, visited map[board.Position]bool, capturedSet map[int]bool) []captureOption {
	var ret []captureOption
	for _, dir := range captureDirections(v, colour, kind) {
		if kind == board.King && v.KingsFly {
			ret = append(ret, flyingCaptureOptions(state, cur, colour, dir, visited, capturedSet)...)
		} else {
			if opt, ok := shortCaptureOption(state, cur, colour, dir, visited, capturedSet); ok {
				ret = append(ret, opt)
			}
		}
	}
	return ret
}

func captureDirections(v variant.Variant, colour board.Colour, kind board.PieceKind) []board.Direction {
	if kind == board.King {
		return board.Diagonals
	}
	if v.MenMayCaptureBackward {
		return board.Diagonals
	}
	return board.ForwardDiagonals(colour)
}

// shortCaptureOption checks the single two-square jump for a man or a non-flying king.
func shortCaptureOption(state *board.GameState, cur board.Position, colour board.Colour, dir board.Direction, visited map[board.Position]bool, capturedSet map[int]bool) (captureOption, bool) {
	victimPos := cur.Translate(dir.DRow, dir.DCol)
	landing := victimPos.Translate(dir.DRow, dir.DCol)
	if !landing.IsOnBoard() {
		return captureOption{}, false
	}
	if visited[victimPos] || visited[landing] {
		return captureOption{}, false
	}
	victim, ok := state.PieceAt(victimPos)
	if !ok || victim.Colour == colour || capturedSet[victim.ID] {
		return captureOption{}, false
	}
	if _, occupied := state.PieceAt(landing); occupied {
		return captureOption{}, false
	}
	return captureOption{victimID: victim.ID, landing: landing}, true
}

// flyingCaptureOptions scans a clear diagonal for a flying king: any run of empty
// squares, then exactly one opposing, not-yet-captured piece, then any run of empty
// squares to land on.
func flyingCaptureOptions(state *board.GameState, cur board.Position, colour board.Colour, dir board.Direction, visited map[board.Position]bool, capturedSet map[int]bool) []captureOption {
	it := board.IterateDiagonal(cur, dir)

	var victimID int
	foundVictim := false
	for {
		pos, ok := it.Next()
		if !ok {
			return nil
		}
		if visited[pos] {
			return nil
		}
		occ, present := state.PieceAt(pos)
		if !present {
			continue
		}
		if occ.Colour == colour || capturedSet[occ.ID] {
			return nil // blocked by own piece, or a victim already captured this move
		}
		victimID = occ.ID
		foundVictim = true
		break
	}
	if !foundVictim {
		return nil
	}

	var ret []captureOption
	for {
		pos, ok := it.Next()
		if !ok {
			break
		}
		if visited[pos] {
			break
		}
		if _, present := state.PieceAt(pos); present {
			break
		}
		ret = append(ret, captureOption{victimID: victimID, landing: pos})
	}
	return ret
}

func buildCaptureMove(mover board.Piece, path []board.Position, captured []int, v variant.Variant) board.Move {
	kind := board.CaptureMove
	if len(captured) > 1 {
		kind = board.MultiCapture
	}
	to := path[len(path)-1]
	promoted := mover.Kind == board.Man && to.Row == v.PromotionRow(mover.Colour)

	return board.Move{
		MoverID:  mover.ID,
		From:     mover.Position,
		To:       to,
		Kind:     kind,
		Captured: captured,
		Path:     path,
		Promoted: promoted,
	}
}
