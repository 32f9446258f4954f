package protocol

import "github.com/tobagin/draughts-core/pkg/board"

// FromBoardMove converts a fully authoritative board.Move into its wire
// shape. boardSize is needed to reconstruct Position values on decode; it is
// not itself part of the wire payload — the room's variant already fixes it
// for both peers.
func FromBoardMove(m board.Move) Move {
	captured := make([]int, len(m.Captured))
	copy(captured, m.Captured)
	return Move{
		PieceID:        m.MoverID,
		FromRow:        m.From.Row,
		FromCol:        m.From.Col,
		ToRow:          m.To.Row,
		ToCol:          m.To.Col,
		IsCapture:      m.IsCapture(),
		Promoted:       m.Promoted,
		CapturedPieces: captured,
	}
}

// ToBoardMove reconstructs a board.Move from its wire shape for a board of
// the given size. The kind is inferred from IsCapture/len(CapturedPieces):
// a capture with exactly one victim decodes as CaptureMove, more than one as
// MultiCapture, matching how the rule engine's capture generation sets
// board.Move.Kind. Path is
// left empty: it is derived-only bookkeeping the rule engine fills in while
// walking a multi-capture, never consulted by board.Move.Equals or by a peer
// that trusts the sender's captured-ids/promoted fields outright.
func ToBoardMove(m Move, boardSize int) board.Move {
	kind := board.Simple
	if m.IsCapture {
		kind = board.CaptureMove
		if len(m.CapturedPieces) > 1 {
			kind = board.MultiCapture
		}
	}
	captured := make([]int, len(m.CapturedPieces))
	copy(captured, m.CapturedPieces)
	return board.Move{
		MoverID:  m.PieceID,
		From:     board.NewPosition(m.FromRow, m.FromCol, boardSize),
		To:       board.NewPosition(m.ToRow, m.ToCol, boardSize),
		Kind:     kind,
		Captured: captured,
		Promoted: m.Promoted,
	}
}
