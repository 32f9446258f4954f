package board

import (
	"fmt"
	"sort"

	"github.com/seekerror/stdlib/pkg/lang"
)

// DefaultHashTable is the process-wide table used to compute GameState hashes. It is
// immutable once built and safe for concurrent read access, matching the variant
// registry's "no initialisation order hazard" guarantee.
var DefaultHashTable = NewHashTable(0)

// GameState is a snapshot of a game in progress. It is a plain value: cloning it
// produces a deep, share-free copy suitable for history reconstruction and for
// handing a read-only view to a caller without risking aliasing the live state.
type GameState struct {
	Pieces     map[int]Piece
	Active     Colour
	MoveCount  int
	LastMove   lang.Optional[Move]
	Status     GameStatus
	DrawReason lang.Optional[DrawReason]
	BoardSize  int

	// NoProgressCount is the ply counter the rule engine's move-limit draw check
	// consults: reset by a capture or a Man-advance, incremented by any other move.
	// Bookkeeping internal to the engine/controller, required to implement
	// move-limit draw detection without re-deriving it from the full move
	// history on every check.
	NoProgressCount int
}

// NewGameState builds a fresh state from an initial piece layout.
func NewGameState(pieces []Piece, boardSize int) *GameState {
	m := make(map[int]Piece, len(pieces))
	for _, p := range pieces {
		m[p.ID] = p
	}
	return &GameState{
		Pieces:    m,
		Active:    Red,
		MoveCount: 0,
		Status:    InProgress,
		BoardSize: boardSize,
	}
}

// Clone returns a deep, share-free copy: pieces are copied by value, the optional
// last-move is copied, and no map or slice is shared with the original.
func (s *GameState) Clone() *GameState {
	pieces := make(map[int]Piece, len(s.Pieces))
	for id, p := range s.Pieces {
		pieces[id] = p
	}

	var lastMove lang.Optional[Move]
	if m, ok := s.LastMove.V(); ok {
		cp := m
		cp.Captured = append([]int(nil), m.Captured...)
		cp.Path = append([]Position(nil), m.Path...)
		lastMove = lang.Some(cp)
	}

	return &GameState{
		Pieces:          pieces,
		Active:          s.Active,
		MoveCount:       s.MoveCount,
		LastMove:        lastMove,
		Status:          s.Status,
		DrawReason:      s.DrawReason,
		BoardSize:       s.BoardSize,
		NoProgressCount: s.NoProgressCount,
	}
}

// PieceAt returns the piece occupying pos, if any.
func (s *GameState) PieceAt(pos Position) (Piece, bool) {
	for _, p := range s.Pieces {
		if p.Position.Equals(pos) {
			return p, true
		}
	}
	return Piece{}, false
}

// PiecesOf returns the pieces of the given colour, ordered by id for determinism.
func (s *GameState) PiecesOf(c Colour) []Piece {
	var ret []Piece
	for _, p := range s.Pieces {
		if p.Colour == c {
			ret = append(ret, p)
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].ID < ret[j].ID })
	return ret
}

// OnlyKingsRemain reports whether every piece still on the board is a king.
func (s *GameState) OnlyKingsRemain() bool {
	for _, p := range s.Pieces {
		if p.Kind != King {
			return false
		}
	}
	return len(s.Pieces) > 0
}

// Hash computes the position hash used for repetition detection: stable for any two
// states sharing the same dark-square piece distribution and active colour.
func (s *GameState) Hash() Hash {
	return DefaultHashTable.Hash(s.Pieces, s.Active)
}

// Validate checks the invariants that must hold at all times: no two pieces share a
// position, and every piece sits on a dark square within the board.
func (s *GameState) Validate() error {
	seen := make(map[Position]int, len(s.Pieces))
	for id, p := range s.Pieces {
		if p.Position.Size != s.BoardSize {
			return fmt.Errorf("piece %d has board size %d, state has %d", id, p.Position.Size, s.BoardSize)
		}
		if !p.Position.IsOnBoard() {
			return fmt.Errorf("piece %d at %v is off board", id, p.Position)
		}
		if !p.Position.IsDark() {
			return fmt.Errorf("piece %d at %v is not on a dark square", id, p.Position)
		}
		if other, dup := seen[p.Position]; dup {
			return fmt.Errorf("pieces %d and %d both occupy %v", other, id, p.Position)
		}
		seen[p.Position] = id
	}
	return nil
}

func (s *GameState) String() string {
	return fmt.Sprintf("state{pieces=%d, active=%v, move=%d, status=%v}", len(s.Pieces), s.Active, s.MoveCount, s.Status)
}
