// Package variant declares the sixteen named rule systems as immutable parameter
// records over a single rule engine, rather than as a class per variant. See
// github.com/tobagin/draughts-core/pkg/rules, which is the only code that branches
// on these parameters.
package variant

import (
	"fmt"

	"github.com/tobagin/draughts-core/pkg/board"
)

// ID names one of the sixteen certified rule systems.
type ID string

const (
	International ID = "international"
	Brazilian     ID = "brazilian"
	Russian       ID = "russian"
	American      ID = "american"
	PoolCheckers  ID = "pool-checkers"
	Spanish       ID = "spanish"
	Italian       ID = "italian"
	Czech         ID = "czech"
	Turkish       ID = "turkish"
	Thai          ID = "thai"
	Frisian       ID = "frisian"
	Canadian      ID = "canadian"
	Armenian      ID = "armenian"
	Malaysian     ID = "malaysian"
	Ghanaian      ID = "ghanaian"
	Jamaican      ID = "jamaican"
)

// CapturePriority is the tie-break applied among complete multi-capture sequences
// when mandatory capture is in effect.
type CapturePriority uint8

const (
	// Free returns the full set of complete captures; the player chooses.
	Free CapturePriority = iota
	// MaximumCount retains only sequences capturing the greatest number of pieces.
	MaximumCount
	// MaximumSequence tie-breaks further with variant-defined preferences. Per the
	// spec, no certified variant here needs more than MaximumCount, so this
	// currently collapses to it; the distinct tag is kept so a future variant can
	// be certified with a real additional preference without an engine change.
	MaximumSequence
)

func (p CapturePriority) String() string {
	switch p {
	case Free:
		return "free"
	case MaximumCount:
		return "maximum-count"
	case MaximumSequence:
		return "maximum-sequence"
	default:
		return "?"
	}
}

// MoveLimitFn returns the no-capture-no-advance ply threshold for a state.
type MoveLimitFn func(s *board.GameState) int

// Variant is an immutable parameter record. The registry is process-wide immutable
// data; there is no initialisation-order hazard because every Variant is a value
// built once at package init and never mutated.
type Variant struct {
	ID                    ID
	DisplayName           string
	BoardSize             int
	MenMayCaptureBackward bool
	KingsFly              bool
	MandatoryCapture      bool
	Priority              CapturePriority
	MoveLimit             MoveLimitFn
	RepetitionDrawEnabled bool

	// GameTypeCode is the small per-variant integer used in the notation codec's
	// "[GameType NN]" header.
	GameTypeCode int
}

// PromotionRow returns the terminating row for a colour's men in this variant.
func (v Variant) PromotionRow(c board.Colour) int {
	return board.PromotionRow(c, v.BoardSize)
}

// StartingLayout returns a fresh initial piece set: men fill every dark square of
// the first (BoardSize-2)/2 rows on each side, Black at the top (low rows), Red at
// the bottom (high rows), matching the board's forward-direction convention.
func (v Variant) StartingLayout() []board.Piece {
	rows := (v.BoardSize - 2) / 2

	var pieces []board.Piece
	id := 1

	for row := 0; row < rows; row++ {
		for col := 0; col < v.BoardSize; col++ {
			pos := board.NewPosition(row, col, v.BoardSize)
			if !pos.IsDark() {
				continue
			}
			pieces = append(pieces, board.Piece{ID: id, Colour: board.Black, Kind: board.Man, Position: pos})
			id++
		}
	}
	for row := v.BoardSize - rows; row < v.BoardSize; row++ {
		for col := 0; col < v.BoardSize; col++ {
			pos := board.NewPosition(row, col, v.BoardSize)
			if !pos.IsDark() {
				continue
			}
			pieces = append(pieces, board.Piece{ID: id, Colour: board.Red, Kind: board.Man, Position: pos})
			id++
		}
	}
	return pieces
}

func (v Variant) String() string {
	return fmt.Sprintf("%v (%dx%d)", v.DisplayName, v.BoardSize, v.BoardSize)
}

func standardMoveLimit(defaultPly, kingsOnlyPly int) MoveLimitFn {
	return func(s *board.GameState) int {
		if s.OnlyKingsRemain() {
			return kingsOnlyPly
		}
		return defaultPly
	}
}
