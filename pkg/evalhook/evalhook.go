// Package evalhook exposes the typed contract an external search strategy
// implements against the core: the core itself only exposes a legal-move
// iterator and evaluation hooks, never a search strategy. It does not itself
// search anything; pkg/rules already supplies the legal-move iterator
// (GenerateLegalMoves). This package is the evaluation half of that contract.
package evalhook

import (
	"github.com/tobagin/draughts-core/pkg/board"
	"github.com/tobagin/draughts-core/pkg/variant"
)

// Score is a signed position score from the perspective of board.Red,
// positive favouring Red, deliberately unitless: a draughts evaluator's
// natural unit (man count, king weighting, mobility) is a choice for the
// external search, not the core.
type Score float64

const (
	MinScore Score = -1_000_000
	MaxScore Score = 1_000_000
)

// Unit returns the signed unit for a colour: 1 for Red, -1 for Black. An
// evaluator combines this with a colour-agnostic term to keep its scoring
// code symmetric.
func Unit(c board.Colour) Score {
	if c == board.Red {
		return 1
	}
	return -1
}

// Crop clamps s into [MinScore, MaxScore].
func Crop(s Score) Score {
	switch {
	case s > MaxScore:
		return MaxScore
	case s < MinScore:
		return MinScore
	default:
		return s
	}
}

// Evaluator is a static position evaluator over a draughts GameState. An
// external search strategy supplies one; the core never calls it.
type Evaluator interface {
	Evaluate(state *board.GameState, v variant.Variant) Score
}

// MaterialWeights assigns a nominal value to each piece kind, letting an
// evaluator weigh kings above men without hardcoding the ratio.
type MaterialWeights struct {
	Man  Score
	King Score
}

// DefaultMaterialWeights matches the common king-is-worth-roughly-1.5-to-3-men
// convention used across draughts engines; kept here only as a convenient
// zero-config default, not a certified value.
var DefaultMaterialWeights = MaterialWeights{Man: 1, King: 2}

// Material is the simplest Evaluator: signed man/king count difference from
// Red's perspective, weighted by w.
type Material struct {
	Weights MaterialWeights
}

func (m Material) Evaluate(state *board.GameState, _ variant.Variant) Score {
	var score Score
	for _, p := range state.Pieces {
		w := m.Weights.Man
		if p.Kind == board.King {
			w = m.Weights.King
		}
		if p.Colour == board.Red {
			score += w
		} else {
			score -= w
		}
	}
	return score
}

// MoveGain is the material swing a move represents for its mover, evaluated
// purely from the move's own self-describing fields (no rule-engine lookup
// needed): captures are worth one man each, promotion is a king upgrade.
func MoveGain(m board.Move, w MaterialWeights) Score {
	gain := Score(len(m.Captured)) * w.Man
	if m.Promoted {
		gain += w.King - w.Man
	}
	return gain
}
