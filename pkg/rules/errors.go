// Package rules is the pure rule engine: a function family over (state, variant)
// that enumerates legal moves, validates a candidate, executes a move, and detects
// terminal conditions. No hidden state; every function is safe to call concurrently
// for distinct states. A single engine parameterised by a variant.Variant, not a
// class hierarchy per rule system.
package rules

import "errors"

// ErrIllegalMove is returned (possibly wrapped) whenever a candidate move fails
// validation. Use errors.Is(err, ErrIllegalMove) to test for it.
var ErrIllegalMove = errors.New("illegal move")
