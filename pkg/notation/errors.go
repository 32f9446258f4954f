// Package notation implements a portable numeric notation codec: a PDN-style
// textual game record over square numbers (rather than algebraic square
// names), replayed through pkg/rules so that every parsed move carries the
// same authoritative captured-ids and promotion data Execute would produce.
package notation

import "errors"

// ErrUnknownHeader is returned when a header line cannot be parsed as [Key Value],
// when the [GameType NN] value is not an integer, or when that header is missing.
var ErrUnknownHeader = errors.New("malformed header line")

// ErrUnresolvedMove is returned when a move token in the text does not match
// any move the rule engine considers legal at that point in the game.
var ErrUnresolvedMove = errors.New("move token does not match any legal move")

// ErrUnknownGameType is returned when the [GameType NN] header names a code not
// present in the variant registry.
var ErrUnknownGameType = errors.New("unknown game type code")
