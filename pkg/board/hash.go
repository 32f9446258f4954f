package board

import "math/rand"

// Hash is a position hash based on piece-square occupancy and the active colour. It
// is intended for repetition-draw detection: two states with the same dark-square
// piece distribution and the same active colour always hash identically; otherwise
// they differ with overwhelming probability.
//
// See also: https://research.cs.wisc.edu/techreports/1970/TR88.pdf.
type Hash uint64

// maxSquaresPerSide bounds the largest supported board (12x12 has 72 dark squares).
const maxSquaresPerSide = 144

// HashTable is a pseudo-randomized table for computing a state hash. The hash is
// recomputed from every piece on each call, not updated incrementally per move.
// One table is shared by every variant and board size; unused entries are simply
// never consulted for a smaller board.
type HashTable struct {
	manAt   [NumColours][maxSquaresPerSide]Hash
	kingAt  [NumColours][maxSquaresPerSide]Hash
	turn    [NumColours]Hash
}

func NewHashTable(seed int64) *HashTable {
	r := rand.New(rand.NewSource(seed))

	ret := &HashTable{}
	for c := ZeroColour; c < NumColours; c++ {
		for sq := 0; sq < maxSquaresPerSide; sq++ {
			ret.manAt[c][sq] = Hash(r.Uint64())
			ret.kingAt[c][sq] = Hash(r.Uint64())
		}
		ret.turn[c] = Hash(r.Uint64())
	}
	return ret
}

// Hash computes the hash for a set of pieces and the active colour.
func (t *HashTable) Hash(pieces map[int]Piece, active Colour) Hash {
	var h Hash
	for _, p := range pieces {
		sq, err := SquareNumber(p.Position)
		if err != nil {
			continue // never happens for a valid state: every piece sits on a dark square
		}
		if p.Kind == King {
			h ^= t.kingAt[p.Colour][sq]
		} else {
			h ^= t.manAt[p.Colour][sq]
		}
	}
	h ^= t.turn[active]
	return h
}
