package variant

import "fmt"

var registry = map[ID]Variant{
	International: {
		ID: International, DisplayName: "International (FMJD)", BoardSize: 10,
		MenMayCaptureBackward: true, KingsFly: true, MandatoryCapture: true,
		Priority: MaximumCount, MoveLimit: standardMoveLimit(50, 25), RepetitionDrawEnabled: true,
		GameTypeCode: 20,
	},
	Brazilian: {
		ID: Brazilian, DisplayName: "Brazilian", BoardSize: 8,
		MenMayCaptureBackward: true, KingsFly: true, MandatoryCapture: true,
		Priority: MaximumCount, MoveLimit: standardMoveLimit(50, 25), RepetitionDrawEnabled: true,
		GameTypeCode: 35,
	},
	Russian: {
		ID: Russian, DisplayName: "Russian", BoardSize: 8,
		MenMayCaptureBackward: true, KingsFly: true, MandatoryCapture: true,
		Priority: Free, MoveLimit: standardMoveLimit(30, 15), RepetitionDrawEnabled: true,
		GameTypeCode: 25,
	},
	American: {
		ID: American, DisplayName: "American (English Checkers)", BoardSize: 8,
		MenMayCaptureBackward: false, KingsFly: false, MandatoryCapture: true,
		Priority: Free, MoveLimit: standardMoveLimit(40, 40), RepetitionDrawEnabled: true,
		GameTypeCode: 21,
	},
	PoolCheckers: {
		ID: PoolCheckers, DisplayName: "Pool Checkers (Spanish Pool)", BoardSize: 8,
		MenMayCaptureBackward: true, KingsFly: true, MandatoryCapture: true,
		Priority: MaximumCount, MoveLimit: standardMoveLimit(50, 25), RepetitionDrawEnabled: true,
		GameTypeCode: 22,
	},
	Spanish: {
		ID: Spanish, DisplayName: "Spanish", BoardSize: 8,
		MenMayCaptureBackward: true, KingsFly: true, MandatoryCapture: true,
		Priority: MaximumCount, MoveLimit: standardMoveLimit(50, 25), RepetitionDrawEnabled: true,
		GameTypeCode: 23,
	},
	Italian: {
		ID: Italian, DisplayName: "Italian", BoardSize: 8,
		MenMayCaptureBackward: false, KingsFly: false, MandatoryCapture: true,
		Priority: MaximumSequence, MoveLimit: standardMoveLimit(50, 25), RepetitionDrawEnabled: true,
		GameTypeCode: 24,
	},
	Czech: {
		ID: Czech, DisplayName: "Czech", BoardSize: 8,
		MenMayCaptureBackward: true, KingsFly: true, MandatoryCapture: true,
		Priority: MaximumSequence, MoveLimit: standardMoveLimit(50, 25), RepetitionDrawEnabled: true,
		GameTypeCode: 26,
	},
	Turkish: {
		// Real Turkish draughts (Dama) moves orthogonally on a diagonal-blind board;
		// that is out of scope for a single diagonal rule engine. Approximated here
		// on the diagonal engine with backward men captures and flying kings; see
		// DESIGN.md.
		ID: Turkish, DisplayName: "Turkish (diagonal approximation)", BoardSize: 8,
		MenMayCaptureBackward: true, KingsFly: true, MandatoryCapture: true,
		Priority: MaximumCount, MoveLimit: standardMoveLimit(50, 25), RepetitionDrawEnabled: true,
		GameTypeCode: 27,
	},
	Thai: {
		// Approximated on the diagonal engine; see Turkish, above, and DESIGN.md.
		ID: Thai, DisplayName: "Thai (diagonal approximation)", BoardSize: 8,
		MenMayCaptureBackward: false, KingsFly: false, MandatoryCapture: true,
		Priority: Free, MoveLimit: standardMoveLimit(50, 25), RepetitionDrawEnabled: true,
		GameTypeCode: 28,
	},
	Frisian: {
		// Real Frisian draughts also allows orthogonal captures; only the diagonal
		// subset of its rules is modelled. See DESIGN.md.
		ID: Frisian, DisplayName: "Frisian (diagonal subset)", BoardSize: 10,
		MenMayCaptureBackward: true, KingsFly: true, MandatoryCapture: true,
		Priority: MaximumCount, MoveLimit: standardMoveLimit(50, 25), RepetitionDrawEnabled: true,
		GameTypeCode: 29,
	},
	Canadian: {
		ID: Canadian, DisplayName: "Canadian", BoardSize: 12,
		MenMayCaptureBackward: true, KingsFly: true, MandatoryCapture: true,
		Priority: MaximumCount, MoveLimit: standardMoveLimit(50, 25), RepetitionDrawEnabled: true,
		GameTypeCode: 30,
	},
	Armenian: {
		ID: Armenian, DisplayName: "Armenian (Tama)", BoardSize: 8,
		MenMayCaptureBackward: true, KingsFly: true, MandatoryCapture: true,
		Priority: Free, MoveLimit: standardMoveLimit(50, 25), RepetitionDrawEnabled: true,
		GameTypeCode: 31,
	},
	Malaysian: {
		ID: Malaysian, DisplayName: "Malaysian", BoardSize: 8,
		MenMayCaptureBackward: true, KingsFly: true, MandatoryCapture: true,
		Priority: MaximumCount, MoveLimit: standardMoveLimit(50, 25), RepetitionDrawEnabled: true,
		GameTypeCode: 32,
	},
	Ghanaian: {
		ID: Ghanaian, DisplayName: "Ghanaian", BoardSize: 10,
		MenMayCaptureBackward: true, KingsFly: true, MandatoryCapture: true,
		Priority: MaximumCount, MoveLimit: standardMoveLimit(50, 25), RepetitionDrawEnabled: true,
		GameTypeCode: 33,
	},
	Jamaican: {
		ID: Jamaican, DisplayName: "Jamaican", BoardSize: 8,
		MenMayCaptureBackward: true, KingsFly: true, MandatoryCapture: true,
		Priority: Free, MoveLimit: standardMoveLimit(50, 25), RepetitionDrawEnabled: true,
		GameTypeCode: 34,
	},
}

// All returns every certified variant in a fixed order, for iteration in tests and CLIs.
func All() []Variant {
	ret := make([]Variant, 0, len(registry))
	for _, id := range []ID{
		International, Brazilian, Russian, American, PoolCheckers, Spanish, Italian, Czech,
		Turkish, Thai, Frisian, Canadian, Armenian, Malaysian, Ghanaian, Jamaican,
	} {
		ret = append(ret, registry[id])
	}
	return ret
}

// ByID returns the variant for the given id.
func ByID(id ID) (Variant, error) {
	v, ok := registry[id]
	if !ok {
		return Variant{}, fmt.Errorf("unknown variant: %q", id)
	}
	return v, nil
}

// ByGameTypeCode finds the variant whose notation GameType header integer matches.
// Several variants may share conventions loosely, but within this registry each
// code is unique.
func ByGameTypeCode(code int) (Variant, error) {
	for _, v := range registry {
		if v.GameTypeCode == code {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("unknown game type code: %d", code)
}
