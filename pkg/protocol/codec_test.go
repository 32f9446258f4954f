package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tobagin/draughts-core/pkg/board"
)

func TestMoveRoundTrip(t *testing.T) {
	m := board.Move{
		MoverID: 7,
		From:    board.NewPosition(2, 2, 8),
		To:      board.NewPosition(4, 4, 8),
		Kind:    board.CaptureMove,
		Captured: []int{12},
		Promoted: false,
	}

	wire := FromBoardMove(m)
	raw, err := json.Marshal(wire)
	assert.NoError(t, err)

	var decoded Move
	assert.NoError(t, json.Unmarshal(raw, &decoded))

	back := ToBoardMove(decoded, 8)
	assert.True(t, m.Equals(back), "expected %v, got %v", m, back)
}

func TestMoveRoundTripMultiCapture(t *testing.T) {
	m := board.Move{
		MoverID:  3,
		From:     board.NewPosition(0, 2, 10),
		To:       board.NewPosition(4, 6, 10),
		Kind:     board.MultiCapture,
		Captured: []int{9, 11},
		Promoted: true,
	}

	wire := FromBoardMove(m)
	back := ToBoardMove(wire, 10)
	assert.True(t, m.Equals(back))
}

func TestEnvelopeDispatch(t *testing.T) {
	raw := []byte(`{"type":"make_move","timestamp":1690000000000,"move":{"piece_id":1,"from_row":2,"from_col":2,"to_row":3,"to_col":3,"is_capture":false,"promoted":false,"captured_pieces":[]}}`)

	env, err := DecodeEnvelope(raw)
	assert.NoError(t, err)
	assert.Equal(t, TypeMakeMove, env.Type)

	var msg MakeMoveMsg
	assert.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, 1, msg.Move.PieceID)
}

func TestDecodeEnvelopeRejectsMalformed(t *testing.T) {
	_, err := DecodeEnvelope([]byte(`not json`))
	assert.ErrorIs(t, err, ErrMalformedFrame)

	_, err = DecodeEnvelope([]byte(`{}`))
	assert.ErrorIs(t, err, ErrMalformedFrame)
}

func TestVersionGating(t *testing.T) {
	assert.True(t, MeetsRequiredVersion("1.0.0"))
	assert.True(t, MeetsRequiredVersion("1.0.1"))
	assert.True(t, MeetsRequiredVersion("1.2.0"))
	assert.True(t, MeetsRequiredVersion("2.0.0"))
	assert.False(t, MeetsRequiredVersion("0.9.9"))
	assert.True(t, MeetsRequiredVersion("1.0"))
	assert.True(t, MeetsRequiredVersion("1.0.0.1"))
}

func TestCompareVersionsEqualPadding(t *testing.T) {
	assert.Equal(t, 0, CompareVersions("1.0", "1.0.0"))
	assert.Equal(t, -1, CompareVersions("1.0.0", "1.0.1"))
	assert.Equal(t, 1, CompareVersions("1.1", "1.0.9"))
}
