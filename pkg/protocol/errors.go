package protocol

import "errors"

// ErrMalformedFrame is returned when a raw frame is not valid JSON or is
// missing the `type` discriminator (a ProtocolError: PARSE_ERROR).
var ErrMalformedFrame = errors.New("malformed frame")

// ErrUnknownMessageType is returned when `type` does not match any known
// message (a ProtocolError: UNKNOWN_TYPE).
var ErrUnknownMessageType = errors.New("unknown message type")
