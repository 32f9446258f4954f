// Package protocol is the wire codec: tagged JSON messages exchanged between
// a client and the relay server, plus the move payload shape and the
// version-gating rule both sides apply. Every frame carries a `type` field
// that selects its concrete Go struct — one typed struct per message rather
// than a generic `Data any` blob, since every field sits at the top level
// rather than nested under a `data` key.
package protocol
