// Package server is the relay server: an authoritative room registry,
// matchmaking (room-code and quick-match), message routing over WebSocket,
// disconnect grace, an inactivity watchdog, and a keepalive pinger. It never
// runs the rule engine (pkg/rules) — each client computes and validates
// legality locally; the server's job is transport, timing, and trust. A
// Room carries a ClientSession per seat (each wrapping a *websocket.Conn and
// a disconnect-time field used for grace handling) and a State machine over
// the room's Open/Filled/Playing/Closed lifecycle.
package server
