package server

import "time"

const (
	ProtocolVersion   = 1
	writeWait         = 10 * time.Second
	tickRate          = 15 // ticks per second
	heartbeatInterval = 2 * time.Second
	disconnectAfter   = 3 * heartbeatInterval
)

// TickRate reports the simulation tick rate for diagnostics.
func TickRate() int {
	return tickRate
}

// HeartbeatInterval reports the expected client heartbeat cadence.
func HeartbeatInterval() time.Duration {
	return heartbeatInterval
}
