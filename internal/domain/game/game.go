// Package game defines the interfaces the hosting game runtime implements
// for the rules core: entities, world queries, and the presentation surface.
// The core never talks to an engine directly; it only sees these contracts.
package game

import (
	"time"
)

// TickDuration is the length of one simulation tick. Cooldowns and timeline
// offsets are configured in ticks and converted with this constant.
const TickDuration = 50 * time.Millisecond

// TicksPerSecond is the simulation rate implied by TickDuration
const TicksPerSecond = 20

// Ticks converts a tick count to a wall-clock duration
func Ticks(n int) time.Duration {
	return time.Duration(n) * TickDuration
}
