package dice

import (
	"math/rand"
)

// randomRoller implements Roller using math/rand
type randomRoller struct{}

// NewRandomRoller creates a new random roller
func NewRandomRoller() Roller {
	return &randomRoller{}
}

// RollRange implements Roller.RollRange
func (r *randomRoller) RollRange(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + rand.Intn(max-min+1)
}
