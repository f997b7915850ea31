package mockdice

import (
	"sync"
)

// ManualMockRoller implements dice.Roller for testing with predetermined results
type ManualMockRoller struct {
	mu        sync.Mutex
	rolls     []int
	rollIndex int
}

// NewManualMockRoller creates a new mock roller
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{
		rolls: []int{},
	}
}

// SetNextRoll appends a predetermined result
func (m *ManualMockRoller) SetNextRoll(roll int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// SetRolls replaces all predetermined results
func (m *ManualMockRoller) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = rolls
	m.rollIndex = 0
}

// Reset clears all rolls and resets the index
func (m *ManualMockRoller) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = []int{}
	m.rollIndex = 0
}

// RollRange implements dice.Roller.RollRange. Results are clamped into
// [min, max] so a mis-set mock can never produce an out-of-range value.
func (m *ManualMockRoller) RollRange(min, max int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if max < min {
		min, max = max, min
	}
	if m.rollIndex >= len(m.rolls) {
		return min
	}

	roll := m.rolls[m.rollIndex]
	m.rollIndex++

	if roll < min {
		return min
	}
	if roll > max {
		return max
	}
	return roll
}
