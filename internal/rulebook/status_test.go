package rulebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatusName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"SPEED", "SPEED", true},
		{"poison", "POISON", true},
		{" slowness ", "SLOWNESS", true},
		{"SLOW", "SLOWNESS", true},
		{"JUMP", "JUMP_BOOST", true},
		{"CONFUSION", "NAUSEA", true},
		{"INCREASE_DAMAGE", "STRENGTH", true},
		{"HARM", "INSTANT_DAMAGE", true},
		{"FAST_DIGGING", "HASTE", true},
		{"TELEPORTITIS", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := NormalizeStatusName(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNegativeStatusEffectsAreKnown(t *testing.T) {
	for _, name := range NegativeStatusEffects {
		normalized, ok := NormalizeStatusName(name)
		assert.True(t, ok, name)
		assert.Equal(t, name, normalized)
	}
}
