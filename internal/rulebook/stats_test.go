package rulebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatMap_Merge(t *testing.T) {
	m := StatMap{StatMaxHealth: 4, StatArmor: 1}
	m.Merge(StatMap{StatMaxHealth: 2, StatLuck: 0.5})

	assert.Equal(t, StatMap{StatMaxHealth: 6, StatArmor: 1, StatLuck: 0.5}, m)
}

func TestStatMap_MergeScaled(t *testing.T) {
	m := StatMap{}
	m.MergeScaled(StatMap{StatAttackDamage: 1.5, StatArmor: 2}, 3)

	assert.InDelta(t, 4.5, float64(m[StatAttackDamage]), 1e-9)
	assert.InDelta(t, 6.0, float64(m[StatArmor]), 1e-9)
}

func TestParseStatKey(t *testing.T) {
	tests := []struct {
		raw  string
		want StatKey
		ok   bool
	}{
		{"max_health", StatMaxHealth, true},
		{"HEALTH", StatMaxHealth, true},
		{"hp", StatMaxHealth, true},
		{" speed ", StatMovementSpeed, true},
		{"movement_speed", StatMovementSpeed, true},
		{"damage", StatAttackDamage, true},
		{"ATTACK_DAMAGE", StatAttackDamage, true},
		{"armor", StatArmor, true},
		{"luck", StatLuck, true},
		{"mana", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseStatKey(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
