package rulebook

import (
	"strings"
)

// StatKey identifies a derived combat attribute. The set is closed:
// definition files using any other key have that entry dropped at load time.
type StatKey string

const (
	StatMaxHealth     StatKey = "max_health"
	StatMovementSpeed StatKey = "movement_speed"
	StatAttackDamage  StatKey = "attack_damage"
	StatArmor         StatKey = "armor"
	StatLuck          StatKey = "luck"
)

// StatMap holds per-stat contributions, either flat additive or scalar multiplier
type StatMap map[StatKey]float64

// Merge sums the other map into this one per key
func (m StatMap) Merge(other StatMap) {
	for k, v := range other {
		m[k] += v
	}
}

// MergeScaled sums the other map into this one, scaling every value first.
// Used for talent contributions where ranks stack linearly.
func (m StatMap) MergeScaled(other StatMap, scale float64) {
	for k, v := range other {
		m[k] += v * scale
	}
}

// ParseStatKey maps a config token to a StatKey, accepting legacy aliases.
// Returns false for unrecognized keys.
func ParseStatKey(raw string) (StatKey, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "MAX_HEALTH", "HEALTH", "HP":
		return StatMaxHealth, true
	case "MOVEMENT_SPEED", "SPEED":
		return StatMovementSpeed, true
	case "ATTACK_DAMAGE", "DAMAGE":
		return StatAttackDamage, true
	case "ARMOR":
		return StatArmor, true
	case "LUCK":
		return StatLuck, true
	default:
		return "", false
	}
}
