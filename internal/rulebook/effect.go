package rulebook

import (
	"strconv"
	"strings"
)

// EffectKind enumerates the built-in declarative effect types
type EffectKind string

const (
	EffectHeal         EffectKind = "HEAL"
	EffectHealTarget   EffectKind = "HEAL_TARGET"
	EffectDamage       EffectKind = "DAMAGE"
	EffectDamageRandom EffectKind = "DAMAGE_RANDOM"
	EffectPotion       EffectKind = "POTION"
	EffectKnockback    EffectKind = "KNOCKBACK"
	EffectDash         EffectKind = "DASH"
	EffectCleanse      EffectKind = "CLEANSE"
)

// Effect is one declarative effect entry on a skill. It is a closed tagged
// variant: only the fields relevant to Kind are meaningful.
type Effect struct {
	Kind EffectKind

	// Heal / HealTarget / Damage
	Amount float64

	// DamageRandom
	Min int
	Max int

	// Dash / Knockback
	Strength float64

	// Potion: StatusName is already normalized to its modern name
	StatusName    string
	DurationTicks int
	Amplifier     int
	Ambient       bool
	ShowParticles bool
	ShowIcon      bool
}

// ParseEffect converts a raw config entry into a typed Effect. Unknown or
// malformed entries return false and are skipped by the caller; this
// tolerance lives only at the parsing boundary.
func ParseEffect(raw map[string]any) (Effect, bool) {
	kind := strings.ToUpper(asString(raw["type"]))

	switch kind {
	case "HEAL", "HEAL_SELF":
		return Effect{Kind: EffectHeal, Amount: asFloat(raw["amount"], 4.0)}, true

	case "HEAL_TARGET":
		return Effect{Kind: EffectHealTarget, Amount: asFloat(raw["amount"], 4.0)}, true

	case "DAMAGE":
		return Effect{Kind: EffectDamage, Amount: asFloat(raw["amount"], 4.0)}, true

	case "DAMAGE_RANDOM":
		minAmt := int(asFloat(raw["min"], 2))
		maxAmt := int(asFloat(raw["max"], 6))
		if maxAmt < minAmt {
			minAmt, maxAmt = maxAmt, minAmt
		}
		return Effect{Kind: EffectDamageRandom, Min: minAmt, Max: maxAmt}, true

	case "POTION":
		name := asString(raw["effect"])
		if name == "" {
			name = asString(raw["potion"])
		}
		if name == "" {
			name = "SPEED"
		}
		normalized, ok := NormalizeStatusName(name)
		if !ok {
			return Effect{}, false
		}
		duration := raw["durationTicks"]
		if duration == nil {
			duration = raw["duration"]
		}
		return Effect{
			Kind:          EffectPotion,
			StatusName:    normalized,
			DurationTicks: int(asFloat(duration, 60)),
			Amplifier:     int(asFloat(raw["amplifier"], 0)),
			Ambient:       asBool(raw["ambient"], false),
			ShowParticles: asBool(raw["particles"], true),
			ShowIcon:      asBool(raw["icon"], true),
		}, true

	case "KNOCKBACK":
		return Effect{Kind: EffectKnockback, Strength: asFloat(raw["strength"], 0.6)}, true

	case "DASH":
		return Effect{Kind: EffectDash, Strength: asFloat(raw["strength"], 1.0)}, true

	case "CLEANSE":
		return Effect{Kind: EffectCleanse}, true

	default:
		return Effect{}, false
	}
}

func asString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func asFloat(v any, def float64) float64 {
	switch n := v.(type) {
	case nil:
		return def
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	case float32:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
		return def
	default:
		return def
	}
}

func asBool(v any, def bool) bool {
	switch b := v.(type) {
	case nil:
		return def
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
			return parsed
		}
		return def
	default:
		return def
	}
}
