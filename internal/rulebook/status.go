package rulebook

import (
	"strings"
)

// knownStatusEffects is the closed set of timed status effect names the
// presentation layer understands. Config entries resolving to anything else
// are dropped at load time.
var knownStatusEffects = map[string]struct{}{
	"SPEED":               {},
	"SLOWNESS":            {},
	"HASTE":               {},
	"MINING_FATIGUE":      {},
	"STRENGTH":            {},
	"INSTANT_HEALTH":      {},
	"INSTANT_DAMAGE":      {},
	"JUMP_BOOST":          {},
	"NAUSEA":              {},
	"REGENERATION":        {},
	"RESISTANCE":          {},
	"FIRE_RESISTANCE":     {},
	"WATER_BREATHING":     {},
	"INVISIBILITY":        {},
	"BLINDNESS":           {},
	"NIGHT_VISION":        {},
	"HUNGER":              {},
	"WEAKNESS":            {},
	"POISON":              {},
	"WITHER":              {},
	"HEALTH_BOOST":        {},
	"ABSORPTION":          {},
	"SATURATION":          {},
	"GLOWING":             {},
	"LEVITATION":          {},
	"LUCK":                {},
	"UNLUCK":              {},
	"SLOW_FALLING":        {},
	"CONDUIT_POWER":       {},
	"DOLPHINS_GRACE":      {},
	"BAD_OMEN":            {},
	"HERO_OF_THE_VILLAGE": {},
	"DARKNESS":            {},
}

// legacy alias -> modern status name
var legacyStatusAliases = map[string]string{
	"SLOW":              "SLOWNESS",
	"FAST_DIGGING":      "HASTE",
	"SLOW_DIGGING":      "MINING_FATIGUE",
	"INCREASE_DAMAGE":   "STRENGTH",
	"DAMAGE_RESISTANCE": "RESISTANCE",
	"JUMP":              "JUMP_BOOST",
	"CONFUSION":         "NAUSEA",
	"HEAL":              "INSTANT_HEALTH",
	"HARM":              "INSTANT_DAMAGE",
}

// NegativeStatusEffects is the closed set of statuses removed by cleanse.
var NegativeStatusEffects = []string{
	"SLOWNESS",
	"WEAKNESS",
	"POISON",
	"BLINDNESS",
	"NAUSEA",
	"WITHER",
	"HUNGER",
	"MINING_FATIGUE",
	"INSTANT_DAMAGE",
	"LEVITATION",
}

// NormalizeStatusName maps a raw config token to its modern status name.
// Legacy aliases are translated; names outside the known set return false.
func NormalizeStatusName(raw string) (string, bool) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	if name == "" {
		return "", false
	}
	if _, ok := knownStatusEffects[name]; ok {
		return name, true
	}
	if mapped, ok := legacyStatusAliases[name]; ok {
		if _, known := knownStatusEffects[mapped]; known {
			return mapped, true
		}
	}
	return "", false
}
