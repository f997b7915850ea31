package game

import (
	"github.com/emberforge/rpgcore/internal/rulebook"
)

// ModifierOp selects how a modifier combines with an attribute's base value
type ModifierOp string

const (
	// OpAdd adds a flat amount
	OpAdd ModifierOp = "add"

	// OpAddScalar adds amount x base to the result (summed with other
	// scalar modifiers, not compounded)
	OpAddScalar ModifierOp = "add_scalar"
)

// AttributeModifier is a tagged modifier record. The (Stat, SourceTag) pair
// identifies a modifier slot: reapplying with the same pair replaces the
// previous value instead of stacking.
type AttributeModifier struct {
	Stat      rulebook.StatKey
	SourceTag string
	Amount    float64
	Op        ModifierOp
}

// AttributeSink is where derived-stat modifiers land. An adapter translates
// these records into whatever the hosting presentation system requires.
// Modifiers are keyed by player id so admin paths can adjust players who are
// not currently connected.
type AttributeSink interface {
	// ApplyModifier sets the modifier slot (mod.Stat, mod.SourceTag) to mod,
	// replacing any previous modifier with the same pair.
	ApplyModifier(playerID string, mod AttributeModifier)

	// RemoveModifier clears the modifier slot (stat, sourceTag); unknown
	// slots are a no-op.
	RemoveModifier(playerID string, stat rulebook.StatKey, sourceTag string)

	// AttributeValue returns the final attribute value with all modifiers
	// applied.
	AttributeValue(playerID string, stat rulebook.StatKey) float64
}

// ScaleCapability is an optional extension of AttributeSink for hosts whose
// entity system supports uniform model scaling. Callers type-assert and fall
// back to a no-op when absent.
type ScaleCapability interface {
	SetScale(playerID string, scale float64)
}
