// Package events defines the toolkit event names this module publishes and a
// core.Entity adapter for referencing players on the bus.
package events

import (
	rpgcore "github.com/KirkDiggler/rpg-toolkit/core"
)

// Event names published on the rpg-toolkit bus. Extensions subscribe to
// these with Bus.SubscribeFunc.
const (
	EventSkillCast      = "rpgcore.skill.cast"
	EventBranchUnlocked = "rpgcore.talent.branch_unlocked"
	EventLevelChanged   = "rpgcore.player.level_changed"
	EventRespec         = "rpgcore.player.respec"
)

// Context keys set on published events
const (
	KeySkillID  = "skill_id"
	KeyCastID   = "cast_id"
	KeyBranchID = "branch_id"
	KeyLevel    = "level"
	KeyTargetID = "target_id"
)

// entityRef is a lightweight core.Entity naming a player on the bus
type entityRef struct {
	id         string
	entityType string
}

func (e entityRef) GetID() string   { return e.id }
func (e entityRef) GetType() string { return e.entityType }

// PlayerRef wraps a player id as a core.Entity for event publication
func PlayerRef(playerID string) rpgcore.Entity {
	return entityRef{id: playerID, entityType: "player"}
}

// EntityRef wraps an arbitrary entity id as a core.Entity
func EntityRef(id string) rpgcore.Entity {
	return entityRef{id: id, entityType: "entity"}
}
