package rulebook

import (
	"strings"
)

// Trigger is the input combination that fires a skill. The string values
// match the tokens used in skill definition files.
type Trigger string

const (
	// TriggerPrimaryKey is the primary hotbar action key (item-swap key)
	TriggerPrimaryKey Trigger = "Z"

	TriggerRightClick       Trigger = "RIGHT_CLICK"
	TriggerSprintRightClick Trigger = "CTRL_RIGHT_CLICK"
	TriggerLeftClick        Trigger = "LEFT_CLICK"
	TriggerSneak            Trigger = "SNEAK"
)

// ParseTrigger maps a config token to a Trigger, false if unrecognized
func ParseTrigger(raw string) (Trigger, bool) {
	switch Trigger(strings.ToUpper(strings.TrimSpace(raw))) {
	case TriggerPrimaryKey:
		return TriggerPrimaryKey, true
	case TriggerRightClick:
		return TriggerRightClick, true
	case TriggerSprintRightClick:
		return TriggerSprintRightClick, true
	case TriggerLeftClick:
		return TriggerLeftClick, true
	case TriggerSneak:
		return TriggerSneak, true
	default:
		return "", false
	}
}

// ResourceType selects which pool a skill cost is drawn from
type ResourceType string

const (
	ResourceNone      ResourceType = "none"
	ResourcePrimary   ResourceType = "primary"
	ResourceSecondary ResourceType = "secondary"
)

// ParseResourceType accepts both the pool names and the legacy mana/stamina
// tokens older definition files use.
func ParseResourceType(raw string) ResourceType {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "PRIMARY", "MANA":
		return ResourcePrimary
	case "SECONDARY", "STAMINA":
		return ResourceSecondary
	default:
		return ResourceNone
	}
}

// ResourceCost is the price of one cast
type ResourceCost struct {
	Type   ResourceType
	Amount float64
}

// NoCost is the zero resource cost
func NoCost() ResourceCost {
	return ResourceCost{Type: ResourceNone}
}

// TargetType selects how a cast resolves its targets
type TargetType string

const (
	TargetSelf TargetType = "self"
	TargetRay  TargetType = "ray"
	TargetCone TargetType = "cone"
	TargetArea TargetType = "area"
)

// ParseTargetType maps a config token to a TargetType, defaulting to self
func ParseTargetType(raw string) TargetType {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "RAY":
		return TargetRay
	case "CONE":
		return TargetCone
	case "AREA":
		return TargetArea
	default:
		return TargetSelf
	}
}

// Target is a skill's target specification
type Target struct {
	Type  TargetType
	Range float64
}

// Visuals is the optional legacy fallback particle hint for skills
// without a cinematic timeline.
type Visuals struct {
	Particle string
}

// BuiltinHandlerID is the reserved handler id routing a skill to the
// built-in effect executor. An empty handler id means the same thing.
const BuiltinHandlerID = "effects"

// SkillDef is an immutable skill definition
type SkillDef struct {
	ID            string
	Name          string
	Icon          string
	Trigger       Trigger
	CooldownTicks int
	GCDTicks      int
	Cost          ResourceCost
	Target        Target
	RequiredLevel int
	HandlerID     string
	// Data is free-form auxiliary data; cinematics reads Data["timeline"]
	Data    map[string]any
	Effects []Effect
	Visuals Visuals
}

// UsesBuiltinExecutor reports whether the skill routes to the built-in
// effect executor rather than an external handler.
func (s *SkillDef) UsesBuiltinExecutor() bool {
	h := strings.TrimSpace(s.HandlerID)
	return h == "" || strings.EqualFold(h, BuiltinHandlerID)
}

// HasTimeline reports whether the skill carries cinematic timeline data
func (s *SkillDef) HasTimeline() bool {
	if s.Data == nil {
		return false
	}
	steps, ok := s.Data["timeline"].([]any)
	return ok && len(steps) > 0
}
