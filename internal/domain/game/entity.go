package game

// Entity is anything with an identity and a position in the world
type Entity interface {
	// ID returns the entity's stable unique id
	ID() string

	// Position returns the entity's feet position
	Position() Vec3

	// Alive reports whether the entity is still valid and living
	Alive() bool
}

// LivingEntity is an entity that can be healed, damaged and moved
type LivingEntity interface {
	Entity

	// Facing returns the unit direction the entity is looking
	Facing() Vec3

	// EyePosition returns the origin for aim ray traces
	EyePosition() Vec3

	Health() float64
	MaxHealth() float64
	SetHealth(v float64)

	// Damage applies damage attributed to source (may be nil)
	Damage(amount float64, source Entity)

	Velocity() Vec3
	SetVelocity(v Vec3)
}

// Player is a connected player entity
type Player interface {
	LivingEntity

	// Name returns the player's display name
	Name() string

	// Connected reports whether the player session is still open.
	// Periodic tasks check this and self-cancel when it turns false.
	Connected() bool

	// HeldSlot returns the selected hotbar slot index (0-based)
	HeldSlot() int

	// Sprinting reports whether the player is currently sprinting
	Sprinting() bool
}
