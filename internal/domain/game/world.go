package game

// World exposes the entity queries the casting pipeline needs from the host
type World interface {
	// Player returns a connected player by id, nil if not connected
	Player(id string) Player

	// Players returns all connected players
	Players() []Player

	// RayTraceLiving returns the first living entity intersected along dir
	// from origin within maxDist, excluding exclude. Nil if nothing is hit.
	RayTraceLiving(origin, dir Vec3, maxDist float64, exclude Entity) LivingEntity

	// NearbyLiving returns living entities within a cubic neighborhood of
	// half-extent radius around center.
	NearbyLiving(center Vec3, radius float64) []LivingEntity
}
