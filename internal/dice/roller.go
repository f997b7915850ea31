package dice

// Roller provides an interface for random rolls
// This allows us to inject deterministic implementations for testing
type Roller interface {
	// RollRange returns a uniformly distributed integer in [min, max].
	// Inverted bounds are swapped before sampling.
	RollRange(min, max int) int
}
