package rng

// Generator is the source of randomness for shuffles and dice rolls.
// Games take a Generator so tests can substitute a seeded one.
type Generator interface {
	// Intn returns a random number in [0, n)
	Intn(n int) int
}
