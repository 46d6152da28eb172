package neat

import "math/rand"

// newTestRand returns a seeded source so tests are deterministic.
func newTestRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
