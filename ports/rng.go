package ports

import (
	"math/rand/v2"
)

// RNGPort provides seeded random sources so generated data is reproducible.
// Implementations must return identical streams for identical seeds.
type RNGPort interface {
	// Source creates a deterministic random source for seed
	Source(seed uint64) rand.Source
}
