package arcade

import (
	"math/rand"
	"time"
)

// Rand is the randomness the engine consumes: serve angles and AI jitter.
// *math/rand.Rand satisfies it; tests supply a seeded source to make serves
// reproducible.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns the production randomness source, seeded from the wall
// clock.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
