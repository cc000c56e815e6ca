package core

import (
	"math/rand"
	"time"
)

// Rand is the source of randomness for relocation and particle spawning.
// *rand.Rand satisfies it.
type Rand interface {
	// Float64 returns a number in [0.0, 1.0).
	Float64() float64
}

// NewRand returns a seeded source. A zero seed uses the current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Sequence is a scripted Rand that replays fixed values in order and then
// wraps around. An empty sequence always returns 0.
type Sequence struct {
	values []float64
	pos    int
}

// NewSequence creates a scripted source.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 returns the next scripted value.
func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}

// Calls returns how many values have been drawn.
func (s *Sequence) Calls() int {
	return s.pos
}
