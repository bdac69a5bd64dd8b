package bandit

import (
	"math/rand/v2"
	"sync"
)

// Source hands each selection call its own generator, so concurrent
// requests never share mutable RNG state.
type Source interface {
	New() *rand.Rand
}

type randomSource struct{}

// NewSource returns a Source whose generators are seeded from the runtime's
// goroutine-safe global generator.
func NewSource() Source {
	return randomSource{}
}

func (randomSource) New() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

type seededSource struct {
	mu     sync.Mutex
	seed   uint64
	stream uint64
}

// NewSeededSource returns a deterministic Source. The n-th generator it
// hands out is the same for a given seed across runs.
func NewSeededSource(seed uint64) Source {
	return &seededSource{seed: seed}
}

func (s *seededSource) New() *rand.Rand {
	s.mu.Lock()
	stream := s.stream
	s.stream++
	s.mu.Unlock()
	return rand.New(rand.NewPCG(s.seed, stream))
}
