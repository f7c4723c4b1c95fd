package dataset

import (
	"math/rand"
)

// Sampler draws sample indices for one training run. A Sampler owns its
// random source and must not be shared between runs.
type Sampler struct {
	n   int
	rng *rand.Rand
}

// NewSampler returns a sampler over n samples driven by rng.
func NewSampler(n int, rng *rand.Rand) *Sampler {
	return &Sampler{n: n, rng: rng}
}

// Pick draws one index uniformly, with replacement.
func (s *Sampler) Pick() int {
	return s.rng.Intn(s.n)
}

// Epoch returns a uniform random permutation of all indices.
func (s *Sampler) Epoch() []int {
	order := make([]int, s.n)
	for i := range order {
		order[i] = i
	}
	s.rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}
