package chip8

import "math/rand/v2"

// RandomSource provides the random bytes for the RND instruction.
type RandomSource interface {
	Byte() byte
}

type pcgSource struct {
	rng *rand.Rand
}

// NewRandomSource returns a deterministic pseudo-random byte source for the
// given seed. A seed of 0 returns a source seeded from the runtime.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &pcgSource{
		rng: rand.New(rand.NewPCG(seed, seed>>32|seed<<32)),
	}
}

func (s *pcgSource) Byte() byte {
	return byte(s.rng.Uint32())
}
