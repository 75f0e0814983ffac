// Package prng is a linear congruential generator for food placement. It
// is not suitable for anything that needs real randomness.
package prng

import "snakeos/kernel"

const (
	multiplier = 1664525
	increment  = 1013904223
	modulus    = 1 << 32
)

// PseudoRandomNumberGenerator yields seed = (1664525*seed + 1013904223) mod 2^32.
type PseudoRandomNumberGenerator struct {
	seed uint64
}

func New(seed uint64) *PseudoRandomNumberGenerator {
	return &PseudoRandomNumberGenerator{seed: seed}
}

// Next advances the generator and returns the new seed.
func (p *PseudoRandomNumberGenerator) Next() uint64 {
	p.seed = (multiplier*p.seed + increment) % modulus
	return p.seed
}

// Source is a generator shared between interrupt handlers. It is seeded
// from seed on first use.
type Source struct {
	lock kernel.SpinLock
	seed func() uint64
	rng  *PseudoRandomNumberGenerator
}

// NewSource returns a source that calls seed once, on the first Next.
func NewSource(seed func() uint64) *Source {
	return &Source{seed: seed}
}

func (s *Source) Next() uint64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.rng == nil {
		s.rng = New(s.seed())
	}
	return s.rng.Next()
}
