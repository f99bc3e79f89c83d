package jitter

import (
	"time"
)

// feedbackModulus controls how often the second busy loop reseeds its
// mixer from its own scratch state.
const feedbackModulus = 100

// waste performs a deliberately useless computation of unpredictable length
// and returns how long it took, in nanoseconds. The scratch state is folded
// into the mixin word.
//
// The duration depends on scheduling, cache and frequency effects as well as
// on data dependent branching in the second loop.
func (p *Pool) waste() uint64 {
	start := p.clock.Now()

	first := p.cyclesMin + BoundedInt(p.fresh(), p.cyclesSpread)
	s1 := p.fresh()
	s2 := p.fresh()
	cycle := NewMixer(p.fresh())

	for i := 0; i < first; i++ {
		s1 ^= s2&cycle.Uint64() | cycle.Uint64()
		s2 ^= cycle.Uint64() ^ cycle.Uint64()
	}

	second := p.cyclesMin + BoundedInt(p.fresh(), p.cyclesSpread)
	cycle = NewMixer(p.fresh())

	for i := 0; i < second; i++ {
		s2 ^= cycle.Uint64()
		s1 ^= cycle.Uint64() | cycle.Uint64()

		if s2%feedbackModulus == 0 {
			cycle.Seed(p.fresh() ^ s1)
		}
	}

	p.mixin ^= s1 ^ s2

	d := uint64(p.clock.Now() - start)
	if p.jitterHook != nil {
		p.jitterHook(time.Duration(d))
	}
	return d
}
