package jitter

import (
	"math/bits"
)

const (
	// mixerIncrement is the SplitMix64 stream increment (golden ratio).
	mixerIncrement uint64 = 0x9e3779b97f4a7c15
)

// Mix is the SplitMix64 finalizer. It stretches any 64 bit value, for example
// a measured duration or a single byte, into a full width mixing word.
func Mix(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// BoundedInt maps seed to an integer in [0, bound). It returns 0 for a
// bound of zero or less.
func BoundedInt(seed uint64, bound int) int {
	if bound <= 0 {
		return 0
	}
	hi, _ := bits.Mul64(Mix(seed), uint64(bound))
	return int(hi)
}

// Mixer is a small SplitMix64 stream. It is used wherever a short sequence
// of mixing words must be derived from a single seed, such as a measured
// duration. It is not safe for concurrent use.
type Mixer struct {
	state uint64
}

// NewMixer returns a Mixer seeded with seed.
func NewMixer(seed uint64) *Mixer {
	return &Mixer{state: seed}
}

// Seed resets the stream to seed.
func (m *Mixer) Seed(seed uint64) {
	m.state = seed
}

// Uint64 returns the next word of the stream.
func (m *Mixer) Uint64() uint64 {
	m.state += mixerIncrement
	return Mix(m.state)
}

// Intn returns the next word of the stream reduced to [0, bound).
func (m *Mixer) Intn(bound int) int {
	if bound <= 0 {
		return 0
	}
	hi, _ := bits.Mul64(m.Uint64(), uint64(bound))
	return int(hi)
}
