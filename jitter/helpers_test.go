package jitter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// stepClock advances by the given steps, one per reading.
type stepClock struct {
	now   int64
	steps []int64
	i     int
}

func (c *stepClock) Now() int64 {
	c.now += c.steps[c.i%len(c.steps)]
	c.i++
	return c.now
}

type fixedMemory uint64

func (m fixedMemory) Free() uint64 {
	return uint64(m)
}

// newStubPool returns a pool with fully deterministic collaborators.
func newStubPool(t *testing.T, cyclesMin, cyclesSpread int) *Pool {
	t.Helper()

	p, err := NewWithOptions(Options{
		CyclesMin:    cyclesMin,
		CyclesSpread: cyclesSpread,
		Clock:        &stepClock{now: 1000000, steps: []int64{137, 211, 1009, 53, 420}},
		Ambient:      NewMixer(0x5eed),
		Memory:       fixedMemory(0x3b9aca00),
	})
	require.NoError(t, err)
	return p
}

// newFastPool returns a pool with real collaborators but short busy work.
func newFastPool(t *testing.T) *Pool {
	t.Helper()

	p, err := NewWithOptions(Options{
		CyclesMin:    16,
		CyclesSpread: 16,
	})
	require.NoError(t, err)
	return p
}
