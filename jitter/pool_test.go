package jitter

import (
	"math/bits"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoldenDraw(t *testing.T) {
	p := newStubPool(t, 0, 0)

	assert.Equal(t, [4]uint64{
		0x45c7d698939b6a91,
		0xe5f6a021d2143c53,
		0x2357c735c27f73a4,
		0xc8339266a61ecd41,
	}, p.words, "seeded words")
	assert.Equal(t, uint64(0xda92678dd2812f23), p.mixin, "seeded mixin")
	assert.Equal(t, int64(1000137), p.start)

	assert.Equal(t, int64(4686984939682658948), p.Int64())

	assert.Equal(t, [4]uint64{
		0x140503a08a64b494,
		0xd4553555b8245d6a,
		0x9ed2d9a077e8f8fd,
		0x3f9816474ea95d6a,
	}, p.words, "words after draw")
	assert.Equal(t, uint64(0x7152b4af4ea95d6a), p.mixin, "mixin after draw")
}

func TestDeterministicDraws(t *testing.T) {
	a := newStubPool(t, 16, 16)
	b := newStubPool(t, 16, 16)

	expected := []uint64{0x18aa2d43aa3fa68b, 0x82cabc72d1159e58, 0x3928346a1b9f4cc6}
	for i, want := range expected {
		assert.Equal(t, want, a.Uint64(), "draw %d", i)
		assert.Equal(t, want, b.Uint64(), "draw %d", i)
	}
	assert.Equal(t, a.words, b.words)
	assert.Equal(t, a.mixin, b.mixin)
}

func TestSeedingMovesAwayFromConstants(t *testing.T) {
	p := newFastPool(t)

	for k, w := range p.words {
		assert.NotEqual(t, initialWords[k], w, "word %d was not seeded", k)
	}
	assert.NotEqual(t, initialMixin, p.mixin)
}

func TestJitterHook(t *testing.T) {
	var durations []time.Duration
	p, err := NewWithOptions(Options{
		CyclesMin:    16,
		CyclesSpread: 16,
		Clock:        &stepClock{now: 0, steps: []int64{10, 20}},
		Ambient:      NewMixer(1),
		Memory:       fixedMemory(1),
		JitterHook: func(d time.Duration) {
			durations = append(durations, d)
		},
	})
	require.NoError(t, err)

	// one warm up plus four rounds of four samples
	require.Len(t, durations, 17)
	for _, d := range durations {
		assert.Equal(t, 10*time.Nanosecond, d)
	}

	p.Uint64()
	assert.Len(t, durations, 18, "every draw measures jitter once")
}

func TestRealClockJitter(t *testing.T) {
	p := newFastPool(t)

	var distinct = make(map[uint64]struct{})
	for i := 0; i < 100; i++ {
		distinct[p.waste()] = struct{}{}
	}
	assert.Greater(t, len(distinct), 1, "busy work durations should vary")
}

func TestEntropizeChangesAllWords(t *testing.T) {
	p := newStubPool(t, 16, 16)
	before := p.words

	p.entropize()
	for k := range p.words {
		assert.NotEqual(t, before[k], p.words[k], "word %d", k)
	}
}

func TestEntropize(t *testing.T) {
	a := newStubPool(t, 16, 16)
	b := newStubPool(t, 16, 16)

	b.Entropize()
	assert.NotEqual(t, a.words, b.words)
	assert.NotEqual(t, a.Uint64(), b.Uint64())
}

func TestDrawRotatesSlots(t *testing.T) {
	// identical pools that differ in one word only must diverge in the
	// neighbouring slot after the rotation
	a := newStubPool(t, 16, 16)
	b := newStubPool(t, 16, 16)
	b.words[1] ^= 1 << 17

	a.Uint64()
	b.Uint64()
	assert.NotEqual(t, a.words[0], b.words[0])
}

func TestAbsorbEmpty(t *testing.T) {
	a := newStubPool(t, 16, 16)
	b := newStubPool(t, 16, 16)

	b.Absorb(nil)
	b.Absorb([]byte{})
	assert.Equal(t, a.words, b.words)

	for i := 0; i < 3; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestAbsorbUsesEveryByte(t *testing.T) {
	data := make([]byte, 67)
	for i := range data {
		data[i] = byte(i * 7)
	}

	ref := newStubPool(t, 16, 16)
	ref.Absorb(data)

	// changing any single byte, including bytes far past len%8, must change
	// the pool
	for _, pos := range []int{0, 3, 8, 31, 63, 64, 66} {
		changed := append([]byte(nil), data...)
		changed[pos] ^= 0x01

		p := newStubPool(t, 16, 16)
		p.Absorb(changed)
		assert.NotEqual(t, ref.words, p.words, "byte %d was not absorbed", pos)
	}
}

func TestAbsorbZeroBytes(t *testing.T) {
	for _, data := range [][]byte{
		{0},
		{0, 0, 0},
		{1, 2, 3, 4, 5, 6, 7, 8, 0, 0},
	} {
		full := newStubPool(t, 16, 16)
		full.Absorb(data)

		short := newStubPool(t, 16, 16)
		short.Absorb(data[:len(data)-1])

		assert.NotEqual(t, full.words, short.words, "trailing zero of %v was not absorbed", data)
	}
}

func TestAbsorbAvalanche(t *testing.T) {
	data := make([]byte, 19)
	for i := range data {
		data[i] = byte(i + 1)
	}

	ref := newStubPool(t, 16, 16)
	ref.Absorb(data)
	want := ref.Uint64()

	for pos := range data {
		for bit := 0; bit < 8; bit++ {
			changed := append([]byte(nil), data...)
			changed[pos] ^= 1 << bit

			p := newStubPool(t, 16, 16)
			p.Absorb(changed)
			diff := bits.OnesCount64(want ^ p.Uint64())
			if diff < 16 {
				t.Errorf("flipping bit %d of byte %d changed only %d output bits", bit, pos, diff)
			}
		}
	}
}

func TestDefaultPool(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	p, err := New()
	require.NoError(t, err)

	a := p.Uint64()
	b := p.Uint64()
	assert.NotEqual(t, a, b)
}
