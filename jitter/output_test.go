package jitter

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedDrawRanges(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	p := newFastPool(t)
	samples := 10000

	for _, limit := range []int32{1, 2, 3, 7, 10, 256, 1000, math.MaxInt32} {
		for i := 0; i < samples; i++ {
			n, err := p.Int32N(limit)
			require.NoError(t, err)
			if n < 0 || n >= limit {
				t.Fatalf("Int32N(%d) returned %d", limit, n)
			}
		}
	}

	for _, limit := range []int64{1, 2, 5, 1 << 40, math.MaxInt64} {
		for i := 0; i < samples; i++ {
			n, err := p.Int64N(limit)
			require.NoError(t, err)
			if n < 0 || n >= limit {
				t.Fatalf("Int64N(%d) returned %d", limit, n)
			}
		}
	}
}

func TestInvalidLimits(t *testing.T) {
	p := newStubPool(t, 16, 16)

	for _, limit := range []int32{0, -1, math.MinInt32} {
		_, err := p.Int32N(limit)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidLimit))

		var domainErr *DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, int64(limit), domainErr.Limit)
	}

	_, err := p.Int64N(0)
	assert.ErrorIs(t, err, ErrInvalidLimit)
	_, err = p.Int64N(math.MinInt64)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestAbs64(t *testing.T) {
	assert.Equal(t, uint64(0), abs64(0))
	assert.Equal(t, uint64(5), abs64(-5))
	assert.Equal(t, uint64(math.MaxInt64), abs64(math.MaxInt64))
	assert.Equal(t, uint64(1)<<63, abs64(math.MinInt64))
}

func TestUnitEdges(t *testing.T) {
	for _, v := range []int64{math.MaxInt64, math.MinInt64, math.MinInt64 + 1, math.MaxInt64 - 1} {
		f := toUnit(v)
		assert.True(t, f >= 0 && f < 1, "toUnit(%d) = %v", v, f)
	}

	zero := toUnit(0)
	assert.Equal(t, 0.0, zero)
	assert.False(t, math.Signbit(zero), "zero must not be negative")

	assert.InDelta(t, 0.5, toUnit(math.MaxInt64/2), 1e-12)
	assert.InDelta(t, 0.5, toUnit(math.MinInt64/2), 1e-12)
}

func TestFloat64(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	p := newFastPool(t)
	samples := 100000

	var sum float64
	for i := 0; i < samples; i++ {
		f := p.Float64()
		if f < 0 || f >= 1 || math.Signbit(f) {
			t.Fatalf("Float64 returned %v", f)
		}
		sum += f
	}

	mean := sum / float64(samples)
	assert.InDelta(t, 0.5, mean, 0.005, "mean of %d samples", samples)
}

func TestFloat32(t *testing.T) {
	p := newFastPool(t)
	for i := 0; i < 1000; i++ {
		f := p.Float32()
		if f < 0 || f >= 1 {
			t.Fatalf("Float32 returned %v", f)
		}
	}
}

func TestBool(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	p := newFastPool(t)
	samples := 100000

	var trues int
	for i := 0; i < samples; i++ {
		if p.Bool() {
			trues++
		}
	}

	ratio := float64(trues) / float64(samples)
	assert.InDelta(t, 0.5, ratio, 0.01, "%d of %d were true", trues, samples)
}

func TestRead(t *testing.T) {
	p := newFastPool(t)

	b := make([]byte, 4096)
	n, err := p.Read(b)
	require.NoError(t, err)
	assert.Equal(t, len(b), n)

	var counts [256]int
	for _, v := range b {
		counts[v]++
	}
	var seen int
	for _, c := range counts {
		if c > 0 {
			seen++
		}
	}
	// with 4096 bytes every value is expected about 16 times
	assert.Greater(t, seen, 240)

	n, err = p.Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestInt32IsTruncation(t *testing.T) {
	a := newStubPool(t, 16, 16)
	b := newStubPool(t, 16, 16)

	for i := 0; i < 5; i++ {
		assert.Equal(t, int32(a.Int64()), b.Int32())
	}
}

func TestSource64(t *testing.T) {
	p := newFastPool(t)

	var src rand.Source64 = p
	for i := 0; i < 100; i++ {
		assert.GreaterOrEqual(t, src.Int63(), int64(0))
	}

	r := rand.New(p)
	for i := 0; i < 100; i++ {
		n := r.Intn(10)
		assert.True(t, n >= 0 && n < 10)
	}
}

func TestSeedAbsorbs(t *testing.T) {
	a := newStubPool(t, 16, 16)
	b := newStubPool(t, 16, 16)

	b.Seed(1)
	assert.NotEqual(t, a.words, b.words)
}
