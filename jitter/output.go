package jitter

import (
	"encoding/binary"
	"math"
)

// Uint64 returns a pseudorandom 64 bit value.
func (p *Pool) Uint64() uint64 {
	return p.draw()
}

// Int64 returns a pseudorandom int64 over the full range.
func (p *Pool) Int64() int64 {
	return int64(p.draw())
}

// Int32 returns a pseudorandom int32 over the full range. It is the lower
// half of Int64.
func (p *Pool) Int32() int32 {
	return int32(p.Int64())
}

// Int64N returns a pseudorandom int64 in [0, limit).
func (p *Pool) Int64N(limit int64) (int64, error) {
	if limit <= 0 {
		return 0, &DomainError{Limit: limit}
	}
	return int64(abs64(p.Int64()) % uint64(limit)), nil
}

// Int32N returns a pseudorandom int32 in [0, limit).
func (p *Pool) Int32N(limit int32) (int32, error) {
	if limit <= 0 {
		return 0, &DomainError{Limit: int64(limit)}
	}
	return p.int32n(limit), nil
}

func (p *Pool) int32n(limit int32) int32 {
	return int32(abs64(int64(p.Int32())) % uint64(limit))
}

// abs64 returns |v| computed in unsigned arithmetic, so MinInt64 maps to
// 1<<63 instead of staying negative.
func abs64(v int64) uint64 {
	u := uint64(v)
	if v < 0 {
		u = -u
	}
	return u
}

// Bool returns a pseudorandom boolean.
func (p *Pool) Bool() bool {
	return p.int32n(2) == 1
}

// Read fills b with pseudorandom bytes. Every byte is taken from its own
// draw. It implements io.Reader and never fails.
func (p *Pool) Read(b []byte) (n int, err error) {
	for i := range b {
		b[i] = byte(p.int32n(256))
	}
	return len(b), nil
}

// Float64 returns a pseudorandom float64 in [0, 1).
func (p *Pool) Float64() float64 {
	return toUnit(p.Int64())
}

// toUnit scales v to [0, 1) as |v| / MaxInt64. float64(MaxInt64) rounds up
// to 2^63, so MaxInt64 and MinInt64 would both produce exactly 1.
func toUnit(v int64) float64 {
	f := float64(v) / float64(math.MaxInt64)
	if f < 0 {
		f = -f
	}
	if f >= 1 {
		return math.Nextafter(1, 0)
	}
	return f
}

// Float32 returns a pseudorandom float32 in [0, 1).
func (p *Pool) Float32() float32 {
	f := float32(p.Float64())
	if f >= 1 {
		// rounding of values just below one
		return math.Nextafter32(1, 0)
	}
	return f
}

// Int63 returns a non-negative pseudorandom int64. With Uint64 and Seed it
// implements math/rand.Source64.
func (p *Pool) Int63() int64 {
	return int64(p.draw() & math.MaxInt64)
}

// Seed absorbs seed into the pool. Unlike other sources it never resets the
// pool to a reproducible state.
func (p *Pool) Seed(seed int64) {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(seed))
	p.Absorb(b)
}
