package rng

import (
	"io"
	"math"
)

// Reader provides a global instance to read from the RNG.
var Reader io.Reader = reader{}

// reader provides an io.Reader interface.
type reader struct{}

// Read implements the io.Reader interface.
func (r reader) Read(b []byte) (n int, err error) {
	return Read(b)
}

// Read reads random bytes into the supplied byte slice.
func Read(b []byte) (n int, err error) {
	rngLock.Lock()
	defer rngLock.Unlock()

	if !rngReady.IsSet() {
		return 0, ErrNotReady
	}

	n, err = pool.Read(b)
	served(n)
	return n, err
}

// Bytes allocates a new byte slice of given length and fills it with random data.
func Bytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Uint64 returns a random 64 bit number.
func Uint64() (uint64, error) {
	rngLock.Lock()
	defer rngLock.Unlock()

	if !rngReady.IsSet() {
		return 0, ErrNotReady
	}

	served(8)
	return pool.Uint64(), nil
}

// Number returns a random number from 0 to (incl.) max.
func Number(max uint64) (uint64, error) {
	if max == math.MaxUint64 {
		return Uint64()
	}

	bound := max + 1
	secureLimit := math.MaxUint64 - (math.MaxUint64 % bound)
	for {
		candidate, err := Uint64()
		if err != nil {
			return 0, err
		}
		if candidate < secureLimit {
			return candidate % bound, nil
		}
	}
}

// Int64N returns a random number in [0, limit). A limit of zero or less
// returns an error wrapping jitter.ErrInvalidLimit.
func Int64N(limit int64) (int64, error) {
	rngLock.Lock()
	defer rngLock.Unlock()

	if !rngReady.IsSet() {
		return 0, ErrNotReady
	}

	served(8)
	return pool.Int64N(limit)
}

// Float64 returns a random number in [0, 1).
func Float64() (float64, error) {
	rngLock.Lock()
	defer rngLock.Unlock()

	if !rngReady.IsSet() {
		return 0, ErrNotReady
	}

	served(8)
	return pool.Float64(), nil
}

// Bool returns a random boolean.
func Bool() (bool, error) {
	rngLock.Lock()
	defer rngLock.Unlock()

	if !rngReady.IsSet() {
		return false, ErrNotReady
	}

	served(1)
	return pool.Bool(), nil
}

// Entropize re-mixes the pool with a new jitter measurement.
func Entropize() error {
	rngLock.Lock()
	defer rngLock.Unlock()

	if !rngReady.IsSet() {
		return ErrNotReady
	}

	pool.Entropize()
	return nil
}

// SupplyEntropy absorbs the given data into the pool immediately.
func SupplyEntropy(data []byte) error {
	rngLock.Lock()
	defer rngLock.Unlock()

	if !rngReady.IsSet() {
		return ErrNotReady
	}

	pool.Absorb(data)
	absorbedBytes.Add(len(data))
	return nil
}
