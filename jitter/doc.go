// Package jitter provides a self-mixing pseudorandom number generator that
// is seeded, and continuously refreshed, from execution timing jitter.
//
// Every Pool measures the duration of deliberately wasteful computations.
// These durations depend on scheduling, caches and the load of the host and
// cannot be reproduced by someone who only knows the algorithm and the
// approximate start time. After every draw the pool is re-mixed with a new
// measurement, diffused and rotated.
//
// All top-level changes to the pool are XOR, shift or rotation, as these do
// not favor zeroes or ones and will not decay the pool over time.
//
// This is NOT a cryptographically secure generator. Use crypto/rand where
// that is needed.
package jitter
