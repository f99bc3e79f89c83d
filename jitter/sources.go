package jitter

// Clock is a monotonic high resolution clock.
type Clock interface {
	// Now returns monotonic nanoseconds since an arbitrary, fixed point.
	Now() int64
}

// Ambient is a source of randomness that is independent of the pool. It is
// consulted while seeding and re-mixing, but never used as the sole output
// path.
type Ambient interface {
	Uint64() uint64
}

// MemoryProbe reports an approximate amount of free memory of the host.
type MemoryProbe interface {
	Free() uint64
}
