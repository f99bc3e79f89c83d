//go:build linux

package jitter

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// rawClock reads CLOCK_MONOTONIC_RAW, which is not slewed by NTP.
type rawClock struct{}

func newMonotonicClock() (Clock, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC_RAW, &ts); err != nil {
		return nil, fmt.Errorf("monotonic raw clock unavailable: %w", err)
	}
	return rawClock{}, nil
}

func (rawClock) Now() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC_RAW, &ts); err != nil {
		// Availability was checked when the clock was created.
		return runtimeClock.Now()
	}
	return ts.Nano()
}
