//go:build !linux

package jitter

func newMonotonicClock() (Clock, error) {
	return runtimeClock, nil
}
