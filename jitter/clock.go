package jitter

import (
	"time"
)

// monoClock uses the monotonic reading embedded in time.Time.
type monoClock struct {
	base time.Time
}

var runtimeClock = monoClock{base: time.Now()}

func (c monoClock) Now() int64 {
	return int64(time.Since(c.base))
}
