package rng

import (
	"context"
	"time"
)

func getTickDuration() time.Duration {
	return time.Duration(tickFeederInterval()) * time.Millisecond
}

// tickFeeder is a really simple entropy feeder that adds the least significant bit of the current nanosecond unixtime to its pool every time it 'ticks'.
// The more work the program does, the better the quality, as the internal scheduler cannot immediately run the goroutine when it's ready.
func tickFeeder(ctx context.Context) error {
	var value int64
	var pushes int
	feeder := newFeeder(ctx, rngFeeder)
	defer feeder.CloseFeeder()

	for {
		select {
		case <-time.After(getTickDuration()):

			value = (value << 1) | (time.Now().UnixNano() % 2)

			pushes++
			if pushes >= 64 {
				// one tick is worth about 1/8 bit
				feeder.SupplyEntropyAsInt(value, 8)
				pushes = 0
			}

		case <-ctx.Done():
			return nil
		}
	}
}
