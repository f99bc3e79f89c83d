package rng

import (
	"context"
	"time"
)

var fullFeedInterval = 100 * time.Millisecond

// fullFeeder periodically absorbs all entropy that feeders have gathered
// since the last round.
func fullFeeder(ctx context.Context) error {
	ticker := time.NewTicker(fullFeedInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			feedAll()
		case <-ctx.Done():
			return nil
		}
	}
}

func feedAll() {
	rngLock.Lock()
	defer rngLock.Unlock()

	for {
		select {
		case data := <-rngFeeder:
			feederDeliveries.Inc()
			if pool != nil {
				pool.Absorb(data)
				absorbedBytes.Add(len(data))
			}
		default:
			return
		}
	}
}
