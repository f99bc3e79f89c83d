package rng

import (
	"bufio"
	"context"
	"crypto/rand"
	"fmt"
	"io"
)

// osFeeder supplies entropy from the operating system.
func osFeeder(ctx context.Context) error {
	feeder := newFeeder(ctx, rngFeeder)
	defer feeder.CloseFeeder()

	osSource := bufio.NewReader(rand.Reader)
	for {
		// get feed entropy
		minEntropyBytes := int(minFeedEntropy())/8 + 1
		if minEntropyBytes < 32 {
			minEntropyBytes = 64
		}

		// get entropy
		osEntropy := make([]byte, minEntropyBytes)
		if _, err := io.ReadFull(osSource, osEntropy); err != nil {
			return fmt.Errorf("could not read entropy from os: %w", err)
		}

		// feed
		feeder.SupplyEntropy(osEntropy, minEntropyBytes*8)

		if ctx.Err() != nil {
			return nil
		}
	}
}
