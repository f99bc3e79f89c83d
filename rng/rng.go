// Package rng runs the process-wide generator: a single jitter pool behind
// a mutex, continuously fed with entropy from the OS and from scheduling
// ticks.
package rng

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tevino/abool"

	"github.com/safing/jitterpool/jitter"
	"github.com/safing/jitterpool/log"
	"github.com/safing/jitterpool/modules"
)

var (
	module *modules.Module

	pool     *jitter.Pool
	rngLock  sync.Mutex
	rngReady = abool.NewBool(false)

	// ErrNotReady is returned when the generator is used before the module
	// was started or after it was stopped.
	ErrNotReady = errors.New("rng is not ready yet")
)

func init() {
	module = modules.Register("random", prep, start, stop, "config", "metrics")
}

func prep() error {
	return registerConfig()
}

func start() error {
	if err := registerMetrics(); err != nil {
		return err
	}

	ambient, err := jitter.NewAmbient(ambientCipher(), ambientReseedAfterBytes())
	if err != nil {
		return fmt.Errorf("failed to create ambient source: %w", err)
	}

	started := time.Now()
	newPool, err := jitter.NewWithOptions(jitter.Options{
		CyclesMin:    int(jitterCyclesMin()),
		CyclesSpread: int(jitterCyclesSpread()),
		Ambient:      ambient,
		Memory:       jitter.NewHostMemory(time.Duration(memoryProbeTTL()) * time.Millisecond),
		JitterHook:   jitterDurations.ObserveDuration,
	})
	if err != nil {
		return err
	}

	rngLock.Lock()
	pool = newPool
	rngReady.Set()
	rngLock.Unlock()

	// random source: OS
	module.StartServiceWorker("os feeder", 0, osFeeder)

	// random source: goroutine ticks
	module.StartServiceWorker("tick feeder", 0, tickFeeder)

	// absorb gathered entropy
	module.StartServiceWorker("full feeder", 0, fullFeeder)

	log.Debugf("rng: pool seeded in %s", time.Since(started))
	return nil
}

func stop() error {
	rngLock.Lock()
	defer rngLock.Unlock()

	rngReady.UnSet()
	pool = nil
	return nil
}
