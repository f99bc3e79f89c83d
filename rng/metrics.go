package rng

import (
	"sync"

	"github.com/safing/jitterpool/config"
	"github.com/safing/jitterpool/metrics"
)

var (
	draws             *metrics.Counter
	bytesServed       *metrics.Counter
	absorbedBytes     *metrics.Counter
	feederDeliveries  *metrics.Counter
	jitterDurations   *metrics.Histogram
	metricsRegistered bool
	registerMetricsMu sync.Mutex
)

func registerMetrics() (err error) {
	registerMetricsMu.Lock()
	defer registerMetricsMu.Unlock()

	// Only register once.
	if metricsRegistered {
		return nil
	}

	draws, err = metrics.NewCounter("jitterpool_draws_total", nil, &metrics.Options{
		Name: "Generator Output Calls",
	})
	if err != nil {
		return err
	}

	bytesServed, err = metrics.NewCounter("jitterpool_bytes_served_total", nil, &metrics.Options{
		Name: "Generator Output Bytes",
	})
	if err != nil {
		return err
	}

	absorbedBytes, err = metrics.NewCounter("jitterpool_absorbed_bytes_total", nil, &metrics.Options{
		Name:           "Absorbed Entropy Bytes",
		ExpertiseLevel: config.ExpertiseLevelExpert,
	})
	if err != nil {
		return err
	}

	feederDeliveries, err = metrics.NewCounter("jitterpool_feeder_deliveries_total", nil, &metrics.Options{
		Name:           "Entropy Feeder Deliveries",
		ExpertiseLevel: config.ExpertiseLevelExpert,
	})
	if err != nil {
		return err
	}

	jitterDurations, err = metrics.NewHistogram("jitterpool_jitter_duration_seconds", nil, &metrics.Options{
		Name:           "Jitter Measurement Durations",
		ExpertiseLevel: config.ExpertiseLevelDeveloper,
	})
	if err != nil {
		return err
	}

	metricsRegistered = true
	return nil
}

// served records one output call that returned n bytes.
func served(n int) {
	draws.Inc()
	bytesServed.Add(n)
}
