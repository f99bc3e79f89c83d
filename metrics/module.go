// Package metrics exports generator and host statistics in the prometheus
// text format, on request or by pushing them to a configured URL.
package metrics

import (
	"sync"

	"github.com/safing/jitterpool/modules"
)

var (
	module *modules.Module

	registerBaseOnce sync.Once
	registerBaseErr  error
)

func init() {
	module = modules.Register("metrics", prep, start, nil, "config")
}

func prep() error {
	return prepConfig()
}

func start() error {
	if err := registerBaseMetrics(); err != nil {
		return err
	}

	if pushOption() != "" {
		module.StartServiceWorker("metric pusher", 0, metricsWriter)
	}

	return nil
}

// registerBaseMetrics registers the host, runtime and info metrics once.
func registerBaseMetrics() error {
	registerBaseOnce.Do(func() {
		if registerBaseErr = registerInfoMetric(); registerBaseErr != nil {
			return
		}
		if registerBaseErr = registerRuntimeMetric(); registerBaseErr != nil {
			return
		}
		registerBaseErr = registerHostMetrics()
	})
	return registerBaseErr
}
