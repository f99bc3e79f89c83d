package metrics

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/safing/jitterpool/config"
	"github.com/safing/jitterpool/log"
)

const pushInterval = 10 * time.Second

// WriteMetrics writes all metrics meant for the given expertiseLevel (or
// below) to the given writer, in the prometheus text format.
func WriteMetrics(w io.Writer, expertiseLevel uint8) {
	registryLock.RLock()
	defer registryLock.RUnlock()

	for _, metric := range registry {
		if expertiseLevel >= metric.Opts().ExpertiseLevel {
			metric.WritePrometheus(w)
		}
	}
}

func writeMetricsTo(ctx context.Context, url string) error {
	// First, collect metrics into buffer.
	buf := &bytes.Buffer{}
	WriteMetrics(buf, config.ExpertiseLevelDeveloper)

	// Check if there is something to send.
	if buf.Len() == 0 {
		log.Debugf("metrics: not pushing metrics, nothing to send")
		return nil
	}

	// Create request
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	// Send.
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	// Check return status.
	switch resp.StatusCode {
	case http.StatusOK,
		http.StatusAccepted,
		http.StatusNoContent:
		return nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf(
			"got %s while writing metrics to %s: %s",
			resp.Status,
			url,
			body,
		)
	}
}

func metricsWriter(ctx context.Context) error {
	pushURL := pushOption()
	ticker := time.NewTicker(pushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := writeMetricsTo(ctx, pushURL)
			if err != nil {
				return err
			}
		}
	}
}
