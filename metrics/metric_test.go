package metrics

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safing/jitterpool/config"
)

func TestCounter(t *testing.T) {
	t.Parallel()

	c, err := NewCounter("test_draws_total", map[string]string{"pool": "b", "kind": "a"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "test_draws_total", c.ID())
	assert.Equal(t, `test_draws_total{kind="a",pool="b"}`, c.LabeledID())
	assert.Equal(t, config.ExpertiseLevelUser, c.Opts().ExpertiseLevel)

	c.Add(3)
	c.Inc()

	buf := &bytes.Buffer{}
	WriteMetrics(buf, config.ExpertiseLevelUser)
	assert.Contains(t, buf.String(), `test_draws_total{kind="a",pool="b"} 4`)

	// same ID, same labels
	_, err = NewCounter("test_draws_total", map[string]string{"kind": "a", "pool": "b"}, nil)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	// same ID, other labels
	_, err = NewCounter("test_draws_total", map[string]string{"kind": "c", "pool": "b"}, nil)
	assert.NoError(t, err)
}

func TestInvalidNames(t *testing.T) {
	t.Parallel()

	_, err := NewCounter("test-invalid", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = NewGauge("test_valid_gauge", map[string]string{"0label": "x"}, func() float64 { return 1 }, nil)
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestGaugeAndHistogram(t *testing.T) {
	t.Parallel()

	_, err := NewGauge("test_expert_gauge", nil, func() float64 { return 42 }, &Options{
		ExpertiseLevel: config.ExpertiseLevelExpert,
	})
	require.NoError(t, err)

	h, err := NewHistogram("test_jitter_seconds", nil, nil)
	require.NoError(t, err)
	h.ObserveDuration(1500 * time.Nanosecond)
	h.ObserveDuration(3 * time.Microsecond)

	buf := &bytes.Buffer{}
	WriteMetrics(buf, config.ExpertiseLevelUser)
	assert.NotContains(t, buf.String(), "test_expert_gauge")
	assert.Contains(t, buf.String(), "test_jitter_seconds_count 2")

	buf.Reset()
	WriteMetrics(buf, config.ExpertiseLevelExpert)
	assert.Contains(t, buf.String(), "test_expert_gauge 42")
}

func TestPush(t *testing.T) {
	t.Parallel()

	c, err := NewCounter("test_pushed_total", nil, nil)
	require.NoError(t, err)
	c.Set(7)

	received := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- string(body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, writeMetricsTo(context.Background(), srv.URL))
	assert.Contains(t, <-received, "test_pushed_total 7")

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer failing.Close()

	err = writeMetricsTo(context.Background(), failing.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
