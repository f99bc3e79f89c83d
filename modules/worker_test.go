package modules

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTest = errors.New("test error")

func TestWorker(t *testing.T) {
	t.Parallel()

	wModule := initNewModule("worker test module", nil, nil, nil)

	// basic functionality
	err := wModule.RunWorker("test worker", func(ctx context.Context) error {
		return nil
	})
	assert.NoError(t, err)

	// returning an error
	err = wModule.RunWorker("test worker", func(ctx context.Context) error {
		return errTest
	})
	assert.ErrorIs(t, err, errTest)

	// service functionality
	failCnt := 0
	var sWTestGroup sync.WaitGroup
	sWTestGroup.Add(1)
	wModule.StartServiceWorker("test service-worker", 2*time.Millisecond, func(ctx context.Context) error {
		failCnt++
		t.Logf("service-worker test run #%d", failCnt)
		if failCnt >= 3 {
			sWTestGroup.Done()
			return nil
		}
		return errTest
	})
	sWTestGroup.Wait()
	assert.Equal(t, 3, failCnt, "service-worker failed to restart")

	// panic recovery
	err = wModule.RunWorker("test worker", func(ctx context.Context) error {
		var a []byte
		_ = a[0]
		return nil
	})
	panicked, mErr := IsPanic(err)
	require.True(t, panicked, "failed to return *ModuleError, got %+v", err)
	assert.Equal(t, "worker", mErr.TaskType)
	assert.NotEmpty(t, mErr.StackTrace)
}

func TestWorkerShutdown(t *testing.T) {
	t.Parallel()

	m := initNewModule("worker shutdown module", nil, nil, nil)

	canceled := make(chan struct{})
	m.StartWorker("blocking worker", func(ctx context.Context) error {
		<-ctx.Done()
		close(canceled)
		return ctx.Err()
	})
	m.StartServiceWorker("blocking service-worker", 0, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	require.NoError(t, m.shutdown())
	select {
	case <-canceled:
	default:
		t.Error("worker did not observe cancellation before stop")
	}

	err := m.RunWorker("late worker", func(ctx context.Context) error {
		t.Error("late worker must not run")
		return nil
	})
	assert.ErrorIs(t, err, errShuttingDown)
}
