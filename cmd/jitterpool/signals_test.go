package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHandleInterruptsStops(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signalCh := make(chan os.Signal, 1)
	stopped := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		handleInterrupts(ctx, signalCh, stopped, cancel, func(int) {
			t.Error("unexpected exit")
		})
	}()

	// first interrupt cancels
	signalCh <- os.Interrupt
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not canceled")
	}

	// the handler keeps counting until it is stopped
	signalCh <- os.Interrupt
	close(stopped)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not return after stop")
	}
}

func TestHandleInterruptsForcesExit(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signalCh := make(chan os.Signal)
	stopped := make(chan struct{})
	defer close(stopped)

	exitCode := make(chan int, 1)
	go handleInterrupts(ctx, signalCh, stopped, cancel, func(code int) {
		exitCode <- code
	})

	for i := 0; i <= forceExitAfter; i++ {
		signalCh <- os.Interrupt
	}
	select {
	case code := <-exitCode:
		assert.Equal(t, 1, code)
	case <-time.After(time.Second):
		t.Fatal("no forced exit")
	}
}

func TestInterruptContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := interruptContext(context.Background())
	cancel()
	cancel()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
