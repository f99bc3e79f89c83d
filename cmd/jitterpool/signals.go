package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"sync"
	"syscall"

	"github.com/safing/jitterpool/log"
)

const forceExitAfter = 5

// declared as a variable so it exists before the init of main.go runs
var printStackOnExit = flag.Bool("print-stack-on-exit", false, "prints the stack when interrupted")

// interruptContext returns a context that is canceled on the first
// interrupt. Further interrupts count down to a forced exit.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(
		signalCh,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)

	stopped := make(chan struct{})
	go handleInterrupts(ctx, signalCh, stopped, cancel, os.Exit)

	var stopOnce sync.Once
	return ctx, func() {
		stopOnce.Do(func() {
			signal.Stop(signalCh)
			close(stopped)
			cancel()
		})
	}
}

// handleInterrupts cancels on the first signal and calls exit after
// forceExitAfter more. It returns when stopped is closed.
func handleInterrupts(ctx context.Context, signalCh <-chan os.Signal, stopped <-chan struct{}, cancel context.CancelFunc, exit func(int)) {
	select {
	case <-signalCh:
	case <-ctx.Done():
		return
	case <-stopped:
		return
	}

	fmt.Fprintln(os.Stderr, " <INTERRUPT>")
	log.Warning("main: program was interrupted, shutting down.")
	if *printStackOnExit {
		printStackTo(os.Stderr)
	}
	cancel()

	forceCnt := forceExitAfter
	for {
		select {
		case <-signalCh:
		case <-stopped:
			return
		}

		forceCnt--
		if forceCnt > 0 {
			fmt.Fprintf(os.Stderr, " <INTERRUPT> again, but already shutting down. %d more to force.\n", forceCnt)
			continue
		}
		fmt.Fprintln(os.Stderr, "===== FORCED EXIT =====")
		printStackTo(os.Stderr)
		exit(1)
		return
	}
}

func printStackTo(writer io.Writer) {
	fmt.Fprintln(writer, "=== PRINTING TRACES ===")
	fmt.Fprintln(writer, "=== GOROUTINES ===")
	_ = pprof.Lookup("goroutine").WriteTo(writer, 1)
	fmt.Fprintln(writer, "=== BLOCKING ===")
	_ = pprof.Lookup("block").WriteTo(writer, 1)
	fmt.Fprintln(writer, "=== MUTEXES ===")
	_ = pprof.Lookup("mutex").WriteTo(writer, 1)
	fmt.Fprintln(writer, "=== END TRACES ===")
}
