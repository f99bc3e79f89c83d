package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/safing/jitterpool/config"
	"github.com/safing/jitterpool/metrics"
	"github.com/safing/jitterpool/rng"
)

const blockSize = 64

var (
	streamBytes int

	streamCmd = &cobra.Command{
		Use:   "stream",
		Short: "Write generator output to stdout",
		Long:  "Write generator output to stdout. A \".\" is printed to stderr at every 1024 bytes.",
		Args:  cobra.NoArgs,
		RunE:  runStream,
	}
)

func init() {
	streamCmd.Flags().IntVar(&streamBytes, "bytes", 1000000, "number of bytes to write")
	rootCmd.AddCommand(streamCmd)
}

func runStream(cmd *cobra.Command, args []string) error {
	if err := startModules(); err != nil {
		return err
	}
	defer shutdownModules()

	ctx, cancel := interruptContext(cmd.Context())
	defer cancel()

	fmt.Fprintf(os.Stderr, "writing %d bytes to stdout, a \".\" will be printed at every 1024 bytes.\n", streamBytes)

	group, ctx := errgroup.WithContext(ctx)
	blocks := make(chan []byte, 16)

	group.Go(func() error {
		defer close(blocks)

		for remaining := streamBytes; remaining > 0; remaining -= blockSize {
			b, err := rng.Bytes(min(blockSize, remaining))
			if err != nil {
				return err
			}
			select {
			case blocks <- b:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	group.Go(func() error {
		return writeBlocks(os.Stdout, os.Stderr, blocks)
	})

	err := group.Wait()
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "\ninterrupted")
		return nil
	}
	return err
}

// writeBlocks writes all blocks to w and reports progress to progress.
func writeBlocks(w, progress io.Writer, blocks <-chan []byte) error {
	var bytesWritten int
	for b := range blocks {
		if _, err := w.Write(b); err != nil {
			return err
		}

		for i := 0; i < len(b); i++ {
			bytesWritten++
			if bytesWritten%1024 == 0 {
				fmt.Fprint(progress, ".")
			}
			if bytesWritten%65536 == 0 {
				fmt.Fprintf(progress, "\n%d bytes written\n", bytesWritten)
			}
		}
	}
	fmt.Fprintln(progress)
	return nil
}

func writeMetrics(w io.Writer) {
	metrics.WriteMetrics(w, config.ExpertiseLevelDeveloper)
}
