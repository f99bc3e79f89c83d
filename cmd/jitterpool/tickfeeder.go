package main

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	tickBytes int

	tickFeederCmd = &cobra.Command{
		Use:   "tickfeeder",
		Short: "Write raw scheduling tick bits to stdout",
		Long:  "Write the raw bits the tick feeder gathers to stdout, while generating CPU noise. The generator itself is not started.",
		Args:  cobra.NoArgs,
		RunE:  runTickFeeder,
	}
)

func init() {
	tickFeederCmd.Flags().IntVar(&tickBytes, "bytes", 1000000, "number of bytes to write")
	rootCmd.AddCommand(tickFeederCmd)
}

// noise does some aes ctr until ctx is canceled.
func noise(ctx context.Context) error {
	key, _ := hex.DecodeString("6368616e676520746869732070617373")
	data := []byte("some plaintext x")

	block, err := aes.NewCipher(key)
	if err != nil {
		return err
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return err
	}

	stream := cipher.NewCTR(block, iv)
	for ctx.Err() == nil {
		for i := 0; i < 1000; i++ {
			stream.XORKeyStream(data, data)
		}
	}
	return nil
}

func runTickFeeder(cmd *cobra.Command, args []string) error {
	runtime.GOMAXPROCS(1)

	ctx, cancel := interruptContext(cmd.Context())
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)
	samplerCtx, stopNoise := context.WithCancel(ctx)
	blocks := make(chan []byte, 16)

	group.Go(func() error {
		return noise(samplerCtx)
	})
	group.Go(func() error {
		defer stopNoise()
		defer close(blocks)

		var value int64
		var pushes int
		for written := 0; written < tickBytes; {
			time.Sleep(10 * time.Nanosecond)

			value = (value << 1) | (time.Now().UnixNano() % 2)
			pushes++

			if pushes >= 64 {
				b := make([]byte, 8)
				binary.LittleEndian.PutUint64(b, uint64(value))
				select {
				case blocks <- b[:min(8, tickBytes-written)]:
				case <-ctx.Done():
					return ctx.Err()
				}
				written += 8
				pushes = 0
			}
		}
		return nil
	})
	group.Go(func() error {
		return writeBlocks(os.Stdout, os.Stderr, blocks)
	})

	err := group.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
