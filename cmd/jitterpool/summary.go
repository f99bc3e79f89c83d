package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/safing/jitterpool/rng"
)

var (
	summarySamples int

	summaryCmd = &cobra.Command{
		Use:   "summary",
		Short: "Print statistics of a generator sample",
		Args:  cobra.NoArgs,
		RunE:  runSummary,
	}
)

func init() {
	summaryCmd.Flags().IntVar(&summarySamples, "samples", 100000, "number of samples per statistic")
	rootCmd.AddCommand(summaryCmd)
}

// sampleSummary holds the statistics printed by the summary command.
type sampleSummary struct {
	Samples int

	FloatMean   float64
	FloatStdDev float64

	ByteChiSquare float64
	BytePValue    float64

	TrueRatio float64

	Elapsed time.Duration
}

func runSummary(cmd *cobra.Command, args []string) error {
	if summarySamples < 256 {
		return fmt.Errorf("need at least 256 samples, got %d", summarySamples)
	}

	if err := startModules(); err != nil {
		return err
	}
	defer shutdownModules()

	summary, err := summarize(summarySamples)
	if err != nil {
		return err
	}
	summary.print(os.Stdout)
	return nil
}

func summarize(samples int) (*sampleSummary, error) {
	started := time.Now()
	s := &sampleSummary{Samples: samples}

	// floats
	floats := make([]float64, samples)
	for i := range floats {
		f, err := rng.Float64()
		if err != nil {
			return nil, err
		}
		floats[i] = f
	}
	s.FloatMean, s.FloatStdDev = stat.MeanStdDev(floats, nil)

	// bytes
	data, err := rng.Bytes(samples)
	if err != nil {
		return nil, err
	}
	s.ByteChiSquare, s.BytePValue = byteUniformity(data)

	// booleans
	var trues int
	for i := 0; i < samples; i++ {
		b, err := rng.Bool()
		if err != nil {
			return nil, err
		}
		if b {
			trues++
		}
	}
	s.TrueRatio = float64(trues) / float64(samples)

	s.Elapsed = time.Since(started)
	return s, nil
}

// byteUniformity returns the chi-square statistic of the byte histogram
// against a uniform distribution, and its p-value.
func byteUniformity(data []byte) (chiSquare, pValue float64) {
	observed := make([]float64, 256)
	for _, b := range data {
		observed[b]++
	}
	expected := make([]float64, 256)
	for i := range expected {
		expected[i] = float64(len(data)) / 256
	}

	chiSquare = stat.ChiSquare(observed, expected)
	pValue = 1 - distuv.ChiSquared{K: 255}.CDF(chiSquare)
	return chiSquare, pValue
}

func (s *sampleSummary) print(w io.Writer) {
	fmt.Fprintf(w, "samples:          %d\n", s.Samples)
	fmt.Fprintf(w, "float64 mean:     %.5f (expected 0.5)\n", s.FloatMean)
	fmt.Fprintf(w, "float64 stddev:   %.5f (expected %.5f)\n", s.FloatStdDev, 1/math.Sqrt(12))
	fmt.Fprintf(w, "byte chi-square:  %.2f (255 degrees of freedom, p=%.4f)\n", s.ByteChiSquare, s.BytePValue)
	fmt.Fprintf(w, "bool true ratio:  %.5f (expected 0.5)\n", s.TrueRatio)
	fmt.Fprintf(w, "elapsed:          %s\n", s.Elapsed.Round(time.Millisecond))
}
