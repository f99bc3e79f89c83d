package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/safing/jitterpool/info"
	"github.com/safing/jitterpool/modules"

	// module registration
	_ "github.com/safing/jitterpool/config"
	_ "github.com/safing/jitterpool/metrics"
	_ "github.com/safing/jitterpool/rng"
)

var (
	rootCmd = &cobra.Command{
		Use:   "jitterpool",
		Short: "jitter seeded random number generator",
		Long:  "Writes generator output to stdout for external statistical tools, or prints a summary of a sample.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// flags are parsed by cobra, make modules see them as parsed
			return flag.CommandLine.Parse(nil)
		},
		SilenceUsage: true,
	}

	printMetrics bool
)

func init() {
	// expose the flags of the modules
	flag.CommandLine.VisitAll(func(f *flag.Flag) {
		if f.Name == "help" {
			return
		}
		rootCmd.PersistentFlags().AddFlag(pflag.PFlagFromGoFlag(f))
	})
	rootCmd.PersistentFlags().BoolVar(&printMetrics, "metrics", false, "print metrics to stderr before exiting")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(info.FullVersion())
	},
}

func main() {
	info.Set("jitterpool", "0.1.0", "GPLv3")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// startModules starts all registered modules.
func startModules() error {
	err := modules.Start()
	if err != nil {
		if errors.Is(err, modules.ErrCleanExit) {
			os.Exit(0)
		}
		return fmt.Errorf("failed to start: %w", err)
	}
	return nil
}

// shutdownModules stops all modules and reports errors on stderr.
func shutdownModules() {
	if printMetrics {
		writeMetrics(os.Stderr)
	}
	if err := modules.Shutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown: %s\n", err)
	}
}
