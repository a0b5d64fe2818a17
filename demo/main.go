// Package main is a command line front end for exploring a climate ensemble:
// run counts, pruning, pixel time series, heatmaps and grid normalization.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sartorproj/goensemble/ensemble"
	"github.com/sartorproj/goensemble/synthetic"
)

var (
	// Global flags
	configPath string
	verbose    bool
	outputDir  string

	logger  *zap.Logger
	config  *Config
	dataset *ensemble.Dataset
)

var rootCmd = &cobra.Command{
	Use:   "goensemble",
	Short: "Explore and normalize a climate model ensemble",
	Long: `goensemble separates the forced response of a climate ensemble from the
internal variability of its runs.

The ensemble is generated in memory from the synthetic section of the
configuration file. Plots and CSV files are written to the output directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		config, err = LoadConfig(configPath)
		if err != nil {
			return err
		}
		if outputDir != "" {
			config.Output = outputDir
		}
		if err := os.MkdirAll(config.Output, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}

		dataset, err = synthetic.Generate(config.Synthetic)
		if err != nil {
			return err
		}
		logger.Debug("ensemble generated",
			zap.Int("models", dataset.Len()),
			zap.Int("runs", dataset.TotalRuns()),
			zap.Int("steps", config.Synthetic.Steps),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "out", "o", "", "output directory (overrides config)")

	rootCmd.AddCommand(runsCmd, pruneCmd, timeseriesCmd, heatmapCmd, normalizeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
