package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sartorproj/goensemble/ensemble"
	"github.com/sartorproj/goensemble/normalize"
	"github.com/sartorproj/goensemble/tensor"
	"github.com/sartorproj/goensemble/visualize"
)

var (
	histPruned bool

	minRuns int

	tsModel string
	tsLat   int
	tsLon   int

	hmModel string
	hmRun   string
	hmYears []int

	normWorkers int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Plot the number of runs per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds := dataset
		if histPruned {
			ds = ensemble.Prune(ds, config.MinRuns)
		}
		path := outputPath("runs_per_model")
		if err := writeFile(path, func(w io.Writer) error {
			return visualize.RunHistogram(w, ds, plotOptions())
		}); err != nil {
			return err
		}
		logger.Info("run histogram written", zap.String("path", path), zap.Int("models", ds.Len()))
		return nil
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "List the models that keep at least --min-runs runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		threshold := config.MinRuns
		if cmd.Flags().Changed("min-runs") {
			threshold = minRuns
		}
		pruned := ensemble.Prune(dataset, threshold)
		logger.Info("dataset pruned",
			zap.Int("min_runs", threshold),
			zap.Int("models_before", dataset.Len()),
			zap.Int("models_after", pruned.Len()),
		)

		out := cmd.OutOrStdout()
		for _, rc := range pruned.RunCounts() {
			fmt.Fprintf(out, "%-20s %d\n", rc.Model, rc.Runs)
		}
		fmt.Fprintf(out, "%d of %d models kept, %d runs\n", pruned.Len(), dataset.Len(), pruned.TotalRuns())
		return nil
	},
}

var timeseriesCmd = &cobra.Command{
	Use:   "timeseries",
	Short: "Normalize one pixel of a model and plot its forced response",
	RunE: func(cmd *cobra.Command, args []string) error {
		px := tensor.Pixel{Lat: tsLat, Lon: tsLon}
		res, err := normalize.Pixel(dataset, tsModel, px)
		if err != nil {
			return err
		}

		base := fmt.Sprintf("timeseries_%s_%d_%d", sanitize(tsModel), px.Lat, px.Lon)
		plotPath := outputPath(base)
		if err := writeFile(plotPath, func(w io.Writer) error {
			return visualize.TimeseriesResult(w, res, plotOptions())
		}); err != nil {
			return err
		}
		csvPath := filepath.Join(config.Output, base+".csv")
		if err := writeFile(csvPath, func(w io.Writer) error {
			return normalize.WritePixelCSV(w, res)
		}); err != nil {
			return err
		}

		logger.Info("pixel normalized",
			zap.String("model", tsModel),
			zap.Stringer("pixel", px),
			zap.Int("runs", len(res.Runs)),
			zap.Int("steps", res.Steps()),
			zap.Float64("mean", res.Mean),
			zap.String("plot", plotPath),
			zap.String("csv", csvPath),
		)
		return nil
	},
}

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Plot the spatial field of one run for one or more years",
	RunE: func(cmd *cobra.Command, args []string) error {
		run := hmRun
		if run == "" {
			m, err := dataset.Model(hmModel)
			if err != nil {
				return err
			}
			run = m.Runs()[0]
		}

		years := hmYears
		if len(years) == 0 {
			years = []int{visualize.DefaultHeatmapYear}
		}

		yearLabels := make([]string, len(years))
		for i, y := range years {
			if err := visualize.ValidateYear(y); err != nil {
				return err
			}
			yearLabels[i] = fmt.Sprint(y)
		}
		path := outputPath(fmt.Sprintf("heatmap_%s_%s_%s", sanitize(hmModel), sanitize(run), strings.Join(yearLabels, "-")))

		err := writeFile(path, func(w io.Writer) error {
			if len(years) == 1 {
				return visualize.Heatmap(w, dataset, hmModel, run, years[0], plotOptions())
			}
			return visualize.HeatmapYears(w, dataset, hmModel, run, years, plotOptions())
		})
		if err != nil {
			return err
		}
		logger.Info("heatmap written", zap.String("model", hmModel), zap.String("run", run), zap.Ints("years", years), zap.String("path", path))
		return nil
	},
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize the full grids of every model and export the forced responses",
	RunE: func(cmd *cobra.Command, args []string) error {
		pruned := ensemble.Prune(dataset, config.MinRuns)
		return normalizeAll(cmd.Context(), pruned, normWorkers)
	},
}

func init() {
	runsCmd.Flags().BoolVar(&histPruned, "pruned", false, "prune the dataset with min_runs before plotting")

	pruneCmd.Flags().IntVar(&minRuns, "min-runs", ensemble.DefaultMinRuns, "minimum number of runs per model (overrides config)")

	timeseriesCmd.Flags().StringVarP(&tsModel, "model", "m", "", "model identifier")
	timeseriesCmd.Flags().IntVar(&tsLat, "lat", 0, "latitude index")
	timeseriesCmd.Flags().IntVar(&tsLon, "lon", 0, "longitude index")
	_ = timeseriesCmd.MarkFlagRequired("model")

	heatmapCmd.Flags().StringVarP(&hmModel, "model", "m", "", "model identifier")
	heatmapCmd.Flags().StringVarP(&hmRun, "run", "r", "", "run identifier (first run when empty)")
	heatmapCmd.Flags().IntSliceVarP(&hmYears, "year", "y", nil, "calendar year in [1980, 2013], repeatable")
	_ = heatmapCmd.MarkFlagRequired("model")

	normalizeCmd.Flags().IntVarP(&normWorkers, "workers", "w", 4, "models normalized in parallel")
}

// normalizeAll runs the grid normalization of every model with at most
// workers models in flight and writes one CSV per model.
func normalizeAll(ctx context.Context, ds *ensemble.Dataset, workers int) error {
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for _, model := range ds.Models() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := normalize.Grid(ds, model)
			if err != nil {
				return err
			}
			path := filepath.Join(config.Output, "forced_"+sanitize(model)+".csv")
			if err := writeFile(path, func(w io.Writer) error {
				return normalize.WriteGridCSV(w, res)
			}); err != nil {
				return err
			}
			logger.Info("grid normalized",
				zap.String("model", model),
				zap.Int("runs", len(res.Runs)),
				zap.Int("steps", res.ForcedResponse.Steps),
				zap.String("csv", path),
			)
			return nil
		})
	}
	return g.Wait()
}

func plotOptions() *visualize.Options {
	return &visualize.Options{Format: config.Format}
}

func outputPath(base string) string {
	return filepath.Join(config.Output, base+"."+config.Format)
}

// writeFile creates path and hands it to write, closing it afterwards.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// sanitize makes an identifier safe to use in a file name.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, s)
}
