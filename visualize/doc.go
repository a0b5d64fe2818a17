// Package visualize renders ensemble summaries and normalization results
// with gonum/plot.
//
// Every function writes a complete image to an io.Writer. The image format
// and size come from Options; a nil *Options selects PNG at a size suited to
// each plot.
//
//	f, _ := os.Create("runs.png")
//	defer f.Close()
//	err := visualize.RunHistogram(f, ds, nil)
//
// # Plots
//
//   - RunHistogram: number of runs per model
//   - Timeseries: normalized runs at one pixel and their mean forced response
//   - Heatmap: one run's spatial field for one year
//   - HeatmapYears: the same field for several years side by side
//
// Heatmap years must lie in [FirstYear, LastYear]; other years fail with
// ErrYearOutOfRange before anything is drawn.
package visualize
