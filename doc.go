// Package goensemble provides exploratory analysis of climate model ensembles.
//
// An ensemble holds several climate models, each with several simulation
// runs, and each run is a time series of latitude × longitude grids.
// goensemble normalizes the runs of a model against ensemble statistics to
// separate the forced response shared by all runs from the internal
// variability of each run.
//
// # Quick Start
//
// Build a dataset, drop models with too few runs and normalize one pixel:
//
//	ds := ensemble.New()
//	ds.Add("CESM2", "r1i1p1f1", run1)
//	ds.Add("CESM2", "r2i1p1f1", run2)
//
//	pruned := ensemble.Prune(ds, ensemble.DefaultMinRuns)
//	res, err := normalize.Pixel(pruned, "CESM2", tensor.Pixel{Lat: 10, Lon: 20})
//	// res.Normalized, res.ForcedResponse
//
// Normalize full grids:
//
//	grid, err := normalize.Grid(pruned, "CESM2")
//
// # Packages
//
//   - tensor: typed grid, run and stack arrays
//   - ensemble: the model → run → tensor dataset and pruning
//   - normalize: pixel and grid normalization, CSV export
//   - visualize: run histograms, time series overlays and heatmaps
//   - synthetic: generated ensembles for demonstrations and tests
//
// The demo directory holds the goensemble command line tool.
package goensemble
