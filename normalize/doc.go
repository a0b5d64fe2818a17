// Package normalize separates the forced response of a climate ensemble from
// the internal variability of its runs.
//
// Every run of a model is z-scored against ensemble statistics, and the mean
// of the normalized runs is the mean forced response.
//
// # Pixel Normalization
//
// Normalize the time series at one grid cell:
//
//	res, err := normalize.Pixel(ds, "CESM2", tensor.Pixel{Lat: 10, Lon: 20})
//	// res.Normalized     (runs × steps)
//	// res.ForcedResponse (steps)
//
// The series of each run, after dropping ensemble.SpinUpSteps, is shifted by
// one scalar (the time average of the ensemble-mean series) and scaled by
// the standard deviation across runs at each time step:
//
//	z[r][t] = (x[r][t] - mean) / std[t]
//
// The mean and the standard deviation are deliberately reduced differently.
// Standard deviations are population deviations (divisor = number of runs).
//
// # Grid Normalization
//
// Normalize every cell at once:
//
//	res, err := normalize.Grid(ds, "CESM2")
//	// res.Normalized     (runs × steps × lat × lon)
//	// res.ForcedResponse (steps × lat × lon)
//
// Here the subtracted mean is a per-cell grid (the time average of each
// cell's ensemble mean) and the divisor is the standard deviation across runs
// per (step, lat, lon).
//
// # Degenerate Input
//
// Cells where all runs agree have a zero standard deviation and produce
// infinite or NaN values. These are returned as is.
//
// # CSV Export
//
//	err := normalize.WritePixelCSV(os.Stdout, res)
package normalize
