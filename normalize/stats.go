// Package normalize separates the forced response of an ensemble from the
// internal variability of its runs.
package normalize

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// runStats returns, for every position k, the mean and the population
// standard deviation of runs[r][k] across r. All rows must have equal length.
func runStats(runs [][]float64) (mean, std []float64) {
	if len(runs) == 0 {
		return []float64{}, []float64{}
	}
	n := len(runs[0])
	mean = make([]float64, n)
	std = make([]float64, n)
	column := make([]float64, len(runs))
	for k := 0; k < n; k++ {
		for r, row := range runs {
			column[r] = row[k]
		}
		m, v := stat.PopMeanVariance(column, nil)
		mean[k] = m
		std[k] = math.Sqrt(v)
	}
	return mean, std
}

// runMean returns the mean across runs at every position.
func runMean(runs [][]float64) []float64 {
	if len(runs) == 0 {
		return []float64{}
	}
	out := make([]float64, len(runs[0]))
	column := make([]float64, len(runs))
	for k := range out {
		for r, row := range runs {
			column[r] = row[k]
		}
		out[k] = stat.Mean(column, nil)
	}
	return out
}
