package normalize

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/goensemble/ensemble"
	"github.com/sartorproj/goensemble/tensor"
)

// PixelResult holds the normalization of one model at one pixel.
type PixelResult struct {
	Model string
	Pixel tensor.Pixel

	// Runs lists the run identifiers in the row order of Normalized.
	Runs []string

	// Normalized has one row per run and one column per retained time step.
	Normalized [][]float64

	// ForcedResponse is the mean of Normalized across runs.
	ForcedResponse []float64

	// MeanSeries is the raw ensemble mean at each time step.
	MeanSeries []float64

	// Mean is the time average of MeanSeries.
	Mean float64

	// StdSeries is the population standard deviation across runs at each time step.
	StdSeries []float64
}

// Steps returns the number of retained time steps.
func (r *PixelResult) Steps() int {
	return len(r.ForcedResponse)
}

// Pixel normalizes the time series of every run of model at pixel px and
// computes the mean forced response.
//
// The first ensemble.SpinUpSteps steps of each run are dropped. Each run is
// then shifted by the single scalar mean of the ensemble-mean series and
// divided by the standard deviation across runs at each time step. A zero
// standard deviation yields infinite or NaN values.
func Pixel(d *ensemble.Dataset, model string, px tensor.Pixel) (*PixelResult, error) {
	m, err := d.Model(model)
	if err != nil {
		return nil, fmt.Errorf("normalize pixel: %w", err)
	}
	series, err := m.PixelSeries(px, ensemble.SpinUpSteps)
	if err != nil {
		return nil, fmt.Errorf("normalize pixel %s: %w", px, err)
	}

	meanSeries, stdSeries := runStats(series)
	mean := stat.Mean(meanSeries, nil)

	normalized := make([][]float64, len(series))
	for r, s := range series {
		row := make([]float64, len(s))
		copy(row, s)
		floats.AddConst(-mean, row)
		floats.Div(row, stdSeries)
		normalized[r] = row
	}

	return &PixelResult{
		Model:          model,
		Pixel:          px,
		Runs:           m.Runs(),
		Normalized:     normalized,
		ForcedResponse: runMean(normalized),
		MeanSeries:     meanSeries,
		Mean:           mean,
		StdSeries:      stdSeries,
	}, nil
}
