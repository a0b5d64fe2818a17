package normalize

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/goensemble/ensemble"
	"github.com/sartorproj/goensemble/tensor"
)

// GridResult holds the normalization of every cell of one model.
type GridResult struct {
	Model string

	// Runs lists the run identifiers in the run order of Normalized.
	Runs []string

	// Normalized has shape (runs, steps, lat, lon).
	Normalized *tensor.Stack

	// ForcedResponse is the mean of Normalized across runs.
	ForcedResponse *tensor.Cube

	// MeanCube is the raw ensemble mean of each cell at each time step.
	MeanCube *tensor.Cube

	// Mean is the time average of MeanCube for each cell.
	Mean *tensor.Grid

	// StdCube is the population standard deviation across runs of each cell
	// at each time step.
	StdCube *tensor.Cube
}

// Grid normalizes the full grids of every run of model and computes the mean
// forced response of each cell.
//
// It applies the Pixel scheme to every cell at once: the mean subtracted from
// a cell is that cell's own time average of the ensemble mean, and the
// divisor is the standard deviation across runs at each (step, lat, lon).
func Grid(d *ensemble.Dataset, model string) (*GridResult, error) {
	m, err := d.Model(model)
	if err != nil {
		return nil, fmt.Errorf("normalize grid: %w", err)
	}
	cubes, err := m.Retained(ensemble.SpinUpSteps)
	if err != nil {
		return nil, fmt.Errorf("normalize grid: %w", err)
	}
	if len(cubes) == 0 {
		return &GridResult{
			Model:          model,
			Runs:           []string{},
			Normalized:     tensor.NewStack(0, 0, 0, 0),
			ForcedResponse: tensor.NewCube(0, 0, 0),
			MeanCube:       tensor.NewCube(0, 0, 0),
			Mean:           tensor.NewGrid(0, 0),
			StdCube:        tensor.NewCube(0, 0, 0),
		}, nil
	}

	steps, lat, lon := cubes[0].Shape()
	runs := make([][]float64, len(cubes))
	for r, c := range cubes {
		runs[r] = c.Values
	}

	meanValues, stdValues := runStats(runs)
	meanCube := &tensor.Cube{Steps: steps, Lat: lat, Lon: lon, Values: meanValues}
	stdCube := &tensor.Cube{Steps: steps, Lat: lat, Lon: lon, Values: stdValues}

	cellMean := timeMean(meanCube)

	// Broadcast the per-cell mean over every time step.
	shift := make([]float64, len(meanValues))
	frame := lat * lon
	for t := 0; t < steps; t++ {
		copy(shift[t*frame:(t+1)*frame], cellMean.Values)
	}

	normalized := tensor.NewStack(len(cubes), steps, lat, lon)
	rows := make([][]float64, len(cubes))
	for r, c := range cubes {
		row := normalized.RunValues(r)
		floats.SubTo(row, c.Values, shift)
		floats.Div(row, stdValues)
		rows[r] = row
	}

	return &GridResult{
		Model:          model,
		Runs:           m.Runs(),
		Normalized:     normalized,
		ForcedResponse: &tensor.Cube{Steps: steps, Lat: lat, Lon: lon, Values: runMean(rows)},
		MeanCube:       meanCube,
		Mean:           cellMean,
		StdCube:        stdCube,
	}, nil
}

// timeMean averages a cube over its time axis, giving one value per cell.
func timeMean(c *tensor.Cube) *tensor.Grid {
	g := tensor.NewGrid(c.Lat, c.Lon)
	series := make([]float64, c.Steps)
	for i := 0; i < c.Lat; i++ {
		for j := 0; j < c.Lon; j++ {
			for t := range series {
				series[t] = c.At(t, i, j)
			}
			g.Set(i, j, stat.Mean(series, nil))
		}
	}
	return g
}
