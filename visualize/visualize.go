// Package visualize renders ensemble summaries and normalization results.
package visualize

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Calendar years covered by the retained time steps. Step t of a run, after
// the spin-up is dropped, is year FirstYear+t.
const (
	FirstYear = 1980
	LastYear  = 2013
)

var (
	// ErrYearOutOfRange is returned for a year outside [FirstYear, LastYear].
	ErrYearOutOfRange = errors.New("year out of range")

	// ErrEmptyDataset is returned when there is nothing to plot.
	ErrEmptyDataset = errors.New("empty dataset")
)

// ValidateYear checks that year lies in [FirstYear, LastYear].
func ValidateYear(year int) error {
	if year < FirstYear || year > LastYear {
		return fmt.Errorf("year %d is not in [%d, %d]: %w", year, FirstYear, LastYear, ErrYearOutOfRange)
	}
	return nil
}

// Options controls the rendered image.
type Options struct {
	Width  vg.Length // zero selects the default width of each plot
	Height vg.Length // zero selects the default height of each plot
	Format string    // image format understood by gonum/plot, "png" when empty
}

func (o *Options) resolve(width, height vg.Length) (vg.Length, vg.Length, string) {
	format := "png"
	if o == nil {
		return width, height, format
	}
	if o.Width > 0 {
		width = o.Width
	}
	if o.Height > 0 {
		height = o.Height
	}
	if o.Format != "" {
		format = o.Format
	}
	return width, height, format
}

// save renders p to w.
func save(w io.Writer, p *plot.Plot, width, height vg.Length, format string) error {
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// finiteXYs pairs each value with its year and drops non-finite values,
// which gonum/plot refuses to draw.
func finiteXYs(values []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(values))
	for t, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(FirstYear + t), Y: v})
	}
	return pts
}
