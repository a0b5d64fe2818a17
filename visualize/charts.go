package visualize

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/sartorproj/goensemble/ensemble"
	"github.com/sartorproj/goensemble/normalize"
	"github.com/sartorproj/goensemble/tensor"
)

var (
	runColor    = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	forcedColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// RunHistogram draws one bar per model giving its number of runs.
func RunHistogram(w io.Writer, d *ensemble.Dataset, opts *Options) error {
	counts := d.RunCounts()
	if len(counts) == 0 {
		return fmt.Errorf("run histogram: %w", ErrEmptyDataset)
	}

	values := make(plotter.Values, len(counts))
	names := make([]string, len(counts))
	for i, c := range counts {
		values[i] = float64(c.Runs)
		names[i] = c.Model
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Number of runs per model, total = %d", d.TotalRuns())
	p.Y.Label.Text = "Runs"

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("run histogram: %w", err)
	}
	bars.Color = runColor
	bars.LineStyle.Width = 0
	p.Add(bars)

	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	width, height, format := opts.resolve(18*vg.Inch, 4*vg.Inch)
	return save(w, p, width, height, format)
}

// Timeseries normalizes model at pixel px and draws every normalized run as
// a thin line with the mean forced response on top.
func Timeseries(w io.Writer, d *ensemble.Dataset, model string, px tensor.Pixel, opts *Options) error {
	res, err := normalize.Pixel(d, model, px)
	if err != nil {
		return fmt.Errorf("timeseries plot: %w", err)
	}
	return TimeseriesResult(w, res, opts)
}

// TimeseriesResult draws an already computed pixel normalization.
// Non-finite values are left out of the lines.
func TimeseriesResult(w io.Writer, res *normalize.PixelResult, opts *Options) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Timeseries of model %s for pixel %s", res.Model, res.Pixel)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "SST anomalies"

	for _, row := range res.Normalized {
		pts := finiteXYs(row)
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("timeseries plot: %w", err)
		}
		line.LineStyle.Width = vg.Points(0.5)
		line.LineStyle.Color = runColor
		p.Add(line)
	}

	if pts := finiteXYs(res.ForcedResponse); len(pts) > 0 {
		forced, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("timeseries plot: %w", err)
		}
		forced.LineStyle.Width = vg.Points(1.5)
		forced.LineStyle.Color = forcedColor
		p.Add(forced)
		p.Legend.Add("Mean forced response", forced)
		p.Legend.Top = true
	}

	width, height, format := opts.resolve(8*vg.Inch, 5*vg.Inch)
	return save(w, p, width, height, format)
}
