package visualize

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/sartorproj/goensemble/ensemble"
	"github.com/sartorproj/goensemble/tensor"
)

// DefaultHeatmapYear is the year drawn by Heatmap callers without a preference.
const DefaultHeatmapYear = 2010

// DefaultHeatmapYears are the panels drawn by HeatmapYears callers without a preference.
var DefaultHeatmapYears = []int{2000, 2005, 2010}

// cellGrid adapts a latitude-flipped frame to plotter.GridXYZ. gonum/plot
// draws grid row 0 at the bottom, so rows are read back to front to keep row
// 0 of the flipped frame on top. The Y axis then reads as the original
// latitude index.
type cellGrid struct {
	g *tensor.Grid
}

func (c cellGrid) Dims() (int, int) { return c.g.Lon, c.g.Lat }

func (c cellGrid) Z(col, row int) float64 { return c.g.At(c.g.Lat-1-row, col) }

func (c cellGrid) X(col int) float64 { return float64(col) }

func (c cellGrid) Y(row int) float64 { return float64(row) }

// yearFrame validates year and returns the latitude-flipped frame of run for
// that year, with the spin-up dropped.
func yearFrame(d *ensemble.Dataset, model, run string, year int) (*tensor.Grid, error) {
	if err := ValidateYear(year); err != nil {
		return nil, err
	}
	c, err := d.Run(model, run)
	if err != nil {
		return nil, err
	}
	frame, err := c.Drop(ensemble.SpinUpSteps).Frame(year - FirstYear)
	if err != nil {
		return nil, fmt.Errorf("model %q run %q year %d: %w", model, run, year, err)
	}
	return frame.FlipUD(), nil
}

func coolWarm() palette.Palette {
	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(0)
	cmap.SetMax(1)
	return cmap.Palette(255)
}

func heatPlot(g *tensor.Grid, pal palette.Palette, title string) *plot.Plot {
	hm := plotter.NewHeatMap(cellGrid{g: g}, pal)
	hm.NaN = color.Transparent
	if hm.Min == hm.Max || math.IsInf(hm.Min, 0) || math.IsInf(hm.Max, 0) {
		// A constant or empty frame has no range to spread the palette over.
		mid := hm.Min
		if math.IsInf(mid, 0) || math.IsNaN(mid) {
			mid = 0
		}
		hm.Min, hm.Max = mid-0.5, mid+0.5
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Longitude index"
	p.Y.Label.Text = "Latitude index"
	p.Add(hm)
	return p
}

// Heatmap draws the spatial frame of one run for one year with a cool-warm
// diverging palette.
func Heatmap(w io.Writer, d *ensemble.Dataset, model, run string, year int, opts *Options) error {
	g, err := yearFrame(d, model, run, year)
	if err != nil {
		return fmt.Errorf("heatmap: %w", err)
	}

	p := heatPlot(g, coolWarm(), fmt.Sprintf("%s %s %d", model, run, year))
	width, height, format := opts.resolve(14*vg.Inch, 6*vg.Inch)
	return save(w, p, width, height, format)
}

// HeatmapYears draws one panel per year side by side. Every year is
// validated before anything is rendered.
func HeatmapYears(w io.Writer, d *ensemble.Dataset, model, run string, years []int, opts *Options) error {
	if len(years) == 0 {
		years = DefaultHeatmapYears
	}
	for _, y := range years {
		if err := ValidateYear(y); err != nil {
			return fmt.Errorf("heatmap years: %w", err)
		}
	}

	pal := palette.Heat(255, 1)
	row := make([]*plot.Plot, len(years))
	for i, y := range years {
		g, err := yearFrame(d, model, run, y)
		if err != nil {
			return fmt.Errorf("heatmap years: %w", err)
		}
		row[i] = heatPlot(g, pal, fmt.Sprintf("%d", y))
	}

	width, height, format := opts.resolve(vg.Length(8*len(years))*vg.Inch, 6*vg.Inch)
	canvas, err := draw.NewFormattedCanvas(width, height, format)
	if err != nil {
		return fmt.Errorf("heatmap years: %w", err)
	}

	tiles := draw.Tiles{
		Rows: 1,
		Cols: len(years),
		PadX: vg.Millimeter * 4,
		PadY: vg.Millimeter * 4,
	}
	canvases := plot.Align([][]*plot.Plot{row}, tiles, draw.New(canvas))
	for i, p := range row {
		p.Draw(canvases[0][i])
	}

	_, err = canvas.WriteTo(w)
	return err
}
