package normalize

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goensemble/ensemble"
	"github.com/sartorproj/goensemble/tensor"
)

var approx = cmp.Options{cmpopts.EquateApprox(0, 1e-12), cmpopts.EquateNaNs()}

func constCube(steps, lat, lon int, v float64) *tensor.Cube {
	c := tensor.NewCube(steps, lat, lon)
	c.Fill(v)
	return c
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// withSpinUp prefixes the retained steps with a spin-up period of junk values.
func withSpinUp(lat, lon int, retained [][]float64) *tensor.Cube {
	c := tensor.NewCube(ensemble.SpinUpSteps+len(retained), lat, lon)
	c.Fill(1000)
	for t, frame := range retained {
		copy(c.Values[(ensemble.SpinUpSteps+t)*lat*lon:], frame)
	}
	return c
}

func TestPixelConstantRuns(t *testing.T) {
	ds := ensemble.New()
	ds.Add("M1", "r1", constCube(140, 2, 2, 5))
	ds.Add("M1", "r2", constCube(140, 2, 2, 7))

	res, err := Pixel(ds, "M1", tensor.Pixel{Lat: 0, Lon: 0})
	require.NoError(t, err)

	assert.Equal(t, 9, res.Steps())
	assert.Equal(t, []string{"r1", "r2"}, res.Runs)
	assert.InDelta(t, 6.0, res.Mean, 1e-12)

	want := [][]float64{repeat(-1, 9), repeat(1, 9)}
	if diff := cmp.Diff(want, res.Normalized, approx); diff != "" {
		t.Errorf("normalized mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(repeat(1, 9), res.StdSeries, approx); diff != "" {
		t.Errorf("std mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(repeat(0, 9), res.ForcedResponse, approx); diff != "" {
		t.Errorf("forced response mismatch (-want +got):\n%s", diff)
	}
}

func TestPixelScalarMeanVectorStd(t *testing.T) {
	ds := ensemble.New()
	ds.Add("M", "r1", withSpinUp(1, 1, [][]float64{{1}, {3}, {2}}))
	ds.Add("M", "r2", withSpinUp(1, 1, [][]float64{{3}, {7}, {2.5}}))
	ds.Add("M", "r3", withSpinUp(1, 1, [][]float64{{2}, {5}, {3}}))

	res, err := Pixel(ds, "M", tensor.Pixel{})
	require.NoError(t, err)

	// Ensemble mean per step: 2, 5, 2.5; its time average: 19/6.
	mean := 19.0 / 6.0
	std := []float64{math.Sqrt(2.0 / 3.0), math.Sqrt(8.0 / 3.0), math.Sqrt(1.0 / 6.0)}

	if diff := cmp.Diff([]float64{2, 5, 2.5}, res.MeanSeries, approx); diff != "" {
		t.Errorf("mean series mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, mean, res.Mean, 1e-12)
	if diff := cmp.Diff(std, res.StdSeries, approx); diff != "" {
		t.Errorf("std series mismatch (-want +got):\n%s", diff)
	}

	raw := [][]float64{{1, 3, 2}, {3, 7, 2.5}, {2, 5, 3}}
	want := make([][]float64, len(raw))
	forced := make([]float64, 3)
	for r, row := range raw {
		want[r] = make([]float64, len(row))
		for k, v := range row {
			want[r][k] = (v - mean) / std[k]
			forced[k] += want[r][k] / 3
		}
	}
	if diff := cmp.Diff(want, res.Normalized, approx); diff != "" {
		t.Errorf("normalized mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(forced, res.ForcedResponse, approx); diff != "" {
		t.Errorf("forced response mismatch (-want +got):\n%s", diff)
	}
}

func TestPixelMeanProperties(t *testing.T) {
	ds := ensemble.New()
	for r, name := range []string{"a", "b", "c", "d"} {
		c := tensor.NewCube(ensemble.SpinUpSteps+20, 3, 4)
		for i := range c.Values {
			c.Values[i] = math.Sin(float64(i)*0.37+float64(r)) * float64(r+1)
		}
		ds.Add("M", name, c)
	}

	px := tensor.Pixel{Lat: 2, Lon: 1}
	res, err := Pixel(ds, "M", px)
	require.NoError(t, err)

	m, err := ds.Model("M")
	require.NoError(t, err)
	series, err := m.PixelSeries(px, ensemble.SpinUpSteps)
	require.NoError(t, err)

	avg := make([]float64, len(series[0]))
	for _, s := range series {
		for k, v := range s {
			avg[k] += v / float64(len(series))
		}
	}
	if diff := cmp.Diff(avg, res.MeanSeries, approx); diff != "" {
		t.Errorf("mean series mismatch (-want +got):\n%s", diff)
	}

	total := 0.0
	for _, v := range res.MeanSeries {
		total += v
	}
	assert.InDelta(t, total/float64(len(res.MeanSeries)), res.Mean, 1e-12)

	require.Len(t, res.Normalized, 4)
	for _, row := range res.Normalized {
		assert.Len(t, row, 20)
	}
	assert.Len(t, res.ForcedResponse, 20)
}

func TestPixelErrors(t *testing.T) {
	ds := ensemble.New()
	ds.Add("M", "r1", constCube(140, 2, 3, 1))
	ds.Add("M", "r2", constCube(140, 2, 3, 2))

	_, err := Pixel(ds, "missing", tensor.Pixel{})
	assert.ErrorIs(t, err, ensemble.ErrModelNotFound)

	for _, px := range []tensor.Pixel{{2, 0}, {0, 3}, {-1, 0}} {
		_, err = Pixel(ds, "M", px)
		assert.ErrorIs(t, err, tensor.ErrOutOfRange, "pixel %s", px)
	}

	ds.Add("N", "r1", constCube(140, 2, 3, 1))
	ds.Add("N", "r2", constCube(141, 2, 3, 1))
	_, err = Pixel(ds, "N", tensor.Pixel{})
	assert.ErrorIs(t, err, ensemble.ErrShapeMismatch)
}

func TestPixelZeroStd(t *testing.T) {
	ds := ensemble.New()
	ds.Add("M", "r1", withSpinUp(1, 1, [][]float64{{4}, {6}, {5}}))
	ds.Add("M", "r2", withSpinUp(1, 1, [][]float64{{4}, {6}, {5}}))

	res, err := Pixel(ds, "M", tensor.Pixel{})
	require.NoError(t, err)

	for _, row := range res.Normalized {
		assert.True(t, math.IsInf(row[0], -1))
		assert.True(t, math.IsInf(row[1], 1))
		assert.True(t, math.IsNaN(row[2]))
	}
}

func TestPixelSingleRun(t *testing.T) {
	ds := ensemble.New()
	ds.Add("M", "r1", withSpinUp(1, 1, [][]float64{{1}, {3}}))

	res, err := Pixel(ds, "M", tensor.Pixel{})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, res.StdSeries)
	assert.True(t, math.IsInf(res.Normalized[0][0], -1))
	assert.True(t, math.IsInf(res.Normalized[0][1], 1))
}

func TestPixelNoRetainedSteps(t *testing.T) {
	ds := ensemble.New()
	ds.Add("M", "r1", constCube(ensemble.SpinUpSteps, 2, 2, 1))
	ds.Add("M", "r2", constCube(ensemble.SpinUpSteps, 2, 2, 2))

	res, err := Pixel(ds, "M", tensor.Pixel{Lat: 1, Lon: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Steps())
	assert.Len(t, res.Normalized, 2)
	assert.Empty(t, res.Normalized[0])
	assert.True(t, math.IsNaN(res.Mean))
}

func TestPixelDoesNotMutateInput(t *testing.T) {
	ds := ensemble.New()
	ds.Add("M", "r1", constCube(140, 1, 1, 5))
	ds.Add("M", "r2", constCube(140, 1, 1, 7))

	_, err := Pixel(ds, "M", tensor.Pixel{})
	require.NoError(t, err)

	c, err := ds.Run("M", "r1")
	require.NoError(t, err)
	assert.Equal(t, repeat(5, 140), c.Values)
}
