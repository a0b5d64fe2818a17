// Package tensor provides dense row-major arrays for gridded climate runs.
package tensor

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when an index falls outside an array's extent.
	ErrOutOfRange = errors.New("index out of range")

	// ErrShape is returned when values do not match the requested dimensions.
	ErrShape = errors.New("values do not match shape")
)

// Pixel is a (latitude, longitude) cell index.
type Pixel struct {
	Lat int
	Lon int
}

// String formats the pixel as "(lat, lon)".
func (p Pixel) String() string {
	return fmt.Sprintf("(%d, %d)", p.Lat, p.Lon)
}

// Grid is a latitude × longitude array.
type Grid struct {
	Lat    int
	Lon    int
	Values []float64
}

// NewGrid creates a zero-filled grid.
func NewGrid(lat, lon int) *Grid {
	return &Grid{Lat: lat, Lon: lon, Values: make([]float64, lat*lon)}
}

// At returns the value at cell (i, j).
func (g *Grid) At(i, j int) float64 {
	return g.Values[i*g.Lon+j]
}

// Set stores v at cell (i, j).
func (g *Grid) Set(i, j int, v float64) {
	g.Values[i*g.Lon+j] = v
}

// FlipUD returns a copy of the grid with the latitude rows reversed.
func (g *Grid) FlipUD() *Grid {
	out := NewGrid(g.Lat, g.Lon)
	for i := 0; i < g.Lat; i++ {
		copy(out.Values[(g.Lat-1-i)*g.Lon:(g.Lat-i)*g.Lon], g.Values[i*g.Lon:(i+1)*g.Lon])
	}
	return out
}

// Cube is a time × latitude × longitude array holding one simulation run.
type Cube struct {
	Steps  int
	Lat    int
	Lon    int
	Values []float64
}

// NewCube creates a zero-filled cube.
func NewCube(steps, lat, lon int) *Cube {
	return &Cube{Steps: steps, Lat: lat, Lon: lon, Values: make([]float64, steps*lat*lon)}
}

// CubeFromValues wraps values as a cube. The slice is not copied.
func CubeFromValues(steps, lat, lon int, values []float64) (*Cube, error) {
	if steps < 0 || lat < 0 || lon < 0 {
		return nil, fmt.Errorf("negative dimension %dx%dx%d: %w", steps, lat, lon, ErrShape)
	}
	if len(values) != steps*lat*lon {
		return nil, fmt.Errorf("%d values for shape %dx%dx%d: %w", len(values), steps, lat, lon, ErrShape)
	}
	return &Cube{Steps: steps, Lat: lat, Lon: lon, Values: values}, nil
}

// Shape returns the cube dimensions as (steps, lat, lon).
func (c *Cube) Shape() (int, int, int) {
	return c.Steps, c.Lat, c.Lon
}

// SameShape reports whether c and o have identical dimensions.
func (c *Cube) SameShape(o *Cube) bool {
	return c.Steps == o.Steps && c.Lat == o.Lat && c.Lon == o.Lon
}

// FrameSize returns the number of cells in one time step.
func (c *Cube) FrameSize() int {
	return c.Lat * c.Lon
}

// At returns the value at (t, i, j).
func (c *Cube) At(t, i, j int) float64 {
	return c.Values[(t*c.Lat+i)*c.Lon+j]
}

// Set stores v at (t, i, j).
func (c *Cube) Set(t, i, j int, v float64) {
	c.Values[(t*c.Lat+i)*c.Lon+j] = v
}

// Fill sets every element to v.
func (c *Cube) Fill(v float64) {
	for i := range c.Values {
		c.Values[i] = v
	}
}

// Copy creates a deep copy of the cube.
func (c *Cube) Copy() *Cube {
	values := make([]float64, len(c.Values))
	copy(values, c.Values)
	return &Cube{Steps: c.Steps, Lat: c.Lat, Lon: c.Lon, Values: values}
}

// Drop returns a new cube without the first n time steps.
// Dropping at least Steps steps yields a cube with zero steps.
func (c *Cube) Drop(n int) *Cube {
	if n < 0 {
		n = 0
	}
	if n > c.Steps {
		n = c.Steps
	}
	frame := c.FrameSize()
	values := make([]float64, (c.Steps-n)*frame)
	copy(values, c.Values[n*frame:])
	return &Cube{Steps: c.Steps - n, Lat: c.Lat, Lon: c.Lon, Values: values}
}

// Contains reports whether p lies inside the spatial extent of the cube.
func (c *Cube) Contains(p Pixel) bool {
	return p.Lat >= 0 && p.Lat < c.Lat && p.Lon >= 0 && p.Lon < c.Lon
}

// Series returns the time series at pixel p.
func (c *Cube) Series(p Pixel) ([]float64, error) {
	if !c.Contains(p) {
		return nil, fmt.Errorf("pixel %s outside %dx%d grid: %w", p, c.Lat, c.Lon, ErrOutOfRange)
	}
	out := make([]float64, c.Steps)
	for t := range out {
		out[t] = c.At(t, p.Lat, p.Lon)
	}
	return out, nil
}

// Frame returns a copy of the spatial grid at time step t.
func (c *Cube) Frame(t int) (*Grid, error) {
	if t < 0 || t >= c.Steps {
		return nil, fmt.Errorf("time step %d outside [0, %d): %w", t, c.Steps, ErrOutOfRange)
	}
	g := NewGrid(c.Lat, c.Lon)
	frame := c.FrameSize()
	copy(g.Values, c.Values[t*frame:(t+1)*frame])
	return g, nil
}

// Stack is a run × time × latitude × longitude array.
type Stack struct {
	Runs   int
	Steps  int
	Lat    int
	Lon    int
	Values []float64
}

// NewStack creates a zero-filled stack.
func NewStack(runs, steps, lat, lon int) *Stack {
	return &Stack{
		Runs:   runs,
		Steps:  steps,
		Lat:    lat,
		Lon:    lon,
		Values: make([]float64, runs*steps*lat*lon),
	}
}

// At returns the value at (r, t, i, j).
func (s *Stack) At(r, t, i, j int) float64 {
	return s.Values[((r*s.Steps+t)*s.Lat+i)*s.Lon+j]
}

// Run returns a copy of run r as a cube.
func (s *Stack) Run(r int) (*Cube, error) {
	if r < 0 || r >= s.Runs {
		return nil, fmt.Errorf("run %d outside [0, %d): %w", r, s.Runs, ErrOutOfRange)
	}
	size := s.Steps * s.Lat * s.Lon
	values := make([]float64, size)
	copy(values, s.Values[r*size:(r+1)*size])
	return &Cube{Steps: s.Steps, Lat: s.Lat, Lon: s.Lon, Values: values}, nil
}

// RunValues exposes the backing slice of run r for in-place writes.
// The caller must keep r within [0, Runs).
func (s *Stack) RunValues(r int) []float64 {
	size := s.Steps * s.Lat * s.Lon
	return s.Values[r*size : (r+1)*size]
}
