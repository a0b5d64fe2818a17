// Package ensemble provides the typed model → run → tensor dataset.
package ensemble

import (
	"errors"
	"fmt"

	"github.com/sartorproj/goensemble/tensor"
)

// SpinUpSteps is the number of leading time steps discarded from every run
// before analysis. It covers the spin-up period of the source simulations.
const SpinUpSteps = 131

var (
	// ErrModelNotFound is returned when a model identifier is not in the dataset.
	ErrModelNotFound = errors.New("model not found")

	// ErrRunNotFound is returned when a run identifier is not in a model.
	ErrRunNotFound = errors.New("run not found")

	// ErrShapeMismatch is returned when the runs of one model differ in shape.
	ErrShapeMismatch = errors.New("runs differ in shape")
)

// Model holds the runs of one climate model in insertion order.
type Model struct {
	Name  string
	order []string
	runs  map[string]*tensor.Cube
}

func newModel(name string) *Model {
	return &Model{Name: name, runs: make(map[string]*tensor.Cube)}
}

// Len returns the number of runs.
func (m *Model) Len() int {
	return len(m.order)
}

// Runs returns the run identifiers in insertion order.
func (m *Model) Runs() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Run returns the tensor of the named run.
func (m *Model) Run(name string) (*tensor.Cube, error) {
	c, ok := m.runs[name]
	if !ok {
		return nil, fmt.Errorf("model %q run %q: %w", m.Name, name, ErrRunNotFound)
	}
	return c, nil
}

// Check verifies that every run has the same shape once the first offset
// steps are dropped.
func (m *Model) Check(offset int) error {
	if len(m.order) == 0 {
		return nil
	}
	first := m.runs[m.order[0]]
	s0, la0, lo0 := retainedSteps(first.Steps, offset), first.Lat, first.Lon
	for _, name := range m.order[1:] {
		c := m.runs[name]
		s := retainedSteps(c.Steps, offset)
		if s != s0 || c.Lat != la0 || c.Lon != lo0 {
			return fmt.Errorf("model %q run %q has shape %dx%dx%d, want %dx%dx%d: %w",
				m.Name, name, s, c.Lat, c.Lon, s0, la0, lo0, ErrShapeMismatch)
		}
	}
	return nil
}

// Retained returns every run with the first offset steps dropped, in run order.
func (m *Model) Retained(offset int) ([]*tensor.Cube, error) {
	if err := m.Check(offset); err != nil {
		return nil, err
	}
	out := make([]*tensor.Cube, len(m.order))
	for i, name := range m.order {
		out[i] = m.runs[name].Drop(offset)
	}
	return out, nil
}

// PixelSeries returns the time series of every run at pixel p with the first
// offset steps dropped, in run order.
func (m *Model) PixelSeries(p tensor.Pixel, offset int) ([][]float64, error) {
	if err := m.Check(offset); err != nil {
		return nil, err
	}
	out := make([][]float64, len(m.order))
	for i, name := range m.order {
		s, err := m.runs[name].Series(p)
		if err != nil {
			return nil, fmt.Errorf("model %q run %q: %w", m.Name, name, err)
		}
		out[i] = s[len(s)-retainedSteps(len(s), offset):]
	}
	return out, nil
}

func retainedSteps(steps, offset int) int {
	if offset < 0 {
		offset = 0
	}
	if offset > steps {
		return 0
	}
	return steps - offset
}

// Dataset maps model identifiers to their runs. Models and runs iterate in
// the order they were first added.
//
// A Dataset is not safe for concurrent mutation; concurrent reads are fine.
type Dataset struct {
	order  []string
	models map[string]*Model
}

// New creates an empty dataset.
func New() *Dataset {
	return &Dataset{models: make(map[string]*Model)}
}

// Add stores run under model. Adding an existing run replaces its tensor
// without changing its position.
func (d *Dataset) Add(model, run string, c *tensor.Cube) {
	m, ok := d.models[model]
	if !ok {
		m = newModel(model)
		d.models[model] = m
		d.order = append(d.order, model)
	}
	if _, ok := m.runs[run]; !ok {
		m.order = append(m.order, run)
	}
	m.runs[run] = c
}

// Len returns the number of models.
func (d *Dataset) Len() int {
	return len(d.order)
}

// Models returns the model identifiers in insertion order.
func (d *Dataset) Models() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Model returns the named model.
func (d *Dataset) Model(name string) (*Model, error) {
	m, ok := d.models[name]
	if !ok {
		return nil, fmt.Errorf("model %q: %w", name, ErrModelNotFound)
	}
	return m, nil
}

// Run returns the tensor of one run of one model.
func (d *Dataset) Run(model, run string) (*tensor.Cube, error) {
	m, err := d.Model(model)
	if err != nil {
		return nil, err
	}
	return m.Run(run)
}

// RunCount pairs a model with its number of runs.
type RunCount struct {
	Model string
	Runs  int
}

// RunCounts returns the run count of every model in dataset order.
func (d *Dataset) RunCounts() []RunCount {
	out := make([]RunCount, len(d.order))
	for i, name := range d.order {
		out[i] = RunCount{Model: name, Runs: d.models[name].Len()}
	}
	return out
}

// TotalRuns returns the number of runs across all models.
func (d *Dataset) TotalRuns() int {
	total := 0
	for _, m := range d.models {
		total += m.Len()
	}
	return total
}
