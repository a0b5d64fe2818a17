// Package synthetic generates in-memory climate ensembles with a known
// forced response.
package synthetic

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/sartorproj/goensemble/ensemble"
	"github.com/sartorproj/goensemble/tensor"
)

// ErrConfig is returned for an unusable generator configuration.
var ErrConfig = errors.New("invalid synthetic config")

// ModelSpec names a model and its number of runs.
type ModelSpec struct {
	Name string `yaml:"name"`
	Runs int    `yaml:"runs"`
}

// Config holds the generator parameters.
type Config struct {
	Models []ModelSpec `yaml:"models"`
	Steps  int         `yaml:"steps"` // total steps, spin-up included
	Lat    int         `yaml:"lat"`
	Lon    int         `yaml:"lon"`
	Seed   uint64      `yaml:"seed"`
	Trend  float64     `yaml:"trend"` // forced warming per step
	Noise  float64     `yaml:"noise"` // innovation std of the internal variability
	Phi    float64     `yaml:"phi"`   // AR(1) persistence of the internal variability
}

// DefaultConfig returns a small ensemble covering 1980 to 2013 after spin-up.
func DefaultConfig() *Config {
	return &Config{
		Models: []ModelSpec{
			{Name: "ACCESS-ESM1-5", Runs: 5},
			{Name: "CanESM5", Runs: 8},
			{Name: "CESM2", Runs: 3},
			{Name: "GISS-E2-1-G", Runs: 1},
			{Name: "MIROC6", Runs: 4},
		},
		Steps: ensemble.SpinUpSteps + 34,
		Lat:   12,
		Lon:   24,
		Seed:  42,
		Trend: 0.02,
		Noise: 0.3,
		Phi:   0.6,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if len(c.Models) == 0 {
		return fmt.Errorf("no models: %w", ErrConfig)
	}
	for _, m := range c.Models {
		if m.Name == "" {
			return fmt.Errorf("model without name: %w", ErrConfig)
		}
		if m.Runs < 1 {
			return fmt.Errorf("model %q has %d runs: %w", m.Name, m.Runs, ErrConfig)
		}
	}
	if c.Steps < 0 || c.Lat < 1 || c.Lon < 1 {
		return fmt.Errorf("shape %dx%dx%d: %w", c.Steps, c.Lat, c.Lon, ErrConfig)
	}
	if c.Noise < 0 {
		return fmt.Errorf("negative noise %g: %w", c.Noise, ErrConfig)
	}
	if math.Abs(c.Phi) >= 1 {
		return fmt.Errorf("phi %g must lie in (-1, 1): %w", c.Phi, ErrConfig)
	}
	return nil
}

// Generate builds a dataset of sea surface temperatures. Each cell follows a
// latitude-dependent climatology plus a linear forced trend shared by every
// run of a model, and each run adds its own AR(1) internal variability.
// Output is deterministic for a given Seed.
func Generate(cfg *Config) (*ensemble.Dataset, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ds := ensemble.New()
	for mi, spec := range cfg.Models {
		bias := 0.5 * math.Sin(float64(mi+1))
		for r := 0; r < spec.Runs; r++ {
			rng := rand.New(rand.NewPCG(cfg.Seed, uint64(mi)<<32|uint64(r)))
			ds.Add(spec.Name, fmt.Sprintf("r%di1p1f1", r+1), run(cfg, bias, rng))
		}
	}
	return ds, nil
}

func run(cfg *Config, bias float64, rng *rand.Rand) *tensor.Cube {
	c := tensor.NewCube(cfg.Steps, cfg.Lat, cfg.Lon)
	noise := make([]float64, cfg.Lat*cfg.Lon)
	for t := 0; t < cfg.Steps; t++ {
		forced := bias + cfg.Trend*float64(t)
		for i := 0; i < cfg.Lat; i++ {
			// Latitude from -90 to 90 degrees, warm at the equator.
			lat := math.Pi*(float64(i)+0.5)/float64(cfg.Lat) - math.Pi/2
			climatology := 2 + 26*math.Cos(lat)
			for j := 0; j < cfg.Lon; j++ {
				k := i*cfg.Lon + j
				noise[k] = cfg.Phi*noise[k] + cfg.Noise*rng.NormFloat64()
				c.Set(t, i, j, climatology+forced+noise[k])
			}
		}
	}
	return c
}
