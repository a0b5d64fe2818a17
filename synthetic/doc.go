// Package synthetic generates climate ensembles for demonstrations and tests.
//
// Every generated run is the sum of a latitude-dependent climatology, a
// linear forced trend shared by all runs of a model, and AR(1) internal
// variability drawn from a per-run random stream:
//
//	cfg := synthetic.DefaultConfig()
//	cfg.Models = []synthetic.ModelSpec{{Name: "M1", Runs: 10}}
//	ds, err := synthetic.Generate(cfg)
//
// Because the forced trend is known, normalizing a generated model should
// recover a forced response that rises steadily over time.
package synthetic
