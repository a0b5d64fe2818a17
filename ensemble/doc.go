// Package ensemble provides the climate ensemble dataset and its curation.
//
// A Dataset maps model identifiers to runs, and each run to a
// tensor.Cube indexed by [time step, latitude, longitude]. Models and runs
// keep the order in which they were added, so every consumer sees the same
// iteration order.
//
//	ds := ensemble.New()
//	ds.Add("CESM2", "r1i1p1f1", run1)
//	ds.Add("CESM2", "r2i1p1f1", run2)
//
//	m, err := ds.Model("CESM2")
//	if errors.Is(err, ensemble.ErrModelNotFound) {
//	    // ...
//	}
//
// # Pruning
//
// Drop models with too few runs to form an ensemble:
//
//	pruned := ensemble.Prune(ds, ensemble.DefaultMinRuns)
//
// # Spin-up
//
// The first SpinUpSteps time steps of every run belong to the spin-up period
// of the source simulations and are discarded wherever a run is analysed.
// Model.Retained applies the offset and checks that all runs agree in shape.
package ensemble
