// Package tensor provides the dense arrays used by the ensemble analysis.
//
// Three shapes are modelled as distinct types so that a two-dimensional grid
// can never be passed where a run tensor is expected:
//
//   - Grid: latitude × longitude
//   - Cube: time × latitude × longitude (one simulation run)
//   - Stack: run × time × latitude × longitude
//
// All types store their values in a single row-major slice.
//
// # Creating a Cube
//
//	run := tensor.NewCube(140, 2, 2)
//	run.Fill(5)
//
//	// or from existing values
//	run, err := tensor.CubeFromValues(steps, lat, lon, values)
//
// # Slicing
//
// Drop the leading spin-up steps and extract a pixel time series or a
// single spatial frame:
//
//	kept := run.Drop(131)
//	series, err := kept.Series(tensor.Pixel{Lat: 0, Lon: 1})
//	frame, err := kept.Frame(30)
//	flipped := frame.FlipUD()
//
// Out of range pixels, frames and runs return an error wrapping
// ErrOutOfRange. Negative indices are never wrapped around.
package tensor
