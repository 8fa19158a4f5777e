// Package viz provides terminal visualization for boolean automata.
//
//   - [Render]: glyph grid styled with a [Theme]
//   - [PopulationPlot]: asciigraph line chart of a metric series
//   - [Model]: Bubble Tea live view that steps a simulation on a timer
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	N     - Advance a single generation
//	R     - Reset to the initial generation
//	T     - Cycle color themes
//	Q     - Quit
package viz
