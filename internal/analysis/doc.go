// Package analysis characterizes per-generation metric series.
//
//   - [PowerSpectrum]: FFT magnitude of a mean-removed series
//   - [DominantPeriod]: strongest oscillation period in generations
//   - [Summarize]: min/max/mean of a series
//
// # Oscillation Detection
//
// A population series from an oscillating pattern has a sharp spectral
// peak at its period:
//
//	period, ok := analysis.DominantPeriod(result.Series["population"])
//	if ok {
//	    // pattern repeats roughly every period generations
//	}
package analysis
