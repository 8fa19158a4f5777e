// Package runner drives an [automaton.Simulation] from the outside.
//
// The engine itself only knows how to advance one generation. Runner adds the
// caller-side concerns around it:
//
//   - cancellation through a context, checked between generations
//   - per-generation [Metric] series and [Observer] callbacks
//   - stopping at the first fixed point
//   - turning a panicking rule into a [StepError]
//
// # Example
//
//	r := runner.New(sim)
//	r.AddMetric(metrics.NewPopulation())
//	result, err := r.Run(ctx, runner.Config{Generations: 500, StopWhenStable: true})
package runner
