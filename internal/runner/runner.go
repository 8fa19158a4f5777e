package runner

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/san-kum/casim/pkg/automaton"
)

type Metric[C any] interface {
	Name() string
	Observe(gen int, cells []C)
	Value() float64
	Reset()
}

type Observer[C any] interface {
	OnGeneration(gen int, cells []C)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc[C any] func(gen int, cells []C)

func (f ObserverFunc[C]) OnGeneration(gen int, cells []C) { f(gen, cells) }

type Config struct {
	Generations    int
	StopWhenStable bool
}

type Result struct {
	// Steps is the number of generations advanced by this Run.
	Steps int
	// Generation is the simulation's generation counter when Run returned.
	Generation int
	Stable     bool
	StableAt   int
	Series     map[string][]float64
	Metrics    map[string]float64
}

type Runner[C comparable] struct {
	sim       *automaton.Simulation[C]
	metrics   []Metric[C]
	observers []Observer[C]
	logger    *slog.Logger
	prev      []C
	failed    bool
}

func New[C comparable](sim *automaton.Simulation[C]) *Runner[C] {
	return &Runner[C]{
		sim:       sim,
		metrics:   make([]Metric[C], 0),
		observers: make([]Observer[C], 0),
		logger:    slog.Default(),
	}
}

func (r *Runner[C]) AddMetric(m Metric[C])     { r.metrics = append(r.metrics, m) }
func (r *Runner[C]) AddObserver(o Observer[C]) { r.observers = append(r.observers, o) }

func (r *Runner[C]) SetLogger(l *slog.Logger) {
	if l != nil {
		r.logger = l
	}
}

// Simulation returns the driven simulation.
func (r *Runner[C]) Simulation() *automaton.Simulation[C] { return r.sim }

// Run observes the current generation and then advances up to
// cfg.Generations steps. On cancellation the partial result is returned with
// the context error.
func (r *Runner[C]) Run(ctx context.Context, cfg Config) (*Result, error) {
	if r.failed {
		return nil, ErrDiscarded
	}
	if cfg.Generations < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGenerations, cfg.Generations)
	}

	result := &Result{
		Series:  make(map[string][]float64, len(r.metrics)),
		Metrics: make(map[string]float64, len(r.metrics)),
	}
	for _, m := range r.metrics {
		m.Reset()
		result.Series[m.Name()] = make([]float64, 0, cfg.Generations+1)
	}

	r.observe(result)

	for i := 0; i < cfg.Generations; i++ {
		select {
		case <-ctx.Done():
			r.logger.Info("run canceled", "generation", r.sim.Generation(), "err", ctx.Err())
			r.finish(result)
			return result, ctx.Err()
		default:
		}

		if cfg.StopWhenStable {
			r.prev = append(r.prev[:0], r.sim.Cells()...)
		}

		if err := r.step(); err != nil {
			r.failed = true
			r.finish(result)
			return result, err
		}
		result.Steps++
		r.logger.Debug("generation", "n", r.sim.Generation())

		r.observe(result)

		if cfg.StopWhenStable && slices.Equal(r.prev, r.sim.Cells()) {
			result.Stable = true
			result.StableAt = r.sim.Generation() - 1
			r.logger.Info("reached fixed point", "generation", result.StableAt)
			break
		}
	}

	r.finish(result)
	return result, nil
}

func (r *Runner[C]) step() (err error) {
	gen := r.sim.Generation() + 1
	defer func() {
		if v := recover(); v != nil {
			err = &StepError{Generation: gen, Panic: v, Wrapped: ErrRuleFailed}
		}
	}()
	r.sim.Step()
	return nil
}

func (r *Runner[C]) observe(result *Result) {
	gen, cells := r.sim.Generation(), r.sim.Cells()
	for _, m := range r.metrics {
		m.Observe(gen, cells)
		result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
	}
	for _, o := range r.observers {
		o.OnGeneration(gen, cells)
	}
}

func (r *Runner[C]) finish(result *Result) {
	result.Generation = r.sim.Generation()
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
