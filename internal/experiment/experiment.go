package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/san-kum/casim/internal/config"
	"github.com/san-kum/casim/internal/metrics"
	"github.com/san-kum/casim/internal/pattern"
	"github.com/san-kum/casim/internal/runner"
	"github.com/san-kum/casim/pkg/automaton"
)

var ErrNotSetup = errors.New("experiment: not setup")

type Experiment struct {
	cfg    *config.Config
	runner *runner.Runner[bool]
	logger *slog.Logger
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg, logger: slog.Default()}
}

func (e *Experiment) SetLogger(l *slog.Logger) {
	if l != nil {
		e.logger = l
	}
}

// Setup builds the simulation described by the config and attaches the
// default metrics.
func (e *Experiment) Setup(reg *Registry) error {
	sim, err := Build(e.cfg, reg)
	if err != nil {
		return err
	}
	e.runner = runner.New(sim)
	e.runner.SetLogger(e.logger)
	for _, m := range DefaultMetrics() {
		e.runner.AddMetric(m)
	}
	e.logger.Debug("experiment ready", "rule", e.cfg.Rule, "width", e.cfg.Width, "height", e.cfg.Height)
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*runner.Result, error) {
	if e.runner == nil {
		return nil, ErrNotSetup
	}
	return e.runner.Run(ctx, runner.Config{
		Generations:    e.cfg.Generations,
		StopWhenStable: e.cfg.StopWhenStable,
	})
}

// Runner returns the underlying runner for adding observers.
func (e *Experiment) Runner() *runner.Runner[bool] {
	return e.runner
}

func (e *Experiment) Config() *config.Config {
	return e.cfg
}

func DefaultMetrics() []runner.Metric[bool] {
	return []runner.Metric[bool]{
		metrics.NewPopulation(),
		metrics.NewDensity(),
		metrics.NewActivity(),
	}
}

// Build validates cfg and constructs a Simulation from it without running it.
func Build(cfg *config.Config, reg *Registry) (*automaton.Simulation[bool], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rule, err := reg.GetRule(cfg.Rule, cfg.RuleParams)
	if err != nil {
		return nil, err
	}

	offsets, err := Offsets(cfg, reg)
	if err != nil {
		return nil, err
	}

	cells, err := InitialCells(cfg)
	if err != nil {
		return nil, err
	}

	return automaton.FromCells(cfg.Width, cfg.Height, rule, offsets, cells)
}

// Offsets returns the custom offset table from cfg when present, otherwise
// the named neighborhood.
func Offsets(cfg *config.Config, reg *Registry) (automaton.Offsets, error) {
	if len(cfg.Offsets) == 0 {
		return reg.GetNeighborhood(cfg.Neighborhood)
	}
	offsets := make(automaton.Offsets, 0, len(cfg.Offsets))
	for i, o := range cfg.Offsets {
		if len(o) != 2 {
			return nil, fmt.Errorf("%w: entry %d", config.ErrInvalidOffset, i)
		}
		offsets = append(offsets, automaton.Offset{DX: o[0], DY: o[1]})
	}
	return offsets, nil
}

func InitialCells(cfg *config.Config) ([]bool, error) {
	if len(cfg.Init.Pattern) > 0 {
		return pattern.Parse(cfg.Init.Pattern, cfg.Width, cfg.Height, cfg.Init.OffsetX, cfg.Init.OffsetY)
	}
	return pattern.Random(cfg.Width, cfg.Height, cfg.Init.Density, cfg.Seed)
}
