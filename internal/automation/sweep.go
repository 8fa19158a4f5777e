package automation

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"

	"github.com/san-kum/casim/internal/config"
	"github.com/san-kum/casim/internal/experiment"
	"github.com/san-kum/casim/internal/runner"
)

var ErrSweepSteps = errors.New("automation: sweep needs at least one step")

// ParameterSweep runs Base once per evenly spaced value of Param in
// [ParamMin, ParamMax].
type ParameterSweep struct {
	Base     *config.Config
	Param    string
	ParamMin float64
	ParamMax float64
	NumSteps int
}

// SweepResult holds the outcome of one sweep point
type SweepResult struct {
	ParamValue      float64
	FinalPopulation float64
	PeakPopulation  float64
	Generation      int
	Stable          bool
	StableAt        int
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, ErrSweepSteps
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	for i := range sweep.NumSteps {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := sweep.Base.Clone()
		if err := experiment.ApplyParam(cfg, sweep.Param, paramVal); err != nil {
			return results, err
		}

		result, err := runOnce(ctx, cfg, registry)
		if err != nil {
			return results, err
		}

		results = append(results, SweepResult{
			ParamValue:      paramVal,
			FinalPopulation: result.Metrics["population"],
			PeakPopulation:  peak(result.Series["population"]),
			Generation:      result.Generation,
			Stable:          result.Stable,
			StableAt:        result.StableAt,
		})

		slog.Debug("sweep point", "index", i+1, "of", sweep.NumSteps, sweep.Param, paramVal)
	}

	return results, nil
}

// MonteCarloConfig runs Base NumTrials times with seeds drawn from Seed.
// Every trial is a random soup; a Base without a density uses
// config.DefaultDensity.
type MonteCarloConfig struct {
	Base      *config.Config
	NumTrials int
	Seed      uint64
}

// MonteCarloResult holds the outcome of one trial
type MonteCarloResult struct {
	TrialID         int
	Seed            int64
	FinalPopulation float64
	Stable          bool
	StableAt        int
}

// RunMonteCarlo executes multiple trials of random soups
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry) ([]MonteCarloResult, error) {
	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	for trial := range cfg.NumTrials {
		trialCfg := cfg.Base.Clone()
		trialCfg.Seed = rng.Int64()
		trialCfg.Init.Pattern = nil
		if trialCfg.Init.Density == 0 {
			trialCfg.Init.Density = config.DefaultDensity
		}

		result, err := runOnce(ctx, trialCfg, registry)
		if err != nil {
			return results, err
		}

		results = append(results, MonteCarloResult{
			TrialID:         trial,
			Seed:            trialCfg.Seed,
			FinalPopulation: result.Metrics["population"],
			Stable:          result.Stable,
			StableAt:        result.StableAt,
		})

		if (trial+1)%10 == 0 {
			slog.Info("monte carlo progress", "done", trial+1, "trials", cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats counts trials that did and did not reach a fixed point
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}

func runOnce(ctx context.Context, cfg *config.Config, registry *experiment.Registry) (*runner.Result, error) {
	exp := experiment.New(cfg)
	if err := exp.Setup(registry); err != nil {
		return nil, err
	}
	return exp.Run(ctx)
}

func peak(series []float64) float64 {
	var p float64
	for _, v := range series {
		p = max(p, v)
	}
	return p
}
