package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/casim/internal/config"
	"github.com/san-kum/casim/internal/experiment"
	"github.com/san-kum/casim/internal/export"
	"github.com/san-kum/casim/internal/runner"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario. Config, when present, replaces
// the preset; Generations and Seed override whichever was chosen.
type ScenarioStep struct {
	Preset      string         `yaml:"preset"`
	Config      *config.Config `yaml:"config"`
	Generations int            `yaml:"generations"`
	Seed        int64          `yaml:"seed"`
	SaveAs      string         `yaml:"save_as"`
}

// UnmarshalYAML decodes an inline config over config.DefaultConfig so that a
// step only needs to name the fields it changes.
func (s *ScenarioStep) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Preset      string     `yaml:"preset"`
		Config      *yaml.Node `yaml:"config"`
		Generations int        `yaml:"generations"`
		Seed        int64      `yaml:"seed"`
		SaveAs      string     `yaml:"save_as"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	*s = ScenarioStep{
		Preset:      raw.Preset,
		Generations: raw.Generations,
		Seed:        raw.Seed,
		SaveAs:      raw.SaveAs,
	}
	if raw.Config != nil {
		cfg := config.DefaultConfig()
		if err := raw.Config.Decode(cfg); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		s.Config = cfg
	}
	return nil
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

func (s ScenarioStep) resolve() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case s.Config != nil:
		cfg = s.Config.Clone()
	case s.Preset != "":
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	default:
		cfg = config.DefaultConfig()
	}
	if s.Generations > 0 {
		cfg.Generations = s.Generations
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	return cfg, cfg.Validate()
}

// RunScenario executes all steps in a scenario. Results of completed steps
// are returned alongside the first error.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry) ([]runner.Result, error) {
	results := make([]runner.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		slog.Info("running scenario step", "step", i+1, "of", len(scenario.Steps), "rule", cfg.Rule)

		exp := experiment.New(cfg)
		if err := exp.Setup(registry); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		results = append(results, *result)

		if step.SaveAs != "" {
			report := export.NewReport(cfg.Rule, cfg.Neighborhood, cfg.Width, cfg.Height, cfg.Seed, result)
			if err := export.ExportJSON(step.SaveAs, report); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
	}

	return results, nil
}
