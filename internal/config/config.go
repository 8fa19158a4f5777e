package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth        = 64
	DefaultHeight       = 32
	DefaultGenerations  = 100
	DefaultDensity      = 0.35
	DefaultRule         = "life"
	DefaultNeighborhood = "moore"
)

var (
	ErrInvalidSize        = errors.New("config: width and height must be positive")
	ErrInvalidGenerations = errors.New("config: generations must not be negative")
	ErrInvalidDensity     = errors.New("config: density must be within [0, 1]")
	ErrMissingRule        = errors.New("config: rule is required")
	ErrInvalidOffset      = errors.New("config: offsets must be [dx, dy] pairs")
)

type Config struct {
	Width          int                `yaml:"width"`
	Height         int                `yaml:"height"`
	Rule           string             `yaml:"rule"`
	RuleParams     map[string]float64 `yaml:"rule_params,omitempty"`
	Neighborhood   string             `yaml:"neighborhood"`
	Offsets        [][]int            `yaml:"offsets,omitempty"`
	Generations    int                `yaml:"generations"`
	Seed           int64              `yaml:"seed"`
	StopWhenStable bool               `yaml:"stop_when_stable"`
	Init           InitConfig         `yaml:"init"`
}

// InitConfig selects the first generation: Pattern rows when present,
// otherwise a random soup of the given density.
type InitConfig struct {
	Density float64  `yaml:"density"`
	Pattern []string `yaml:"pattern,omitempty"`
	OffsetX int      `yaml:"offset_x"`
	OffsetY int      `yaml:"offset_y"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Rule:         DefaultRule,
		Neighborhood: DefaultNeighborhood,
		Generations:  DefaultGenerations,
		Init: InitConfig{
			Density: DefaultDensity,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 || c.Width > math.MaxInt/c.Height {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if c.Generations < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidGenerations, c.Generations)
	}
	if c.Init.Density < 0 || c.Init.Density > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidDensity, c.Init.Density)
	}
	if c.Rule == "" {
		return ErrMissingRule
	}
	for i, o := range c.Offsets {
		if len(o) != 2 {
			return fmt.Errorf("%w: entry %d has %d values", ErrInvalidOffset, i, len(o))
		}
	}
	return nil
}

// Clone returns a deep copy so presets can be customized without mutating
// the shared table.
func (c *Config) Clone() *Config {
	out := *c
	if c.RuleParams != nil {
		out.RuleParams = make(map[string]float64, len(c.RuleParams))
		for k, v := range c.RuleParams {
			out.RuleParams[k] = v
		}
	}
	if c.Offsets != nil {
		out.Offsets = make([][]int, len(c.Offsets))
		for i, o := range c.Offsets {
			out.Offsets[i] = append([]int(nil), o...)
		}
	}
	if c.Init.Pattern != nil {
		out.Init.Pattern = append([]string(nil), c.Init.Pattern...)
	}
	return &out
}
