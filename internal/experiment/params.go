package experiment

import (
	"fmt"

	"github.com/san-kum/casim/internal/config"
)

// ApplyParam sets a tunable value on cfg. "density" switches the first
// generation to a random soup, "generations" sets the run length, and any
// other name is stored as a rule parameter.
func ApplyParam(cfg *config.Config, name string, value float64) error {
	switch name {
	case "":
		return fmt.Errorf("experiment: empty parameter name")
	case "density":
		cfg.Init.Density = value
		cfg.Init.Pattern = nil
	case "generations":
		cfg.Generations = int(value)
	default:
		if cfg.RuleParams == nil {
			cfg.RuleParams = make(map[string]float64)
		}
		cfg.RuleParams[name] = value
	}
	return nil
}
