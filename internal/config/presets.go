package config

import "sort"

var Presets = map[string]*Config{
	"majority": {
		Width: 3, Height: 3, Rule: "majority", Neighborhood: "von_neumann", Generations: 1,
		Init: InitConfig{Pattern: []string{".#.", "#.#", ".#."}},
	},
	"threshold": {
		Width: 3, Height: 3, Rule: "threshold", RuleParams: map[string]float64{"n": 2},
		Neighborhood: "von_neumann", Generations: 1,
		Init: InitConfig{Pattern: []string{".#.", "#.#", ".#."}},
	},
	"blinker": {
		Width: 5, Height: 5, Rule: "life", Neighborhood: "moore", Generations: 10,
		Init: InitConfig{Pattern: []string{"###"}, OffsetX: 1, OffsetY: 2},
	},
	"glider": {
		Width: 16, Height: 16, Rule: "life", Neighborhood: "moore", Generations: 40,
		Init: InitConfig{Pattern: []string{".#.", "..#", "###"}, OffsetX: 1, OffsetY: 1},
	},
	"block": {
		Width: 6, Height: 6, Rule: "life", Neighborhood: "moore", Generations: 20, StopWhenStable: true,
		Init: InitConfig{Pattern: []string{"##", "##"}, OffsetX: 2, OffsetY: 2},
	},
	"soup": {
		Width: 64, Height: 32, Rule: "life", Neighborhood: "moore", Generations: 500, Seed: 1,
		StopWhenStable: true,
		Init:           InitConfig{Density: DefaultDensity},
	},
	"replicator": {
		Width: 33, Height: 33, Rule: "parity", Neighborhood: "von_neumann", Generations: 16,
		Init: InitConfig{Pattern: []string{"#"}, OffsetX: 16, OffsetY: 16},
	},
	"highlife": {
		Width: 48, Height: 48, Rule: "B36/S23", Neighborhood: "moore", Generations: 200, Seed: 3,
		Init: InitConfig{Density: 0.3},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
