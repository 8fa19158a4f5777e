package experiment

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/san-kum/casim/internal/config"
	"github.com/san-kum/casim/internal/pattern"
	"github.com/san-kum/casim/pkg/automaton"
)

func TestRegistry_Rules(t *testing.T) {
	reg := NewRegistry()

	for _, name := range []string{"majority", "threshold", "parity", "life", "B36/S23"} {
		if _, err := reg.GetRule(name, nil); err != nil {
			t.Errorf("GetRule(%q) failed: %v", name, err)
		}
	}

	if _, err := reg.GetRule("nope", nil); !errors.Is(err, ErrUnknownRule) {
		t.Errorf("expected ErrUnknownRule, got %v", err)
	}

	want := []string{"life", "majority", "parity", "threshold"}
	if got := reg.ListRules(); !slices.Equal(got, want) {
		t.Errorf("ListRules() = %v, want %v", got, want)
	}
}

func TestRegistry_RegisterRule(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterRule("", nil)
	reg.RegisterRule("off", func(map[string]float64) automaton.Rule[bool] {
		return automaton.RuleFunc[bool](func(next *bool, n *automaton.Neighborhood[bool]) { *next = false })
	})
	if _, err := reg.GetRule("off", nil); err != nil {
		t.Errorf("registered rule not found: %v", err)
	}
	if len(reg.ListRules()) != 5 {
		t.Errorf("expected 5 rules, got %v", reg.ListRules())
	}
}

func TestRegistry_Neighborhoods(t *testing.T) {
	reg := NewRegistry()

	vn, err := reg.GetNeighborhood("von_neumann")
	if err != nil || len(vn) != 4 {
		t.Errorf("von_neumann: %v, %v", vn, err)
	}
	moore, err := reg.GetNeighborhood("moore")
	if err != nil || len(moore) != 8 {
		t.Errorf("moore: %v, %v", moore, err)
	}
	if _, err := reg.GetNeighborhood("hex"); !errors.Is(err, ErrUnknownNeighborhood) {
		t.Errorf("expected ErrUnknownNeighborhood, got %v", err)
	}
}

func TestOffsets_Custom(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Offsets = [][]int{{0, -1}, {0, 1}}

	offsets, err := Offsets(cfg, NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	want := automaton.Offsets{{DX: 0, DY: -1}, {DX: 0, DY: 1}}
	if !slices.Equal(offsets, want) {
		t.Errorf("got %v, want %v", offsets, want)
	}

	cfg.Offsets = [][]int{{1, 2, 3}}
	if _, err := Offsets(cfg, NewRegistry()); !errors.Is(err, config.ErrInvalidOffset) {
		t.Errorf("expected ErrInvalidOffset, got %v", err)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		preset   string
		expected []string
	}{
		{"majority", []string{"#.#", ".#.", "#.#"}},
		{"threshold", []string{".#.", "###", ".#."}},
		{"blinker", []string{".....", ".....", ".###.", ".....", "....."}},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			exp := New(config.GetPreset(tt.preset))
			if err := exp.Setup(NewRegistry()); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			result, err := exp.Run(context.Background())
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if result.Steps != exp.Config().Generations {
				t.Errorf("expected %d steps, got %d", exp.Config().Generations, result.Steps)
			}
			sim := exp.Runner().Simulation()
			if got := pattern.Format(sim.Cells(), sim.Width()); !slices.Equal(got, tt.expected) {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPreset_BlockIsStable(t *testing.T) {
	exp := New(config.GetPreset("block"))
	if err := exp.Setup(NewRegistry()); err != nil {
		t.Fatal(err)
	}
	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !result.Stable || result.StableAt != 0 {
		t.Errorf("expected block to be stable at generation 0, got %+v", result)
	}
	if result.Metrics["population"] != 4 {
		t.Errorf("expected population 4, got %v", result.Metrics["population"])
	}
}

func TestPreset_GliderKeepsPopulation(t *testing.T) {
	cfg := config.GetPreset("glider")
	cfg.Generations = 20
	exp := New(cfg)
	if err := exp.Setup(NewRegistry()); err != nil {
		t.Fatal(err)
	}
	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range result.Series["population"] {
		if p != 5 {
			t.Fatalf("generation %d: population %v, want 5", i, p)
		}
	}
}

func TestExperiment_Errors(t *testing.T) {
	if _, err := New(config.DefaultConfig()).Run(context.Background()); !errors.Is(err, ErrNotSetup) {
		t.Errorf("expected ErrNotSetup, got %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Rule = "unknown"
	if err := New(cfg).Setup(NewRegistry()); !errors.Is(err, ErrUnknownRule) {
		t.Errorf("expected ErrUnknownRule, got %v", err)
	}

	cfg = config.DefaultConfig()
	cfg.Width = 0
	if err := New(cfg).Setup(NewRegistry()); !errors.Is(err, config.ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}
}

func TestBuild_OverflowingArea(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Width, cfg.Height = 3<<61, 2

	sim, err := Build(cfg, NewRegistry())
	if !errors.Is(err, config.ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
	if sim != nil {
		t.Error("expected no simulation on error")
	}
}

func TestInitialCells_RandomIsSeeded(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 99
	a, err := InitialCells(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := InitialCells(cfg)
	if !slices.Equal(a, b) {
		t.Error("same seed produced different initial cells")
	}
	if len(a) != cfg.Width*cfg.Height {
		t.Errorf("expected %d cells, got %d", cfg.Width*cfg.Height, len(a))
	}
}

func TestApplyParam(t *testing.T) {
	cfg := config.GetPreset("glider")

	if err := ApplyParam(cfg, "density", 0.2); err != nil {
		t.Fatal(err)
	}
	if cfg.Init.Density != 0.2 || cfg.Init.Pattern != nil {
		t.Errorf("density should replace the pattern, got %+v", cfg.Init)
	}

	if err := ApplyParam(cfg, "generations", 7); err != nil {
		t.Fatal(err)
	}
	if cfg.Generations != 7 {
		t.Errorf("expected 7 generations, got %d", cfg.Generations)
	}

	if err := ApplyParam(cfg, "n", 3); err != nil {
		t.Fatal(err)
	}
	if cfg.RuleParams["n"] != 3 {
		t.Errorf("expected rule param n=3, got %v", cfg.RuleParams)
	}

	if err := ApplyParam(cfg, "", 1); err == nil {
		t.Error("expected error for empty name")
	}
}
