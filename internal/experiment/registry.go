package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/casim/internal/rules"
	"github.com/san-kum/casim/pkg/automaton"
)

var (
	ErrUnknownRule         = errors.New("experiment: unknown rule")
	ErrUnknownNeighborhood = errors.New("experiment: unknown neighborhood")
)

// Moore is the 8-connected neighborhood in reading order.
var Moore = automaton.Offsets{
	{DX: -1, DY: -1}, {DX: 0, DY: -1}, {DX: 1, DY: -1},
	{DX: -1, DY: 0}, {DX: 1, DY: 0},
	{DX: -1, DY: 1}, {DX: 0, DY: 1}, {DX: 1, DY: 1},
}

type RuleFactory func(params map[string]float64) automaton.Rule[bool]

type Registry struct {
	rules         map[string]RuleFactory
	neighborhoods map[string]automaton.Offsets
}

func NewRegistry() *Registry {
	r := &Registry{
		rules:         make(map[string]RuleFactory),
		neighborhoods: make(map[string]automaton.Offsets),
	}

	r.rules["majority"] = func(map[string]float64) automaton.Rule[bool] { return rules.NewMajority() }
	r.rules["threshold"] = func(params map[string]float64) automaton.Rule[bool] {
		n, ok := params["n"]
		if !ok {
			n = 2
		}
		return rules.NewThreshold(int(n))
	}
	r.rules["parity"] = func(map[string]float64) automaton.Rule[bool] { return rules.NewParity() }
	r.rules["life"] = func(map[string]float64) automaton.Rule[bool] { return rules.Conway() }

	r.neighborhoods["von_neumann"] = automaton.VonNeumann
	r.neighborhoods["moore"] = Moore

	return r
}

// RegisterRule adds or replaces a named rule.
func (r *Registry) RegisterRule(name string, fn RuleFactory) {
	if name == "" || fn == nil {
		return
	}
	r.rules[name] = fn
}

// GetRule resolves a registered rule name, falling back to a life-like rule
// string such as "B36/S23".
func (r *Registry) GetRule(name string, params map[string]float64) (automaton.Rule[bool], error) {
	if fn, ok := r.rules[name]; ok {
		return fn(params), nil
	}
	if l, err := rules.ParseLifeLike(name); err == nil {
		return l, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownRule, name)
}

func (r *Registry) GetNeighborhood(name string) (automaton.Offsets, error) {
	offsets, ok := r.neighborhoods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNeighborhood, name)
	}
	return offsets, nil
}

func (r *Registry) ListRules() []string {
	return sortedKeys(r.rules)
}

func (r *Registry) ListNeighborhoods() []string {
	return sortedKeys(r.neighborhoods)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
