package automaton

import (
	"log/slog"
	"math"
)

// Rule computes the next-generation value of one cell. next is seeded with
// the cell's current value before Apply is called, so a rule that only
// conditionally assigns leaves the cell unchanged otherwise. Rules must not
// retain neighbors after returning.
type Rule[C any] interface {
	Apply(next *C, neighbors *Neighborhood[C])
}

// RuleFunc adapts an ordinary function to the Rule interface.
type RuleFunc[C any] func(next *C, neighbors *Neighborhood[C])

func (f RuleFunc[C]) Apply(next *C, neighbors *Neighborhood[C]) {
	f(next, neighbors)
}

// Cloner is implemented by cell types that hold references and need a deep
// copy when a generation is seeded.
type Cloner[C any] interface {
	Clone() C
}

// Option configures a Simulation at construction.
type Option[C any] func(*Simulation[C])

// WithClone sets the function used to duplicate cells. It takes precedence
// over a Cloner implementation.
func WithClone[C any](clone func(C) C) Option[C] {
	return func(s *Simulation[C]) {
		s.clone = clone
	}
}

// Simulation is a double-buffered cellular automaton over cells of type C.
type Simulation[C any] struct {
	width, height int
	cur, next     []C
	offsets       Offsets
	rule          Rule[C]
	clone         func(C) C
	view          Neighborhood[C]
	generation    int
}

// New returns a width x height Simulation with every cell set to the zero
// value of C.
func New[C any](width, height int, rule Rule[C], offsets Offsets, opts ...Option[C]) (*Simulation[C], error) {
	if err := validate(width, height, rule); err != nil {
		return nil, err
	}
	size := width * height
	return newSimulation(width, height, rule, offsets, make([]C, size), make([]C, size), opts), nil
}

// FromCells returns a Simulation whose first generation is cells in
// row-major order. cells is copied; len(cells) must equal width*height.
func FromCells[C any](width, height int, rule Rule[C], offsets Offsets, cells []C, opts ...Option[C]) (*Simulation[C], error) {
	if err := validate(width, height, rule); err != nil {
		return nil, err
	}
	if len(cells) != width*height {
		return nil, &ConfigError{Width: width, Height: height, Cells: len(cells), Wrapped: ErrCellCount}
	}
	s := newSimulation(width, height, rule, offsets, make([]C, len(cells)), make([]C, len(cells)), opts)
	for i, c := range cells {
		s.cur[i] = s.dup(c)
		s.next[i] = s.dup(c)
	}
	return s, nil
}

func validate[C any](width, height int, rule Rule[C]) error {
	if width <= 0 || height <= 0 || width > math.MaxInt/height {
		return &ConfigError{Width: width, Height: height, Wrapped: ErrInvalidDimensions}
	}
	if rule == nil {
		return ErrNilRule
	}
	return nil
}

func newSimulation[C any](width, height int, rule Rule[C], offsets Offsets, cur, next []C, opts []Option[C]) *Simulation[C] {
	s := &Simulation[C]{
		width:   width,
		height:  height,
		cur:     cur,
		next:    next,
		offsets: offsets,
		rule:    rule,
	}
	var zero C
	if _, ok := any(zero).(Cloner[C]); ok {
		s.clone = func(c C) C { return any(c).(Cloner[C]).Clone() }
	}
	for _, opt := range opts {
		opt(s)
	}
	s.view = Neighborhood[C]{offsets: offsets, width: width, height: height}
	slog.Debug("creating simulation", "width", width, "height", height, "neighbors", len(offsets))
	return s
}

func (s *Simulation[C]) dup(c C) C {
	if s.clone != nil {
		return s.clone(c)
	}
	return c
}

// Step advances the grid by exactly one generation.
func (s *Simulation[C]) Step() {
	for idx := range s.cur {
		s.apply(idx)
	}
	s.swap()
}

// stepInOrder is Step with an explicit visiting order; order must be a
// permutation of the cell indices.
func (s *Simulation[C]) stepInOrder(order []int) {
	for _, idx := range order {
		s.apply(idx)
	}
	s.swap()
}

func (s *Simulation[C]) apply(idx int) {
	s.next[idx] = s.dup(s.cur[idx])
	// Neighbors always come from cur; next holds values written this step.
	s.view.cells = s.cur
	s.view.reset(idx)
	s.rule.Apply(&s.next[idx], &s.view)
}

func (s *Simulation[C]) swap() {
	s.cur, s.next = s.next, s.cur
	s.generation++
}

// StepUntil applies Step n times. n <= 0 does nothing.
func (s *Simulation[C]) StepUntil(n int) {
	for range n {
		s.Step()
	}
}

// Cells returns the current generation in row-major order. The slice must not
// be modified and is only valid until the next Step.
func (s *Simulation[C]) Cells() []C {
	return s.cur
}

// Snapshot returns an independent copy of the current generation.
func (s *Simulation[C]) Snapshot() []C {
	out := make([]C, len(s.cur))
	for i, c := range s.cur {
		out[i] = s.dup(c)
	}
	return out
}

func (s *Simulation[C]) Width() int  { return s.width }
func (s *Simulation[C]) Height() int { return s.height }

// Generation returns the number of completed steps.
func (s *Simulation[C]) Generation() int { return s.generation }
