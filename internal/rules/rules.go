package rules

import (
	"github.com/san-kum/casim/pkg/automaton"
)

func alive(c bool) bool { return c }

// Majority sets a cell when at least as many neighbors are alive as dead.
type Majority struct{}

func NewMajority() *Majority { return &Majority{} }

func (m *Majority) Apply(next *bool, n *automaton.Neighborhood[bool]) {
	trues, falses := 0, 0
	for c := range n.All() {
		if c {
			trues++
		} else {
			falses++
		}
	}
	*next = trues >= falses
}

// Threshold sets a cell once more than N neighbors are alive and otherwise
// leaves it unchanged.
type Threshold struct {
	N int
}

func NewThreshold(n int) *Threshold { return &Threshold{N: n} }

func (t *Threshold) Apply(next *bool, n *automaton.Neighborhood[bool]) {
	if n.Count(alive) > t.N {
		*next = true
	}
}

// Parity sets a cell when an odd number of neighbors are alive.
type Parity struct{}

func NewParity() *Parity { return &Parity{} }

func (p *Parity) Apply(next *bool, n *automaton.Neighborhood[bool]) {
	*next = n.Count(alive)%2 == 1
}
