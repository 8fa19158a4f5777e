package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/casim/pkg/automaton"
)

var ErrInvalidRuleString = errors.New("rules: invalid life-like rule string")

// LifeLike is an outer-totalistic rule: a dead cell is born when its alive
// neighbor count is in Birth, a live cell survives when it is in Survive.
type LifeLike struct {
	Birth   [9]bool
	Survive [9]bool
}

// Conway returns B3/S23.
func Conway() *LifeLike {
	l, _ := ParseLifeLike("B3/S23")
	return l
}

// ParseLifeLike parses rule strings of the form "B36/S23". Counts above 8
// are rejected.
func ParseLifeLike(s string) (*LifeLike, error) {
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(s)), "/")
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "B") || !strings.HasPrefix(parts[1], "S") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRuleString, s)
	}
	l := &LifeLike{}
	if err := fillCounts(&l.Birth, parts[0][1:]); err != nil {
		return nil, fmt.Errorf("%w: %q", err, s)
	}
	if err := fillCounts(&l.Survive, parts[1][1:]); err != nil {
		return nil, fmt.Errorf("%w: %q", err, s)
	}
	return l, nil
}

func fillCounts(dst *[9]bool, digits string) error {
	for _, r := range digits {
		if r < '0' || r > '8' {
			return ErrInvalidRuleString
		}
		dst[r-'0'] = true
	}
	return nil
}

func (l *LifeLike) Apply(next *bool, n *automaton.Neighborhood[bool]) {
	count := min(n.Count(alive), 8)
	if *next {
		*next = l.Survive[count]
	} else {
		*next = l.Birth[count]
	}
}

func (l *LifeLike) String() string {
	var b strings.Builder
	b.WriteByte('B')
	for i, on := range l.Birth {
		if on {
			b.WriteByte(byte('0' + i))
		}
	}
	b.WriteString("/S")
	for i, on := range l.Survive {
		if on {
			b.WriteByte(byte('0' + i))
		}
	}
	return b.String()
}
