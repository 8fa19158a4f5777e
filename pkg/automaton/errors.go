package automaton

import (
	"errors"
	"fmt"
)

// Construction errors.
var (
	// ErrInvalidDimensions indicates a non-positive width or height.
	ErrInvalidDimensions = errors.New("automaton: width and height must be positive")

	// ErrCellCount indicates an initial cell slice whose length is not width*height.
	ErrCellCount = errors.New("automaton: cell count does not match grid size")

	// ErrNilRule indicates a Simulation constructed without a transition rule.
	ErrNilRule = errors.New("automaton: nil transition rule")
)

// ConfigError reports a rejected construction together with the offending
// dimensions. No Simulation is returned alongside it.
type ConfigError struct {
	Width   int
	Height  int
	Cells   int
	Wrapped error
}

func (e *ConfigError) Error() string {
	if errors.Is(e.Wrapped, ErrCellCount) {
		return fmt.Sprintf("%v: got %d cells for %dx%d grid (want %d)",
			e.Wrapped, e.Cells, e.Width, e.Height, e.Width*e.Height)
	}
	return fmt.Sprintf("%v: %dx%d", e.Wrapped, e.Width, e.Height)
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}
