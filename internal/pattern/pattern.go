package pattern

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/san-kum/casim/pkg/automaton"
)

var (
	ErrOutOfBounds  = errors.New("pattern: pattern does not fit the grid")
	ErrUnknownGlyph = errors.New("pattern: unknown cell glyph")
	ErrDensity      = errors.New("pattern: density must be within [0, 1]")
)

// Parse places rows of glyphs on a width x height grid with the pattern's
// top-left corner at (offX, offY). '#', 'O', '*' and '1' are alive; '.', '0'
// and ' ' are dead.
func Parse(rows []string, width, height, offX, offY int) ([]bool, error) {
	cells := make([]bool, width*height)
	for dy, row := range rows {
		for dx, r := range row {
			var on bool
			switch r {
			case '#', 'O', '*', '1':
				on = true
			case '.', '0', ' ':
			default:
				return nil, fmt.Errorf("%w %q at row %d col %d", ErrUnknownGlyph, r, dy, dx)
			}
			x, y := offX+dx, offY+dy
			if x < 0 || x >= width || y < 0 || y >= height {
				if !on {
					continue
				}
				return nil, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, width, height)
			}
			cells[automaton.CoordToIdx(width, x, y)] = on
		}
	}
	return cells, nil
}

// Random returns a deterministic soup for seed where each cell is alive with
// probability density.
func Random(width, height int, density float64, seed int64) ([]bool, error) {
	if density < 0 || density > 1 {
		return nil, fmt.Errorf("%w: %v", ErrDensity, density)
	}
	rng := rand.New(rand.NewPCG(uint64(seed), 0))
	cells := make([]bool, width*height)
	for i := range cells {
		cells[i] = rng.Float64() < density
	}
	return cells, nil
}

// Format renders cells as rows of '#' and '.'. A non-positive width yields nil.
func Format(cells []bool, width int) []string {
	if width <= 0 {
		return nil
	}
	rows := make([]string, 0, len(cells)/width)
	var b strings.Builder
	for i, c := range cells {
		if c {
			b.WriteByte('#')
		} else {
			b.WriteByte('.')
		}
		if (i+1)%width == 0 {
			rows = append(rows, b.String())
			b.Reset()
		}
	}
	return rows
}
