package automaton

import "iter"

// Offset is a relative coordinate from a cell to one of its neighbors.
type Offset struct {
	DX, DY int
}

// Offsets is an ordered neighborhood table. Order is preserved when
// neighbors are produced and duplicate entries yield duplicate neighbors.
type Offsets []Offset

// VonNeumann is the 4-connected neighborhood: left, up, right, down.
var VonNeumann = Offsets{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}

// Neighborhood is a single-pass view over the in-bounds neighbors of one cell
// in the current generation. A Neighborhood is only valid for the duration of
// the Rule invocation it was passed to.
type Neighborhood[C any] struct {
	offsets       Offsets
	width, height int
	x, y          int
	cells         []C
	pos           int
}

// NewNeighborhood builds a view of the neighbors of cell idx in cells, a
// row-major buffer of a width x height grid.
func NewNeighborhood[C any](offsets Offsets, width, height, idx int, cells []C) *Neighborhood[C] {
	n := &Neighborhood[C]{offsets: offsets, width: width, height: height, cells: cells}
	n.reset(idx)
	return n
}

func (n *Neighborhood[C]) reset(idx int) {
	n.x, n.y = IdxToCoord(n.width, idx)
	n.pos = 0
}

// Next returns the next in-bounds neighbor. It reports false once the
// offset table is exhausted and keeps doing so on later calls.
func (n *Neighborhood[C]) Next() (C, bool) {
	for n.pos < len(n.offsets) {
		o := n.offsets[n.pos]
		n.pos++
		nx, ny := n.x+o.DX, n.y+o.DY
		if !inBounds(n.width, n.height, nx, ny) {
			continue
		}
		return n.cells[CoordToIdx(n.width, nx, ny)], true
	}
	var zero C
	return zero, false
}

// All yields the remaining neighbors. Ranging over it consumes the view.
func (n *Neighborhood[C]) All() iter.Seq[C] {
	return func(yield func(C) bool) {
		for {
			c, ok := n.Next()
			if !ok || !yield(c) {
				return
			}
		}
	}
}

// Count consumes the remaining neighbors and returns how many satisfy pred.
func (n *Neighborhood[C]) Count(pred func(C) bool) int {
	count := 0
	for {
		c, ok := n.Next()
		if !ok {
			return count
		}
		if pred(c) {
			count++
		}
	}
}
