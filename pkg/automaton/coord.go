package automaton

// CoordToIdx returns the row-major index of (x, y) in a grid of the given width.
// x is expected in [0, width); out-of-range values produce an index that
// belongs to another row.
func CoordToIdx(width, x, y int) int {
	return y*width + x
}

// IdxToCoord is the inverse of CoordToIdx. width must be positive.
func IdxToCoord(width, idx int) (x, y int) {
	return idx % width, idx / width
}

func inBounds(width, height, x, y int) bool {
	return x >= 0 && x < width && y >= 0 && y < height
}
