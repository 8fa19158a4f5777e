package automaton

import "testing"

func TestCoordToIdx(t *testing.T) {
	tests := []struct {
		width, x, y int
		expected    int
	}{
		{4, 2, 1, 6},
		{4, 3, 3, 15},
		{4, 1, 5, 21},
		{1, 0, 7, 7},
		{10, 9, 0, 9},
	}

	for _, tt := range tests {
		if got := CoordToIdx(tt.width, tt.x, tt.y); got != tt.expected {
			t.Errorf("CoordToIdx(%d, %d, %d) = %d, want %d", tt.width, tt.x, tt.y, got, tt.expected)
		}
	}
}

func TestIdxToCoord(t *testing.T) {
	x, y := IdxToCoord(4, 15)
	if x != 3 || y != 3 {
		t.Errorf("IdxToCoord(4, 15) = (%d, %d), want (3, 3)", x, y)
	}
}

func TestRoundTripIdxCoord(t *testing.T) {
	for width := 1; width < 200; width++ {
		for idx := 0; idx < 2000; idx++ {
			x, y := IdxToCoord(width, idx)
			if x < 0 || x >= width {
				t.Fatalf("width %d idx %d: x=%d out of range", width, idx, x)
			}
			if got := CoordToIdx(width, x, y); got != idx {
				t.Fatalf("width %d: idx %d -> (%d, %d) -> %d", width, idx, x, y, got)
			}
		}
	}
}

func TestRoundTripCoordIdx(t *testing.T) {
	for width := 1; width < 60; width++ {
		for y := 0; y < 60; y++ {
			for x := 0; x < width; x++ {
				idx := CoordToIdx(width, x, y)
				gx, gy := IdxToCoord(width, idx)
				if gx != x || gy != y {
					t.Fatalf("width %d: (%d, %d) -> %d -> (%d, %d)", width, x, y, idx, gx, gy)
				}
			}
		}
	}
}
