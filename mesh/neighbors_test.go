package mesh

import "testing"

func TestNeighborIndxRanges(t *testing.T) {
	cases := []struct {
		i, j, k, f1, f2 int
		want            int
	}{
		{-1, 0, 0, 0, 0, 0},
		{1, 0, 0, 0, 0, 4},
		{1, 0, 0, 1, 1, 7},
		{0, -1, 0, 0, 0, 8},
		{0, 1, 0, 1, 0, 13},
		{-1, -1, 0, 0, 0, 16},
		{1, 1, 0, 1, 0, 23},
		{0, 0, -1, 0, 0, 24},
		{0, 0, 1, 1, 1, 31},
		{-1, 0, -1, 0, 0, 32},
		{1, 0, 1, 1, 0, 39},
		{0, -1, -1, 0, 0, 40},
		{0, 1, 1, 1, 0, 47},
		{-1, -1, -1, 0, 0, 48},
		{1, 1, 1, 0, 0, 55},
	}
	for _, c := range cases {
		if got := NeighborIndx(c.i, c.j, c.k, c.f1, c.f2); got != c.want {
			t.Errorf("NeighborIndx(%d,%d,%d,%d,%d) = %d, want %d",
				c.i, c.j, c.k, c.f1, c.f2, got, c.want)
		}
	}
	if got := NeighborIndx(0, 0, 0, 0, 0); got != -1 {
		t.Errorf("NeighborIndx(0,0,0) = %d, want -1", got)
	}
}

func TestSlotGeometryCounts(t *testing.T) {
	cases := []struct {
		multiD, threeD, multilevel bool
		want                       int
	}{
		{false, false, false, 2},
		{false, false, true, 2},
		{true, false, false, 8},
		{true, false, true, 12},
		{true, true, false, 26},
		{true, true, true, 56},
	}
	for _, c := range cases {
		slots := SlotGeometry(c.multiD, c.threeD, c.multilevel)
		if len(slots) != c.want {
			t.Errorf("SlotGeometry(%v,%v,%v): %d slots, want %d",
				c.multiD, c.threeD, c.multilevel, len(slots), c.want)
		}
	}
}

func TestSlotGeometryUniqueAndConsistent(t *testing.T) {
	seen := make(map[int]bool)
	for _, s := range SlotGeometry(true, true, true) {
		if s.Indx < 0 || s.Indx >= NMaxNeighbors {
			t.Fatalf("slot index %d out of range", s.Indx)
		}
		if seen[s.Indx] {
			t.Fatalf("slot index %d enumerated twice", s.Indx)
		}
		seen[s.Indx] = true

		if got := NeighborIndx(s.O1, s.O2, s.O3, s.F1, s.F2); got != s.Indx {
			t.Errorf("slot (%d,%d,%d,f=%d,%d): Indx %d but NeighborIndx gives %d",
				s.O1, s.O2, s.O3, s.F1, s.F2, s.Indx, got)
		}
		isFace := (s.O1 != 0 && s.O2 == 0 && s.O3 == 0) ||
			(s.O1 == 0 && s.O2 != 0 && s.O3 == 0) ||
			(s.O1 == 0 && s.O2 == 0 && s.O3 != 0)
		if s.Face != isFace {
			t.Errorf("slot %d: Face=%v for direction (%d,%d,%d)", s.Indx, s.Face, s.O1, s.O2, s.O3)
		}
		// the mirrored direction must be a valid destination slot
		if d := NeighborIndx(-s.O1, -s.O2, -s.O3, 0, 0); d < 0 || d >= NMaxNeighbors {
			t.Errorf("slot %d: mirror slot %d out of range", s.Indx, d)
		}
	}
}
