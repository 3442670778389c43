package mesh

import "testing"

func TestNewIndcsBounds(t *testing.T) {
	ind, err := NewIndcs(8, 4, 1, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	if ind.Is != 2 || ind.Ie != 9 {
		t.Errorf("x1 bounds [%d,%d], want [2,9]", ind.Is, ind.Ie)
	}
	if ind.Js != 2 || ind.Je != 5 {
		t.Errorf("x2 bounds [%d,%d], want [2,5]", ind.Js, ind.Je)
	}
	if ind.Ks != 0 || ind.Ke != 0 {
		t.Errorf("collapsed x3 bounds [%d,%d], want [0,0]", ind.Ks, ind.Ke)
	}
	if ind.Ncells1() != 12 || ind.Ncells2() != 8 || ind.Ncells3() != 1 {
		t.Errorf("padded extents (%d,%d,%d), want (12,8,1)", ind.Ncells1(), ind.Ncells2(), ind.Ncells3())
	}
	if ind.NDim() != 2 {
		t.Errorf("NDim = %d, want 2", ind.NDim())
	}
}

func TestNewIndcsMultilevelCoarseBounds(t *testing.T) {
	ind, err := NewIndcs(8, 8, 8, 2, true)
	if err != nil {
		t.Fatal(err)
	}
	if ind.CNx1 != 4 || ind.CNx2 != 4 || ind.CNx3 != 4 {
		t.Errorf("coarse counts (%d,%d,%d), want (4,4,4)", ind.CNx1, ind.CNx2, ind.CNx3)
	}
	if ind.CIs != 2 || ind.CIe != 5 {
		t.Errorf("coarse x1 bounds [%d,%d], want [2,5]", ind.CIs, ind.CIe)
	}
	// coarse cell ci maps to fine pair starting at Is + 2*(ci-CIs)
	if fi := ind.Is + 2*(ind.CIe+1-ind.CIs); fi != ind.Ie+1 {
		t.Errorf("first coarse ghost maps to fine %d, want %d", fi, ind.Ie+1)
	}
}

func TestNewIndcsRejectsInvalid(t *testing.T) {
	cases := []struct {
		name            string
		nx1, nx2, nx3   int
		ng              int
		multilevel      bool
	}{
		{"nx1 too small", 1, 1, 1, 2, false},
		{"x3 without x2", 8, 1, 8, 2, false},
		{"zero ghosts", 8, 8, 1, 0, false},
		{"ghosts exceed interior", 4, 4, 1, 5, false},
		{"odd ghosts multilevel", 8, 8, 1, 3, true},
		{"odd cells multilevel", 6, 7, 1, 2, true},
		{"2ng over nx multilevel", 4, 4, 1, 4, true},
	}
	for _, c := range cases {
		if _, err := NewIndcs(c.nx1, c.nx2, c.nx3, c.ng, c.multilevel); err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}
