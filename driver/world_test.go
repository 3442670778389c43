package driver

import (
	"math"
	"testing"

	"github.com/notargets/goamr/input"
)

func interfaceParams() *input.Parameters {
	p := input.Defaults()
	p.Nx1, p.Nx2, p.Nx3 = 8, 8, 1
	p.Nbx1, p.Nbx2, p.Nbx3 = 2, 2, 1
	p.NRanks = 2
	p.MaxSteps = 5
	p.FinalTime = 1e9 // step-limited
	return p
}

// l2 is the volume-weighted squared norm, which explicit diffusion must not
// increase.
func l2(w *World) float64 {
	var total float64
	for _, s := range w.Sims {
		ind := s.Pk.Indcs
		for m := 0; m < s.Pk.Nmb; m++ {
			for k := ind.Ks; k <= ind.Ke; k++ {
				for j := ind.Js; j <= ind.Je; j++ {
					for i := ind.Is; i <= ind.Ie; i++ {
						v := s.U.At(m, 0, k, j, i)
						total += v * v
					}
				}
			}
		}
	}
	return total
}

func TestWorldConservesIntegral(t *testing.T) {
	w, err := NewWorld(interfaceParams())
	if err != nil {
		t.Fatal(err)
	}
	before := w.TotalIntegral(0)
	normBefore := l2(w)
	if err := w.Run(); err != nil {
		t.Fatal(err)
	}
	after := w.TotalIntegral(0)

	if math.Abs(after-before) > 1e-12*math.Abs(before) {
		t.Fatalf("integral drifted: %.15e -> %.15e", before, after)
	}
	if w.Sims[0].Step != 5 {
		t.Fatalf("took %d steps, want 5", w.Sims[0].Step)
	}
	// the interface must smear: the norm strictly decreases
	if normAfter := l2(w); normAfter >= normBefore {
		t.Fatalf("L2 norm did not decrease: %v -> %v", normBefore, normAfter)
	}
}

func TestWorldConstantIsFixedPoint(t *testing.T) {
	p := interfaceParams()
	p.Problem = "constant"
	p.MaxSteps = 3
	w, err := NewWorld(p)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Run(); err != nil {
		t.Fatal(err)
	}
	for r, s := range w.Sims {
		ind := s.Pk.Indcs
		for m := 0; m < s.Pk.Nmb; m++ {
			for j := ind.Js; j <= ind.Je; j++ {
				for i := ind.Is; i <= ind.Ie; i++ {
					if got := s.U.At(m, 0, 0, j, i); got != 1.0 {
						t.Fatalf("rank %d block %d cell (%d,%d) = %v, want exactly 1.0",
							r, m, j, i, got)
					}
				}
			}
		}
	}
}

func TestWorldFinalTimeClampsLastStep(t *testing.T) {
	p := interfaceParams()
	p.MaxSteps = 1000
	p.FinalTime = 1e-4
	w, err := NewWorld(p)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Run(); err != nil {
		t.Fatal(err)
	}
	if got := w.Sims[0].Time; math.Abs(got-p.FinalTime) > 1e-15 {
		t.Fatalf("final time %v, want %v", got, p.FinalTime)
	}
}

func TestGeometryCellCenter(t *testing.T) {
	p := interfaceParams()
	w, err := NewWorld(p)
	if err != nil {
		t.Fatal(err)
	}
	s := w.Sims[0]
	ind := s.Pk.Indcs

	dx := s.Geom.Dx(ind, 0, 0)
	if want := 1.0 / 16.0; dx != want {
		t.Fatalf("dx = %v, want %v", dx, want)
	}
	// first interior cell of block (0,0) is centered half a cell in
	x := s.Geom.CellCenter(ind, [3]int{0, 0, 0}, 0, 0, ind.Is)
	if want := dx / 2; math.Abs(x-want) > 1e-15 {
		t.Fatalf("cell center %v, want %v", x, want)
	}
	// a level-1 block halves the spacing
	if got := s.Geom.Dx(ind, 1, 0); got != dx/2 {
		t.Fatalf("level-1 dx = %v, want %v", got, dx/2)
	}
}
