package bvals

import (
	"fmt"

	"github.com/notargets/goamr/mesh"
)

// Window is one inclusive cell-index range along all three dimensions.
// Collapsed dimensions carry the degenerate range [0,0].
type Window struct {
	Is, Ie int
	Js, Je int
	Ks, Ke int
}

// Ni returns the extent along x1.
func (w Window) Ni() int { return w.Ie - w.Is + 1 }

// Nj returns the extent along x2.
func (w Window) Nj() int { return w.Je - w.Js + 1 }

// Nk returns the extent along x3.
func (w Window) Nk() int { return w.Ke - w.Ks + 1 }

// Ndat returns the number of cells in the window, 0 for an empty window.
func (w Window) Ndat() int {
	ni, nj, nk := w.Ni(), w.Nj(), w.Nk()
	if ni <= 0 || nj <= 0 || nk <= 0 {
		return 0
	}
	return ni * nj * nk
}

// Offset returns the flattened buffer position of cell (k,j,i) inside the
// window: i-il + ni*((j-jl) + nj*(k-kl)). Pack and unpack must use this exact
// order on both sides of a transfer.
func (w Window) Offset(k, j, i int) int {
	return (i - w.Is) + w.Ni()*((j-w.Js)+w.Nj()*(k-w.Ks))
}

var emptyWindow = Window{Ie: -1, Je: -1, Ke: -1}

// Windows groups the index ranges of one buffer slot: one window per
// refinement regime for cell-centered data, plus the flux-correction window
// for face slots. Buffer storage is sized to the largest of the four, so one
// allocation serves whichever regime a run-time neighbor level selects.
type Windows struct {
	Same Window // neighbor at my level
	Coar Window // neighbor coarser than me (coarse-coordinate ranges)
	Fine Window // neighbor finer than me
	Flux Window // flux correction (face slots on a multilevel mesh only)
}

// MaxNdat returns the allocation size covering every regime.
func (w Windows) MaxNdat() int {
	nd := w.Same.Ndat()
	for _, x := range []int{w.Coar.Ndat(), w.Fine.Ndat(), w.Flux.Ndat()} {
		if x > nd {
			nd = x
		}
	}
	return nd
}

// dimBounds carries the per-dimension geometry a window computation needs:
// the direction component, the tangential sub-block index, and the
// fine/coarse index bounds of this dimension.
type dimBounds struct {
	o      int
	f      int
	active bool
	is, ie int
	cs, ce int
	nx     int
}

// slotDims resolves a slot's direction and sub-block indices against the mesh
// bounds. Sub-block indices attach to the zero-direction (tangential)
// dimensions in x1,x2,x3 order, which is the pairing the slot enumeration in
// mesh.SlotGeometry uses.
func slotDims(ind mesh.Indcs, s mesh.SlotInfo) [3]dimBounds {
	d := [3]dimBounds{
		{o: s.O1, active: true, is: ind.Is, ie: ind.Ie, cs: ind.CIs, ce: ind.CIe, nx: ind.Nx1},
		{o: s.O2, active: ind.MultiD(), is: ind.Js, ie: ind.Je, cs: ind.CJs, ce: ind.CJe, nx: ind.Nx2},
		{o: s.O3, active: ind.ThreeD(), is: ind.Ks, ie: ind.Ke, cs: ind.CKs, ce: ind.CKe, nx: ind.Nx3},
	}
	fs := [2]int{s.F1, s.F2}
	nf := 0
	for i := range d {
		if d[i].o == 0 && nf < 2 {
			d[i].f = fs[nf]
			nf++
		}
	}
	return d
}

type dimRange func(d dimBounds, ng int) (int, int)

func winOf(d [3]dimBounds, ng int, f dimRange) Window {
	var w Window
	w.Is, w.Ie = f(d[0], ng)
	w.Js, w.Je = f(d[1], ng)
	w.Ks, w.Ke = f(d[2], ng)
	return w
}

// Same-level: the sender's interior skin of depth ng mirrors the receiver's
// ghost skin of depth ng.
func sendSame1(d dimBounds, ng int) (int, int) {
	switch {
	case d.o > 0:
		return d.ie - ng + 1, d.ie
	case d.o < 0:
		return d.is, d.is + ng - 1
	}
	return d.is, d.ie
}

func recvSame1(d dimBounds, ng int) (int, int) {
	switch {
	case d.o > 0:
		return d.ie + 1, d.ie + ng
	case d.o < 0:
		return d.is - ng, d.is - 1
	}
	return d.is, d.ie
}

// Neighbor coarser, send side: the sender restricts on the fly, so its window
// is expressed in its own coarse coordinates: ng coarse cells deep, full
// coarse extent tangentially (the sender's whole face is half the receiver's).
func sendCoar1(d dimBounds, ng int) (int, int) {
	if !d.active {
		return 0, 0
	}
	switch {
	case d.o > 0:
		return d.ce - ng + 1, d.ce
	case d.o < 0:
		return d.cs, d.cs + ng - 1
	}
	return d.cs, d.ce
}

// Neighbor coarser, receive side: incoming values are coarse, each broadcast
// into 2^d fine ghost cells on unpack; the window addresses the ghost region
// in the receiver's coarse coordinates, ng/2 deep.
func recvCoar1(d dimBounds, ng int) (int, int) {
	if !d.active {
		return 0, 0
	}
	switch {
	case d.o > 0:
		return d.ce + 1, d.ce + ng/2
	case d.o < 0:
		return d.cs - ng/2, d.cs - 1
	}
	return d.cs, d.ce
}

// Neighbor finer, send side: the sender's own cells covering the fine
// neighbor's ghost zone, ng/2 deep, with tangential halves selected by the
// sub-block index.
func sendFine1(d dimBounds, ng int) (int, int) {
	if !d.active {
		return 0, 0
	}
	switch {
	case d.o > 0:
		return d.ie - ng/2 + 1, d.ie
	case d.o < 0:
		return d.is, d.is + ng/2 - 1
	}
	if d.f == 0 {
		return d.is, d.is + d.nx/2 - 1
	}
	return d.is + d.nx/2, d.ie
}

// Neighbor finer, receive side: restricted data lands directly in the ghost
// skin, tangential halves by sub-block index.
func recvFine1(d dimBounds, ng int) (int, int) {
	if !d.active {
		return 0, 0
	}
	switch {
	case d.o > 0:
		return d.ie + 1, d.ie + ng
	case d.o < 0:
		return d.is - ng, d.is - 1
	}
	if d.f == 0 {
		return d.is, d.is + d.nx/2 - 1
	}
	return d.is + d.nx/2, d.ie
}

// Flux, send side (the finer block): one coarse face index along the normal,
// full coarse extent tangentially.
func sendFlux1(d dimBounds, ng int) (int, int) {
	if !d.active {
		return 0, 0
	}
	switch {
	case d.o > 0:
		return d.ce + 1, d.ce + 1
	case d.o < 0:
		return d.cs, d.cs
	}
	return d.cs, d.ce
}

// Flux, receive side (the coarser block): its own boundary face, tangential
// halves by sub-block index.
func recvFlux1(d dimBounds, ng int) (int, int) {
	if !d.active {
		return 0, 0
	}
	switch {
	case d.o > 0:
		return d.ie + 1, d.ie + 1
	case d.o < 0:
		return d.is, d.is
	}
	if d.f == 0 {
		return d.is, d.is + d.nx/2 - 1
	}
	return d.is + d.nx/2, d.ie
}

// SendWindows computes the cell windows a block packs from when sending
// through the given slot, one per refinement regime. Pure function of mesh
// geometry and slot direction; it must be evaluated with the same slot
// enumeration the receiving side uses.
func SendWindows(ind mesh.Indcs, s mesh.SlotInfo, multilevel bool) Windows {
	d := slotDims(ind, s)
	w := Windows{
		Same: winOf(d, ind.Ng, sendSame1),
		Coar: emptyWindow, Fine: emptyWindow, Flux: emptyWindow,
	}
	if multilevel {
		w.Coar = winOf(d, ind.Ng, sendCoar1)
		w.Fine = winOf(d, ind.Ng, sendFine1)
		if s.Face {
			w.Flux = winOf(d, ind.Ng, sendFlux1)
		}
	}
	return w
}

// RecvWindows computes the destination cell windows a block unpacks into for
// the given slot, one per refinement regime.
func RecvWindows(ind mesh.Indcs, s mesh.SlotInfo, multilevel bool) Windows {
	d := slotDims(ind, s)
	w := Windows{
		Same: winOf(d, ind.Ng, recvSame1),
		Coar: emptyWindow, Fine: emptyWindow, Flux: emptyWindow,
	}
	if multilevel {
		w.Coar = winOf(d, ind.Ng, recvCoar1)
		w.Fine = winOf(d, ind.Ng, recvFine1)
		if s.Face {
			w.Flux = winOf(d, ind.Ng, recvFlux1)
		}
	}
	return w
}

// checkPairing verifies that every window a sender fills through slot s has a
// size-identical counterpart on the mirror slot of the receiving block. A
// mismatch means the slot enumeration or mesh geometry is inconsistent, which
// is a fatal topology error.
func checkPairing(ind mesh.Indcs, s mesh.SlotInfo, multilevel bool) error {
	mir := s
	mir.O1, mir.O2, mir.O3 = -s.O1, -s.O2, -s.O3
	sw := SendWindows(ind, s, multilevel)
	rw := RecvWindows(ind, mir, multilevel)

	pairs := []struct {
		name string
		a, b Window
	}{
		{"same", sw.Same, rw.Same},
		{"coar/fine", sw.Coar, rw.Fine},
		{"fine/coar", sw.Fine, rw.Coar},
		{"flux", sw.Flux, rw.Flux},
	}
	for _, p := range pairs {
		if p.a.Ni() != p.b.Ni() || p.a.Nj() != p.b.Nj() || p.a.Nk() != p.b.Nk() {
			return fmt.Errorf("slot %d %s windows disagree: send (%d,%d,%d) recv (%d,%d,%d)",
				s.Indx, p.name, p.a.Ni(), p.a.Nj(), p.a.Nk(), p.b.Ni(), p.b.Nj(), p.b.Nk())
		}
	}
	return nil
}
