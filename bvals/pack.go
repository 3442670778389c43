package bvals

import (
	"fmt"

	"github.com/notargets/goamr/kernel"
	"github.com/notargets/goamr/mesh"
)

// PackAndSend fills the send staging for every occupied slot from u and posts
// the sends. Same-rank neighbors are served by a direct copy into the
// destination block's receive staging instead of a transport message. u is the
// conserved-variable array of the pack and is not modified.
func (b *BoundaryValues) PackAndSend(u *mesh.Array5) (TaskStatus, error) {
	if u.Nmb != b.pk.Nmb || u.Nvar != b.nvar {
		return TaskFail, fmt.Errorf("array shape (%d,%d) does not match pack (%d,%d)",
			u.Nmb, u.Nvar, b.pk.Nmb, b.nvar)
	}

	nslots := len(b.slots)
	kernel.ParFor(b.pk.Nmb*nslots, func(idx int) {
		m, sb := idx/nslots, b.slots[idx%nslots]
		nb := b.pk.Nghbr[m][sb.Info.Indx]
		if nb.GID < 0 {
			return
		}
		b.packVars(u, m, sb, nb)
	})

	for _, sb := range b.slots {
		for m := 0; m < b.pk.Nmb; m++ {
			nb := b.pk.Nghbr[m][sb.Info.Indx]
			if nb.GID < 0 {
				continue
			}
			w := sb.sendWindow(b.pk.Levs[m], nb.Lev)
			payload := sb.VarsSend[m][:b.nvar*w.Ndat()]
			tlid := b.pk.LocalID(nb.GID, nb.Rank)

			if nb.Rank == b.pk.MyRank {
				tsb := b.bySlot[nb.Dest]
				copy(tsb.VarsRecv[tlid], payload)
				tsb.VarsStat[tlid] = CommReceived
				continue
			}
			req, err := b.tp.Isend(payload, nb.Rank, Tag(tlid, nb.Dest, KeyVars))
			if err != nil {
				return TaskFail, fmt.Errorf("send block %d slot %d: %w", m, sb.Info.Indx, err)
			}
			sb.VarsSendReq[m] = req
		}
	}
	return TaskComplete, nil
}

// packVars stages one (block, slot) transfer. Same-level and finer neighbors
// get a plain copy of the window; a coarser neighbor gets the window restricted
// on the fly, each coarse value the arithmetic mean of its 2^d fine cells.
func (b *BoundaryValues) packVars(u *mesh.Array5, m int, sb *SlotBuffer, nb mesh.NeighborBlock) {
	ind := b.pk.Indcs
	w := sb.sendWindow(b.pk.Levs[m], nb.Lev)
	buf := sb.VarsSend[m]
	ndat := w.Ndat()

	if nb.Lev >= b.pk.Levs[m] {
		for v := 0; v < b.nvar; v++ {
			for k := w.Ks; k <= w.Ke; k++ {
				for j := w.Js; j <= w.Je; j++ {
					for i := w.Is; i <= w.Ie; i++ {
						buf[v*ndat+w.Offset(k, j, i)] = u.At(m, v, k, j, i)
					}
				}
			}
		}
		return
	}

	di, dj, dk := 1, 0, 0
	if ind.MultiD() {
		dj = 1
	}
	if ind.ThreeD() {
		dk = 1
	}
	inv := 1.0 / float64((di+1)*(dj+1)*(dk+1))
	for v := 0; v < b.nvar; v++ {
		for ck := w.Ks; ck <= w.Ke; ck++ {
			fk := ind.Ks + 2*(ck-ind.CKs)
			for cj := w.Js; cj <= w.Je; cj++ {
				fj := ind.Js + 2*(cj-ind.CJs)
				for ci := w.Is; ci <= w.Ie; ci++ {
					fi := ind.Is + 2*(ci-ind.CIs)
					var sum float64
					for k := fk; k <= fk+dk; k++ {
						for j := fj; j <= fj+dj; j++ {
							for i := fi; i <= fi+di; i++ {
								sum += u.At(m, v, k, j, i)
							}
						}
					}
					buf[v*ndat+w.Offset(ck, cj, ci)] = sum * inv
				}
			}
		}
	}
}
