package bvals

import (
	"fmt"

	"github.com/notargets/goamr/kernel"
	"github.com/notargets/goamr/mesh"
)

// RecvAndUnpack polls every occupied slot and, once all have arrived, unpacks
// them into the ghost zones of u. While any slot is still in flight it returns
// TaskIncomplete and leaves u untouched, so the caller's scheduler can retry
// the step; ghost zones are never filled from a partial exchange.
func (b *BoundaryValues) RecvAndUnpack(u *mesh.Array5) (TaskStatus, error) {
	if u.Nmb != b.pk.Nmb || u.Nvar != b.nvar {
		return TaskFail, fmt.Errorf("array shape (%d,%d) does not match pack (%d,%d)",
			u.Nmb, u.Nvar, b.pk.Nmb, b.nvar)
	}

	arrived := true
	for _, sb := range b.slots {
		for m := 0; m < b.pk.Nmb; m++ {
			if b.pk.Nghbr[m][sb.Info.Indx].GID < 0 || sb.VarsStat[m] != CommWaiting {
				continue
			}
			req := sb.VarsRecvReq[m]
			if req == nil {
				// same-rank transfer not delivered yet
				arrived = false
				continue
			}
			done, err := req.Test()
			if err != nil {
				return TaskFail, fmt.Errorf("receive block %d slot %d: %w", m, sb.Info.Indx, err)
			}
			if done {
				sb.VarsStat[m] = CommReceived
			} else {
				arrived = false
			}
		}
	}
	if !arrived {
		return TaskIncomplete, nil
	}

	nslots := len(b.slots)
	kernel.ParFor(b.pk.Nmb*nslots, func(idx int) {
		m, sb := idx/nslots, b.slots[idx%nslots]
		nb := b.pk.Nghbr[m][sb.Info.Indx]
		if nb.GID < 0 {
			return
		}
		b.unpackVars(u, m, sb, nb)
	})
	return TaskComplete, nil
}

// unpackVars writes one (block, slot) payload into the ghost zones. Same-level
// and finer neighbors delivered cell-for-cell data; a coarser neighbor
// delivered coarse values, each broadcast into its 2^d fine ghost cells.
func (b *BoundaryValues) unpackVars(u *mesh.Array5, m int, sb *SlotBuffer, nb mesh.NeighborBlock) {
	ind := b.pk.Indcs
	w := sb.recvWindow(b.pk.Levs[m], nb.Lev)
	buf := sb.VarsRecv[m]
	ndat := w.Ndat()

	if nb.Lev >= b.pk.Levs[m] {
		for v := 0; v < b.nvar; v++ {
			for k := w.Ks; k <= w.Ke; k++ {
				for j := w.Js; j <= w.Je; j++ {
					for i := w.Is; i <= w.Ie; i++ {
						u.Set(m, v, k, j, i, buf[v*ndat+w.Offset(k, j, i)])
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
	for v := 0; v < b.nvar; v++ {
		for ck := w.Ks; ck <= w.Ke; ck++ {
			fk := ind.Ks + 2*(ck-ind.CKs)
			for cj := w.Js; cj <= w.Je; cj++ {
				fj := ind.Js + 2*(cj-ind.CJs)
				for ci := w.Is; ci <= w.Ie; ci++ {
					fi := ind.Is + 2*(ci-ind.CIs)
					val := buf[v*ndat+w.Offset(ck, cj, ci)]
					for k := fk; k <= fk+dk; k++ {
						for j := fj; j <= fj+dj; j++ {
							for i := fi; i <= fi+di; i++ {
								u.Set(m, v, k, j, i, val)
							}
						}
					}
				}
			}
		}
	}
}
