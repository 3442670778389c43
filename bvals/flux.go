package bvals

import (
	"fmt"

	"github.com/notargets/goamr/kernel"
	"github.com/notargets/goamr/mesh"
)

// Flux correction runs between the flux computation and the conserved-variable
// update. At every face where the neighbor is finer, the sum of fine-face
// fluxes differs from the coarse face's own flux estimate; the finer side
// sends its restricted fluxes and the coarser side overwrites its face values
// with them, so both sides of the face apply the identical flux and the scheme
// stays conservative across the level jump. On a single-level mesh all flux
// calls are no-ops.

// faceArray selects the flux component crossed by a face slot.
func faceArray(flx *mesh.FaceField, s mesh.SlotInfo) *mesh.Array5 {
	switch {
	case s.O1 != 0:
		return flx.X1f
	case s.O2 != 0:
		return flx.X2f
	}
	return flx.X3f
}

// InitRecvFlux posts receives for restricted fluxes on every face slot whose
// neighbor is finer than the owning block.
func (b *BoundaryValues) InitRecvFlux() (TaskStatus, error) {
	if !b.pk.Multilevel {
		return TaskComplete, nil
	}
	for _, sb := range b.slots {
		if !sb.Info.Face {
			continue
		}
		for m := 0; m < b.pk.Nmb; m++ {
			nb := b.pk.Nghbr[m][sb.Info.Indx]
			if nb.GID < 0 || !nb.FluxRelevant || nb.Lev <= b.pk.Levs[m] {
				continue
			}
			sb.FluxStat[m] = CommWaiting
			if nb.Rank == b.pk.MyRank {
				continue
			}
			req, err := b.tp.Irecv(sb.FluxRecv[m], nb.Rank, Tag(m, sb.Info.Indx, KeyFlux))
			if err != nil {
				return TaskFail, fmt.Errorf("post flux receive block %d slot %d: %w", m, sb.Info.Indx, err)
			}
			sb.FluxRecvReq[m] = req
		}
	}
	return TaskComplete, nil
}

// PackAndSendFlux restricts and sends boundary fluxes from every face slot
// whose neighbor is coarser than the owning block.
func (b *BoundaryValues) PackAndSendFlux(flx *mesh.FaceField) (TaskStatus, error) {
	if !b.pk.Multilevel {
		return TaskComplete, nil
	}

	nslots := len(b.slots)
	kernel.ParFor(b.pk.Nmb*nslots, func(idx int) {
		m, sb := idx/nslots, b.slots[idx%nslots]
		if !sb.Info.Face {
			return
		}
		nb := b.pk.Nghbr[m][sb.Info.Indx]
		if nb.GID < 0 || !nb.FluxRelevant || nb.Lev >= b.pk.Levs[m] {
			return
		}
		b.packFlux(flx, m, sb)
	})

	for _, sb := range b.slots {
		if !sb.Info.Face {
			continue
		}
		for m := 0; m < b.pk.Nmb; m++ {
			nb := b.pk.Nghbr[m][sb.Info.Indx]
			if nb.GID < 0 || !nb.FluxRelevant || nb.Lev >= b.pk.Levs[m] {
				continue
			}
			tlid := b.pk.LocalID(nb.GID, nb.Rank)
			if nb.Rank == b.pk.MyRank {
				tsb := b.bySlot[nb.Dest]
				copy(tsb.FluxRecv[tlid], sb.FluxSend[m])
				tsb.FluxStat[tlid] = CommReceived
				continue
			}
			req, err := b.tp.Isend(sb.FluxSend[m], nb.Rank, Tag(tlid, nb.Dest, KeyFlux))
			if err != nil {
				return TaskFail, fmt.Errorf("send flux block %d slot %d: %w", m, sb.Info.Indx, err)
			}
			sb.FluxSendReq[m] = req
		}
	}
	return TaskComplete, nil
}

// packFlux stages one face's restricted fluxes: the window runs over the
// sender's coarse face coordinates, and each entry is the mean of the 2^(d-1)
// fine faces covering that coarse face.
func (b *BoundaryValues) packFlux(flx *mesh.FaceField, m int, sb *SlotBuffer) {
	ind := b.pk.Indcs
	fa := faceArray(flx, sb.Info)
	w := sb.SendW.Flux
	buf := sb.FluxSend[m]
	ndat := w.Ndat()

	// tangential dimensions contribute two fine faces each; the normal is a
	// single face index
	di, dj, dk := 0, 0, 0
	if sb.Info.O1 == 0 {
		di = 1
	}
	if sb.Info.O2 == 0 && ind.MultiD() {
		dj = 1
	}
	if sb.Info.O3 == 0 && ind.ThreeD() {
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
								sum += fa.At(m, v, k, j, i)
							}
						}
					}
					buf[v*ndat+w.Offset(ck, cj, ci)] = sum * inv
				}
			}
		}
	}
}

// RecvAndUnpackFlux polls the flux receives and, once all have arrived,
// overwrites the coarse-side boundary fluxes with the restricted fine-side
// values. Returns TaskIncomplete without touching flx while any transfer is in
// flight.
func (b *BoundaryValues) RecvAndUnpackFlux(flx *mesh.FaceField) (TaskStatus, error) {
	if !b.pk.Multilevel {
		return TaskComplete, nil
	}

	arrived := true
	for _, sb := range b.slots {
		if !sb.Info.Face {
			continue
		}
		for m := 0; m < b.pk.Nmb; m++ {
			if b.pk.Nghbr[m][sb.Info.Indx].GID < 0 || sb.FluxStat[m] != CommWaiting {
				continue
			}
			req := sb.FluxRecvReq[m]
			if req == nil {
				arrived = false
				continue
			}
			done, err := req.Test()
			if err != nil {
				return TaskFail, fmt.Errorf("receive flux block %d slot %d: %w", m, sb.Info.Indx, err)
			}
			if done {
				sb.FluxStat[m] = CommReceived
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
		if !sb.Info.Face || sb.FluxStat[m] != CommReceived {
			return
		}
		b.unpackFlux(flx, m, sb)
	})
	return TaskComplete, nil
}

// unpackFlux overwrites one face's fluxes in place; the window addresses the
// receiving block's own boundary faces, tangential half matching the fine
// neighbor's sub-slot.
func (b *BoundaryValues) unpackFlux(flx *mesh.FaceField, m int, sb *SlotBuffer) {
	fa := faceArray(flx, sb.Info)
	w := sb.RecvW.Flux
	buf := sb.FluxRecv[m]
	ndat := w.Ndat()

	for v := 0; v < b.nvar; v++ {
		for k := w.Ks; k <= w.Ke; k++ {
			for j := w.Js; j <= w.Je; j++ {
				for i := w.Is; i <= w.Ie; i++ {
					fa.Set(m, v, k, j, i, buf[v*ndat+w.Offset(k, j, i)])
				}
			}
		}
	}
}

// ClearRecvFlux blocks until every posted flux receive has completed and
// resets the flux receive state.
func (b *BoundaryValues) ClearRecvFlux() (TaskStatus, error) {
	if !b.pk.Multilevel {
		return TaskComplete, nil
	}
	for _, sb := range b.slots {
		if !sb.Info.Face {
			continue
		}
		if err := clearReqs(sb.FluxRecvReq); err != nil {
			return TaskFail, fmt.Errorf("flux receive: %w", err)
		}
		for m := range sb.FluxStat {
			sb.FluxStat[m] = CommUndef
		}
	}
	return TaskComplete, nil
}

// ClearSendFlux blocks until every posted flux send has completed.
func (b *BoundaryValues) ClearSendFlux() (TaskStatus, error) {
	if !b.pk.Multilevel {
		return TaskComplete, nil
	}
	for _, sb := range b.slots {
		if !sb.Info.Face {
			continue
		}
		if err := clearReqs(sb.FluxSendReq); err != nil {
			return TaskFail, fmt.Errorf("flux send: %w", err)
		}
	}
	return TaskComplete, nil
}
