package bvals

import (
	"fmt"

	"github.com/notargets/goamr/comm"
	"github.com/notargets/goamr/mesh"
)

// BoundaryValues drives the ghost-zone and flux-correction exchanges for the
// cell-centered variables of one MeshBlockPack. One instance exists per rank;
// same-rank transfers bypass the transport and write straight into the
// destination block's receive staging.
//
// The variable cycle for one step is
//
//	InitRecv -> PackAndSend -> RecvAndUnpack (retried) -> ClearRecv, ClearSend
//
// and the flux cycle runs the analogous calls between the predictor flux
// computation and the conserved-variable update.
type BoundaryValues struct {
	pk   *mesh.MeshBlockPack
	tp   comm.Interface
	nvar int

	slots  []*SlotBuffer
	bySlot [mesh.NMaxNeighbors]*SlotBuffer
}

// NewBoundaryValues builds the per-slot buffers for pk, sized for nvar
// variables, bound to the given transport endpoint.
func NewBoundaryValues(pk *mesh.MeshBlockPack, tp comm.Interface, nvar int) (*BoundaryValues, error) {
	if nvar < 1 {
		return nil, fmt.Errorf("nvar %d < 1", nvar)
	}
	if err := pk.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pack: %w", err)
	}
	if tp.Rank() != pk.MyRank || tp.Size() != pk.NRanks {
		return nil, fmt.Errorf("transport is rank %d of %d, pack is rank %d of %d",
			tp.Rank(), tp.Size(), pk.MyRank, pk.NRanks)
	}

	b := &BoundaryValues{pk: pk, tp: tp, nvar: nvar}
	ind := pk.Indcs
	for _, s := range mesh.SlotGeometry(ind.MultiD(), ind.ThreeD(), pk.Multilevel) {
		sb, err := newSlotBuffer(ind, s, pk.Multilevel, pk.Nmb, nvar)
		if err != nil {
			return nil, err
		}
		b.slots = append(b.slots, sb)
		b.bySlot[s.Indx] = sb
	}
	return b, nil
}

// Nvar returns the variable count the buffers were sized for.
func (b *BoundaryValues) Nvar() int { return b.nvar }

// InitRecv posts the non-blocking receives for the variable exchange and marks
// every occupied slot waiting. It must run before the matching PackAndSend on
// any rank, and must not be called again until ClearRecv.
func (b *BoundaryValues) InitRecv() (TaskStatus, error) {
	for _, sb := range b.slots {
		for m := 0; m < b.pk.Nmb; m++ {
			nb := b.pk.Nghbr[m][sb.Info.Indx]
			if nb.GID < 0 {
				continue
			}
			sb.VarsStat[m] = CommWaiting
			if nb.Rank == b.pk.MyRank {
				continue
			}
			w := sb.recvWindow(b.pk.Levs[m], nb.Lev)
			req, err := b.tp.Irecv(sb.VarsRecv[m][:b.nvar*w.Ndat()], nb.Rank, Tag(m, sb.Info.Indx, KeyVars))
			if err != nil {
				return TaskFail, fmt.Errorf("post receive block %d slot %d: %w", m, sb.Info.Indx, err)
			}
			sb.VarsRecvReq[m] = req
		}
	}
	return TaskComplete, nil
}

// ClearRecv blocks until every posted variable receive has completed, then
// resets the receive state so the next cycle can post fresh receives.
func (b *BoundaryValues) ClearRecv() (TaskStatus, error) {
	for _, sb := range b.slots {
		if err := clearReqs(sb.VarsRecvReq); err != nil {
			return TaskFail, fmt.Errorf("variable receive: %w", err)
		}
		for m := range sb.VarsStat {
			sb.VarsStat[m] = CommUndef
		}
	}
	return TaskComplete, nil
}

// ClearSend blocks until every posted variable send has completed, releasing
// the send staging for reuse.
func (b *BoundaryValues) ClearSend() (TaskStatus, error) {
	for _, sb := range b.slots {
		if err := clearReqs(sb.VarsSendReq); err != nil {
			return TaskFail, fmt.Errorf("variable send: %w", err)
		}
	}
	return TaskComplete, nil
}

func clearReqs(reqs []comm.Request) error {
	for m, req := range reqs {
		if req == nil {
			continue
		}
		if err := req.Wait(); err != nil {
			return fmt.Errorf("block %d: %w", m, err)
		}
		reqs[m] = nil
	}
	return nil
}
