package bvals

import (
	"github.com/notargets/goamr/comm"
	"github.com/notargets/goamr/mesh"
)

// Message keys separate the two exchange cycles sharing one transport: a
// variable-ghost tag and a flux-correction tag never match each other.
const (
	KeyVars = 0
	KeyFlux = 1
	NKeys   = 2
)

// Tag derives the transport tag for a message landing in slot `slot` of the
// receiving block with local id `lid`. Both sides can compute it: the receiver
// from its own identity, the sender from the neighbor entry's destination slot
// and the rank-contiguous global-id layout.
func Tag(lid, slot, key int) int {
	return (lid*mesh.NMaxNeighbors+slot)*NKeys + key
}

// SlotBuffer holds the staging storage and protocol state of one neighbor slot
// across every block of a pack. Variable exchange and flux correction run as
// independent cycles with their own status and request tables, sharing only
// the slot's window geometry.
type SlotBuffer struct {
	Info  mesh.SlotInfo
	SendW Windows
	RecvW Windows

	// staging, [nmb][nvar*maxNdat]
	VarsSend, VarsRecv [][]float64
	FluxSend, FluxRecv [][]float64

	// receive-side status per block
	VarsStat []CommStatus
	FluxStat []CommStatus

	// outstanding transfers per block; nil when none is in flight
	VarsSendReq, VarsRecvReq []comm.Request
	FluxSendReq, FluxRecvReq []comm.Request
}

func newSlotBuffer(ind mesh.Indcs, s mesh.SlotInfo, multilevel bool, nmb, nvar int) (*SlotBuffer, error) {
	if err := checkPairing(ind, s, multilevel); err != nil {
		return nil, err
	}
	sb := &SlotBuffer{
		Info:  s,
		SendW: SendWindows(ind, s, multilevel),
		RecvW: RecvWindows(ind, s, multilevel),

		VarsStat:    make([]CommStatus, nmb),
		VarsSendReq: make([]comm.Request, nmb),
		VarsRecvReq: make([]comm.Request, nmb),
	}
	sb.VarsSend = allocRows(nmb, nvar*sb.SendW.MaxNdat())
	sb.VarsRecv = allocRows(nmb, nvar*sb.RecvW.MaxNdat())

	if s.Face && multilevel {
		sb.FluxSend = allocRows(nmb, nvar*sb.SendW.Flux.Ndat())
		sb.FluxRecv = allocRows(nmb, nvar*sb.RecvW.Flux.Ndat())
		sb.FluxStat = make([]CommStatus, nmb)
		sb.FluxSendReq = make([]comm.Request, nmb)
		sb.FluxRecvReq = make([]comm.Request, nmb)
	}
	return sb, nil
}

func allocRows(n, ndat int) [][]float64 {
	rows := make([][]float64, n)
	for m := range rows {
		rows[m] = make([]float64, ndat)
	}
	return rows
}

// sendWindow selects the pack-side window by the neighbor's level relative to
// the sending block.
func (sb *SlotBuffer) sendWindow(myLev, nbLev int) Window {
	switch {
	case nbLev < myLev:
		return sb.SendW.Coar
	case nbLev > myLev:
		return sb.SendW.Fine
	}
	return sb.SendW.Same
}

// recvWindow selects the unpack-side window by the neighbor's level relative
// to the receiving block.
func (sb *SlotBuffer) recvWindow(myLev, nbLev int) Window {
	switch {
	case nbLev < myLev:
		return sb.RecvW.Coar
	case nbLev > myLev:
		return sb.RecvW.Fine
	}
	return sb.RecvW.Same
}
