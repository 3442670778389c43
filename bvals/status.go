// Package bvals implements the distributed boundary-exchange subsystem: the
// per-neighbor-slot communication buffers, the pack/send and receive/unpack
// kernels for cell-centered variables across same-level and refinement-jump
// boundaries, and the flux-correction exchange that enforces conservation at
// fine/coarse faces. The protocol is cooperative: only the Clear calls block.
package bvals

// CommStatus tracks one (block, slot) buffer through an exchange cycle.
type CommStatus int

const (
	CommUndef CommStatus = iota
	CommWaiting
	CommReceived
)

// TaskStatus is the tri-state result of one protocol step. Incomplete means
// "not yet ready, call again"; the caller's scheduler retries the step rather
// than blocking on it.
type TaskStatus int

const (
	TaskIncomplete TaskStatus = iota
	TaskComplete
	TaskFail
)

func (s TaskStatus) String() string {
	switch s {
	case TaskIncomplete:
		return "incomplete"
	case TaskComplete:
		return "complete"
	case TaskFail:
		return "fail"
	}
	return "unknown"
}
