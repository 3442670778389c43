// Package comm defines the point-to-point message transport used by the
// boundary-exchange layer: non-blocking sends and receives addressed by rank
// and integer tag, with completion polled through request handles. The
// in-process Loopback implementation runs any number of ranks inside one
// process, which is enough to exercise the full cross-rank protocol in tests
// and single-host runs.
package comm

// Request is the handle for one outstanding non-blocking transfer.
type Request interface {
	// Test polls for completion without blocking.
	Test() (bool, error)
	// Wait blocks until the transfer completes. Waiting on an already
	// completed request returns immediately.
	Wait() error
}

// Interface is a rank-addressed transport endpoint. Matching is by
// (source rank, destination rank, tag); payloads are flat float64 slices of
// known length. A failed transfer is fatal to the run; there is no retry
// policy at this layer.
type Interface interface {
	// Rank returns this endpoint's rank, 0 <= Rank() < Size().
	Rank() int
	// Size returns the total number of ranks.
	Size() int
	// Isend posts a non-blocking send of buf to dest. The payload is captured
	// before Isend returns, so the caller may reuse buf once the call
	// completes.
	Isend(buf []float64, dest, tag int) (Request, error)
	// Irecv posts a non-blocking receive into buf from src. buf must not be
	// read until the returned request completes.
	Irecv(buf []float64, src, tag int) (Request, error)
}
