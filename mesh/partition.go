package mesh

import (
	"fmt"
	"log"

	metis "github.com/notargets/go-metis"
)

// PartitionStrategy defines how mesh blocks are assigned to ranks.
type PartitionStrategy int

const (
	BlockPartition PartitionStrategy = iota // consecutive blocks per rank
	RoundRobin                              // distribute cyclically
	GraphPartition                          // METIS k-way on the adjacency graph
)

// BlockGraph is the block-adjacency graph in CSR form, face connections only.
// Edge weights are the shared-face areas in cells, so the partitioner
// minimizes exchanged ghost-zone volume.
type BlockGraph struct {
	N      int
	XAdj   []int32
	Adjncy []int32
	AdjWgt []int32
}

// PartitionBlocks assigns each block to a rank. The returned slice has one
// rank per block. GraphPartition uses METIS with communication-volume edge
// weights; the simple strategies ignore the graph.
func PartitionBlocks(g *BlockGraph, nranks int, strategy PartitionStrategy) ([]int, error) {
	if nranks < 1 {
		return nil, fmt.Errorf("nranks %d < 1", nranks)
	}
	if g.N < nranks {
		return nil, fmt.Errorf("cannot split %d blocks across %d ranks", g.N, nranks)
	}
	etor := make([]int, g.N)
	if nranks == 1 {
		return etor, nil
	}

	switch strategy {
	case BlockPartition:
		per := (g.N + nranks - 1) / nranks
		for b := 0; b < g.N; b++ {
			r := b / per
			if r >= nranks {
				r = nranks - 1
			}
			etor[b] = r
		}

	case RoundRobin:
		for b := 0; b < g.N; b++ {
			etor[b] = b % nranks
		}

	case GraphPartition:
		log.Printf("partitioning %d mesh blocks onto %d ranks", g.N, nranks)
		opts := make([]int32, metis.NoOptions)
		if err := metis.SetDefaultOptions(opts); err != nil {
			return nil, fmt.Errorf("failed to set METIS options: %w", err)
		}
		opts[metis.OptionObjType] = metis.ObjTypeVol
		ubvec := []float32{1.05}
		part, objval, err := metis.PartGraphKwayWeighted(
			g.XAdj, g.Adjncy, nil, g.AdjWgt,
			int32(nranks), nil, ubvec, opts,
		)
		if err != nil {
			return nil, fmt.Errorf("METIS partitioning failed: %w", err)
		}
		log.Printf("METIS objective (communication volume): %d", objval)
		for b := 0; b < g.N; b++ {
			etor[b] = int(part[b])
		}

	default:
		return nil, fmt.Errorf("unknown partition strategy %d", strategy)
	}
	return etor, nil
}
