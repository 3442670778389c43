package mesh

import "fmt"

// MeshBlockPack is the set of MeshBlocks owned by one rank. Blocks of a rank
// occupy a contiguous global-id range, so a block's local id equals
// gid - FirstGID[rank]; the boundary layer relies on this when deriving
// message tags for the receiving side.
type MeshBlockPack struct {
	Indcs      Indcs
	Multilevel bool

	Nmb   int
	GIDs  []int
	Levs  []int
	Lloc  [][3]int          // logical block coordinates at each block's level
	Nghbr [][]NeighborBlock // [Nmb][NMaxNeighbors]

	MyRank, NRanks int
	FirstGID       []int // first global id owned by each rank
}

// NewMeshBlockPack allocates an empty pack with every neighbor slot invalid.
func NewMeshBlockPack(ind Indcs, multilevel bool, nmb, myRank, nranks int) *MeshBlockPack {
	p := &MeshBlockPack{
		Indcs:      ind,
		Multilevel: multilevel,
		Nmb:        nmb,
		GIDs:       make([]int, nmb),
		Levs:       make([]int, nmb),
		Lloc:       make([][3]int, nmb),
		Nghbr:      make([][]NeighborBlock, nmb),
		MyRank:     myRank,
		NRanks:     nranks,
		FirstGID:   make([]int, nranks),
	}
	for m := 0; m < nmb; m++ {
		p.Nghbr[m] = make([]NeighborBlock, NMaxNeighbors)
		for n := range p.Nghbr[m] {
			p.Nghbr[m][n].GID = -1
		}
	}
	return p
}

// LocalID converts a global block id to the local index on its owning rank.
func (p *MeshBlockPack) LocalID(gid, rank int) int {
	return gid - p.FirstGID[rank]
}

// Validate checks table shapes and slot contents. A failure here means the
// adjacency resolver produced a malformed neighbor table and the run cannot
// continue.
func (p *MeshBlockPack) Validate() error {
	if len(p.GIDs) != p.Nmb || len(p.Levs) != p.Nmb || len(p.Nghbr) != p.Nmb {
		return fmt.Errorf("pack tables sized %d/%d/%d, want %d blocks",
			len(p.GIDs), len(p.Levs), len(p.Nghbr), p.Nmb)
	}
	if p.MyRank < 0 || p.MyRank >= p.NRanks {
		return fmt.Errorf("rank %d out of range [0,%d)", p.MyRank, p.NRanks)
	}
	for m := 0; m < p.Nmb; m++ {
		if len(p.Nghbr[m]) != NMaxNeighbors {
			return fmt.Errorf("block %d has %d neighbor slots, want %d", m, len(p.Nghbr[m]), NMaxNeighbors)
		}
		if p.GIDs[m] != p.FirstGID[p.MyRank]+m {
			return fmt.Errorf("block %d has gid %d, want contiguous %d", m, p.GIDs[m], p.FirstGID[p.MyRank]+m)
		}
		for n, nb := range p.Nghbr[m] {
			if nb.GID < 0 {
				continue
			}
			if nb.Rank < 0 || nb.Rank >= p.NRanks {
				return fmt.Errorf("block %d slot %d: neighbor rank %d out of range", m, n, nb.Rank)
			}
			if nb.Dest < 0 || nb.Dest >= NMaxNeighbors {
				return fmt.Errorf("block %d slot %d: dest slot %d out of range", m, n, nb.Dest)
			}
			if d := nb.Lev - p.Levs[m]; d < -1 || d > 1 {
				return fmt.Errorf("block %d slot %d: neighbor level %d jumps more than one from %d",
					m, n, nb.Lev, p.Levs[m])
			}
		}
	}
	return nil
}
