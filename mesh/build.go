package mesh

import (
	"fmt"
	"sort"
)

// BuildUniform constructs the per-rank MeshBlockPacks for a uniform grid of
// nbx1*nbx2*nbx3 same-level blocks, assigning blocks to ranks with the given
// strategy. Global ids are issued contiguously per rank, which is what the
// boundary layer's tag derivation assumes. Out-of-range directions on
// non-periodic dimensions stay invalid (physical boundary).
func BuildUniform(ind Indcs, nbx1, nbx2, nbx3 int, periodic [3]bool,
	nranks int, strategy PartitionStrategy) ([]*MeshBlockPack, error) {
	if nbx1 < 1 || nbx2 < 1 || nbx3 < 1 {
		return nil, fmt.Errorf("invalid block counts (%d,%d,%d)", nbx1, nbx2, nbx3)
	}
	if nbx2 > 1 && !ind.MultiD() {
		return nil, fmt.Errorf("nbx2=%d on a 1-D mesh", nbx2)
	}
	if nbx3 > 1 && !ind.ThreeD() {
		return nil, fmt.Errorf("nbx3=%d on a non-3-D mesh", nbx3)
	}
	nb := nbx1 * nbx2 * nbx3

	g := buildBlockGraph(ind, nbx1, nbx2, nbx3, periodic)
	etor, err := PartitionBlocks(g, nranks, strategy)
	if err != nil {
		return nil, err
	}

	// Renumber blocks so each rank owns a contiguous gid range.
	order := make([]int, 0, nb) // gid -> grid-order block id
	for r := 0; r < nranks; r++ {
		for mid := 0; mid < nb; mid++ {
			if etor[mid] == r {
				order = append(order, mid)
			}
		}
	}
	gidOf := make([]int, nb) // grid-order block id -> gid
	for gid, mid := range order {
		gidOf[mid] = gid
	}
	counts := make([]int, nranks)
	for _, r := range etor {
		counts[r]++
	}
	firstGID := make([]int, nranks)
	for r := 1; r < nranks; r++ {
		firstGID[r] = firstGID[r-1] + counts[r-1]
	}

	slots := SlotGeometry(ind.MultiD(), ind.ThreeD(), false)
	packs := make([]*MeshBlockPack, nranks)
	for r := 0; r < nranks; r++ {
		if counts[r] == 0 {
			return nil, fmt.Errorf("rank %d owns no blocks", r)
		}
		p := NewMeshBlockPack(ind, false, counts[r], r, nranks)
		copy(p.FirstGID, firstGID)
		for m := 0; m < counts[r]; m++ {
			gid := firstGID[r] + m
			mid := order[gid]
			bx := mid % nbx1
			by := (mid / nbx1) % nbx2
			bz := mid / (nbx1 * nbx2)
			p.GIDs[m] = gid
			p.Lloc[m] = [3]int{bx, by, bz}

			for _, s := range slots {
				nx, ok1 := wrapCoord(bx+s.O1, nbx1, periodic[0])
				ny, ok2 := wrapCoord(by+s.O2, nbx2, periodic[1])
				nz, ok3 := wrapCoord(bz+s.O3, nbx3, periodic[2])
				if !ok1 || !ok2 || !ok3 {
					continue
				}
				nmid := nx + nbx1*(ny+nbx2*nz)
				p.Nghbr[m][s.Indx] = NeighborBlock{
					GID:          gidOf[nmid],
					Rank:         etor[nmid],
					Lev:          0,
					Dest:         NeighborIndx(-s.O1, -s.O2, -s.O3, 0, 0),
					FluxRelevant: s.Face,
				}
			}
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("rank %d pack: %w", r, err)
		}
		packs[r] = p
	}
	return packs, nil
}

func wrapCoord(c, n int, periodic bool) (int, bool) {
	if c >= 0 && c < n {
		return c, true
	}
	if !periodic {
		return 0, false
	}
	return ((c % n) + n) % n, true
}

// buildBlockGraph assembles the CSR face-adjacency graph used by the
// partitioner. Edge weights are shared-face areas in cells; duplicate edges
// from periodic wrap merge their weights, and self edges are dropped.
func buildBlockGraph(ind Indcs, nbx1, nbx2, nbx3 int, periodic [3]bool) *BlockGraph {
	nb := nbx1 * nbx2 * nbx3
	faceWgt := [3]int{
		ind.Nx2 * ind.Nx3,
		ind.Nx1 * ind.Nx3,
		ind.Nx1 * ind.Nx2,
	}
	dirs := [][4]int{
		{-1, 0, 0, 0}, {1, 0, 0, 0},
		{0, -1, 0, 1}, {0, 1, 0, 1},
		{0, 0, -1, 2}, {0, 0, 1, 2},
	}

	g := &BlockGraph{N: nb, XAdj: make([]int32, 1, nb+1)}
	for mid := 0; mid < nb; mid++ {
		bx := mid % nbx1
		by := (mid / nbx1) % nbx2
		bz := mid / (nbx1 * nbx2)

		wgts := make(map[int]int)
		for _, d := range dirs {
			nx, ok1 := wrapCoord(bx+d[0], nbx1, periodic[0])
			ny, ok2 := wrapCoord(by+d[1], nbx2, periodic[1])
			nz, ok3 := wrapCoord(bz+d[2], nbx3, periodic[2])
			if !ok1 || !ok2 || !ok3 {
				continue
			}
			nmid := nx + nbx1*(ny+nbx2*nz)
			if nmid == mid {
				continue
			}
			wgts[nmid] += faceWgt[d[3]]
		}

		nbrs := make([]int, 0, len(wgts))
		for nmid := range wgts {
			nbrs = append(nbrs, nmid)
		}
		sort.Ints(nbrs)
		for _, nmid := range nbrs {
			g.Adjncy = append(g.Adjncy, int32(nmid))
			g.AdjWgt = append(g.AdjWgt, int32(wgts[nmid]))
		}
		g.XAdj = append(g.XAdj, int32(len(g.Adjncy)))
	}
	return g
}

// BuildRefinedPair constructs a single-rank pack holding one coarse block
// (gid 0, level 0) and one finer block (gid 1, level 1) attached to the
// coarse block's +x1 face at sub-position (f1,f2). The remaining sub-slots of
// that face stay empty, which is all the boundary layer needs to exercise the
// coarser/finer regimes and flux correction.
func BuildRefinedPair(ind Indcs, f1, f2 int) (*MeshBlockPack, error) {
	if ind.CNx1 == 0 || ind.CIe < ind.CIs {
		return nil, fmt.Errorf("refined pair requires multilevel index bounds")
	}
	if f1 < 0 || f1 > 1 || f2 < 0 || f2 > 1 {
		return nil, fmt.Errorf("sub-block position (%d,%d) out of range", f1, f2)
	}
	if f1 == 1 && !ind.MultiD() {
		return nil, fmt.Errorf("f1=1 on a 1-D mesh")
	}
	if f2 == 1 && !ind.ThreeD() {
		return nil, fmt.Errorf("f2=1 on a non-3-D mesh")
	}

	p := NewMeshBlockPack(ind, true, 2, 0, 1)
	p.GIDs[0], p.GIDs[1] = 0, 1
	p.Levs[0], p.Levs[1] = 0, 1
	p.Lloc[0] = [3]int{0, 0, 0}
	p.Lloc[1] = [3]int{2, f1, f2} // level-1 coordinates, abutting the +x1 face

	coarseSlot := NeighborIndx(1, 0, 0, f1, f2)
	fineSlot := NeighborIndx(-1, 0, 0, 0, 0)
	p.Nghbr[0][coarseSlot] = NeighborBlock{
		GID: 1, Rank: 0, Lev: 1, Dest: fineSlot, FluxRelevant: true,
	}
	p.Nghbr[1][fineSlot] = NeighborBlock{
		GID: 0, Rank: 0, Lev: 0, Dest: coarseSlot, FluxRelevant: true,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
