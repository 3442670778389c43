package mesh

import "testing"

func TestBuildUniformReciprocity(t *testing.T) {
	ind, err := NewIndcs(8, 8, 1, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	packs, err := BuildUniform(ind, 4, 2, 1, [3]bool{true, true, false}, 2, BlockPartition)
	if err != nil {
		t.Fatal(err)
	}
	if len(packs) != 2 {
		t.Fatalf("%d packs, want 2", len(packs))
	}

	total := 0
	for _, p := range packs {
		total += p.Nmb
	}
	if total != 8 {
		t.Fatalf("%d blocks total, want 8", total)
	}

	for r, p := range packs {
		if p.MyRank != r {
			t.Fatalf("pack %d claims rank %d", r, p.MyRank)
		}
		for m := 0; m < p.Nmb; m++ {
			for slot, nb := range p.Nghbr[m] {
				if nb.GID < 0 {
					continue
				}
				q := packs[nb.Rank]
				tm := q.LocalID(nb.GID, nb.Rank)
				if tm < 0 || tm >= q.Nmb {
					t.Fatalf("rank %d block %d slot %d: neighbor gid %d not on rank %d",
						r, m, slot, nb.GID, nb.Rank)
				}
				back := q.Nghbr[tm][nb.Dest]
				if back.GID != p.GIDs[m] {
					t.Fatalf("rank %d block %d slot %d: reverse entry has gid %d, want %d",
						r, m, slot, back.GID, p.GIDs[m])
				}
				if back.Dest != slot {
					t.Fatalf("rank %d block %d slot %d: reverse dest %d, want %d",
						r, m, slot, back.Dest, slot)
				}
			}
		}
	}
}

func TestBuildUniformPhysicalBoundary(t *testing.T) {
	ind, err := NewIndcs(8, 1, 1, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	packs, err := BuildUniform(ind, 2, 1, 1, [3]bool{false, false, false}, 1, BlockPartition)
	if err != nil {
		t.Fatal(err)
	}
	p := packs[0]
	// leftmost block has no -x1 neighbor, rightmost no +x1 neighbor
	if nb := p.Nghbr[0][NeighborIndx(-1, 0, 0, 0, 0)]; nb.GID >= 0 {
		t.Errorf("block 0 has -x1 neighbor gid %d at a physical boundary", nb.GID)
	}
	if nb := p.Nghbr[0][NeighborIndx(1, 0, 0, 0, 0)]; nb.GID != 1 {
		t.Errorf("block 0 +x1 neighbor gid %d, want 1", nb.GID)
	}
	if nb := p.Nghbr[1][NeighborIndx(1, 0, 0, 0, 0)]; nb.GID >= 0 {
		t.Errorf("block 1 has +x1 neighbor gid %d at a physical boundary", nb.GID)
	}
}

func TestBuildUniformRoundRobin(t *testing.T) {
	ind, err := NewIndcs(4, 4, 1, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	packs, err := BuildUniform(ind, 3, 1, 1, [3]bool{true, false, false}, 2, RoundRobin)
	if err != nil {
		t.Fatal(err)
	}
	if packs[0].Nmb+packs[1].Nmb != 3 {
		t.Fatalf("blocks split %d/%d, want 3 total", packs[0].Nmb, packs[1].Nmb)
	}
	for _, p := range packs {
		if err := p.Validate(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestBuildRefinedPair(t *testing.T) {
	ind, err := NewIndcs(8, 8, 1, 2, true)
	if err != nil {
		t.Fatal(err)
	}
	p, err := BuildRefinedPair(ind, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	coarseSlot := NeighborIndx(1, 0, 0, 1, 0)
	fineSlot := NeighborIndx(-1, 0, 0, 0, 0)

	nb := p.Nghbr[0][coarseSlot]
	if nb.GID != 1 || nb.Lev != 1 || nb.Dest != fineSlot || !nb.FluxRelevant {
		t.Fatalf("coarse side entry %+v malformed", nb)
	}
	nb = p.Nghbr[1][fineSlot]
	if nb.GID != 0 || nb.Lev != 0 || nb.Dest != coarseSlot {
		t.Fatalf("fine side entry %+v malformed", nb)
	}
	// the unused sub-slot of the coarse face stays empty
	if other := p.Nghbr[0][NeighborIndx(1, 0, 0, 0, 0)]; other.GID >= 0 {
		t.Errorf("unoccupied sub-slot holds gid %d", other.GID)
	}
}
