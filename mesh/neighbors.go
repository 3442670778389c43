package mesh

// NMaxNeighbors is the size of the fixed neighbor-slot array: 4 sub-slots on
// each of 6 faces (24), 2 on each of 12 edges (24), and 8 corners. Unused
// slots stay marked invalid rather than omitted so indices remain stable
// across regrids.
const NMaxNeighbors = 56

// NeighborBlock describes one topological neighbor of a MeshBlock. GID < 0
// marks an empty slot (physical boundary, collapsed dimension, or sub-slot not
// occupied at the current refinement). Dest is the slot index in the receiving
// block's buffer array where data sent through this slot lands.
type NeighborBlock struct {
	GID  int
	Rank int
	Lev  int
	Dest int
	// FluxRelevant marks face slots that participate in flux correction when
	// the neighbor sits at a different refinement level.
	FluxRelevant bool
}

// NeighborIndx maps a direction (i,j,k), components in {-1,0,1}, and sub-slot
// indices (f1,f2) to the fixed slot ordering shared by the adjacency resolver
// and the boundary buffers:
//
//	x1 faces [0,8), x2 faces [8,16), x1x2 edges [16,24), x3 faces [24,32),
//	x3x1 edges [32,40), x2x3 edges [40,48), corners [48,56).
//
// This ordering cannot change: a block's outgoing buffer slot must equal the
// slot its neighbor reads from.
func NeighborIndx(i, j, k, f1, f2 int) int {
	switch {
	case j == 0 && k == 0 && i != 0: // x1 faces
		return ((i+1)/2)*4 + f1 + 2*f2
	case i == 0 && k == 0 && j != 0: // x2 faces
		return 8 + ((j+1)/2)*4 + f1 + 2*f2
	case k == 0 && i != 0 && j != 0: // x1x2 edges
		return 16 + ((i+1)/2+2*((j+1)/2))*2 + f1
	case i == 0 && j == 0 && k != 0: // x3 faces
		return 24 + ((k+1)/2)*4 + f1 + 2*f2
	case j == 0 && i != 0 && k != 0: // x3x1 edges
		return 32 + ((i+1)/2+2*((k+1)/2))*2 + f1
	case i == 0 && j != 0 && k != 0: // x2x3 edges
		return 40 + ((j+1)/2+2*((k+1)/2))*2 + f1
	case i != 0 && j != 0 && k != 0: // corners
		return 48 + (i+1)/2 + 2*((j+1)/2) + 4*((k+1)/2)
	}
	return -1 // (0,0,0) is not a neighbor direction
}

// SlotInfo records the geometry behind one neighbor slot: the direction
// vector, the sub-slot indices, and whether the slot is a face (the only kind
// that carries flux corrections).
type SlotInfo struct {
	Indx       int
	O1, O2, O3 int
	F1, F2     int
	Face       bool
}

// SlotGeometry enumerates the neighbor slots materialized for the given
// dimensionality and refinement mode, in the fixed slot order. Directions with
// a nonzero component along a collapsed axis are not produced, and sub-slots
// beyond the first appear only on a multilevel mesh.
//
// Both the buffer initialization in bvals and the adjacency construction here
// iterate this same list, which is what keeps send and receive sides agreed on
// slot meaning.
func SlotGeometry(multiD, threeD, multilevel bool) []SlotInfo {
	nfx, nfy, nfz := 1, 1, 1
	if multilevel {
		nfx = 2
		if multiD {
			nfy = 2
		}
		if threeD {
			nfz = 2
		}
	}

	var slots []SlotInfo

	// x1 faces
	for n := -1; n <= 1; n += 2 {
		for fz := 0; fz < nfz; fz++ {
			for fy := 0; fy < nfy; fy++ {
				slots = append(slots, SlotInfo{
					Indx: NeighborIndx(n, 0, 0, fy, fz),
					O1:   n, F1: fy, F2: fz, Face: true,
				})
			}
		}
	}

	if multiD {
		// x2 faces
		for m := -1; m <= 1; m += 2 {
			for fz := 0; fz < nfz; fz++ {
				for fx := 0; fx < nfx; fx++ {
					slots = append(slots, SlotInfo{
						Indx: NeighborIndx(0, m, 0, fx, fz),
						O2:   m, F1: fx, F2: fz, Face: true,
					})
				}
			}
		}
		// x1x2 edges
		for m := -1; m <= 1; m += 2 {
			for n := -1; n <= 1; n += 2 {
				for fz := 0; fz < nfz; fz++ {
					slots = append(slots, SlotInfo{
						Indx: NeighborIndx(n, m, 0, fz, 0),
						O1:   n, O2: m, F1: fz,
					})
				}
			}
		}
	}

	if threeD {
		// x3 faces
		for l := -1; l <= 1; l += 2 {
			for fy := 0; fy < nfy; fy++ {
				for fx := 0; fx < nfx; fx++ {
					slots = append(slots, SlotInfo{
						Indx: NeighborIndx(0, 0, l, fx, fy),
						O3:   l, F1: fx, F2: fy, Face: true,
					})
				}
			}
		}
		// x3x1 edges
		for l := -1; l <= 1; l += 2 {
			for n := -1; n <= 1; n += 2 {
				for fy := 0; fy < nfy; fy++ {
					slots = append(slots, SlotInfo{
						Indx: NeighborIndx(n, 0, l, fy, 0),
						O1:   n, O3: l, F1: fy,
					})
				}
			}
		}
		// x2x3 edges
		for l := -1; l <= 1; l += 2 {
			for m := -1; m <= 1; m += 2 {
				for fx := 0; fx < nfx; fx++ {
					slots = append(slots, SlotInfo{
						Indx: NeighborIndx(0, m, l, fx, 0),
						O2:   m, O3: l, F1: fx,
					})
				}
			}
		}
		// corners
		for l := -1; l <= 1; l += 2 {
			for m := -1; m <= 1; m += 2 {
				for n := -1; n <= 1; n += 2 {
					slots = append(slots, SlotInfo{
						Indx: NeighborIndx(n, m, l, 0, 0),
						O1:   n, O2: m, O3: l,
					})
				}
			}
		}
	}

	return slots
}
