// Package mesh provides the MeshBlock geometry, the fixed neighbor-slot
// enumeration, block packs, and block-to-rank assignment for a block-structured
// adaptively refined Cartesian mesh.
package mesh

import "fmt"

// Indcs holds the cell-index bounds of a MeshBlock. All blocks in a mesh share
// the same interior cell counts and ghost width, so one Indcs serves a whole
// pack. Inclusive interior bounds (Is..Ie etc.) are positions inside the padded
// array; collapsed dimensions (Nx2==1 or Nx3==1) carry no ghost padding.
//
// The CIs..CKe bounds are coarse-cell coordinates: the same block viewed at
// half resolution, used to address restricted data at refinement boundaries.
// No coarse array is stored; coarse coordinate (ci,cj,ck) maps to the fine
// cell (Is+2*(ci-CIs), ...) and the cell to its right/above.
type Indcs struct {
	Ng            int // ghost cell depth
	Nx1, Nx2, Nx3 int // interior cells per dimension

	Is, Ie int
	Js, Je int
	Ks, Ke int

	CNx1, CNx2, CNx3 int
	CIs, CIe         int
	CJs, CJe         int
	CKs, CKe         int
}

// NewIndcs validates block dimensions and computes index bounds. A multilevel
// mesh requires even interior counts and an even ghost width on every active
// dimension, since one coarse cell covers two fine cells.
func NewIndcs(nx1, nx2, nx3, ng int, multilevel bool) (Indcs, error) {
	var ind Indcs
	if nx1 < 2 || nx2 < 1 || nx3 < 1 {
		return ind, fmt.Errorf("invalid cell counts (%d,%d,%d): need nx1 >= 2, nx2,nx3 >= 1", nx1, nx2, nx3)
	}
	if nx3 > 1 && nx2 == 1 {
		return ind, fmt.Errorf("invalid cell counts (%d,%d,%d): nx3 > 1 requires nx2 > 1", nx1, nx2, nx3)
	}
	if ng < 1 {
		return ind, fmt.Errorf("ghost width %d < 1", ng)
	}
	if ng > nx1 || (nx2 > 1 && ng > nx2) || (nx3 > 1 && ng > nx3) {
		return ind, fmt.Errorf("ghost width %d exceeds an interior dimension (%d,%d,%d)", ng, nx1, nx2, nx3)
	}
	if multilevel {
		if ng%2 != 0 {
			return ind, fmt.Errorf("multilevel mesh requires even ghost width, got %d", ng)
		}
		if nx1%2 != 0 || (nx2 > 1 && nx2%2 != 0) || (nx3 > 1 && nx3%2 != 0) {
			return ind, fmt.Errorf("multilevel mesh requires even cell counts, got (%d,%d,%d)", nx1, nx2, nx3)
		}
		if 2*ng > nx1 || (nx2 > 1 && 2*ng > nx2) || (nx3 > 1 && 2*ng > nx3) {
			return ind, fmt.Errorf("multilevel mesh requires 2*ng <= nx, got ng=%d nx=(%d,%d,%d)", ng, nx1, nx2, nx3)
		}
	}

	ind.Ng = ng
	ind.Nx1, ind.Nx2, ind.Nx3 = nx1, nx2, nx3

	ind.Is = ng
	ind.Ie = ind.Is + nx1 - 1
	if nx2 > 1 {
		ind.Js = ng
		ind.Je = ind.Js + nx2 - 1
	}
	if nx3 > 1 {
		ind.Ks = ng
		ind.Ke = ind.Ks + nx3 - 1
	}

	ind.CNx1, ind.CNx2, ind.CNx3 = 1, 1, 1
	if multilevel {
		ind.CNx1 = nx1 / 2
		ind.CIs = ng
		ind.CIe = ind.CIs + ind.CNx1 - 1
		if nx2 > 1 {
			ind.CNx2 = nx2 / 2
			ind.CJs = ng
			ind.CJe = ind.CJs + ind.CNx2 - 1
		}
		if nx3 > 1 {
			ind.CNx3 = nx3 / 2
			ind.CKs = ng
			ind.CKe = ind.CKs + ind.CNx3 - 1
		}
	}
	return ind, nil
}

// MultiD reports whether the mesh extends in the x2 dimension.
func (ind Indcs) MultiD() bool { return ind.Nx2 > 1 }

// ThreeD reports whether the mesh extends in the x3 dimension.
func (ind Indcs) ThreeD() bool { return ind.Nx3 > 1 }

// NDim returns the mesh dimensionality.
func (ind Indcs) NDim() int {
	switch {
	case ind.ThreeD():
		return 3
	case ind.MultiD():
		return 2
	}
	return 1
}

// Ncells1 returns the padded array extent in x1, including ghost zones.
func (ind Indcs) Ncells1() int { return ind.Nx1 + 2*ind.Ng }

// Ncells2 returns the padded array extent in x2; 1 when collapsed.
func (ind Indcs) Ncells2() int {
	if ind.Nx2 == 1 {
		return 1
	}
	return ind.Nx2 + 2*ind.Ng
}

// Ncells3 returns the padded array extent in x3; 1 when collapsed.
func (ind Indcs) Ncells3() int {
	if ind.Nx3 == 1 {
		return 1
	}
	return ind.Nx3 + 2*ind.Ng
}
