package driver

import "github.com/notargets/goamr/mesh"

// Geometry maps logical block coordinates to physical positions on a Cartesian
// domain tiled by Nbx level-0 blocks per dimension. Refined blocks halve the
// cell spacing per level.
type Geometry struct {
	X0  [3]float64 // domain origin
	L   [3]float64 // domain lengths
	Nbx [3]int     // level-0 block tiling
}

// Dx returns the cell spacing of dimension dim at refinement level lev.
func (g Geometry) Dx(ind mesh.Indcs, lev, dim int) float64 {
	nx := [3]int{ind.Nx1, ind.Nx2, ind.Nx3}[dim]
	return g.L[dim] / (float64(g.Nbx[dim]*nx) * float64(int(1)<<lev))
}

// CellCenter returns the physical coordinate of cell index i (padded-array
// index) of dimension dim for a block at logical location lloc and level lev.
func (g Geometry) CellCenter(ind mesh.Indcs, lloc [3]int, lev, dim, i int) float64 {
	nx := [3]int{ind.Nx1, ind.Nx2, ind.Nx3}[dim]
	is := [3]int{ind.Is, ind.Js, ind.Ks}[dim]
	dx := g.Dx(ind, lev, dim)
	return g.X0[dim] + (float64(lloc[dim]*nx+(i-is))+0.5)*dx
}
