package driver

import "github.com/notargets/goamr/mesh"

// ProblemGenerator fills the interior cells of u for every block of a pack.
// Ghost zones are left to the first exchange.
type ProblemGenerator func(pk *mesh.MeshBlockPack, g Geometry, u *mesh.Array5)

// GenConstant fills every variable with val. Useful as a conservation probe:
// a constant field must survive any number of diffusion steps exactly.
func GenConstant(val float64) ProblemGenerator {
	return func(pk *mesh.MeshBlockPack, g Geometry, u *mesh.Array5) {
		fillInterior(pk, g, u, func(x, y, z float64) float64 { return val })
	}
}

// GenGradientX fills u with the x1 coordinate, a linear profile that explicit
// diffusion leaves unchanged in the interior.
func GenGradientX() ProblemGenerator {
	return func(pk *mesh.MeshBlockPack, g Geometry, u *mesh.Array5) {
		fillInterior(pk, g, u, func(x, y, z float64) float64 { return x })
	}
}

// GenInterface fills a two-state profile split at fraction xc of the domain
// along x1: lo below, hi above. The jump drives a block-crossing diffusion
// front.
func GenInterface(xc, lo, hi float64) ProblemGenerator {
	return func(pk *mesh.MeshBlockPack, g Geometry, u *mesh.Array5) {
		xs := g.X0[0] + xc*g.L[0]
		fillInterior(pk, g, u, func(x, y, z float64) float64 {
			if x < xs {
				return lo
			}
			return hi
		})
	}
}

func fillInterior(pk *mesh.MeshBlockPack, g Geometry, u *mesh.Array5, f func(x, y, z float64) float64) {
	ind := pk.Indcs
	for m := 0; m < pk.Nmb; m++ {
		lloc, lev := pk.Lloc[m], pk.Levs[m]
		for v := 0; v < u.Nvar; v++ {
			for k := ind.Ks; k <= ind.Ke; k++ {
				z := 0.0
				if ind.ThreeD() {
					z = g.CellCenter(ind, lloc, lev, 2, k)
				}
				for j := ind.Js; j <= ind.Je; j++ {
					y := 0.0
					if ind.MultiD() {
						y = g.CellCenter(ind, lloc, lev, 1, j)
					}
					for i := ind.Is; i <= ind.Ie; i++ {
						x := g.CellCenter(ind, lloc, lev, 0, i)
						u.Set(m, v, k, j, i, f(x, y, z))
					}
				}
			}
		}
	}
}
