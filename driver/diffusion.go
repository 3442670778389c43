package driver

import (
	"math"

	"github.com/notargets/goamr/kernel"
	"github.com/notargets/goamr/mesh"
)

// Diffusion is an explicit isotropic diffusion operator, the minimal
// conservation-law stencil that exercises both ghost-zone exchange (the flux
// stencil reads one ghost cell) and flux correction (fluxes live on faces and
// the update telescopes them).
type Diffusion struct {
	Kappa float64
	Geom  Geometry
}

// StableDt returns the explicit stability limit over the pack's blocks,
// dx_min^2 / (2 * ndim * kappa), with dx halved per refinement level.
func (d *Diffusion) StableDt(pk *mesh.MeshBlockPack) float64 {
	ind := pk.Indcs
	fac := 1.0 / float64(2*ind.NDim())
	dt := math.Inf(1)
	for m := 0; m < pk.Nmb; m++ {
		dx := d.Geom.Dx(ind, pk.Levs[m], 0)
		if ind.MultiD() {
			dx = math.Min(dx, d.Geom.Dx(ind, pk.Levs[m], 1))
		}
		if ind.ThreeD() {
			dx = math.Min(dx, d.Geom.Dx(ind, pk.Levs[m], 2))
		}
		dt = math.Min(dt, fac*dx*dx/d.Kappa)
	}
	return dt
}

// Fluxes fills flx with -kappa * du/dx on every interior-bounding face. Ghost
// zones of u must be current; the stencil reaches one cell past the interior.
func (d *Diffusion) Fluxes(pk *mesh.MeshBlockPack, u *mesh.Array5, flx *mesh.FaceField) {
	ind := pk.Indcs
	kernel.ParFor(pk.Nmb, func(m int) {
		dx1 := d.Geom.Dx(ind, pk.Levs[m], 0)
		for v := 0; v < u.Nvar; v++ {
			for k := ind.Ks; k <= ind.Ke; k++ {
				for j := ind.Js; j <= ind.Je; j++ {
					for i := ind.Is; i <= ind.Ie+1; i++ {
						flx.X1f.Set(m, v, k, j, i,
							-d.Kappa*(u.At(m, v, k, j, i)-u.At(m, v, k, j, i-1))/dx1)
					}
				}
			}
		}
		if ind.MultiD() {
			dx2 := d.Geom.Dx(ind, pk.Levs[m], 1)
			for v := 0; v < u.Nvar; v++ {
				for k := ind.Ks; k <= ind.Ke; k++ {
					for j := ind.Js; j <= ind.Je+1; j++ {
						for i := ind.Is; i <= ind.Ie; i++ {
							flx.X2f.Set(m, v, k, j, i,
								-d.Kappa*(u.At(m, v, k, j, i)-u.At(m, v, k, j-1, i))/dx2)
						}
					}
				}
			}
		}
		if ind.ThreeD() {
			dx3 := d.Geom.Dx(ind, pk.Levs[m], 2)
			for v := 0; v < u.Nvar; v++ {
				for k := ind.Ks; k <= ind.Ke+1; k++ {
					for j := ind.Js; j <= ind.Je; j++ {
						for i := ind.Is; i <= ind.Ie; i++ {
							flx.X3f.Set(m, v, k, j, i,
								-d.Kappa*(u.At(m, v, k, j, i)-u.At(m, v, k-1, j, i))/dx3)
						}
					}
				}
			}
		}
	})
}

// Update applies the conservative flux-difference update to the interior
// cells: u -= dt/dx * (F_right - F_left) summed over dimensions. Run after
// flux correction so coincident faces carry identical fluxes on both sides.
func (d *Diffusion) Update(pk *mesh.MeshBlockPack, u *mesh.Array5, flx *mesh.FaceField, dt float64) {
	ind := pk.Indcs
	kernel.ParFor(pk.Nmb, func(m int) {
		c1 := dt / d.Geom.Dx(ind, pk.Levs[m], 0)
		c2, c3 := 0.0, 0.0
		if ind.MultiD() {
			c2 = dt / d.Geom.Dx(ind, pk.Levs[m], 1)
		}
		if ind.ThreeD() {
			c3 = dt / d.Geom.Dx(ind, pk.Levs[m], 2)
		}
		for v := 0; v < u.Nvar; v++ {
			for k := ind.Ks; k <= ind.Ke; k++ {
				for j := ind.Js; j <= ind.Je; j++ {
					for i := ind.Is; i <= ind.Ie; i++ {
						du := c1 * (flx.X1f.At(m, v, k, j, i+1) - flx.X1f.At(m, v, k, j, i))
						if ind.MultiD() {
							du += c2 * (flx.X2f.At(m, v, k, j+1, i) - flx.X2f.At(m, v, k, j, i))
						}
						if ind.ThreeD() {
							du += c3 * (flx.X3f.At(m, v, k+1, j, i) - flx.X3f.At(m, v, k, j, i))
						}
						u.Set(m, v, k, j, i, u.At(m, v, k, j, i)-du)
					}
				}
			}
		}
	})
}
