package driver

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/goamr/bvals"
	"github.com/notargets/goamr/comm"
	"github.com/notargets/goamr/mesh"
)

// Simulation is one rank's time-stepping state: the pack, its conserved
// variables and face fluxes, the boundary-exchange driver, and the diffusion
// operator.
type Simulation struct {
	Pk   *mesh.MeshBlockPack
	U    *mesh.Array5
	Flx  *mesh.FaceField
	Bv   *bvals.BoundaryValues
	Op   *Diffusion
	Geom Geometry

	Time float64
	Step int
}

// NewSimulation allocates field storage and boundary buffers for pk on the
// given transport endpoint.
func NewSimulation(pk *mesh.MeshBlockPack, tp comm.Interface, nvar int, kappa float64, geom Geometry) (*Simulation, error) {
	bv, err := bvals.NewBoundaryValues(pk, tp, nvar)
	if err != nil {
		return nil, fmt.Errorf("boundary buffers: %w", err)
	}
	return &Simulation{
		Pk:   pk,
		U:    mesh.NewArray5(pk.Nmb, nvar, pk.Indcs),
		Flx:  mesh.NewFaceField(pk.Nmb, nvar, pk.Indcs),
		Bv:   bv,
		Op:   &Diffusion{Kappa: kappa, Geom: geom},
		Geom: geom,
	}, nil
}

// Initialize fills the initial condition.
func (s *Simulation) Initialize(gen ProblemGenerator) {
	gen(s.Pk, s.Geom, s.U)
}

// Advance takes one explicit step of size dt: ghost exchange, flux
// computation, flux correction at level jumps, then the conservative update.
func (s *Simulation) Advance(dt float64) error {
	ghosts := NewTaskList(
		Task{"init_recv", s.Bv.InitRecv},
		Task{"pack_send", func() (bvals.TaskStatus, error) { return s.Bv.PackAndSend(s.U) }},
		Task{"recv_unpack", func() (bvals.TaskStatus, error) { return s.Bv.RecvAndUnpack(s.U) }},
		Task{"clear_recv", s.Bv.ClearRecv},
		Task{"clear_send", s.Bv.ClearSend},
	)
	if err := ghosts.Run(); err != nil {
		return fmt.Errorf("step %d ghost exchange: %w", s.Step, err)
	}

	s.Op.Fluxes(s.Pk, s.U, s.Flx)

	correct := NewTaskList(
		Task{"init_recv_flux", s.Bv.InitRecvFlux},
		Task{"pack_send_flux", func() (bvals.TaskStatus, error) { return s.Bv.PackAndSendFlux(s.Flx) }},
		Task{"recv_unpack_flux", func() (bvals.TaskStatus, error) { return s.Bv.RecvAndUnpackFlux(s.Flx) }},
		Task{"clear_recv_flux", s.Bv.ClearRecvFlux},
		Task{"clear_send_flux", s.Bv.ClearSendFlux},
	)
	if err := correct.Run(); err != nil {
		return fmt.Errorf("step %d flux correction: %w", s.Step, err)
	}

	s.Op.Update(s.Pk, s.U, s.Flx, dt)
	s.Time += dt
	s.Step++
	return nil
}

// TotalIntegral returns the volume integral of variable v over the rank's
// interior cells, the quantity the conservative update preserves on a
// periodic domain.
func (s *Simulation) TotalIntegral(v int) float64 {
	ind := s.Pk.Indcs
	var total float64
	for m := 0; m < s.Pk.Nmb; m++ {
		vol := s.Geom.Dx(ind, s.Pk.Levs[m], 0)
		if ind.MultiD() {
			vol *= s.Geom.Dx(ind, s.Pk.Levs[m], 1)
		}
		if ind.ThreeD() {
			vol *= s.Geom.Dx(ind, s.Pk.Levs[m], 2)
		}
		var sum float64
		for k := ind.Ks; k <= ind.Ke; k++ {
			for j := ind.Js; j <= ind.Je; j++ {
				lo := s.U.Idx(m, v, k, j, ind.Is)
				sum += floats.Sum(s.U.Data[lo : lo+ind.Nx1])
			}
		}
		total += vol * sum
	}
	return total
}
