package driver

import (
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/notargets/goamr/comm"
	"github.com/notargets/goamr/input"
	"github.com/notargets/goamr/kernel"
	"github.com/notargets/goamr/mesh"
)

// World is an in-process run: one Simulation per rank over a Loopback
// transport, stepped in lockstep so every rank advances with the same dt.
type World struct {
	Sims []*Simulation

	MaxSteps  int
	FinalTime float64
	CFL       float64
}

// NewWorld builds the mesh, partitions it across p.NRanks ranks, and wires
// each rank's simulation to a shared in-process transport.
func NewWorld(p *input.Parameters) (*World, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.NWorkers > 0 {
		kernel.SetDegree(p.NWorkers)
	}

	ind, err := mesh.NewIndcs(p.Nx1, p.Nx2, p.Nx3, p.Ng, false)
	if err != nil {
		return nil, err
	}
	strat, err := partitionStrategy(p.Partition)
	if err != nil {
		return nil, err
	}
	packs, err := mesh.BuildUniform(ind, p.Nbx1, p.Nbx2, p.Nbx3, p.Periodic, p.NRanks, strat)
	if err != nil {
		return nil, err
	}

	geom := Geometry{
		X0: p.XMin,
		L: [3]float64{
			p.XMax[0] - p.XMin[0],
			p.XMax[1] - p.XMin[1],
			p.XMax[2] - p.XMin[2],
		},
		Nbx: [3]int{p.Nbx1, p.Nbx2, p.Nbx3},
	}
	gen, err := problemGenerator(p)
	if err != nil {
		return nil, err
	}

	lb := comm.NewLoopback(p.NRanks)
	w := &World{MaxSteps: p.MaxSteps, FinalTime: p.FinalTime, CFL: p.CFL}
	for r := 0; r < p.NRanks; r++ {
		sim, err := NewSimulation(packs[r], lb.Endpoint(r), p.Nvar, p.Kappa, geom)
		if err != nil {
			return nil, fmt.Errorf("rank %d: %w", r, err)
		}
		sim.Initialize(gen)
		w.Sims = append(w.Sims, sim)
	}
	return w, nil
}

func partitionStrategy(name string) (mesh.PartitionStrategy, error) {
	switch name {
	case "block":
		return mesh.BlockPartition, nil
	case "roundrobin":
		return mesh.RoundRobin, nil
	case "graph":
		return mesh.GraphPartition, nil
	}
	return 0, fmt.Errorf("unknown partition strategy %q", name)
}

func problemGenerator(p *input.Parameters) (ProblemGenerator, error) {
	switch p.Problem {
	case "constant":
		return GenConstant(1.0), nil
	case "gradient":
		return GenGradientX(), nil
	case "interface":
		return GenInterface(p.InterfacePos, p.InterfaceLo, p.InterfaceHi), nil
	}
	return nil, fmt.Errorf("unknown problem %q", p.Problem)
}

// Dt returns the step all ranks take: the CFL fraction of the tightest
// stability limit over every rank.
func (w *World) Dt() float64 {
	dt := math.Inf(1)
	for _, s := range w.Sims {
		dt = math.Min(dt, s.Op.StableDt(s.Pk))
	}
	return w.CFL * dt
}

// Run steps every rank until MaxSteps or FinalTime, whichever comes first.
// Ranks advance concurrently inside a step; the exchange protocol provides the
// cross-rank synchronization.
func (w *World) Run() error {
	for step := 0; step < w.MaxSteps && w.Sims[0].Time < w.FinalTime; step++ {
		dt := w.Dt()
		if t := w.Sims[0].Time; t+dt > w.FinalTime {
			dt = w.FinalTime - t
		}

		errs := make([]error, len(w.Sims))
		var wg sync.WaitGroup
		for r, s := range w.Sims {
			wg.Add(1)
			go func(r int, s *Simulation) {
				defer wg.Done()
				errs[r] = s.Advance(dt)
			}(r, s)
		}
		wg.Wait()
		for r, err := range errs {
			if err != nil {
				return fmt.Errorf("rank %d: %w", r, err)
			}
		}
		log.Printf("cycle=%d time=%.6e dt=%.6e", w.Sims[0].Step, w.Sims[0].Time, dt)
	}
	return nil
}

// TotalIntegral sums the conserved integral of variable v over all ranks.
func (w *World) TotalIntegral(v int) float64 {
	var total float64
	for _, s := range w.Sims {
		total += s.TotalIntegral(v)
	}
	return total
}
