// Package input reads the YAML run configuration.
package input

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type Parameters struct {
	Title string `yaml:"Title"`

	Nx1 int `yaml:"Nx1"` // interior cells per block
	Nx2 int `yaml:"Nx2"`
	Nx3 int `yaml:"Nx3"`
	Ng  int `yaml:"NGhost"`

	Nbx1 int `yaml:"Nbx1"` // blocks tiling the domain
	Nbx2 int `yaml:"Nbx2"`
	Nbx3 int `yaml:"Nbx3"`

	Periodic [3]bool    `yaml:"Periodic"`
	XMin     [3]float64 `yaml:"XMin"`
	XMax     [3]float64 `yaml:"XMax"`

	NRanks    int    `yaml:"NRanks"`
	Partition string `yaml:"Partition"` // block, roundrobin, graph
	NWorkers  int    `yaml:"NWorkers"`  // 0 = all CPUs

	Nvar  int     `yaml:"Nvar"`
	Kappa float64 `yaml:"Kappa"`
	CFL   float64 `yaml:"CFL"`

	Problem      string  `yaml:"Problem"` // constant, gradient, interface
	InterfacePos float64 `yaml:"InterfacePos"`
	InterfaceLo  float64 `yaml:"InterfaceLo"`
	InterfaceHi  float64 `yaml:"InterfaceHi"`

	MaxSteps  int     `yaml:"MaxSteps"`
	FinalTime float64 `yaml:"FinalTime"`
}

// Defaults returns a runnable 2-D configuration; the input file overrides
// whatever fields it names.
func Defaults() *Parameters {
	return &Parameters{
		Title: "diffusion",
		Nx1:   16, Nx2: 16, Nx3: 1,
		Ng:   2,
		Nbx1: 2, Nbx2: 2, Nbx3: 1,
		Periodic:  [3]bool{true, true, true},
		XMin:      [3]float64{0, 0, 0},
		XMax:      [3]float64{1, 1, 1},
		NRanks:    1,
		Partition: "block",
		Nvar:      1,
		Kappa:     0.1,
		CFL:       0.5,
		Problem:   "interface",
		InterfacePos: 0.5, InterfaceLo: 1.0, InterfaceHi: 2.0,
		MaxSteps:  100,
		FinalTime: 1.0,
	}
}

func (p *Parameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, p)
}

// ReadFile loads path over the defaults.
func ReadFile(path string) (*Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	p := Defaults()
	if err := p.Parse(data); err != nil {
		return nil, fmt.Errorf("parse input file %s: %w", path, err)
	}
	return p, nil
}

func (p *Parameters) Validate() error {
	if p.Nx1 < 2 || p.Nx2 < 1 || p.Nx3 < 1 {
		return fmt.Errorf("invalid cell counts (%d,%d,%d)", p.Nx1, p.Nx2, p.Nx3)
	}
	if p.Nbx1 < 1 || p.Nbx2 < 1 || p.Nbx3 < 1 {
		return fmt.Errorf("invalid block counts (%d,%d,%d)", p.Nbx1, p.Nbx2, p.Nbx3)
	}
	if p.NRanks < 1 {
		return fmt.Errorf("NRanks %d < 1", p.NRanks)
	}
	if p.Nvar < 1 {
		return fmt.Errorf("Nvar %d < 1", p.Nvar)
	}
	if p.Kappa <= 0 {
		return fmt.Errorf("Kappa %g <= 0", p.Kappa)
	}
	if p.CFL <= 0 || p.CFL > 1 {
		return fmt.Errorf("CFL %g outside (0,1]", p.CFL)
	}
	for d := 0; d < 3; d++ {
		if p.XMax[d] <= p.XMin[d] {
			return fmt.Errorf("domain extent %d empty: [%g,%g]", d+1, p.XMin[d], p.XMax[d])
		}
	}
	switch p.Problem {
	case "constant", "gradient", "interface":
	default:
		return fmt.Errorf("unknown problem %q", p.Problem)
	}
	switch p.Partition {
	case "block", "roundrobin", "graph":
	default:
		return fmt.Errorf("unknown partition strategy %q", p.Partition)
	}
	return nil
}

func (p *Parameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", p.Title)
	fmt.Printf("(%d,%d,%d)\t= cells per block\n", p.Nx1, p.Nx2, p.Nx3)
	fmt.Printf("(%d,%d,%d)\t\t= block tiling\n", p.Nbx1, p.Nbx2, p.Nbx3)
	fmt.Printf("%d\t\t\t= ghost width\n", p.Ng)
	fmt.Printf("%d\t\t\t= ranks [%s]\n", p.NRanks, p.Partition)
	fmt.Printf("%8.5f\t\t= Kappa\n", p.Kappa)
	fmt.Printf("%8.5f\t\t= CFL\n", p.CFL)
	fmt.Printf("%8.5f\t\t= FinalTime\n", p.FinalTime)
	fmt.Printf("[%s]\t\t= Problem\n", p.Problem)
}
