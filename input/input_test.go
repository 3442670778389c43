package input

import "testing"

func TestParseOverridesDefaults(t *testing.T) {
	data := []byte(`
Title: front
Nx1: 32
Nbx1: 4
NRanks: 2
Kappa: 0.25
Problem: gradient
Periodic: [true, false, false]
XMax: [2.0, 1.0, 1.0]
`)
	p := Defaults()
	if err := p.Parse(data); err != nil {
		t.Fatal(err)
	}
	if p.Title != "front" || p.Nx1 != 32 || p.Nbx1 != 4 || p.NRanks != 2 {
		t.Fatalf("overrides not applied: %+v", p)
	}
	if p.Kappa != 0.25 || p.Problem != "gradient" {
		t.Fatalf("overrides not applied: %+v", p)
	}
	if p.Periodic != [3]bool{true, false, false} {
		t.Fatalf("Periodic = %v", p.Periodic)
	}
	if p.XMax[0] != 2.0 {
		t.Fatalf("XMax = %v", p.XMax)
	}
	// untouched fields keep their defaults
	if p.Nx2 != 16 || p.CFL != 0.5 {
		t.Fatalf("defaults clobbered: %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	mods := []func(*Parameters){
		func(p *Parameters) { p.Nx1 = 1 },
		func(p *Parameters) { p.Nbx1 = 0 },
		func(p *Parameters) { p.NRanks = 0 },
		func(p *Parameters) { p.Nvar = 0 },
		func(p *Parameters) { p.Kappa = 0 },
		func(p *Parameters) { p.CFL = 1.5 },
		func(p *Parameters) { p.XMax = p.XMin },
		func(p *Parameters) { p.Problem = "vortex" },
		func(p *Parameters) { p.Partition = "random" },
	}
	for n, mod := range mods {
		p := Defaults()
		mod(p)
		if err := p.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", n)
		}
	}
}
