// Copyright 2016 The Gofluid Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fluidref is a small, concrete reference implementation of the
// network.Fluid / network.Node / network.Properties contracts: a
// simple linear-compressibility equation of state, good enough to drive
// the core links in tests and examples without pulling in a full
// production fluid property library.
package fluidref

import "github.com/cpmech/gofluid/network"

// Species is a single entry in the fixed species list a node's fluid may
// carry; MW is molecular weight in kg/mol-equivalent units, consistent
// with the rest of the accumulator formulas (kPa, m^3, K). Psat/Hvap are
// optional: species that never evaporate (e.g. the spring-only liquid in
// a nominal accumulator test) can leave them nil.
type Species struct {
	Name string
	MW float64
	Gas bool
	R0 float64 // intrinsic density at P0
	P0 float64
	C float64 // compressibility: R = R0 + C*(P-P0)
	Psat SpeciesCurve // saturation pressure as a function of temperature
	Hvap SpeciesCurve // heat of vaporization as a function of temperature
}

// SpeciesCurve evaluates a saturation-pressure or heat-of-vaporization
// curve; *propfit.SaturationTemperatureFit and *propfit.HeatOfVaporizationFit
// both already expose this shape via their Get method, but a simple
// closure is often enough for tests.
type SpeciesCurve interface {
	Get(x float64) float64
}

type curveFunc func(float64) float64

func (f curveFunc) Get(x float64) float64 { return f(x) }

// Table is the process-wide, read-only-after-load species registry. Build
// one at startup and share it by reference through every link's Init
// context.
type Table struct {
	species map[string]Species
}

// NewTable builds a Table from a fixed species list.
func NewTable(list ...Species) *Table {
	t := &Table{species: make(map[string]Species, len(list))}
	for _, s := range list {
		t.species[s.Name] = s
	}
	return t
}

func (t *Table) lookup(name string) Species {
	s, ok := t.species[name]
	if !ok {
		panic("fluidref: unknown species " + name)
	}
	return s
}

func (t *Table) MWeight(name string) float64 { return t.lookup(name).MW }

func (t *Table) Phase(name string) network.Phase {
	if t.lookup(name).Gas {
		return network.PhaseGas
	}
	return network.PhaseLiquid
}

// ForSpecies returns the saturation/heat-of-vaporization handle for one
// species, satisfying network.SpeciesProperties.
func (t *Table) ForSpecies(name string) network.SpeciesProperties {
	return speciesProps{t.lookup(name)}
}

type speciesProps struct{ s Species }

func (p speciesProps) SaturationPressure(t float64) float64 {
	if p.s.Psat == nil {
		return 0
	}
	return p.s.Psat.Get(t)
}

func (p speciesProps) HeatOfVaporization(t float64) float64 {
	if p.s.Hvap == nil {
		return 0
	}
	return p.s.Hvap.Get(t)
}

// Fluid is a mixture: a fixed composition of mole fractions over the
// species of one Table, plus a mass and a temperature.
type Fluid struct {
	table *Table
	mass float64
	temp float64
	pressure float64
	moleFr map[string]float64 // normalized to sum 1
}

// NewFluid creates a single-species fluid sample.
func NewFluid(table *Table, species string, mass, temperature float64) *Fluid {
	return &Fluid{table: table, mass: mass, temp: temperature, moleFr: map[string]float64{species: 1}}
}

// NewMixture creates a fluid with an explicit mole-fraction composition.
func NewMixture(table *Table, moleFractions map[string]float64, mass, temperature float64) *Fluid {
	f := &Fluid{table: table, mass: mass, temp: temperature, moleFr: make(map[string]float64, len(moleFractions))}
	sum := 0.0
	for _, x := range moleFractions {
		sum += x
	}
	if sum <= 0 {
		sum = 1
	}
	for k, x := range moleFractions {
		f.moleFr[k] = x / sum
	}
	return f
}

// Clone returns an independent copy (internal fluids are never aliased).
func (f *Fluid) Clone() *Fluid {
	cp := &Fluid{table: f.table, mass: f.mass, temp: f.temp, pressure: f.pressure, moleFr: make(map[string]float64, len(f.moleFr))}
	for k, v := range f.moleFr {
		cp.moleFr[k] = v
	}
	return cp
}

func (f *Fluid) Temperature() float64 { return f.temp }

func (f *Fluid) MWeight() float64 {
	mw := 0.0
	for name, x := range f.moleFr {
		mw += x * f.table.lookup(name).MW
	}
	return mw
}

// Pressure returns the value last stored with SetPressure (zero until
// set); it is not derived from the equation of state.
func (f *Fluid) Pressure() float64 { return f.pressure }

func (f *Fluid) Density() float64 {
	rho := 0.0
	for name, x := range f.moleFr {
		s := f.table.lookup(name)
		rho += x * s.R0
	}
	return rho
}

func (f *Fluid) SpecificEnthalpy() float64 {
	// crude but monotone in temperature, sufficient for the enthalpy-driven
	// temperature updates the accumulator link performs.
	return 4.186 * f.temp
}

func (f *Fluid) MoleFraction(species string) float64 { return f.moleFr[species] }

func (f *Fluid) MassFraction(species string) float64 {
	mw := f.MWeight()
	if mw <= 0 {
		return 0
	}
	s := f.table.lookup(species)
	return f.moleFr[species] * s.MW / mw
}

func (f *Fluid) SetMass(mass float64) { f.mass = mass }
func (f *Fluid) Mass() float64 { return f.mass }

func (f *Fluid) SetTemperature(t float64) { f.temp = t }

func (f *Fluid) SetPressure(p float64) { f.pressure = p }

func (f *Fluid) SetMassAndMassFractions(mass float64, fractions map[string]float64) {
	f.mass = mass
	moles := make(map[string]float64, len(fractions))
	total := 0.0
	for name, mf := range fractions {
		s := f.table.lookup(name)
		if s.MW <= 0 {
			continue
		}
		n := mf / s.MW
		moles[name] = n
		total += n
	}
	if total <= 0 {
		return
	}
	for name, n := range moles {
		moles[name] = n / total
	}
	f.moleFr = moles
}

func (f *Fluid) ComputeTemperature(enthalpy float64) float64 { return enthalpy / 4.186 }

func (f *Fluid) ComputePressure(t, rho float64) float64 {
	// inverts R = R0 + C*(P-P0) for the mixture's single dominant species;
	// adequate for the accumulator's pressurizer coupling in tests.
	var best Species
	bestX := 0.0
	for name, x := range f.moleFr {
		if x <= bestX {
			continue
		}
		s := f.table.lookup(name)
		if s.C == 0 {
			continue
		}
		best, bestX = s, x
	}
	if bestX <= 0 {
		return 0
	}
	return best.P0 + (rho-best.R0)/best.C
}
