/*
Copyright © 2026 the PDep authors.
This file is part of PDep.

PDep is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

PDep is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with PDep.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package statmech counts molecular energy states. A Model aggregates the
// rovibrational degrees of freedom of one molecular configuration and
// evaluates its density and sum of states on an energy grid: classical modes
// (rotation, translation) are convolved analytically and quantized harmonic
// oscillators are folded in by Beyer-Swinehart direct counting.
//
// Energies are in J/mol; densities of states are in mol/J.
package statmech

import "math"

// physical constants
const (
	planck       = 6.62606896e-34 // J s
	avogadro     = 6.02214179e23  // 1/mol
	speedOfLight = 2.99792458e10  // cm/s, for wavenumber conversions
)

// WavenumberToEnergy converts a vibrational or rotational constant from cm^-1
// to J/mol.
func WavenumberToEnergy(nu float64) float64 {
	return planck * speedOfLight * nu * avogadro
}

// A Mode is one group of molecular degrees of freedom.
type Mode interface {
	isMode()
}

// classicalMode is a mode whose density of states has a closed classical
// form; Model convolves these before direct-counting the oscillators.
type classicalMode interface {
	Mode
	densityOfStates(e []float64) []float64
}

// Translation is three-dimensional free relative motion of mass Mass [kg/mol]
// in a reference volume Volume [m³] (1 m³ if zero).
type Translation struct {
	Mass   float64
	Volume float64
}

func (Translation) isMode() {}

func (t Translation) densityOfStates(e []float64) []float64 {
	v := t.Volume
	if v == 0 {
		v = 1
	}
	q := v * math.Pow(2*math.Pi*t.Mass/(avogadro*planck*planck), 1.5)
	rho := make([]float64, len(e))
	for r, energy := range e {
		if energy > 0 {
			rho[r] = q * 2 * math.Sqrt(energy/math.Pi)
		}
	}
	return rho
}

// RigidRotor is classical external rotation. For a linear rotor supply one
// rotational constant; for a nonlinear rotor supply three. Constants are in
// J/mol (use WavenumberToEnergy for values in cm^-1).
type RigidRotor struct {
	Linear    bool
	Constants []float64
	Symmetry  int // external symmetry number; 1 if zero
}

func (RigidRotor) isMode() {}

func (rot RigidRotor) densityOfStates(e []float64) []float64 {
	sigma := float64(rot.Symmetry)
	if sigma == 0 {
		sigma = 1
	}
	rho := make([]float64, len(e))
	if rot.Linear {
		b := rot.Constants[0]
		for r := range e {
			rho[r] = 1 / (sigma * b)
		}
		return rho
	}
	abc := rot.Constants[0] * rot.Constants[1] * rot.Constants[2]
	for r, energy := range e {
		if energy > 0 {
			rho[r] = 2 * math.Sqrt(energy/abc) / sigma
		}
	}
	return rho
}

// HarmonicOscillator is a set of quantized vibrational modes with fundamental
// frequencies in cm^-1.
type HarmonicOscillator struct {
	Frequencies []float64
}

func (HarmonicOscillator) isMode() {}

// Model is the complete set of degrees of freedom of one configuration.
type Model struct {
	Modes []Mode

	// SpinMultiplicity is the electronic ground-state degeneracy; 1 if zero.
	SpinMultiplicity int
}

// DensityOfStates evaluates the density of states [mol/J] on the energy grid
// e [J/mol], measured from the configuration's ground state.
func (m *Model) DensityOfStates(e []float64) []float64 {
	de := e[1] - e[0]

	var rho []float64
	for _, mode := range m.Modes {
		c, ok := mode.(classicalMode)
		if !ok {
			continue
		}
		if rho == nil {
			rho = c.densityOfStates(e)
		} else {
			rho = Convolve(rho, c.densityOfStates(e), e)
		}
	}
	if rho == nil {
		// No classical modes: a single state at the origin.
		rho = make([]float64, len(e))
		rho[0] = 1 / de
	}

	for _, mode := range m.Modes {
		if ho, ok := mode.(HarmonicOscillator); ok {
			rho = beyerSwinehart(rho, ho.Frequencies, de)
		}
	}

	if m.SpinMultiplicity > 1 {
		g := float64(m.SpinMultiplicity)
		for r := range rho {
			rho[r] *= g
		}
	}
	return rho
}

// SumOfStates evaluates the cumulative number of states at or below each
// grid energy.
func (m *Model) SumOfStates(e []float64) []float64 {
	de := e[1] - e[0]
	rho := m.DensityOfStates(e)
	sum := make([]float64, len(e))
	var running float64
	for r := range rho {
		running += rho[r] * de
		sum[r] = running
	}
	return sum
}

// beyerSwinehart folds quantized oscillators into an existing density of
// states by the Beyer-Swinehart direct count.
func beyerSwinehart(rho []float64, frequencies []float64, de float64) []float64 {
	out := make([]float64, len(rho))
	copy(out, rho)
	for _, nu := range frequencies {
		dr := int(math.Round(WavenumberToEnergy(nu) / de))
		if dr < 1 {
			dr = 1
		}
		for r := dr; r < len(out); r++ {
			out[r] += out[r-dr]
		}
	}
	return out
}

// Convolve returns the discrete energy convolution of two densities of
// states on the grid e: the density of states of the two corresponding
// configurations treated as a non-interacting pair.
func Convolve(a, b []float64, e []float64) []float64 {
	de := e[1] - e[0]
	c := make([]float64, len(e))
	for r := range c {
		var sum float64
		for s := 0; s <= r; s++ {
			sum += a[s] * b[r-s]
		}
		c[r] = sum * de
	}
	return c
}
