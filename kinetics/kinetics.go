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

// Package kinetics evaluates microcanonical (energy-resolved) rate
// coefficients k(E) for elementary reactions, either from transition state
// state counts (RRKM theory) or from high-pressure-limit Arrhenius parameters
// (inverse Laplace transform).
package kinetics

import (
	"fmt"
	"math"
)

// physical constants
const (
	planck   = 6.62606896e-34 // J s
	avogadro = 6.02214179e23  // 1/mol
)

// RRKM calculates k(E) [1/s] from RRKM (microcanonical transition state)
// theory: k(E) = N‡(E−E0‡)/(h·ρ(E)), where N‡ is the sum of states of the
// transition state, E0‡ its ground-state energy [J/mol] on the same energy
// axis as the grid e, and ρ the density of states of the reactant [mol/J].
// densTS is the transition state's density of states, from which the sum of
// states is accumulated on the grid.
func RRKM(e, densReac, densTS []float64, e0TS float64) []float64 {
	n := len(e)
	de := e[1] - e[0]
	k := make([]float64, n)

	// Sum of states of the transition state.
	sumTS := make([]float64, n)
	var running float64
	for r := 0; r < n; r++ {
		running += densTS[r] * de
		sumTS[r] = running
	}

	r0 := int(math.Round(e0TS / de))
	if r0 < 0 {
		r0 = 0
	}
	for r := r0; r < n; r++ {
		if densReac[r] > 0 {
			k[r] = sumTS[r-r0] / (planck * avogadro * densReac[r])
		}
	}
	return k
}

// Arrhenius holds modified-Arrhenius high-pressure-limit parameters
// k∞(T) = A·(T/T0)^N·exp(−Ea/RT).
type Arrhenius struct {
	A  float64 // pre-exponential factor; 1/s for unimolecular steps
	N  float64 // temperature exponent
	Ea float64 // activation energy [J/mol]
	T0 float64 // reference temperature [K]; 1 K if zero
}

// ILT calculates k(E) from the Arrhenius parameters by inverse Laplace
// transform of k∞(T): k(E) = A·(T/T0)^N·ρ(E−Ea)/ρ(E). The temperature only
// matters when the exponent N is nonzero, in which case the T^N factor is
// evaluated at the supplied temperature; a negative activation energy is
// clamped to zero.
func (a *Arrhenius) ILT(e, dens []float64, T float64) ([]float64, error) {
	freqFactor := a.A
	if a.N != 0 {
		if T <= 0 {
			return nil, fmt.Errorf("kinetics: a positive temperature is required for "+
				"the inverse Laplace transform with temperature exponent %g", a.N)
		}
		t0 := a.T0
		if t0 <= 0 {
			t0 = 1
		}
		freqFactor *= math.Pow(T/t0, a.N)
	}

	ea := a.Ea
	if ea < 0 {
		ea = 0
	}
	n := len(e)
	de := e[1] - e[0]
	s := int(math.Round(ea / de))

	k := make([]float64, n)
	for r := s; r < n; r++ {
		if dens[r] > 0 {
			k[r] = freqFactor * dens[r-s] / dens[r]
		}
	}
	return k, nil
}

// Reverse calculates the microcanonical rate of the reverse reaction from the
// forward rate by detailed balance: krev(E)·ρprod(E) = kfwd(E)·ρreac(E).
func Reverse(kfwd, densReac, densProd []float64) []float64 {
	k := make([]float64, len(kfwd))
	for r := range kfwd {
		if densProd[r] > 0 {
			k[r] = kfwd[r] * densReac[r] / densProd[r]
		}
	}
	return k
}
