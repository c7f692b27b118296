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

// Package collision models collisional energy transfer between an excited
// molecule and an inert bath gas: Lennard-Jones collision frequencies,
// grain-to-grain energy transfer probabilities, and weak-collision
// efficiencies.
package collision

import (
	"math"

	"github.com/ctessum/sparse"
)

// physical constants
const (
	boltzmann   = 1.3806504e-23 // J/K
	avogadro    = 6.02214179e23 // 1/mol
	gasConstant = 8.314472      // J/(mol K)
)

// Transport holds the Lennard-Jones parameters of a species.
type Transport struct {
	Sigma     float64 // collision diameter [m]
	Epsilon   float64 // well depth [J]
	MolWeight float64 // molecular weight [kg/mol]
}

// Frequency returns the Lennard-Jones collision frequency [1/s] of species a
// with a bath gas at temperature T [K] and pressure P [Pa], using the Neufeld
// fit to the reduced collision integral Ω(2,2)*.
func Frequency(a, bath Transport, T, P float64) float64 {
	gasConc := P / (boltzmann * T)
	mu := 1 / (1/a.MolWeight + 1/bath.MolWeight) / avogadro
	sigma := 0.5 * (a.Sigma + bath.Sigma)
	epsilon := math.Sqrt(a.Epsilon * bath.Epsilon)

	tRed := boltzmann * T / epsilon
	omega22 := 1.16145*math.Pow(tRed, -0.14874) +
		0.52487*math.Exp(-0.77320*tRed) +
		2.16178*math.Exp(-2.43787*tRed)

	return omega22 * math.Sqrt(8*boltzmann*T/(math.Pi*mu)) * math.Pi * sigma * sigma * gasConc
}

// A Model generates single-collision energy transfer probabilities and
// weak-collision efficiencies for a molecule with density of states dens
// [mol/J, indexed like the energy grid e in J/mol].
type Model interface {
	// Probabilities returns the grain-to-grain transfer probability matrix
	// P at temperature T, where P[j,i] is the probability that a molecule
	// in grain i lands in grain j after one collision. Every column sums
	// to 1; grains with zero density are inert, with identity columns and
	// no incoming transfer.
	Probabilities(e []float64, T float64, dens []float64) *sparse.DenseArray

	// Efficiency returns the fraction β ∈ (0,1] of collisions that is as
	// effective as an idealized strong collision, for a well with ground
	// energy e0 and first reactive energy ereac on the same axis as e.
	Efficiency(e []float64, T float64, dens []float64, e0, ereac float64) float64
}

// SingleExponentialDown is the single-exponential-down energy transfer model:
// the probability of a deactivating collision removing energy ΔE is
// proportional to exp(−ΔE/α), with activating collisions fixed by detailed
// balance.
type SingleExponentialDown struct {
	Alpha float64 // average energy transferred in a deactivating collision [J/mol]
}

// Probabilities implements the Model interface. Columns are normalized from
// the highest grain downward so that the upward entries, which detailed
// balance ties to already-normalized columns, are preserved.
func (m SingleExponentialDown) Probabilities(e []float64, T float64, dens []float64) *sparse.DenseArray {
	n := len(e)
	p := sparse.ZerosDense(n, n)
	beta := 1 / (gasConstant * T)

	// Unnormalized downward kernel. A grain with no states can be neither
	// the source nor the destination of a collision.
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			if dens[j] > 0 {
				p.Set(math.Exp(-(e[i]-e[j])/m.Alpha), j, i)
			}
		}
	}

	for i := n - 1; i >= 0; i-- {
		if dens[i] <= 0 {
			for j := 0; j < n; j++ {
				p.Set(0, j, i)
			}
			p.Set(1, i, i)
			continue
		}
		// Upward entries by detailed balance against the normalized
		// downward entries of the higher columns.
		var up float64
		for j := i + 1; j < n; j++ {
			v := 0.0
			if dens[j] > 0 {
				v = p.Get(i, j) * dens[j] / dens[i] * math.Exp(-(e[j]-e[i])*beta)
			}
			p.Set(v, j, i)
			up += v
		}
		var down float64
		for j := 0; j <= i; j++ {
			down += p.Get(j, i)
		}
		scale := (1 - up) / down
		if scale < 0 {
			// The grid is too coarse for activation out of this grain
			// to stay below unit probability; the best that can be
			// done is to drop the downward entries.
			scale = 0
		}
		for j := 0; j <= i; j++ {
			p.Set(p.Get(j, i)*scale, j, i)
		}
		if scale == 0 {
			// Renormalize the column so probability is conserved.
			for j := i + 1; j < n; j++ {
				p.Set(p.Get(j, i)/up, j, i)
			}
		}
	}
	return p
}

// Efficiency implements the Model interface using the weak-collision
// broadening factor analysis of Troe (1977): the efficiency β satisfies
// β ≈ (α/(α+FE·R·T))², corrected for the portion of the equilibrium
// population already above the reactive threshold.
func (m SingleExponentialDown) Efficiency(e []float64, T float64, dens []float64, e0, ereac float64) float64 {
	de := e[1] - e[0]
	rt := gasConstant * T

	// Energy dependence factor FE of the equilibrium distribution above
	// the reactive threshold.
	var feNum, feDen float64
	for r := range e {
		if e[r] < ereac {
			continue
		}
		value := dens[r] * math.Exp(-e[r]/rt)
		feNum += value * de
		if feDen == 0 {
			feDen = value * rt
		}
	}
	if feDen == 0 {
		return 1
	}
	fe := feNum / feDen

	var delta1, delta2, deltaN float64
	for r := range e {
		value := dens[r] * math.Exp(-e[r]/rt)
		if e[r] < ereac {
			delta1 += value * de
			delta2 += value * de * math.Exp(-(ereac-e[r])/(fe*rt))
		}
		deltaN += value * de
	}
	if deltaN == 0 {
		return 1
	}
	delta1 /= deltaN
	delta2 /= deltaN
	delta := delta1 - fe*rt/(m.Alpha+fe*rt)*delta2
	if delta <= 0 {
		return 1
	}

	beta := math.Pow(m.Alpha/(m.Alpha+fe*rt), 2) / delta
	if beta > 1 {
		beta = 1
	}
	return beta
}
