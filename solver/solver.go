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

// Package solver reduces the energy-resolved master equation of a
// unimolecular reaction network to phenomenological rate coefficients k(T,P)
// at a single temperature and pressure. Three interchangeable approximations
// are provided: the modified strong collision, reservoir state, and
// chemically-significant eigenvalues methods.
package solver

import (
	"fmt"
	"math"
	"strings"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/mat"
)

// physical constants
const gasConstant = 8.314472 // J/(mol K)

// Problem is the input shared by all solution methods at one (T,P) point.
// The density of states rows are rescaled so that the Boltzmann-weighted
// population of each configuration sums to unity over the grains.
type Problem struct {
	T float64 // temperature [K]
	P float64 // pressure [Pa]

	E          []float64          // energy grains [J/mol], starting at zero
	DensStates *sparse.DenseArray // (Nisom+Nreac)×Ngrains rescaled densities of states

	// CollFreq holds each isomer's collision frequency [1/s]; for the
	// modified strong collision method it arrives pre-scaled by the
	// collision efficiency β.
	CollFreq []float64

	// CollMatrices holds, for methods that need them, the full collision
	// transfer matrices: an Nisom×Ngrains×Ngrains array whose [i,:,:]
	// block is the collision frequency of isomer i times its transfer
	// probability matrix.
	CollMatrices *sparse.DenseArray

	// EqRatios holds the unnormalized equilibrium weights of each
	// configuration (the Boltzmann integrals used to rescale DensStates);
	// only the chemically-significant eigenvalues method consumes them.
	EqRatios []float64

	Kij *sparse.DenseArray // isomerization rates (Nisom×Nisom×Ngrains)
	Gnj *sparse.DenseArray // dissociation rates ((Nreac+Nprod)×Nisom×Ngrains)
	Fim *sparse.DenseArray // association rates (Nisom×Nreac×Ngrains)

	// EReac holds each isomer's lowest adjoining transition state energy;
	// isomers with no path reactions carry an effectively infinite value.
	EReac []float64

	NIsom, NReac, NProd int
}

// A Method reduces a master equation Problem to an
// (Nisom+Nreac+Nprod)-square phenomenological rate matrix whose [i,j] entry
// is the rate coefficient from configuration j into configuration i, with
// every column summing to zero. The second return value holds the
// pseudo-steady grain populations pa[isomer, source, grain] behind the
// reduction.
type Method interface {
	Name() string

	// NeedsCollisionMatrices reports whether the method consumes full
	// energy-transfer matrices (Problem.CollMatrices) rather than scalar
	// collision frequencies.
	NeedsCollisionMatrices() bool

	Apply(p *Problem) (*mat.Dense, *sparse.DenseArray, error)
}

// FromName resolves a case-insensitive method name to one of the three
// implementations. An unrecognized name is a configuration error.
func FromName(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "modified strong collision":
		return ModifiedStrongCollision{}, nil
	case "reservoir state":
		return ReservoirState{}, nil
	case "chemically-significant eigenvalues":
		return ChemicallySignificantEigenvalues{}, nil
	}
	return nil, fmt.Errorf(`solver: unknown method %q; must be one of `+
		`"modified strong collision", "reservoir state", or `+
		`"chemically-significant eigenvalues"`, name)
}

// boltzmannPop returns the equilibrium population of configuration n in
// grain r under the rescaled densities of states, which sums to unity over
// the grains of each configuration.
func (p *Problem) boltzmannPop(n, r int) float64 {
	return p.DensStates.Get(n, r) * boltzmannFactor(p.E[r], p.T)
}

func boltzmannFactor(e, t float64) float64 {
	return math.Exp(-e / (gasConstant * t))
}

// firstReactiveGrain returns, per isomer, the lowest grain whose energy
// reaches the isomer's first reactive energy; len(p.E) if none do.
func (p *Problem) firstReactiveGrain() []int {
	start := make([]int, p.NIsom)
	for i := 0; i < p.NIsom; i++ {
		start[i] = len(p.E)
		for r, e := range p.E {
			if e >= p.EReac[i] {
				start[i] = r
				break
			}
		}
	}
	return start
}

// collGenerator returns the master-equation collision generator of isomer i:
// its transfer matrix with the total loss rate subtracted on the diagonal,
// so that every column sums to zero.
func (p *Problem) collGenerator(i int) *mat.Dense {
	n := len(p.E)
	g := mat.NewDense(n, n, nil)
	for s := 0; s < n; s++ {
		var colSum float64
		for r := 0; r < n; r++ {
			v := p.CollMatrices.Get(i, r, s)
			g.Set(r, s, v)
			colSum += v
		}
		g.Set(s, s, g.At(s, s)-colSum)
	}
	return g
}

// zeroColumnSums overwrites the diagonal of k so that every column sums to
// zero, enforcing mass conservation of the reduced rate matrix.
func zeroColumnSums(k *mat.Dense) {
	n, _ := k.Dims()
	for j := 0; j < n; j++ {
		var sum float64
		for i := 0; i < n; i++ {
			if i != j {
				sum += k.At(i, j)
			}
		}
		k.Set(j, j, -sum)
	}
}
