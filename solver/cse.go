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

package solver

import (
	"fmt"
	"math"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/mat"
)

// ChemicallySignificantEigenvalues is the chemically-significant eigenvalues
// method: the full master matrix over every isomer grain (plus one
// pseudo-state per bimolecular reactant channel) is symmetrized with the
// square root of the global equilibrium distribution and diagonalized; the
// slowest Nisom+Nreac eigenmodes, lumped per configuration, form the reduced
// rate matrix.
type ChemicallySignificantEigenvalues struct{}

// Name implements the Method interface.
func (ChemicallySignificantEigenvalues) Name() string {
	return "chemically-significant eigenvalues"
}

// NeedsCollisionMatrices implements the Method interface.
func (ChemicallySignificantEigenvalues) NeedsCollisionMatrices() bool { return true }

// Apply implements the Method interface.
func (ChemicallySignificantEigenvalues) Apply(p *Problem) (*mat.Dense, *sparse.DenseArray, error) {
	nGrains := len(p.E)
	nChem := p.NIsom + p.NReac
	nChan := nChem + p.NProd
	nStates := p.NIsom*nGrains + p.NReac
	idx := func(i, r int) int { return i*nGrains + r }
	pseudo := func(m int) int { return p.NIsom*nGrains + m }

	// Global equilibrium weights. Within one configuration the rescaled
	// densities already hold the grain populations; the eq ratios restore
	// the relative abundances between configurations.
	w := make([]float64, nStates)
	for i := 0; i < p.NIsom; i++ {
		for r := 0; r < nGrains; r++ {
			w[idx(i, r)] = p.EqRatios[i] * p.boltzmannPop(i, r)
		}
	}
	for m := 0; m < p.NReac; m++ {
		w[pseudo(m)] = p.EqRatios[p.NIsom+m]
	}

	// The full master matrix.
	big := mat.NewDense(nStates, nStates, nil)
	for i := 0; i < p.NIsom; i++ {
		gen := p.collGenerator(i)
		for r := 0; r < nGrains; r++ {
			for s := 0; s < nGrains; s++ {
				big.Set(idx(i, r), idx(i, s), gen.At(r, s))
			}
		}
	}
	for r := 0; r < nGrains; r++ {
		for j := 0; j < p.NIsom; j++ {
			col := idx(j, r)
			var loss float64
			for i := 0; i < p.NIsom; i++ {
				if i == j {
					continue
				}
				loss += p.Kij.Get(i, j, r)
				big.Set(idx(i, r), col, big.At(idx(i, r), col)+p.Kij.Get(i, j, r))
			}
			for n := 0; n < p.NReac+p.NProd; n++ {
				loss += p.Gnj.Get(n, j, r)
				if n < p.NReac {
					big.Set(pseudo(n), col, big.At(pseudo(n), col)+p.Gnj.Get(n, j, r))
				}
			}
			big.Set(col, col, big.At(col, col)-loss)
		}
	}
	for m := 0; m < p.NReac; m++ {
		col := pseudo(m)
		var loss float64
		for i := 0; i < p.NIsom; i++ {
			for r := 0; r < nGrains; r++ {
				flux := p.Fim.Get(i, m, r) * p.boltzmannPop(p.NIsom+m, r)
				loss += flux
				big.Set(idx(i, r), col, big.At(idx(i, r), col)+flux)
			}
		}
		big.Set(col, col, -loss)
	}

	// The eigenproblem only covers states with equilibrium population.
	// Grains below an isomer's ground state have no states and hence zero
	// weight; keeping them would add spurious zero eigenmodes that crowd
	// out the chemical ones.
	act := make([]int, 0, nStates)
	for a := 0; a < nStates; a++ {
		if w[a] > 0 {
			act = append(act, a)
		}
	}
	nAct := len(act)
	if nAct < nChem {
		return nil, nil, fmt.Errorf("solver: only %d states carry equilibrium "+
			"population at %g K, %g Pa, fewer than the %d chemical configurations",
			nAct, p.T, p.P, nChem)
	}

	// Symmetrize with the square roots of the equilibrium weights. The
	// master matrix satisfies detailed balance, so the similarity
	// transform S⁻¹·M·S is symmetric up to roundoff; averaging removes
	// the roundoff.
	s := make([]float64, nStates)
	for _, a := range act {
		s[a] = math.Sqrt(w[a])
	}
	sym := mat.NewSymDense(nAct, nil)
	for ia, a := range act {
		for ib := ia; ib < nAct; ib++ {
			b := act[ib]
			vab := big.At(a, b) * s[b] / s[a]
			vba := big.At(b, a) * s[a] / s[b]
			sym.SetSym(ia, ib, 0.5*(vab+vba))
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(sym, true); !ok {
		return nil, nil, fmt.Errorf("solver: eigendecomposition of the master matrix "+
			"failed at %g K, %g Pa", p.T, p.P)
	}
	vals := eig.Values(nil) // ascending: the slowest modes come last
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// Lump the chemically significant eigenvectors per configuration.
	// Inactive states keep zero rows in psi.
	u := mat.NewDense(nChem, nChem, nil)
	psi := mat.NewDense(nStates, nChem, nil)
	for c := 0; c < nChem; c++ {
		kth := nAct - nChem + c
		for ia, a := range act {
			psi.Set(a, c, s[a]*vecs.At(ia, kth))
		}
		for i := 0; i < p.NIsom; i++ {
			var sum float64
			for r := 0; r < nGrains; r++ {
				sum += psi.At(idx(i, r), c)
			}
			u.Set(i, c, sum)
		}
		for m := 0; m < p.NReac; m++ {
			u.Set(p.NIsom+m, c, psi.At(pseudo(m), c))
		}
	}

	var uinv mat.Dense
	if err := uinv.Inverse(u); err != nil {
		return nil, nil, fmt.Errorf("solver: the %d slowest eigenmodes do not span "+
			"the chemical configurations at %g K, %g Pa; the chemically-significant "+
			"eigenvalues are not separable here: %v", nChem, p.T, p.P, err)
	}

	// K over the chemical configurations: U·Λ·U⁻¹.
	k := mat.NewDense(nChan, nChan, nil)
	for i := 0; i < nChem; i++ {
		for j := 0; j < nChem; j++ {
			var sum float64
			for c := 0; c < nChem; c++ {
				sum += u.At(i, c) * vals[nAct-nChem+c] * uinv.At(c, j)
			}
			k.Set(i, j, sum)
		}
	}

	// The long-time state distributions belonging to unit population of
	// each configuration, for the product channel rows and the returned
	// populations.
	var dist mat.Dense
	dist.Mul(psi, &uinv)
	pa := sparse.ZerosDense(p.NIsom, nChem, nGrains)
	for i := 0; i < p.NIsom; i++ {
		for c := 0; c < nChem; c++ {
			for r := 0; r < nGrains; r++ {
				pa.Set(dist.At(idx(i, r), c), i, c, r)
			}
		}
	}
	for n := 0; n < p.NProd; n++ {
		for c := 0; c < nChem; c++ {
			var sum float64
			for i := 0; i < p.NIsom; i++ {
				for r := 0; r < nGrains; r++ {
					sum += p.Gnj.Get(p.NReac+n, i, r) * pa.Get(i, c, r)
				}
			}
			k.Set(nChem+n, c, sum)
		}
	}
	zeroColumnSums(k)

	return k, pa, nil
}
