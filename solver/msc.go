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

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/mat"
)

// ModifiedStrongCollision is the modified strong collision method: every
// collision fully stabilizes, at an effective frequency reduced by the weak
// collision efficiency β, which decouples the energy grains and leaves one
// small linear system per grain for the pseudo-steady activated populations.
type ModifiedStrongCollision struct{}

// Name implements the Method interface.
func (ModifiedStrongCollision) Name() string { return "modified strong collision" }

// NeedsCollisionMatrices implements the Method interface; the method uses
// scalar β-scaled collision frequencies only.
func (ModifiedStrongCollision) NeedsCollisionMatrices() bool { return false }

// Apply implements the Method interface.
func (ModifiedStrongCollision) Apply(p *Problem) (*mat.Dense, *sparse.DenseArray, error) {
	nGrains := len(p.E)
	nChan := p.NIsom + p.NReac + p.NProd
	k := mat.NewDense(nChan, nChan, nil)
	pa := sparse.ZerosDense(p.NIsom, p.NIsom+p.NReac, nGrains)

	// The calculation spans the grains above the lowest reactive energy.
	start := nGrains
	for _, s := range p.firstReactiveGrain() {
		if s < start {
			start = s
		}
	}
	if start >= nGrains {
		return nil, nil, fmt.Errorf("solver: no energy grain reaches a reactive threshold; " +
			"the energy grid does not span the transition states")
	}

	a := mat.NewDense(p.NIsom, p.NIsom, nil)
	b := mat.NewDense(p.NIsom, p.NIsom+p.NReac, nil)
	var x mat.Dense
	for r := start; r < nGrains; r++ {
		// Pseudo-steady balance of the activated population in grain r:
		// collisional stabilization and reactive loss on the diagonal,
		// isomerization gains off it.
		a.Zero()
		b.Zero()
		for i := 0; i < p.NIsom; i++ {
			diag := -p.CollFreq[i]
			for j := 0; j < p.NIsom; j++ {
				if j == i {
					continue
				}
				a.Set(i, j, p.Kij.Get(i, j, r))
				diag -= p.Kij.Get(j, i, r)
			}
			for n := 0; n < p.NReac+p.NProd; n++ {
				diag -= p.Gnj.Get(n, i, r)
			}
			a.Set(i, i, diag)
		}

		// Activation sources: collisional activation of each isomer at
		// its equilibrium population, and association flux from each
		// reactant channel.
		for n := 0; n < p.NIsom+p.NReac; n++ {
			if n < p.NIsom {
				b.Set(n, n, -p.CollFreq[n]*p.boltzmannPop(n, r))
			} else {
				pop := p.boltzmannPop(n, r)
				for i := 0; i < p.NIsom; i++ {
					b.Set(i, n, -p.Fim.Get(i, n-p.NIsom, r)*pop)
				}
			}
		}

		if err := x.Solve(a, b); err != nil {
			return nil, nil, fmt.Errorf("solver: modified strong collision balance "+
				"is singular in grain %d (E = %g J/mol): %v", r, p.E[r], err)
		}
		for i := 0; i < p.NIsom; i++ {
			for n := 0; n < p.NIsom+p.NReac; n++ {
				pa.Set(x.At(i, n), i, n, r)
			}
		}
	}

	// Phenomenological rates: stabilization of each well at the collision
	// frequency, and dissociative flux into each sink channel.
	for src := 0; src < p.NIsom+p.NReac; src++ {
		for i := 0; i < p.NIsom; i++ {
			var sum float64
			for r := start; r < nGrains; r++ {
				sum += pa.Get(i, src, r)
			}
			k.Set(i, src, p.CollFreq[i]*sum)
		}
		for n := 0; n < p.NReac+p.NProd; n++ {
			var sum float64
			for r := start; r < nGrains; r++ {
				for i := 0; i < p.NIsom; i++ {
					sum += p.Gnj.Get(n, i, r) * pa.Get(i, src, r)
				}
			}
			k.Set(p.NIsom+n, src, sum)
		}
	}
	zeroColumnSums(k)

	return k, pa, nil
}
