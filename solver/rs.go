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

// ReservoirState is the reservoir state method: the grains of each well
// below its first reactive energy form a reservoir assumed to hold the
// equilibrium distribution, and one global linear system over the remaining
// active grains yields their pseudo-steady populations, with full
// energy-resolved collisional coupling.
type ReservoirState struct{}

// Name implements the Method interface.
func (ReservoirState) Name() string { return "reservoir state" }

// NeedsCollisionMatrices implements the Method interface.
func (ReservoirState) NeedsCollisionMatrices() bool { return true }

// Apply implements the Method interface.
func (ReservoirState) Apply(p *Problem) (*mat.Dense, *sparse.DenseArray, error) {
	nGrains := len(p.E)
	nChan := p.NIsom + p.NReac + p.NProd
	k := mat.NewDense(nChan, nChan, nil)
	pa := sparse.ZerosDense(p.NIsom, p.NIsom+p.NReac, nGrains)

	start := p.firstReactiveGrain()

	// Index the active grains of all wells into one linear system.
	offset := make([]int, p.NIsom)
	nActive := 0
	for i := 0; i < p.NIsom; i++ {
		offset[i] = nActive
		nActive += nGrains - start[i]
	}
	if nActive == 0 {
		return nil, nil, fmt.Errorf("solver: no energy grain reaches a reactive threshold; " +
			"the energy grid does not span the transition states")
	}
	idx := func(i, r int) int { return offset[i] + r - start[i] }

	gen := make([]*mat.Dense, p.NIsom)
	for i := 0; i < p.NIsom; i++ {
		gen[i] = p.collGenerator(i)
	}

	l := mat.NewDense(nActive, nActive, nil)
	b := mat.NewDense(nActive, p.NIsom+p.NReac, nil)
	for i := 0; i < p.NIsom; i++ {
		for r := start[i]; r < nGrains; r++ {
			row := idx(i, r)
			// Collisional coupling among the active grains of well i.
			for s := start[i]; s < nGrains; s++ {
				l.Set(row, idx(i, s), gen[i].At(r, s))
			}
			// Reactive terms are diagonal in energy.
			var loss float64
			for j := 0; j < p.NIsom; j++ {
				if j == i {
					continue
				}
				loss += p.Kij.Get(j, i, r)
				if r >= start[j] {
					l.Set(row, idx(j, r), p.Kij.Get(i, j, r))
				}
			}
			for n := 0; n < p.NReac+p.NProd; n++ {
				loss += p.Gnj.Get(n, i, r)
			}
			l.Set(row, row, l.At(row, row)-loss)
		}
	}

	// Sources: collisional activation out of each well's equilibrated
	// reservoir, and association flux from each reactant channel.
	for j := 0; j < p.NIsom; j++ {
		var resPop float64
		for s := 0; s < start[j]; s++ {
			resPop += p.boltzmannPop(j, s)
		}
		if resPop <= 0 {
			continue
		}
		for r := start[j]; r < nGrains; r++ {
			var flux float64
			for s := 0; s < start[j]; s++ {
				flux += p.CollMatrices.Get(j, r, s) * p.boltzmannPop(j, s)
			}
			b.Set(idx(j, r), j, -flux/resPop)
		}
	}
	for m := 0; m < p.NReac; m++ {
		for i := 0; i < p.NIsom; i++ {
			for r := start[i]; r < nGrains; r++ {
				b.Set(idx(i, r), p.NIsom+m, -p.Fim.Get(i, m, r)*p.boltzmannPop(p.NIsom+m, r))
			}
		}
	}

	var x mat.Dense
	if err := x.Solve(l, b); err != nil {
		return nil, nil, fmt.Errorf("solver: reservoir state balance is singular "+
			"at %g K, %g Pa: %v", p.T, p.P, err)
	}
	for i := 0; i < p.NIsom; i++ {
		for r := start[i]; r < nGrains; r++ {
			for n := 0; n < p.NIsom+p.NReac; n++ {
				pa.Set(x.At(idx(i, r), n), i, n, r)
			}
		}
	}

	// Phenomenological rates: stabilization of each well is the net
	// collisional flux from its active grains down into the reservoir.
	for src := 0; src < p.NIsom+p.NReac; src++ {
		for i := 0; i < p.NIsom; i++ {
			var sum float64
			for r := start[i]; r < nGrains; r++ {
				popRA := pa.Get(i, src, r)
				if popRA == 0 {
					continue
				}
				for s := 0; s < start[i]; s++ {
					sum += p.CollMatrices.Get(i, s, r) * popRA
				}
			}
			k.Set(i, src, sum)
		}
		for n := 0; n < p.NReac+p.NProd; n++ {
			var sum float64
			for i := 0; i < p.NIsom; i++ {
				for r := start[i]; r < nGrains; r++ {
					sum += p.Gnj.Get(n, i, r) * pa.Get(i, src, r)
				}
			}
			k.Set(p.NIsom+n, src, sum)
		}
	}
	zeroColumnSums(k)

	return k, pa, nil
}
