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

package pdep

import (
	"fmt"
	"math"

	"github.com/ctessum/sparse"
	log "github.com/sirupsen/logrus"

	"github.com/spatialmodel/pdep/statmech"
)

// DensitiesOfStates calculates the density of states [mol/J] of every isomer
// and reactant channel in the network on the energy grid e [J/mol]. Row i of
// the returned (Nisom+Nreac)×len(e) array holds configuration i's density,
// right-shifted by its ground-state energy e0[i] so that index 0 of every row
// corresponds to the same absolute energy. All downstream tensors rely on
// this index-for-index alignment.
//
// Bimolecular reactant channels contribute the convolution of their two
// species' densities (the combined density of the non-interacting pair).
// Channels whose species lack state data are skipped and keep a zero row:
// they cannot contribute flux.
func (nw *Network) DensitiesOfStates(e, e0 []float64) (*sparse.DenseArray, error) {
	nIsom := len(nw.Isomers)
	nReac := len(nw.Reactants)
	dens := sparse.ZerosDense(nIsom+nReac, len(e))
	de := e[1] - e[0]

	log.Info("Calculating densities of states...")

	for i, iso := range nw.Isomers {
		if iso.States == nil {
			return nil, fmt.Errorf("pdep: isomer %q has no state data", iso.Label)
		}
		log.Debugf("Calculating density of states for isomer %q", iso.Label)
		shiftRow(dens, i, iso.States.DensityOfStates(e), grainShift(e0[i], de))
	}

	for m, ch := range nw.Reactants {
		var rho []float64
		switch {
		case len(ch) == 2 && ch[0].States != nil && ch[1].States != nil:
			log.Debugf("Calculating density of states for reactant channel %q", ch.String())
			rho = statmech.Convolve(ch[0].States.DensityOfStates(e),
				ch[1].States.DensityOfStates(e), e)
		case len(ch) == 1 && ch[0].States != nil:
			log.Debugf("Calculating density of states for reactant channel %q", ch.String())
			rho = ch[0].States.DensityOfStates(e)
		default:
			log.Debugf("Skipping density of states for reactant channel %q: no state data", ch.String())
			continue
		}
		shiftRow(dens, nIsom+m, rho, grainShift(e0[nIsom+m], de))
	}

	return dens, nil
}

func grainShift(e0, de float64) int {
	return int(math.Round(e0 / de))
}

// shiftRow writes rho into row i of dens, displaced upward by r0 grains to
// align the configuration's ground state with the common zero of energy. Any
// portion that would fall below grain 0 is truncated.
func shiftRow(dens *sparse.DenseArray, i int, rho []float64, r0 int) {
	n := dens.Shape[1]
	for r := 0; r < n; r++ {
		src := r - r0
		if src < 0 || src >= len(rho) {
			continue
		}
		dens.Set(rho[src], i, r)
	}
}
