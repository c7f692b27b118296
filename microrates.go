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

	"github.com/ctessum/sparse"
	log "github.com/sirupsen/logrus"

	"github.com/spatialmodel/pdep/kinetics"
)

// MicrocanonicalRates calculates the microcanonical rate coefficients k(E)
// [1/s] for every path reaction in the network. dens is the aligned
// density-of-states array from DensitiesOfStates on the energy grid e.
//
// The results are returned as three tensors: kij[j,i,r] is the isomerization
// rate from isomer i to isomer j at grain r; gnj[n,i,r] is the dissociation
// rate from isomer i to sink channel n (reactant channels first, then product
// channels); fim[i,m,r] is the association rate from reactant channel m into
// isomer i. Entries for nonexistent reactions are zero.
//
// The temperature T [K] is only consulted by inverse-Laplace-transform
// kinetics with a nonzero temperature exponent; all other methods ignore it.
func (nw *Network) MicrocanonicalRates(e []float64, dens *sparse.DenseArray, T float64) (kij, gnj, fim *sparse.DenseArray, err error) {
	if err := nw.classify(); err != nil {
		return nil, nil, nil, err
	}
	nGrains := len(e)
	nIsom := len(nw.Isomers)
	nReac := len(nw.Reactants)
	nProd := len(nw.Products)

	kij = sparse.ZerosDense(nIsom, nIsom, nGrains)
	gnj = sparse.ZerosDense(nReac+nProd, nIsom, nGrains)
	fim = sparse.ZerosDense(nIsom, nReac, nGrains)

	log.Info("Calculating microcanonical rate coefficients k(E)...")

	for _, rxn := range nw.PathReactions {
		switch rxn.kind {
		case Isomerization:
			kf, kr, err := rxn.microcanonicalRate(e,
				row(dens, rxn.reacIndex), row(dens, rxn.prodIndex), T)
			if err != nil {
				return nil, nil, nil, err
			}
			setRates(kij, kf, rxn.prodIndex, rxn.reacIndex)
			setRates(kij, kr, rxn.reacIndex, rxn.prodIndex)

		case DissociationToReactant:
			kf, kr, err := rxn.microcanonicalRate(e,
				row(dens, rxn.reacIndex), row(dens, nIsom+rxn.prodIndex), T)
			if err != nil {
				return nil, nil, nil, err
			}
			setRates(gnj, kf, rxn.prodIndex, rxn.reacIndex)
			setRates(fim, kr, rxn.reacIndex, rxn.prodIndex)

		case DissociationToProduct:
			kf, _, err := rxn.microcanonicalRate(e, row(dens, rxn.reacIndex), nil, T)
			if err != nil {
				return nil, nil, nil, err
			}
			setRates(gnj, kf, nReac+rxn.prodIndex, rxn.reacIndex)

		case Association:
			kf, kr, err := rxn.microcanonicalRate(e,
				row(dens, nIsom+rxn.reacIndex), row(dens, rxn.prodIndex), T)
			if err != nil {
				return nil, nil, nil, err
			}
			setRates(fim, kf, rxn.prodIndex, rxn.reacIndex)
			setRates(gnj, kr, rxn.reacIndex, rxn.prodIndex)

		default:
			return nil, nil, nil, fmt.Errorf("pdep: path reaction %v is unclassified", rxn)
		}
	}

	return kij, gnj, fim, nil
}

// microcanonicalRate evaluates k(E) for one path reaction in its canonical
// direction, delegating to RRKM theory when the transition state carries
// state data and to the inverse Laplace transform when Arrhenius parameters
// are available. The reverse coefficient follows from detailed balance when
// the product configuration has a density of states; an irreversible sink
// passes densProd == nil and gets no reverse term.
func (rxn *PathReaction) microcanonicalRate(e, densReac, densProd []float64, T float64) (kf, kr []float64, err error) {
	switch {
	case rxn.TransitionState != nil && rxn.TransitionState.States != nil:
		kf = kinetics.RRKM(e, densReac,
			rxn.TransitionState.States.DensityOfStates(e), rxn.TransitionState.E0)
	case rxn.Kinetics != nil:
		kf, err = rxn.Kinetics.ILT(e, densReac, T)
		if err != nil {
			return nil, nil, fmt.Errorf("pdep: reaction %v: %v", rxn, err)
		}
	default:
		return nil, nil, fmt.Errorf("pdep: reaction %v has neither transition state "+
			"state data nor high-pressure-limit kinetics", rxn)
	}
	if densProd != nil {
		kr = kinetics.Reverse(kf, densReac, densProd)
	}
	return kf, kr, nil
}

func row(a *sparse.DenseArray, i int) []float64 {
	n := a.Shape[1]
	return a.Elements[i*n : (i+1)*n]
}

func setRates(a *sparse.DenseArray, k []float64, i, j int) {
	for r, v := range k {
		a.Set(v, i, j, r)
	}
}
