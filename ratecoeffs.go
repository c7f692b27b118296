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
	"sync"

	"github.com/ctessum/sparse"
	log "github.com/sirupsen/logrus"

	"github.com/spatialmodel/pdep/collision"
	"github.com/spatialmodel/pdep/solver"
)

// unreactiveEnergy marks an isomer with no adjoining transition state: its
// first reactive energy is effectively infinite.
const unreactiveEnergy = 1e20

// RateCoefficients calculates the phenomenological rate coefficients k(T,P)
// of the network at every combination of the temperatures tlist [K] and
// pressures plist [Pa], on the energy grid e [J/mol]. The method name selects
// one of the three solution methods: "modified strong collision",
// "reservoir state", or "chemically-significant eigenvalues"
// (case-insensitive).
//
// The result is a 4-D array of shape len(tlist) × len(plist) × Nchan × Nchan,
// where Nchan counts the isomers, then the reactant channels, then the
// product channels; entry [t,p,i,j] is the rate coefficient from
// configuration j into configuration i.
//
// The network itself is never modified: the internal conditioning shift of
// the energy axis operates on copies, so concurrent calls on one Network are
// safe and a failing solver cannot leave the topology corrupted. A failure at
// any single (T,P) point aborts the whole calculation, since the returned
// tensor is only meaningful when complete.
func (nw *Network) RateCoefficients(tlist, plist, e []float64, method string) (*sparse.DenseArray, error) {
	m, err := solver.FromName(method)
	if err != nil {
		return nil, err
	}
	if err := nw.classify(); err != nil {
		return nil, err
	}
	if len(e) < 2 {
		return nil, fmt.Errorf("pdep: the energy grid must contain at least two grains")
	}

	nGrains := len(e)
	nIsom := len(nw.Isomers)
	nReac := len(nw.Reactants)
	nProd := len(nw.Products)
	nChan := nIsom + nReac + nProd
	de := e[1] - e[0]

	// Ground-state energies of every isomer and reactant channel.
	e0 := make([]float64, nIsom+nReac)
	for i, iso := range nw.Isomers {
		if math.IsNaN(iso.E0) {
			return nil, fmt.Errorf("pdep: isomer %q has no ground-state energy", iso.Label)
		}
		e0[i] = iso.E0
	}
	for n, ch := range nw.Reactants {
		e0[nIsom+n] = ch.E0()
	}

	// First reactive energy of each isomer: the lowest adjoining
	// transition state.
	eReac := make([]float64, nIsom)
	for i, iso := range nw.Isomers {
		eReac[i] = unreactiveEnergy
		for _, rxn := range nw.PathReactions {
			if rxn.TransitionState == nil {
				continue
			}
			touches := (len(rxn.Reactants) == 1 && rxn.Reactants[0] == iso) ||
				(len(rxn.Products) == 1 && rxn.Products[0] == iso)
			if touches && rxn.TransitionState.E0 < eReac[i] {
				eReac[i] = rxn.TransitionState.E0
			}
		}
	}

	// Shift all energies so the lowest grain is zero. The shift is pure
	// numerical conditioning: it operates on copies (shifted grid, shifted
	// energy vectors, a shifted view of the path reactions) and the
	// network's own data is untouched.
	emin := e[0]
	se := make([]float64, nGrains)
	for r := range e {
		se[r] = e[r] - emin
	}
	for i := range e0 {
		e0[i] -= emin
	}
	for i := range eReac {
		eReac[i] -= emin
	}
	shifted := nw.shiftedView(emin)

	// The densities of states are independent of temperature and pressure.
	dens0, err := nw.DensitiesOfStates(se, e0)
	if err != nil {
		return nil, err
	}

	bigK := sparse.ZerosDense(len(tlist), len(plist), nChan, nChan)

	for t, T := range tlist {
		kij, gnj, fim, err := shifted.MicrocanonicalRates(se, dens0, T)
		if err != nil {
			return nil, err
		}

		// Rescale each density of states by its Boltzmann-weighted
		// integral, so the equilibrium population of every
		// configuration sums to unity over the grains. The raw
		// integrals double as the relative equilibrium abundances
		// needed by the eigenvalue method.
		dens := sparse.ZerosDense(nIsom+nReac, nGrains)
		eqRatios := make([]float64, nIsom+nReac)
		for i := 0; i < nIsom+nReac; i++ {
			var sum float64
			for r := 0; r < nGrains; r++ {
				sum += dens0.Get(i, r) * math.Exp(-se[r]/(gasConstant*T))
			}
			sum *= de
			eqRatios[i] = sum
			if sum > 0 {
				for r := 0; r < nGrains; r++ {
					dens.Set(dens0.Get(i, r)/sum*de, i, r)
				}
			}
		}

		// The pressure points at this temperature are independent of
		// one another; run them concurrently. Everything they share is
		// read-only.
		var (
			wg       sync.WaitGroup
			mx       sync.Mutex
			sweepErr error
		)
		for p, P := range plist {
			wg.Add(1)
			go func(p int, P float64) {
				defer wg.Done()
				k, err := nw.solveAt(m, T, P, se, dens, eqRatios, kij, gnj, fim, e0, eReac)
				if err != nil {
					mx.Lock()
					if sweepErr == nil {
						sweepErr = err
					}
					mx.Unlock()
					return
				}
				for i := 0; i < nChan; i++ {
					for j := 0; j < nChan; j++ {
						bigK.Set(k.At(i, j), t, p, i, j)
					}
				}
			}(p, P)
		}
		wg.Wait()
		if sweepErr != nil {
			return nil, sweepErr
		}
	}

	return bigK, nil
}

// solveAt reduces the master equation at a single temperature and pressure
// using the chosen method, building whichever collision inputs that method
// requires.
func (nw *Network) solveAt(m solver.Method, T, P float64, e []float64,
	dens *sparse.DenseArray, eqRatios []float64,
	kij, gnj, fim *sparse.DenseArray, e0, eReac []float64) (kmatrix, error) {

	log.Infof("Calculating k(T,P) values at %g K, %g bar...", T, P/1e5)

	nIsom := len(nw.Isomers)
	if nw.BathGas == nil {
		return nil, fmt.Errorf("pdep: the network has no bath gas")
	}
	if nw.CollisionModel == nil {
		return nil, fmt.Errorf("pdep: the network has no collision model")
	}

	collFreq := make([]float64, nIsom)
	for i, iso := range nw.Isomers {
		collFreq[i] = collision.Frequency(iso.Transport, nw.BathGas.Transport, T, P)
	}

	prob := &solver.Problem{
		T: T, P: P,
		E:          e,
		DensStates: dens,
		CollFreq:   collFreq,
		EqRatios:   eqRatios,
		Kij:        kij, Gnj: gnj, Fim: fim,
		EReac: eReac,
		NIsom: nIsom, NReac: len(nw.Reactants), NProd: len(nw.Products),
	}

	if m.NeedsCollisionMatrices() {
		nGrains := len(e)
		mcoll := sparse.ZerosDense(nIsom, nGrains, nGrains)
		for i := 0; i < nIsom; i++ {
			probMatrix := nw.CollisionModel.Probabilities(e, T, row(dens, i))
			for r := 0; r < nGrains; r++ {
				for s := 0; s < nGrains; s++ {
					mcoll.Set(collFreq[i]*probMatrix.Get(r, s), i, r, s)
				}
			}
		}
		prob.CollMatrices = mcoll
	} else {
		// The modified strong collision method folds the weak-collision
		// efficiency β into the collision frequencies.
		for i := 0; i < nIsom; i++ {
			collFreq[i] *= nw.CollisionModel.Efficiency(e, T, row(dens, i), e0[i], eReac[i])
		}
	}

	k, _, err := m.Apply(prob)
	if err != nil {
		return nil, err
	}
	return k, nil
}

// kmatrix is the square rate matrix returned by a solver back end.
type kmatrix interface {
	At(i, j int) float64
}
