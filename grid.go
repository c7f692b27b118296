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

	log "github.com/sirupsen/logrus"
)

// EnergyGrid returns an ascending array of energy grains [J/mol] starting at
// emin and covering at least [emin, emax], with either a grain spacing of de
// or a grain count of n (at least 2). Exactly one of de and n must be
// positive; if both are, the tighter constraint (the one producing more
// grains) wins.
func EnergyGrid(emin, emax, de float64, n int) ([]float64, error) {
	var useSpacing bool
	switch {
	case n <= 0 && de <= 0:
		return nil, fmt.Errorf("pdep: a positive energy grain size or grain count is required")
	case n == 1:
		return nil, fmt.Errorf("pdep: an energy grid needs at least two grains; got a grain count of 1")
	case n <= 0:
		useSpacing = true
	case de <= 0:
		useSpacing = false
	default:
		// Both were given; choose whichever discretizes more finely.
		useSpacing = (emax-emin)/float64(n-1) > de
	}
	if useSpacing {
		var e []float64
		for x := emin; x < emax+de; x += de {
			e = append(e, x)
		}
		return e, nil
	}
	e := make([]float64, n)
	d := (emax - emin) / float64(n-1)
	for i := range e {
		e[i] = emin + float64(i)*d
	}
	e[n-1] = emax
	return e, nil
}

// AutoGrid selects an energy grid suitable for calculations up to temperature
// tmax [K]. The minimum energy is the lowest isomer ground-state energy. The
// maximum is found by locating the isomer with the highest ground-state
// energy and probing, on a coarse trial grid, the energy at which the tail of
// its equilibrium distribution at tmax falls below 1e-4 of the peak; the
// probe window grows by 50·R·tmax per attempt. The maximum is then extended
// by the largest excess of any reactant-channel or transition-state energy
// over that isomer's ground state. Either the grain size de or the grain
// count n must be positive, as for EnergyGrid.
//
// If the tail criterion is still unmet after five attempts the grid would be
// under-resolved, and an error is returned rather than a degraded result.
func (nw *Network) AutoGrid(tmax, de float64, n int) ([]float64, error) {
	if de <= 0 && n <= 0 {
		return nil, fmt.Errorf("pdep: a positive energy grain size or grain count is required")
	}
	if len(nw.Isomers) == 0 {
		return nil, fmt.Errorf("pdep: cannot select an energy grid for a network with no isomers")
	}

	// The minimum energy is the lowest isomer energy on the surface.
	emin := math.Inf(1)
	for _, iso := range nw.Isomers {
		if iso.E0 < emin {
			emin = iso.E0
		}
	}
	emin = math.Floor(emin)

	// The equilibrium distribution of the highest isomer at tmax is the
	// broadest in the network, so it bounds the energy range.
	isomer := nw.Isomers[0]
	for _, iso := range nw.Isomers[1:] {
		if iso.E0 > isomer.E0 {
			isomer = iso
		}
	}
	if isomer.States == nil {
		return nil, fmt.Errorf("pdep: isomer %q has no state data", isomer.Label)
	}

	const (
		nProbe   = 251
		tailTol  = 1e-4
		maxIter  = 5
		multStep = 50.0
	)
	mult := multStep
	done := false
	var emax float64
	for iter := 0; iter < maxIter && !done; iter++ {
		emax = math.Ceil(isomer.E0 + mult*gasConstant*tmax)
		log.Debugf("Probing the equilibrium distribution of isomer %q up to %g J/mol",
			isomer.Label, emax)

		probe, err := EnergyGrid(0, emax-emin, 0, nProbe)
		if err != nil {
			return nil, err
		}
		dens := isomer.States.DensityOfStates(probe)
		eqDist := make([]float64, nProbe)
		var total float64
		maxIndex := 0
		for r, e := range probe {
			eqDist[r] = dens[r] * math.Exp(-e/(gasConstant*tmax))
			total += eqDist[r]
			if eqDist[r] > eqDist[maxIndex] {
				maxIndex = r
			}
		}
		if total == 0 {
			return nil, fmt.Errorf("pdep: isomer %q has a zero equilibrium distribution at %g K", isomer.Label, tmax)
		}

		if eqDist[nProbe-1]/eqDist[maxIndex] < tailTol {
			// The tail has died off within the window; walk back to
			// where it crosses the tolerance.
			r := nProbe - 1
			for r > maxIndex && !done {
				if eqDist[r]/eqDist[maxIndex] > tailTol {
					done = true
				} else {
					r--
				}
			}
			emax = probe[r] + emin
			// Make sure nearly all of the distribution was captured.
			var captured float64
			for s := 0; s < r; s++ {
				captured += eqDist[s]
			}
			if math.Abs(1-captured/total) > tailTol {
				done = false
				mult += multStep
			}
		} else {
			mult += multStep
		}
	}
	if !done {
		return nil, fmt.Errorf("pdep: equilibrium distribution of isomer %q at %g K "+
			"did not fit the probed energy window after %d attempts; "+
			"check the isomer's state data", isomer.Label, tmax, 5)
	}

	// Extend by the highest reactant channel or transition state relative
	// to the reference isomer.
	highest := emin
	for _, ch := range nw.Reactants {
		if e := ch.E0(); e > highest {
			highest = e
		}
	}
	for _, rxn := range nw.PathReactions {
		if rxn.TransitionState != nil && rxn.TransitionState.E0 > highest {
			highest = rxn.TransitionState.E0
		}
	}
	if highest > isomer.E0 {
		emax += highest - isomer.E0
	}
	emax = math.Ceil(emax)

	return EnergyGrid(emin, emax, de, n)
}
