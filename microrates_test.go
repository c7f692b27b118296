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
	"testing"

	"github.com/spatialmodel/pdep/kinetics"
)

func TestMicrocanonicalRatesIsomerization(t *testing.T) {
	nw := NetworkTestData()
	e := testEnergyGrid(t)
	dens, err := nw.DensitiesOfStates(e, []float64{0, 0})
	if err != nil {
		t.Fatal(err)
	}
	kij, _, fim, err := nw.MicrocanonicalRates(e, dens, 1000)
	if err != nil {
		t.Fatal(err)
	}

	tsIsom := nw.PathReactions[0].TransitionState.E0
	for r := range e {
		kf := kij.Get(1, 0, r)
		kr := kij.Get(0, 1, r)
		if e[r] < tsIsom {
			if kf != 0 || kr != 0 {
				t.Errorf("grain %d below the barrier: kf = %g, kr = %g; want 0", r, kf, kr)
			}
			continue
		}
		if !(kf > 0) {
			t.Errorf("grain %d: kf = %g; want positive above the barrier", r, kf)
		}
		// Detailed balance between the wells.
		if different(kf*dens.Get(0, r), kr*dens.Get(1, r), 1.0e-10) {
			t.Errorf("grain %d: detailed balance violated: %g != %g",
				r, kf*dens.Get(0, r), kr*dens.Get(1, r))
		}
	}
	// A network with no reactant channels has no association tensor entries.
	if len(fim.Elements) != 0 {
		t.Errorf("fim has %d elements for a network with no reactant channels", len(fim.Elements))
	}
}

// Dissociation to a product channel fills only the sink tensor at the
// product-channel offset, with no reverse term anywhere.
func TestMicrocanonicalRatesDissociationToProduct(t *testing.T) {
	nw := NetworkTestData()
	e := testEnergyGrid(t)
	dens, err := nw.DensitiesOfStates(e, []float64{0, 0})
	if err != nil {
		t.Fatal(err)
	}
	_, gnj, _, err := nw.MicrocanonicalRates(e, dens, 1000)
	if err != nil {
		t.Fatal(err)
	}

	tsDiss := nw.PathReactions[1].TransitionState.E0
	var populated bool
	for r := range e {
		v := gnj.Get(0, 0, r) // product channel 0 (offset Nreac=0), isomer A
		if e[r] < tsDiss {
			if v != 0 {
				t.Errorf("grain %d below the dissociation barrier: %g; want 0", r, v)
			}
			continue
		}
		if !(v > 0) {
			t.Errorf("grain %d: dissociation rate %g; want positive", r, v)
		}
		populated = true
	}
	if !populated {
		t.Error("no grain carries dissociative flux")
	}
}

// An association reaction written in the reactant-channel -> isomer direction
// fills the association tensor forward and the dissociation tensor with the
// detailed-balance reverse.
func TestMicrocanonicalRatesAssociation(t *testing.T) {
	const de = 2000.0
	e, err := EnergyGrid(0, 4.0e5, de, 0)
	if err != nil {
		t.Fatal(err)
	}

	iso := &Species{Label: "XY", E0: 0, States: flatStates{2.0e-3}}
	x := &Species{Label: "X", States: flatStates{1.0e-3}}
	y := &Species{Label: "Y", States: flatStates{1.0e-3}}
	ts := &TransitionState{Label: "TS", E0: 1.0e5, States: flatStates{1.0e-9}}
	nw := &Network{
		Isomers:   []*Species{iso},
		Reactants: []Channel{{x, y}},
		PathReactions: []*PathReaction{
			{Reactants: Channel{x, y}, Products: Channel{iso}, TransitionState: ts},
		},
	}

	dens, err := nw.DensitiesOfStates(e, []float64{0, 0})
	if err != nil {
		t.Fatal(err)
	}
	kij, gnj, fim, err := nw.MicrocanonicalRates(e, dens, 1000)
	if err != nil {
		t.Fatal(err)
	}

	var populated bool
	for r := range e {
		kf := fim.Get(0, 0, r)
		kr := gnj.Get(0, 0, r)
		if e[r] < ts.E0 {
			if kf != 0 || kr != 0 {
				t.Errorf("grain %d below the barrier: kf = %g, kr = %g; want 0", r, kf, kr)
			}
			continue
		}
		if !(kf > 0) || !(kr > 0) {
			t.Errorf("grain %d: kf = %g, kr = %g; want positive", r, kf, kr)
		}
		if different(kf*dens.Get(1, r), kr*dens.Get(0, r), 1.0e-10) {
			t.Errorf("grain %d: detailed balance violated: %g != %g",
				r, kf*dens.Get(1, r), kr*dens.Get(0, r))
		}
		populated = true
	}
	if !populated {
		t.Error("no grain carries associative flux")
	}
	for r := range e {
		if kij.Get(0, 0, r) != 0 {
			t.Fatalf("association leaked into the isomerization tensor at grain %d", r)
		}
	}
}

// A path reaction with neither transition state data nor high-pressure-limit
// kinetics cannot be evaluated.
func TestMicrocanonicalRatesMissingKinetics(t *testing.T) {
	nw := NetworkTestData()
	nw.PathReactions[0].TransitionState = &TransitionState{Label: "TS1", E0: 1.5e5}
	e := testEnergyGrid(t)
	dens, err := nw.DensitiesOfStates(e, []float64{0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := nw.MicrocanonicalRates(e, dens, 1000); err == nil {
		t.Error("no error for a reaction with neither state data nor kinetics")
	}
}

// High-pressure-limit kinetics stand in for a missing transition state via
// the inverse Laplace transform.
func TestMicrocanonicalRatesILTFallback(t *testing.T) {
	nw := NetworkTestData()
	nw.PathReactions[1].TransitionState = nil
	nw.PathReactions[1].Kinetics = &kinetics.Arrhenius{A: 1.0e13, Ea: 2.5e5}
	e := testEnergyGrid(t)
	dens, err := nw.DensitiesOfStates(e, []float64{0, 0})
	if err != nil {
		t.Fatal(err)
	}
	_, gnj, _, err := nw.MicrocanonicalRates(e, dens, 1000)
	if err != nil {
		t.Fatal(err)
	}
	// With a flat density of states the transform returns A above Ea.
	for r := range e {
		v := gnj.Get(0, 0, r)
		if e[r] < 2.5e5 {
			if v != 0 {
				t.Errorf("grain %d below Ea: %g; want 0", r, v)
			}
		} else if different(v, 1.0e13, 1.0e-10) {
			t.Errorf("grain %d: %g; want 1e13", r, v)
		}
	}
}

func TestClassifyUnconnectedReaction(t *testing.T) {
	nw := NetworkTestData()
	stray := &Species{Label: "D", States: flatStates{1.0e-3}}
	nw.PathReactions = append(nw.PathReactions, &PathReaction{
		Reactants:       Channel{stray},
		Products:        Channel{nw.Isomers[0]},
		TransitionState: &TransitionState{Label: "TSX", E0: 1.0e5, States: flatStates{1.0e-9}},
	})
	e := testEnergyGrid(t)
	dens, err := nw.DensitiesOfStates(e, []float64{0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := nw.MicrocanonicalRates(e, dens, 1000); err == nil {
		t.Error("no error for a path reaction that connects no recognized channels")
	}
}