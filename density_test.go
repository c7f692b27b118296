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

	"github.com/spatialmodel/pdep/statmech"
)

func TestDensitiesOfStatesAlignment(t *testing.T) {
	const de = 1000.0
	e, err := EnergyGrid(0, 9000, de, 0)
	if err != nil {
		t.Fatal(err)
	}

	a := &Species{Label: "A", E0: 0, States: flatStates{2.0e-3}}
	b := &Species{Label: "B", E0: 3 * de, States: flatStates{5.0e-3}}
	nw := &Network{Isomers: []*Species{a, b}}

	dens, err := nw.DensitiesOfStates(e, []float64{a.E0, b.E0})
	if err != nil {
		t.Fatal(err)
	}
	if dens.Shape[0] != 2 || dens.Shape[1] != len(e) {
		t.Fatalf("density tensor shape = %v; want [2 %d]", dens.Shape, len(e))
	}

	for r := range e {
		if dens.Get(0, r) != 2.0e-3 {
			t.Errorf("row A grain %d: %g; want 2e-3", r, dens.Get(0, r))
		}
	}
	// Row B is right-shifted by its ground-state offset of three grains.
	for r := 0; r < 3; r++ {
		if dens.Get(1, r) != 0 {
			t.Errorf("row B grain %d below its ground state: %g; want 0", r, dens.Get(1, r))
		}
	}
	for r := 3; r < len(e); r++ {
		if dens.Get(1, r) != 5.0e-3 {
			t.Errorf("row B grain %d: %g; want 5e-3", r, dens.Get(1, r))
		}
	}
}

// A bimolecular reactant channel contributes the convolution of its two
// members' densities of states.
func TestDensitiesOfStatesBimolecularChannel(t *testing.T) {
	const de = 1000.0
	e, err := EnergyGrid(0, 9000, de, 0)
	if err != nil {
		t.Fatal(err)
	}

	iso := &Species{Label: "AB", E0: 0, States: flatStates{1.0e-3}}
	x := &Species{Label: "X", States: flatStates{2.0e-3}}
	y := &Species{Label: "Y", States: flatStates{3.0e-3}}
	nw := &Network{
		Isomers:   []*Species{iso},
		Reactants: []Channel{{x, y}},
	}

	dens, err := nw.DensitiesOfStates(e, []float64{0, 0})
	if err != nil {
		t.Fatal(err)
	}
	want := statmech.Convolve(
		x.States.DensityOfStates(e), y.States.DensityOfStates(e), e)
	for r := range e {
		if different(dens.Get(1, r), want[r], 1.0e-10) {
			t.Errorf("channel grain %d: %g; want the convolution value %g",
				r, dens.Get(1, r), want[r])
		}
	}
}

// A channel without state data carries no flux: its row stays zero, without
// an error.
func TestDensitiesOfStatesChannelWithoutStates(t *testing.T) {
	e, err := EnergyGrid(0, 9000, 1000, 0)
	if err != nil {
		t.Fatal(err)
	}
	iso := &Species{Label: "AB", E0: 0, States: flatStates{1.0e-3}}
	x := &Species{Label: "X", States: flatStates{2.0e-3}}
	y := &Species{Label: "Y"} // no state data
	nw := &Network{
		Isomers:   []*Species{iso},
		Reactants: []Channel{{x, y}},
	}
	dens, err := nw.DensitiesOfStates(e, []float64{0, 0})
	if err != nil {
		t.Fatal(err)
	}
	for r := range e {
		if dens.Get(1, r) != 0 {
			t.Errorf("channel grain %d: %g; want 0 for a channel without state data",
				r, dens.Get(1, r))
		}
	}
}

// An isomer without state data is a fatal error: wells must always be
// countable.
func TestDensitiesOfStatesIsomerWithoutStates(t *testing.T) {
	e, err := EnergyGrid(0, 9000, 1000, 0)
	if err != nil {
		t.Fatal(err)
	}
	nw := &Network{Isomers: []*Species{{Label: "A"}}}
	if _, err := nw.DensitiesOfStates(e, []float64{0}); err == nil {
		t.Error("no error for an isomer without state data")
	}
}