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

package pdeputil

import (
	"github.com/spatialmodel/pdep"
	"github.com/spatialmodel/pdep/collision"
	"github.com/spatialmodel/pdep/kinetics"
	"github.com/spatialmodel/pdep/statmech"
)

// ExampleNetwork builds a small two-isomer reaction network: the
// isomerization of methyl isocyanide (CH3NC) to acetonitrile (CH3CN),
// with a further dissociation of acetonitrile to CH3 + CN described by
// its high-pressure-limit rate coefficient. The molecular parameters are
// stylized but physically reasonable; the network is meant for
// demonstrations and smoke tests, not for publication-quality predictions.
func ExampleNetwork() *pdep.Network {
	b := statmech.WavenumberToEnergy

	ch3nc := &pdep.Species{
		Label: "CH3NC",
		E0:    0,
		States: &statmech.Model{
			Modes: []statmech.Mode{
				statmech.RigidRotor{
					Constants: []float64{b(5.25), b(0.44), b(0.44)},
					Symmetry:  3,
				},
				statmech.HarmonicOscillator{
					Frequencies: []float64{263, 263, 945, 1129, 1129,
						1429, 1429, 1459, 2166, 3014, 3081, 3081},
				},
			},
		},
		Transport: collision.Transport{
			Sigma:     4.58e-10,
			Epsilon:   4.92e-21,
			MolWeight: 0.04105,
		},
	}

	ch3cn := &pdep.Species{
		Label: "CH3CN",
		E0:    -1.005e5,
		States: &statmech.Model{
			Modes: []statmech.Mode{
				statmech.RigidRotor{
					Constants: []float64{b(5.27), b(0.31), b(0.31)},
					Symmetry:  3,
				},
				statmech.HarmonicOscillator{
					Frequencies: []float64{365, 365, 920, 1041, 1041,
						1390, 1453, 1453, 2267, 2954, 3009, 3009},
				},
			},
		},
		Transport: collision.Transport{
			Sigma:     4.58e-10,
			Epsilon:   4.92e-21,
			MolWeight: 0.04105,
		},
	}

	// CH3 and CN carry no state data: the dissociation channel is
	// irreversible and its rate follows from the high-pressure-limit
	// kinetics below.
	ch3 := &pdep.Species{Label: "CH3"}
	cn := &pdep.Species{Label: "CN"}

	isomerizationTS := &pdep.TransitionState{
		Label: "TS",
		E0:    1.61e5,
		States: &statmech.Model{
			Modes: []statmech.Mode{
				statmech.RigidRotor{
					Constants: []float64{b(4.10), b(0.38), b(0.38)},
					Symmetry:  1,
				},
				statmech.HarmonicOscillator{
					Frequencies: []float64{301, 890, 945, 1032,
						1344, 1404, 1422, 2184, 3010, 3068, 3118},
				},
			},
		},
	}

	helium := &pdep.Species{
		Label: "He",
		Transport: collision.Transport{
			Sigma:     2.55e-10,
			Epsilon:   1.41e-22,
			MolWeight: 0.004,
		},
	}

	return &pdep.Network{
		Isomers:  []*pdep.Species{ch3nc, ch3cn},
		Products: []pdep.Channel{{ch3, cn}},
		PathReactions: []*pdep.PathReaction{
			{
				Reactants:       pdep.Channel{ch3nc},
				Products:        pdep.Channel{ch3cn},
				TransitionState: isomerizationTS,
			},
			{
				Reactants: pdep.Channel{ch3cn},
				Products:  pdep.Channel{ch3, cn},
				Kinetics:  &kinetics.Arrhenius{A: 2.0e15, Ea: 4.85e5},
			},
		},
		BathGas:        helium,
		CollisionModel: collision.SingleExponentialDown{Alpha: 5000},
	}
}
