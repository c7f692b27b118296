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
	"strings"

	"github.com/spatialmodel/pdep/collision"
	"github.com/spatialmodel/pdep/kinetics"
)

// physical constants
const (
	gasConstant = 8.314472 // J/(mol K)
)

// A StateCounter provides the energy-resolved density of states of a
// molecular configuration. The returned slice has one entry per energy in e
// [J/mol], in units of mol/J, measured from the configuration's own
// ground-state energy.
type StateCounter interface {
	DensityOfStates(e []float64) []float64
}

// Species is a chemical species participating in a reaction network.
// It is immutable during a calculation.
type Species struct {
	Label string

	// E0 is the ground-state energy [J/mol] relative to the zero of energy
	// shared by every species in the network.
	E0 float64

	// States provides the density of states of the species. It may be nil
	// for species that only appear in product channels.
	States StateCounter

	// Transport holds the Lennard-Jones parameters used to compute
	// collision frequencies.
	Transport collision.Transport
}

func (s *Species) String() string {
	return s.Label
}

// TransitionState is the pseudo-species at the saddle point of a path
// reaction.
type TransitionState struct {
	Label string

	// E0 is the ground-state energy of the transition state [J/mol],
	// on the same zero of energy as the species.
	E0 float64

	// States provides the density of states of the transition state.
	// When present, microcanonical rates are computed with RRKM theory;
	// otherwise the reaction must carry high-pressure-limit Arrhenius
	// parameters for the inverse Laplace transform method.
	States StateCounter
}

// A Channel is an ordered set of one or two species representing a
// unimolecular or bimolecular configuration. Channels are compared by
// element identity and order.
type Channel []*Species

// E0 returns the total ground-state energy of the channel [J/mol].
func (c Channel) E0() float64 {
	var e float64
	for _, s := range c {
		e += s.E0
	}
	return e
}

func (c Channel) equal(other Channel) bool {
	if len(c) != len(other) {
		return false
	}
	for i, s := range c {
		if s != other[i] {
			return false
		}
	}
	return true
}

func (c Channel) String() string {
	labels := make([]string, len(c))
	for i, s := range c {
		labels[i] = s.Label
	}
	return strings.Join(labels, " + ")
}

// ReactionKind classifies a path reaction by the roles its two channels play
// in the network. It is computed once, when the network topology is first
// validated, rather than re-derived by list lookups on every calculation.
type ReactionKind int

const (
	unclassified ReactionKind = iota

	// Isomerization connects two unimolecular wells.
	Isomerization

	// DissociationToReactant connects a well to a bimolecular reactant
	// channel; the reverse (association) direction is included.
	DissociationToReactant

	// DissociationToProduct connects a well to a product channel, which is
	// an irreversible sink.
	DissociationToProduct

	// Association connects a bimolecular reactant channel to a well.
	Association
)

func (k ReactionKind) String() string {
	switch k {
	case Isomerization:
		return "isomerization"
	case DissociationToReactant:
		return "dissociation to reactants"
	case DissociationToProduct:
		return "dissociation to products"
	case Association:
		return "association"
	}
	return "unclassified"
}

// PathReaction is a directed elementary step between two adjacent channels on
// the potential energy surface: the high-pressure-limit graph. The step is
// treated as reversible wherever densities of states permit; the stored
// direction is only canonical bookkeeping.
type PathReaction struct {
	Reactants Channel
	Products  Channel

	// TransitionState carries the saddle-point energy and, optionally,
	// state data for RRKM calculations.
	TransitionState *TransitionState

	// Kinetics holds high-pressure-limit modified-Arrhenius parameters for
	// the inverse Laplace transform method, used when the transition state
	// carries no state data.
	Kinetics *kinetics.Arrhenius

	kind      ReactionKind
	reacIndex int // index of Reactants within its network list
	prodIndex int // index of Products within its network list
}

// Kind returns the reaction's topology classification. It is the zero
// ReactionKind until the network containing the reaction has been validated.
func (rxn *PathReaction) Kind() ReactionKind {
	return rxn.kind
}

func (rxn *PathReaction) String() string {
	return fmt.Sprintf("%v -> %v", rxn.Reactants, rxn.Products)
}

// Network is a unimolecular reaction network: the isomers (wells), the
// bimolecular reactant channels, the product channels (sinks with no return
// flux), and the path reactions connecting adjacent configurations. The
// topology is read-only during a calculation, so a single Network may be
// shared by concurrent calls.
type Network struct {
	Isomers        []*Species
	Reactants      []Channel
	Products       []Channel
	PathReactions  []*PathReaction
	BathGas        *Species
	CollisionModel collision.Model

	classified bool
}

// classify determines the kind of every path reaction by locating its two
// channels within the isomer, reactant and product lists, and caches the
// result on the reactions. A channel that appears in none of the lists is a
// configuration error.
func (nw *Network) classify() error {
	if nw.classified {
		return nil
	}
	for _, rxn := range nw.PathReactions {
		switch {
		case nw.isomerIndex(rxn.Reactants) >= 0 && nw.isomerIndex(rxn.Products) >= 0:
			rxn.kind = Isomerization
			rxn.reacIndex = nw.isomerIndex(rxn.Reactants)
			rxn.prodIndex = nw.isomerIndex(rxn.Products)
		case nw.isomerIndex(rxn.Reactants) >= 0 && channelIndex(nw.Reactants, rxn.Products) >= 0:
			rxn.kind = DissociationToReactant
			rxn.reacIndex = nw.isomerIndex(rxn.Reactants)
			rxn.prodIndex = channelIndex(nw.Reactants, rxn.Products)
		case nw.isomerIndex(rxn.Reactants) >= 0 && channelIndex(nw.Products, rxn.Products) >= 0:
			rxn.kind = DissociationToProduct
			rxn.reacIndex = nw.isomerIndex(rxn.Reactants)
			rxn.prodIndex = channelIndex(nw.Products, rxn.Products)
		case channelIndex(nw.Reactants, rxn.Reactants) >= 0 && nw.isomerIndex(rxn.Products) >= 0:
			rxn.kind = Association
			rxn.reacIndex = channelIndex(nw.Reactants, rxn.Reactants)
			rxn.prodIndex = nw.isomerIndex(rxn.Products)
		default:
			return fmt.Errorf("pdep: path reaction %v does not connect "+
				"recognized isomer, reactant, or product channels", rxn)
		}
	}
	nw.classified = true
	return nil
}

// isomerIndex returns the index of the isomer matching the given channel, or
// -1 if the channel is not a single species from the isomer list.
func (nw *Network) isomerIndex(c Channel) int {
	if len(c) != 1 {
		return -1
	}
	for i, iso := range nw.Isomers {
		if iso == c[0] {
			return i
		}
	}
	return -1
}

func channelIndex(list []Channel, c Channel) int {
	for i, other := range list {
		if c.equal(other) {
			return i
		}
	}
	return -1
}

// shiftedView returns a copy of the network whose path reactions carry
// transition-state energies lowered by emin. The species, channels and
// collision model are shared with the receiver; nothing reachable from the
// receiver is mutated, so the original energies survive even if a later
// calculation step fails.
func (nw *Network) shiftedView(emin float64) *Network {
	shifted := *nw
	shifted.PathReactions = make([]*PathReaction, len(nw.PathReactions))
	for i, rxn := range nw.PathReactions {
		r := *rxn
		if rxn.TransitionState != nil {
			ts := *rxn.TransitionState
			ts.E0 -= emin
			r.TransitionState = &ts
		}
		shifted.PathReactions[i] = &r
	}
	return &shifted
}
