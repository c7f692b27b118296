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

// Package pdep calculates temperature- and pressure-dependent phenomenological
// rate coefficients k(T,P) for unimolecular reaction networks using
// master-equation theory.
//
// A Network holds the isomers (unimolecular wells), bimolecular reactant and
// product channels, and the path reactions that connect adjacent
// configurations on the potential energy surface. The calculation proceeds in
// four stages: discretization of a common energy axis (EnergyGrid, AutoGrid),
// assembly of the density of states of every configuration on that axis
// (DensitiesOfStates), construction of microcanonical rate coefficients k(E)
// for every path reaction (MicrocanonicalRates), and finally a sweep over the
// requested temperatures and pressures (RateCoefficients) that combines the
// microcanonical rates with a collisional energy transfer model using one of
// three interchangeable solution methods from the solver subpackage.
//
// Energies are in J/mol throughout, temperatures in K, and pressures in Pa.
// Densities of states are in mol/J.
package pdep

// Version gives the version number.
const Version = "0.1.0"
