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

package collision

import (
	"math"
	"testing"
)

const testTolerance = 1.0e-8

var (
	testSpecies = Transport{Sigma: 4.58e-10, Epsilon: 4.92e-21, MolWeight: 0.04105}
	testBath    = Transport{Sigma: 3.70e-10, Epsilon: 1.31e-21, MolWeight: 0.028}
)

func testGrid(de float64, n int) []float64 {
	e := make([]float64, n)
	for i := range e {
		e[i] = float64(i) * de
	}
	return e
}

func TestFrequency(t *testing.T) {
	omega := Frequency(testSpecies, testBath, 1000, 1.0e5)
	if !(omega > 0) || math.IsInf(omega, 0) {
		t.Fatalf("collision frequency = %g; want positive and finite", omega)
	}
	// At 1 bar and 1000 K a small molecule collides on the order of 1e9
	// times per second.
	if omega < 1.0e8 || omega > 1.0e11 {
		t.Errorf("collision frequency = %g 1/s; outside the physical range", omega)
	}
}

// The collision frequency is proportional to pressure at fixed temperature.
func TestFrequencyPressureScaling(t *testing.T) {
	w1 := Frequency(testSpecies, testBath, 1000, 1.0e5)
	w2 := Frequency(testSpecies, testBath, 1000, 2.0e5)
	if different(w2, 2*w1, testTolerance) {
		t.Errorf("omega(2P) = %g, 2*omega(P) = %g; want equal", w2, 2*w1)
	}
}

func TestProbabilitiesColumnsNormalized(t *testing.T) {
	const de = 2000.0
	e := testGrid(de, 40)
	dens := make([]float64, len(e))
	for r := range e {
		// A rising density, as for any molecule.
		dens[r] = 1.0e-4 * float64(r+1) * float64(r+1)
	}
	m := SingleExponentialDown{Alpha: 5000}
	p := m.Probabilities(e, 1000, dens)

	for i := range e {
		var sum float64
		for j := range e {
			v := p.Get(j, i)
			if v < 0 {
				t.Errorf("P[%d,%d] = %g; want nonnegative", j, i, v)
			}
			sum += v
		}
		if different(sum, 1, 1.0e-6) {
			t.Errorf("column %d sums to %g; want 1", i, sum)
		}
	}
}

// A grain with no states must be inert: its column is the identity, and no
// collision may deposit a molecule into it. Grains below a well's ground
// state are exactly this case.
func TestProbabilitiesZeroDensityColumn(t *testing.T) {
	e := testGrid(2000, 10)
	dens := make([]float64, len(e))
	for r := 3; r < len(e); r++ {
		dens[r] = 1.0e-4 * float64(r)
	}
	m := SingleExponentialDown{Alpha: 5000}
	p := m.Probabilities(e, 1000, dens)
	for i := 0; i < 3; i++ {
		for j := range e {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if p.Get(j, i) != want {
				t.Errorf("P[%d,%d] = %g; want %g", j, i, p.Get(j, i), want)
			}
		}
	}
	for i := 3; i < len(e); i++ {
		for j := 0; j < 3; j++ {
			if p.Get(j, i) != 0 {
				t.Errorf("P[%d,%d] = %g; transfer into a stateless grain", j, i, p.Get(j, i))
			}
		}
		// The lost downward entries are redistributed, so the column
		// still conserves probability.
		var sum float64
		for j := range e {
			sum += p.Get(j, i)
		}
		if different(sum, 1, 1.0e-6) {
			t.Errorf("column %d sums to %g; want 1", i, sum)
		}
	}
}

// Deactivation from a high grain becomes less probable the further the
// molecule must fall.
func TestProbabilitiesDownwardDecay(t *testing.T) {
	e := testGrid(2000, 30)
	dens := make([]float64, len(e))
	for r := range e {
		dens[r] = 1.0e-4 * float64(r+1)
	}
	m := SingleExponentialDown{Alpha: 5000}
	p := m.Probabilities(e, 1000, dens)
	i := len(e) - 1
	for j := 1; j < i; j++ {
		if p.Get(j-1, i) > p.Get(j, i)+testTolerance {
			t.Errorf("P[%d,%d] = %g > P[%d,%d] = %g; deactivation should decay with distance",
				j-1, i, p.Get(j-1, i), j, i, p.Get(j, i))
		}
	}
}

func TestEfficiencyRange(t *testing.T) {
	const de = 2000.0
	e := testGrid(de, 100)
	dens := make([]float64, len(e))
	for r := range e {
		dens[r] = 1.0e-4 * math.Pow(float64(r+1), 3)
	}
	m := SingleExponentialDown{Alpha: 5000}
	prev := math.Inf(1)
	for _, T := range []float64{300, 1000, 2000} {
		beta := m.Efficiency(e, T, dens, 0, 100e3)
		if !(beta > 0) || beta > 1 {
			t.Errorf("T = %g K: beta = %g; want in (0, 1]", T, beta)
		}
		// Hotter baths stabilize less efficiently.
		if beta > prev {
			t.Errorf("T = %g K: beta = %g rose above %g", T, beta, prev)
		}
		prev = beta
	}
}

// Weaker collisions (smaller alpha) stabilize less efficiently.
func TestEfficiencyAlphaOrdering(t *testing.T) {
	e := testGrid(2000, 100)
	dens := make([]float64, len(e))
	for r := range e {
		dens[r] = 1.0e-4 * math.Pow(float64(r+1), 3)
	}
	weak := SingleExponentialDown{Alpha: 1000}.Efficiency(e, 1000, dens, 0, 100e3)
	strong := SingleExponentialDown{Alpha: 20000}.Efficiency(e, 1000, dens, 0, 100e3)
	if weak > strong {
		t.Errorf("beta(alpha=1e3) = %g > beta(alpha=2e4) = %g", weak, strong)
	}
}

func different(a, b, tolerance float64) bool {
	if a == b {
		return false
	}
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}
