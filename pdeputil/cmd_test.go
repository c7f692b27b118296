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
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestLogSpace(t *testing.T) {
	out, err := logSpace(1.0e3, 1.0e7, 5)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1.0e3, 1.0e4, 1.0e5, 1.0e6, 1.0e7}
	for i := range want {
		if math.Abs(out[i]-want[i])/want[i] > 1.0e-10 {
			t.Errorf("point %d = %g; want %g", i, out[i], want[i])
		}
	}

	if out, err := logSpace(500, 900, 1); err != nil || len(out) != 1 || out[0] != 500 {
		t.Errorf("single point: %v, %v", out, err)
	}
	if _, err := logSpace(0, 100, 3); err == nil {
		t.Error("no error for a nonpositive lower bound")
	}
	if _, err := logSpace(100, 10, 3); err == nil {
		t.Error("no error for a descending range")
	}
}

func TestExampleNetwork(t *testing.T) {
	nw := ExampleNetwork()
	labels := channelLabels(nw)
	want := []string{"CH3NC", "CH3CN", "CH3 + CN"}
	if len(labels) != len(want) {
		t.Fatalf("channel labels = %v; want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("label %d = %q; want %q", i, labels[i], want[i])
		}
	}
}

// The bundled network must make it through a complete calculation.
func TestExampleNetworkRateCoefficients(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping the example calculation in short mode")
	}
	nw := ExampleNetwork()
	e, err := nw.AutoGrid(1000, 2000, 0)
	if err != nil {
		t.Fatal(err)
	}
	k, err := nw.RateCoefficients([]float64{1000}, []float64{1.0e5}, e, "modified strong collision")
	if err != nil {
		t.Fatal(err)
	}
	// Isomerization of methyl isocyanide proceeds at an observable rate
	// at 1000 K and 1 bar.
	v := k.Get(0, 0, 1, 0)
	if !(v > 0) || math.IsInf(v, 0) {
		t.Errorf("k(CH3CN<-CH3NC) = %g; want positive and finite", v)
	}
}

func TestRunExample(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping the example calculation in short mode")
	}
	var buf bytes.Buffer
	if err := runExample(&buf, ExampleNetwork()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"T = 600 K", "from CH3NC", "to CH3 + CN"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
}