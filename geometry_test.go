/*
Copyright © 2024 the plasmasrc authors.
This file is part of plasmasrc.

plasmasrc is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

plasmasrc is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with plasmasrc.  If not, see <http://www.gnu.org/licenses/>.
*/

package plasmasrc

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNewUniformGrid(t *testing.T) {
	g, err := NewUniformGrid(4, []float64{1, 2, 3, 4}, nil)
	if err != nil {
		t.Fatal(err)
	}
	approx := cmpopts.EquateApprox(0, testTolerance)
	if diff := cmp.Diff([]float64{0.125, 0.375, 0.625, 0.875}, g.RhoNorm(), approx); diff != "" {
		t.Errorf("rho (-want +have):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0.25, 0.25, 0.25, 0.25}, g.DRhoNorm(), approx); diff != "" {
		t.Errorf("drho (-want +have):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0, 0.25, 0.75, 1.5, 2.5}, g.VolumeFace(), approx); diff != "" {
		t.Errorf("volume (-want +have):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1, 1, 1, 1}, g.Spr()); diff != "" {
		t.Errorf("spr (-want +have):\n%s", diff)
	}
}

func TestNewGrid_invalid(t *testing.T) {
	if _, err := NewGrid([]float64{0}, nil, nil); err == nil {
		t.Error("a single face should be rejected")
	}
	if _, err := NewGrid([]float64{0, 0.5, 0.5}, []float64{1, 1}, []float64{1, 1}); err == nil {
		t.Error("repeated faces should be rejected")
	}
	if _, err := NewGrid([]float64{0, 0.5, 1}, []float64{1}, []float64{1, 1}); err == nil {
		t.Error("short vpr should be rejected")
	}
	if _, err := NewUniformGrid(0, nil, nil); err == nil {
		t.Error("empty grid should be rejected")
	}
}

func TestIntegration(t *testing.T) {
	g, err := NewUniformGrid(4, []float64{1, 2, 3, 4}, []float64{2, 2, 2, 2})
	if err != nil {
		t.Fatal(err)
	}
	x := []float64{4, 3, 2, 1}
	for name, test := range map[string]struct{ have, want float64 }{
		"cell":   {have: CellIntegration(x, g), want: 2.5},
		"volume": {have: VolumeIntegration(x, g), want: 5},
		"area":   {have: AreaIntegration(x, g), want: 5},
	} {
		if math.Abs(test.have-test.want) > testTolerance {
			t.Errorf("%s: want %g, have %g", name, test.want, test.have)
		}
	}
	c := CumulativeCellIntegration(x, g)
	if diff := cmp.Diff([]float64{0, 1, 1.75, 2.25, 2.5}, c, cmpopts.EquateApprox(0, testTolerance)); diff != "" {
		t.Errorf("cumulative (-want +have):\n%s", diff)
	}
}

func TestIntegration_panics(t *testing.T) {
	g, err := NewUniformGrid(4, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Error("integrating a profile of the wrong length should panic")
		}
	}()
	VolumeIntegration([]float64{1, 2}, g)
}
