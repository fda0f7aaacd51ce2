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
)

func TestGaussianProfile(t *testing.T) {
	geo, err := NewUniformGrid(25, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	p := GaussianProfile(geo, 0.5, 0.1, 42, VolumeIntegration)
	if v := VolumeIntegration(p, geo); math.Abs(v-42) > 1e-9 {
		t.Errorf("want integral 42, have %g", v)
	}
	if !(p[12] > p[0]) || !(p[12] > p[24]) {
		t.Errorf("profile should peak at the center: %v", p)
	}
	// Symmetric about the center cell.
	for i := 0; i < 12; i++ {
		if math.Abs(p[i]-p[24-i]) > 1e-9*p[12] {
			t.Errorf("cells %d and %d differ: %g != %g", i, 24-i, p[i], p[24-i])
		}
	}
}

func TestExponentialProfile(t *testing.T) {
	geo, err := NewUniformGrid(10, nil, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	if err != nil {
		t.Fatal(err)
	}
	p := ExponentialProfile(geo, 1, 0.2, 3, AreaIntegration)
	if v := AreaIntegration(p, geo); math.Abs(v-3) > 1e-12 {
		t.Errorf("want integral 3, have %g", v)
	}
	if r := p[9] / p[8]; math.Abs(r-math.Exp(0.5)) > 1e-12 {
		t.Errorf("wrong decay ratio %g", r)
	}
}

func TestNormalize_zero(t *testing.T) {
	geo, err := NewUniformGrid(3, []float64{0, 0, 0}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range GaussianProfile(geo, 0.5, 0.1, 1, VolumeIntegration) {
		if v != 0 {
			t.Errorf("cell %d: want 0, have %g", i, v)
		}
	}
}
