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

package genericcurrent

import (
	"math"
	"testing"

	"github.com/spatialmodel/plasmasrc"
)

func TestModel(t *testing.T) {
	spr := make([]float64, 20)
	for i := range spr {
		spr[i] = 0.5 + float64(i)/10
	}
	geo, err := plasmasrc.NewUniformGrid(20, nil, spr)
	if err != nil {
		t.Fatal(err)
	}
	core := &plasmasrc.CoreProfiles{Ip: 15e6}

	for _, test := range []struct {
		absolute bool
		want     float64
	}{
		{absolute: false, want: 0.2 * 15e6},
		{absolute: true, want: 3e6},
	} {
		p := &DynamicParams{
			GaussianLocation:       0.4,
			GaussianWidth:          0.05,
			IGeneric:               3e6,
			FractionOfTotalCurrent: 0.2,
			UseAbsoluteCurrent:     test.absolute,
		}
		out, err := Model(NewConfig(), p, geo, SourceName, core, nil)
		if err != nil {
			t.Fatal(err)
		}
		if i := plasmasrc.AreaIntegration(out[0], geo); different(i, test.want, 1e-10) {
			t.Errorf("absolute=%v: want %g A, have %g A", test.absolute, test.want, i)
		}
		// The peak is in the cell containing gaussian_location.
		peak := 0
		for i, v := range out[0] {
			if v > out[0][peak] {
				peak = i
			}
		}
		if peak != 7 && peak != 8 {
			t.Errorf("absolute=%v: peak in cell %d", test.absolute, peak)
		}
	}

	if _, err := Model(NewConfig(), &DynamicParams{GaussianWidth: 0.1}, geo, SourceName, nil, nil); err == nil {
		t.Error("relative current without core profiles should be an error")
	}
}

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}
