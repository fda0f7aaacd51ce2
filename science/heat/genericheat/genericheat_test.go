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

package genericheat

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spatialmodel/plasmasrc"
)

func TestModel_totalPower(t *testing.T) {
	geo, err := plasmasrc.NewUniformGrid(25, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	r, err := plasmasrc.NewRegistry(Family())
	if err != nil {
		t.Fatal(err)
	}
	srcs, err := r.Resolve(map[string]map[string]interface{}{
		SourceName: {
			"P_total":             map[string]interface{}{"time": []float64{0, 10}, "value": []float64{10e6, 30e6}},
			"absorption_fraction": 0.5,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	m, err := plasmasrc.NewSourceModels(srcs, geo)
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct{ t, power float64 }{
		{t: 0, power: 5e6},
		{t: 5, power: 10e6},
		{t: 100, power: 15e6},
	} {
		p, err := m.BuildSourceProfiles(test.t, nil, false)
		if err != nil {
			t.Fatal(err)
		}
		ion := plasmasrc.VolumeIntegration(p.Sum(plasmasrc.TempIon), geo)
		el := plasmasrc.VolumeIntegration(p.Sum(plasmasrc.TempEl), geo)
		if different(ion+el, test.power, 1e-10) {
			t.Errorf("t=%g: total power: want %g, have %g", test.t, test.power, ion+el)
		}
		if different(el/(ion+el), 0.66666, 1e-10) {
			t.Errorf("t=%g: electron fraction %g", test.t, el/(ion+el))
		}
	}
}

func TestProvider_pure(t *testing.T) {
	geo, err := plasmasrc.NewUniformGrid(10, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg := NewConfig()
	cfg.GaussianLocation, err = plasmasrc.NewTimeVaryingScalar([]float64{0, 1, 2}, []float64{0, 0.3, 0.1}, plasmasrc.Smooth)
	if err != nil {
		t.Fatal(err)
	}
	p, err := cfg.RuntimeParams().MakeProvider(geo)
	if err != nil {
		t.Fatal(err)
	}
	a := p.BuildDynamicParams(0.7)
	b := p.BuildDynamicParams(0.7)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("dynamic parameters changed between calls (-first +second):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	r, err := plasmasrc.NewRegistry(Family())
	if err != nil {
		t.Fatal(err)
	}
	_, err = r.Resolve(map[string]map[string]interface{}{SourceName: {"gaussian_width": 0}})
	var ce *plasmasrc.ConfigError
	if !errors.As(err, &ce) || ce.Field != "gaussian_width" || ce.Source != SourceName {
		t.Errorf("want gaussian_width error, have %v", err)
	}
}

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}
