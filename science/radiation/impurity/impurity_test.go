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

package impurity

import (
	"errors"
	"math"
	"testing"

	"github.com/spatialmodel/plasmasrc"
)

const testTolerance = 1.e-10

// fixedConfig is a heat source that contributes a constant value.
type fixedConfig struct {
	plasmasrc.BaseConfig `mapstructure:",squash"`
	Value                float64 `mapstructure:"value"`
}

func (c *fixedConfig) Validate() error { return nil }
func (c *fixedConfig) RuntimeParams() plasmasrc.RuntimeParams {
	return fixedParams{c.BaseRuntimeParams()}
}

type fixedParams struct{ plasmasrc.BaseRuntimeParams }

func (p fixedParams) MakeProvider(geo plasmasrc.Geometry) (plasmasrc.RuntimeParamsProvider, error) {
	b, err := p.BaseProvider(geo)
	return fixedProvider{b}, err
}

type fixedProvider struct{ plasmasrc.BaseProvider }

func (p fixedProvider) BuildDynamicParams(t float64) plasmasrc.DynamicParams {
	return p.BaseDynamicParams(t)
}

func fixedFamily(name string, eq plasmasrc.Equation) plasmasrc.Family {
	return plasmasrc.Family{
		Name:             name,
		Equations:        []plasmasrc.Equation{eq},
		DefaultModelFunc: "fixed",
		Variants: []plasmasrc.Variant{{
			Name: "fixed",
			New:  func() plasmasrc.SourceConfig { return &fixedConfig{} },
			Model: func(static plasmasrc.SourceConfig, _ plasmasrc.DynamicParams, _ plasmasrc.Geometry,
				_ string, _ *plasmasrc.CoreProfiles, _ plasmasrc.ProfileView) ([][]float64, error) {
				return [][]float64{{static.(*fixedConfig).Value}}, nil
			},
		}},
	}
}

func testRegistry(t *testing.T, rates CoolingRate) *plasmasrc.Registry {
	r, err := plasmasrc.NewRegistry(
		fixedFamily("heat_a", plasmasrc.TempEl),
		fixedFamily("heat_b", plasmasrc.TempEl),
		fixedFamily("ion_heat", plasmasrc.TempIon),
		Family(rates),
	)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func evaluate(t *testing.T, r *plasmasrc.Registry, geo plasmasrc.Geometry, raw map[string]map[string]interface{},
	time float64, explicit bool) (*plasmasrc.SourceProfiles, error) {
	srcs, err := r.Resolve(raw)
	if err != nil {
		t.Fatal(err)
	}
	m, err := plasmasrc.NewSourceModels(srcs, geo)
	if err != nil {
		t.Fatal(err)
	}
	return m.BuildSourceProfiles(time, nil, explicit)
}

func TestConstantFraction_scenario(t *testing.T) {
	geo, err := plasmasrc.NewUniformGrid(4, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	raw := map[string]map[string]interface{}{
		"heat_a": {"value": 2.0},
		"heat_b": {"value": 3.0},
		SourceName: {
			"model_func":                      ConstantFraction,
			"fraction_of_total_power_density": 0.2,
		},
	}
	p, err := evaluate(t, testRegistry(t, nil), geo, raw, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	// Q_in = 5 W/m³ in every cell, P_in = 5 W, V_total = 1 m³.
	sink, ok := p.Profile(plasmasrc.TempEl, SourceName)
	if !ok {
		t.Fatal("missing sink profile")
	}
	for i, v := range sink {
		if math.Abs(v-(-1.0)) > testTolerance {
			t.Errorf("cell %d: want -1, have %g", i, v)
		}
	}
	if _, ok := p.Profile(plasmasrc.TempIon, SourceName); ok {
		t.Error("sink should only contribute to temp_el")
	}
	total := p.Sum(plasmasrc.TempEl)
	for i, v := range total {
		if math.Abs(v-4.0) > testTolerance {
			t.Errorf("cell %d: total: want 4, have %g", i, v)
		}
	}
}

func TestConstantFraction_uniformAndBalanced(t *testing.T) {
	geo, err := plasmasrc.NewUniformGrid(5, []float64{1, 2, 3, 4, 5}, nil)
	if err != nil {
		t.Fatal(err)
	}
	calculated := plasmasrc.NewSourceProfiles(5)
	calculated.Set(plasmasrc.TempEl, "a", false, []float64{10, 8, 6, 1, 0})
	calculated.Set(plasmasrc.TempIon, "b", false, []float64{0, 1, 3, 9, 4})
	calculated.Set(plasmasrc.TempEl, "other_sink", true, []float64{-100, -100, -100, -100, -100})

	qIn := calculated.NonSinkSum(plasmasrc.TempEl)
	for i, v := range calculated.NonSinkSum(plasmasrc.TempIon) {
		qIn[i] += v
	}
	pIn := plasmasrc.VolumeIntegration(qIn, geo)

	for _, fraction := range []float64{0.01, 0.1, 0.5, 0.99} {
		dyn := &ConstantFractionDynamicParams{FractionOfTotalPowerDensity: fraction}
		out, err := ConstantFractionModel(NewConstantFractionConfig(), dyn, geo, SourceName, nil, calculated)
		if err != nil {
			t.Fatal(err)
		}
		if len(out) != 1 || len(out[0]) != 5 {
			t.Fatalf("wrong output shape %d", len(out))
		}
		for i, v := range out[0] {
			if v != out[0][0] {
				t.Errorf("fraction %g: cell %d: sink is not uniform: %g != %g", fraction, i, v, out[0][0])
			}
		}
		balance := plasmasrc.VolumeIntegration(out[0], geo) / pIn
		if math.Abs(balance-(-fraction)) > testTolerance {
			t.Errorf("fraction %g: energy balance %g", fraction, balance)
		}
	}
}

func TestConstantFraction_missingProfiles(t *testing.T) {
	geo, err := plasmasrc.NewUniformGrid(4, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	dyn := &ConstantFractionDynamicParams{FractionOfTotalPowerDensity: 0.1}
	_, err = ConstantFractionModel(NewConstantFractionConfig(), dyn, geo, SourceName, nil, nil)
	if !errors.Is(err, plasmasrc.ErrMissingDependency) {
		t.Fatalf("want missing dependency error, have %v", err)
	}
	var mde *plasmasrc.MissingDependencyError
	if !errors.As(err, &mde) || mde.ModelFunc != ConstantFraction {
		t.Errorf("error should name %s: %v", ConstantFraction, err)
	}

	// Explicit sources never see other sources' profiles.
	raw := map[string]map[string]interface{}{
		"heat_a": {"value": 2.0, "is_explicit": true},
		SourceName: {
			"model_func":  ConstantFraction,
			"is_explicit": true,
		},
	}
	_, err = evaluate(t, testRegistry(t, nil), geo, raw, 0, true)
	if !errors.Is(err, plasmasrc.ErrMissingDependency) {
		t.Fatalf("want missing dependency error, have %v", err)
	}
}

func TestConstantFraction_timeVarying(t *testing.T) {
	geo, err := plasmasrc.NewUniformGrid(4, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	raw := map[string]map[string]interface{}{
		"ion_heat": {"value": 1.0},
		SourceName: {
			"model_func": ConstantFraction,
			"fraction_of_total_power_density": map[string]interface{}{
				"time":  []interface{}{0, 10},
				"value": []interface{}{0.1, 0.3},
			},
		},
	}
	r := testRegistry(t, nil)
	for _, test := range []struct{ t, want float64 }{
		{t: -5, want: -0.1},
		{t: 5, want: -0.2},
		{t: 20, want: -0.3},
	} {
		p, err := evaluate(t, r, geo, raw, test.t, false)
		if err != nil {
			t.Fatal(err)
		}
		sink, _ := p.Profile(plasmasrc.TempEl, SourceName)
		if math.Abs(sink[0]-test.want) > testTolerance {
			t.Errorf("t=%g: want %g, have %g", test.t, test.want, sink[0])
		}
	}
}

func TestFamily_defaultModelFunc(t *testing.T) {
	rates := CoolingRateFunc(func(float64) float64 { return 1e-31 })
	srcs, err := testRegistry(t, rates).Resolve(map[string]map[string]interface{}{SourceName: {}})
	if err != nil {
		t.Fatal(err)
	}
	src, ok := srcs.Source(SourceName)
	if !ok {
		t.Fatal("missing source")
	}
	if src.Variant.Name != MavrinFit {
		t.Errorf("default model_func should be %s but is %s", MavrinFit, src.Variant.Name)
	}
	if _, ok := src.Config.(*MavrinFitConfig); !ok {
		t.Errorf("wrong configuration type %T", src.Config)
	}

	// Without cooling rates the default is a configuration error.
	_, err = testRegistry(t, nil).Resolve(map[string]map[string]interface{}{SourceName: {}})
	var ce *plasmasrc.ConfigError
	if !errors.As(err, &ce) || ce.Source != SourceName || ce.Field != "model_func" {
		t.Errorf("want configuration error for model_func, have %v", err)
	}
}

func TestMavrinFit(t *testing.T) {
	geo, err := plasmasrc.NewUniformGrid(3, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	rates, err := NewTabulatedCoolingRate([]float64{0.1, 1, 10}, []float64{1e-30, 1e-31, 1e-32})
	if err != nil {
		t.Fatal(err)
	}
	core := &plasmasrc.CoreProfiles{
		TempEl: []float64{0.01, 1, 100},
		Ne:     []float64{1e20, 1e20, 1e20},
		NImp:   []float64{1e17, 1e17, 2e17},
	}
	dyn := &MavrinFitDynamicParams{RadiationMultiplier: 2}
	out, err := MavrinFitModel(NewMavrinFitConfig(rates), dyn, geo, SourceName, core, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{
		-2 * 1e-30 * 1e20 * 1e17, // clamped below the table
		-2 * 1e-31 * 1e20 * 1e17,
		-2 * 1e-32 * 1e20 * 2e17, // clamped above the table
	}
	for i, w := range want {
		if different(out[0][i], w, 1e-8) {
			t.Errorf("cell %d: want %g, have %g", i, w, out[0][i])
		}
	}

	if _, err := MavrinFitModel(NewMavrinFitConfig(rates), dyn, geo, SourceName, nil, nil); err == nil {
		t.Error("missing core profiles should be an error")
	}
}

func TestTabulatedCoolingRate(t *testing.T) {
	c, err := NewTabulatedCoolingRate([]float64{1, 100}, []float64{1e-30, 1e-32})
	if err != nil {
		t.Fatal(err)
	}
	// Halfway in log space.
	if v := c.Lz(10); different(v, 1e-31, 1e-8) {
		t.Errorf("want 1e-31, have %g", v)
	}
	for _, bad := range [][2][]float64{
		{{1}, {1}},
		{{1, 2}, {1}},
		{{2, 1}, {1, 1}},
		{{1, 2}, {-1, 1}},
	} {
		if _, err := NewTabulatedCoolingRate(bad[0], bad[1]); err == nil {
			t.Errorf("%v should be rejected", bad)
		}
	}
}

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}
