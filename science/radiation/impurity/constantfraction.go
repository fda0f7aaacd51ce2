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
	"gonum.org/v1/gonum/floats"

	"github.com/spatialmodel/plasmasrc"
)

// ConstantFractionConfig configures a sink that radiates a fixed fraction
// of the total heating power, spread evenly over the plasma volume.
type ConstantFractionConfig struct {
	plasmasrc.BaseConfig `mapstructure:",squash"`

	// FractionOfTotalPowerDensity is the fraction of the total ion and
	// electron heating power that is radiated [dimensionless]. It is not
	// restricted to [0, 1).
	FractionOfTotalPowerDensity plasmasrc.TimeVaryingScalar `mapstructure:"fraction_of_total_power_density"`
}

// NewConstantFractionConfig returns a configuration holding the default
// values: 10% of the input power is radiated.
func NewConstantFractionConfig() *ConstantFractionConfig {
	return &ConstantFractionConfig{
		BaseConfig: plasmasrc.BaseConfig{
			SourceName: SourceName,
			ModelFunc:  ConstantFraction,
			Mode:       plasmasrc.ModelBased,
		},
		FractionOfTotalPowerDensity: plasmasrc.ConstantScalar(0.1),
	}
}

// Validate implements plasmasrc.SourceConfig. The fraction is a scenario
// parameter and any finite value is accepted.
func (c *ConstantFractionConfig) Validate() error { return nil }

// RuntimeParams implements plasmasrc.SourceConfig.
func (c *ConstantFractionConfig) RuntimeParams() plasmasrc.RuntimeParams {
	return &ConstantFractionRuntimeParams{
		BaseRuntimeParams:           c.BaseRuntimeParams(),
		FractionOfTotalPowerDensity: c.FractionOfTotalPowerDensity,
	}
}

// ConstantFractionRuntimeParams are the time-varying parameters of the
// constant fraction sink.
type ConstantFractionRuntimeParams struct {
	plasmasrc.BaseRuntimeParams
	FractionOfTotalPowerDensity plasmasrc.TimeVaryingScalar
}

// MakeProvider implements plasmasrc.RuntimeParams.
func (p *ConstantFractionRuntimeParams) MakeProvider(geo plasmasrc.Geometry) (plasmasrc.RuntimeParamsProvider, error) {
	base, err := p.BaseProvider(geo)
	if err != nil {
		return nil, err
	}
	return &ConstantFractionProvider{
		BaseProvider: base,
		fraction:     p.FractionOfTotalPowerDensity.Interpolator(),
	}, nil
}

// ConstantFractionProvider builds ConstantFractionDynamicParams.
type ConstantFractionProvider struct {
	plasmasrc.BaseProvider
	fraction plasmasrc.ScalarInterpolator
}

// BuildDynamicParams implements plasmasrc.RuntimeParamsProvider.
func (p *ConstantFractionProvider) BuildDynamicParams(t float64) plasmasrc.DynamicParams {
	return &ConstantFractionDynamicParams{
		BaseDynamicParams:           p.BaseDynamicParams(t),
		FractionOfTotalPowerDensity: p.fraction.At(t),
	}
}

// ConstantFractionDynamicParams are the parameters of the constant
// fraction sink at one time.
type ConstantFractionDynamicParams struct {
	plasmasrc.BaseDynamicParams
	FractionOfTotalPowerDensity float64
}

// ConstantFractionModel calculates a spatially uniform electron heat sink
// equal to a fraction of the total input power divided by the plasma
// volume:
//
//	Q_in = Σ non-sink temp_el profiles + Σ non-sink temp_ion profiles
//	P_in = ∫ Q_in dV
//	Q_sink = -fraction · P_in / V_total
//
// It needs the profiles of all other sources, so it returns a
// *plasmasrc.MissingDependencyError when calculated is nil.
func ConstantFractionModel(_ plasmasrc.SourceConfig, dyn plasmasrc.DynamicParams, geo plasmasrc.Geometry,
	name string, _ *plasmasrc.CoreProfiles, calculated plasmasrc.ProfileView) ([][]float64, error) {
	if calculated == nil {
		return nil, &plasmasrc.MissingDependencyError{ModelFunc: ConstantFraction}
	}
	p, ok := dyn.(*ConstantFractionDynamicParams)
	if !ok {
		return nil, dynamicParamsError(name, p, dyn)
	}

	qIn := calculated.NonSinkSum(plasmasrc.TempEl)
	floats.Add(qIn, calculated.NonSinkSum(plasmasrc.TempIon))
	pIn := plasmasrc.VolumeIntegration(qIn, geo) // W

	vFace := geo.VolumeFace()
	vTotal := vFace[len(vFace)-1] // m³

	o := make([]float64, geo.NumCells())
	floats.AddConst(-p.FractionOfTotalPowerDensity*pIn/vTotal, o)
	return [][]float64{o}, nil
}
