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

// Package genericheat provides a generic Gaussian ion and electron heat
// source, for example for auxiliary heating.
package genericheat

import (
	"fmt"

	"github.com/spatialmodel/plasmasrc"
)

// SourceName is the name of the generic heat source.
const SourceName = "generic_ion_el_heat_source"

// Gaussian is the only model function.
const Gaussian = "gaussian"

// Family returns the generic heat source family. It contributes to the ion
// and electron heat equations, in that order.
func Family() plasmasrc.Family {
	return plasmasrc.Family{
		Name:             SourceName,
		Equations:        []plasmasrc.Equation{plasmasrc.TempIon, plasmasrc.TempEl},
		DefaultModelFunc: Gaussian,
		Variants: []plasmasrc.Variant{{
			Name:  Gaussian,
			New:   func() plasmasrc.SourceConfig { return NewConfig() },
			Model: Model,
		}},
	}
}

// Config configures the generic heat source.
type Config struct {
	plasmasrc.BaseConfig `mapstructure:",squash"`

	// GaussianLocation is the center of the deposition in normalized radius.
	GaussianLocation plasmasrc.TimeVaryingScalar `mapstructure:"gaussian_location"`

	// GaussianWidth is the width of the deposition in normalized radius.
	GaussianWidth plasmasrc.TimeVaryingScalar `mapstructure:"gaussian_width"`

	// PTotal is the total heating power [W].
	PTotal plasmasrc.TimeVaryingScalar `mapstructure:"P_total"`

	// ElectronHeatFraction is the fraction of the absorbed power that
	// heats electrons. The rest heats ions.
	ElectronHeatFraction plasmasrc.TimeVaryingScalar `mapstructure:"electron_heat_fraction"`

	// AbsorptionFraction is the fraction of PTotal that is absorbed by the
	// plasma.
	AbsorptionFraction plasmasrc.TimeVaryingScalar `mapstructure:"absorption_fraction"`
}

// NewConfig returns a configuration holding the default values.
func NewConfig() *Config {
	return &Config{
		BaseConfig: plasmasrc.BaseConfig{
			SourceName: SourceName,
			ModelFunc:  Gaussian,
			Mode:       plasmasrc.ModelBased,
		},
		GaussianLocation:     plasmasrc.ConstantScalar(0),
		GaussianWidth:        plasmasrc.ConstantScalar(0.25),
		PTotal:               plasmasrc.ConstantScalar(120e6),
		ElectronHeatFraction: plasmasrc.ConstantScalar(0.66666),
		AbsorptionFraction:   plasmasrc.ConstantScalar(1),
	}
}

// Validate implements plasmasrc.SourceConfig.
func (c *Config) Validate() error {
	for _, w := range c.GaussianWidth.Values {
		if !(w > 0) {
			return &plasmasrc.ConfigError{Field: "gaussian_width",
				Err: fmt.Errorf("%w: width must be positive but is %g", plasmasrc.ErrInvalidValue, w)}
		}
	}
	return nil
}

// RuntimeParams implements plasmasrc.SourceConfig.
func (c *Config) RuntimeParams() plasmasrc.RuntimeParams {
	return &RuntimeParams{
		BaseRuntimeParams:    c.BaseRuntimeParams(),
		GaussianLocation:     c.GaussianLocation,
		GaussianWidth:        c.GaussianWidth,
		PTotal:               c.PTotal,
		ElectronHeatFraction: c.ElectronHeatFraction,
		AbsorptionFraction:   c.AbsorptionFraction,
	}
}

// RuntimeParams are the time-varying parameters of the source.
type RuntimeParams struct {
	plasmasrc.BaseRuntimeParams
	GaussianLocation     plasmasrc.TimeVaryingScalar
	GaussianWidth        plasmasrc.TimeVaryingScalar
	PTotal               plasmasrc.TimeVaryingScalar
	ElectronHeatFraction plasmasrc.TimeVaryingScalar
	AbsorptionFraction   plasmasrc.TimeVaryingScalar
}

// MakeProvider implements plasmasrc.RuntimeParams.
func (p *RuntimeParams) MakeProvider(geo plasmasrc.Geometry) (plasmasrc.RuntimeParamsProvider, error) {
	base, err := p.BaseProvider(geo)
	if err != nil {
		return nil, err
	}
	return &Provider{
		BaseProvider:         base,
		gaussianLocation:     p.GaussianLocation.Interpolator(),
		gaussianWidth:        p.GaussianWidth.Interpolator(),
		pTotal:               p.PTotal.Interpolator(),
		electronHeatFraction: p.ElectronHeatFraction.Interpolator(),
		absorptionFraction:   p.AbsorptionFraction.Interpolator(),
	}, nil
}

// Provider builds DynamicParams.
type Provider struct {
	plasmasrc.BaseProvider
	gaussianLocation, gaussianWidth plasmasrc.ScalarInterpolator
	pTotal                          plasmasrc.ScalarInterpolator
	electronHeatFraction            plasmasrc.ScalarInterpolator
	absorptionFraction              plasmasrc.ScalarInterpolator
}

// BuildDynamicParams implements plasmasrc.RuntimeParamsProvider.
func (p *Provider) BuildDynamicParams(t float64) plasmasrc.DynamicParams {
	return &DynamicParams{
		BaseDynamicParams:    p.BaseDynamicParams(t),
		GaussianLocation:     p.gaussianLocation.At(t),
		GaussianWidth:        p.gaussianWidth.At(t),
		PTotal:               p.pTotal.At(t),
		ElectronHeatFraction: p.electronHeatFraction.At(t),
		AbsorptionFraction:   p.absorptionFraction.At(t),
	}
}

// DynamicParams are the parameters of the source at one time.
type DynamicParams struct {
	plasmasrc.BaseDynamicParams
	GaussianLocation     float64
	GaussianWidth        float64
	PTotal               float64
	ElectronHeatFraction float64
	AbsorptionFraction   float64
}

// Model calculates a Gaussian heating profile whose volume integral is the
// absorbed power, split between ions and electrons.
func Model(_ plasmasrc.SourceConfig, dyn plasmasrc.DynamicParams, geo plasmasrc.Geometry,
	name string, _ *plasmasrc.CoreProfiles, _ plasmasrc.ProfileView) ([][]float64, error) {
	p, ok := dyn.(*DynamicParams)
	if !ok {
		return nil, fmt.Errorf("genericheat: source %s has dynamic parameters of type %T", name, dyn)
	}
	profile := plasmasrc.GaussianProfile(geo, p.GaussianLocation, p.GaussianWidth,
		p.PTotal*p.AbsorptionFraction, plasmasrc.VolumeIntegration)
	ion := make([]float64, len(profile))
	el := make([]float64, len(profile))
	for i, v := range profile {
		ion[i] = v * (1 - p.ElectronHeatFraction)
		el[i] = v * p.ElectronHeatFraction
	}
	return [][]float64{ion, el}, nil
}
