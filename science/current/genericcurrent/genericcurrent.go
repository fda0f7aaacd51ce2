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

// Package genericcurrent provides a generic Gaussian external current
// drive source.
package genericcurrent

import (
	"fmt"

	"github.com/spatialmodel/plasmasrc"
)

// SourceName is the name of the generic current source.
const SourceName = "generic_current_source"

// Gaussian is the only model function.
const Gaussian = "gaussian"

// Family returns the generic current source family.
func Family() plasmasrc.Family {
	return plasmasrc.Family{
		Name:             SourceName,
		Equations:        []plasmasrc.Equation{plasmasrc.Psi},
		DefaultModelFunc: Gaussian,
		Variants: []plasmasrc.Variant{{
			Name:  Gaussian,
			New:   func() plasmasrc.SourceConfig { return NewConfig() },
			Model: Model,
		}},
	}
}

// Config configures the generic current source.
type Config struct {
	plasmasrc.BaseConfig `mapstructure:",squash"`

	GaussianLocation plasmasrc.TimeVaryingScalar `mapstructure:"gaussian_location"`
	GaussianWidth    plasmasrc.TimeVaryingScalar `mapstructure:"gaussian_width"`

	// IGeneric is the driven current [A] when UseAbsoluteCurrent is set.
	IGeneric plasmasrc.TimeVaryingScalar `mapstructure:"I_generic"`

	// FractionOfTotalCurrent is the driven current as a fraction of the
	// plasma current when UseAbsoluteCurrent is not set.
	FractionOfTotalCurrent plasmasrc.TimeVaryingScalar `mapstructure:"fraction_of_total_current"`

	UseAbsoluteCurrent bool `mapstructure:"use_absolute_current"`
}

// NewConfig returns a configuration holding the default values.
func NewConfig() *Config {
	return &Config{
		BaseConfig: plasmasrc.BaseConfig{
			SourceName: SourceName,
			ModelFunc:  Gaussian,
			Mode:       plasmasrc.ModelBased,
		},
		GaussianLocation:       plasmasrc.ConstantScalar(0.4),
		GaussianWidth:          plasmasrc.ConstantScalar(0.05),
		IGeneric:               plasmasrc.ConstantScalar(3e6),
		FractionOfTotalCurrent: plasmasrc.ConstantScalar(0.2),
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
		BaseRuntimeParams:      c.BaseRuntimeParams(),
		GaussianLocation:       c.GaussianLocation,
		GaussianWidth:          c.GaussianWidth,
		IGeneric:               c.IGeneric,
		FractionOfTotalCurrent: c.FractionOfTotalCurrent,
		UseAbsoluteCurrent:     c.UseAbsoluteCurrent,
	}
}

// RuntimeParams are the time-varying parameters of the source.
type RuntimeParams struct {
	plasmasrc.BaseRuntimeParams
	GaussianLocation       plasmasrc.TimeVaryingScalar
	GaussianWidth          plasmasrc.TimeVaryingScalar
	IGeneric               plasmasrc.TimeVaryingScalar
	FractionOfTotalCurrent plasmasrc.TimeVaryingScalar
	UseAbsoluteCurrent     bool
}

// MakeProvider implements plasmasrc.RuntimeParams.
func (p *RuntimeParams) MakeProvider(geo plasmasrc.Geometry) (plasmasrc.RuntimeParamsProvider, error) {
	base, err := p.BaseProvider(geo)
	if err != nil {
		return nil, err
	}
	return &Provider{
		BaseProvider:       base,
		location:           p.GaussianLocation.Interpolator(),
		width:              p.GaussianWidth.Interpolator(),
		current:            p.IGeneric.Interpolator(),
		fraction:           p.FractionOfTotalCurrent.Interpolator(),
		useAbsoluteCurrent: p.UseAbsoluteCurrent,
	}, nil
}

// Provider builds DynamicParams.
type Provider struct {
	plasmasrc.BaseProvider
	location, width    plasmasrc.ScalarInterpolator
	current, fraction  plasmasrc.ScalarInterpolator
	useAbsoluteCurrent bool
}

// BuildDynamicParams implements plasmasrc.RuntimeParamsProvider.
func (p *Provider) BuildDynamicParams(t float64) plasmasrc.DynamicParams {
	return &DynamicParams{
		BaseDynamicParams:      p.BaseDynamicParams(t),
		GaussianLocation:       p.location.At(t),
		GaussianWidth:          p.width.At(t),
		IGeneric:               p.current.At(t),
		FractionOfTotalCurrent: p.fraction.At(t),
		UseAbsoluteCurrent:     p.useAbsoluteCurrent,
	}
}

// DynamicParams are the parameters of the source at one time.
type DynamicParams struct {
	plasmasrc.BaseDynamicParams
	GaussianLocation       float64
	GaussianWidth          float64
	IGeneric               float64
	FractionOfTotalCurrent float64
	UseAbsoluteCurrent     bool
}

// Model calculates a Gaussian current density profile [A m⁻²] whose
// integral over the poloidal cross-section is the driven current.
func Model(_ plasmasrc.SourceConfig, dyn plasmasrc.DynamicParams, geo plasmasrc.Geometry,
	name string, core *plasmasrc.CoreProfiles, _ plasmasrc.ProfileView) ([][]float64, error) {
	p, ok := dyn.(*DynamicParams)
	if !ok {
		return nil, fmt.Errorf("genericcurrent: source %s has dynamic parameters of type %T", name, dyn)
	}
	current := p.IGeneric
	if !p.UseAbsoluteCurrent {
		if core == nil {
			return nil, fmt.Errorf("genericcurrent: source %s needs the plasma current unless "+
				"use_absolute_current is set", name)
		}
		current = p.FractionOfTotalCurrent * core.Ip
	}
	j := plasmasrc.GaussianProfile(geo, p.GaussianLocation, p.GaussianWidth, current, plasmasrc.AreaIntegration)
	return [][]float64{j}, nil
}
