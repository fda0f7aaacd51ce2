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

// Package bremsstrahlung provides an electron heat sink for the
// bremsstrahlung radiation emitted by the plasma.
package bremsstrahlung

import (
	"fmt"
	"math"

	"github.com/spatialmodel/plasmasrc"
)

// SourceName is the name of the bremsstrahlung source.
const SourceName = "bremsstrahlung_heat_sink"

// Wesson is the only model function. It is from Wesson, Tokamaks (2011).
const Wesson = "wesson"

const (
	coefficient = 5.35e3 // W m⁻³ for n_e in 10²⁰ m⁻³ and T_e in keV
	restEnergy  = 511.0  // electron rest energy [keV]
)

// Family returns the bremsstrahlung sink family.
func Family() plasmasrc.Family {
	return plasmasrc.Family{
		Name:             SourceName,
		Equations:        []plasmasrc.Equation{plasmasrc.TempEl},
		Sink:             true,
		DefaultModelFunc: Wesson,
		Variants: []plasmasrc.Variant{{
			Name:  Wesson,
			New:   func() plasmasrc.SourceConfig { return NewConfig() },
			Model: Model,
		}},
	}
}

// Config configures the bremsstrahlung sink.
type Config struct {
	plasmasrc.BaseConfig `mapstructure:",squash"`

	// UseRelativisticCorrection adds the relativistic correction of
	// Stott (2005), which matters at high electron temperatures.
	UseRelativisticCorrection bool `mapstructure:"use_relativistic_correction"`
}

// NewConfig returns a configuration holding the default values.
func NewConfig() *Config {
	return &Config{
		BaseConfig: plasmasrc.BaseConfig{
			SourceName: SourceName,
			ModelFunc:  Wesson,
			Mode:       plasmasrc.ModelBased,
		},
	}
}

// Validate implements plasmasrc.SourceConfig.
func (c *Config) Validate() error { return nil }

// RuntimeParams implements plasmasrc.SourceConfig. The sink has no
// time-varying parameters of its own.
func (c *Config) RuntimeParams() plasmasrc.RuntimeParams {
	return &RuntimeParams{BaseRuntimeParams: c.BaseRuntimeParams()}
}

// RuntimeParams are the time-varying parameters of the sink.
type RuntimeParams struct {
	plasmasrc.BaseRuntimeParams
}

// MakeProvider implements plasmasrc.RuntimeParams.
func (p *RuntimeParams) MakeProvider(geo plasmasrc.Geometry) (plasmasrc.RuntimeParamsProvider, error) {
	base, err := p.BaseProvider(geo)
	if err != nil {
		return nil, err
	}
	return &Provider{BaseProvider: base}, nil
}

// Provider builds the dynamic parameters of the sink.
type Provider struct {
	plasmasrc.BaseProvider
}

// BuildDynamicParams implements plasmasrc.RuntimeParamsProvider.
func (p *Provider) BuildDynamicParams(t float64) plasmasrc.DynamicParams {
	return p.BaseDynamicParams(t)
}

// Model calculates the bremsstrahlung power density
//
//	Q = -5.35×10³ · Z_eff · n_e20² · √T_e  [W m⁻³]
//
// where n_e20 is the electron density in 10²⁰ m⁻³ and T_e is in keV.
func Model(static plasmasrc.SourceConfig, _ plasmasrc.DynamicParams, geo plasmasrc.Geometry,
	name string, core *plasmasrc.CoreProfiles, _ plasmasrc.ProfileView) ([][]float64, error) {
	c, ok := static.(*Config)
	if !ok {
		return nil, fmt.Errorf("bremsstrahlung: source %s has configuration of type %T", name, static)
	}
	n := geo.NumCells()
	if core == nil || len(core.TempEl) != n || len(core.Ne) != n || len(core.Zeff) != n {
		return nil, fmt.Errorf("bremsstrahlung: source %s needs electron temperature, electron density "+
			"and Z_eff profiles with %d cells", name, n)
	}
	o := make([]float64, n)
	for i := range o {
		te := core.TempEl[i]
		ne20 := core.Ne[i] / 1e20
		o[i] = -coefficient * core.Zeff[i] * ne20 * ne20 * math.Sqrt(te)
		if c.UseRelativisticCorrection {
			o[i] *= relativisticCorrection(te, core.Zeff[i])
		}
	}
	return [][]float64{o}, nil
}

func relativisticCorrection(te, zeff float64) float64 {
	x := te / restEnergy
	return (1 + 2*x) * (1 + 2/zeff*(1-1/(1+x)))
}
