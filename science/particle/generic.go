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

package particle

import "github.com/spatialmodel/plasmasrc"

// GenericSourceName is the name of the generic particle source.
const GenericSourceName = "generic_particle_source"

// Gaussian is the model function of the generic and pellet sources.
const Gaussian = "gaussian"

// GenericFamily returns the generic particle source family.
func GenericFamily() plasmasrc.Family {
	return family(GenericSourceName, Gaussian,
		func() plasmasrc.SourceConfig { return NewGenericConfig() }, GaussianModel)
}

// GenericConfig configures the generic particle source.
type GenericConfig struct {
	plasmasrc.BaseConfig `mapstructure:",squash"`

	DepositionLocation plasmasrc.TimeVaryingScalar `mapstructure:"deposition_location"`
	ParticleWidth      plasmasrc.TimeVaryingScalar `mapstructure:"particle_width"`
	STotal             plasmasrc.TimeVaryingScalar `mapstructure:"S_total"`
}

// NewGenericConfig returns a configuration holding the default values.
func NewGenericConfig() *GenericConfig {
	return &GenericConfig{
		BaseConfig: plasmasrc.BaseConfig{
			SourceName: GenericSourceName,
			ModelFunc:  Gaussian,
			Mode:       plasmasrc.ModelBased,
		},
		DepositionLocation: plasmasrc.ConstantScalar(0),
		ParticleWidth:      plasmasrc.ConstantScalar(0.25),
		STotal:             plasmasrc.ConstantScalar(1e22),
	}
}

// Validate implements plasmasrc.SourceConfig.
func (c *GenericConfig) Validate() error {
	return checkWidth(c.ParticleWidth, "particle_width")
}

// RuntimeParams implements plasmasrc.SourceConfig.
func (c *GenericConfig) RuntimeParams() plasmasrc.RuntimeParams {
	return &RuntimeParams{
		BaseRuntimeParams: c.BaseRuntimeParams(),
		Location:          c.DepositionLocation,
		Width:             c.ParticleWidth,
		STotal:            c.STotal,
	}
}
