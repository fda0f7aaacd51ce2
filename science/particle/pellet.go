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

// PelletSourceName is the name of the pellet injection source.
const PelletSourceName = "pellet_source"

// PelletFamily returns the pellet source family. The pellet ablation is
// approximated by a Gaussian deposition profile.
func PelletFamily() plasmasrc.Family {
	return family(PelletSourceName, Gaussian,
		func() plasmasrc.SourceConfig { return NewPelletConfig() }, GaussianModel)
}

// PelletConfig configures the pellet source.
type PelletConfig struct {
	plasmasrc.BaseConfig `mapstructure:",squash"`

	PelletDepositionLocation plasmasrc.TimeVaryingScalar `mapstructure:"pellet_deposition_location"`
	PelletWidth              plasmasrc.TimeVaryingScalar `mapstructure:"pellet_width"`
	STotal                   plasmasrc.TimeVaryingScalar `mapstructure:"S_total"`
}

// NewPelletConfig returns a configuration holding the default values.
func NewPelletConfig() *PelletConfig {
	return &PelletConfig{
		BaseConfig: plasmasrc.BaseConfig{
			SourceName: PelletSourceName,
			ModelFunc:  Gaussian,
			Mode:       plasmasrc.ModelBased,
		},
		PelletDepositionLocation: plasmasrc.ConstantScalar(0.85),
		PelletWidth:              plasmasrc.ConstantScalar(0.1),
		STotal:                   plasmasrc.ConstantScalar(2e22),
	}
}

// Validate implements plasmasrc.SourceConfig.
func (c *PelletConfig) Validate() error {
	return checkWidth(c.PelletWidth, "pellet_width")
}

// RuntimeParams implements plasmasrc.SourceConfig.
func (c *PelletConfig) RuntimeParams() plasmasrc.RuntimeParams {
	return &RuntimeParams{
		BaseRuntimeParams: c.BaseRuntimeParams(),
		Location:          c.PelletDepositionLocation,
		Width:             c.PelletWidth,
		STotal:            c.STotal,
	}
}
