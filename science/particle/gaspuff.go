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

// GasPuffSourceName is the name of the gas puff source.
const GasPuffSourceName = "gas_puff_source"

// Exponential is the model function of the gas puff source.
const Exponential = "exponential"

// GasPuffFamily returns the gas puff source family. Gas is puffed at the
// last closed flux surface and decays exponentially inward.
func GasPuffFamily() plasmasrc.Family {
	return family(GasPuffSourceName, Exponential,
		func() plasmasrc.SourceConfig { return NewGasPuffConfig() }, ExponentialModel)
}

// GasPuffConfig configures the gas puff source.
type GasPuffConfig struct {
	plasmasrc.BaseConfig `mapstructure:",squash"`

	// PuffDecayLength is the decay length of the profile in normalized
	// radius.
	PuffDecayLength plasmasrc.TimeVaryingScalar `mapstructure:"puff_decay_length"`

	STotal plasmasrc.TimeVaryingScalar `mapstructure:"S_total"`
}

// NewGasPuffConfig returns a configuration holding the default values.
func NewGasPuffConfig() *GasPuffConfig {
	return &GasPuffConfig{
		BaseConfig: plasmasrc.BaseConfig{
			SourceName: GasPuffSourceName,
			ModelFunc:  Exponential,
			Mode:       plasmasrc.ModelBased,
		},
		PuffDecayLength: plasmasrc.ConstantScalar(0.05),
		STotal:          plasmasrc.ConstantScalar(1e22),
	}
}

// Validate implements plasmasrc.SourceConfig.
func (c *GasPuffConfig) Validate() error {
	return checkWidth(c.PuffDecayLength, "puff_decay_length")
}

// RuntimeParams implements plasmasrc.SourceConfig.
func (c *GasPuffConfig) RuntimeParams() plasmasrc.RuntimeParams {
	return &RuntimeParams{
		BaseRuntimeParams: c.BaseRuntimeParams(),
		Location:          plasmasrc.ConstantScalar(1),
		Width:             c.PuffDecayLength,
		STotal:            c.STotal,
	}
}
