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

// Package impurity provides heat sinks for the radiation emitted by
// impurities in the plasma.
package impurity

import (
	"fmt"

	"github.com/spatialmodel/plasmasrc"
)

// SourceName is the name of the impurity radiation source.
const SourceName = "impurity_radiation_heat_sink"

// Model functions of the impurity radiation source.
const (
	MavrinFit        = "impurity_radiation_mavrin_fit"
	ConstantFraction = "radially_constant_fraction_of_Pin"
)

// Family returns the impurity radiation sink family. The Mavrin fit model,
// which is the default, calculates the radiated power from the cooling
// rates in rates. If rates is nil, selecting that model is a configuration
// error.
func Family(rates CoolingRate) plasmasrc.Family {
	return plasmasrc.Family{
		Name:             SourceName,
		Equations:        []plasmasrc.Equation{plasmasrc.TempEl},
		Sink:             true,
		DefaultModelFunc: MavrinFit,
		Variants: []plasmasrc.Variant{
			{
				Name:  MavrinFit,
				New:   func() plasmasrc.SourceConfig { return NewMavrinFitConfig(rates) },
				Model: MavrinFitModel,
			},
			{
				Name:          ConstantFraction,
				NeedsProfiles: true,
				New:           func() plasmasrc.SourceConfig { return NewConstantFractionConfig() },
				Model:         ConstantFractionModel,
			},
		},
	}
}

func dynamicParamsError(name string, want, got interface{}) error {
	return fmt.Errorf("impurity: source %s expects dynamic parameters of type %T but got %T", name, want, got)
}
