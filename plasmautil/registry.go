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

// Package plasmautil contains utilities for configuring and running
// plasmasrc source models from configuration files and the command line.
package plasmautil

import (
	"github.com/spatialmodel/plasmasrc"
	"github.com/spatialmodel/plasmasrc/science/current/genericcurrent"
	"github.com/spatialmodel/plasmasrc/science/heat/genericheat"
	"github.com/spatialmodel/plasmasrc/science/particle"
	"github.com/spatialmodel/plasmasrc/science/radiation/bremsstrahlung"
	"github.com/spatialmodel/plasmasrc/science/radiation/impurity"
)

// DefaultFamilies returns all of the source families provided by this
// module. rates are the impurity cooling rates used by the Mavrin fit
// impurity radiation model; they may be nil if that model is not used.
func DefaultFamilies(rates impurity.CoolingRate) []plasmasrc.Family {
	f := []plasmasrc.Family{
		genericheat.Family(),
		genericcurrent.Family(),
		bremsstrahlung.Family(),
		impurity.Family(rates),
	}
	return append(f, particle.Families()...)
}

// DefaultRegistry returns a registry holding DefaultFamilies(rates).
func DefaultRegistry(rates impurity.CoolingRate) (*plasmasrc.Registry, error) {
	return plasmasrc.NewRegistry(DefaultFamilies(rates)...)
}
