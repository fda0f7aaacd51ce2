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

/*
Package plasmasrc is a framework for the source and sink terms of a
one-dimensional tokamak transport simulation.

Each source is described by three layers of parameters. A SourceConfig holds
the user's settings, including values that vary in time. Its RuntimeParams
are turned into a RuntimeParamsProvider once the radial Geometry is known,
and the provider builds the DynamicParams that hold the plain numbers in
effect at a single simulation time.

Source families are registered in a Registry, which resolves a raw
configuration map (for example one read from a TOML file) into a set of
validated Sources. NewSourceModels binds the sources to a grid, and
SourceModels.BuildSourceProfiles evaluates them at a given time. Sources that
are not sinks are evaluated first, so sinks whose magnitude depends on the
other sources can read the partially filled SourceProfiles.

The science directory holds the models themselves, and the plasmautil
package and the plasmasrc command provide configuration-file handling and a
command-line interface.
*/
package plasmasrc
