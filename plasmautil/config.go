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

package plasmautil

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/plasmasrc"
	"github.com/spatialmodel/plasmasrc/science/radiation/impurity"
)

// Config holds the contents of a plasmasrc configuration file.
type Config struct {
	// Times are the simulation times [s] at which the sources are
	// evaluated when no times are given on the command line.
	Times []float64

	// Explicit and LogLevel are read by the command-line interface.
	Explicit bool
	LogLevel string

	// Geometry specifies the radial grid.
	Geometry GeometryConfig

	// CoreProfiles holds the plasma state that the model-based sources
	// use.
	CoreProfiles CoreProfilesConfig

	// CoolingRate is an optional table of impurity cooling rates for the
	// Mavrin fit impurity radiation model.
	CoolingRate *CoolingRateConfig

	// Sources holds the raw configuration of each source, keyed by
	// source name.
	Sources map[string]map[string]interface{}
}

// GeometryConfig specifies a radial grid. If RhoFace is empty the grid
// has NumCells equal cells. Vpr and Spr default to one in every cell.
type GeometryConfig struct {
	NumCells int
	RhoFace  []float64
	Vpr, Spr []float64
}

// CoreProfilesConfig holds core profiles. Each profile may hold one value
// per grid cell, a single value that applies to every cell, or nothing.
type CoreProfilesConfig struct {
	TempEl  []float64 // [keV]
	TempIon []float64 // [keV]
	Ne      []float64 // [m⁻³]
	NImp    []float64 // [m⁻³]
	Zeff    []float64
	Ip      float64 // [A]
}

// CoolingRateConfig is a table of cooling rates Lz [W m³] as a function of
// electron temperature Te [keV].
type CoolingRateConfig struct {
	Te, Lz []float64
}

// ReadConfigFile reads and parses a TOML format configuration file.
// Environment variables in filepath are expanded. Keys that do not
// correspond to a configuration variable are an error, except within
// the Sources table, whose entries are checked when they are resolved.
func ReadConfigFile(filepath string) (*Config, error) {
	filepath = os.ExpandEnv(filepath)
	config := new(Config)
	md, err := toml.DecodeFile(filepath, config)
	if err != nil {
		return nil, fmt.Errorf("plasmautil: problem parsing configuration file %s: %v", filepath, err)
	}
	var unknown []string
	for _, k := range md.Undecoded() {
		if len(k) > 0 && k[0] == "Sources" {
			continue
		}
		unknown = append(unknown, k.String())
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("plasmautil: configuration file %s has unknown variables: %s",
			filepath, strings.Join(unknown, ", "))
	}
	return config, nil
}

// Grid creates the grid specified by the configuration.
func (c *Config) Grid() (*plasmasrc.Grid, error) {
	g := c.Geometry
	if len(g.RhoFace) == 0 {
		return plasmasrc.NewUniformGrid(g.NumCells, g.Vpr, g.Spr)
	}
	if g.NumCells != 0 && g.NumCells != len(g.RhoFace)-1 {
		return nil, fmt.Errorf("plasmautil: Geometry.NumCells is %d but there are %d faces",
			g.NumCells, len(g.RhoFace))
	}
	vpr, spr := g.Vpr, g.Spr
	n := len(g.RhoFace) - 1
	if vpr == nil {
		vpr = fill(n, 1)
	}
	if spr == nil {
		spr = fill(n, 1)
	}
	return plasmasrc.NewGrid(g.RhoFace, vpr, spr)
}

// Core returns the core profiles on a grid with n cells, or nil if none
// are specified.
func (c *Config) Core(n int) (*plasmasrc.CoreProfiles, error) {
	cp := c.CoreProfiles
	o := &plasmasrc.CoreProfiles{Ip: cp.Ip}
	empty := cp.Ip == 0
	for _, p := range []struct {
		name string
		in   []float64
		out  *[]float64
	}{
		{"TempEl", cp.TempEl, &o.TempEl},
		{"TempIon", cp.TempIon, &o.TempIon},
		{"Ne", cp.Ne, &o.Ne},
		{"NImp", cp.NImp, &o.NImp},
		{"Zeff", cp.Zeff, &o.Zeff},
	} {
		switch len(p.in) {
		case 0:
			continue
		case 1:
			*p.out = fill(n, p.in[0])
		case n:
			*p.out = append([]float64(nil), p.in...)
		default:
			return nil, fmt.Errorf("plasmautil: CoreProfiles.%s has %d values but the grid has %d cells",
				p.name, len(p.in), n)
		}
		empty = false
	}
	if empty {
		return nil, nil
	}
	return o, nil
}

// Rates returns the configured impurity cooling rates, or nil if there
// are none.
func (c *Config) Rates() (impurity.CoolingRate, error) {
	if c.CoolingRate == nil {
		return nil, nil
	}
	r, err := impurity.NewTabulatedCoolingRate(c.CoolingRate.Te, c.CoolingRate.Lz)
	if err != nil {
		return nil, fmt.Errorf("plasmautil: CoolingRate: %v", err)
	}
	return r, nil
}

func fill(n int, v float64) []float64 {
	o := make([]float64, n)
	for i := range o {
		o[i] = v
	}
	return o
}
