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
	"io"
	"text/tabwriter"

	"github.com/ctessum/unit"
	"github.com/spatialmodel/plasmasrc"
)

// perSecond is the dimension of a particle source rate.
var perSecond = unit.Dimensions{unit.TimeDim: -1}

// ampere is the dimension of electric current.
var ampere = unit.Dimensions{unit.CurrentDim: 1}

// Total returns the integrated contribution of profile to eq on geo.
// Heat sources [W/m³] integrate to power, current sources [A/m²] to
// current, and particle sources [m⁻³ s⁻¹] to particles per second.
func Total(eq plasmasrc.Equation, profile []float64, geo plasmasrc.Geometry) *unit.Unit {
	switch eq {
	case plasmasrc.TempIon, plasmasrc.TempEl:
		return unit.New(plasmasrc.VolumeIntegration(profile, geo), unit.Watt)
	case plasmasrc.Psi:
		return unit.New(plasmasrc.AreaIntegration(profile, geo), ampere)
	case plasmasrc.Ne:
		return unit.New(plasmasrc.VolumeIntegration(profile, geo), perSecond)
	default:
		panic(fmt.Errorf("plasmautil: invalid equation %v", eq))
	}
}

// A Table holds a text representation of report data.
type Table [][]string

// TotalsTable returns a table of the total contribution of each source
// to each equation at each time. Each equation also has a row for the sum
// of all sources.
func TotalsTable(times []float64, profiles []*plasmasrc.SourceProfiles, geo plasmasrc.Geometry) Table {
	t := Table{{"Time (s)", "Equation", "Source", "Sink", "Total"}}
	for i, p := range profiles {
		for _, eq := range plasmasrc.Equations() {
			names := p.Names(eq)
			if len(names) == 0 {
				continue
			}
			for _, name := range names {
				v, _ := p.Profile(eq, name)
				t = append(t, []string{
					fmt.Sprintf("%g", times[i]), eq.String(), name,
					fmt.Sprintf("%t", p.IsSink(name)),
					fmt.Sprintf("%.6g", Total(eq, v, geo)),
				})
			}
			t = append(t, []string{
				fmt.Sprintf("%g", times[i]), eq.String(), "total", "",
				fmt.Sprintf("%.6g", Total(eq, p.Sum(eq), geo)),
			})
		}
	}
	return t
}

// Tabbed writes t to w as aligned, tab-separated columns.
func (t Table) Tabbed(w io.Writer) (n int, err error) {
	ww := new(tabwriter.Writer)
	ww.Init(w, 0, 2, 2, ' ', 0)
	var nn int
	for _, l := range t {
		for _, r := range l {
			nn, err = fmt.Fprint(ww, r+"\t")
			if err != nil {
				return
			}
			n += nn
		}
		nn, err = fmt.Fprint(ww, "\n")
		if err != nil {
			return
		}
		n += nn
	}
	err = ww.Flush()
	return
}
