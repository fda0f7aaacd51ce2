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
	"bytes"
	"strings"
	"testing"

	"github.com/ctessum/unit"
	"github.com/spatialmodel/plasmasrc"
)

func TestTotal(t *testing.T) {
	geo, err := plasmasrc.NewUniformGrid(2, []float64{2, 2}, []float64{4, 4})
	if err != nil {
		t.Fatal(err)
	}
	x := []float64{1, 3}
	for _, test := range []struct {
		eq   plasmasrc.Equation
		want float64
		dims unit.Dimensions
	}{
		{eq: plasmasrc.TempIon, want: 4, dims: unit.Watt},
		{eq: plasmasrc.TempEl, want: 4, dims: unit.Watt},
		{eq: plasmasrc.Psi, want: 8, dims: ampere},
		{eq: plasmasrc.Ne, want: 4, dims: perSecond},
	} {
		u := Total(test.eq, x, geo)
		if u.Value() != test.want {
			t.Errorf("%v: want %g, have %g", test.eq, test.want, u.Value())
		}
		if err := u.Check(test.dims); err != nil {
			t.Errorf("%v: %v", test.eq, err)
		}
	}
}

func TestTotalsTable(t *testing.T) {
	m, core := loadTestConfig(t)
	times := []float64{0, 2}
	profiles, err := EvaluateTimes(m, times, core, false)
	if err != nil {
		t.Fatal(err)
	}
	table := TotalsTable(times, profiles, m.Geometry())
	// Per time: two temp_ion rows, three temp_el rows, two psi rows and
	// two ne rows.
	if len(table) != 1+2*9 {
		t.Errorf("want %d rows, have %d", 1+2*9, len(table))
	}
	var sinks int
	for _, row := range table[1:] {
		if row[3] == "true" {
			sinks++
		}
	}
	if sinks != 2 {
		t.Errorf("want 2 sink rows, have %d", sinks)
	}

	var b bytes.Buffer
	if _, err := table.Tabbed(&b); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != len(table) {
		t.Errorf("want %d lines, have %d", len(table), len(lines))
	}
	if !strings.HasPrefix(lines[0], "Time (s)") {
		t.Errorf("bad header %q", lines[0])
	}
}
