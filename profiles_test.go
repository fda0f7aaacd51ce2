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

package plasmasrc

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSourceProfiles_sums(t *testing.T) {
	p := NewSourceProfiles(3)
	p.Set(TempEl, "b", false, []float64{1, 2, 3})
	p.Set(TempEl, "a", false, []float64{10, 20, 30})
	p.Set(TempEl, "sinkX", true, []float64{-5, -5, -5})
	p.Set(Ne, "a", false, []float64{7, 7, 7})

	if diff := cmp.Diff([]float64{11, 22, 33}, p.NonSinkSum(TempEl)); diff != "" {
		t.Errorf("non-sink sum (-want +have):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{6, 17, 28}, p.Sum(TempEl)); diff != "" {
		t.Errorf("sum (-want +have):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0, 0, 0}, p.Sum(Psi)); diff != "" {
		t.Errorf("empty sum (-want +have):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "sinkX"}, p.Names(TempEl)); diff != "" {
		t.Errorf("names (-want +have):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a"}, p.Names(Ne)); diff != "" {
		t.Errorf("ne names (-want +have):\n%s", diff)
	}
	if !p.IsSink("sinkX") || p.IsSink("a") {
		t.Error("wrong sink tags")
	}
	if _, ok := p.Profile(TempIon, "a"); ok {
		t.Error("a does not contribute to temp_ion")
	}
}

func TestSourceProfiles_copies(t *testing.T) {
	p := NewSourceProfiles(2)
	v := []float64{1, 2}
	p.Set(Psi, "a", false, v)
	v[0] = 100
	have, _ := p.Profile(Psi, "a")
	if have[0] != 1 {
		t.Error("Set should copy its input")
	}
	have[1] = 100
	again, _ := p.Profile(Psi, "a")
	if again[1] != 2 {
		t.Error("Profile should return a copy")
	}
	s := p.Sum(Psi)
	s[0] = 100
	if p.Sum(Psi)[0] != 1 {
		t.Error("Sum should return a new slice")
	}
}

func TestSourceProfiles_wrongLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("a profile of the wrong length should panic")
		}
	}()
	NewSourceProfiles(3).Set(TempEl, "a", false, []float64{1})
}

func TestParseEquation(t *testing.T) {
	for _, eq := range Equations() {
		have, err := ParseEquation(eq.String())
		if err != nil {
			t.Fatal(err)
		}
		if have != eq {
			t.Errorf("want %v, have %v", eq, have)
		}
	}
	if _, err := ParseEquation("momentum"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("want invalid value, have %v", err)
	}
}
