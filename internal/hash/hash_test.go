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

package hash

import (
	"math"
	"testing"
)

type named string

func (n named) String() string { return "name:" + string(n) }

type holder struct {
	Name  string
	Value interface{}
}

func TestHash(t *testing.T) {
	type plain struct {
		A float64
		B []string
	}
	a := Hash(plain{A: 1, B: []string{"x"}})
	if a != Hash(plain{A: 1, B: []string{"x"}}) {
		t.Error("equal values should have equal keys")
	}
	if a == Hash(plain{A: 2, B: []string{"x"}}) {
		t.Error("different values should have different keys")
	}
	if len(a) != 32 {
		t.Errorf("key %q should be 128 bits of hex", a)
	}
}

func TestHash_stringer(t *testing.T) {
	if h := Hash(named("x")); h != "name:x" {
		t.Errorf("have %q", h)
	}
}

func TestHash_fallback(t *testing.T) {
	// Unregistered interface values cannot be gob encoded.
	for _, v := range []interface{}{
		[]holder{{Name: "a", Value: &holder{Name: "b", Value: 1.0}}},
		math.NaN(),
	} {
		if Hash(v) != Hash(v) {
			t.Errorf("%v: key is not stable", v)
		}
	}
	x := []holder{{Name: "a", Value: &holder{Name: "b", Value: 1.0}}}
	y := []holder{{Name: "a", Value: &holder{Name: "b", Value: 2.0}}}
	if Hash(x) == Hash(y) {
		t.Error("different nested values should have different keys")
	}
}
