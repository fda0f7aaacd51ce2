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

	"github.com/spatialmodel/plasmasrc/science/particle"
)

func TestEvalCmd(t *testing.T) {
	var b bytes.Buffer
	Root.SetOut(&b)
	Root.SetArgs([]string{"eval", "--config=testdata/plasmasrc.toml", "--Times=1,2"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if !strings.Contains(out, particle.GenericSourceName) {
		t.Errorf("output is missing the particle source:\n%s", out)
	}
	if n := len(strings.Split(strings.TrimSpace(out), "\n")); n != 1+2*9 {
		t.Errorf("want %d lines, have %d:\n%s", 1+2*9, n, out)
	}
}

func TestVersionCmd(t *testing.T) {
	var b bytes.Buffer
	Root.SetOut(&b)
	Root.SetArgs([]string{"version"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if have := b.String(); have != "plasmasrc v"+Version+"\n" {
		t.Errorf("have %q", have)
	}
}

func TestParseTimes(t *testing.T) {
	for _, raw := range []interface{}{
		[]string{"0", "1.5"},
		[]interface{}{0.0, 1.5},
		"0 1.5",
	} {
		times, err := parseTimes(raw)
		if err != nil {
			t.Fatal(err)
		}
		if len(times) != 2 || times[0] != 0 || times[1] != 1.5 {
			t.Errorf("%#v: have %v", raw, times)
		}
	}
	for _, raw := range []interface{}{[]string{}, []string{"soon"}, nil} {
		if _, err := parseTimes(raw); err == nil {
			t.Errorf("%#v should be an error", raw)
		}
	}
}
