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
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Equation identifies one of the governing equations that sources
// contribute to.
type Equation int

// These are the governing equations.
const (
	TempIon Equation = iota // ion heat
	TempEl                  // electron heat
	Psi                     // poloidal flux (current)
	Ne                      // electron density (particles)
	numEquations
)

var equationNames = [numEquations]string{"temp_ion", "temp_el", "psi", "ne"}

func (e Equation) String() string {
	if e >= 0 && e < numEquations {
		return equationNames[e]
	}
	return fmt.Sprintf("Equation(%d)", int(e))
}

// Equations returns all of the governing equations.
func Equations() []Equation {
	return []Equation{TempIon, TempEl, Psi, Ne}
}

// ParseEquation returns the equation with the given name, e.g. "temp_el".
func ParseEquation(s string) (Equation, error) {
	for i, n := range equationNames {
		if n == s {
			return Equation(i), nil
		}
	}
	return 0, fmt.Errorf("%w: equation %q", ErrInvalidValue, s)
}

// ProfileView is read-only access to the profiles that have already been
// calculated in the current evaluation.
type ProfileView interface {
	// NonSinkSum returns the cell-by-cell sum of the contributions of all
	// non-sink sources to eq.
	NonSinkSum(eq Equation) []float64

	// Profile returns a copy of the contribution of source name to eq.
	Profile(eq Equation, name string) ([]float64, bool)

	// Names returns the sorted names of the sources that contribute to eq.
	Names(eq Equation) []string

	// IsSink reports whether source name was registered as a sink.
	IsSink(name string) bool
}

// SourceProfiles holds the contribution of each source to each governing
// equation for one evaluation. A source appears in an equation's mapping
// only if it contributes to that equation.
type SourceProfiles struct {
	numCells int
	profiles [numEquations]map[string][]float64
	sinks    map[string]bool
}

// NewSourceProfiles returns an empty container for a grid with numCells
// cells.
func NewSourceProfiles(numCells int) *SourceProfiles {
	p := &SourceProfiles{
		numCells: numCells,
		sinks:    make(map[string]bool),
	}
	for i := range p.profiles {
		p.profiles[i] = make(map[string][]float64)
	}
	return p
}

// NumCells returns the number of cells in each profile.
func (p *SourceProfiles) NumCells() int { return p.numCells }

// Set stores a copy of v as the contribution of source name to eq.
// It panics if v has the wrong length.
func (p *SourceProfiles) Set(eq Equation, name string, sink bool, v []float64) {
	if len(v) != p.numCells {
		panic(fmt.Sprintf("plasmasrc: source %s: %s profile has %d values but the grid has %d cells",
			name, eq, len(v), p.numCells))
	}
	p.profiles[eq][name] = append([]float64(nil), v...)
	if sink {
		p.sinks[name] = true
	}
}

// Profile implements ProfileView.
func (p *SourceProfiles) Profile(eq Equation, name string) ([]float64, bool) {
	v, ok := p.profiles[eq][name]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), v...), true
}

// Names implements ProfileView.
func (p *SourceProfiles) Names(eq Equation) []string {
	o := make([]string, 0, len(p.profiles[eq]))
	for n := range p.profiles[eq] {
		o = append(o, n)
	}
	sort.Strings(o)
	return o
}

// IsSink implements ProfileView.
func (p *SourceProfiles) IsSink(name string) bool { return p.sinks[name] }

// Sum returns the total contribution of all sources to eq.
func (p *SourceProfiles) Sum(eq Equation) []float64 {
	return p.sum(eq, func(string) bool { return true })
}

// NonSinkSum implements ProfileView.
func (p *SourceProfiles) NonSinkSum(eq Equation) []float64 {
	return p.sum(eq, func(name string) bool { return !p.sinks[name] })
}

// sum adds the profiles in name order so that results do not depend on
// map iteration order.
func (p *SourceProfiles) sum(eq Equation, include func(string) bool) []float64 {
	o := make([]float64, p.numCells)
	for _, name := range p.Names(eq) {
		if include(name) {
			floats.Add(o, p.profiles[eq][name])
		}
	}
	return o
}
