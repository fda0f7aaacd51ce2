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
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/interp"
)

// InterpolationMode specifies how a time series is evaluated between
// its samples.
type InterpolationMode int

const (
	// PiecewiseLinear interpolates linearly between neighboring samples.
	PiecewiseLinear InterpolationMode = iota
	// Step holds the value of the last sample at or before the requested time.
	Step
	// Smooth uses a monotone cubic (Fritsch-Butland) interpolant.
	Smooth
)

var interpolationModeNames = map[InterpolationMode]string{
	PiecewiseLinear: "PIECEWISE_LINEAR",
	Step:            "STEP",
	Smooth:          "SMOOTH",
}

func (m InterpolationMode) String() string {
	if s, ok := interpolationModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("InterpolationMode(%d)", int(m))
}

// ParseInterpolationMode converts a name such as "piecewise_linear" or
// "STEP" into an InterpolationMode.
func ParseInterpolationMode(s string) (InterpolationMode, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	for m, name := range interpolationModeNames {
		if u == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: interpolation mode %q; valid options are PIECEWISE_LINEAR, STEP and SMOOTH",
		ErrInvalidValue, s)
}

// ScalarInterpolator evaluates a scalar at time t.
type ScalarInterpolator interface {
	At(t float64) float64
}

// TimeVaryingScalar is a scalar parameter that may change over the
// course of a simulation. Outside of the sampled range it takes the value
// of the nearest boundary sample. The zero value is not usable; create
// one with NewTimeVaryingScalar or ConstantScalar.
type TimeVaryingScalar struct {
	Times  []float64
	Values []float64
	Mode   InterpolationMode

	interpolator ScalarInterpolator
}

// ConstantScalar returns a TimeVaryingScalar that equals v at all times.
func ConstantScalar(v float64) TimeVaryingScalar {
	return TimeVaryingScalar{
		Times:        []float64{0},
		Values:       []float64{v},
		Mode:         PiecewiseLinear,
		interpolator: constantInterpolator(v),
	}
}

// NewTimeVaryingScalar creates a scalar from samples at the given times.
// Times must be strictly increasing and the same length as values.
func NewTimeVaryingScalar(times, values []float64, mode InterpolationMode) (TimeVaryingScalar, error) {
	if err := checkSeries(times, len(values)); err != nil {
		return TimeVaryingScalar{}, err
	}
	if err := checkFinite(values); err != nil {
		return TimeVaryingScalar{}, err
	}
	ti := append([]float64(nil), times...)
	v := append([]float64(nil), values...)
	f, err := newScalarInterpolator(ti, v, mode)
	if err != nil {
		return TimeVaryingScalar{}, err
	}
	return TimeVaryingScalar{Times: ti, Values: v, Mode: mode, interpolator: f}, nil
}

// Value returns the value of s at time t.
func (s TimeVaryingScalar) Value(t float64) float64 {
	if s.interpolator == nil {
		panic("plasmasrc: TimeVaryingScalar used without being initialized")
	}
	return s.interpolator.At(t)
}

// Interpolator returns the interpolator bound to s.
func (s TimeVaryingScalar) Interpolator() ScalarInterpolator { return s.interpolator }

func (s TimeVaryingScalar) String() string {
	if len(s.Times) == 1 {
		return fmt.Sprintf("%g", s.Values[0])
	}
	return fmt.Sprintf("%s%v->%v", s.Mode, s.Times, s.Values)
}

// checkSeries makes sure that times is non-empty, strictly increasing and
// has n entries.
func checkSeries(times []float64, n int) error {
	if len(times) == 0 {
		return fmt.Errorf("%w: no samples", ErrMalformedSeries)
	}
	if len(times) != n {
		return fmt.Errorf("%w: %d times but %d values", ErrMalformedSeries, len(times), n)
	}
	for i, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("%w: time %d is %g", ErrMalformedSeries, i, t)
		}
		if i > 0 && !(t > times[i-1]) {
			return fmt.Errorf("%w: times must be strictly increasing but %g follows %g",
				ErrMalformedSeries, t, times[i-1])
		}
	}
	return nil
}

func checkFinite(v []float64) error {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: value %d is %g", ErrMalformedSeries, i, x)
		}
	}
	return nil
}

// newScalarInterpolator assumes that times and values have already been
// checked.
func newScalarInterpolator(times, values []float64, mode InterpolationMode) (ScalarInterpolator, error) {
	if _, ok := interpolationModeNames[mode]; !ok {
		return nil, fmt.Errorf("%w: interpolation mode %d", ErrInvalidValue, int(mode))
	}
	if len(times) == 1 {
		return constantInterpolator(values[0]), nil
	}
	switch mode {
	case PiecewiseLinear:
		return &linearInterpolator{times: times, values: values}, nil
	case Step:
		return &stepInterpolator{times: times, values: values}, nil
	case Smooth:
		if len(times) < 3 {
			return &linearInterpolator{times: times, values: values}, nil
		}
		fb := new(interp.FritschButland)
		if err := fb.Fit(times, values); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedSeries, err)
		}
		return &smoothInterpolator{lo: times[0], hi: times[len(times)-1],
			first: values[0], last: values[len(values)-1], p: fb}, nil
	}
	panic("unreachable")
}

type constantInterpolator float64

func (c constantInterpolator) At(float64) float64 { return float64(c) }

type linearInterpolator struct {
	times, values []float64
}

// At clamps to the first and last samples outside of the sampled range.
func (l *linearInterpolator) At(t float64) float64 {
	n := len(l.times)
	if math.IsNaN(t) {
		return math.NaN()
	} else if t <= l.times[0] {
		return l.values[0]
	} else if t >= l.times[n-1] {
		return l.values[n-1]
	}
	i := sort.SearchFloat64s(l.times, t) // times[i-1] < t <= times[i]
	if l.times[i] == t {
		return l.values[i]
	}
	t1, t2 := l.times[i-1], l.times[i]
	frac2 := (t - t1) / (t2 - t1)
	return l.values[i-1]*(1-frac2) + l.values[i]*frac2
}

type stepInterpolator struct {
	times, values []float64
}

func (s *stepInterpolator) At(t float64) float64 {
	if math.IsNaN(t) {
		return math.NaN()
	} else if t <= s.times[0] {
		return s.values[0]
	}
	// Index of the first sample strictly after t.
	i := sort.Search(len(s.times), func(i int) bool { return s.times[i] > t })
	return s.values[i-1]
}

type smoothInterpolator struct {
	lo, hi      float64
	first, last float64
	p           interp.Predictor
}

func (s *smoothInterpolator) At(t float64) float64 {
	if math.IsNaN(t) {
		return math.NaN()
	} else if t <= s.lo {
		return s.first
	} else if t >= s.hi {
		return s.last
	}
	return s.p.Predict(t)
}

// TimeVaryingArray is a radial profile parameter that may change over
// time. Each sample is either given on the grid cells directly or, when Rho
// is set, at arbitrary normalized radial coordinates that are interpolated
// onto the grid when the array is bound.
type TimeVaryingArray struct {
	Times  []float64
	Rho    []float64   // optional normalized radial coordinates of Values columns
	Values [][]float64 // one profile per time
	Mode   InterpolationMode

	uniform bool // Values[0][0] applies to every cell
}

// UniformArray returns a TimeVaryingArray that equals v in every cell at all
// times.
func UniformArray(v float64) TimeVaryingArray {
	return TimeVaryingArray{
		Times:   []float64{0},
		Values:  [][]float64{{v}},
		Mode:    PiecewiseLinear,
		uniform: true,
	}
}

// NewTimeVaryingArray creates a profile from samples. rho may be nil, in
// which case each profile must have one value per grid cell.
func NewTimeVaryingArray(times, rho []float64, values [][]float64, mode InterpolationMode) (TimeVaryingArray, error) {
	if err := checkSeries(times, len(values)); err != nil {
		return TimeVaryingArray{}, err
	}
	if _, ok := interpolationModeNames[mode]; !ok {
		return TimeVaryingArray{}, fmt.Errorf("%w: interpolation mode %d", ErrInvalidValue, int(mode))
	}
	n := len(values[0])
	if n == 0 {
		return TimeVaryingArray{}, fmt.Errorf("%w: empty profile", ErrMalformedSeries)
	}
	v := make([][]float64, len(values))
	for i, row := range values {
		if len(row) != n {
			return TimeVaryingArray{}, fmt.Errorf("%w: profile %d has %d values but profile 0 has %d",
				ErrMalformedSeries, i, len(row), n)
		}
		if err := checkFinite(row); err != nil {
			return TimeVaryingArray{}, err
		}
		v[i] = append([]float64(nil), row...)
	}
	var r []float64
	if rho != nil {
		if len(rho) != n {
			return TimeVaryingArray{}, fmt.Errorf("%w: %d rho coordinates but %d values per profile",
				ErrMalformedSeries, len(rho), n)
		}
		for i := 1; i < len(rho); i++ {
			if !(rho[i] > rho[i-1]) {
				return TimeVaryingArray{}, fmt.Errorf("%w: rho must be strictly increasing", ErrMalformedSeries)
			}
		}
		r = append([]float64(nil), rho...)
	}
	return TimeVaryingArray{
		Times:  append([]float64(nil), times...),
		Rho:    r,
		Values: v,
		Mode:   mode,
	}, nil
}

// ArrayInterpolator evaluates a TimeVaryingArray that has been bound to a
// grid.
type ArrayInterpolator struct {
	cells []ScalarInterpolator
}

// At returns a new slice holding the profile at time t.
func (a ArrayInterpolator) At(t float64) []float64 {
	o := make([]float64, len(a.cells))
	for i, c := range a.cells {
		o[i] = c.At(t)
	}
	return o
}

// Len returns the number of cells.
func (a ArrayInterpolator) Len() int { return len(a.cells) }

// Bind resolves the profile onto the cells of geo. The result is
// independent of time and can be evaluated many times.
func (a TimeVaryingArray) Bind(geo Geometry) (ArrayInterpolator, error) {
	n := geo.NumCells()
	if a.uniform {
		cells := make([]ScalarInterpolator, n)
		for i := range cells {
			cells[i] = constantInterpolator(a.Values[0][0])
		}
		return ArrayInterpolator{cells: cells}, nil
	}
	if len(a.Values) == 0 {
		return ArrayInterpolator{}, fmt.Errorf("%w: no samples", ErrMalformedSeries)
	}
	onGrid := make([][]float64, len(a.Values))
	for i, row := range a.Values {
		switch {
		case a.Rho != nil:
			onGrid[i] = interpolateRho(a.Rho, row, geo.RhoNorm())
		case len(row) == n:
			onGrid[i] = row
		default:
			return ArrayInterpolator{}, fmt.Errorf("%w: profile has %d values but the grid has %d cells",
				ErrShapeMismatch, len(row), n)
		}
	}
	cells := make([]ScalarInterpolator, n)
	column := make([]float64, len(a.Times))
	for j := range cells {
		for i := range onGrid {
			column[i] = onGrid[i][j]
		}
		f, err := newScalarInterpolator(a.Times, append([]float64(nil), column...), a.Mode)
		if err != nil {
			return ArrayInterpolator{}, err
		}
		cells[j] = f
	}
	return ArrayInterpolator{cells: cells}, nil
}

// interpolateRho linearly interpolates values given at rho onto the
// points in to, holding the end values constant outside of rho.
func interpolateRho(rho, values, to []float64) []float64 {
	o := make([]float64, len(to))
	if len(rho) == 1 {
		for i := range o {
			o[i] = values[0]
		}
		return o
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(rho, values); err != nil {
		panic(err) // rho was checked when the array was created.
	}
	lo, hi := rho[0], rho[len(rho)-1]
	for i, x := range to {
		switch {
		case x <= lo:
			o[i] = values[0]
		case x >= hi:
			o[i] = values[len(values)-1]
		default:
			o[i] = pl.Predict(x)
		}
	}
	return o
}
