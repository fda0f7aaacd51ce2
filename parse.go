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
	"reflect"
	"sort"

	"github.com/spf13/cast"
)

// Keys of a time series specification.
const (
	seriesTime   = "time"
	seriesValue  = "value"
	seriesRho    = "rho"
	seriesInterp = "interpolation_mode"
)

// ParseTimeVaryingScalar converts a loosely typed configuration value into
// a TimeVaryingScalar. Accepted forms are a number, a map of time to value,
// and a map with "time", "value" and optionally "interpolation_mode" keys.
func ParseTimeVaryingScalar(raw interface{}) (TimeVaryingScalar, error) {
	switch v := raw.(type) {
	case TimeVaryingScalar:
		return v, nil
	case *TimeVaryingScalar:
		if v == nil {
			return TimeVaryingScalar{}, fmt.Errorf("%w: nil series", ErrMalformedSeries)
		}
		return *v, nil
	case bool, nil:
		return TimeVaryingScalar{}, fmt.Errorf("%w: %#v is not a number or time series", ErrInvalidValue, raw)
	}
	if isMap(raw) {
		m, err := cast.ToStringMapE(raw)
		if err != nil {
			return TimeVaryingScalar{}, fmt.Errorf("%w: %v", ErrMalformedSeries, err)
		}
		if _, ok := m[seriesTime]; ok {
			return parseScalarSeries(m)
		}
		return parseTimeValueMap(m)
	}
	if isSlice(raw) {
		return TimeVaryingScalar{}, fmt.Errorf("%w: a list is not a scalar; use {time = [...], value = [...]}",
			ErrInvalidValue)
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return TimeVaryingScalar{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return ConstantScalar(f), nil
}

func parseScalarSeries(m map[string]interface{}) (TimeVaryingScalar, error) {
	for k := range m {
		if k != seriesTime && k != seriesValue && k != seriesInterp {
			return TimeVaryingScalar{}, fmt.Errorf("%w: unexpected key %q in time series", ErrMalformedSeries, k)
		}
	}
	times, err := toFloat64Slice(m[seriesTime])
	if err != nil {
		return TimeVaryingScalar{}, fmt.Errorf("%w: time: %v", ErrMalformedSeries, err)
	}
	values, err := toFloat64Slice(m[seriesValue])
	if err != nil {
		return TimeVaryingScalar{}, fmt.Errorf("%w: value: %v", ErrMalformedSeries, err)
	}
	mode, err := interpolationMode(m)
	if err != nil {
		return TimeVaryingScalar{}, err
	}
	return NewTimeVaryingScalar(times, values, mode)
}

// parseTimeValueMap parses a map such as {"0": 1.0, "5": 2.0}.
func parseTimeValueMap(m map[string]interface{}) (TimeVaryingScalar, error) {
	type sample struct{ t, v float64 }
	samples := make([]sample, 0, len(m))
	for k, raw := range m {
		t, err := cast.ToFloat64E(k)
		if err != nil {
			return TimeVaryingScalar{}, fmt.Errorf("%w: time %q is not a number", ErrMalformedSeries, k)
		}
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			return TimeVaryingScalar{}, fmt.Errorf("%w: value at time %q: %v", ErrMalformedSeries, k, err)
		}
		samples = append(samples, sample{t: t, v: v})
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].t < samples[j].t })
	times := make([]float64, len(samples))
	values := make([]float64, len(samples))
	for i, s := range samples {
		times[i], values[i] = s.t, s.v
	}
	return NewTimeVaryingScalar(times, values, PiecewiseLinear)
}

// ParseTimeVaryingArray converts a loosely typed configuration value into
// a TimeVaryingArray. Accepted forms are a number (uniform profile), a list
// of per-cell numbers (constant in time), and a map with "time", "value"
// (one profile per time) and optionally "rho" and "interpolation_mode" keys.
func ParseTimeVaryingArray(raw interface{}) (TimeVaryingArray, error) {
	switch v := raw.(type) {
	case TimeVaryingArray:
		return v, nil
	case *TimeVaryingArray:
		if v == nil {
			return TimeVaryingArray{}, fmt.Errorf("%w: nil series", ErrMalformedSeries)
		}
		return *v, nil
	case bool, nil:
		return TimeVaryingArray{}, fmt.Errorf("%w: %#v is not a profile", ErrInvalidValue, raw)
	}
	if isMap(raw) {
		m, err := cast.ToStringMapE(raw)
		if err != nil {
			return TimeVaryingArray{}, fmt.Errorf("%w: %v", ErrMalformedSeries, err)
		}
		return parseArraySeries(m)
	}
	if isSlice(raw) {
		values, err := toFloat64Slice(raw)
		if err != nil {
			return TimeVaryingArray{}, fmt.Errorf("%w: %v", ErrMalformedSeries, err)
		}
		return NewTimeVaryingArray([]float64{0}, nil, [][]float64{values}, PiecewiseLinear)
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return TimeVaryingArray{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return UniformArray(f), nil
}

func parseArraySeries(m map[string]interface{}) (TimeVaryingArray, error) {
	for k := range m {
		if k != seriesTime && k != seriesValue && k != seriesInterp && k != seriesRho {
			return TimeVaryingArray{}, fmt.Errorf("%w: unexpected key %q in profile", ErrMalformedSeries, k)
		}
	}
	times, err := toFloat64Slice(m[seriesTime])
	if err != nil {
		return TimeVaryingArray{}, fmt.Errorf("%w: time: %v", ErrMalformedSeries, err)
	}
	if !isSlice(m[seriesValue]) {
		return TimeVaryingArray{}, fmt.Errorf("%w: value must be a list of profiles", ErrMalformedSeries)
	}
	rows := reflect.ValueOf(m[seriesValue])
	values := make([][]float64, rows.Len())
	for i := range values {
		if values[i], err = toFloat64Slice(rows.Index(i).Interface()); err != nil {
			return TimeVaryingArray{}, fmt.Errorf("%w: value %d: %v", ErrMalformedSeries, i, err)
		}
	}
	var rho []float64
	if r, ok := m[seriesRho]; ok {
		if rho, err = toFloat64Slice(r); err != nil {
			return TimeVaryingArray{}, fmt.Errorf("%w: rho: %v", ErrMalformedSeries, err)
		}
	}
	mode, err := interpolationMode(m)
	if err != nil {
		return TimeVaryingArray{}, err
	}
	return NewTimeVaryingArray(times, rho, values, mode)
}

func interpolationMode(m map[string]interface{}) (InterpolationMode, error) {
	raw, ok := m[seriesInterp]
	if !ok {
		return PiecewiseLinear, nil
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: interpolation_mode: %v", ErrInvalidValue, err)
	}
	return ParseInterpolationMode(s)
}

// toFloat64Slice converts any slice or array of numbers to []float64.
func toFloat64Slice(raw interface{}) ([]float64, error) {
	switch v := raw.(type) {
	case []float64:
		return append([]float64(nil), v...), nil
	case nil:
		return nil, fmt.Errorf("missing")
	}
	if !isSlice(raw) {
		return nil, fmt.Errorf("%#v is not a list", raw)
	}
	rv := reflect.ValueOf(raw)
	o := make([]float64, rv.Len())
	for i := range o {
		f, err := cast.ToFloat64E(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %v", i, err)
		}
		o[i] = f
	}
	return o, nil
}

func isMap(raw interface{}) bool {
	return raw != nil && reflect.ValueOf(raw).Kind() == reflect.Map
}

func isSlice(raw interface{}) bool {
	if raw == nil {
		return false
	}
	k := reflect.ValueOf(raw).Kind()
	return k == reflect.Slice || k == reflect.Array
}
