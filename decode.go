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
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

var (
	scalarType = reflect.TypeOf(TimeVaryingScalar{})
	arrayType  = reflect.TypeOf(TimeVaryingArray{})
	arraysType = reflect.TypeOf([]TimeVaryingArray{})
	modeType   = reflect.TypeOf(Mode(0))
)

// decodeConfig sets the fields of cfg, which must be a pointer to a struct,
// from raw. Keys are matched against the fields' mapstructure tags. Fields
// of the package's own types are parsed here so that problems can be
// reported by key; the rest are decoded with mapstructure.
func decodeConfig(raw map[string]interface{}, cfg SourceConfig) []*ConfigError {
	rv := reflect.ValueOf(cfg)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("plasmasrc: configuration %T is not a pointer to a struct", cfg))
	}
	fields := make(map[string]reflect.Value)
	fieldMap(rv.Elem(), fields)

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []*ConfigError
	plain := make(map[string]interface{})
	for _, k := range keys {
		f, ok := fields[k]
		if !ok {
			errs = append(errs, &ConfigError{Field: k, Err: ErrUnknownField})
			continue
		}
		v, err := decodeField(f.Type(), raw[k])
		if err != nil {
			errs = append(errs, &ConfigError{Field: k, Err: err})
			continue
		}
		if v.IsValid() {
			f.Set(v)
		} else {
			plain[k] = raw[k]
		}
	}
	if len(errs) > 0 || len(plain) == 0 {
		return errs
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		panic(err)
	}
	if err := dec.Decode(plain); err != nil {
		var merr *mapstructure.Error
		if errors.As(err, &merr) {
			for _, e := range merr.Errors {
				errs = append(errs, &ConfigError{Field: fieldFromMessage(e, plain),
					Err: fmt.Errorf("%w: %s", ErrInvalidValue, e)})
			}
		} else {
			errs = append(errs, &ConfigError{Err: fmt.Errorf("%w: %v", ErrInvalidValue, err)})
		}
	}
	return errs
}

// decodeField parses raw into a value of type t if t is one of the types
// that decodeConfig handles itself. Otherwise it returns the zero Value.
func decodeField(t reflect.Type, raw interface{}) (reflect.Value, error) {
	switch t {
	case scalarType:
		s, err := ParseTimeVaryingScalar(raw)
		return reflect.ValueOf(s), err
	case arrayType:
		a, err := ParseTimeVaryingArray(raw)
		return reflect.ValueOf(a), err
	case arraysType:
		if !isSlice(raw) {
			return reflect.Value{}, fmt.Errorf("%w: expected a list of profiles", ErrMalformedSeries)
		}
		rv := reflect.ValueOf(raw)
		o := make([]TimeVaryingArray, rv.Len())
		for i := range o {
			a, err := ParseTimeVaryingArray(rv.Index(i).Interface())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			o[i] = a
		}
		return reflect.ValueOf(o), nil
	case modeType:
		if m, ok := raw.(Mode); ok {
			return reflect.ValueOf(m), nil
		}
		s, err := cast.ToStringE(raw)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: mode: %v", ErrInvalidValue, err)
		}
		m, err := ParseMode(s)
		return reflect.ValueOf(m), err
	}
	return reflect.Value{}, nil
}

// fieldMap adds the settable fields of the struct v to fields, keyed by
// their mapstructure names. Embedded structs tagged ",squash" are
// flattened and fields tagged "-" are skipped.
func fieldMap(v reflect.Value, fields map[string]reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" && !sf.Anonymous {
			continue // unexported
		}
		tag := sf.Tag.Get("mapstructure")
		name, opts, _ := strings.Cut(tag, ",")
		if name == "-" {
			continue
		}
		if strings.Contains(opts, "squash") && sf.Type.Kind() == reflect.Struct {
			fieldMap(v.Field(i), fields)
			continue
		}
		if name == "" {
			name = sf.Name
		}
		fields[name] = v.Field(i)
	}
}

// fieldFromMessage finds the key that a mapstructure error message refers
// to. mapstructure quotes the key, as in "'key' expected ..." or
// "cannot parse 'key' as float ...".
func fieldFromMessage(msg string, plain map[string]interface{}) string {
	keys := make([]string, 0, len(plain))
	for k := range plain {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.Contains(msg, "'"+k+"'") {
			return k
		}
	}
	return ""
}

func joinConfigErrors(errs []*ConfigError) error {
	o := make([]error, len(errs))
	for i, e := range errs {
		o[i] = e
	}
	return errors.Join(o...)
}
