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
)

// Configuration error causes. They are wrapped in a *ConfigError that
// names the offending source and field.
var (
	ErrUnknownSource    = errors.New("unknown source name")
	ErrUnknownModelFunc = errors.New("unknown model_func")
	ErrUnknownField     = errors.New("unknown field")
	ErrMalformedSeries  = errors.New("malformed time series")
	ErrShapeMismatch    = errors.New("profile shape does not match the grid")
	ErrInvalidValue     = errors.New("invalid value")
)

// ErrMissingDependency is matched by every *MissingDependencyError.
var ErrMissingDependency = errors.New("required source profiles are not available")

// ConfigError is returned when a source configuration cannot be resolved
// or bound to a grid. It is always detected before any evaluation.
type ConfigError struct {
	Source string // source name, if known
	Field  string // offending field, if known
	Err    error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Source != "" && e.Field != "":
		return fmt.Sprintf("plasmasrc: source %q, field %q: %v", e.Source, e.Field, e.Err)
	case e.Source != "":
		return fmt.Sprintf("plasmasrc: source %q: %v", e.Source, e.Err)
	case e.Field != "":
		return fmt.Sprintf("plasmasrc: field %q: %v", e.Field, e.Err)
	default:
		return fmt.Sprintf("plasmasrc: %v", e.Err)
	}
}

func (e *ConfigError) Unwrap() error { return e.Err }

// MissingDependencyError is returned by a model function that aggregates
// other sources' profiles when it is invoked without them.
type MissingDependencyError struct {
	ModelFunc string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("plasmasrc: calculated source profiles are a required argument for %q; "+
		"this can occur if the source is configured as explicit", e.ModelFunc)
}

// Is reports whether target is ErrMissingDependency.
func (e *MissingDependencyError) Is(target error) bool {
	return target == ErrMissingDependency
}
