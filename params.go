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
	"strings"
)

// Mode specifies how a source computes its profiles.
type Mode int

const (
	// ModelBased sources call their model function.
	ModelBased Mode = iota
	// Zero sources are inactive and contribute zeros.
	Zero
	// Prescribed sources return their prescribed_values.
	Prescribed
)

func (m Mode) String() string {
	switch m {
	case ModelBased:
		return "MODEL_BASED"
	case Zero:
		return "ZERO"
	case Prescribed:
		return "PRESCRIBED"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode name into a Mode. "inactive" is accepted as an
// alias for ZERO.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MODEL_BASED":
		return ModelBased, nil
	case "ZERO", "INACTIVE":
		return Zero, nil
	case "PRESCRIBED":
		return Prescribed, nil
	}
	return 0, fmt.Errorf("%w: mode %q; valid options are ZERO, MODEL_BASED and PRESCRIBED", ErrInvalidValue, s)
}

// SourceConfig is the validated, grid-independent configuration of one
// source. There is one implementation per model variant.
type SourceConfig interface {
	// Base returns the fields that every source configuration has.
	Base() BaseConfig

	// Validate checks the variant-specific fields.
	Validate() error

	// RuntimeParams returns the time-dependent parameters of the source.
	RuntimeParams() RuntimeParams
}

// RuntimeParams holds the time-varying specification of a source. It does
// not depend on the grid.
type RuntimeParams interface {
	// MakeProvider binds the parameters to their interpolators and, where
	// a field is spatially resolved, to geo. Errors returned here are
	// configuration errors.
	MakeProvider(geo Geometry) (RuntimeParamsProvider, error)
}

// RuntimeParamsProvider builds the concrete parameters of a source at a
// given time.
type RuntimeParamsProvider interface {
	// BuildDynamicParams must be a pure function of t: calling it twice
	// with the same t returns identical values.
	BuildDynamicParams(t float64) DynamicParams
}

// DynamicParams are the parameters of a source at one instant.
type DynamicParams interface {
	Base() BaseDynamicParams
}

// BaseConfig holds the fields that every source configuration has. It is
// embedded in each variant with the `mapstructure:",squash"` tag.
type BaseConfig struct {
	SourceName string `mapstructure:"source_name"`
	ModelFunc  string `mapstructure:"model_func"`
	Mode       Mode   `mapstructure:"mode"`

	// IsExplicit sources are evaluated separately from implicit ones and
	// never see the profiles calculated by other sources.
	IsExplicit bool `mapstructure:"is_explicit"`

	// PrescribedValues has one profile per affected equation and is used
	// when Mode is Prescribed.
	PrescribedValues []TimeVaryingArray `mapstructure:"prescribed_values"`
}

// Base returns c.
func (c BaseConfig) Base() BaseConfig { return c }

// BaseRuntimeParams returns the runtime parameters shared by all sources.
func (c BaseConfig) BaseRuntimeParams() BaseRuntimeParams {
	return BaseRuntimeParams{
		Mode:             c.Mode,
		IsExplicit:       c.IsExplicit,
		PrescribedValues: c.PrescribedValues,
	}
}

// BaseRuntimeParams holds the runtime parameters shared by all sources.
type BaseRuntimeParams struct {
	Mode             Mode
	IsExplicit       bool
	PrescribedValues []TimeVaryingArray
}

// BaseProvider binds the shared runtime parameters to geo.
func (p BaseRuntimeParams) BaseProvider(geo Geometry) (BaseProvider, error) {
	o := BaseProvider{
		Mode:       p.Mode,
		IsExplicit: p.IsExplicit,
		prescribed: make([]ArrayInterpolator, len(p.PrescribedValues)),
	}
	for i, v := range p.PrescribedValues {
		a, err := v.Bind(geo)
		if err != nil {
			return BaseProvider{}, &ConfigError{Field: fmt.Sprintf("prescribed_values[%d]", i), Err: err}
		}
		o.prescribed[i] = a
	}
	return o, nil
}

// BaseProvider is embedded in the providers of all sources.
type BaseProvider struct {
	Mode       Mode
	IsExplicit bool
	prescribed []ArrayInterpolator
}

// BaseDynamicParams evaluates the shared parameters at time t.
func (p BaseProvider) BaseDynamicParams(t float64) BaseDynamicParams {
	o := BaseDynamicParams{Mode: p.Mode}
	if p.Mode == Prescribed {
		o.PrescribedValues = make([][]float64, len(p.prescribed))
		for i, a := range p.prescribed {
			o.PrescribedValues[i] = a.At(t)
		}
	}
	return o
}

// BaseDynamicParams holds the parameters shared by all sources at one
// instant.
type BaseDynamicParams struct {
	Mode             Mode
	PrescribedValues [][]float64
}

// Base returns d.
func (d BaseDynamicParams) Base() BaseDynamicParams { return d }
