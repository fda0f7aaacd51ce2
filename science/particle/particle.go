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

// Package particle provides electron particle sources: a generic Gaussian
// source, gas puffing at the plasma edge and pellet injection.
package particle

import (
	"fmt"

	"github.com/spatialmodel/plasmasrc"
)

// Families returns all of the particle source families.
func Families() []plasmasrc.Family {
	return []plasmasrc.Family{GenericFamily(), GasPuffFamily(), PelletFamily()}
}

// RuntimeParams are the time-varying parameters of a particle source. All
// of the sources in this package deposit STotal particles per second with
// a profile described by a location and a width.
type RuntimeParams struct {
	plasmasrc.BaseRuntimeParams
	Location plasmasrc.TimeVaryingScalar
	Width    plasmasrc.TimeVaryingScalar
	STotal   plasmasrc.TimeVaryingScalar
}

// MakeProvider implements plasmasrc.RuntimeParams.
func (p *RuntimeParams) MakeProvider(geo plasmasrc.Geometry) (plasmasrc.RuntimeParamsProvider, error) {
	base, err := p.BaseProvider(geo)
	if err != nil {
		return nil, err
	}
	return &Provider{
		BaseProvider: base,
		location:     p.Location.Interpolator(),
		width:        p.Width.Interpolator(),
		sTotal:       p.STotal.Interpolator(),
	}, nil
}

// Provider builds DynamicParams.
type Provider struct {
	plasmasrc.BaseProvider
	location, width, sTotal plasmasrc.ScalarInterpolator
}

// BuildDynamicParams implements plasmasrc.RuntimeParamsProvider.
func (p *Provider) BuildDynamicParams(t float64) plasmasrc.DynamicParams {
	return &DynamicParams{
		BaseDynamicParams: p.BaseDynamicParams(t),
		Location:          p.location.At(t),
		Width:             p.width.At(t),
		STotal:            p.sTotal.At(t),
	}
}

// DynamicParams are the parameters of a particle source at one time.
type DynamicParams struct {
	plasmasrc.BaseDynamicParams
	Location float64 // normalized radius
	Width    float64 // normalized radius
	STotal   float64 // particles per second
}

// GaussianModel deposits STotal particles per second with a Gaussian
// profile.
func GaussianModel(_ plasmasrc.SourceConfig, dyn plasmasrc.DynamicParams, geo plasmasrc.Geometry,
	name string, _ *plasmasrc.CoreProfiles, _ plasmasrc.ProfileView) ([][]float64, error) {
	p, ok := dyn.(*DynamicParams)
	if !ok {
		return nil, fmt.Errorf("particle: source %s has dynamic parameters of type %T", name, dyn)
	}
	s := plasmasrc.GaussianProfile(geo, p.Location, p.Width, p.STotal, plasmasrc.VolumeIntegration)
	return [][]float64{s}, nil
}

// ExponentialModel deposits STotal particles per second with a profile
// that decays exponentially inward from Location.
func ExponentialModel(_ plasmasrc.SourceConfig, dyn plasmasrc.DynamicParams, geo plasmasrc.Geometry,
	name string, _ *plasmasrc.CoreProfiles, _ plasmasrc.ProfileView) ([][]float64, error) {
	p, ok := dyn.(*DynamicParams)
	if !ok {
		return nil, fmt.Errorf("particle: source %s has dynamic parameters of type %T", name, dyn)
	}
	s := plasmasrc.ExponentialProfile(geo, p.Location, p.Width, p.STotal, plasmasrc.VolumeIntegration)
	return [][]float64{s}, nil
}

// checkWidth returns an error naming field if any of the values of w are
// not positive.
func checkWidth(w plasmasrc.TimeVaryingScalar, field string) error {
	for _, v := range w.Values {
		if !(v > 0) {
			return &plasmasrc.ConfigError{Field: field,
				Err: fmt.Errorf("%w: must be positive but is %g", plasmasrc.ErrInvalidValue, v)}
		}
	}
	return nil
}

func family(name, modelFunc string, newConfig func() plasmasrc.SourceConfig, model plasmasrc.ModelFunc) plasmasrc.Family {
	return plasmasrc.Family{
		Name:             name,
		Equations:        []plasmasrc.Equation{plasmasrc.Ne},
		DefaultModelFunc: modelFunc,
		Variants:         []plasmasrc.Variant{{Name: modelFunc, New: newConfig, Model: model}},
	}
}
