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

package impurity

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"

	"github.com/spatialmodel/plasmasrc"
)

// CoolingRate gives the radiative cooling rate L_z [W m³] of the plasma
// impurities as a function of electron temperature [keV].
type CoolingRate interface {
	Lz(teKeV float64) float64
}

// CoolingRateFunc is a function that fulfils the CoolingRate interface.
type CoolingRateFunc func(teKeV float64) float64

// Lz calls f.
func (f CoolingRateFunc) Lz(teKeV float64) float64 { return f(teKeV) }

// TabulatedCoolingRate interpolates a table of cooling rates linearly in
// log(T_e)-log(L_z) space. Outside of the table the end values are used.
type TabulatedCoolingRate struct {
	lo, hi      float64
	first, last float64
	logLz       interp.PiecewiseLinear
}

// NewTabulatedCoolingRate creates a cooling rate from electron
// temperatures te [keV] and the corresponding rates lz [W m³]. te must be
// strictly increasing and all values must be positive.
func NewTabulatedCoolingRate(te, lz []float64) (*TabulatedCoolingRate, error) {
	if len(te) < 2 || len(te) != len(lz) {
		return nil, fmt.Errorf("impurity: cooling rate table needs at least two points and equal "+
			"numbers of temperatures and rates; got %d and %d", len(te), len(lz))
	}
	x := make([]float64, len(te))
	y := make([]float64, len(lz))
	for i := range te {
		if !(te[i] > 0) || !(lz[i] > 0) {
			return nil, fmt.Errorf("impurity: cooling rate table values must be positive")
		}
		if i > 0 && !(te[i] > te[i-1]) {
			return nil, fmt.Errorf("impurity: cooling rate table temperatures must be strictly increasing")
		}
		x[i], y[i] = math.Log(te[i]), math.Log(lz[i])
	}
	c := &TabulatedCoolingRate{
		lo: te[0], hi: te[len(te)-1],
		first: lz[0], last: lz[len(lz)-1],
	}
	if err := c.logLz.Fit(x, y); err != nil {
		return nil, fmt.Errorf("impurity: %v", err)
	}
	return c, nil
}

// Lz implements CoolingRate.
func (c *TabulatedCoolingRate) Lz(teKeV float64) float64 {
	switch {
	case teKeV <= c.lo:
		return c.first
	case teKeV >= c.hi:
		return c.last
	}
	return math.Exp(c.logLz.Predict(math.Log(teKeV)))
}

// MavrinFitConfig configures a sink that radiates according to
// impurity cooling rates.
type MavrinFitConfig struct {
	plasmasrc.BaseConfig `mapstructure:",squash"`

	// RadiationMultiplier scales the radiated power [dimensionless].
	RadiationMultiplier plasmasrc.TimeVaryingScalar `mapstructure:"radiation_multiplier"`

	rates CoolingRate
}

// NewMavrinFitConfig returns a configuration holding the default values.
func NewMavrinFitConfig(rates CoolingRate) *MavrinFitConfig {
	return &MavrinFitConfig{
		BaseConfig: plasmasrc.BaseConfig{
			SourceName: SourceName,
			ModelFunc:  MavrinFit,
			Mode:       plasmasrc.ModelBased,
		},
		RadiationMultiplier: plasmasrc.ConstantScalar(1),
		rates:               rates,
	}
}

// Validate implements plasmasrc.SourceConfig.
func (c *MavrinFitConfig) Validate() error {
	if c.rates == nil && c.Mode == plasmasrc.ModelBased {
		return &plasmasrc.ConfigError{Field: "model_func",
			Err: fmt.Errorf("%w: %s needs impurity cooling rates, but none have been provided",
				plasmasrc.ErrInvalidValue, MavrinFit)}
	}
	return nil
}

// RuntimeParams implements plasmasrc.SourceConfig.
func (c *MavrinFitConfig) RuntimeParams() plasmasrc.RuntimeParams {
	return &MavrinFitRuntimeParams{
		BaseRuntimeParams:   c.BaseRuntimeParams(),
		RadiationMultiplier: c.RadiationMultiplier,
	}
}

// MavrinFitRuntimeParams are the time-varying parameters of the Mavrin
// fit sink.
type MavrinFitRuntimeParams struct {
	plasmasrc.BaseRuntimeParams
	RadiationMultiplier plasmasrc.TimeVaryingScalar
}

// MakeProvider implements plasmasrc.RuntimeParams.
func (p *MavrinFitRuntimeParams) MakeProvider(geo plasmasrc.Geometry) (plasmasrc.RuntimeParamsProvider, error) {
	base, err := p.BaseProvider(geo)
	if err != nil {
		return nil, err
	}
	return &MavrinFitProvider{BaseProvider: base, multiplier: p.RadiationMultiplier.Interpolator()}, nil
}

// MavrinFitProvider builds MavrinFitDynamicParams.
type MavrinFitProvider struct {
	plasmasrc.BaseProvider
	multiplier plasmasrc.ScalarInterpolator
}

// BuildDynamicParams implements plasmasrc.RuntimeParamsProvider.
func (p *MavrinFitProvider) BuildDynamicParams(t float64) plasmasrc.DynamicParams {
	return &MavrinFitDynamicParams{
		BaseDynamicParams:   p.BaseDynamicParams(t),
		RadiationMultiplier: p.multiplier.At(t),
	}
}

// MavrinFitDynamicParams are the parameters of the Mavrin fit sink at one
// time.
type MavrinFitDynamicParams struct {
	plasmasrc.BaseDynamicParams
	RadiationMultiplier float64
}

// MavrinFitModel calculates the radiated power density
//
//	Q = -multiplier · L_z(T_e) · n_e · n_imp
//
// in each cell.
func MavrinFitModel(static plasmasrc.SourceConfig, dyn plasmasrc.DynamicParams, geo plasmasrc.Geometry,
	name string, core *plasmasrc.CoreProfiles, _ plasmasrc.ProfileView) ([][]float64, error) {
	c, ok := static.(*MavrinFitConfig)
	if !ok || c.rates == nil {
		return nil, fmt.Errorf("impurity: source %s has no cooling rates", name)
	}
	p, ok := dyn.(*MavrinFitDynamicParams)
	if !ok {
		return nil, dynamicParamsError(name, p, dyn)
	}
	n := geo.NumCells()
	if core == nil || len(core.TempEl) != n || len(core.Ne) != n || len(core.NImp) != n {
		return nil, fmt.Errorf("impurity: source %s needs electron temperature, electron density "+
			"and impurity density profiles with %d cells", name, n)
	}
	o := make([]float64, n)
	for i := range o {
		o[i] = -p.RadiationMultiplier * c.rates.Lz(core.TempEl[i]) * core.Ne[i] * core.NImp[i]
	}
	return [][]float64{o}, nil
}
