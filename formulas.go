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
	"math"

	"gonum.org/v1/gonum/floats"
)

// Integrator integrates a cell-centered density over a grid.
// VolumeIntegration and AreaIntegration are Integrators.
type Integrator func(x []float64, geo Geometry) float64

// GaussianProfile returns a profile shaped like a Gaussian centered at
// center with standard deviation width (both in normalized radius) and
// scaled so that its integral equals total.
func GaussianProfile(geo Geometry, center, width, total float64, integrate Integrator) []float64 {
	rho := geo.RhoNorm()
	o := make([]float64, len(rho))
	for i, r := range rho {
		d := r - center
		o[i] = math.Exp(-d * d / (2 * width * width))
	}
	return normalize(o, total, geo, integrate)
}

// ExponentialProfile returns a profile that decays exponentially with
// distance inward from center, with decay length width, scaled so that its
// integral equals total.
func ExponentialProfile(geo Geometry, center, width, total float64, integrate Integrator) []float64 {
	rho := geo.RhoNorm()
	o := make([]float64, len(rho))
	for i, r := range rho {
		o[i] = math.Exp(-(center - r) / width)
	}
	return normalize(o, total, geo, integrate)
}

// normalize scales shape in place. A shape with a zero integral is
// returned as zeros.
func normalize(shape []float64, total float64, geo Geometry, integrate Integrator) []float64 {
	sum := integrate(shape, geo)
	if sum == 0 {
		floats.Scale(0, shape)
		return shape
	}
	floats.Scale(total/sum, shape)
	return shape
}
