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

	"gonum.org/v1/gonum/floats"
)

// Geometry describes the fixed radial grid that source profiles are
// computed on. Cells are indexed 0..NumCells()-1 from the magnetic axis
// outward; faces are indexed 0..NumCells(), with face i on the inner side
// of cell i. Implementations must not change after they are created.
type Geometry interface {
	// NumCells returns the number of grid cells.
	NumCells() int

	// RhoNorm returns the normalized toroidal flux coordinate at the
	// cell centers.
	RhoNorm() []float64

	// DRhoNorm returns the width of each cell in RhoNorm units.
	DRhoNorm() []float64

	// Vpr returns dV/dρ at the cell centers, where V is the volume
	// enclosed by a flux surface [m³].
	Vpr() []float64

	// Spr returns dA/dρ at the cell centers, where A is the poloidal
	// cross-section area enclosed by a flux surface [m²].
	Spr() []float64

	// VolumeFace returns the volume enclosed by each face [m³]. The last
	// element is the total plasma volume.
	VolumeFace() []float64
}

// Grid is a simple Geometry whose enclosed volume is derived from Vpr.
type Grid struct {
	rhoFace  []float64
	rho      []float64
	drho     []float64
	vpr, spr []float64
	vFace    []float64
}

// NewGrid creates a grid from the face coordinates rhoFace (strictly
// increasing, one more than the number of cells) and the cell-centered
// volume and area derivatives.
func NewGrid(rhoFace, vpr, spr []float64) (*Grid, error) {
	n := len(rhoFace) - 1
	if n < 1 {
		return nil, fmt.Errorf("plasmasrc: a grid needs at least 2 faces but %d were given", len(rhoFace))
	}
	if len(vpr) != n || len(spr) != n {
		return nil, fmt.Errorf("plasmasrc: grid has %d cells but len(vpr)=%d and len(spr)=%d",
			n, len(vpr), len(spr))
	}
	g := &Grid{
		rhoFace: append([]float64(nil), rhoFace...),
		rho:     make([]float64, n),
		drho:    make([]float64, n),
		vpr:     append([]float64(nil), vpr...),
		spr:     append([]float64(nil), spr...),
	}
	for i := 0; i < n; i++ {
		if !(rhoFace[i+1] > rhoFace[i]) {
			return nil, fmt.Errorf("plasmasrc: grid face coordinates must be strictly increasing")
		}
		g.drho[i] = rhoFace[i+1] - rhoFace[i]
		g.rho[i] = (rhoFace[i+1] + rhoFace[i]) / 2
	}
	g.vFace = CumulativeCellIntegration(g.vpr, g)
	return g, nil
}

// NewUniformGrid creates a grid with n equal cells spanning 0 ≤ ρ ≤ 1.
// If vpr or spr are nil they are set to one in every cell.
func NewUniformGrid(n int, vpr, spr []float64) (*Grid, error) {
	if n < 1 {
		return nil, fmt.Errorf("plasmasrc: a grid needs at least 1 cell but %d were requested", n)
	}
	face := make([]float64, n+1)
	floats.Span(face, 0, 1)
	if vpr == nil {
		vpr = ones(n)
	}
	if spr == nil {
		spr = ones(n)
	}
	return NewGrid(face, vpr, spr)
}

func (g *Grid) NumCells() int { return len(g.rho) }
func (g *Grid) RhoNorm() []float64 { return g.rho }
func (g *Grid) RhoFace() []float64 { return g.rhoFace }
func (g *Grid) DRhoNorm() []float64 { return g.drho }
func (g *Grid) Vpr() []float64 { return g.vpr }
func (g *Grid) Spr() []float64 { return g.spr }
func (g *Grid) VolumeFace() []float64 { return g.vFace }

// CellIntegration integrates x over the cells of geo: Σ x_i Δρ_i.
// It panics if x does not have one value per cell.
func CellIntegration(x []float64, geo Geometry) float64 {
	checkLen(x, geo)
	return floats.Dot(x, geo.DRhoNorm())
}

// VolumeIntegration integrates the density x over the plasma volume:
// Σ x_i V'_i Δρ_i.
func VolumeIntegration(x []float64, geo Geometry) float64 {
	checkLen(x, geo)
	tmp := make([]float64, len(x))
	floats.MulTo(tmp, x, geo.Vpr())
	return CellIntegration(tmp, geo)
}

// AreaIntegration integrates the density x over the poloidal
// cross-section: Σ x_i A'_i Δρ_i.
func AreaIntegration(x []float64, geo Geometry) float64 {
	checkLen(x, geo)
	tmp := make([]float64, len(x))
	floats.MulTo(tmp, x, geo.Spr())
	return CellIntegration(tmp, geo)
}

// CumulativeCellIntegration returns the face-aligned running integral of
// x: element 0 is zero and element i is the integral over cells 0..i-1.
func CumulativeCellIntegration(x []float64, geo Geometry) []float64 {
	checkLen(x, geo)
	o := make([]float64, len(x)+1)
	floats.MulTo(o[1:], x, geo.DRhoNorm())
	floats.CumSum(o[1:], o[1:])
	return o
}

func checkLen(x []float64, geo Geometry) {
	if len(x) != geo.NumCells() {
		panic(fmt.Sprintf("plasmasrc: profile has %d values but the grid has %d cells",
			len(x), geo.NumCells()))
	}
}

func ones(n int) []float64 {
	o := make([]float64, n)
	for i := range o {
		o[i] = 1
	}
	return o
}

// CoreProfiles holds the plasma state that model functions may use. It is
// owned by the caller and must not be modified by sources.
type CoreProfiles struct {
	TempEl  []float64 // electron temperature [keV]
	TempIon []float64 // ion temperature [keV]
	Ne      []float64 // electron density [m⁻³]
	NImp    []float64 // impurity density [m⁻³]
	Zeff    []float64 // effective charge
	Ip      float64   // total plasma current [A]
}
