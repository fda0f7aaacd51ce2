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

	"github.com/sirupsen/logrus"
)

// sourceModel is a source bound to a grid.
type sourceModel struct {
	*Source
	provider RuntimeParamsProvider
	explicit bool
}

// SourceModels evaluates a collection of sources on a grid. It is
// immutable once created and may be used by several goroutines at once.
type SourceModels struct {
	geo    Geometry
	models []*sourceModel

	// Log receives information about source evaluations. It defaults to
	// logrus.StandardLogger().
	Log logrus.FieldLogger
}

// NewSourceModels binds the runtime parameters of srcs to geo. Any errors
// are configuration errors.
func NewSourceModels(srcs *Sources, geo Geometry) (*SourceModels, error) {
	m := &SourceModels{
		geo: geo,
		Log: logrus.StandardLogger(),
	}
	var errs []error
	for _, src := range srcs.All() {
		p, err := src.Config.RuntimeParams().MakeProvider(geo)
		if err != nil {
			errs = append(errs, setSource(err, src.Name))
			continue
		}
		explicit := src.Config.Base().IsExplicit
		if explicit && src.Variant.NeedsProfiles && src.Config.Base().Mode == ModelBased {
			m.Log.WithField("source", src.Name).Warnf("model_func %s needs the profiles of other "+
				"sources, which are not available to explicit sources", src.Variant.Name)
		}
		m.models = append(m.models, &sourceModel{Source: src, provider: p, explicit: explicit})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return m, nil
}

// Geometry returns the grid that the sources are bound to.
func (m *SourceModels) Geometry() Geometry { return m.geo }

// Names returns the names of the explicit or implicit sources in the order
// they are evaluated.
func (m *SourceModels) Names(explicit bool) []string {
	var o []string
	for _, sink := range []bool{false, true} {
		for _, sm := range m.models {
			if sm.explicit == explicit && sm.Family.Sink == sink {
				o = append(o, sm.Name)
			}
		}
	}
	return o
}

// BuildSourceProfiles calculates the contributions of either the explicit
// or the implicit sources at time t. All non-sink sources are evaluated
// first, in name order. Sink sources are evaluated afterwards and, when
// evaluating implicit sources, can read the profiles calculated so far.
// Explicit sources never have access to other sources' profiles.
func (m *SourceModels) BuildSourceProfiles(t float64, core *CoreProfiles, explicit bool) (*SourceProfiles, error) {
	log := m.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	profiles := NewSourceProfiles(m.geo.NumCells())
	for _, sink := range []bool{false, true} {
		for _, sm := range m.models {
			if sm.explicit != explicit || sm.Family.Sink != sink {
				continue
			}
			var calculated ProfileView
			if sink && !explicit && sm.Variant.NeedsProfiles {
				calculated = profiles
			}
			out, err := sm.evaluate(t, m.geo, core, calculated)
			if err != nil {
				return nil, fmt.Errorf("plasmasrc: evaluating source %s at t=%g: %w", sm.Name, t, err)
			}
			for i, eq := range sm.Family.Equations {
				profiles.Set(eq, sm.Name, sink, out[i])
			}
			log.WithFields(logrus.Fields{
				"source": sm.Name,
				"time":   t,
				"model":  sm.Variant.Name,
			}).Debug("evaluated source")
		}
	}
	return profiles, nil
}

// evaluate returns one profile with one value per cell for each of the
// source's equations.
func (sm *sourceModel) evaluate(t float64, geo Geometry, core *CoreProfiles,
	calculated ProfileView) ([][]float64, error) {
	n := geo.NumCells()
	dyn := sm.provider.BuildDynamicParams(t)
	base := dyn.Base()
	switch base.Mode {
	case Zero:
		out := make([][]float64, len(sm.Family.Equations))
		for i := range out {
			out[i] = make([]float64, n)
		}
		return out, nil
	case Prescribed:
		return checkOutput(base.PrescribedValues, len(sm.Family.Equations), n)
	case ModelBased:
		out, err := sm.Variant.Model(sm.Config, dyn, geo, sm.Name, core, calculated)
		if err != nil {
			return nil, err
		}
		return checkOutput(out, len(sm.Family.Equations), n)
	}
	return nil, fmt.Errorf("%w: mode %v", ErrInvalidValue, base.Mode)
}

// checkOutput makes sure out has one profile per equation and broadcasts
// single-value profiles to every cell.
func checkOutput(out [][]float64, neq, n int) ([][]float64, error) {
	if len(out) != neq {
		return nil, fmt.Errorf("model returned %d profiles for %d equations", len(out), neq)
	}
	o := make([][]float64, len(out))
	for i, p := range out {
		switch len(p) {
		case n:
			o[i] = p
		case 1:
			o[i] = make([]float64, n)
			for j := range o[i] {
				o[i][j] = p[0]
			}
		default:
			return nil, fmt.Errorf("model returned a profile with %d values for a grid with %d cells", len(p), n)
		}
	}
	return o, nil
}
