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

package plasmautil

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/plasmasrc"
)

// Load resolves the sources in config and binds them to the configured
// grid. The returned core profiles are nil if config does not specify any.
func Load(config *Config, log logrus.FieldLogger) (*plasmasrc.SourceModels, *plasmasrc.CoreProfiles, error) {
	rates, err := config.Rates()
	if err != nil {
		return nil, nil, err
	}
	r, err := DefaultRegistry(rates)
	if err != nil {
		return nil, nil, err
	}
	r.Log = log
	srcs, err := r.Resolve(config.Sources)
	if err != nil {
		return nil, nil, err
	}
	grid, err := config.Grid()
	if err != nil {
		return nil, nil, err
	}
	core, err := config.Core(grid.NumCells())
	if err != nil {
		return nil, nil, err
	}
	m, err := plasmasrc.NewSourceModels(srcs, grid)
	if err != nil {
		return nil, nil, err
	}
	m.Log = log
	return m, core, nil
}

// EvaluateTimes concurrently calculates the source profiles at each of
// times. The results are in the same order as times. If any evaluation
// fails, the error for the earliest failing time is returned.
func EvaluateTimes(m *plasmasrc.SourceModels, times []float64, core *plasmasrc.CoreProfiles,
	explicit bool) ([]*plasmasrc.SourceProfiles, error) {

	nprocs := runtime.GOMAXPROCS(0) // number of processors
	var wg sync.WaitGroup

	o := make([]*plasmasrc.SourceProfiles, len(times))
	errs := make([]error, len(times))
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			for ii := pp; ii < len(times); ii += nprocs {
				o[ii], errs[ii] = m.BuildSourceProfiles(times[ii], core, explicit)
			}
			wg.Done()
		}(pp)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("plasmautil: time %g: %w", times[i], err)
		}
	}
	return o, nil
}
