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
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/spatialmodel/plasmasrc/internal/hash"
)

// Keys that every raw source specification may have.
const (
	keySourceName = "source_name"
	keyModelFunc  = "model_func"
)

// ModelFunc calculates the contribution of a source to each of the
// equations of its family, in the order of Family.Equations. Each returned
// profile has either one value per grid cell or a single value that applies
// to every cell.
//
// calculated holds the profiles of the sources that have already been
// evaluated. It is nil unless the variant has NeedsProfiles set and the
// source is evaluated implicitly. Model functions must not retain it.
type ModelFunc func(static SourceConfig, dyn DynamicParams, geo Geometry, name string,
	core *CoreProfiles, calculated ProfileView) ([][]float64, error)

// Variant is one way of calculating a source family's contribution,
// selected with the model_func key.
type Variant struct {
	// Name is the model_func tag of the variant.
	Name string

	// NeedsProfiles is true if the model aggregates the profiles of other
	// sources. Only sink families may have such variants.
	NeedsProfiles bool

	// New returns a pointer to a configuration holding the variant's
	// defaults. Raw specifications are decoded into it.
	New func() SourceConfig

	Model ModelFunc
}

// Family is a kind of source, identified by its source name.
type Family struct {
	Name string

	// Equations are the equations that the family contributes to.
	Equations []Equation

	// Sink families remove quantity and are evaluated after all other
	// sources. Their contributions are excluded from non-sink sums.
	Sink bool

	// DefaultModelFunc is used when a specification has no model_func.
	DefaultModelFunc string

	Variants []Variant
}

// Variant returns the variant with the given model_func tag.
func (f *Family) Variant(modelFunc string) (*Variant, bool) {
	for i := range f.Variants {
		if f.Variants[i].Name == modelFunc {
			return &f.Variants[i], true
		}
	}
	return nil, false
}

// ModelFuncs returns the tags of the family's variants.
func (f *Family) ModelFuncs() []string {
	o := make([]string, len(f.Variants))
	for i, v := range f.Variants {
		o[i] = v.Name
	}
	return o
}

// Registry maps source names to source families.
type Registry struct {
	families map[string]*Family

	// Log receives information about resolved sources. It defaults to
	// logrus.StandardLogger().
	Log logrus.FieldLogger
}

// NewRegistry returns a registry holding the given families.
func NewRegistry(families ...Family) (*Registry, error) {
	r := &Registry{
		families: make(map[string]*Family),
		Log:      logrus.StandardLogger(),
	}
	for _, f := range families {
		if err := r.Register(f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a family to the registry.
func (r *Registry) Register(f Family) error {
	if r.families == nil {
		r.families = make(map[string]*Family)
	}
	if f.Name == "" {
		return fmt.Errorf("plasmasrc: registering family with no name")
	}
	if _, ok := r.families[f.Name]; ok {
		return fmt.Errorf("plasmasrc: family %s is already registered", f.Name)
	}
	if len(f.Variants) == 0 {
		return fmt.Errorf("plasmasrc: family %s has no variants", f.Name)
	}
	if len(f.Equations) == 0 {
		return fmt.Errorf("plasmasrc: family %s does not contribute to any equations", f.Name)
	}
	seen := make(map[string]bool)
	for _, v := range f.Variants {
		if v.Name == "" || v.New == nil || v.Model == nil {
			return fmt.Errorf("plasmasrc: family %s has an incomplete variant %q", f.Name, v.Name)
		}
		if seen[v.Name] {
			return fmt.Errorf("plasmasrc: family %s has more than one variant %q", f.Name, v.Name)
		}
		seen[v.Name] = true
		if v.NeedsProfiles && !f.Sink {
			return fmt.Errorf("plasmasrc: variant %s of family %s needs calculated profiles "+
				"but the family is not a sink", v.Name, f.Name)
		}
	}
	if !seen[f.DefaultModelFunc] {
		return fmt.Errorf("plasmasrc: default model_func %q of family %s is not one of its variants %v",
			f.DefaultModelFunc, f.Name, f.ModelFuncs())
	}
	f.Variants = append([]Variant(nil), f.Variants...)
	f.Equations = append([]Equation(nil), f.Equations...)
	r.families[f.Name] = &f
	return nil
}

// Family returns the family registered under name.
func (r *Registry) Family(name string) (*Family, bool) {
	f, ok := r.families[name]
	return f, ok
}

// Names returns the sorted names of the registered families.
func (r *Registry) Names() []string {
	o := make([]string, 0, len(r.families))
	for n := range r.families {
		o = append(o, n)
	}
	sort.Strings(o)
	return o
}

// Source is a resolved source.
type Source struct {
	Name    string
	Family  *Family
	Variant *Variant
	Config  SourceConfig
}

// Sources is a validated collection of sources, ordered by name.
type Sources struct {
	list []*Source
}

// Len returns the number of sources.
func (s *Sources) Len() int { return len(s.list) }

// Source returns the source called name.
func (s *Sources) Source(name string) (*Source, bool) {
	i := sort.Search(len(s.list), func(i int) bool { return s.list[i].Name >= name })
	if i < len(s.list) && s.list[i].Name == name {
		return s.list[i], true
	}
	return nil, false
}

// All returns the sources in name order.
func (s *Sources) All() []*Source {
	return append([]*Source(nil), s.list...)
}

// Fingerprint returns a key that is the same for any two collections of
// sources with identical configurations.
func (s *Sources) Fingerprint() string {
	type entry struct {
		Name, ModelFunc string
		Config          SourceConfig
	}
	e := make([]entry, len(s.list))
	for i, src := range s.list {
		e[i] = entry{Name: src.Name, ModelFunc: src.Variant.Name, Config: src.Config}
	}
	return hash.Hash(e)
}

// Resolve converts raw source specifications, keyed by source name, into
// validated source configurations. The source name is the key of each
// entry and is injected into it as source_name. The model_func key selects
// the variant; when it is missing the family's default variant is used.
//
// All problems with all entries are reported together as *ConfigError
// values joined with errors.Join. If there are any, no sources are returned.
func (r *Registry) Resolve(raw map[string]map[string]interface{}) (*Sources, error) {
	log := r.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	names := make([]string, 0, len(raw))
	for n := range raw {
		names = append(names, n)
	}
	sort.Strings(names)

	var errs []error
	o := &Sources{list: make([]*Source, 0, len(names))}
	for _, name := range names {
		src, err := r.resolve(name, raw[name])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		log.WithFields(logrus.Fields{
			"source":     name,
			"model_func": src.Variant.Name,
			"mode":       src.Config.Base().Mode,
			"explicit":   src.Config.Base().IsExplicit,
		}).Debug("resolved source")
		o.list = append(o.list, src)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	log.WithFields(logrus.Fields{
		"sources":     o.Len(),
		"fingerprint": o.Fingerprint(),
	}).Info("resolved source configuration")
	return o, nil
}

func (r *Registry) resolve(name string, raw map[string]interface{}) (*Source, error) {
	f, ok := r.families[name]
	if !ok {
		return nil, &ConfigError{Source: name, Field: keySourceName,
			Err: fmt.Errorf("%w; valid options are %v", ErrUnknownSource, r.Names())}
	}

	entry := make(map[string]interface{}, len(raw)+2)
	for k, v := range raw {
		entry[k] = v
	}
	entry[keySourceName] = name

	// The variant must be known before its fields can be checked.
	tag := f.DefaultModelFunc
	if v, ok := entry[keyModelFunc]; ok {
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, &ConfigError{Source: name, Field: keyModelFunc,
				Err: fmt.Errorf("%w: %v", ErrInvalidValue, err)}
		}
		tag = s
	}
	entry[keyModelFunc] = tag
	variant, ok := f.Variant(tag)
	if !ok {
		return nil, &ConfigError{Source: name, Field: keyModelFunc,
			Err: fmt.Errorf("%w %q; valid options for %s are %v", ErrUnknownModelFunc, tag, name, f.ModelFuncs())}
	}

	cfg := variant.New()
	if errs := decodeConfig(entry, cfg); len(errs) > 0 {
		for _, err := range errs {
			err.Source = name
		}
		return nil, joinConfigErrors(errs)
	}
	if err := cfg.Validate(); err != nil {
		return nil, setSource(err, name)
	}
	base := cfg.Base()
	if base.Mode == Prescribed && len(base.PrescribedValues) != len(f.Equations) {
		return nil, &ConfigError{Source: name, Field: "prescribed_values",
			Err: fmt.Errorf("%w: %d prescribed profiles but %s contributes to %d equations",
				ErrShapeMismatch, len(base.PrescribedValues), name, len(f.Equations))}
	}
	return &Source{Name: name, Family: f, Variant: variant, Config: cfg}, nil
}

// setSource makes sure that err names the source it belongs to.
func setSource(err error, name string) error {
	var ce *ConfigError
	if errors.As(err, &ce) {
		if ce.Source == "" {
			ce.Source = name
		}
		return err
	}
	return &ConfigError{Source: name, Err: err}
}
