package binding

import (
	"errors"
	"fmt"
)

// ErrTargetNotResolvable is returned when an action or binding id cannot be located.
var ErrTargetNotResolvable = errors.New("binding target not resolvable")

// ErrInvalidAsset is returned by Validate for maps that break the composite layout.
var ErrInvalidAsset = errors.New("invalid binding asset")

// Ref points at one binding inside a map. The zero Ref is invalid.
type Ref struct {
	Map   *Map
	Index int
}

// Valid reports whether r points at an existing binding.
func (r Ref) Valid() bool {
	return r.Map != nil && r.Index >= 0 && r.Index < len(r.Map.Bindings)
}

// Binding returns the referenced binding. r must be valid.
func (r Ref) Binding() *Binding {
	return r.Map.Bindings[r.Index]
}

// Action returns the qualified action owning the binding.
func (r Ref) Action() Action {
	return Action{Map: r.Map.Name, Name: r.Binding().Action}
}

// SetOverride applies a runtime path to the binding.
func (r Ref) SetOverride(path string) {
	r.Binding().Override = path
}

// ClearOverride reverts the binding to its default path.
func (r Ref) ClearOverride() {
	r.Binding().Override = ""
}

func (r Ref) String() string {
	if !r.Valid() {
		return "<invalid>"
	}
	b := r.Binding()
	return fmt.Sprintf("%s[%d](%s)", r.Action(), r.Index, b.ID)
}

// NextPart returns the composite part directly after r, if any.
func (r Ref) NextPart() (Ref, bool) {
	next := Ref{Map: r.Map, Index: r.Index + 1}
	if !next.Valid() {
		return Ref{}, false
	}
	nb := next.Binding()
	if !nb.Part || nb.Action != r.Binding().Action {
		return Ref{}, false
	}
	return next, true
}

// Parts returns the contiguous parts owned by a composite header.
func (r Ref) Parts() []Ref {
	var parts []Ref
	for p, ok := r.NextPart(); ok; p, ok = p.NextPart() {
		parts = append(parts, p)
	}
	return parts
}

// PrecedingParts returns the parts of the same composite located before r,
// nearest first. Empty unless r is itself a part.
func (r Ref) PrecedingParts() []Ref {
	b := r.Binding()
	if !b.Part {
		return nil
	}
	var parts []Ref
	for i := r.Index - 1; i >= 0; i-- {
		prev := r.Map.Bindings[i]
		if prev.Action != b.Action || !prev.Part {
			break
		}
		parts = append(parts, Ref{Map: r.Map, Index: i})
	}
	return parts
}

// Store owns every loaded action map.
type Store struct {
	maps   []*Map
	byName map[string]*Map
}

// NewStore creates a store over maps, in the given order.
func NewStore(maps ...*Map) *Store {
	s := &Store{byName: make(map[string]*Map, len(maps))}
	for _, m := range maps {
		s.maps = append(s.maps, m)
		s.byName[m.Name] = m
	}
	return s
}

// Maps returns all maps in load order.
func (s *Store) Maps() []*Map {
	return s.maps
}

// Map returns the map with the given name.
func (s *Store) Map(name string) (*Map, bool) {
	m, ok := s.byName[name]
	return m, ok
}

// Lookup resolves an action and binding id. An action without a map name
// matches the first map that declares it.
func (s *Store) Lookup(action Action, id string) (Ref, error) {
	for _, m := range s.maps {
		if action.Map != "" && m.Name != action.Map {
			continue
		}
		for i, b := range m.Bindings {
			if b.Action == action.Name && b.ID == id {
				return Ref{Map: m, Index: i}, nil
			}
		}
	}
	return Ref{}, fmt.Errorf("%w: binding %q on %q", ErrTargetNotResolvable, id, action)
}

// Bindings returns refs to every binding of an action, in map order.
func (s *Store) Bindings(action Action) []Ref {
	var refs []Ref
	for _, m := range s.maps {
		if action.Map != "" && m.Name != action.Map {
			continue
		}
		for i, b := range m.Bindings {
			if b.Action == action.Name {
				refs = append(refs, Ref{Map: m, Index: i})
			}
		}
	}
	return refs
}

// Watch builds the registry view over the named maps. No names watches every map.
func (s *Store) Watch(names ...string) (*Registry, error) {
	if len(names) == 0 {
		return NewRegistry(s.maps...), nil
	}
	maps := make([]*Map, 0, len(names))
	for _, name := range names {
		m, ok := s.byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: watched map %q", ErrTargetNotResolvable, name)
		}
		maps = append(maps, m)
	}
	return NewRegistry(maps...), nil
}

// Validate checks id uniqueness and that composite parts directly follow
// their header (or a sibling part) of the same action.
func (s *Store) Validate() error {
	var errs []error
	for _, m := range s.maps {
		seen := make(map[string]bool, len(m.Bindings))
		for i, b := range m.Bindings {
			switch {
			case b.ID == "":
				errs = append(errs, fmt.Errorf("%w: %s[%d] has no id", ErrInvalidAsset, m.Name, i))
			case seen[b.ID]:
				errs = append(errs, fmt.Errorf("%w: %s has duplicate id %q", ErrInvalidAsset, m.Name, b.ID))
			}
			seen[b.ID] = true

			if b.Composite && b.Part {
				errs = append(errs, fmt.Errorf("%w: %s[%d] is both composite and part", ErrInvalidAsset, m.Name, i))
				continue
			}
			if !b.Part {
				continue
			}
			if i == 0 {
				errs = append(errs, fmt.Errorf("%w: %s[0] is a part without a composite", ErrInvalidAsset, m.Name))
				continue
			}
			prev := m.Bindings[i-1]
			if prev.Action != b.Action || (!prev.Composite && !prev.Part) {
				errs = append(errs, fmt.Errorf("%w: %s[%d] part of %q is not contiguous with its composite",
					ErrInvalidAsset, m.Name, i, b.Action))
			}
		}
	}
	return errors.Join(errs...)
}
