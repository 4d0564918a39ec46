package binding

import "iter"

// Registry is the flattened, read-only view over the watched maps.
// Iteration order is map order, then binding order.
type Registry struct {
	maps []*Map
}

// NewRegistry creates a registry over maps.
func NewRegistry(maps ...*Map) *Registry {
	return &Registry{maps: maps}
}

// Maps returns the watched maps.
func (r *Registry) Maps() []*Map {
	return r.maps
}

// All yields a ref to every watched binding.
func (r *Registry) All() iter.Seq[Ref] {
	return func(yield func(Ref) bool) {
		for _, m := range r.maps {
			for i := range m.Bindings {
				if !yield(Ref{Map: m, Index: i}) {
					return
				}
			}
		}
	}
}

// FindFirst returns the first binding matching pred.
func (r *Registry) FindFirst(pred func(Ref) bool) (Ref, bool) {
	for ref := range r.All() {
		if pred(ref) {
			return ref, true
		}
	}
	return Ref{}, false
}

// Duplicates returns every (group, effective path) claimed by more than one
// action, keyed by group then path.
func (r *Registry) Duplicates() map[string]map[string][]Ref {
	type key struct{ group, path string }
	claims := make(map[key][]Ref)
	var order []key
	for ref := range r.All() {
		b := ref.Binding()
		if b.Composite || b.EffectivePath() == "" {
			continue
		}
		k := key{b.Group, b.EffectivePath()}
		if _, ok := claims[k]; !ok {
			order = append(order, k)
		}
		claims[k] = append(claims[k], ref)
	}

	dups := make(map[string]map[string][]Ref)
	for _, k := range order {
		refs := claims[k]
		if !spansActions(refs) {
			continue
		}
		if dups[k.group] == nil {
			dups[k.group] = make(map[string][]Ref)
		}
		dups[k.group][k.path] = refs
	}
	return dups
}

func spansActions(refs []Ref) bool {
	for _, ref := range refs[1:] {
		if ref.Binding().Action != refs[0].Binding().Action {
			return true
		}
	}
	return false
}
