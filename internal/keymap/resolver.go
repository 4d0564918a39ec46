package keymap

import "strings"

// Resolver maps key strings to actions.
type Resolver struct {
	bindings map[string]Action   // key -> action
	byAction map[Action][]string // action -> keys, in declaration order
}

// NewResolver creates a resolver from bindings. A key bound twice resolves to
// the last binding.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.bindings[key] = b.Action
			if !contains(r.byAction[b.Action], key) {
				r.byAction[b.Action] = append(r.byAction[b.Action], key)
			}
		}
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[key]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// Hint renders "key description" pairs for the given actions, using each
// action's first key.
func (r *Resolver) Hint(bindings []Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		keys := r.KeysFor(b.Action)
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, keys[0]+" "+strings.ToLower(b.Description))
	}
	return strings.Join(parts, " • ")
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
