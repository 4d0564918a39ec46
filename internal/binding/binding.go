// Package binding holds action maps and the overrides applied to them at runtime.
package binding

import "strings"

// Binding maps one logical action to one physical control path.
type Binding struct {
	ID        string
	Action    string // name of the owning action
	Group     string // control scheme, e.g. "Keyboard" or "Gamepad"
	Path      string // design-time path, never changed after load
	Override  string // runtime path; empty means "use Path"
	Name      string // part name for composite parts ("up", "down", ...)
	Composite bool   // header owning the parts that follow it
	Part      bool   // one part of the composite before it
}

// EffectivePath returns the override if one is set, else the default path.
func (b *Binding) EffectivePath() string {
	if b.Override != "" {
		return b.Override
	}
	return b.Path
}

// HasOverride reports whether a runtime override is applied.
func (b *Binding) HasOverride() bool {
	return b.Override != ""
}

// Map is a named, ordered sequence of bindings.
type Map struct {
	Name     string
	Bindings []*Binding
}

// Action identifies an action by its map and name.
type Action struct {
	Map  string
	Name string
}

// String returns the qualified "map/name" form.
func (a Action) String() string {
	if a.Map == "" {
		return a.Name
	}
	return a.Map + "/" + a.Name
}

// ParseAction parses "map/name". A bare name yields an Action with no map.
func ParseAction(s string) Action {
	s = strings.TrimSpace(s)
	if mapName, name, ok := strings.Cut(s, "/"); ok {
		return Action{Map: mapName, Name: name}
	}
	return Action{Name: s}
}
