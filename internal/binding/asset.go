package binding

import (
	"fmt"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// asset mirrors the TOML layout of a binding asset file:
//
//	[[maps]]
//	name = "Player"
//	[[maps.bindings]]
//	id = "jump-kb"
//	action = "Jump"
//	group = "Keyboard"
//	path = "<Keyboard>/space"
type asset struct {
	Maps []assetMap `koanf:"maps"`
}

type assetMap struct {
	Name     string         `koanf:"name"`
	Bindings []assetBinding `koanf:"bindings"`
}

type assetBinding struct {
	ID        string `koanf:"id"`
	Action    string `koanf:"action"`
	Group     string `koanf:"group"`
	Path      string `koanf:"path"`
	Override  string `koanf:"override"`
	Name      string `koanf:"name"`
	Composite bool   `koanf:"composite"`
	Part      bool   `koanf:"part"`
}

// LoadFile reads action maps from a TOML asset and validates them.
func LoadFile(path string) (*Store, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("load binding asset %s: %w", path, err)
	}

	var a asset
	if err := k.Unmarshal("", &a); err != nil {
		return nil, fmt.Errorf("decode binding asset %s: %w", path, err)
	}

	maps := make([]*Map, 0, len(a.Maps))
	for _, am := range a.Maps {
		m := &Map{Name: am.Name, Bindings: make([]*Binding, 0, len(am.Bindings))}
		for _, ab := range am.Bindings {
			m.Bindings = append(m.Bindings, &Binding{
				ID:        ab.ID,
				Action:    ab.Action,
				Group:     ab.Group,
				Path:      ab.Path,
				Override:  ab.Override,
				Name:      ab.Name,
				Composite: ab.Composite,
				Part:      ab.Part,
			})
		}
		maps = append(maps, m)
	}

	s := NewStore(maps...)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
