package binding

// Sample returns a small built-in asset: a "Player" map with keyboard and
// gamepad schemes, and an "Arrow" map driven from the numeric keypad.
func Sample() *Store {
	player := &Map{Name: "Player", Bindings: []*Binding{
		{ID: "jump-kb", Action: "Jump", Group: "Keyboard", Path: "<Keyboard>/space"},
		{ID: "jump-pad", Action: "Jump", Group: "Gamepad", Path: "<Gamepad>/buttonSouth"},
		{ID: "fire-kb", Action: "Fire", Group: "Keyboard", Path: "<Keyboard>/f"},
		{ID: "fire-pad", Action: "Fire", Group: "Gamepad", Path: "<Gamepad>/rightTrigger"},
		{ID: "interact-kb", Action: "Interact", Group: "Keyboard", Path: "<Keyboard>/e"},
		{ID: "interact-pad", Action: "Interact", Group: "Gamepad", Path: "<Gamepad>/buttonWest"},
		{ID: "move-kb", Action: "Move", Group: "Keyboard", Path: "2DVector", Composite: true},
		{ID: "move-kb-up", Action: "Move", Group: "Keyboard", Path: "<Keyboard>/w", Name: "up", Part: true},
		{ID: "move-kb-down", Action: "Move", Group: "Keyboard", Path: "<Keyboard>/s", Name: "down", Part: true},
		{ID: "move-kb-left", Action: "Move", Group: "Keyboard", Path: "<Keyboard>/a", Name: "left", Part: true},
		{ID: "move-kb-right", Action: "Move", Group: "Keyboard", Path: "<Keyboard>/d", Name: "right", Part: true},
		{ID: "move-pad", Action: "Move", Group: "Gamepad", Path: "<Gamepad>/leftStick"},
		{ID: "look-pad", Action: "Look", Group: "Gamepad", Path: "<Gamepad>/rightStick"},
	}}
	arrow := &Map{Name: "Arrow", Bindings: []*Binding{
		{ID: "aim-kb", Action: "Aim", Group: "Keyboard", Path: "2DVector", Composite: true},
		{ID: "aim-kb-up", Action: "Aim", Group: "Keyboard", Path: "<Keyboard>/numpad8", Name: "up", Part: true},
		{ID: "aim-kb-down", Action: "Aim", Group: "Keyboard", Path: "<Keyboard>/numpad2", Name: "down", Part: true},
		{ID: "aim-kb-left", Action: "Aim", Group: "Keyboard", Path: "<Keyboard>/numpad4", Name: "left", Part: true},
		{ID: "aim-kb-right", Action: "Aim", Group: "Keyboard", Path: "<Keyboard>/numpad6", Name: "right", Part: true},
		{ID: "shoot-kb", Action: "Shoot", Group: "Keyboard", Path: "<Keyboard>/numpad0"},
	}}
	return NewStore(player, arrow)
}
