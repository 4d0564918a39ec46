package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "table"
}

// Bindings contains every key binding of the terminal host.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionFilter, []string{"/"}, "Filter bindings", "global"},
	{ActionCancel, []string{"esc"}, "Clear filter/status", "global"},

	// Table
	{ActionMoveUp, []string{"k", "up"}, "Move up", "table"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "table"},
	{ActionJumpStart, []string{"g", "home"}, "First binding", "table"},
	{ActionJumpEnd, []string{"G", "end"}, "Last binding", "table"},
	{ActionRebind, []string{"enter"}, "Rebind", "table"},
	{ActionReset, []string{"r", "backspace"}, "Reset to default", "table"},
	{ActionResetAll, []string{"R"}, "Reset every binding", "table"},
	{ActionToggleWatch, []string{"w"}, "Show all maps/watched maps", "table"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
