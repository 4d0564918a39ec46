// Package keymap defines the terminal host's key bindings and action dispatch.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit   Action = "quit"
	ActionFilter Action = "filter"
	ActionCancel Action = "cancel"

	// Table navigation (handled by the table component)
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"

	// Binding actions
	ActionRebind      Action = "rebind"
	ActionReset       Action = "reset"
	ActionResetAll    Action = "reset_all"
	ActionToggleWatch Action = "toggle_watch"
)
