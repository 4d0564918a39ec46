// Package app is the terminal host: a bubbletea model that lists bindings and
// drives interactive rebinds and resets through a rebind.Manager.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/rebind/internal/binding"
	"github.com/llehouerou/rebind/internal/display"
	"github.com/llehouerou/rebind/internal/rebind"
)

// RebindStartedMsg reports that a listening phase began.
type RebindStartedMsg struct {
	Target rebind.Target
	Ref    binding.Ref
	Prompt string
}

// RebindStoppedMsg reports the end of a listening phase.
type RebindStoppedMsg struct {
	Target rebind.Target
	Ref    binding.Ref
	Stop   rebind.Stop
}

// DisplayUpdatedMsg carries a refreshed label.
type DisplayUpdatedMsg struct {
	Target  rebind.Target
	Display display.Display
}

// Inbox is the rebind.Observer of the terminal host. The manager notifies it
// synchronously from inside Update; the model drains it before returning.
type Inbox struct {
	msgs []tea.Msg
}

var _ rebind.Observer = (*Inbox)(nil)

// NewInbox creates an empty inbox.
func NewInbox() *Inbox {
	return &Inbox{}
}

func (in *Inbox) RebindStarted(target rebind.Target, ref binding.Ref, prompt string) {
	in.msgs = append(in.msgs, RebindStartedMsg{Target: target, Ref: ref, Prompt: prompt})
}

func (in *Inbox) RebindStopped(target rebind.Target, ref binding.Ref, stop rebind.Stop) {
	in.msgs = append(in.msgs, RebindStoppedMsg{Target: target, Ref: ref, Stop: stop})
}

func (in *Inbox) DisplayUpdated(target rebind.Target, d display.Display) {
	in.msgs = append(in.msgs, DisplayUpdatedMsg{Target: target, Display: d})
}

// Drain returns and clears the pending notifications.
func (in *Inbox) Drain() []tea.Msg {
	msgs := in.msgs
	in.msgs = nil
	return msgs
}
