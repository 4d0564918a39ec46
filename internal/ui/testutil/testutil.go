// Package testutil provides helpers for testing bubbletea models.
package testutil

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes so rendered output can be compared.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// FindLine returns the first line of output containing substr, with styling
// removed, or "" when no line matches.
func FindLine(output, substr string) string {
	for line := range strings.SplitSeq(StripANSI(output), "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}

// Harness drives a tea.Model the way a program would, collecting the
// commands it returns.
type Harness struct {
	model tea.Model
	cmds  []tea.Cmd
}

// NewHarness wraps m, running its Init command collection.
func NewHarness(m tea.Model) *Harness {
	h := &Harness{model: m}
	if cmd := m.Init(); cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return h
}

// Model returns the current model for type assertion.
func (h *Harness) Model() tea.Model {
	return h.model
}

// View returns the model's rendered content.
func (h *Harness) View() string {
	return h.model.View()
}

// Send delivers msg to the model and returns the resulting command.
func (h *Harness) Send(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	if cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return cmd
}

// SendKey sends a rune key press.
func (h *Harness) SendKey(key string) tea.Cmd {
	return h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

// SendSpecialKey sends a special key (enter, escape, arrows, ...).
func (h *Harness) SendSpecialKey(keyType tea.KeyType) tea.Cmd {
	return h.Send(tea.KeyMsg{Type: keyType})
}

// Commands returns every command collected so far.
func (h *Harness) Commands() []tea.Cmd {
	return h.cmds
}

// ViewContains reports whether the unstyled view contains substr.
func (h *Harness) ViewContains(substr string) bool {
	return strings.Contains(StripANSI(h.View()), substr)
}

// ExecuteCmd runs a command and returns its message, or nil for a nil command.
func ExecuteCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
