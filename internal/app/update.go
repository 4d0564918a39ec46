// internal/app/update.go
package app

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/rebind/internal/binding"
	"github.com/llehouerou/rebind/internal/conflict"
	"github.com/llehouerou/rebind/internal/errmsg"
	"github.com/llehouerou/rebind/internal/keymap"
	"github.com/llehouerou/rebind/internal/listen"
	"github.com/llehouerou/rebind/internal/rebind"
)

var errListenerUnavailable = errors.New("listener unavailable")

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.resize()
		m.refreshRows()
		return m, nil

	case listen.TimeoutMsg:
		m.Listener.HandleTimeout(msg)
		return m.drain(), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.Filtering {
		var cmd tea.Cmd
		m.Filter, cmd = m.Filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While listening every key with a control path belongs to the session.
	if m.Listener.Listening() {
		if m.Listener.HandleKey(msg) {
			return m.drain(), nil
		}
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		return m, nil
	}

	if m.Filtering {
		return m.handleFilterKey(msg)
	}

	switch m.Keys.Resolve(msg.String()) {
	case keymap.ActionQuit:
		return m.quit()

	case keymap.ActionFilter:
		m.Filtering = true
		m.resize()
		return m, m.Filter.Focus()

	case keymap.ActionCancel:
		m.Status = ""
		if m.Filter.Value() != "" {
			m.Filter.Reset()
			m.resize()
			m.refreshRows()
		}
		return m, nil

	case keymap.ActionRebind:
		return m.startRebind()

	case keymap.ActionReset:
		return m.reset()

	case keymap.ActionResetAll:
		return m.resetAll()

	case keymap.ActionToggleWatch:
		m.ShowAll = !m.ShowAll
		m.refreshRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.Filtering = false
		m.Filter.Blur()
		m.Filter.Reset()
	case tea.KeyEnter:
		m.Filtering = false
		m.Filter.Blur()
	default:
		var cmd tea.Cmd
		m.Filter, cmd = m.Filter.Update(msg)
		m.refreshRows()
		return m, cmd
	}
	m.resize()
	m.refreshRows()
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Manager.Close()
	m.Inbox.Drain()
	return m, tea.Quit
}

func (m Model) startRebind() (tea.Model, tea.Cmd) {
	e, ok := m.Selected()
	if !ok {
		return m, nil
	}
	err := m.Manager.StartInteractiveRebind(e.Target.Action, e.Target.BindingID)
	m = m.drain()
	if err != nil {
		m.setStatus(StatusError, errmsg.FormatWith(errmsg.OpRebindStart, e.Target.String(), err))
	}
	return m, nil
}

func (m Model) reset() (tea.Model, tea.Cmd) {
	e, ok := m.Selected()
	if !ok {
		return m, nil
	}
	results, err := m.Manager.ResetToDefault(e.Target.Action, e.Target.BindingID)
	m = m.drain()
	if err != nil {
		m.setStatus(StatusError, errmsg.FormatWith(errmsg.OpBindingReset, e.Target.String(), err))
		return m, nil
	}
	if e.Override {
		m.Changed++
	}
	d, err := m.Manager.FormatDisplay(e.Target.Action, e.Target.BindingID)
	if err != nil {
		m.setStatus(StatusError, errmsg.FormatWith(errmsg.OpDisplay, e.Target.String(), err))
		return m, nil
	}
	m.reportResults(e.Target.Action.String()+" reset to "+d.Label, results)
	return m, nil
}

func (m Model) resetAll() (tea.Model, tea.Cmd) {
	var results []conflict.Result
	entries := m.Entries
	for _, e := range entries {
		res, err := m.Manager.ResetToDefault(e.Target.Action, e.Target.BindingID)
		if err != nil {
			m = m.drain()
			m.setStatus(StatusError, errmsg.FormatWith(errmsg.OpBindingReset, e.Target.String(), err))
			return m, nil
		}
		if e.Override {
			m.Changed++
		}
		results = append(results, res...)
	}
	m = m.drain()
	m.reportResults(fmt.Sprintf("Reset %s", plural(len(entries), "binding")), results)
	return m, nil
}

// reportResults sets the status after a reset, mentioning bindings the
// resolver touched.
func (m *Model) reportResults(done string, results []conflict.Result) {
	kind, msg := StatusSuccess, done
	for _, res := range results {
		switch res.Outcome {
		case conflict.Resolved:
			msg += "; " + m.moved(res)
		case conflict.Unresolved:
			kind = StatusWarning
			msg += "; " + m.clash(res)
		}
	}
	m.setStatus(kind, msg)
}

// drain applies the notifications the manager raised during this update.
func (m Model) drain() Model {
	for _, msg := range m.Inbox.Drain() {
		switch msg := msg.(type) {
		case RebindStartedMsg:
			m.Listening = true
			m.Active = msg.Target
			m.Prompt = msg.Prompt
			m.setStatus(StatusInfo, describe(msg.Ref)+": "+msg.Prompt)
		case RebindStoppedMsg:
			m.Listening = false
			m.Prompt = ""
			m.applyStop(msg)
		case DisplayUpdatedMsg:
			// labels are re-read from the store below
		}
	}
	m.refreshRows()
	return m
}

func (m *Model) applyStop(msg RebindStoppedMsg) {
	stop := msg.Stop
	name := describe(msg.Ref)

	if stop.Outcome == rebind.OutcomeCanceled {
		if stop.Reason == rebind.ReasonListenFailed {
			m.setStatus(StatusError, errmsg.FormatWith(errmsg.OpRebindListen, name, errListenerUnavailable))
			return
		}
		m.setStatus(StatusWarning, fmt.Sprintf("%s: rebind canceled (%s)", name, stop.Reason))
		return
	}

	res := stop.Result
	if stop.Failed() {
		dup := res.Duplicate
		m.setStatus(StatusWarning, fmt.Sprintf("%s: %s is already used by %s, input discarded",
			name, m.Formatter.Label(dup.Binding().EffectivePath()), describe(dup)))
		return
	}

	m.Changed++
	bound := fmt.Sprintf("%s bound to %s", name, m.Formatter.Binding(msg.Ref).Label)
	switch res.Outcome {
	case conflict.Resolved:
		m.setStatus(StatusSuccess, bound+"; "+m.moved(res))
	case conflict.Unresolved:
		m.setStatus(StatusWarning, bound+"; "+m.clash(res))
	default:
		m.setStatus(StatusSuccess, bound)
	}
}

func (m *Model) moved(res conflict.Result) string {
	return fmt.Sprintf("%s moved to %s", describe(res.Duplicate), m.Formatter.Label(res.Path))
}

func (m *Model) clash(res conflict.Result) string {
	return fmt.Sprintf("%s still on %s", describe(res.Duplicate), m.Formatter.Label(res.Path))
}

func (m *Model) setStatus(kind StatusKind, msg string) {
	m.StatusKind = kind
	m.Status = msg
}

func (m *Model) resize() {
	if m.Width == 0 {
		return
	}
	m.Table.SetColumns(columns(m.Width))
	m.Table.SetWidth(m.Width - 2)
	m.Table.SetHeight(max(m.Height-chromeHeight(m.showFilter()), 3))
	m.Filter.Width = max(m.Width-6, 10)
}

// describe names a binding for the status line: "Player/Move (left)".
func describe(ref binding.Ref) string {
	if !ref.Valid() {
		return "?"
	}
	b := ref.Binding()
	name := ref.Action().String()
	if b.Part && b.Name != "" {
		name += " (" + b.Name + ")"
	}
	return name
}
