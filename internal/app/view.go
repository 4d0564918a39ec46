// internal/app/view.go
package app

import (
	"strings"

	"github.com/dustin/go-humanize/english"

	"github.com/llehouerou/rebind/internal/keymap"
	"github.com/llehouerou/rebind/internal/ui/render"
	"github.com/llehouerou/rebind/internal/ui/styles"
)

const defaultWidth = 80

// chromeHeight is the number of lines around the table.
func chromeHeight(filter bool) int {
	h := 5 // header, panel border, status, help
	if filter {
		h++
	}
	return h
}

// View implements tea.Model.
func (m Model) View() string {
	width := m.Width
	if width <= 0 {
		width = defaultWidth
	}
	t := styles.T()
	s := t.S()

	lines := []string{m.header(width)}
	if m.showFilter() {
		lines = append(lines, render.Fit(m.Filter.View(), width))
	}

	panel := s.Panel
	if !m.Filtering && !m.Listening {
		panel = s.Focused
	}
	lines = append(lines, panel.Width(width-2).Render(m.Table.View()))

	lines = append(lines, render.Fit(m.statusLine(), width))
	lines = append(lines, render.Fit(s.Subtle.Render(m.help()), width))
	return strings.Join(lines, "\n")
}

func (m Model) showFilter() bool {
	return m.Filtering || m.Filter.Value() != ""
}

func (m Model) header(width int) string {
	s := styles.T().S()
	left := styles.T().Title("rebind") + "  " + s.Muted.Render(strings.Join([]string{
		plural(len(m.Entries), "binding"),
		plural(m.conflicts(), "conflict"),
		plural(m.Changed, "change"),
	}, " • "))

	scope := "watched maps"
	if m.ShowAll {
		scope = "all maps"
	}
	return render.Row(left, s.Subtle.Render(scope), width)
}

func (m Model) statusLine() string {
	s := styles.T().S()
	if m.Listening {
		return s.Listening.Render(m.Status)
	}
	switch m.StatusKind {
	case StatusSuccess:
		return s.Success.Render(m.Status)
	case StatusWarning:
		return s.Warning.Render(m.Status)
	case StatusError:
		return s.Error.Render(m.Status)
	default:
		return s.Base.Render(m.Status)
	}
}

func (m Model) help() string {
	if m.Listening {
		return "press a key to bind it, or the cancel control to keep the current one"
	}
	if m.Filtering {
		return "enter apply filter • esc clear filter"
	}
	var shown []keymap.Binding
	for _, b := range keymap.Bindings {
		switch b.Action {
		case keymap.ActionMoveUp, keymap.ActionMoveDown, keymap.ActionJumpStart, keymap.ActionJumpEnd:
			continue
		}
		shown = append(shown, b)
	}
	return m.Keys.Hint(shown)
}

// conflicts counts paths shared by different actions in the watched maps.
func (m Model) conflicts() int {
	n := 0
	for _, paths := range m.Registry.Duplicates() {
		n += len(paths)
	}
	return n
}

func plural(n int, singular string) string {
	return english.Plural(n, singular, "")
}
