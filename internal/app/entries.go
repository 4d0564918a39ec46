package app

import (
	"cmp"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/rebind/internal/binding"
	"github.com/llehouerou/rebind/internal/rebind"
	"github.com/llehouerou/rebind/internal/ui/render"
	"github.com/llehouerou/rebind/internal/ui/styles"
)

// Entry is one row of the binding table. Composite parts are folded into
// their header.
type Entry struct {
	Target   rebind.Target
	Group    string
	Label    string
	Path     string
	Override bool
}

func (e Entry) matches(query string) bool {
	if query == "" {
		return true
	}
	haystack := strings.ToLower(strings.Join([]string{
		e.Target.Action.String(), e.Target.BindingID, e.Group, e.Label, e.Path,
	}, " "))
	return strings.Contains(haystack, strings.ToLower(query))
}

// entries lists the bindings of maps that pass the filter.
func (m *Model) entries() []Entry {
	maps := m.Registry.Maps()
	if m.ShowAll {
		maps = m.Store.Maps()
	}
	query := strings.TrimSpace(m.Filter.Value())

	var out []Entry
	for _, mp := range maps {
		for i, b := range mp.Bindings {
			if b.Part {
				continue
			}
			ref := binding.Ref{Map: mp, Index: i}
			d := m.Formatter.Binding(ref)
			e := Entry{
				Target:   rebind.Target{Action: ref.Action(), BindingID: b.ID},
				Group:    b.Group,
				Label:    render.Sanitize(d.Label),
				Path:     d.Path,
				Override: hasOverride(ref),
			}
			if e.matches(query) {
				out = append(out, e)
			}
		}
	}
	return out
}

func hasOverride(ref binding.Ref) bool {
	if !ref.Binding().Composite {
		return ref.Binding().HasOverride()
	}
	for _, part := range ref.Parts() {
		if part.Binding().HasOverride() {
			return true
		}
	}
	return false
}

// refreshRows rebuilds the table from the store, keeping the cursor in range.
// Plain cells are cut to their column width.
func (m *Model) refreshRows() {
	m.Entries = m.entries()
	cols := columns(cmp.Or(m.Width, defaultWidth))
	rows := make([]table.Row, len(m.Entries))
	for i, e := range m.Entries {
		label := e.Label
		switch {
		case m.Listening && e.Target == m.Active:
			label = "… listening"
		case e.Override:
			label += " *"
		}
		path := e.Path
		if path == "" {
			path = "-"
		}
		rows[i] = table.Row{
			render.Truncate(e.Target.Action.String(), cols[0].Width),
			render.Truncate(e.Group, cols[1].Width),
			label,
			render.Truncate(path, cols[3].Width),
		}
	}
	m.Table.SetRows(rows)
	if c := m.Table.Cursor(); c >= len(rows) {
		m.Table.SetCursor(max(len(rows)-1, 0))
	}
}

// columns sizes the table columns for the given outer width.
func columns(width int) []table.Column {
	const groupWidth = 10
	// panel border plus one cell of padding on both sides of each column
	inner := max(width-2-4*2, 40)
	action := max(inner*3/10, 14)
	path := max(inner*3/10, 14)
	label := max(inner-action-path-groupWidth, 10)
	return []table.Column{
		{Title: "Action", Width: action},
		{Title: "Group", Width: groupWidth},
		{Title: "Binding", Width: label},
		{Title: "Path", Width: path},
	}
}

func tableStyles() table.Styles {
	t := styles.T()
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Foreground(t.FgMuted).
		Bold(true)
	s.Cell = s.Cell.Foreground(t.FgBase)
	s.Selected = t.S().Cursor.Foreground(t.Primary)
	return s
}
