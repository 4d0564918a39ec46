// internal/app/app.go
package app

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/rebind/internal/binding"
	"github.com/llehouerou/rebind/internal/display"
	"github.com/llehouerou/rebind/internal/keymap"
	"github.com/llehouerou/rebind/internal/listen"
	"github.com/llehouerou/rebind/internal/rebind"
)

// StatusKind colors the status line.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// Deps are the collaborators of the model. Inbox must be the manager's
// observer.
type Deps struct {
	Store     *binding.Store
	Registry  *binding.Registry
	Manager   *rebind.Manager
	Formatter *display.Formatter
	Listener  *listen.Terminal
	Inbox     *Inbox
}

// Model is the root application model.
type Model struct {
	Store     *binding.Store
	Registry  *binding.Registry
	Manager   *rebind.Manager
	Formatter *display.Formatter
	Listener  *listen.Terminal
	Inbox     *Inbox
	Keys      *keymap.Resolver

	Table     table.Model
	Filter    textinput.Model
	Filtering bool
	ShowAll   bool // list every map instead of the watched ones
	Entries   []Entry

	Active     rebind.Target
	Listening  bool
	Prompt     string
	Status     string
	StatusKind StatusKind
	Changed    int // bindings changed this run

	Width  int
	Height int
}

// New creates the model.
func New(deps Deps) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter actions, controls, groups"
	ti.CharLimit = 64

	tbl := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	tbl.SetStyles(tableStyles())

	m := Model{
		Store:     deps.Store,
		Registry:  deps.Registry,
		Manager:   deps.Manager,
		Formatter: deps.Formatter,
		Listener:  deps.Listener,
		Inbox:     deps.Inbox,
		Keys:      keymap.NewResolver(keymap.Bindings),
		Table:     tbl,
		Filter:    ti,
	}
	m.refreshRows()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Selected returns the entry under the cursor.
func (m Model) Selected() (Entry, bool) {
	i := m.Table.Cursor()
	if i < 0 || i >= len(m.Entries) {
		return Entry{}, false
	}
	return m.Entries[i], true
}
