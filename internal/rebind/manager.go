// Package rebind runs interactive rebind sessions and reset-to-default over a
// binding store, keeping bindings conflict-free through the conflict resolver.
//
// A Manager owns every session in flight. It is driven from a single goroutine:
// listener callbacks must be delivered on the goroutine that calls the
// Manager's methods.
package rebind

import (
	"io"
	"log/slog"
	"time"

	"github.com/llehouerou/rebind/internal/binding"
	"github.com/llehouerou/rebind/internal/conflict"
	"github.com/llehouerou/rebind/internal/display"
)

// Defaults for Options.
const (
	DefaultTimeout       = 5 * time.Second
	DefaultCancelControl = "<Keyboard>/escape"
)

// DefaultExcluded keeps menu buttons and whole sticks from being captured.
var DefaultExcluded = []string{
	"<Gamepad>/start",
	"<Gamepad>/select",
	"<Gamepad>/leftStick",
	"<Gamepad>/rightStick",
}

// Options configures listening phases.
type Options struct {
	Timeout       time.Duration
	CancelControl string
	Excluded      []string
}

// Observer receives session and display notifications. target is the UI
// element's target; ref is the binding concerned (a part during a chain).
type Observer interface {
	RebindStarted(target Target, ref binding.Ref, prompt string)
	RebindStopped(target Target, ref binding.Ref, stop Stop)
	DisplayUpdated(target Target, d display.Display)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) RebindStarted(Target, binding.Ref, string) {}
func (NopObserver) RebindStopped(Target, binding.Ref, Stop)   {}
func (NopObserver) DisplayUpdated(Target, display.Display)    {}

// Config holds a Manager's collaborators.
type Config struct {
	Store     *binding.Store
	Registry  *binding.Registry // watched maps
	Resolver  *conflict.Resolver
	Formatter *display.Formatter
	Listener  Listener
	Observer  Observer // optional
	Options   Options
	Logger    *slog.Logger // optional
}

// Manager is the rebind context: it owns the session registry and exposes the
// rebind, reset and display operations. Create with NewManager, end with Close.
type Manager struct {
	store     *binding.Store
	registry  *binding.Registry
	resolver  *conflict.Resolver
	formatter *display.Formatter
	listener  Listener
	observer  Observer
	opts      Options
	log       *slog.Logger

	sessions map[Target]*session
}

// NewManager creates a manager. Missing options take their defaults.
func NewManager(cfg Config) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	observer := cfg.Observer
	if observer == nil {
		observer = NopObserver{}
	}
	opts := cfg.Options
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.CancelControl == "" {
		opts.CancelControl = DefaultCancelControl
	}
	if opts.Excluded == nil {
		opts.Excluded = DefaultExcluded
	}
	resolver := cfg.Resolver
	if resolver == nil {
		resolver = conflict.New(conflict.Config{}, logger)
	}
	formatter := cfg.Formatter
	if formatter == nil {
		formatter = display.New(display.Config{})
	}
	registry := cfg.Registry
	if registry == nil {
		registry = binding.NewRegistry(cfg.Store.Maps()...)
	}
	return &Manager{
		store:     cfg.Store,
		registry:  registry,
		resolver:  resolver,
		formatter: formatter,
		listener:  cfg.Listener,
		observer:  observer,
		opts:      opts,
		log:       logger.With("component", "rebind"),
		sessions:  make(map[Target]*session),
	}
}

// StartInteractiveRebind listens for a control for the binding and applies it.
// A session already running for the same target is canceled first.
func (m *Manager) StartInteractiveRebind(action binding.Action, bindingID string) error {
	target := Target{Action: action, BindingID: bindingID}
	ref, err := m.store.Lookup(action, bindingID)
	if err != nil {
		m.log.Error("cannot start rebind", "target", target.String(), "error", err)
		return err
	}

	if prev, ok := m.sessions[target]; ok {
		m.log.Debug("superseding rebind", "target", target.String())
		prev.dispatch(Dispose{Reason: ReasonSuperseded})
		delete(m.sessions, target)
	}

	s := newSession(m, target, ref)
	m.sessions[target] = s
	s.dispatch(Start{})
	return nil
}

// CancelRebind cancels the session running for the target, if any.
func (m *Manager) CancelRebind(action binding.Action, bindingID string) {
	if s, ok := m.sessions[Target{Action: action, BindingID: bindingID}]; ok {
		s.dispatch(CancelRequested{})
	}
}

// Active reports whether a session is running for the target.
func (m *Manager) Active(action binding.Action, bindingID string) bool {
	_, ok := m.sessions[Target{Action: action, BindingID: bindingID}]
	return ok
}

// ResetToDefault removes the override of a binding, or of every part when the
// binding is a composite header, running the resolver after each removal.
func (m *Manager) ResetToDefault(action binding.Action, bindingID string) ([]conflict.Result, error) {
	target := Target{Action: action, BindingID: bindingID}
	ref, err := m.store.Lookup(action, bindingID)
	if err != nil {
		m.log.Error("cannot reset binding", "target", target.String(), "error", err)
		return nil, err
	}

	refs := []binding.Ref{ref}
	if ref.Binding().Composite {
		refs = ref.Parts()
	}

	results := make([]conflict.Result, 0, len(refs))
	for _, r := range refs {
		r.ClearOverride()
		m.log.Info("binding reset", "binding", r.String(), "path", r.Binding().Path)
		results = append(results, m.resolver.Resolve(m.registry, r))
	}
	m.refresh(target, ref)
	return results, nil
}

// FormatDisplay returns the label, group and path shown for a binding.
func (m *Manager) FormatDisplay(action binding.Action, bindingID string) (display.Display, error) {
	ref, err := m.store.Lookup(action, bindingID)
	if err != nil {
		return display.Display{}, err
	}
	return m.formatter.Binding(ref), nil
}

// Close cancels every running session and releases its listener.
func (m *Manager) Close() {
	for target, s := range m.sessions {
		s.dispatch(Dispose{Reason: ReasonClosed})
		delete(m.sessions, target)
	}
}

func (m *Manager) refresh(target Target, ref binding.Ref) {
	m.observer.DisplayUpdated(target, m.formatter.Binding(ref))
}

func (m *Manager) forget(s *session) {
	if cur, ok := m.sessions[s.target]; ok && cur == s {
		delete(m.sessions, s.target)
	}
}

func (m *Manager) listenOptions(prompt string) ListenOptions {
	return ListenOptions{
		Timeout:       m.opts.Timeout,
		CancelControl: m.opts.CancelControl,
		Excluded:      m.opts.Excluded,
		Prompt:        prompt,
	}
}
