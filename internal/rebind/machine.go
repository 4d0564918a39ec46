package rebind

import (
	"fmt"

	"github.com/llehouerou/rebind/internal/binding"
	"github.com/llehouerou/rebind/internal/conflict"
)

// State is a rebind session state.
type State int

const (
	Idle State = iota
	Listening
	// Resolving is entered when a control has been applied and left again in
	// the same dispatch, once the resolver result is known.
	Resolving
	Completed
	Canceled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Listening:
		return "listening"
	case Resolving:
		return "resolving"
	case Completed:
		return "completed"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further events are accepted.
func (s State) Terminal() bool {
	return s == Completed || s == Canceled
}

// Event drives the machine.
type Event interface{ event() }

type (
	// Start begins listening for the first binding.
	Start struct{}
	// Actuated carries the control chosen by the user.
	Actuated struct{ Path string }
	// CancelRequested is the cancel control or an explicit cancel.
	CancelRequested struct{}
	// TimedOut fires when no control was actuated in time.
	TimedOut struct{}
	// ResolverDone carries the result of the RunResolver effect.
	ResolverDone struct{ Result conflict.Result }
	// Dispose ends the session from outside.
	Dispose struct{ Reason Reason }
)

func (Start) event()           {}
func (Actuated) event()        {}
func (CancelRequested) event() {}
func (TimedOut) event()        {}
func (ResolverDone) event()    {}
func (Dispose) event()         {}

// Effect is work the machine asks its driver to perform, in order.
type Effect interface{ effect() }

type (
	Listen struct {
		Ref    binding.Ref
		Prompt string
	}
	Release       struct{}
	ApplyOverride struct {
		Ref  binding.Ref
		Path string
	}
	// RunResolver must be answered with a ResolverDone event.
	RunResolver struct {
		Ref  binding.Ref
		Part bool // composite chain in progress: check earlier parts first
	}
	RevertOverride struct {
		Ref      binding.Ref
		Override string // value to restore; empty clears
	}
	NotifyStarted struct {
		Ref    binding.Ref
		Prompt string
	}
	NotifyStopped struct {
		Ref  binding.Ref
		Stop Stop
	}
	RefreshDisplay struct{}
)

func (Listen) effect()         {}
func (Release) effect()        {}
func (ApplyOverride) effect()  {}
func (RunResolver) effect()    {}
func (RevertOverride) effect() {}
func (NotifyStarted) effect()  {}
func (NotifyStopped) effect()  {}
func (RefreshDisplay) effect() {}

// Outcome is how a listening phase ended.
type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeCanceled
)

func (o Outcome) String() string {
	if o == OutcomeCanceled {
		return "canceled"
	}
	return "completed"
}

// Reason qualifies a stop.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonCancelControl
	ReasonTimeout
	ReasonSuperseded
	ReasonClosed
	ReasonListenFailed
)

func (r Reason) String() string {
	switch r {
	case ReasonCancelControl:
		return "cancel control"
	case ReasonTimeout:
		return "timeout"
	case ReasonSuperseded:
		return "superseded"
	case ReasonClosed:
		return "closed"
	case ReasonListenFailed:
		return "listen failed"
	default:
		return ""
	}
}

// Stop reports the end of one listening phase.
type Stop struct {
	Outcome Outcome
	Reason  Reason
	Result  conflict.Result // set for OutcomeCompleted
}

// Failed reports whether a completed part was discarded.
func (s Stop) Failed() bool {
	return s.Outcome == OutcomeCompleted && s.Result.Outcome == conflict.LocalCompositeDuplicate
}

// Machine is the rebind state machine for one target. It performs no I/O:
// every side effect is returned from Step for the caller to execute.
type Machine struct {
	state    State
	current  binding.Ref
	chain    bool
	previous string
}

// NewMachine creates a machine for target. A composite header is rebound part
// by part starting with its first part; a header without parts completes
// immediately on Start.
func NewMachine(target binding.Ref) *Machine {
	m := &Machine{current: target}
	if target.Binding().Composite {
		m.chain = true
		m.current = binding.Ref{}
		if first, ok := target.NextPart(); ok {
			m.current = first
		}
	}
	return m
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Current returns the binding being rebound.
func (m *Machine) Current() binding.Ref { return m.current }

// Step applies ev and returns the new state and the effects to run. Events
// that do not apply to the current state are ignored.
func (m *Machine) Step(ev Event) (State, []Effect) {
	var effects []Effect
	switch ev := ev.(type) {
	case Start:
		if m.state != Idle {
			break
		}
		if !m.current.Valid() {
			m.state = Completed
			break
		}
		effects = m.listen()

	case Actuated:
		if m.state != Listening {
			break
		}
		m.state = Resolving
		m.previous = m.current.Binding().Override
		effects = []Effect{
			Release{},
			ApplyOverride{Ref: m.current, Path: ev.Path},
			RunResolver{Ref: m.current, Part: m.chain},
		}

	case CancelRequested:
		effects = m.cancel(ReasonCancelControl)

	case TimedOut:
		effects = m.cancel(ReasonTimeout)

	case Dispose:
		if m.state == Idle {
			m.state = Canceled
			break
		}
		if m.state != Listening {
			break
		}
		m.state = Canceled
		effects = []Effect{
			Release{},
			NotifyStopped{Ref: m.current, Stop: Stop{Outcome: OutcomeCanceled, Reason: ev.Reason}},
			RefreshDisplay{},
		}

	case ResolverDone:
		if m.state != Resolving {
			break
		}
		effects = m.resolved(ev.Result)
	}
	return m.state, effects
}

func (m *Machine) listen() []Effect {
	m.state = Listening
	prompt := Prompt(m.current.Binding())
	return []Effect{
		NotifyStarted{Ref: m.current, Prompt: prompt},
		Listen{Ref: m.current, Prompt: prompt},
	}
}

func (m *Machine) cancel(reason Reason) []Effect {
	if m.state != Listening {
		return nil
	}
	m.state = Canceled
	return []Effect{
		Release{},
		NotifyStopped{Ref: m.current, Stop: Stop{Outcome: OutcomeCanceled, Reason: reason}},
		RefreshDisplay{},
	}
}

func (m *Machine) resolved(res conflict.Result) []Effect {
	stop := NotifyStopped{Ref: m.current, Stop: Stop{Outcome: OutcomeCompleted, Result: res}}
	if res.Outcome == conflict.LocalCompositeDuplicate {
		m.state = Completed
		return []Effect{
			RevertOverride{Ref: m.current, Override: m.previous},
			stop,
		}
	}

	effects := []Effect{stop, RefreshDisplay{}}
	if m.chain {
		if next, ok := m.current.NextPart(); ok {
			m.current = next
			return append(effects, m.listen()...)
		}
	}
	m.state = Completed
	return effects
}

// Prompt is the text shown while waiting for a control.
func Prompt(b *binding.Binding) string {
	if b.Part && b.Name != "" {
		return fmt.Sprintf("Binding '%s'. Waiting for input...", b.Name)
	}
	return "Waiting for input..."
}
