package rebind

import (
	"github.com/llehouerou/rebind/internal/binding"
	"github.com/llehouerou/rebind/internal/conflict"
)

// Target identifies what a rebind UI element is bound to.
type Target struct {
	Action    binding.Action
	BindingID string
}

func (t Target) String() string {
	return t.Action.String() + "#" + t.BindingID
}

// session drives a Machine against the manager's collaborators.
type session struct {
	target  Target
	ref     binding.Ref
	machine *Machine
	mgr     *Manager

	sub         Subscription
	generation  int // bumped per listening phase; stale callbacks are dropped
	pending     []queued
	dispatching bool
}

// queued is an event waiting for dispatch. Listener events carry the
// generation they were raised in; zero means always deliver.
type queued struct {
	ev  Event
	gen int
}

func newSession(mgr *Manager, target Target, ref binding.Ref) *session {
	return &session{
		target:  target,
		ref:     ref,
		machine: NewMachine(ref),
		mgr:     mgr,
	}
}

func (s *session) done() bool {
	return s.machine.State().Terminal()
}

// dispatch feeds ev to the machine and runs the effects. Events raised while
// effects run (listener callbacks, resolver results) are queued behind it.
func (s *session) dispatch(ev Event) {
	s.enqueue(queued{ev: ev})
}

// listenerEvent queues ev unless its listening phase has already ended.
func (s *session) listenerEvent(gen int, ev Event) {
	if gen != s.generation {
		return
	}
	s.enqueue(queued{ev: ev, gen: gen})
}

func (s *session) enqueue(q queued) {
	s.pending = append(s.pending, q)
	if s.dispatching {
		return
	}
	s.dispatching = true
	defer func() { s.dispatching = false }()

	for len(s.pending) > 0 {
		next := s.pending[0]
		s.pending = s.pending[1:]
		if next.gen != 0 && next.gen != s.generation {
			continue
		}
		state, effects := s.machine.Step(next.ev)
		s.mgr.log.Debug("rebind step",
			"target", s.target.String(), "event", eventName(next.ev), "state", state.String())
		for _, eff := range effects {
			if follow := s.run(eff); follow != nil {
				s.pending = append(s.pending, queued{ev: follow})
			}
		}
	}

	if s.done() {
		s.release()
		s.mgr.forget(s)
	}
}

func (s *session) run(eff Effect) Event {
	m := s.mgr
	switch eff := eff.(type) {
	case Listen:
		s.release()
		s.generation++
		gen := s.generation
		sub, err := m.listener.Listen(m.listenOptions(eff.Prompt), Handler{
			OnComplete: func(path string) {
				s.listenerEvent(gen, Actuated{Path: path})
			},
			OnCancel: func(reason CancelReason) {
				if reason == CancelByTimeout {
					s.listenerEvent(gen, TimedOut{})
					return
				}
				s.listenerEvent(gen, CancelRequested{})
			},
		})
		if err != nil {
			m.log.Error("listen failed", "target", s.target.String(), "error", err)
			return Dispose{Reason: ReasonListenFailed}
		}
		s.sub = sub

	case Release:
		s.release()

	case ApplyOverride:
		eff.Ref.SetOverride(eff.Path)
		m.log.Info("override applied", "binding", eff.Ref.String(), "path", eff.Path)

	case RunResolver:
		var res conflict.Result
		if eff.Part {
			res = m.resolver.ResolvePart(m.registry, eff.Ref)
		} else {
			res = m.resolver.Resolve(m.registry, eff.Ref)
		}
		return ResolverDone{Result: res}

	case RevertOverride:
		eff.Ref.SetOverride(eff.Override)
		m.log.Info("override discarded", "binding", eff.Ref.String())

	case NotifyStarted:
		m.observer.RebindStarted(s.target, eff.Ref, eff.Prompt)

	case NotifyStopped:
		m.observer.RebindStopped(s.target, eff.Ref, eff.Stop)

	case RefreshDisplay:
		m.refresh(s.target, s.ref)
	}
	return nil
}

func (s *session) release() {
	s.generation++
	if s.sub != nil {
		s.sub.Close()
		s.sub = nil
	}
}

func eventName(ev Event) string {
	switch ev.(type) {
	case Start:
		return "start"
	case Actuated:
		return "actuated"
	case CancelRequested:
		return "cancel"
	case TimedOut:
		return "timeout"
	case ResolverDone:
		return "resolved"
	case Dispose:
		return "dispose"
	default:
		return "unknown"
	}
}
