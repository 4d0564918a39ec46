// Package listen captures controls from the terminal for interactive rebinds.
//
// Terminal implements rebind.Listener on top of bubbletea: key messages are
// fed in by the host model, and timeouts come back through the program's
// message loop so every callback runs on the Update goroutine.
package listen

import (
	"errors"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/rebind/internal/rebind"
)

var (
	// ErrDetached is returned by Listen before Attach was called.
	ErrDetached = errors.New("listener not attached to a program")
	// ErrBusy is returned by Listen while another subscription is open.
	ErrBusy = errors.New("already listening")
)

// TimeoutMsg is sent to the program when a listening phase times out.
type TimeoutMsg struct {
	ID int
}

// Terminal listens for keyboard controls. Only one subscription can be open
// at a time.
type Terminal struct {
	send   func(tea.Msg)
	active *subscription
	nextID int
	log    *slog.Logger
}

// New creates a terminal listener.
func New(logger *slog.Logger) *Terminal {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Terminal{log: logger.With("component", "listen")}
}

// Attach sets the function used to deliver timeouts, usually
// (*tea.Program).Send.
func (t *Terminal) Attach(send func(tea.Msg)) {
	t.send = send
}

// Listen implements rebind.Listener.
func (t *Terminal) Listen(opts rebind.ListenOptions, h rebind.Handler) (rebind.Subscription, error) {
	if t.send == nil {
		return nil, ErrDetached
	}
	if t.active != nil {
		return nil, ErrBusy
	}

	t.nextID++
	sub := &subscription{t: t, id: t.nextID, opts: opts, handler: h}
	if opts.Timeout > 0 {
		id, send := sub.id, t.send
		sub.timer = time.AfterFunc(opts.Timeout, func() {
			send(TimeoutMsg{ID: id})
		})
	}
	t.active = sub
	t.log.Debug("listening", "id", sub.id, "timeout", opts.Timeout, "prompt", opts.Prompt)
	return sub, nil
}

// Listening reports whether a subscription is open.
func (t *Terminal) Listening() bool {
	return t.active != nil
}

// HandleKey offers a key to the open subscription. It reports whether the key
// was consumed; keys without a control path are left to the caller.
func (t *Terminal) HandleKey(msg tea.KeyMsg) bool {
	sub := t.active
	if sub == nil {
		return false
	}
	path := KeyPath(msg)
	if path == "" {
		return false
	}

	switch sub.opts.Classify(path) {
	case rebind.Cancel:
		t.log.Debug("cancel control", "id", sub.id, "path", path)
		sub.finish()
		if sub.handler.OnCancel != nil {
			sub.handler.OnCancel(rebind.CancelByControl)
		}
	case rebind.Accept:
		t.log.Debug("control actuated", "id", sub.id, "path", path)
		sub.finish()
		if sub.handler.OnComplete != nil {
			sub.handler.OnComplete(path)
		}
	case rebind.Ignore:
		t.log.Debug("control ignored", "id", sub.id, "path", path)
	}
	return true
}

// HandleTimeout delivers a timeout to the subscription it was raised for.
// Timeouts of closed subscriptions are dropped.
func (t *Terminal) HandleTimeout(msg TimeoutMsg) {
	sub := t.active
	if sub == nil || sub.id != msg.ID {
		return
	}
	t.log.Debug("listen timed out", "id", sub.id)
	sub.finish()
	if sub.handler.OnCancel != nil {
		sub.handler.OnCancel(rebind.CancelByTimeout)
	}
}

type subscription struct {
	t       *Terminal
	id      int
	opts    rebind.ListenOptions
	handler rebind.Handler
	timer   *time.Timer
}

// finish stops the timer and detaches the subscription. Safe to call twice.
func (s *subscription) finish() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.t.active == s {
		s.t.active = nil
	}
}

// Close implements rebind.Subscription.
func (s *subscription) Close() {
	s.finish()
}
