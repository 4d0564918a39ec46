package rebind

import (
	"strings"
	"time"
)

// CancelReason tells why a listener stopped without a control.
type CancelReason int

const (
	CancelByControl CancelReason = iota
	CancelByTimeout
)

// ListenOptions configures one listening phase.
type ListenOptions struct {
	Timeout       time.Duration
	CancelControl string
	Excluded      []string
	Prompt        string
}

// Handler receives the outcome of a listening phase. Exactly one callback
// fires per phase unless the subscription is closed first.
type Handler struct {
	OnComplete func(path string)
	OnCancel   func(reason CancelReason)
}

// Subscription is a live listening phase. Close releases its input hook and
// timer and may be called more than once.
type Subscription interface {
	Close()
}

// Listener waits for a single control actuation.
type Listener interface {
	Listen(opts ListenOptions, h Handler) (Subscription, error)
}

// Actuation classifies a control seen while listening.
type Actuation int

const (
	Ignore Actuation = iota
	Accept
	Cancel
)

// Classify decides what a listener does with an actuated control. Excluded
// controls also exclude their children ("<Gamepad>/leftStick" covers
// "<Gamepad>/leftStick/up"). Matching is case-insensitive.
func (o ListenOptions) Classify(path string) Actuation {
	if path == "" {
		return Ignore
	}
	if o.CancelControl != "" && strings.EqualFold(path, o.CancelControl) {
		return Cancel
	}
	lower := strings.ToLower(path)
	for _, ex := range o.Excluded {
		ex = strings.ToLower(ex)
		if lower == ex || strings.HasPrefix(lower, ex+"/") {
			return Ignore
		}
	}
	return Accept
}
