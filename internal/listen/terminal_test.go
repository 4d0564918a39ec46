package listen

import (
	"errors"
	"slices"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/rebind/internal/binding"
	"github.com/llehouerou/rebind/internal/rebind"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyPath(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected string
	}{
		{"letter", runes("j"), "<Keyboard>/j"},
		{"shifted letter", runes("J"), "<Keyboard>/j"},
		{"digit", runes("8"), "<Keyboard>/8"},
		{"symbol", runes("/"), "<Keyboard>/slash"},
		{"unknown symbol", runes("é"), ""},
		{"pasted text", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Paste: true}, ""},
		{"several runes", runes("ab"), ""},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, "<Keyboard>/space"},
		{"escape", tea.KeyMsg{Type: tea.KeyEscape}, "<Keyboard>/escape"},
		{"arrow", tea.KeyMsg{Type: tea.KeyUp}, "<Keyboard>/upArrow"},
		{"function key", tea.KeyMsg{Type: tea.KeyF5}, "<Keyboard>/f5"},
		{"control chord", tea.KeyMsg{Type: tea.KeyCtrlC}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyPath(tt.msg); got != tt.expected {
				t.Errorf("KeyPath() = %q, want %q", got, tt.expected)
			}
		})
	}
}

type handlerLog struct {
	completed []string
	canceled  []rebind.CancelReason
}

func (l *handlerLog) handler() rebind.Handler {
	return rebind.Handler{
		OnComplete: func(path string) { l.completed = append(l.completed, path) },
		OnCancel:   func(r rebind.CancelReason) { l.canceled = append(l.canceled, r) },
	}
}

func options() rebind.ListenOptions {
	return rebind.ListenOptions{
		Timeout:       time.Hour,
		CancelControl: rebind.DefaultCancelControl,
		Excluded:      []string{"<Keyboard>/tab"},
		Prompt:        "Waiting for input...",
	}
}

func attached() (*Terminal, chan tea.Msg) {
	msgs := make(chan tea.Msg, 4)
	term := New(nil)
	term.Attach(func(msg tea.Msg) { msgs <- msg })
	return term, msgs
}

func mustListen(t *testing.T, term *Terminal, opts rebind.ListenOptions, h rebind.Handler) rebind.Subscription {
	t.Helper()
	sub, err := term.Listen(opts, h)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	return sub
}

func TestListen_Detached(t *testing.T) {
	term := New(nil)
	if _, err := term.Listen(options(), rebind.Handler{}); !errors.Is(err, ErrDetached) {
		t.Errorf("Listen() error = %v, want ErrDetached", err)
	}
}

func TestListen_Busy(t *testing.T) {
	term, _ := attached()
	sub := mustListen(t, term, options(), rebind.Handler{})
	defer sub.Close()

	if _, err := term.Listen(options(), rebind.Handler{}); !errors.Is(err, ErrBusy) {
		t.Errorf("second Listen() error = %v, want ErrBusy", err)
	}
}

func TestHandleKey(t *testing.T) {
	tests := []struct {
		name      string
		msg       tea.KeyMsg
		consumed  bool
		completed []string
		canceled  []rebind.CancelReason
		listening bool
	}{
		{"accepts control", runes("j"), true, []string{"<Keyboard>/j"}, nil, false},
		{"cancel control", tea.KeyMsg{Type: tea.KeyEscape}, true, nil, []rebind.CancelReason{rebind.CancelByControl}, false},
		{"excluded control", tea.KeyMsg{Type: tea.KeyTab}, true, nil, nil, true},
		{"no control path", tea.KeyMsg{Type: tea.KeyCtrlC}, false, nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, _ := attached()
			var log handlerLog
			sub := mustListen(t, term, options(), log.handler())
			defer sub.Close()

			if got := term.HandleKey(tt.msg); got != tt.consumed {
				t.Errorf("HandleKey() = %v, want %v", got, tt.consumed)
			}
			if !slices.Equal(log.completed, tt.completed) {
				t.Errorf("completed = %v, want %v", log.completed, tt.completed)
			}
			if !slices.Equal(log.canceled, tt.canceled) {
				t.Errorf("canceled = %v, want %v", log.canceled, tt.canceled)
			}
			if got := term.Listening(); got != tt.listening {
				t.Errorf("Listening() = %v, want %v", got, tt.listening)
			}
		})
	}
}

func TestHandleKey_NotListening(t *testing.T) {
	term, _ := attached()
	if term.HandleKey(runes("j")) {
		t.Error("HandleKey() consumed a key without a subscription")
	}
}

func TestTimeout(t *testing.T) {
	term, msgs := attached()
	var log handlerLog
	opts := options()
	opts.Timeout = 10 * time.Millisecond
	mustListen(t, term, opts, log.handler())
	if !term.Listening() {
		t.Fatal("Listening() = false after Listen")
	}

	var msg tea.Msg
	select {
	case msg = <-msgs:
	case <-time.After(time.Second):
		t.Fatal("timeout message not delivered")
	}
	timeout, ok := msg.(TimeoutMsg)
	if !ok {
		t.Fatalf("message = %#v, want TimeoutMsg", msg)
	}

	term.HandleTimeout(timeout)
	if !slices.Equal(log.canceled, []rebind.CancelReason{rebind.CancelByTimeout}) {
		t.Errorf("canceled = %v, want timeout", log.canceled)
	}
	if term.Listening() {
		t.Error("Listening() = true after timeout")
	}
}

func TestTimeout_StaleDropped(t *testing.T) {
	term, _ := attached()
	var log handlerLog
	mustListen(t, term, options(), log.handler()).Close()

	next := mustListen(t, term, options(), log.handler())
	defer next.Close()

	term.HandleTimeout(TimeoutMsg{ID: 1})
	if len(log.canceled) != 0 {
		t.Errorf("stale timeout canceled the open subscription: %v", log.canceled)
	}
	if !term.Listening() {
		t.Error("Listening() = false after stale timeout")
	}
}

func TestClose_StopsTimer(t *testing.T) {
	term, msgs := attached()
	opts := options()
	opts.Timeout = 20 * time.Millisecond
	sub := mustListen(t, term, opts, rebind.Handler{})

	sub.Close()
	sub.Close()
	if term.Listening() {
		t.Error("Listening() = true after Close")
	}

	select {
	case msg := <-msgs:
		t.Fatalf("unexpected message after close: %#v", msg)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestTerminal_DrivesManager(t *testing.T) {
	store := binding.Sample()
	term, _ := attached()
	mgr := rebind.NewManager(rebind.Config{Store: store, Listener: term})
	defer mgr.Close()

	jump := binding.Action{Map: "Player", Name: "Jump"}
	if err := mgr.StartInteractiveRebind(jump, "jump-kb"); err != nil {
		t.Fatalf("StartInteractiveRebind: %v", err)
	}
	if !term.Listening() {
		t.Fatal("terminal not listening after start")
	}

	if !term.HandleKey(runes("j")) {
		t.Error("HandleKey(j) not consumed")
	}
	if term.Listening() || mgr.Active(jump, "jump-kb") {
		t.Error("session still running after a control was accepted")
	}

	ref, err := store.Lookup(jump, "jump-kb")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got := ref.Binding().EffectivePath(); got != "<Keyboard>/j" {
		t.Errorf("EffectivePath() = %q, want <Keyboard>/j", got)
	}
}

func TestTerminal_CompositeChain(t *testing.T) {
	store := binding.Sample()
	term, _ := attached()
	mgr := rebind.NewManager(rebind.Config{Store: store, Listener: term})
	defer mgr.Close()

	move := binding.Action{Map: "Player", Name: "Move"}
	if err := mgr.StartInteractiveRebind(move, "move-kb"); err != nil {
		t.Fatalf("StartInteractiveRebind: %v", err)
	}

	for _, key := range []string{"i", "k", "j", "l"} {
		if !term.HandleKey(runes(key)) {
			t.Fatalf("HandleKey(%s) not consumed", key)
		}
	}
	if term.Listening() {
		t.Error("terminal still listening after the last part")
	}

	d, err := mgr.FormatDisplay(move, "move-kb")
	if err != nil {
		t.Fatalf("FormatDisplay: %v", err)
	}
	if d.Label != "I/K/J/L" {
		t.Errorf("Label = %q, want I/K/J/L", d.Label)
	}
}
