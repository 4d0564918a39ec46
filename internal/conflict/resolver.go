// Package conflict restores one-binding-per-path after an override changes.
//
// A resolver run handles at most one external duplicate. When the duplicate
// cannot move to its own default, it tries the new binding's default, then the
// default of whoever holds that path, then the first free default among other
// overridden bindings. If all of that fails the duplicate is left in place and
// reported as Unresolved.
package conflict

import (
	"io"
	"log/slog"
	"strings"

	"github.com/llehouerou/rebind/internal/binding"
)

// Outcome is the result category of a resolver run.
type Outcome int

const (
	NoConflict Outcome = iota
	Resolved
	LocalCompositeDuplicate
	Unresolved
)

func (o Outcome) String() string {
	switch o {
	case NoConflict:
		return "no conflict"
	case Resolved:
		return "resolved"
	case LocalCompositeDuplicate:
		return "duplicate composite part"
	case Unresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// Strategy records which cascade step moved the duplicate.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyRevertDuplicate
	StrategyTakeNewDefault
	StrategyTakeOccupantDefault
	StrategyFallback
)

func (s Strategy) String() string {
	switch s {
	case StrategyRevertDuplicate:
		return "revert duplicate"
	case StrategyTakeNewDefault:
		return "take new binding default"
	case StrategyTakeOccupantDefault:
		return "take occupant default"
	case StrategyFallback:
		return "fallback"
	default:
		return "none"
	}
}

// Result describes what a resolver run found and changed.
type Result struct {
	Outcome  Outcome
	Strategy Strategy
	// Duplicate is the binding sharing the new path: the earlier part for
	// LocalCompositeDuplicate, the external duplicate otherwise. Zero for NoConflict.
	Duplicate binding.Ref
	// Path is the duplicate's effective path after the run.
	Path string
}

// DefaultStickControls are substrings marking full analog-stick paths.
var DefaultStickControls = []string{"leftstick", "rightstick"}

// Config tunes the fallback scan.
type Config struct {
	StickControls []string // matched case-insensitively against default paths
}

// Resolver runs the conflict cascade. It keeps no state between runs.
type Resolver struct {
	sticks []string
	log    *slog.Logger
}

// New creates a resolver. A nil logger discards output.
func New(cfg Config, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	sticks := cfg.StickControls
	if len(sticks) == 0 {
		sticks = DefaultStickControls
	}
	lowered := make([]string, 0, len(sticks))
	for _, s := range sticks {
		lowered = append(lowered, strings.ToLower(s))
	}
	return &Resolver{sticks: lowered, log: logger.With("component", "conflict")}
}

// ResolvePart is Resolve for a part bound during a composite chain: an earlier
// part of the same composite already holding the path wins, and nothing is
// changed.
func (r *Resolver) ResolvePart(reg *binding.Registry, nb binding.Ref) Result {
	path := nb.Binding().EffectivePath()
	for _, prev := range nb.PrecedingParts() {
		if prev.Binding().EffectivePath() == path {
			r.log.Debug("path already bound to earlier part",
				"binding", nb.String(), "part", prev.Binding().Name, "path", path)
			return Result{Outcome: LocalCompositeDuplicate, Duplicate: prev, Path: path}
		}
	}
	return r.Resolve(reg, nb)
}

// Resolve finds the first binding of another action in nb's group that shares
// nb's effective path and moves it elsewhere. nb itself is never modified.
// An empty path is unbound: it never conflicts and is never a destination.
func (r *Resolver) Resolve(reg *binding.Registry, nb binding.Ref) Result {
	b := nb.Binding()
	path := b.EffectivePath()
	if path == "" {
		return Result{Outcome: NoConflict}
	}
	dup, ok := reg.FindFirst(func(ref binding.Ref) bool {
		d := ref.Binding()
		return !d.Composite &&
			d.Action != b.Action &&
			d.Group == b.Group &&
			d.EffectivePath() == path
	})
	if !ok {
		return Result{Outcome: NoConflict}
	}
	r.log.Debug("duplicate found", "binding", nb.String(), "duplicate", dup.String(), "path", path)
	return r.cascade(reg, nb, dup)
}

func (r *Resolver) cascade(reg *binding.Registry, nb, dup binding.Ref) Result {
	b, d := nb.Binding(), dup.Binding()

	if d.HasOverride() && d.Path != "" && !used(reg, d.Path, d.Action) {
		r.log.Debug("reverting duplicate to default", "duplicate", dup.String(), "path", d.Path)
		return r.move(dup, d.Path, StrategyRevertDuplicate)
	}

	if b.Path != "" && !used(reg, b.Path, d.Action) {
		r.log.Debug("moving duplicate to new binding default", "duplicate", dup.String(), "path", b.Path)
		return r.move(dup, b.Path, StrategyTakeNewDefault)
	}

	excluded := map[string]bool{b.Action: true, d.Action: true}
	if occupant, ok := occupantOf(reg, b.Path, d.Action); ok && b.Path != "" {
		o := occupant.Binding()
		excluded[o.Action] = true
		if o.Path != "" && !used(reg, o.Path, o.Action) {
			r.log.Debug("moving duplicate to occupant default",
				"duplicate", dup.String(), "occupant", occupant.String(), "path", o.Path)
			return r.move(dup, o.Path, StrategyTakeOccupantDefault)
		}
	}

	candidate, ok := reg.FindFirst(func(ref binding.Ref) bool {
		c := ref.Binding()
		if excluded[c.Action] || !c.HasOverride() || c.Path == "" || r.isStick(c.Path) {
			return false
		}
		if (c.Composite || c.Part) && c.Group != d.Group {
			return false
		}
		return !used(reg, c.Path, c.Action)
	})
	if ok {
		r.log.Debug("moving duplicate to fallback default",
			"duplicate", dup.String(), "candidate", candidate.String(), "path", candidate.Binding().Path)
		return r.move(dup, candidate.Binding().Path, StrategyFallback)
	}

	r.log.Warn("duplicate left unresolved",
		"binding", nb.String(), "duplicate", dup.String(), "path", d.EffectivePath())
	return Result{Outcome: Unresolved, Duplicate: dup, Path: d.EffectivePath()}
}

// move points dup at path. An override equal to the default is dropped.
func (r *Resolver) move(dup binding.Ref, path string, s Strategy) Result {
	if path == dup.Binding().Path {
		dup.ClearOverride()
	} else {
		dup.SetOverride(path)
	}
	return Result{Outcome: Resolved, Strategy: s, Duplicate: dup, Path: dup.Binding().EffectivePath()}
}

func (r *Resolver) isStick(path string) bool {
	lower := strings.ToLower(path)
	for _, s := range r.sticks {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// used reports whether any watched binding outside the excluded action has path
// as its effective path.
func used(reg *binding.Registry, path, excludedAction string) bool {
	_, ok := occupantOf(reg, path, excludedAction)
	return ok
}

func occupantOf(reg *binding.Registry, path, excludedAction string) (binding.Ref, bool) {
	return reg.FindFirst(func(ref binding.Ref) bool {
		b := ref.Binding()
		return b.Action != excludedAction && b.EffectivePath() == path
	})
}
