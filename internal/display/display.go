// Package display turns control paths into labels for the binding UI.
package display

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/llehouerou/rebind/internal/binding"
)

// Display is what the UI shows for one binding.
type Display struct {
	Label  string
	Group  string // control scheme of the binding
	Device string // device layout from the path, e.g. "Keyboard"
	Path   string // effective control path
}

// DefaultArrowFamilies mark actions whose keypad labels read as arrows.
var DefaultArrowFamilies = []string{"arrow"}

// Config tunes the keypad-to-arrow rule.
type Config struct {
	ArrowFamilies []string // matched case-insensitively against "map/action"
}

// Formatter builds labels. Not safe for concurrent use.
type Formatter struct {
	families []string
	title    cases.Caser
}

// New creates a formatter.
func New(cfg Config) *Formatter {
	families := cfg.ArrowFamilies
	if len(families) == 0 {
		families = DefaultArrowFamilies
	}
	lowered := make([]string, 0, len(families))
	for _, f := range families {
		lowered = append(lowered, strings.ToLower(f))
	}
	return &Formatter{
		families: lowered,
		title:    cases.Title(language.English),
	}
}

// symbols are controls whose name reads better as the character they type.
var symbols = map[string]string{
	"backquote":    "`",
	"minus":        "-",
	"equals":       "=",
	"leftBracket":  "[",
	"rightBracket": "]",
	"semicolon":    ";",
	"quote":        "'",
	"comma":        ",",
	"period":       ".",
}

// Label humanizes a single control path: "<Keyboard>/numpad8" -> "Numpad 8",
// "<Gamepad>/leftStick/up" -> "Left Stick Up".
func (f *Formatter) Label(path string) string {
	_, controls := splitPath(path)
	if controls == "" {
		return ""
	}
	var words []string
	for _, c := range strings.Split(controls, "/") {
		if sym, ok := symbols[c]; ok {
			words = append(words, sym)
			continue
		}
		for _, w := range splitWords(c) {
			words = append(words, f.title.String(w))
		}
	}
	return strings.Join(words, " ")
}

// Format returns the label of path for an action, applying the keypad rule.
// Labels do not currently vary by group.
func (f *Formatter) Format(path, group string, action binding.Action) string {
	return f.Substitute(f.Label(path), action)
}

// Binding builds the display for a binding. A composite header is labelled by
// its parts joined with "/".
func (f *Formatter) Binding(ref binding.Ref) Display {
	b := ref.Binding()
	path := b.EffectivePath()
	device, _ := splitPath(path)

	var label string
	if b.Composite {
		parts := ref.Parts()
		labels := make([]string, 0, len(parts))
		for _, p := range parts {
			labels = append(labels, f.Label(p.Binding().EffectivePath()))
			if device == "" {
				device, _ = splitPath(p.Binding().EffectivePath())
			}
		}
		label = f.Substitute(strings.Join(labels, "/"), ref.Action())
	} else {
		label = f.Format(path, b.Group, ref.Action())
	}

	return Display{Label: label, Group: b.Group, Device: device, Path: path}
}

var keypadDirection = regexp.MustCompile(`(?i)\bnum(?:pad)?\s*([2468])\b`)

var arrowNames = map[string]string{
	"8": "Up Arrow",
	"2": "Down Arrow",
	"4": "Left Arrow",
	"6": "Right Arrow",
}

// Substitute rewrites keypad directions to arrow names when the action belongs
// to an arrow family. Each "/"-separated segment is rewritten on its own.
func (f *Formatter) Substitute(label string, action binding.Action) string {
	if !strings.Contains(strings.ToLower(label), "num") || !f.isArrowFamily(action) {
		return label
	}
	segments := strings.Split(label, "/")
	for i, seg := range segments {
		if m := keypadDirection.FindStringSubmatch(seg); m != nil {
			segments[i] = arrowNames[m[1]]
		}
	}
	return strings.Join(segments, "/")
}

func (f *Formatter) isArrowFamily(action binding.Action) bool {
	name := strings.ToLower(action.String())
	for _, fam := range f.families {
		if strings.Contains(name, fam) {
			return true
		}
	}
	return false
}

// splitPath separates "<Device>/a/b" into "Device" and "a/b". Paths without a
// device layout are returned whole as controls.
func splitPath(path string) (device, controls string) {
	if !strings.HasPrefix(path, "<") {
		return "", path
	}
	end := strings.Index(path, ">")
	if end < 0 {
		return "", path
	}
	device = path[1:end]
	controls = strings.TrimPrefix(path[end+1:], "/")
	return device, controls
}

// splitWords breaks a camelCase control name into words, splitting digits off
// multi-letter words: "numpad8" -> [numpad 8], "leftArrow" -> [left arrow],
// "f1" -> [f1].
func splitWords(s string) []string {
	var words []string
	var cur []rune
	letters := 0
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
		}
		cur = cur[:0]
		letters = 0
	}
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			flush()
			cur = append(cur, unicode.ToLower(r))
			letters++
		case unicode.IsDigit(r):
			if letters > 1 {
				flush()
			}
			cur = append(cur, r)
		default:
			if len(cur) > 0 && letters == 0 {
				flush()
			}
			cur = append(cur, r)
			letters++
		}
	}
	flush()
	return words
}
