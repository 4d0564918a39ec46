package display

import (
	"slices"
	"testing"

	"github.com/llehouerou/rebind/internal/binding"
)

func TestLabel(t *testing.T) {
	f := New(Config{})
	tests := []struct {
		path     string
		expected string
	}{
		{"<Keyboard>/numpad8", "Numpad 8"},
		{"<Keyboard>/w", "W"},
		{"<Keyboard>/leftArrow", "Left Arrow"},
		{"<Keyboard>/space", "Space"},
		{"<Keyboard>/f1", "F1"},
		{"<Keyboard>/semicolon", ";"},
		{"<Gamepad>/buttonSouth", "Button South"},
		{"<Gamepad>/leftStick/up", "Left Stick Up"},
		{"<Mouse>/leftButton", "Left Button"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := f.Label(tt.path); got != tt.expected {
				t.Errorf("Label(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestSubstitute_KeypadToArrows(t *testing.T) {
	f := New(Config{})
	action := binding.Action{Map: "Arrow", Name: "MoveUp"}

	if got := f.Substitute("Numpad 8/W", action); got != "Up Arrow/W" {
		t.Errorf("Substitute = %q, want %q", got, "Up Arrow/W")
	}
}

func TestSubstitute(t *testing.T) {
	f := New(Config{})
	arrow := binding.Action{Map: "Arrow", Name: "Aim"}

	tests := []struct {
		name     string
		label    string
		expected string
	}{
		{"single up", "Numpad 8", "Up Arrow"},
		{"single down", "Num 2", "Down Arrow"},
		{"left", "Numpad 4", "Left Arrow"},
		{"right", "num 6", "Right Arrow"},
		{"non direction keypad", "Numpad 5", "Numpad 5"},
		{"all four", "Numpad 8/Numpad 2/Numpad 4/Numpad 6", "Up Arrow/Down Arrow/Left Arrow/Right Arrow"},
		{"mixed", "W/Numpad 2/A", "W/Down Arrow/A"},
		{"keeps empty segments", "Numpad 8//W", "Up Arrow//W"},
		{"no keypad", "W/S", "W/S"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Substitute(tt.label, arrow); got != tt.expected {
				t.Errorf("Substitute(%q) = %q, want %q", tt.label, got, tt.expected)
			}
		})
	}
}

func TestSubstitute_IdentityOutsideArrowFamily(t *testing.T) {
	f := New(Config{})
	labels := []string{"Numpad 8/W", "Numpad 8", "Num 2", "Space", "Numpad 4/Numpad 6"}
	action := binding.Action{Map: "Player", Name: "Move"}
	for _, l := range labels {
		if got := f.Substitute(l, action); got != l {
			t.Errorf("Substitute(%q) = %q, want unchanged", l, got)
		}
	}
}

func TestSubstitute_CustomFamilies(t *testing.T) {
	f := New(Config{ArrowFamilies: []string{"Cursor"}})
	if got := f.Substitute("Numpad 8", binding.Action{Map: "UI", Name: "CursorMove"}); got != "Up Arrow" {
		t.Errorf("configured family: got %q, want %q", got, "Up Arrow")
	}
	if got := f.Substitute("Numpad 8", binding.Action{Map: "Arrow", Name: "Aim"}); got != "Numpad 8" {
		t.Errorf("default family replaced: got %q, want %q", got, "Numpad 8")
	}
}

func TestFormat(t *testing.T) {
	f := New(Config{})
	if got := f.Format("<Keyboard>/numpad8", "Keyboard", binding.Action{Map: "Arrow", Name: "MoveUp"}); got != "Up Arrow" {
		t.Errorf("Format arrow action = %q, want %q", got, "Up Arrow")
	}
	if got := f.Format("<Keyboard>/numpad8", "Keyboard", binding.Action{Map: "Player", Name: "Jump"}); got != "Numpad 8" {
		t.Errorf("Format other action = %q, want %q", got, "Numpad 8")
	}
}

func TestBinding(t *testing.T) {
	store := binding.Sample()
	f := New(Config{})

	aim, err := store.Lookup(binding.Action{Map: "Arrow", Name: "Aim"}, "aim-kb")
	if err != nil {
		t.Fatalf("Lookup aim: %v", err)
	}
	want := Display{
		Label:  "Up Arrow/Down Arrow/Left Arrow/Right Arrow",
		Group:  "Keyboard",
		Device: "Keyboard",
		Path:   "2DVector",
	}
	if got := f.Binding(aim); got != want {
		t.Errorf("Binding(aim) = %+v, want %+v", got, want)
	}

	move, err := store.Lookup(binding.Action{Map: "Player", Name: "Move"}, "move-kb")
	if err != nil {
		t.Fatalf("Lookup move: %v", err)
	}
	if got := f.Binding(move).Label; got != "W/S/A/D" {
		t.Errorf("Binding(move).Label = %q, want %q", got, "W/S/A/D")
	}

	jump, err := store.Lookup(binding.Action{Map: "Player", Name: "Jump"}, "jump-pad")
	if err != nil {
		t.Fatalf("Lookup jump: %v", err)
	}
	jump.SetOverride("<Gamepad>/buttonNorth")
	want = Display{
		Label:  "Button North",
		Group:  "Gamepad",
		Device: "Gamepad",
		Path:   "<Gamepad>/buttonNorth",
	}
	if got := f.Binding(jump); got != want {
		t.Errorf("Binding(jump) = %+v, want %+v", got, want)
	}
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"numpad8", []string{"numpad", "8"}},
		{"leftArrow", []string{"left", "arrow"}},
		{"f12", []string{"f12"}},
		{"numpadEnter", []string{"numpad", "enter"}},
	}
	for _, tt := range tests {
		if got := splitWords(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("splitWords(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
