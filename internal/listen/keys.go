package listen

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

const keyboard = "<Keyboard>/"

var namedKeys = map[tea.KeyType]string{
	tea.KeySpace:     "space",
	tea.KeyEnter:     "enter",
	tea.KeyEscape:    "escape",
	tea.KeyTab:       "tab",
	tea.KeyShiftTab:  "tab",
	tea.KeyBackspace: "backspace",
	tea.KeyDelete:    "delete",
	tea.KeyInsert:    "insert",
	tea.KeyUp:        "upArrow",
	tea.KeyDown:      "downArrow",
	tea.KeyLeft:      "leftArrow",
	tea.KeyRight:     "rightArrow",
	tea.KeyHome:      "home",
	tea.KeyEnd:       "end",
	tea.KeyPgUp:      "pageUp",
	tea.KeyPgDown:    "pageDown",
	tea.KeyF1:        "f1",
	tea.KeyF2:        "f2",
	tea.KeyF3:        "f3",
	tea.KeyF4:        "f4",
	tea.KeyF5:        "f5",
	tea.KeyF6:        "f6",
	tea.KeyF7:        "f7",
	tea.KeyF8:        "f8",
	tea.KeyF9:        "f9",
	tea.KeyF10:       "f10",
	tea.KeyF11:       "f11",
	tea.KeyF12:       "f12",
}

var symbolKeys = map[rune]string{
	'/':  "slash",
	'\\': "backslash",
	'-':  "minus",
	'=':  "equals",
	',':  "comma",
	'.':  "period",
	';':  "semicolon",
	'\'': "quote",
	'`':  "backquote",
	'[':  "leftBracket",
	']':  "rightBracket",
}

// KeyPath returns the keyboard control path of a key, or "" when the key has
// no control of its own (control chords, pasted text, unknown symbols).
// Shifted letters map to the letter key.
func KeyPath(msg tea.KeyMsg) string {
	if msg.Paste {
		return ""
	}
	if name, ok := namedKeys[msg.Type]; ok {
		return keyboard + name
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return ""
	}

	r := msg.Runes[0]
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return keyboard + string(r)
	case r >= 'A' && r <= 'Z':
		return keyboard + string(unicode.ToLower(r))
	}
	if name, ok := symbolKeys[r]; ok {
		return keyboard + name
	}
	return ""
}
