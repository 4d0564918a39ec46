// Package render provides text rendering utilities for the binding table.
package render

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Sanitize drops control characters and invalid UTF-8 from text read out of
// binding assets, and turns non-breaking spaces into spaces.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == unicode.ReplacementChar:
			return -1
		case r == '\u00a0':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.ToValidUTF8(s, ""))
}

// Truncate shortens plain text to maxWidth cells, ending in "..." when cut.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, "...")
}

// Fit truncates styled text to width cells with a single-character ellipsis,
// then pads it to exactly width.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	if gap := width - ansi.StringWidth(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}

// Row places left and right styled text on one line of the given width,
// keeping at least one space between them. The left side is cut first.
func Row(left, right string, width int) string {
	rightWidth := ansi.StringWidth(right)
	if rightWidth >= width {
		return ansi.Truncate(right, width, "…")
	}
	left = ansi.Truncate(left, max(width-rightWidth-1, 0), "…")
	gap := max(width-ansi.StringWidth(left)-rightWidth, 1)
	return left + strings.Repeat(" ", gap) + right
}
