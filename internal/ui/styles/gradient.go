package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Title renders text in bold with the theme's Primary to Secondary gradient.
func (t *Theme) Title(text string) string {
	return Gradient(text, t.Primary, t.Secondary)
}

// Gradient renders bold text with a horizontal color gradient, one color per
// grapheme cluster.
func Gradient(text string, from, to lipgloss.Color) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return lipgloss.NewStyle().Foreground(from).Bold(true).Render(text)
	}

	start, end := toColorful(from), toColorful(to)
	last := float64(len(clusters) - 1)

	var b strings.Builder
	for i, cluster := range clusters {
		c := start.BlendHcl(end, float64(i)/last).Clamped()
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Hex())).
			Bold(true).
			Render(cluster))
	}
	return b.String()
}

// toColorful parses a hex lipgloss color. ANSI color numbers become gray.
func toColorful(c lipgloss.Color) colorful.Color {
	if col, err := colorful.Hex(string(c)); err == nil {
		return col
	}
	col, _ := colorful.MakeColor(color.Gray{Y: 128})
	return col
}
