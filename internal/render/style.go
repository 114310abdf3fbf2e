package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles colors output only when w is a terminal.
type styles struct {
	heading   lipgloss.Style
	title     lipgloss.Style
	muted     lipgloss.Style
	warn      lipgloss.Style
	reference lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		heading:   r.NewStyle().Foreground(lipgloss.Color("#86efac")),
		title:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("#fde68a")),
		muted:     r.NewStyle().Foreground(lipgloss.Color("#a1a1aa")),
		warn:      r.NewStyle().Foreground(lipgloss.Color("#fca5a5")),
		reference: r.NewStyle().Foreground(lipgloss.Color("#93c5fd")),
	}
}
