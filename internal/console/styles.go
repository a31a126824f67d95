package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	label   lipgloss.Style
}

// newStyles liga os estilos ao writer de saída; sem terminal o texto sai sem cores.
func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Border(lipgloss.RoundedBorder()).Padding(0, 2),
		heading: r.NewStyle().Bold(true),
		success: r.NewStyle().Foreground(lipgloss.Color("42")),
		failure: r.NewStyle().Foreground(lipgloss.Color("196")),
		label:   r.NewStyle().Faint(true),
	}
}
