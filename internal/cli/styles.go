package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles colour text output. The renderer inspects the destination writer,
// so pipes, files and test buffers get plain text.
type styles struct {
	pass lipgloss.Style
	fail lipgloss.Style
	warn lipgloss.Style
	dim  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		pass: r.NewStyle().Foreground(lipgloss.Color("82")),
		fail: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		warn: r.NewStyle().Foreground(lipgloss.Color("220")),
		dim:  r.NewStyle().Foreground(lipgloss.Color("242")),
	}
}

func (s styles) passMark() string { return s.pass.Render("✓") }
func (s styles) failMark() string { return s.fail.Render("✗") }
