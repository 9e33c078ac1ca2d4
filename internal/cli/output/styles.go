package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by text-mode rendering.
// Every style is bound to the renderer's terminal, so colors degrade
// to plain text automatically when output is piped.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	// StatusSuccess and StatusFailed carry their icon as the styled
	// string, so call sites render them with String().
	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header2: r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("8")),

		Success: r.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("9")),
		Info:    r.NewStyle().Foreground(lipgloss.Color("12")),

		StatusSuccess: r.NewStyle().Foreground(lipgloss.Color("10")).SetString("ok"),
		StatusFailed:  r.NewStyle().Foreground(lipgloss.Color("9")).SetString("fail"),
	}
}
