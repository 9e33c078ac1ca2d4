package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the pre-compiled lipgloss styles for the editor.
type Styles struct {
	LineNumber  lipgloss.Style
	CurrentLine lipgloss.Style
	Cursor      lipgloss.Style

	StatusBar    lipgloss.Style
	ModeNormal   lipgloss.Style
	ModeInsert   lipgloss.Style
	StatusDetail lipgloss.Style

	Message lipgloss.Style
	Warn    lipgloss.Style
}

// DefaultStyles returns the editor style set. ANSI colors only, so the
// editor degrades cleanly on plain terminals.
func DefaultStyles() Styles {
	return Styles{
		LineNumber:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		CurrentLine: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Cursor:      lipgloss.NewStyle().Reverse(true),

		StatusBar: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		ModeNormal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("12")).
			Padding(0, 1).
			Bold(true),
		ModeInsert: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("10")).
			Padding(0, 1).
			Bold(true),
		StatusDetail: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Message: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}
}
