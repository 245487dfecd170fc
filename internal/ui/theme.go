package ui

import "charm.land/lipgloss/v2"

// Styles groups the lipgloss styles used by the explorer view.
type Styles struct {
	Header   lipgloss.Style
	Path     lipgloss.Style
	Cursor   lipgloss.Style
	Branch   lipgloss.Style
	Leaf     lipgloss.Style
	Dim      lipgloss.Style
	Error    lipgloss.Style
	HelpHint lipgloss.Style
}

// DefaultStyles returns the default dark-terminal styles.
func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Path:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Cursor:   lipgloss.NewStyle().Reverse(true),
		Branch:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Leaf:     lipgloss.NewStyle(),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		HelpHint: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}
