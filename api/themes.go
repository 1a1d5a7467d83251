package api

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles used for CLI status lines.
type Theme struct {
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultTheme returns the default color theme
func DefaultTheme() Theme {
	return Theme{
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#32CD32")).Bold(true), // LimeGreen
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")),            // Gold
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6347")).Bold(true), // Tomato
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")),            // Gray
	}
}

// Status renders a one-line summary of a render result for a file.
func (t Theme) Status(file string, result RenderResult) string {
	switch result.Kind {
	case ResultDocument:
		return t.Success.Render("✓") + " " + file + " " + t.Muted.Render(result.String())
	case ResultEmpty:
		return t.Warning.Render("∅") + " " + file + " " + t.Muted.Render(string(result.Kind))
	default:
		return t.Error.Render("✗") + " " + file + " " + t.Muted.Render(string(result.Kind))
	}
}
