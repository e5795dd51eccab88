package tui

import (
	"github.com/charmbracelet/lipgloss"

	"actions-insight/src/provider"
)

// StyleConfig holds the color palette shared by the timings view and the
// CLI tables.
type StyleConfig struct {
	// Primary colors
	PrimaryBlue    lipgloss.Color
	AccentBlue     lipgloss.Color
	DarkBackground lipgloss.Color
	TextPrimary    lipgloss.Color
	TextSecondary  lipgloss.Color
	BorderColor    lipgloss.Color
	SelectedColor  lipgloss.Color

	// Conclusion colors
	Success lipgloss.Color
	Failure lipgloss.Color
	Warning lipgloss.Color
	Bar     lipgloss.Color
}

// DefaultStyles returns the default color palette
func DefaultStyles() *StyleConfig {
	return &StyleConfig{
		PrimaryBlue:    lipgloss.Color("#8AB4F8"),
		AccentBlue:     lipgloss.Color("#4285F4"),
		DarkBackground: lipgloss.Color("#1E1E1E"),
		TextPrimary:    lipgloss.Color("#E8EAED"),
		TextSecondary:  lipgloss.Color("#9AA0A6"),
		BorderColor:    lipgloss.Color("#5F6368"),
		SelectedColor:  lipgloss.Color("#303134"),
		Success:        lipgloss.Color("#34A853"),
		Failure:        lipgloss.Color("#EA4335"),
		Warning:        lipgloss.Color("#FBBC04"),
		Bar:            lipgloss.Color("#24C1E0"),
	}
}

// TitleStyle returns a title lipgloss style using this config
func (s *StyleConfig) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.PrimaryBlue).
		Bold(true).
		Padding(0, 1)
}

// HelpStyle returns a help text lipgloss style using this config
func (s *StyleConfig) HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(s.TextSecondary).
		Padding(0, 2)
}

// PanelStyle returns a bordered panel, highlighted when focused.
func (s *StyleConfig) PanelStyle(focused bool) lipgloss.Style {
	border := s.BorderColor
	if focused {
		border = s.AccentBlue
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)
}

// ConclusionStyle colors a conclusion: green for success, red for
// failure, yellow for anything that needs attention.
func (s *StyleConfig) ConclusionStyle(c provider.Conclusion) lipgloss.Style {
	style := lipgloss.NewStyle()
	switch c {
	case provider.ConclusionSuccess:
		return style.Foreground(s.Success)
	case provider.ConclusionFailure, provider.ConclusionTimedOut:
		return style.Foreground(s.Failure).Bold(true)
	case provider.ConclusionCancelled, provider.ConclusionActionRequired:
		return style.Foreground(s.Warning)
	default:
		return style.Foreground(s.TextSecondary)
	}
}
