package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the visual styles for the planner screens.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Prompt   lipgloss.Style
	Answer   lipgloss.Style
	Error    lipgloss.Style
	Notice   lipgloss.Style
	Help     lipgloss.Style
	Panel    lipgloss.Style
	Total    lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Prompt:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51")),  // Bright cyan
		Answer:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),            // Light gray
		Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")), // Soft red
		Notice:   lipgloss.NewStyle().Foreground(lipgloss.Color("46")),             // Lime green
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		Total: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
	}
}

// TableStyles returns the plan table styles.
func (t Theme) TableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	return s
}
