package view

import (
	"github.com/charmbracelet/lipgloss"
)

type CommonModel struct {
	Width  int
	Height int
}

// RefreshMsg is sent whenever the flow engine changes state.
type RefreshMsg struct{}

var (
	assistantBubble = lipgloss.NewStyle().
			Padding(0, 1).
			MarginBottom(1).
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255"))

	userBubble = lipgloss.NewStyle().
			Padding(0, 1).
			MarginBottom(1).
			Background(lipgloss.Color("26")).
			Foreground(lipgloss.Color("255"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	okStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46"))
)
