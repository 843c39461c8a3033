package tui

import "github.com/charmbracelet/lipgloss"

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	docStyle = lipgloss.NewStyle().Padding(1, 2)

	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")).
			Padding(0, 1)

	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	barFillStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	barRestStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)
