package sessions

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	sessionID lipgloss.Style
	session   lipgloss.Style
	active    lipgloss.Style
	detail    lipgloss.Style
	section   lipgloss.Style
	empty     lipgloss.Style
	user      lipgloss.Style
	assistant lipgloss.Style
	timestamp lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		sessionID: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		session:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		active:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		detail:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		section:   lipgloss.NewStyle().MarginTop(1),
		empty:     lipgloss.NewStyle().Faint(true),
		user:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		assistant: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
