package status

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	section   lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	tracker   lipgloss.Style
	roll      lipgloss.Style
	rollMeta  lipgloss.Style
	empty     lipgloss.Style
	available lipgloss.Style
	spent     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		section:   lipgloss.NewStyle().MarginTop(1),
		label:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		value:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		tracker:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		roll:      lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		rollMeta:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		empty:     lipgloss.NewStyle().Faint(true),
		available: lipgloss.NewStyle().Foreground(lipgloss.Color("76")),
		spent:     lipgloss.NewStyle().Faint(true),
	}
}
