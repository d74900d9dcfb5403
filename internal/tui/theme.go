package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Base   lipgloss.Style
	Work   lipgloss.Style
	Break  lipgloss.Style
	Flash  lipgloss.Style
	Timer  lipgloss.Style
	Pet    lipgloss.Style
	Ground lipgloss.Style
	Dim    lipgloss.Style
	Frame  lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Base:   lipgloss.NewStyle().Margin(1, 2),
		Work:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Break:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true),
		Flash:  lipgloss.NewStyle().Foreground(lipgloss.Color("232")).Background(lipgloss.Color("229")).Bold(true),
		Timer:  lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		Pet:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Ground: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Frame:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1),
	}
}
