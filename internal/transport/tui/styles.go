package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)

	statusRecStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	statusIdleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	cardTopicStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	cardKindStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	cardBodyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	cardMetaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
