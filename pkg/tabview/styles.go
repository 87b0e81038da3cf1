package tabview

import "github.com/charmbracelet/lipgloss"

var (
	// Base colors
	primaryColor   = lipgloss.Color("212")
	secondaryColor = lipgloss.Color("141")
	mutedColor     = lipgloss.Color("241")
	errorColor     = lipgloss.Color("196")

	// Tab strip
	triggerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	activeTriggerStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	indicatorStyle     = lipgloss.NewStyle().Foreground(primaryColor)
	stripRuleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	// Text styles
	subtleStyle = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle  = lipgloss.NewStyle().Foreground(errorColor)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Background(lipgloss.Color("236"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Background(lipgloss.Color("236"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(primaryColor).
			Padding(0, 1)

	// Keyboard area under a focused page input
	keyboardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("238")).
			Foreground(mutedColor)

	// Help overlay
	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 2)
)
