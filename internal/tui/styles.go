package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("99")
	accentColor  = lipgloss.Color("212")
	rangeColor   = lipgloss.Color("60")
	todayColor   = lipgloss.Color("39")
	mutedColor   = lipgloss.Color("240")
	errorColor   = lipgloss.Color("196")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	captionStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	monthStyle   = lipgloss.NewStyle().MarginRight(3)

	dayHeaderStyle  = lipgloss.NewStyle().Foreground(mutedColor).Bold(true)
	weekNumberStyle = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)

	dayStyle        = lipgloss.NewStyle()
	outsideDayStyle = lipgloss.NewStyle().Foreground(mutedColor)
	todayStyle      = lipgloss.NewStyle().Foreground(todayColor).Bold(true).Underline(true)
	disabledStyle   = lipgloss.NewStyle().Foreground(mutedColor).Strikethrough(true)
	selectedStyle   = lipgloss.NewStyle().Background(accentColor).Foreground(lipgloss.Color("0")).Bold(true)
	rangeEdgeStyle  = lipgloss.NewStyle().Background(primaryColor).Foreground(lipgloss.Color("15")).Bold(true)
	inRangeStyle    = lipgloss.NewStyle().Background(rangeColor).Foreground(lipgloss.Color("15"))
	cursorStyle     = lipgloss.NewStyle().Background(lipgloss.Color("3")).Foreground(lipgloss.Color("0")).Bold(true)

	statusStyle  = lipgloss.NewStyle().MarginTop(1)
	warningStyle = lipgloss.NewStyle().Foreground(errorColor)
	helpStyle    = lipgloss.NewStyle().MarginTop(1)
)
