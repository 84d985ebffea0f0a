package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("62")  // Purple
	colorMuted   = lipgloss.Color("240") // Darker gray
	colorSuccess = lipgloss.Color("78")  // Green
	colorError   = lipgloss.Color("203") // Red
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(colorPrimary)
	checkedStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	disabledStyle = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorPrimary).Padding(1, 2)
)
