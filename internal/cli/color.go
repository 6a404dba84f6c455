package cli

import "github.com/charmbracelet/lipgloss"

// Orbit palette. Under a non-color profile (tests, pipes) every helper
// returns its input unchanged.
var (
	primaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C5CFF"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB454"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#3FB8FF"))
	silentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8A9E"))
	textStyle    = lipgloss.NewStyle()
)

func Primary(text string) string { return primaryStyle.Render(text) }
func Error(text string) string   { return errorStyle.Render(text) }
func Warning(text string) string { return warningStyle.Render(text) }
func Info(text string) string    { return infoStyle.Render(text) }
func Silent(text string) string  { return silentStyle.Render(text) }
func Text(text string) string    { return textStyle.Render(text) }
