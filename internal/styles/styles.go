package styles

import "github.com/charmbracelet/lipgloss"

// Monokai Pro color palette
const (
	// Base colors
	Background = "#2D2A2E"
	Foreground = "#FCFCFA"

	// Accent colors
	Red    = "#FF6188" // Errors, danger
	Orange = "#FC9867" // Warnings
	Yellow = "#FFD866" // Highlights
	Green  = "#A9DC76" // Success, task names
	Cyan   = "#78DCE8" // File paths, info

	// UI colors
	Comment = "#727072" // Dim text, descriptions
)

// Common styles
var (
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))
	TitleStyle   = lipgloss.NewStyle().Bold(true)

	// Task list styles
	TaskStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Green))
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	FileStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Cyan))
)
