package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/gubarz/cardinal/internal/config"
)

// StyleManager encapsulates all TUI styles and provides methods for style operations
type StyleManager struct {
	// Card styles
	Title    lipgloss.Style
	Category lipgloss.Style
	Side     lipgloss.Style

	// Progress styles
	Correct   lipgloss.Style
	Incorrect lipgloss.Style
	Dim       lipgloss.Style

	// Chrome styles
	Border  lipgloss.Style
	Divider lipgloss.Style
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Title:     lipgloss.NewStyle().Bold(true),
		Category:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Side:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Correct:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Incorrect: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Border:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
		Divider:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// LoadFromConfig updates styles based on configuration
func (s *StyleManager) LoadFromConfig() {
	titleColor := parseANSIColor(config.GetColorTitle())
	categoryColor := parseANSIColor(config.GetColorCategory())
	correctColor := parseANSIColor(config.GetColorCorrect())
	incorrectColor := parseANSIColor(config.GetColorIncorrect())
	borderColor := lipgloss.Color(config.GetColorBorder())
	dimColor := lipgloss.Color(config.GetColorDim())

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(titleColor)
	s.Category = lipgloss.NewStyle().Foreground(categoryColor)
	s.Side = lipgloss.NewStyle().Foreground(dimColor).Italic(true)
	s.Correct = lipgloss.NewStyle().Foreground(correctColor)
	s.Incorrect = lipgloss.NewStyle().Foreground(incorrectColor)
	s.Dim = lipgloss.NewStyle().Foreground(dimColor)
	s.Border = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderColor)
	s.Divider = lipgloss.NewStyle().Foreground(borderColor)
}

// parseANSIColor converts ANSI color codes to lipgloss colors
func parseANSIColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}

// Global style manager instance
var styles = DefaultStyles()

// RefreshStyles updates the global styles from config
func RefreshStyles() {
	styles.LoadFromConfig()
}
