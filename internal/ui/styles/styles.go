// Package styles contains Lip Gloss style definitions for CLI output.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors adapt to the terminal background.
var (
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#8B8B8B"}
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}
	AccentColor        = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#54A0FF"}
	SuccessColor       = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#73F59F"}
	WarningColor       = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FECA57"}
	ErrorColor         = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#FF8787"}
)

// Text styles.
var (
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)
	CellStyle    = lipgloss.NewStyle().Foreground(TextPrimaryColor).Padding(0, 1)
	MutedStyle   = lipgloss.NewStyle().Foreground(TextMutedColor)
	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
)
