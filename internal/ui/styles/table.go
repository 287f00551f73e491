package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// NewTable returns a rounded-border table with styled headers.
func NewTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(BorderDefaultColor)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle.Padding(0, 1)
			}
			return CellStyle
		}).
		Headers(headers...)
}

// StateStyle picks the style for a run or event state label.
func StateStyle(state string) lipgloss.Style {
	switch state {
	case "finished", "started":
		return SuccessStyle
	case "failed", "start_failed":
		return ErrorStyle
	case "running":
		return WarningStyle
	default:
		return MutedStyle
	}
}
