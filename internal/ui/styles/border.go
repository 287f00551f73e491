package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderTitled boxes content, with leftTitle and rightTitle embedded in the
// top border. The box is as wide as the widest content line or the titles,
// whichever is larger. Pass "" to omit a title.
func RenderTitled(content, leftTitle, rightTitle string) string {
	borderStyle := lipgloss.NewStyle().Foreground(BorderDefaultColor)
	titleStyle := HeaderStyle

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	inner := 0
	for _, l := range lines {
		inner = max(inner, lipgloss.Width(l)+2)
	}
	inner = max(inner, titlesWidth(leftTitle, rightTitle))

	var b strings.Builder
	b.WriteString(topBorder(leftTitle, rightTitle, inner, borderStyle, titleStyle))
	for _, l := range lines {
		b.WriteString("\n")
		pad := inner - 1 - lipgloss.Width(l)
		b.WriteString(borderStyle.Render(borderVertical) + " " + l + strings.Repeat(" ", pad) + borderStyle.Render(borderVertical))
	}
	b.WriteString("\n")
	b.WriteString(borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, inner) + borderBottomRight))
	return b.String()
}

// titlesWidth is the inner width needed to show both titles:
// "─ left ─...─ right ─".
func titlesWidth(left, right string) int {
	w := 0
	if left != "" {
		w += lipgloss.Width(left) + 3
	}
	if right != "" {
		w += lipgloss.Width(right) + 3
	}
	return w + 1
}

// topBorder renders ╭─ left ─────── right ─╮ across inner columns.
func topBorder(left, right string, inner int, borderStyle, titleStyle lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(borderStyle.Render(borderTopLeft))
	used := 0
	if left != "" {
		b.WriteString(borderStyle.Render(borderHorizontal+" ") + titleStyle.Render(left) + borderStyle.Render(" "))
		used += lipgloss.Width(left) + 3
	}
	tail := 0
	if right != "" {
		tail = lipgloss.Width(right) + 3
	}
	b.WriteString(borderStyle.Render(strings.Repeat(borderHorizontal, max(inner-used-tail, 1))))
	if right != "" {
		b.WriteString(borderStyle.Render(" ") + titleStyle.Render(right) + borderStyle.Render(" "+borderHorizontal))
	}
	b.WriteString(borderStyle.Render(borderTopRight))
	return b.String()
}

// TruncateString truncates a string to fit within maxWidth, adding an ellipsis if needed.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	var b strings.Builder
	for _, r := range s {
		if lipgloss.Width(b.String()+string(r)) > maxWidth-3 {
			break
		}
		b.WriteRune(r)
	}
	return b.String() + "..."
}
