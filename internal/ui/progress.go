package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Progress bar block characters.
const (
	progressFilled = '█'
	progressEmpty  = '░'
)

// RenderProgressBar draws percent (clamped to 0-100) as a bar of width cells
// followed by the value, e.g. "[████████░░░░]  67%". The bar is coloured
// relative to threshold.
func RenderProgressBar(percent float64, width int, threshold float64) string {
	if width <= 0 {
		return ""
	}

	percent = max(0, min(percent, 100))
	filled := int(percent / 100 * float64(width))

	var sb strings.Builder
	sb.Grow(width*3 + 2)
	sb.WriteRune('[')
	sb.WriteString(strings.Repeat(string(progressFilled), filled))
	sb.WriteString(strings.Repeat(string(progressEmpty), width-filled))
	sb.WriteRune(']')

	style := lipgloss.NewStyle().Foreground(ThresholdColor(percent, threshold))
	return style.Render(sb.String()) + fmt.Sprintf(" %3.0f%%", percent)
}
