package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
	ColorAccent    lipgloss.Color = "5" // Magenta
)

// warnRatio is the fraction of a threshold at which usage turns amber.
const warnRatio = 0.75

// ThresholdColor colours percent relative to threshold.
// A non-positive threshold disables alert colouring.
func ThresholdColor(percent, threshold float64) lipgloss.Color {
	if threshold <= 0 {
		return ColorInfo
	}
	switch {
	case percent > threshold:
		return ColorError
	case percent >= threshold*warnRatio:
		return ColorWarning
	default:
		return ColorSuccess
	}
}
