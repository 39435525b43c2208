package dashboard

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/seregonwar/CoreBaseApplication/internal/ui"
)

// Layout breakpoints for responsive design
const (
	BreakpointCompact = 80
	BreakpointWide    = 120
)

// LayoutMode represents the responsive layout mode based on terminal width.
type LayoutMode int

const (
	LayoutCompact LayoutMode = iota
	LayoutStandard
	LayoutWide
)

// layoutFor picks a mode for width. Zero means no size message yet.
func layoutFor(width int) LayoutMode {
	switch {
	case width == 0:
		return LayoutStandard
	case width < BreakpointCompact:
		return LayoutCompact
	case width < BreakpointWide:
		return LayoutStandard
	default:
		return LayoutWide
	}
}

// barWidth and sparkWidth size the per-resource columns; compact drops the sparkline.
func (l LayoutMode) barWidth() int {
	if l == LayoutWide {
		return 30
	}
	return 20
}

func (l LayoutMode) sparkWidth() int {
	switch l {
	case LayoutCompact:
		return 0
	case LayoutWide:
		return 40
	default:
		return 20
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(ui.ColorAccent).
			Bold(true)

	liveStyle = lipgloss.NewStyle().
			Foreground(ui.ColorSuccess)

	pausedStyle = lipgloss.NewStyle().
			Foreground(ui.ColorWarning).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(ui.ColorPrimary).
			Width(9)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	alertStyle = lipgloss.NewStyle().
			Foreground(ui.ColorWarning)

	okStyle = lipgloss.NewStyle().
			Foreground(ui.ColorSuccess)

	errorStyle = lipgloss.NewStyle().
			Foreground(ui.ColorError)

	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorAccent).
			Padding(1, 2)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(ui.ColorPrimary).
			Bold(true).
			Width(14)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(ui.ColorSecondary)
)
