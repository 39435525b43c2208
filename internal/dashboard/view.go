package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/seregonwar/CoreBaseApplication/internal/monitor"
	"github.com/seregonwar/CoreBaseApplication/internal/ui"
)

var resourceLabels = map[monitor.Resource]string{
	monitor.ResourceCPU:     "CPU",
	monitor.ResourceMemory:  "Memory",
	monitor.ResourceDisk:    "Disk",
	monitor.ResourceNetwork: "Network",
	monitor.ResourceGPU:     "GPU",
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n\n")

	if m.samples == 0 && !m.done {
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Waiting for the first sample...\n")
	} else {
		sb.WriteString(m.renderResources())
		sb.WriteString("\n")
		sb.WriteString(m.renderAlerts())
	}

	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(ui.SymbolFail + " " + m.err.Error()))
		sb.WriteString("\n")
	} else if m.done {
		sb.WriteString("\n")
		sb.WriteString(mutedStyle.Render("Monitoring stopped."))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.renderFooter())
	return sb.String()
}

func (m Model) renderHeader() string {
	status := liveStyle.Render(ui.SymbolActive + " live")
	if m.paused {
		status = pausedStyle.Render("paused")
	}

	header := titleStyle.Render("CoreBase resource monitor") + "  " + status
	if !m.lastUpdate.IsZero() {
		header += mutedStyle.Render("  updated " + humanize.Time(m.lastUpdate))
	}
	return header
}

func (m Model) renderResources() string {
	layout := layoutFor(m.width)
	barWidth := layout.barWidth()
	sparkWidth := layout.sparkWidth()

	var lines []string
	for _, r := range monitor.Resources {
		if !m.policy.Enabled(r) {
			continue
		}
		threshold := m.policy.Threshold(r)

		line := labelStyle.Render(resourceLabels[r]) +
			ui.RenderProgressBar(m.snapshot.Percent(r), barWidth, threshold)

		if sparkWidth > 0 {
			if series := m.history.Series(r, sparkWidth); len(series) > 0 {
				line += "  " + ui.RenderSparkline(series, sparkWidth, threshold)
			}
		}
		if detail := m.resourceDetail(r, layout); detail != "" {
			line += "  " + mutedStyle.Render(detail)
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return mutedStyle.Render("All resources are disabled in the monitor policy.") + "\n"
	}
	return strings.Join(lines, "\n") + "\n"
}

// resourceDetail shows byte counts for memory and disk outside compact mode.
func (m Model) resourceDetail(r monitor.Resource, layout LayoutMode) string {
	if layout == LayoutCompact {
		return ""
	}
	switch r {
	case monitor.ResourceMemory:
		return bytesOf(m.snapshot.UsedMemory(), m.snapshot.TotalMemory)
	case monitor.ResourceDisk:
		return bytesOf(m.snapshot.UsedDisk(), m.snapshot.TotalDisk)
	default:
		return ""
	}
}

func bytesOf(used, total float64) string {
	if total <= 0 {
		return ""
	}
	return humanize.IBytes(uint64(max(used, 0))) + " / " + humanize.IBytes(uint64(total))
}

func (m Model) renderAlerts() string {
	if len(m.alerts) == 0 {
		return okStyle.Render(ui.SymbolSuccess+" All resources within thresholds") + "\n"
	}

	var sb strings.Builder
	for _, alert := range m.alerts {
		sb.WriteString(alertStyle.Render(ui.SymbolWarning + " " + alert))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) renderFooter() string {
	var parts []string
	for _, b := range keys.shortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	history := fmt.Sprintf("history %d/%d", m.history.Len(), m.history.Cap())
	return mutedStyle.Render(strings.Join(parts, " • ") + "  |  " + history)
}

// renderHelp renders a centered box listing the key bindings.
func (m Model) renderHelp() string {
	lines := []string{titleStyle.Render("Keyboard Shortcuts"), ""}
	for _, b := range helpBindings {
		lines = append(lines, helpKeyStyle.Render(b.Key)+helpDescStyle.Render(b.Desc))
	}
	lines = append(lines, "", mutedStyle.Render("Press ? to close"))

	box := helpBoxStyle.Render(strings.Join(lines, "\n"))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
