package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/seregonwar/CoreBaseApplication/internal/ui"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(ui.ColorWarning)
	mutedStyle   = lipgloss.NewStyle().Foreground(ui.ColorMuted)
)

func printSuccess(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, successStyle.Render(ui.SymbolSuccess+" "+fmt.Sprintf(format, args...)))
}

func printWarning(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, warningStyle.Render(ui.SymbolWarning+" "+fmt.Sprintf(format, args...)))
}

func printMuted(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf(format, args...)))
}
