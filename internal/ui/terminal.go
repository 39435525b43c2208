package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the column count of w, or fallback when it isn't a terminal.
func TerminalWidth(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// ConfigureColor sets the global colour profile for output written to w.
// NO_COLOR, CLICOLOR_FORCE and friends are honoured; output that isn't a
// terminal gets no colour unless forced.
func ConfigureColor(w io.Writer) termenv.Profile {
	var profile termenv.Profile
	switch {
	case termenv.EnvNoColor():
		profile = termenv.Ascii
	case IsTerminal(w):
		profile = termenv.EnvColorProfile()
	case os.Getenv("CLICOLOR_FORCE") != "" && os.Getenv("CLICOLOR_FORCE") != "0":
		profile = termenv.ANSI256
	default:
		profile = termenv.Ascii
	}
	lipgloss.SetColorProfile(profile)
	return profile
}

// DisableColors switches all rendering to monochrome.
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
