package ui

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestRenderTable(t *testing.T) {
	withProfile(t, termenv.Ascii)

	out := RenderTable(
		[]string{"RESOURCE", "USAGE", "THRESHOLD"},
		[][]string{
			{"cpu", "12.0%", "80.0%"},
			{"memory", "75.0%", "85.0%"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, []string{
		"RESOURCE  USAGE  THRESHOLD",
		strings.Repeat("─", 26),
		"cpu       12.0%  80.0%",
		"memory    75.0%  85.0%",
	}, lines)
}

func TestRenderTable_ShortRowsAndStyledCells(t *testing.T) {
	withProfile(t, termenv.Ascii)

	out := RenderTable([]string{"A", "B"}, [][]string{{"x"}, {"long", "y"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "x", lines[2])
	assert.Equal(t, "long  y", lines[3])

	assert.Empty(t, RenderTable([]string{"A"}, nil))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "abcdef", padRight("abcdef", 4))
}
