package ui

import (
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestRenderProgressBar(t *testing.T) {
	withProfile(t, termenv.Ascii)

	tests := []struct {
		name    string
		percent float64
		width   int
		want    string
	}{
		{"zero", 0, 4, "[░░░░]   0%"},
		{"half", 50, 4, "[██░░]  50%"},
		{"full", 100, 4, "[████] 100%"},
		{"rounds down cells", 74, 4, "[██░░]  74%"},
		{"clamps high", 150, 4, "[████] 100%"},
		{"clamps low", -5, 4, "[░░░░]   0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderProgressBar(tt.percent, tt.width, 80))
		})
	}

	assert.Empty(t, RenderProgressBar(50, 0, 80))
}
