// Package ui renders terminal output for the corebase CLI.
//
// Everything here is plain string rendering styled with Lip Gloss; the
// interactive dashboard lives in internal/dashboard and builds on these
// pieces.
//
// # Components
//
//	RenderProgressBar - usage bar coloured against an alert threshold
//	RenderSparkline   - history trend in eight block levels
//	RenderTable       - aligned columns for one-shot command output
//	RenderHeader      - branded title line with version
//
// # Colour
//
// Colours are ANSI codes so they degrade well on limited terminals. Usage is
// coloured relative to the configured threshold: green below 75% of it,
// amber up to it, red above it. ConfigureColor picks the colour profile from
// the environment and whether stdout is a terminal; DisableColors forces
// monochrome for --no-color and JSON output.
package ui
