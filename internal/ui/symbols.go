package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓" // Operation succeeded
	SymbolFail    = "✗" // Operation failed
	SymbolWarning = "⚠" // Threshold exceeded
	SymbolPending = "○" // Not sampled / disabled
	SymbolActive  = "●" // Live connection or enabled resource
	SymbolArrow   = "→" // Outgoing message
)
