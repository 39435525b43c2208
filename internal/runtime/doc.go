// Package runtime owns the process lifetime of the CoreBase subsystems.
//
// A Service is created once by the entry point and injected wherever
// initialization state matters. Initialize and Shutdown are idempotent and
// guarded by a single atomic flag, so repeated calls are cheap and safe from
// any goroutine.
//
// ErrorHandler routes errors to the log sink at the severity their kind maps
// to, and fans them out to registered callbacks.
package runtime
