// Package cli implements the corebase command-line interface.
//
// Every command is a cobra.Command built by a method on app, which carries
// the global flags and the process collaborators (output streams, the
// transport and sampler factories). Tests build an app with buffers and
// fakes and drive it through run, exactly as Execute does.
//
// # Command Structure
//
//	corebase version            - Print build information
//	corebase sample             - Take one resource snapshot
//	corebase watch              - Live dashboard or plain line stream
//	corebase connect <addr>     - Open a connection, optionally send/receive
//	corebase config init|show   - Create or print .corebase.yaml
//	corebase config get|set|keys - Read and write the settings store
//	corebase completion <shell> - Generate completion scripts
//
// # Global Flags
//
// --config selects the config file (otherwise the search order in
// config.Find applies), --json switches every command to the JSON envelope
// defined in json.go, and --verbose lowers the log level to debug.
//
// # Sessions
//
// Commands that touch the network or the monitor open a session: config is
// loaded and validated, a zap logger is built from the log section, and a
// core.Facade is created over a runtime.Service. Closing the session closes
// every connection and shuts the service down.
package cli
