package network

// Transport opens and drives the underlying channels the registry tracks.
// All methods are synchronous; callers wanting deadlines use the
// WithTimeout variants on Registry and Connection.
//
// DialTransport is the production implementation. Tests use the fake in
// the network/testing package.
type Transport interface {
	// Open establishes a channel described by cfg and returns its id.
	Open(cfg ConnectionConfig) (ConnectionID, error)

	// Send writes payload on the channel.
	Send(id ConnectionID, payload []byte) error

	// Receive reads the next payload into buf and returns the number of
	// payload bytes. When room remains, a NUL byte follows the payload.
	Receive(id ConnectionID, buf []byte) (int, error)

	// Close releases the channel.
	Close(id ConnectionID) error
}
