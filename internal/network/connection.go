package network

import (
	"bytes"
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/seregonwar/CoreBaseApplication/internal/errors"
)

// ConnectionID identifies a connection opened by a Transport.
// It is unique for the lifetime of the process.
type ConnectionID string

func (id ConnectionID) String() string {
	return string(id)
}

// ConnectionState is the lifecycle state recorded for a connection.
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
	StateDisconnecting
	StateError
)

func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnecting:
		return "disconnecting"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

const (
	// ReceiveBufferSize bounds a single Receive.
	ReceiveBufferSize = 4096
	// DefaultOperationTimeout applies to SendWithTimeout and ReceiveWithTimeout when no timeout is given.
	DefaultOperationTimeout = 5 * time.Second
)

// Connection is a handle to an open transport channel.
// Handles are values: the State of a copy is not updated when the registry changes.
type Connection struct {
	ID     ConnectionID
	Config ConnectionConfig
	State  ConnectionState

	transport Transport
}

// Send writes msg to the transport.
// Unless the connection was configured for binary payloads, the payload must be valid UTF-8.
func (c Connection) Send(msg Message) error {
	if !c.Config.BinaryPayloads && !utf8.Valid(msg.Payload) {
		return errors.New(errors.ErrNetwork,
			"Invalid message data: payload is not valid UTF-8",
			"Enable binary payloads on the connection config to send raw bytes")
	}
	if err := c.transport.Send(c.ID, msg.Payload); err != nil {
		return errors.WrapWithCode(err, errors.ErrNetwork,
			fmt.Sprintf("Failed to send message on %s", c.ID), "")
	}
	return nil
}

// Receive reads one message. On text connections the payload ends at the first
// NUL byte in the buffer; binary connections keep all n bytes the transport read.
// Topic, headers and sender are never populated.
func (c Connection) Receive() (Message, error) {
	buf := make([]byte, ReceiveBufferSize)
	n, err := c.transport.Receive(c.ID, buf)
	if err != nil {
		return Message{}, errors.WrapWithCode(err, errors.ErrNetwork,
			fmt.Sprintf("Failed to receive message on %s", c.ID), "")
	}
	if n < 0 || n > len(buf) {
		n = len(buf)
	}
	data := buf[:n]
	if i := bytes.IndexByte(data, 0); i >= 0 && !c.Config.BinaryPayloads {
		data = data[:i]
	}
	return Message{
		Payload:   data,
		Headers:   map[string]string{},
		Timestamp: time.Now().Unix(),
	}, nil
}

// Close releases the transport resource. It does not remove the connection from any Registry.
func (c Connection) Close() error {
	if err := c.transport.Close(c.ID); err != nil {
		return errors.WrapWithCode(err, errors.ErrNetwork,
			fmt.Sprintf("Failed to close connection %s", c.ID), "")
	}
	return nil
}

// SendWithTimeout is Send bounded by d (DefaultOperationTimeout when d <= 0) and ctx.
// On timeout the send may still complete in the background; its result is discarded.
func (c Connection) SendWithTimeout(ctx context.Context, msg Message, d time.Duration) error {
	_, err := withTimeout(ctx, d, "send", func() (struct{}, error) {
		return struct{}{}, c.Send(msg)
	})
	return err
}

// ReceiveWithTimeout is Receive bounded by d (DefaultOperationTimeout when d <= 0) and ctx.
func (c Connection) ReceiveWithTimeout(ctx context.Context, d time.Duration) (Message, error) {
	return withTimeout(ctx, d, "receive", c.Receive)
}

// withTimeout races fn against d and ctx.
func withTimeout[T any](ctx context.Context, d time.Duration, op string, fn func() (T, error)) (T, error) {
	if d <= 0 {
		d = DefaultOperationTimeout
	}

	type result struct {
		val T
		err error
	}
	resultCh := make(chan result, 1)

	go func() {
		v, err := fn()
		resultCh <- result{v, err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	var zero T
	select {
	case r := <-resultCh:
		return r.val, r.err
	case <-timer.C:
		return zero, errors.New(errors.ErrTimeout,
			fmt.Sprintf("%s did not complete within %s", op, d), "")
	case <-ctx.Done():
		return zero, errors.WrapWithCode(ctx.Err(), errors.ErrTimeout,
			fmt.Sprintf("%s cancelled", op), "")
	}
}
