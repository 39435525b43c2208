// Package testing provides test doubles for the network package.
package testing

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/seregonwar/CoreBaseApplication/internal/network"
)

// ErrForced is returned by operations configured to fail.
var ErrForced = errors.New("forced failure")

// FakeTransport simulates a transport in memory.
// Ids are assigned sequentially as "conn-1", "conn-2", and so on.
type FakeTransport struct {
	mu     sync.Mutex
	nextID int
	open   map[network.ConnectionID]network.ConnectionConfig
	inbox  map[network.ConnectionID][][]byte
	sent   map[network.ConnectionID][][]byte

	failOpen    map[string]bool
	failSend    map[network.ConnectionID]bool
	failReceive map[network.ConnectionID]bool
	failClose   map[network.ConnectionID]bool

	// Delays simulate slow operations for timeout tests.
	OpenDelay    time.Duration
	SendDelay    time.Duration
	ReceiveDelay time.Duration
	CloseDelay   time.Duration

	// Tracking for assertions
	OpenCalls  int
	CloseCalls int
}

// NewFakeTransport creates an empty fake transport.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{
		open:        make(map[network.ConnectionID]network.ConnectionConfig),
		inbox:       make(map[network.ConnectionID][][]byte),
		sent:        make(map[network.ConnectionID][][]byte),
		failOpen:    make(map[string]bool),
		failSend:    make(map[network.ConnectionID]bool),
		failReceive: make(map[network.ConnectionID]bool),
		failClose:   make(map[network.ConnectionID]bool),
	}
}

// FailOpen makes Open fail for configs targeting host.
func (f *FakeTransport) FailOpen(host string) *FakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failOpen[host] = true
	return f
}

// FailSend makes Send fail for id.
func (f *FakeTransport) FailSend(id network.ConnectionID) *FakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failSend[id] = true
	return f
}

// FailReceive makes Receive fail for id.
func (f *FakeTransport) FailReceive(id network.ConnectionID) *FakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failReceive[id] = true
	return f
}

// FailClose makes Close fail for id.
func (f *FakeTransport) FailClose(id network.ConnectionID) *FakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failClose[id] = true
	return f
}

// AllowClose clears a FailClose setting.
func (f *FakeTransport) AllowClose(id network.ConnectionID) *FakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.failClose, id)
	return f
}

// QueueReceive adds raw bytes that the next Receive on id will deliver.
func (f *FakeTransport) QueueReceive(id network.ConnectionID, data []byte) *FakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inbox[id] = append(f.inbox[id], append([]byte(nil), data...))
	return f
}

// Sent returns the payloads written to id, in order.
func (f *FakeTransport) Sent(id network.ConnectionID) [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]byte, len(f.sent[id]))
	copy(out, f.sent[id])
	return out
}

// IsOpen reports whether id has been opened and not yet closed.
func (f *FakeTransport) IsOpen(id network.ConnectionID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.open[id]
	return ok
}

// OpenCount returns the number of channels currently open.
func (f *FakeTransport) OpenCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.open)
}

// Open implements network.Transport.
func (f *FakeTransport) Open(cfg network.ConnectionConfig) (network.ConnectionID, error) {
	if f.OpenDelay > 0 {
		time.Sleep(f.OpenDelay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.OpenCalls++
	if f.failOpen[cfg.Host] {
		return "", fmt.Errorf("open %s: %w", cfg.Address(), ErrForced)
	}

	f.nextID++
	id := network.ConnectionID(fmt.Sprintf("conn-%d", f.nextID))
	f.open[id] = cfg
	return id, nil
}

// Send implements network.Transport.
func (f *FakeTransport) Send(id network.ConnectionID, payload []byte) error {
	if f.SendDelay > 0 {
		time.Sleep(f.SendDelay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.open[id]; !ok {
		return fmt.Errorf("send on closed channel %s", id)
	}
	if f.failSend[id] {
		return fmt.Errorf("send %s: %w", id, ErrForced)
	}
	f.sent[id] = append(f.sent[id], append([]byte(nil), payload...))
	return nil
}

// Receive implements network.Transport.
// Queued data larger than buf is truncated; a NUL byte follows the payload when room remains.
func (f *FakeTransport) Receive(id network.ConnectionID, buf []byte) (int, error) {
	if f.ReceiveDelay > 0 {
		time.Sleep(f.ReceiveDelay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.open[id]; !ok {
		return 0, fmt.Errorf("receive on closed channel %s", id)
	}
	if f.failReceive[id] {
		return 0, fmt.Errorf("receive %s: %w", id, ErrForced)
	}
	queue := f.inbox[id]
	if len(queue) == 0 {
		return 0, fmt.Errorf("receive %s: nothing queued", id)
	}
	data := queue[0]
	f.inbox[id] = queue[1:]

	n := copy(buf, data)
	if n < len(buf) {
		buf[n] = 0
	}
	return n, nil
}

// Close implements network.Transport.
func (f *FakeTransport) Close(id network.ConnectionID) error {
	if f.CloseDelay > 0 {
		time.Sleep(f.CloseDelay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.CloseCalls++
	if f.failClose[id] {
		return fmt.Errorf("close %s: %w", id, ErrForced)
	}
	if _, ok := f.open[id]; !ok {
		return fmt.Errorf("close unknown channel %s", id)
	}
	delete(f.open, id)
	return nil
}
