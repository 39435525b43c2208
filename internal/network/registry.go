package network

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/seregonwar/CoreBaseApplication/internal/errors"
	"github.com/seregonwar/CoreBaseApplication/internal/logger"
	"github.com/seregonwar/CoreBaseApplication/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// DefaultBroadcastConcurrency bounds the number of sends in flight during Broadcast.
const DefaultBroadcastConcurrency = 8

// Registry tracks open connections by id.
// A single mutex guards the map; transport calls run outside it.
type Registry struct {
	mu          sync.Mutex
	connections map[ConnectionID]*Connection

	transport   Transport
	log         logger.Logger
	metrics     *metrics.Metrics
	concurrency int
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for swallowed failures and lifecycle events.
func WithLogger(l logger.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithMetrics records registry activity on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// WithBroadcastConcurrency bounds concurrent sends during Broadcast.
func WithBroadcastConcurrency(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// NewRegistry creates an empty registry over transport.
func NewRegistry(transport Transport, opts ...Option) *Registry {
	r := &Registry{
		connections: make(map[ConnectionID]*Connection),
		transport:   transport,
		log:         logger.Noop(),
		concurrency: DefaultBroadcastConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create opens a connection through the transport and registers it as Connected.
// On failure the registry is unchanged.
func (r *Registry) Create(cfg ConnectionConfig) (Connection, error) {
	cfg = cfg.clone()

	// Open outside the lock: it can take as long as the dial timeout.
	id, err := r.transport.Open(cfg)
	if err != nil {
		r.metrics.ObserveConnectionOp("create", err)
		if errors.IsCode(err, errors.ErrNetwork) {
			return Connection{}, err
		}
		return Connection{}, errors.WrapWithCode(err, errors.ErrNetwork,
			fmt.Sprintf("Failed to create network connection to %s", cfg.Address()), "")
	}

	conn := &Connection{
		ID:        id,
		Config:    cfg,
		State:     StateConnected,
		transport: r.transport,
	}

	r.mu.Lock()
	r.connections[id] = conn
	n := len(r.connections)
	r.mu.Unlock()

	r.metrics.ObserveConnectionOp("create", nil)
	r.metrics.SetOpenConnections(n)
	r.log.Debug("registered %s connection %s to %s", cfg.Protocol, id, cfg.Address())

	return conn.copy(), nil
}

// CreateWithTimeout is Create bounded by cfg.Timeout and ctx.
// If the deadline passes first a Timeout error is returned; a connection
// opened afterwards is still registered and can be found with List.
func (r *Registry) CreateWithTimeout(ctx context.Context, cfg ConnectionConfig) (Connection, error) {
	return withTimeout(ctx, cfg.Timeout, "create connection", func() (Connection, error) {
		return r.Create(cfg)
	})
}

// Get returns a copy of the registered connection.
func (r *Registry) Get(id ConnectionID) (Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.connections[id]
	if !ok {
		return Connection{}, notFound(id)
	}
	return conn.copy(), nil
}

// List returns copies of all registered connections in no particular order.
func (r *Registry) List() []Connection {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Connection, 0, len(r.connections))
	for _, conn := range r.connections {
		out = append(out, conn.copy())
	}
	return out
}

// Count returns the number of registered connections.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.connections)
}

// Close closes the connection and removes it once the transport confirms.
// If the transport fails the entry stays registered so the caller can retry.
// Only one caller reaches the transport; concurrent closes of the same id get NotFound.
func (r *Registry) Close(id ConnectionID) error {
	conn, prev, err := r.claim(id)
	if err != nil {
		return err
	}

	err = conn.Close()
	r.metrics.ObserveConnectionOp("close", err)
	if err != nil {
		r.mu.Lock()
		if c, ok := r.connections[id]; ok {
			c.State = prev
		}
		r.mu.Unlock()
		return err
	}

	r.remove(id)
	return nil
}

// claim marks id as Disconnecting and returns it with its previous state.
func (r *Registry) claim(id ConnectionID) (Connection, ConnectionState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.connections[id]
	if !ok || conn.State == StateDisconnecting {
		return Connection{}, 0, notFound(id)
	}
	prev := conn.State
	conn.State = StateDisconnecting
	return conn.copy(), prev, nil
}

// CloseAll closes every registered connection, continuing past failures.
// Every entry is removed, including those whose transport close failed.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	ids := make([]ConnectionID, 0, len(r.connections))
	for id := range r.connections {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	for _, id := range ids {
		if err := r.Close(id); err != nil {
			if errors.IsCode(err, errors.ErrNotFound) {
				continue
			}
			r.log.Warn("close %s failed, dropping it: %v", id, err)
			r.remove(id)
		}
	}
}

// SendTo sends msg on the connection registered under id.
func (r *Registry) SendTo(id ConnectionID, msg Message) error {
	conn, err := r.Get(id)
	if err != nil {
		return err
	}
	err = conn.Send(msg)
	r.metrics.ObserveConnectionOp("send", err)
	return err
}

// ReceiveFrom receives one message from the connection registered under id.
func (r *Registry) ReceiveFrom(id ConnectionID) (Message, error) {
	conn, err := r.Get(id)
	if err != nil {
		return Message{}, err
	}
	msg, err := conn.Receive()
	r.metrics.ObserveConnectionOp("receive", err)
	return msg, err
}

// Broadcast sends msg to every registered connection and returns the ids whose
// send failed, sorted. Failed connections stay registered.
func (r *Registry) Broadcast(msg Message) []ConnectionID {
	conns := r.List()

	var (
		mu     sync.Mutex
		failed []ConnectionID
		g      errgroup.Group
	)
	g.SetLimit(r.concurrency)

	for _, conn := range conns {
		g.Go(func() error {
			start := time.Now()
			if err := conn.Send(msg); err != nil {
				r.log.Debug("broadcast to %s failed after %s: %v", conn.ID, time.Since(start), err)
				mu.Lock()
				failed = append(failed, conn.ID)
				mu.Unlock()
			}
			// Never return an error: one failed send must not stop the others.
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(failed, func(i, j int) bool { return failed[i] < failed[j] })
	r.metrics.ObserveConnectionOp("broadcast", nil)
	r.metrics.ObserveBroadcastFailures(len(failed))
	return failed
}

func (r *Registry) remove(id ConnectionID) {
	r.mu.Lock()
	delete(r.connections, id)
	n := len(r.connections)
	r.mu.Unlock()

	r.metrics.SetOpenConnections(n)
}

func (c *Connection) copy() Connection {
	out := *c
	out.Config = c.Config.clone()
	return out
}

func notFound(id ConnectionID) error {
	return errors.Newf(errors.ErrNotFound, "Connection not found: %s", id)
}
