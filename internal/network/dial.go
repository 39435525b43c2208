package network

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/seregonwar/CoreBaseApplication/internal/errors"
	"github.com/seregonwar/CoreBaseApplication/internal/logger"
	"golang.org/x/time/rate"
)

// stream is the minimal read/write surface shared by sockets and websockets.
type stream interface {
	write(p []byte) error
	read(buf []byte) (int, error)
	close() error
}

// DialTransport opens real network channels.
//
// TCP-based protocols (TCP, HTTP, HTTPS, MQTT, AMQP, gRPC, Custom) get a raw
// byte stream, wrapped in TLS when the config asks for it. UDP gets a
// connected datagram socket. WebSocket is dialed with a proper handshake
// and exchanges one message per Send/Receive.
type DialTransport struct {
	mu      sync.Mutex
	streams map[ConnectionID]stream
	log     logger.Logger
}

// NewDialTransport creates a transport with no open channels.
func NewDialTransport(log logger.Logger) *DialTransport {
	if log == nil {
		log = logger.Noop()
	}
	return &DialTransport{
		streams: make(map[ConnectionID]stream),
		log:     log,
	}
}

// Open dials cfg, retrying up to cfg.MaxRetries times spaced by cfg.RetryDelay.
func (t *DialTransport) Open(cfg ConnectionConfig) (ConnectionID, error) {
	// The limiter starts with one token; spend it so the first retry waits a full delay.
	limiter := rate.NewLimiter(rate.Every(cfg.RetryDelay), 1)
	limiter.Allow()

	ctx := context.Background()
	var lastErr error
	for attempt := 0; attempt <= int(cfg.MaxRetries); attempt++ {
		if attempt > 0 {
			if err := limiter.Wait(ctx); err != nil {
				break
			}
			t.log.Debug("retrying %s (attempt %d/%d): %v", cfg.Address(), attempt, cfg.MaxRetries, lastErr)
		}

		s, err := t.dial(ctx, cfg)
		if err != nil {
			lastErr = err
			continue
		}

		id := ConnectionID(uuid.NewString())
		t.mu.Lock()
		t.streams[id] = s
		t.mu.Unlock()
		t.log.Debug("opened %s connection %s to %s", cfg.Protocol, id, cfg.Address())
		return id, nil
	}

	return "", errors.WrapWithCode(lastErr, errors.ErrNetwork,
		fmt.Sprintf("Can't reach %s over %s", cfg.Address(), cfg.Protocol),
		"Check the host is reachable and the port is open")
}

func (t *DialTransport) dial(ctx context.Context, cfg ConnectionConfig) (stream, error) {
	dialer := &net.Dialer{Timeout: cfg.Timeout}
	tlsConfig := &tls.Config{
		ServerName:         cfg.Host,
		InsecureSkipVerify: !cfg.VerifyTLS,
	}

	switch cfg.Protocol {
	case ProtocolUDP:
		conn, err := dialer.DialContext(ctx, "udp", cfg.Address())
		if err != nil {
			return nil, err
		}
		return &netStream{conn: conn}, nil

	case ProtocolWebSocket:
		return dialWebSocket(cfg, tlsConfig)

	default:
		if cfg.UseTLS || cfg.Protocol == ProtocolHTTPS {
			td := &tls.Dialer{NetDialer: dialer, Config: tlsConfig}
			conn, err := td.DialContext(ctx, "tcp", cfg.Address())
			if err != nil {
				return nil, err
			}
			return &netStream{conn: conn}, nil
		}
		conn, err := dialer.DialContext(ctx, "tcp", cfg.Address())
		if err != nil {
			return nil, err
		}
		return &netStream{conn: conn}, nil
	}
}

func dialWebSocket(cfg ConnectionConfig, tlsConfig *tls.Config) (stream, error) {
	scheme := "ws"
	if cfg.UseTLS {
		scheme = "wss"
	}
	path := cfg.Params["path"]
	if path == "" {
		path = "/"
	}
	u := url.URL{Scheme: scheme, Host: cfg.Address(), Path: path}

	header := http.Header{}
	for k, v := range cfg.Headers {
		header.Set(k, v)
	}
	if cfg.Credentials != nil {
		token := base64.StdEncoding.EncodeToString([]byte(cfg.Credentials.Username + ":" + cfg.Credentials.Password))
		header.Set("Authorization", "Basic "+token)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: cfg.Timeout,
		TLSClientConfig:  tlsConfig,
	}
	conn, resp, err := dialer.Dial(u.String(), header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}
	return &wsStream{conn: conn}, nil
}

func (t *DialTransport) lookup(id ConnectionID) (stream, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.streams[id]
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "no open channel %s", id)
	}
	return s, nil
}

// Send writes payload on the channel identified by id.
func (t *DialTransport) Send(id ConnectionID, payload []byte) error {
	s, err := t.lookup(id)
	if err != nil {
		return err
	}
	return s.write(payload)
}

// Receive reads into buf and NUL-terminates the payload when there is room.
func (t *DialTransport) Receive(id ConnectionID, buf []byte) (int, error) {
	s, err := t.lookup(id)
	if err != nil {
		return 0, err
	}
	n, err := s.read(buf)
	if err != nil {
		return 0, err
	}
	if n < len(buf) {
		buf[n] = 0
	}
	return n, nil
}

// Close releases the channel and forgets id.
func (t *DialTransport) Close(id ConnectionID) error {
	t.mu.Lock()
	s, ok := t.streams[id]
	delete(t.streams, id)
	t.mu.Unlock()

	if !ok {
		return errors.Newf(errors.ErrNotFound, "no open channel %s", id)
	}
	return s.close()
}

// OpenCount returns the number of channels currently open.
func (t *DialTransport) OpenCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.streams)
}

type netStream struct {
	conn net.Conn
}

func (s *netStream) write(p []byte) error {
	_, err := s.conn.Write(p)
	return err
}

func (s *netStream) read(buf []byte) (int, error) {
	return s.conn.Read(buf)
}

func (s *netStream) close() error {
	return s.conn.Close()
}

// wsStream serializes writers and readers separately: the websocket
// connection allows one of each at a time.
type wsStream struct {
	writeMu sync.Mutex
	readMu  sync.Mutex
	conn    *websocket.Conn
}

func (s *wsStream) write(p []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	kind := websocket.BinaryMessage
	if utf8.Valid(p) {
		kind = websocket.TextMessage
	}
	return s.conn.WriteMessage(kind, p)
}

// read copies one websocket message into buf, truncating anything that does not fit.
// A read abandoned by ReceiveWithTimeout still holds readMu, so the next read
// waits for it and gets the message after the one it consumes.
func (s *wsStream) read(buf []byte) (int, error) {
	s.readMu.Lock()
	defer s.readMu.Unlock()
	_, data, err := s.conn.ReadMessage()
	if err != nil {
		return 0, err
	}
	return copy(buf, data), nil
}

func (s *wsStream) close() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	deadline := time.Now().Add(time.Second)
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	return s.conn.Close()
}
