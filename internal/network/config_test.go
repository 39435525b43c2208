package network

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConnectionConfig(t *testing.T) {
	c := DefaultConnectionConfig()

	assert.Equal(t, "localhost", c.Host)
	assert.Equal(t, uint16(8080), c.Port)
	assert.Equal(t, ProtocolTCP, c.Protocol)
	assert.Equal(t, 5000*time.Millisecond, c.Timeout)
	assert.Equal(t, uint32(3), c.MaxRetries)
	assert.Equal(t, 1000*time.Millisecond, c.RetryDelay)
	assert.False(t, c.UseTLS)
	assert.True(t, c.VerifyTLS)
	assert.Nil(t, c.Credentials)
	assert.Empty(t, c.Headers)
	assert.Empty(t, c.Params)
	assert.False(t, c.BinaryPayloads)
}

func TestProtocolConstructors(t *testing.T) {
	tests := []struct {
		name     string
		cfg      ConnectionConfig
		protocol Protocol
		tls      bool
	}{
		{"tcp", TCP("db", 5432), ProtocolTCP, false},
		{"udp", UDP("dns", 53), ProtocolUDP, false},
		{"http", HTTP("api", 80), ProtocolHTTP, false},
		{"https", HTTPS("api", 443), ProtocolHTTPS, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.protocol, tt.cfg.Protocol)
			assert.Equal(t, tt.tls, tt.cfg.UseTLS)
			assert.True(t, tt.cfg.VerifyTLS)
			assert.Equal(t, DefaultTimeout, tt.cfg.Timeout)
		})
	}

	assert.Equal(t, "db:5432", TCP("db", 5432).Address())
	assert.Equal(t, "[::1]:9000", TCP("::1", 9000).Address())
}

func TestBuildersReturnCopies(t *testing.T) {
	base := TCP("example.com", 80)

	derived := base.
		WithTimeout(30*time.Second).
		WithAuth("user", "pass").
		WithHeader("Content-Type", "application/json").
		WithParam("path", "/ws").
		WithRetries(5, 2*time.Second).
		WithTLS(false).
		WithBinaryPayloads()

	assert.Equal(t, 30*time.Second, derived.Timeout)
	require.NotNil(t, derived.Credentials)
	assert.Equal(t, "user", derived.Credentials.Username)
	assert.Equal(t, "pass", derived.Credentials.Password)
	assert.Equal(t, "application/json", derived.Headers["Content-Type"])
	assert.Equal(t, "/ws", derived.Params["path"])
	assert.Equal(t, uint32(5), derived.MaxRetries)
	assert.Equal(t, 2*time.Second, derived.RetryDelay)
	assert.True(t, derived.UseTLS)
	assert.False(t, derived.VerifyTLS)
	assert.True(t, derived.BinaryPayloads)

	// The base must be untouched.
	assert.Equal(t, DefaultTimeout, base.Timeout)
	assert.Nil(t, base.Credentials)
	assert.Empty(t, base.Headers)
	assert.Empty(t, base.Params)
	assert.False(t, base.UseTLS)
	assert.False(t, base.BinaryPayloads)
}

func TestBuildersDoNotShareMaps(t *testing.T) {
	a := TCP("h", 1).WithHeader("k", "1")
	b := a.WithHeader("k", "2")
	c := a.WithAuth("u", "p")
	d := c.WithAuth("other", "x")

	assert.Equal(t, "1", a.Headers["k"])
	assert.Equal(t, "2", b.Headers["k"])
	assert.Equal(t, "u", c.Credentials.Username)
	assert.Equal(t, "other", d.Credentials.Username)
}

func TestProtocolFromCode(t *testing.T) {
	tests := []struct {
		code int
		want Protocol
	}{
		{0, ProtocolTCP},
		{1, ProtocolUDP},
		{2, ProtocolHTTP},
		{3, ProtocolHTTPS},
		{4, ProtocolWebSocket},
		{5, ProtocolMQTT},
		{6, ProtocolAMQP},
		{7, ProtocolGRPC},
		{8, ProtocolCustom},
		{9, ProtocolTCP},
		{-1, ProtocolTCP},
		{999, ProtocolTCP},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ProtocolFromCode(tt.code), "code %d", tt.code)
	}

	for p := ProtocolTCP; p <= ProtocolCustom; p++ {
		assert.Equal(t, p, ProtocolFromCode(p.Code()))
	}
}

func TestParseProtocol(t *testing.T) {
	tests := []struct {
		in   string
		want Protocol
		ok   bool
	}{
		{"tcp", ProtocolTCP, true},
		{"UDP", ProtocolUDP, true},
		{" https ", ProtocolHTTPS, true},
		{"ws", ProtocolWebSocket, true},
		{"wss", ProtocolWebSocket, true},
		{"websocket", ProtocolWebSocket, true},
		{"grpc", ProtocolGRPC, true},
		{"custom", ProtocolCustom, true},
		{"carrier-pigeon", ProtocolTCP, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseProtocol(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}

	assert.Equal(t, "mqtt", ProtocolMQTT.String())
	assert.Equal(t, "tcp", Protocol(42).String())
}
