package network

import (
	"net"
	"strconv"
	"strings"
	"time"
)

// Protocol identifies the wire protocol a connection speaks.
// The numeric values are stable external codes.
type Protocol int

const (
	ProtocolTCP Protocol = iota
	ProtocolUDP
	ProtocolHTTP
	ProtocolHTTPS
	ProtocolWebSocket
	ProtocolMQTT
	ProtocolAMQP
	ProtocolGRPC
	ProtocolCustom
)

var protocolNames = []string{"tcp", "udp", "http", "https", "websocket", "mqtt", "amqp", "grpc", "custom"}

// ProtocolFromCode converts an external protocol code. Unknown codes map to TCP.
func ProtocolFromCode(code int) Protocol {
	if code < int(ProtocolTCP) || code > int(ProtocolCustom) {
		return ProtocolTCP
	}
	return Protocol(code)
}

// ParseProtocol maps a protocol name ("tcp", "ws", "grpc", ...) to a Protocol.
func ParseProtocol(s string) (Protocol, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "ws" || s == "wss" {
		return ProtocolWebSocket, true
	}
	for i, name := range protocolNames {
		if name == s {
			return Protocol(i), true
		}
	}
	return ProtocolTCP, false
}

// Code returns the external numeric code.
func (p Protocol) Code() int {
	return int(p)
}

func (p Protocol) String() string {
	if p < ProtocolTCP || p > ProtocolCustom {
		return "tcp"
	}
	return protocolNames[p]
}

// Credentials holds basic authentication details.
type Credentials struct {
	Username string
	Password string
}

// ConnectionConfig describes how to open a connection.
// Methods prefixed with With return a modified copy and never mutate the receiver.
type ConnectionConfig struct {
	Host       string
	Port       uint16
	Protocol   Protocol
	Timeout    time.Duration
	MaxRetries uint32
	RetryDelay time.Duration
	UseTLS     bool
	VerifyTLS  bool

	// Credentials is nil when no authentication is configured.
	Credentials *Credentials
	Headers     map[string]string
	Params      map[string]string

	// BinaryPayloads disables the UTF-8 check on outgoing messages.
	BinaryPayloads bool
}

// Defaults applied by DefaultConnectionConfig.
const (
	DefaultHost       = "localhost"
	DefaultPort       = 8080
	DefaultTimeout    = 5000 * time.Millisecond
	DefaultMaxRetries = 3
	DefaultRetryDelay = 1000 * time.Millisecond
)

// DefaultConnectionConfig returns the baseline configuration every constructor starts from.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		Host:       DefaultHost,
		Port:       DefaultPort,
		Protocol:   ProtocolTCP,
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
		UseTLS:     false,
		VerifyTLS:  true,
		Headers:    map[string]string{},
		Params:     map[string]string{},
	}
}

func newConfig(host string, port uint16, p Protocol) ConnectionConfig {
	c := DefaultConnectionConfig()
	c.Host = host
	c.Port = port
	c.Protocol = p
	return c
}

// TCP returns a TCP configuration for host:port.
func TCP(host string, port uint16) ConnectionConfig {
	return newConfig(host, port, ProtocolTCP)
}

// UDP returns a UDP configuration for host:port.
func UDP(host string, port uint16) ConnectionConfig {
	return newConfig(host, port, ProtocolUDP)
}

// HTTP returns a plain HTTP configuration for host:port.
func HTTP(host string, port uint16) ConnectionConfig {
	return newConfig(host, port, ProtocolHTTP)
}

// HTTPS returns an HTTPS configuration for host:port with TLS enabled.
func HTTPS(host string, port uint16) ConnectionConfig {
	c := newConfig(host, port, ProtocolHTTPS)
	c.UseTLS = true
	return c
}

// clone returns a copy whose maps and credentials are not shared with c.
func (c ConnectionConfig) clone() ConnectionConfig {
	out := c
	out.Headers = copyMap(c.Headers)
	out.Params = copyMap(c.Params)
	if c.Credentials != nil {
		creds := *c.Credentials
		out.Credentials = &creds
	}
	return out
}

// WithTimeout returns a copy with the given connect timeout.
func (c ConnectionConfig) WithTimeout(d time.Duration) ConnectionConfig {
	out := c.clone()
	out.Timeout = d
	return out
}

// WithRetries returns a copy with the given retry count and delay.
func (c ConnectionConfig) WithRetries(n uint32, delay time.Duration) ConnectionConfig {
	out := c.clone()
	out.MaxRetries = n
	out.RetryDelay = delay
	return out
}

// WithAuth returns a copy carrying basic auth credentials.
func (c ConnectionConfig) WithAuth(username, password string) ConnectionConfig {
	out := c.clone()
	out.Credentials = &Credentials{Username: username, Password: password}
	return out
}

// WithHeader returns a copy with header k set to v.
func (c ConnectionConfig) WithHeader(k, v string) ConnectionConfig {
	out := c.clone()
	out.Headers[k] = v
	return out
}

// WithParam returns a copy with custom parameter k set to v.
func (c ConnectionConfig) WithParam(k, v string) ConnectionConfig {
	out := c.clone()
	out.Params[k] = v
	return out
}

// WithTLS returns a copy with TLS enabled and the given verification policy.
func (c ConnectionConfig) WithTLS(verify bool) ConnectionConfig {
	out := c.clone()
	out.UseTLS = true
	out.VerifyTLS = verify
	return out
}

// WithBinaryPayloads returns a copy that accepts non UTF-8 message payloads.
func (c ConnectionConfig) WithBinaryPayloads() ConnectionConfig {
	out := c.clone()
	out.BinaryPayloads = true
	return out
}

// Address returns host:port suitable for net.Dial.
func (c ConnectionConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port)))
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
