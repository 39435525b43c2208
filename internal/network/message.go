package network

import (
	"time"
	"unicode/utf8"

	"github.com/seregonwar/CoreBaseApplication/internal/errors"
)

// Message is a payload exchanged over a connection.
// Topic and Sender are empty when absent.
type Message struct {
	Payload   []byte            `json:"payload" yaml:"payload"`
	Topic     string            `json:"topic,omitempty" yaml:"topic,omitempty"`
	Headers   map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Timestamp int64             `json:"timestamp" yaml:"timestamp"`
	Sender    string            `json:"sender,omitempty" yaml:"sender,omitempty"`
}

// NewTextMessage creates a message whose payload is the UTF-8 bytes of s.
func NewTextMessage(s string) Message {
	return NewBinaryMessage([]byte(s))
}

// NewBinaryMessage creates a message carrying b, stamped with the current time.
func NewBinaryMessage(b []byte) Message {
	payload := make([]byte, len(b))
	copy(payload, b)
	return Message{
		Payload:   payload,
		Headers:   map[string]string{},
		Timestamp: time.Now().Unix(),
	}
}

// Text returns the payload as a string, failing if it is not valid UTF-8.
func (m Message) Text() (string, error) {
	if !utf8.Valid(m.Payload) {
		return "", errors.New(errors.ErrInvalidString, "message payload is not valid UTF-8", "")
	}
	return string(m.Payload), nil
}

// Bytes returns the raw payload.
func (m Message) Bytes() []byte {
	return m.Payload
}

func (m Message) clone() Message {
	out := m
	out.Headers = copyMap(m.Headers)
	return out
}

// WithTopic returns a copy with the topic set.
func (m Message) WithTopic(topic string) Message {
	out := m.clone()
	out.Topic = topic
	return out
}

// WithHeader returns a copy with header k set to v.
func (m Message) WithHeader(k, v string) Message {
	out := m.clone()
	out.Headers[k] = v
	return out
}

// WithSender returns a copy with the sender set.
func (m Message) WithSender(sender string) Message {
	out := m.clone()
	out.Sender = sender
	return out
}
