package cli

import (
	"testing"
	"time"

	"github.com/seregonwar/CoreBaseApplication/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		value   string
		want    time.Duration
		wantErr string
	}{
		{"", 0, ""},
		{"5s", 5 * time.Second, ""},
		{"500ms", 500 * time.Millisecond, ""},
		{"2m", 2 * time.Minute, ""},
		{"soon", 0, "'soon' doesn't look like a valid timeout"},
		{"5", 0, "'5' doesn't look like a valid timeout"},
		{"0s", 0, "timeout must be positive, got 0s"},
		{"-1s", 0, "timeout must be positive, got -1s"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := parseDuration("timeout", tt.value)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.True(t, errors.IsCode(err, errors.ErrInvalidParameter))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInterval(t *testing.T) {
	d, err := parseInterval("")
	require.NoError(t, err)
	assert.Zero(t, d)

	d, err = parseInterval("100ms")
	require.NoError(t, err)
	assert.Equal(t, MinWatchInterval, d)

	_, err = parseInterval("99ms")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Interval too short")

	_, err = parseInterval("never")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid interval")
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		addr     string
		wantHost string
		wantPort uint16
		wantErr  string
	}{
		{"localhost:8080", "localhost", 8080, ""},
		{"10.0.0.1:1", "10.0.0.1", 1, ""},
		{"[::1]:9000", "::1", 9000, ""},
		{"example.com:65535", "example.com", 65535, ""},
		{"localhost", "", 0, "is not a host:port address"},
		{":8080", "", 0, "has no host"},
		{"localhost:0", "", 0, "'0' is not a valid port"},
		{"localhost:65536", "", 0, "'65536' is not a valid port"},
		{"localhost:http", "", 0, "'http' is not a valid port"},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			host, port, err := parseAddress(tt.addr)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantPort, port)
		})
	}
}
