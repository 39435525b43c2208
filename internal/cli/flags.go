package cli

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/seregonwar/CoreBaseApplication/internal/errors"
)

// MinWatchInterval keeps the sampler from spinning.
const MinWatchInterval = 100 * time.Millisecond

// parseDuration parses a duration flag. Returns zero duration if the value is empty.
func parseDuration(name, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrInvalidParameter,
			fmt.Sprintf("'%s' doesn't look like a valid %s", value, name),
			"Try something like 5s, 2m, or 500ms.")
	}
	if d <= 0 {
		return 0, errors.New(errors.ErrInvalidParameter,
			fmt.Sprintf("%s must be positive, got %s", name, value),
			"Try something like 5s, 2m, or 500ms.")
	}
	return d, nil
}

// parseInterval parses --interval, enforcing MinWatchInterval.
func parseInterval(value string) (time.Duration, error) {
	d, err := parseDuration("interval", value)
	if err != nil || d == 0 {
		return d, err
	}
	if d < MinWatchInterval {
		return 0, errors.New(errors.ErrInvalidParameter,
			"Interval too short",
			fmt.Sprintf("Minimum interval is %s", MinWatchInterval))
	}
	return d, nil
}

// parseAddress splits "host:port" and checks the port fits in 16 bits.
func parseAddress(addr string) (string, uint16, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, errors.WrapWithCode(err, errors.ErrInvalidParameter,
			fmt.Sprintf("'%s' is not a host:port address", addr),
			"Use a form like localhost:8080 or [::1]:9000")
	}
	if host == "" {
		return "", 0, errors.New(errors.ErrInvalidParameter,
			fmt.Sprintf("'%s' has no host", addr),
			"Use a form like localhost:8080")
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil || port == 0 {
		return "", 0, errors.New(errors.ErrInvalidParameter,
			fmt.Sprintf("'%s' is not a valid port", portStr),
			"Ports range from 1 to 65535")
	}
	return host, uint16(port), nil
}
