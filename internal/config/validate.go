package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/seregonwar/CoreBaseApplication/internal/errors"
	"github.com/seregonwar/CoreBaseApplication/internal/network"
)

// validLogLevels are the names accepted in log.level.
var validLogLevels = map[string]bool{
	"debug":    true,
	"info":     true,
	"warn":     true,
	"warning":  true,
	"error":    true,
	"critical": true,
}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but corebase only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade corebase or lower the version in the config file.")
	}

	if err := validateNetwork(cfg.Network); err != nil {
		return errors.New(errors.ErrConfig, err.Error(), "Check the 'network' section in your .corebase.yaml.")
	}

	if err := validateMonitor(cfg.Monitor); err != nil {
		return errors.New(errors.ErrConfig, err.Error(), "Check the 'monitor' section in your .corebase.yaml.")
	}

	if err := validateLog(cfg.Log); err != nil {
		return errors.New(errors.ErrConfig, err.Error(), "Check the 'log' section in your .corebase.yaml.")
	}

	if err := validateMetrics(cfg.Metrics); err != nil {
		return errors.New(errors.ErrConfig, err.Error(), "Check the 'metrics' section in your .corebase.yaml.")
	}

	return nil
}

func validateNetwork(n NetworkConfig) error {
	if strings.TrimSpace(n.Host) == "" {
		return fmt.Errorf("network.host can't be empty")
	}
	if _, ok := network.ParseProtocol(n.Protocol); !ok {
		return fmt.Errorf("network.protocol '%s' isn't supported (use tcp, udp, http, https, websocket, mqtt, amqp, grpc or custom)", n.Protocol)
	}
	if n.Timeout <= 0 {
		return fmt.Errorf("network.timeout must be positive, got %s", n.Timeout)
	}
	if n.RetryDelay < 0 {
		return fmt.Errorf("network.retry_delay can't be negative, got %s", n.RetryDelay)
	}
	if n.BroadcastConcurrency < 0 {
		return fmt.Errorf("network.broadcast_concurrency can't be negative, got %d", n.BroadcastConcurrency)
	}
	return nil
}

func validateMonitor(m MonitorConfig) error {
	if err := m.Policy().Validate(); err != nil {
		return err
	}

	thresholds := map[string]float64{
		"cpu":     m.Thresholds.CPU,
		"memory":  m.Thresholds.Memory,
		"disk":    m.Thresholds.Disk,
		"network": m.Thresholds.Network,
		"gpu":     m.Thresholds.GPU,
	}
	for _, name := range []string{"cpu", "memory", "disk", "network", "gpu"} {
		if v := thresholds[name]; v < 0 || v > 100 {
			return fmt.Errorf("monitor.thresholds.%s must be between 0 and 100, got %.1f", name, v)
		}
	}

	if m.LinkSpeed < 0 {
		return fmt.Errorf("monitor.link_speed can't be negative, got %.0f", m.LinkSpeed)
	}
	return nil
}

func validateLog(l LogConfig) error {
	if l.Level != "" && !validLogLevels[strings.ToLower(l.Level)] {
		return fmt.Errorf("log.level '%s' isn't valid (use debug, info, warn, error or critical)", l.Level)
	}
	return nil
}

func validateMetrics(m MetricsConfig) error {
	if m.Listen == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(m.Listen); err != nil {
		return fmt.Errorf("metrics.listen '%s' isn't a host:port address", m.Listen)
	}
	return nil
}
