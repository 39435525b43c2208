package config

import (
	"time"

	"github.com/seregonwar/CoreBaseApplication/internal/monitor"
	"github.com/seregonwar/CoreBaseApplication/internal/network"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .corebase.yaml configuration file.
type Config struct {
	Version  int            `yaml:"version" mapstructure:"version"`
	Network  NetworkConfig  `yaml:"network" mapstructure:"network"`
	Monitor  MonitorConfig  `yaml:"monitor" mapstructure:"monitor"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Metrics  MetricsConfig  `yaml:"metrics" mapstructure:"metrics"`
	Settings SettingsConfig `yaml:"settings" mapstructure:"settings"`
}

// NetworkConfig holds the defaults applied to new connections.
type NetworkConfig struct {
	Host       string        `yaml:"host" mapstructure:"host"`
	Port       uint16        `yaml:"port" mapstructure:"port"`
	Protocol   string        `yaml:"protocol" mapstructure:"protocol"`
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxRetries uint32        `yaml:"max_retries" mapstructure:"max_retries"`
	RetryDelay time.Duration `yaml:"retry_delay" mapstructure:"retry_delay"`
	UseTLS     bool          `yaml:"use_tls" mapstructure:"use_tls"`
	VerifyTLS  bool          `yaml:"verify_tls" mapstructure:"verify_tls"`

	// BinaryPayloads lets connections send payloads that are not valid UTF-8.
	BinaryPayloads bool `yaml:"binary_payloads" mapstructure:"binary_payloads"`

	// BroadcastConcurrency bounds concurrent sends during a broadcast.
	BroadcastConcurrency int `yaml:"broadcast_concurrency" mapstructure:"broadcast_concurrency"`
}

// MonitorConfig controls resource sampling.
type MonitorConfig struct {
	Interval    time.Duration      `yaml:"interval" mapstructure:"interval"`
	HistorySize int                `yaml:"history_size" mapstructure:"history_size"`
	Enable      EnableConfig       `yaml:"enable" mapstructure:"enable"`
	Thresholds  monitor.Thresholds `yaml:"thresholds" mapstructure:"thresholds"`

	// DiskPath is the filesystem whose usage is reported.
	DiskPath string `yaml:"disk_path" mapstructure:"disk_path"`

	// LinkSpeed is the network capacity in bytes per second that network usage is measured against.
	LinkSpeed float64 `yaml:"link_speed" mapstructure:"link_speed"`
}

// EnableConfig toggles sampling per resource.
type EnableConfig struct {
	CPU     bool `yaml:"cpu" mapstructure:"cpu"`
	Memory  bool `yaml:"memory" mapstructure:"memory"`
	Disk    bool `yaml:"disk" mapstructure:"disk"`
	Network bool `yaml:"network" mapstructure:"network"`
	GPU     bool `yaml:"gpu" mapstructure:"gpu"`
}

// LogConfig controls log output.
type LogConfig struct {
	// Level is one of debug, info, warn, error, critical.
	Level string `yaml:"level" mapstructure:"level"`

	// File, when set, receives JSON log lines in addition to the console.
	File string `yaml:"file" mapstructure:"file"`

	// JSON switches console output to JSON.
	JSON bool `yaml:"json" mapstructure:"json"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	// Listen is the address for /metrics, e.g. ":9090". Empty disables the endpoint.
	Listen string `yaml:"listen" mapstructure:"listen"`
}

// SettingsConfig locates the key/value settings file used by Manager.
type SettingsConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	policy := monitor.DefaultPolicy()
	conn := network.DefaultConnectionConfig()

	return &Config{
		Version: CurrentConfigVersion,
		Network: NetworkConfig{
			Host:                 conn.Host,
			Port:                 conn.Port,
			Protocol:             conn.Protocol.String(),
			Timeout:              conn.Timeout,
			MaxRetries:           conn.MaxRetries,
			RetryDelay:           conn.RetryDelay,
			UseTLS:               conn.UseTLS,
			VerifyTLS:            conn.VerifyTLS,
			BroadcastConcurrency: network.DefaultBroadcastConcurrency,
		},
		Monitor: MonitorConfig{
			Interval:    policy.Interval,
			HistorySize: policy.HistorySize,
			Enable: EnableConfig{
				CPU:     true,
				Memory:  true,
				Disk:    true,
				Network: true,
				GPU:     true,
			},
			Thresholds: policy.Thresholds,
			DiskPath:   monitor.DefaultDiskPath,
			LinkSpeed:  monitor.DefaultLinkSpeed,
		},
		Log: LogConfig{
			Level: "info",
		},
		Settings: SettingsConfig{
			Path: DefaultSettingsPath,
		},
	}
}

// Policy converts the monitor section into a monitor.Policy.
func (c MonitorConfig) Policy() monitor.Policy {
	return monitor.Policy{
		Interval:      c.Interval,
		HistorySize:   c.HistorySize,
		EnableCPU:     c.Enable.CPU,
		EnableMemory:  c.Enable.Memory,
		EnableDisk:    c.Enable.Disk,
		EnableNetwork: c.Enable.Network,
		EnableGPU:     c.Enable.GPU,
		Thresholds:    c.Thresholds,
	}
}

// ConnectionConfig converts the network section into connection defaults.
// An unknown protocol name falls back to TCP; Validate reports it.
func (c NetworkConfig) ConnectionConfig() network.ConnectionConfig {
	cfg := network.DefaultConnectionConfig()
	cfg.Host = c.Host
	cfg.Port = c.Port
	cfg.Protocol, _ = network.ParseProtocol(c.Protocol)
	cfg.Timeout = c.Timeout
	cfg.MaxRetries = c.MaxRetries
	cfg.RetryDelay = c.RetryDelay
	cfg.UseTLS = c.UseTLS || cfg.Protocol == network.ProtocolHTTPS
	cfg.VerifyTLS = c.VerifyTLS
	cfg.BinaryPayloads = c.BinaryPayloads
	return cfg
}
