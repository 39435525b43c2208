package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/seregonwar/CoreBaseApplication/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".corebase.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/corebase"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// DefaultSettingsPath is where Manager keeps key/value settings unless configured otherwise.
	DefaultSettingsPath = "~/" + GlobalConfigDir + "/settings.yaml"
	// EnvPrefix prefixes environment overrides, e.g. COREBASE_MONITOR_INTERVAL=5s.
	EnvPrefix = "COREBASE"
)

// Load reads config from the specified path.
// Environment variables prefixed with COREBASE_ override file values.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'corebase config init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find returns the config file to load, or "" when none exists.
// An explicit path must exist. Otherwise the first existing entry of
// searchPaths wins: ./.corebase.yaml, the same name in each parent up to the
// enclosing git root (never home itself or above), then the global file.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}
	home, _ := os.UserHomeDir()

	for _, candidate := range searchPaths(cwd, home) {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", nil
}

// searchPaths lists config candidates for cwd in priority order.
func searchPaths(cwd, home string) []string {
	paths := []string{filepath.Join(cwd, ConfigFileName)}

	for dir := cwd; !isGitRoot(dir); {
		parent := filepath.Dir(dir)
		if parent == dir || (home != "" && parent == home) {
			break
		}
		dir = parent
		paths = append(paths, filepath.Join(dir, ConfigFileName))
	}

	if home != "" {
		paths = append(paths, filepath.Join(home, GlobalConfigDir, GlobalConfigFile))
	}
	return paths
}

// LoadOrDefault loads config from the found path, or returns defaults if nothing is found.
// Environment overrides apply in both cases.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		cfg, err := parseConfig(newViper(), "environment")
		return cfg, "", err
	}

	cfg, err := Load(path)
	return cfg, path, err
}

// newViper returns a viper instance with defaults and environment binding set up.
func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, source string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+source)
	}

	cfg.Settings.Path = ExpandPath(cfg.Settings.Path)
	cfg.Log.File = ExpandPath(cfg.Log.File)

	return cfg, nil
}

// setDefaults registers every key so environment overrides apply even when
// the file omits the key.
func setDefaults(v *viper.Viper) {
	for key, value := range flatten(DefaultConfig()) {
		v.SetDefault(key, value)
	}
}

// flatten maps each config field to its dotted viper key. Durations are
// rendered as strings; viper's decode hook parses them back into time.Duration.
func flatten(c *Config) map[string]any {
	return map[string]any{
		"version": c.Version,

		"network.host":                  c.Network.Host,
		"network.port":                  c.Network.Port,
		"network.protocol":              c.Network.Protocol,
		"network.timeout":               c.Network.Timeout.String(),
		"network.max_retries":           c.Network.MaxRetries,
		"network.retry_delay":           c.Network.RetryDelay.String(),
		"network.use_tls":               c.Network.UseTLS,
		"network.verify_tls":            c.Network.VerifyTLS,
		"network.binary_payloads":       c.Network.BinaryPayloads,
		"network.broadcast_concurrency": c.Network.BroadcastConcurrency,

		"monitor.interval":           c.Monitor.Interval.String(),
		"monitor.history_size":       c.Monitor.HistorySize,
		"monitor.enable.cpu":         c.Monitor.Enable.CPU,
		"monitor.enable.memory":      c.Monitor.Enable.Memory,
		"monitor.enable.disk":        c.Monitor.Enable.Disk,
		"monitor.enable.network":     c.Monitor.Enable.Network,
		"monitor.enable.gpu":         c.Monitor.Enable.GPU,
		"monitor.thresholds.cpu":     c.Monitor.Thresholds.CPU,
		"monitor.thresholds.memory":  c.Monitor.Thresholds.Memory,
		"monitor.thresholds.disk":    c.Monitor.Thresholds.Disk,
		"monitor.thresholds.network": c.Monitor.Thresholds.Network,
		"monitor.thresholds.gpu":     c.Monitor.Thresholds.GPU,
		"monitor.disk_path":          c.Monitor.DiskPath,
		"monitor.link_speed":         c.Monitor.LinkSpeed,

		"log.level": c.Log.Level,
		"log.file":  c.Log.File,
		"log.json":  c.Log.JSON,

		"metrics.listen": c.Metrics.Listen,

		"settings.path": c.Settings.Path,
	}
}

func isGitRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir()
}
