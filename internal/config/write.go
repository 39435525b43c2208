package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/seregonwar/CoreBaseApplication/internal/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const fileHeader = `# CoreBase configuration
# Environment variables prefixed with COREBASE_ override these values,
# e.g. COREBASE_MONITOR_INTERVAL=5s.

`

// Marshal renders cfg as YAML with durations in their string form.
func Marshal(cfg *Config) ([]byte, error) {
	v := viper.New()
	for key, value := range flatten(cfg) {
		v.Set(key, value)
	}

	data, err := yaml.Marshal(v.AllSettings())
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}
	return data, nil
}

// Write saves cfg to path with a header comment. An existing file is only
// replaced when force is set.
func Write(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", path),
				"Use --force to overwrite it")
		}
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to create directory for %s", path),
			"Check directory permissions")
	}

	if err := os.WriteFile(path, append([]byte(fileHeader), data...), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", path),
			"Check directory permissions")
	}
	return nil
}
