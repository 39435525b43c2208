package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seregonwar/CoreBaseApplication/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInit(t *testing.T) {
	ta := newTestApp(t)

	require.Equal(t, 0, ta.exec("config", "init"))
	assert.Contains(t, ta.out.String(), "Created "+config.ConfigFileName)

	data, err := os.ReadFile(filepath.Join(ta.dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# CoreBase configuration"))

	cfg, err := config.Load(filepath.Join(ta.dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Monitor.Thresholds, cfg.Monitor.Thresholds)

	// A second init refuses to overwrite.
	assert.Equal(t, 1, ta.exec("config", "init"))
	assert.Contains(t, ta.errOut.String(), "Config file already exists")
	assert.Contains(t, ta.errOut.String(), "--force")

	require.Equal(t, 0, ta.exec("config", "init", "--force"))
}

func TestConfigInit_PromptsOnTerminal(t *testing.T) {
	tests := []struct {
		name      string
		answer    bool
		answerErr error
		wantCode  int
		wantOut   string
		rewritten bool
	}{
		{"confirmed", true, nil, 0, "Created " + config.ConfigFileName, true},
		{"declined", false, nil, 0, "Cancelled.", false},
		{"prompt failed", false, stderrors.New("no tty"), 1, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t)
			path := filepath.Join(ta.dir, config.ConfigFileName)
			require.NoError(t, os.WriteFile(path, []byte("# mine\n"), 0o644))

			var asked string
			ta.isTerminal = func(io.Writer) bool { return true }
			ta.confirm = func(title string) (bool, error) {
				asked = title
				return tt.answer, tt.answerErr
			}

			assert.Equal(t, tt.wantCode, ta.exec("config", "init"))
			assert.Contains(t, asked, "already exists. Overwrite?")
			assert.Contains(t, ta.out.String(), tt.wantOut)
			if tt.answerErr != nil {
				assert.Contains(t, ta.errOut.String(), "Failed to get user input")
			}

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.rewritten, strings.HasPrefix(string(data), "# CoreBase configuration"))
		})
	}
}

func TestConfigInit_NoPromptWithForceOrJSON(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, os.WriteFile(filepath.Join(ta.dir, config.ConfigFileName), []byte("# mine\n"), 0o644))
	ta.isTerminal = func(io.Writer) bool { return true }
	ta.confirm = func(string) (bool, error) {
		t.Fatal("unexpected prompt")
		return false, nil
	}

	require.Equal(t, 0, ta.exec("config", "init", "--force"))
	assert.Equal(t, 1, ta.exec("--json", "config", "init"))
	assert.Contains(t, ta.out.String(), "Config file already exists")
}

func TestConfigInit_Global(t *testing.T) {
	ta := newTestApp(t)

	require.Equal(t, 0, ta.exec("--json", "config", "init", "--global"))

	want := filepath.Join(ta.dir, config.GlobalConfigDir, config.GlobalConfigFile)
	var env struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(ta.out.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, want, env.Data["path"])
	assert.FileExists(t, want)
}

func TestConfigInit_ExplicitPath(t *testing.T) {
	ta := newTestApp(t)
	path := filepath.Join(ta.dir, "nested", "custom.yaml")

	require.Equal(t, 0, ta.exec("--config", path, "config", "init"))
	assert.FileExists(t, path)
}

func TestConfigShow(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		ta := newTestApp(t)

		require.Equal(t, 0, ta.exec("config", "show"))
		out := ta.out.String()
		assert.Contains(t, out, "# no config file found, showing defaults")
		assert.Contains(t, out, "monitor:")
		assert.Contains(t, out, "network:")
	})

	t.Run("from file", func(t *testing.T) {
		ta := newConfiguredTestApp(t, "network:\n  port: 9000\n")

		require.Equal(t, 0, ta.exec("config", "show"))
		out := ta.out.String()
		assert.Contains(t, out, config.ConfigFileName)
		assert.Contains(t, out, "port: 9000")
	})

	t.Run("invalid", func(t *testing.T) {
		ta := newConfiguredTestApp(t, "monitor:\n  history_size: -1\n")

		assert.Equal(t, 1, ta.exec("--json", "config", "show"))

		var env JSONEnvelope
		require.NoError(t, json.Unmarshal(ta.out.Bytes(), &env))
		require.NotNil(t, env.Error)
		assert.Equal(t, ErrCodeConfigInvalid, env.Error.Code)
	})
}

func TestConfigSetGet(t *testing.T) {
	ta := newConfiguredTestApp(t, "")

	require.Equal(t, 0, ta.exec("config", "set", "server.port", "9000"))
	assert.Contains(t, ta.out.String(), "Set server.port = 9000")
	assert.FileExists(t, ta.settingsPath())

	require.Equal(t, 0, ta.exec("config", "set", "greeting", "hello"))

	require.Equal(t, 0, ta.exec("config", "get", "server.port"))
	assert.Equal(t, "9000\n", ta.out.String())

	require.Equal(t, 0, ta.exec("config", "get", "greeting"))
	assert.Equal(t, "hello\n", ta.out.String())

	require.Equal(t, 0, ta.exec("--json", "config", "get", "server.port"))
	var env struct {
		Success bool `json:"success"`
		Data    struct {
			Key   string      `json:"key"`
			Kind  string      `json:"kind"`
			Value json.Number `json:"value"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(ta.out.Bytes(), &env))
	assert.Equal(t, "server.port", env.Data.Key)
	assert.Equal(t, "int", env.Data.Kind)
	assert.Equal(t, json.Number("9000"), env.Data.Value)

	require.Equal(t, 0, ta.exec("config", "keys"))
	assert.Equal(t, "greeting\nserver.port\n", ta.out.String())
}

func TestConfigGet_Missing(t *testing.T) {
	ta := newConfiguredTestApp(t, "")

	assert.Equal(t, 1, ta.exec("config", "get", "nope"))
	assert.Contains(t, ta.errOut.String(), "Config key not found: nope")
}

func TestConfigKeys_EmptyJSON(t *testing.T) {
	ta := newConfiguredTestApp(t, "")

	require.Equal(t, 0, ta.exec("--json", "config", "keys"))
	var env struct {
		Success bool     `json:"success"`
		Data    []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(ta.out.Bytes(), &env))
	assert.True(t, env.Success)
	assert.NotNil(t, env.Data)
	assert.Empty(t, env.Data)
}

func TestConfigSet_EmptyKey(t *testing.T) {
	ta := newConfiguredTestApp(t, "")

	assert.Equal(t, 1, ta.exec("config", "set", "", "x"))
	assert.Contains(t, ta.errOut.String(), "Config key can't be empty")
}

func TestConfigSettings_NoPath(t *testing.T) {
	ta := newConfiguredTestApp(t, "")
	content := "log:\n  level: error\nsettings:\n  path: \"\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(ta.dir, config.ConfigFileName), []byte(content), 0o644))

	assert.Equal(t, 1, ta.exec("config", "keys"))
	assert.Contains(t, ta.errOut.String(), "No settings path configured")
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			ta := newTestApp(t)
			require.Equal(t, 0, ta.exec("completion", shell))
			assert.Contains(t, ta.out.String(), "corebase")
		})
	}

	ta := newTestApp(t)
	assert.Equal(t, 1, ta.exec("completion", "tcsh"))
}
