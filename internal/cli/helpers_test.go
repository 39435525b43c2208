package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/seregonwar/CoreBaseApplication/internal/config"
	"github.com/seregonwar/CoreBaseApplication/internal/logger"
	"github.com/seregonwar/CoreBaseApplication/internal/monitor"
	monitortesting "github.com/seregonwar/CoreBaseApplication/internal/monitor/testing"
	"github.com/seregonwar/CoreBaseApplication/internal/network"
	networktesting "github.com/seregonwar/CoreBaseApplication/internal/network/testing"
	"github.com/stretchr/testify/require"
)

var hotReading = monitortesting.Reading{
	CPU:             90,
	AvailableMemory: 2 << 30,
	TotalMemory:     8 << 30,
	AvailableDisk:   50,
	TotalDisk:       100,
	Network:         10,
	GPU:             5,
}

// testApp is an app wired to buffers and fakes, running in a private
// directory that doubles as $HOME.
type testApp struct {
	*app
	out       *bytes.Buffer
	errOut    *bytes.Buffer
	transport *networktesting.FakeTransport
	sampler   *monitortesting.FakeSampler
	dir       string
}

// newTestApp creates the app without writing a config file.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	ta := &testApp{
		out:       &bytes.Buffer{},
		errOut:    &bytes.Buffer{},
		transport: networktesting.NewFakeTransport(),
		sampler:   monitortesting.NewFakeSampler(hotReading),
		dir:       dir,
	}
	ta.app = &app{
		stdout:       ta.out,
		stderr:       ta.errOut,
		newTransport: func(logger.Logger) network.Transport { return ta.transport },
		newSampler:   func(*config.Config) monitor.Sampler { return ta.sampler },
		isTerminal:   func(io.Writer) bool { return false },
	}
	return ta
}

// newConfiguredTestApp also writes ./.corebase.yaml with a private settings
// path, quiet logging and the given extra sections.
func newConfiguredTestApp(t *testing.T, extra string) *testApp {
	t.Helper()
	ta := newTestApp(t)

	content := "log:\n  level: error\nsettings:\n  path: " + ta.settingsPath() + "\n" + extra
	require.NoError(t, os.WriteFile(filepath.Join(ta.dir, config.ConfigFileName), []byte(content), 0o644))
	return ta
}

func (ta *testApp) settingsPath() string {
	return filepath.Join(ta.dir, "settings.yaml")
}

// exec runs args and returns the exit code. Buffers are reset first.
func (ta *testApp) exec(args ...string) int {
	ta.out.Reset()
	ta.errOut.Reset()
	return ta.app.run(context.Background(), args)
}
