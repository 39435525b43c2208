package core_test

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/seregonwar/CoreBaseApplication/internal/config"
	"github.com/seregonwar/CoreBaseApplication/internal/core"
	"github.com/seregonwar/CoreBaseApplication/internal/errors"
	"github.com/seregonwar/CoreBaseApplication/internal/logger"
	"github.com/seregonwar/CoreBaseApplication/internal/metrics"
	"github.com/seregonwar/CoreBaseApplication/internal/monitor"
	montesting "github.com/seregonwar/CoreBaseApplication/internal/monitor/testing"
	"github.com/seregonwar/CoreBaseApplication/internal/network"
	nettesting "github.com/seregonwar/CoreBaseApplication/internal/network/testing"
	"github.com/seregonwar/CoreBaseApplication/internal/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hot = montesting.Reading{
	CPU:             90,
	AvailableMemory: 6,
	TotalMemory:     8,
	AvailableDisk:   50,
	TotalDisk:       100,
}

type fixture struct {
	facade    *core.Facade
	svc       *runtime.Service
	cfg       *config.Config
	transport *nettesting.FakeTransport
	sampler   *montesting.FakeSampler
	log       *logger.BufferLogger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Monitor.Interval = 10 * time.Millisecond
	cfg.Settings.Path = filepath.Join(t.TempDir(), "settings.yaml")

	fx := &fixture{
		svc:       runtime.NewService(nil),
		cfg:       cfg,
		transport: nettesting.NewFakeTransport(),
		sampler:   montesting.NewFakeSampler(hot),
		log:       logger.NewBufferLogger(),
	}

	f, err := core.New(fx.svc, cfg, fx.transport, fx.sampler,
		core.WithLogger(fx.log),
		core.WithMetrics(metrics.New()),
	)
	require.NoError(t, err)
	fx.facade = f
	t.Cleanup(func() { _ = f.Close() })
	return fx
}

func TestNew_Validation(t *testing.T) {
	sampler := montesting.NewFakeSampler(hot)
	transport := nettesting.NewFakeTransport()

	_, err := core.New(nil, nil, transport, sampler)
	assert.True(t, errors.IsCode(err, errors.ErrInvalidParameter))

	_, err = core.New(runtime.NewService(nil), nil, nil, sampler)
	assert.True(t, errors.IsCode(err, errors.ErrInvalidParameter))

	_, err = core.New(runtime.NewService(nil), nil, transport, nil)
	assert.True(t, errors.IsCode(err, errors.ErrInvalidParameter))
}

func TestNew_InitializesServiceOnce(t *testing.T) {
	svc := runtime.NewService(nil)
	starts := 0
	svc.OnInitialize(func() error {
		starts++
		return nil
	})

	cfg := config.DefaultConfig()
	cfg.Settings.Path = ""
	for i := 0; i < 2; i++ {
		_, err := core.New(svc, cfg, nettesting.NewFakeTransport(), montesting.NewFakeSampler(hot),
			core.WithLogger(logger.Noop()))
		require.NoError(t, err)
	}

	assert.True(t, svc.Initialized())
	assert.Equal(t, 1, starts)
}

func TestNew_DefaultsWhenConfigNil(t *testing.T) {
	f, err := core.New(runtime.NewService(nil), nil, nettesting.NewFakeTransport(), montesting.NewFakeSampler(hot),
		core.WithLogger(logger.Noop()))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultConfig().Monitor.Policy(), f.Monitor().Policy())
	assert.NotNil(t, f.Registry())
	assert.NotNil(t, f.Settings())
	assert.NotNil(t, f.Errors())
	assert.NotNil(t, f.Metrics())
}

func TestNew_LoadsSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  theme: dark\n"), 0644))

	cfg := config.DefaultConfig()
	cfg.Settings.Path = path
	f, err := core.New(runtime.NewService(nil), cfg, nettesting.NewFakeTransport(), montesting.NewFakeSampler(hot),
		core.WithLogger(logger.Noop()))
	require.NoError(t, err)

	assert.Equal(t, "dark", f.Settings().GetString("ui.theme", ""))
}

func TestFacade_ConnectAndClose(t *testing.T) {
	fx := newFixture(t)
	f := fx.facade

	a, err := f.Connect(t.Context(), network.TCP("a.local", 1))
	require.NoError(t, err)
	_, err = f.Connect(t.Context(), network.UDP("b.local", 2))
	require.NoError(t, err)
	assert.Equal(t, 2, f.Registry().Count())

	got, err := f.Registry().Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, network.StateConnected, got.State)

	require.NoError(t, f.Close())
	assert.Equal(t, 0, f.Registry().Count())
	assert.False(t, fx.svc.Initialized())
	assert.Equal(t, 0, fx.transport.OpenCount())
}

func TestFacade_ConnectFailureIsNetworkError(t *testing.T) {
	fx := newFixture(t)
	fx.transport.FailOpen("down.local")

	_, err := fx.facade.Connect(t.Context(), network.TCP("down.local", 1))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrNetwork))
	assert.True(t, fx.log.HasLevel("error"), "network errors are logged at error severity")
	assert.Equal(t, 0, fx.facade.Registry().Count())
}

func TestFacade_CloseRemovesConnectionsWhoseCloseFails(t *testing.T) {
	fx := newFixture(t)
	f := fx.facade

	a, err := f.Connect(t.Context(), network.TCP("a.local", 1))
	require.NoError(t, err)
	_, err = f.Connect(t.Context(), network.TCP("b.local", 2))
	require.NoError(t, err)
	fx.transport.FailClose(a.ID)

	require.NoError(t, f.Close())
	assert.Equal(t, 0, f.Registry().Count())
	assert.True(t, fx.log.HasLevel("warn"))
}

func TestFacade_OperationsAfterCloseFail(t *testing.T) {
	fx := newFixture(t)
	f := fx.facade
	require.NoError(t, f.Close())

	_, err := f.Connect(t.Context(), network.TCP("a.local", 1))
	assert.True(t, errors.IsCode(err, errors.ErrOperationFailed))

	_, _, err = f.Sample()
	assert.True(t, errors.IsCode(err, errors.ErrOperationFailed))

	_, err = f.Broadcast(network.NewTextMessage("hi"))
	assert.True(t, errors.IsCode(err, errors.ErrOperationFailed))

	err = f.Watch(t.Context(), func(core.Update) error { return nil })
	assert.True(t, errors.IsCode(err, errors.ErrOperationFailed))

	// Closing again is harmless, and the service can be restarted.
	require.NoError(t, f.Close())
	require.NoError(t, f.Start())
	_, err = f.Connect(t.Context(), network.TCP("a.local", 1))
	assert.NoError(t, err)
}

func TestFacade_Broadcast(t *testing.T) {
	fx := newFixture(t)
	f := fx.facade

	a, err := f.Connect(t.Context(), network.TCP("a.local", 1))
	require.NoError(t, err)
	b, err := f.Connect(t.Context(), network.TCP("b.local", 2))
	require.NoError(t, err)
	fx.transport.FailSend(b.ID)

	failed, err := f.Broadcast(network.NewTextMessage("ping"))
	require.NoError(t, err)
	assert.Equal(t, []network.ConnectionID{b.ID}, failed)
	assert.Equal(t, 2, f.Registry().Count())
	assert.Equal(t, [][]byte{[]byte("ping")}, fx.transport.Sent(a.ID))
}

func TestFacade_Sample(t *testing.T) {
	fx := newFixture(t)

	snap, alerts, err := fx.facade.Sample()
	require.NoError(t, err)
	assert.Equal(t, 90.0, snap.CPUPercent)
	assert.Equal(t, []string{"CPU usage (90.0%) exceeds threshold (80.0%)"}, alerts)
	assert.Equal(t, 1, fx.facade.Monitor().History().Len())
}

func TestNew_AppliesEveryMonitorOption(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	monLog := logger.NewBufferLogger()
	sampler := montesting.NewFakeSampler(hot).Fail(monitor.ResourceCPU)

	cfg := config.DefaultConfig()
	cfg.Settings.Path = filepath.Join(t.TempDir(), "settings.yaml")

	f, err := core.New(runtime.NewService(nil), cfg, nettesting.NewFakeTransport(), sampler,
		core.WithLogger(logger.Noop()),
		core.WithMonitorOption(monitor.WithClock(func() time.Time { return fixed })),
		core.WithMonitorOption(monitor.WithLogger(monLog)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	snap, _, err := f.Sample()
	require.NoError(t, err)
	assert.Equal(t, fixed.Unix(), snap.Timestamp)
	assert.True(t, monLog.HasLevel("warn"))
}

func TestFacade_WatchDeliversUpdatesAndLogsAlerts(t *testing.T) {
	fx := newFixture(t)
	errStop := stderrors.New("stop")

	var updates []core.Update
	err := fx.facade.Watch(t.Context(), func(u core.Update) error {
		updates = append(updates, u)
		if len(updates) == 3 {
			return errStop
		}
		return nil
	})

	require.ErrorIs(t, err, errStop)
	require.Len(t, updates, 3)
	for _, u := range updates {
		assert.Equal(t, 90.0, u.Snapshot.CPUPercent)
		assert.Len(t, u.Alerts, 1)
	}

	alertsLogged := 0
	for _, m := range fx.log.Snapshot() {
		if m.Level == "warn" && strings.HasPrefix(m.Message, "CPU usage") {
			alertsLogged++
		}
	}
	assert.GreaterOrEqual(t, alertsLogged, 3)
}

func TestFacade_WatchStopsOnCancel(t *testing.T) {
	fx := newFixture(t)
	ctx, cancel := context.WithCancel(t.Context())

	seen := 0
	done := make(chan error, 1)
	go func() {
		done <- fx.facade.Watch(ctx, func(core.Update) error {
			seen++
			if seen == 1 {
				cancel()
			}
			return nil
		})
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
	assert.GreaterOrEqual(t, seen, 1)
}

func TestFacade_SaveSettings(t *testing.T) {
	fx := newFixture(t)
	f := fx.facade

	require.NoError(t, f.Settings().Set("dashboard.refresh", config.Int(5)))
	require.NoError(t, f.SaveSettings())

	reloaded := config.NewManager()
	require.NoError(t, reloaded.Load(fx.cfg.Settings.Path))
	assert.Equal(t, int64(5), reloaded.GetInt("dashboard.refresh", 0))
}
