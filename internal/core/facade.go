// Package core composes the connection registry, resource monitor, settings
// store and error handler into one object whose lifetime follows a
// runtime.Service.
package core

import (
	"context"
	"os"

	"github.com/seregonwar/CoreBaseApplication/internal/config"
	"github.com/seregonwar/CoreBaseApplication/internal/errors"
	"github.com/seregonwar/CoreBaseApplication/internal/logger"
	"github.com/seregonwar/CoreBaseApplication/internal/metrics"
	"github.com/seregonwar/CoreBaseApplication/internal/monitor"
	"github.com/seregonwar/CoreBaseApplication/internal/network"
	"github.com/seregonwar/CoreBaseApplication/internal/runtime"
	"golang.org/x/sync/errgroup"
)

// Facade is the process-lifetime entry point to the subsystems.
type Facade struct {
	svc      *runtime.Service
	cfg      *config.Config
	log      logger.Logger
	metrics  *metrics.Metrics
	registry *network.Registry
	monitor  *monitor.Monitor
	settings *config.Manager
	handler  *runtime.ErrorHandler
}

type options struct {
	log     logger.Logger
	metrics *metrics.Metrics
	monOpts []monitor.Option
}

// Option configures a Facade.
type Option func(*options)

// WithLogger sets the log sink shared by every component.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics shares mt instead of creating a private collector set.
func WithMetrics(mt *metrics.Metrics) Option {
	return func(o *options) { o.metrics = mt }
}

// WithMonitorOption passes opt through to monitor.New, e.g. monitor.WithClock in tests.
// Options accumulate and apply after the facade's own logger and metrics.
func WithMonitorOption(opt monitor.Option) Option {
	return func(o *options) {
		if opt != nil {
			o.monOpts = append(o.monOpts, opt)
		}
	}
}

// New initializes svc (a no-op if already running) and builds every component from cfg.
// A nil cfg means config.DefaultConfig. The settings file is loaded when it exists.
func New(svc *runtime.Service, cfg *config.Config, transport network.Transport, sampler monitor.Sampler, opts ...Option) (*Facade, error) {
	if svc == nil {
		return nil, errors.New(errors.ErrInvalidParameter, "facade requires a runtime service", "")
	}
	if transport == nil {
		return nil, errors.New(errors.ErrInvalidParameter, "facade requires a transport", "")
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	o := options{log: logger.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Noop()
	}
	if o.metrics == nil {
		o.metrics = metrics.New()
	}

	if err := svc.Initialize(); err != nil {
		return nil, err
	}

	monOpts := append([]monitor.Option{monitor.WithLogger(o.log), monitor.WithMetrics(o.metrics)}, o.monOpts...)
	mon, err := monitor.New(sampler, cfg.Monitor.Policy(), monOpts...)
	if err != nil {
		return nil, err
	}

	handler := runtime.NewErrorHandler(o.log)
	handler.SetLevel(logger.ParseLevel(cfg.Log.Level))

	settings := config.NewManager()
	if path := cfg.Settings.Path; path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := settings.Load(path); err != nil {
				// A broken settings file shouldn't keep the runtime from starting.
				handler.HandleError(err)
			}
		}
	}

	f := &Facade{
		svc:     svc,
		cfg:     cfg,
		log:     o.log,
		metrics: o.metrics,
		registry: network.NewRegistry(transport,
			network.WithLogger(o.log),
			network.WithMetrics(o.metrics),
			network.WithBroadcastConcurrency(cfg.Network.BroadcastConcurrency),
		),
		monitor:  mon,
		settings: settings,
		handler:  handler,
	}
	return f, nil
}

// Registry returns the connection registry.
func (f *Facade) Registry() *network.Registry { return f.registry }

// Monitor returns the resource monitor.
func (f *Facade) Monitor() *monitor.Monitor { return f.monitor }

// Settings returns the key/value settings store.
func (f *Facade) Settings() *config.Manager { return f.settings }

// Errors returns the error handler.
func (f *Facade) Errors() *runtime.ErrorHandler { return f.handler }

// Metrics returns the Prometheus collectors.
func (f *Facade) Metrics() *metrics.Metrics { return f.metrics }

// Config returns the configuration the facade was built from.
func (f *Facade) Config() *config.Config { return f.cfg }

// Service returns the runtime service the facade is bound to.
func (f *Facade) Service() *runtime.Service { return f.svc }

// Start re-initializes the runtime service after Close.
func (f *Facade) Start() error {
	return f.svc.Initialize()
}

func (f *Facade) ready(op string) error {
	return f.svc.Require(op)
}

// Connect opens and registers a connection, giving up after cfg.Timeout.
func (f *Facade) Connect(ctx context.Context, cfg network.ConnectionConfig) (network.Connection, error) {
	if err := f.ready("connection registry"); err != nil {
		return network.Connection{}, f.handler.HandleError(err)
	}
	conn, err := f.registry.CreateWithTimeout(ctx, cfg)
	if err != nil {
		return network.Connection{}, f.handler.HandleError(err)
	}
	return conn, nil
}

// Defaults returns a connection config seeded from the network section.
func (f *Facade) Defaults() network.ConnectionConfig {
	return f.cfg.Network.ConnectionConfig()
}

// Broadcast sends msg to every connection and returns the ids that failed.
func (f *Facade) Broadcast(msg network.Message) ([]network.ConnectionID, error) {
	if err := f.ready("connection registry"); err != nil {
		return nil, f.handler.HandleError(err)
	}
	failed := f.registry.Broadcast(msg)
	for _, id := range failed {
		f.handler.Warning("broadcast to %s failed", id)
	}
	return failed, nil
}

// Sample takes one snapshot and evaluates it against the current policy.
func (f *Facade) Sample() (monitor.ResourceSnapshot, []string, error) {
	if err := f.ready("resource monitor"); err != nil {
		return monitor.ResourceSnapshot{}, nil, f.handler.HandleError(err)
	}
	snap := f.monitor.Sample()
	return snap, f.monitor.CheckThresholds(snap), nil
}

// Update is one scheduler tick delivered by Watch.
type Update struct {
	Snapshot monitor.ResourceSnapshot
	Alerts   []string
}

// Watch runs the scheduler and the threshold evaluator until ctx is cancelled
// or fn returns an error. Alerts are logged at warning level before fn sees them.
// Cancellation of ctx is a normal stop and returns nil.
func (f *Facade) Watch(ctx context.Context, fn func(Update) error) error {
	if err := f.ready("resource monitor"); err != nil {
		return f.handler.HandleError(err)
	}

	g, gctx := errgroup.WithContext(ctx)
	snapshots := f.monitor.Run(gctx)
	updates := make(chan Update)

	g.Go(func() error {
		defer close(updates)
		for snap := range snapshots {
			alerts := f.monitor.CheckThresholds(snap)
			for _, alert := range alerts {
				f.handler.Warning("%s", alert)
			}
			select {
			case updates <- Update{Snapshot: snap, Alerts: alerts}:
			case <-gctx.Done():
				return nil
			}
		}
		return nil
	})

	g.Go(func() error {
		for u := range updates {
			if err := fn(u); err != nil {
				return err
			}
		}
		return nil
	})

	return g.Wait()
}

// SaveSettings writes the settings store to the configured path.
func (f *Facade) SaveSettings() error {
	if f.cfg.Settings.Path == "" {
		return errors.New(errors.ErrConfig, "No settings path configured", "Set settings.path in .corebase.yaml")
	}
	return f.settings.Save(f.cfg.Settings.Path)
}

// Close closes every connection, then shuts the runtime service down.
// Closing twice is harmless.
func (f *Facade) Close() error {
	f.registry.CloseAll()
	return f.handler.HandleError(f.svc.Shutdown())
}
