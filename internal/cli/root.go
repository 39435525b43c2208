package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/seregonwar/CoreBaseApplication/internal/config"
	"github.com/seregonwar/CoreBaseApplication/internal/core"
	"github.com/seregonwar/CoreBaseApplication/internal/errors"
	"github.com/seregonwar/CoreBaseApplication/internal/logger"
	"github.com/seregonwar/CoreBaseApplication/internal/monitor"
	"github.com/seregonwar/CoreBaseApplication/internal/network"
	"github.com/seregonwar/CoreBaseApplication/internal/runtime"
	"github.com/seregonwar/CoreBaseApplication/internal/ui"
	"github.com/spf13/cobra"
)

// app holds global flags and the collaborators commands are built from.
type app struct {
	stdout io.Writer
	stderr io.Writer

	newTransport func(log logger.Logger) network.Transport
	newSampler   func(cfg *config.Config) monitor.Sampler
	isTerminal   func(w io.Writer) bool
	confirm      func(title string) (bool, error)
	httpClient   *http.Client

	configPath string
	jsonOut    bool
	verbose    bool
}

func newApp() *app {
	return &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		newTransport: func(log logger.Logger) network.Transport {
			return network.NewDialTransport(log)
		},
		newSampler: func(cfg *config.Config) monitor.Sampler {
			return monitor.NewHostSampler(cfg.Monitor.DiskPath, cfg.Monitor.LinkSpeed)
		},
		isTerminal: ui.IsTerminal,
		confirm:    confirmPrompt,
	}
}

// Execute runs the CLI and exits the process with the resulting code.
func Execute() {
	os.Exit(newApp().run(context.Background(), os.Args[1:]))
}

// run executes args and returns the process exit code. Errors are printed
// here, as a formatted block or a JSON envelope.
func (a *app) run(ctx context.Context, args []string) int {
	root := a.rootCmd()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if code, ok := errors.GetExitCode(err); ok {
		return code
	}

	if a.jsonOut {
		_ = WriteJSONFromError(a.stdout, err)
	} else {
		fmt.Fprint(a.stderr, errors.Format(err))
	}
	return 1
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "corebase",
		Short: "Connection registry and resource monitor",
		Long: `corebase manages network connections across protocols and samples
host resource usage (CPU, memory, disk, network, GPU) against alert thresholds.

Configuration is read from .corebase.yaml (see 'corebase config init').`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.jsonOut {
				ui.DisableColors()
				return
			}
			ui.ConfigureColor(a.stdout)
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: search for .corebase.yaml)")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "machine-readable JSON output")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		a.versionCmd(),
		a.sampleCmd(),
		a.watchCmd(),
		a.connectCmd(),
		a.configCmd(),
		a.completionCmd(root),
	)
	return root
}

// loadConfig finds, loads and validates the config; defaults apply when no file exists.
func (a *app) loadConfig() (*config.Config, string, error) {
	cfg, path, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return nil, "", err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// session is the set of live components a command works with.
type session struct {
	cfg      *config.Config
	log      logger.Logger
	facade   *core.Facade
	closeLog func() error
}

// openSession loads config, lets adjust override it, and builds the facade.
func (a *app) openSession(adjust func(*config.Config) error) (*session, error) {
	cfg, _, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	if adjust != nil {
		if err := adjust(cfg); err != nil {
			return nil, err
		}
	}

	level := logger.ParseLevel(cfg.Log.Level)
	if a.verbose {
		level = logger.LevelDebug
	}
	log, closeLog, err := logger.NewZap(logger.ZapOptions{
		Level:   level,
		Console: a.stderr,
		File:    cfg.Log.File,
		JSON:    cfg.Log.JSON,
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Can't open the log file",
			"Check log.file in your .corebase.yaml")
	}

	svc := runtime.NewService(log)
	f, err := core.New(svc, cfg, a.newTransport(log), a.newSampler(cfg), core.WithLogger(log))
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	return &session{cfg: cfg, log: log, facade: f, closeLog: closeLog}, nil
}

// Close closes every connection, stops the runtime service and flushes the log.
func (s *session) Close() error {
	err := s.facade.Close()
	_ = s.closeLog()
	return err
}
