package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/seregonwar/CoreBaseApplication/internal/config"
	"github.com/seregonwar/CoreBaseApplication/internal/core"
	"github.com/seregonwar/CoreBaseApplication/internal/dashboard"
	"github.com/seregonwar/CoreBaseApplication/internal/encoding"
	"github.com/seregonwar/CoreBaseApplication/internal/errors"
	"github.com/seregonwar/CoreBaseApplication/internal/logger"
	"github.com/seregonwar/CoreBaseApplication/internal/monitor"
	"github.com/seregonwar/CoreBaseApplication/internal/ui"
	"github.com/spf13/cobra"
)

// errWatchDone stops a plain watch after --count updates.
var errWatchDone = stderrors.New("watch count reached")

var shortNames = map[monitor.Resource]string{
	monitor.ResourceCPU:     "cpu",
	monitor.ResourceMemory:  "mem",
	monitor.ResourceDisk:    "disk",
	monitor.ResourceNetwork: "net",
	monitor.ResourceGPU:     "gpu",
}

func (a *app) watchCmd() *cobra.Command {
	var (
		interval    string
		plain       bool
		metricsAddr string
		count       int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Monitor resources continuously",
		Long: `Sample resources on the configured interval and show them live.

On a terminal this opens a dashboard with progress bars, sparklines and
alerts. With --plain, --json, or when output is not a terminal, one line
(or one JSON object) is written per sample instead.

Keyboard shortcuts (dashboard):
  q / Ctrl+C  Quit
  p           Pause or resume the display
  r           Clear the sample history
  ?           Show help

Examples:
  corebase watch
  corebase watch --interval 5s
  corebase watch --plain --count 10
  corebase watch --metrics-addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseInterval(interval)
			if err != nil {
				return err
			}
			if count < 0 {
				return errors.New(errors.ErrInvalidParameter,
					"--count can't be negative",
					"Use 0 to watch until interrupted")
			}

			s, err := a.openSession(func(cfg *config.Config) error {
				if d > 0 {
					cfg.Monitor.Interval = d
				}
				return nil
			})
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			addr := metricsAddr
			if addr == "" {
				addr = s.cfg.Metrics.Listen
			}
			if addr != "" {
				_, shutdown, err := serveMetrics(addr, s.facade.Metrics().Handler(), s.log)
				if err != nil {
					return err
				}
				defer shutdown()
			}

			if !plain && !a.jsonOut && a.isTerminal(a.stdout) {
				return dashboard.Run(ctx, s.facade)
			}

			policy := s.facade.Monitor().Policy()
			seen := 0
			err = s.facade.Watch(ctx, func(u core.Update) error {
				if a.jsonOut {
					if err := writeJSONLine(a.stdout, encoding.NewReport(u.Snapshot, u.Alerts, nil)); err != nil {
						return err
					}
				} else {
					fmt.Fprintln(a.stdout, formatWatchLine(u, policy))
				}
				seen++
				if count > 0 && seen >= count {
					return errWatchDone
				}
				return nil
			})
			if stderrors.Is(err, errWatchDone) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&interval, "interval", "", "sampling interval, e.g. 2s (default: monitor.interval)")
	cmd.Flags().BoolVar(&plain, "plain", false, "print one line per sample instead of the dashboard")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "stop after this many samples (plain mode)")
	return cmd
}

// formatWatchLine renders one sample as "15:04:05 cpu 12.0% mem 40.0% ...".
func formatWatchLine(u core.Update, policy monitor.Policy) string {
	var sb strings.Builder
	sb.WriteString(time.Unix(u.Snapshot.Timestamp, 0).Format(time.TimeOnly))

	for _, r := range monitor.Resources {
		if !policy.Enabled(r) {
			continue
		}
		fmt.Fprintf(&sb, " %s %.1f%%", shortNames[r], u.Snapshot.Percent(r))
	}

	if len(u.Alerts) > 0 {
		sb.WriteString("  ")
		sb.WriteString(ui.SymbolWarning)
		sb.WriteString(" ")
		sb.WriteString(strings.Join(u.Alerts, "; "))
	}
	return sb.String()
}

func writeJSONLine(w io.Writer, v interface{}) error {
	return json.NewEncoder(w).Encode(v)
}

// serveMetrics exposes handler on addr at /metrics and returns the bound
// address. The returned function stops the server.
func serveMetrics(addr string, handler http.Handler, log logger.Logger) (string, func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.WrapWithCode(err, errors.ErrNetwork,
			"Can't listen on "+addr,
			"Pick a free address with --metrics-addr")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped: %v", err)
		}
	}()
	log.Info("serving metrics on http://%s/metrics", ln.Addr())

	return ln.Addr().String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
