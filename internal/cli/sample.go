package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/seregonwar/CoreBaseApplication/internal/encoding"
	"github.com/seregonwar/CoreBaseApplication/internal/errors"
	"github.com/seregonwar/CoreBaseApplication/internal/monitor"
	"github.com/seregonwar/CoreBaseApplication/internal/ui"
	"github.com/spf13/cobra"
)

// ExitAlert is the exit code of 'sample --fail-on-alert' when a threshold is exceeded.
const ExitAlert = 2

var resourceNames = map[monitor.Resource]string{
	monitor.ResourceCPU:     "CPU",
	monitor.ResourceMemory:  "Memory",
	monitor.ResourceDisk:    "Disk",
	monitor.ResourceNetwork: "Network",
	monitor.ResourceGPU:     "GPU",
}

func (a *app) sampleCmd() *cobra.Command {
	var (
		format      string
		post        string
		failOnAlert bool
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Take one resource snapshot",
		Long: `Sample every enabled resource once and check it against the configured
thresholds.

The text format prints a table; json, yaml and cbor write the report for
other tools. --post sends the report to an HTTP endpoint (text becomes json).

Examples:
  corebase sample
  corebase sample --format yaml
  corebase sample --format cbor --post http://collector:8080/ingest
  corebase sample --fail-on-alert`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var f encoding.Format
			if format != "text" {
				parsed, err := encoding.ParseFormat(format)
				if err != nil {
					return err
				}
				f = parsed
			}

			s, err := a.openSession(nil)
			if err != nil {
				return err
			}
			defer s.Close()

			snap, alerts, err := s.facade.Sample()
			if err != nil {
				return err
			}
			report := encoding.NewReport(snap, alerts, s.facade.Monitor().History())

			if post != "" {
				postFormat := f
				if postFormat == "" {
					postFormat = encoding.FormatJSON
				}
				if err := encoding.Post(cmd.Context(), a.httpClient, post, postFormat, report); err != nil {
					return err
				}
				s.log.Info("posted %s report to %s", postFormat, post)
			}

			switch {
			case a.jsonOut:
				if err := WriteJSONSuccess(a.stdout, report); err != nil {
					return err
				}
			case f == "":
				renderSample(a.stdout, snap, alerts, s.facade.Monitor().Policy())
				if post != "" {
					printSuccess(a.stdout, "Report sent to %s", post)
				}
			default:
				if err := encoding.Write(a.stdout, f, report); err != nil {
					return err
				}
			}

			if failOnAlert && len(alerts) > 0 {
				return errors.NewExitError(ExitAlert)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, yaml or cbor")
	cmd.Flags().StringVar(&post, "post", "", "POST the report to this URL")
	cmd.Flags().BoolVar(&failOnAlert, "fail-on-alert", false, fmt.Sprintf("exit with code %d when a threshold is exceeded", ExitAlert))
	return cmd
}

// renderSample prints the snapshot as a table followed by the alerts.
func renderSample(w io.Writer, snap monitor.ResourceSnapshot, alerts []string, policy monitor.Policy) {
	fmt.Fprint(w, ui.RenderHeader(ui.HeaderInfo{
		Version: formatVersion(version),
		Tagline: "resource snapshot",
	}))
	fmt.Fprintln(w)

	var rows [][]string
	for _, r := range monitor.Resources {
		if !policy.Enabled(r) {
			continue
		}
		pct := snap.Percent(r)
		threshold := policy.Threshold(r)

		status := ui.SymbolSuccess + " ok"
		if pct > threshold {
			status = ui.SymbolWarning + " over"
		}
		rows = append(rows, []string{
			resourceNames[r],
			usageText(snap, r),
			fmt.Sprintf("%.1f%%", threshold),
			status,
		})
	}

	if len(rows) == 0 {
		printMuted(w, "All resources are disabled in the monitor policy.")
	} else {
		fmt.Fprint(w, ui.RenderTable([]string{"Resource", "Usage", "Threshold", "Status"}, rows))
	}
	fmt.Fprintln(w)

	if len(alerts) == 0 {
		printSuccess(w, "All resources within thresholds")
		return
	}
	for _, alert := range alerts {
		printWarning(w, "%s", alert)
	}
}

// usageText adds byte counts for memory and disk.
func usageText(snap monitor.ResourceSnapshot, r monitor.Resource) string {
	pct := fmt.Sprintf("%.1f%%", snap.Percent(r))
	switch r {
	case monitor.ResourceMemory:
		if snap.TotalMemory > 0 {
			return fmt.Sprintf("%s / %s (%s)", humanize.IBytes(uint64(max(snap.UsedMemory(), 0))), humanize.IBytes(uint64(snap.TotalMemory)), pct)
		}
	case monitor.ResourceDisk:
		if snap.TotalDisk > 0 {
			return fmt.Sprintf("%s / %s (%s)", humanize.IBytes(uint64(max(snap.UsedDisk(), 0))), humanize.IBytes(uint64(snap.TotalDisk)), pct)
		}
	}
	return pct
}
