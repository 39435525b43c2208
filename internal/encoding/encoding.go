// Package encoding renders monitoring data as JSON, YAML or CBOR.
package encoding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/seregonwar/CoreBaseApplication/internal/errors"
	"github.com/seregonwar/CoreBaseApplication/internal/monitor"
	"gopkg.in/yaml.v3"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatJSON, FormatYAML, FormatCBOR}

// ParseFormat accepts json, yaml/yml or cbor in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "cbor":
		return FormatCBOR, nil
	}
	return "", errors.New(errors.ErrInvalidParameter,
		fmt.Sprintf("Unknown format %q", s),
		"Use json, yaml or cbor")
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatCBOR:
		return "application/cbor"
	default:
		return "application/json"
	}
}

// Binary reports whether f produces non-text output.
func (f Format) Binary() bool {
	return f == FormatCBOR
}

// Report bundles a snapshot with the alerts it raised and, optionally, history.
type Report struct {
	Snapshot monitor.ResourceSnapshot   `json:"snapshot" yaml:"snapshot" cbor:"snapshot"`
	Alerts   []string                   `json:"alerts" yaml:"alerts" cbor:"alerts"`
	Average  *monitor.MonitoringSample  `json:"average,omitempty" yaml:"average,omitempty" cbor:"average,omitempty"`
	Peak     *monitor.MonitoringSample  `json:"peak,omitempty" yaml:"peak,omitempty" cbor:"peak,omitempty"`
	Samples  []monitor.MonitoringSample `json:"samples,omitempty" yaml:"samples,omitempty" cbor:"samples,omitempty"`
}

// NewReport builds a report. A nil history leaves the summary fields empty.
func NewReport(snap monitor.ResourceSnapshot, alerts []string, history *monitor.History) Report {
	if alerts == nil {
		alerts = []string{}
	}
	r := Report{Snapshot: snap, Alerts: alerts}
	if history != nil && history.Len() > 0 {
		r.Average = history.Average()
		r.Peak = history.Peak()
		r.Samples = history.Samples()
	}
	return r
}

// Marshal encodes v in the given format.
func Marshal(f Format, v interface{}) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatJSON:
		data, err = json.MarshalIndent(v, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case FormatYAML:
		data, err = yaml.Marshal(v)
	case FormatCBOR:
		data, err = cbor.Marshal(v)
	default:
		return nil, errors.Newf(errors.ErrInvalidParameter, "Unknown format %q", string(f))
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrOperationFailed,
			fmt.Sprintf("Failed to encode %s", f), "")
	}
	return data, nil
}

// Unmarshal decodes data in the given format into v.
func Unmarshal(f Format, data []byte, v interface{}) error {
	var err error
	switch f {
	case FormatJSON:
		err = json.Unmarshal(data, v)
	case FormatYAML:
		err = yaml.Unmarshal(data, v)
	case FormatCBOR:
		err = cbor.Unmarshal(data, v)
	default:
		return errors.Newf(errors.ErrInvalidParameter, "Unknown format %q", string(f))
	}
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrOperationFailed,
			fmt.Sprintf("Failed to decode %s", f), "")
	}
	return nil
}

// Write encodes v to w.
func Write(w io.Writer, f Format, v interface{}) error {
	data, err := Marshal(f, v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Post sends v to url with a Content-Type matching f.
// Any non-2xx response is a NetworkError.
func Post(ctx context.Context, client *http.Client, url string, f Format, v interface{}) error {
	body, err := Marshal(f, v)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrInvalidParameter,
			"Invalid report URL: "+url, "")
	}
	req.Header.Set("Content-Type", f.ContentType())

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrNetwork,
			"Failed to send report to "+url,
			"Check the endpoint is reachable")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Newf(errors.ErrNetwork, "Report endpoint %s answered %s", url, resp.Status)
	}
	return nil
}
