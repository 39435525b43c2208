package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"strings"

	"github.com/seregonwar/CoreBaseApplication/internal/errors"
)

// JSONEnvelope is the single document every --json command writes:
// data on success, error otherwise.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError mirrors errors.Error. Severity is the level the error is logged at.
type JSONError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
	Severity   string      `json:"severity,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

// Refinements of errors.ErrConfig so scripts can tell a missing file from a bad one.
const (
	ErrCodeConfigNotFound = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "CONFIG_INVALID"
)

func WriteJSONSuccess(w io.Writer, data interface{}) error {
	return encodeEnvelope(w, JSONEnvelope{Success: true, Data: data})
}

// WriteJSONError writes a failure envelope built from its parts.
func WriteJSONError(w io.Writer, code, message, suggestion string, details interface{}) error {
	return encodeEnvelope(w, JSONEnvelope{Error: &JSONError{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Severity:   errors.Severity(code).String(),
		Details:    details,
	}})
}

func WriteJSONFromError(w io.Writer, err error) error {
	return encodeEnvelope(w, JSONEnvelope{Error: ErrorToJSON(err)})
}

func encodeEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON flattens err. A cause becomes details.cause; errors that are
// not structured are reported as UNKNOWN with their full text.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	var e *errors.Error
	if !stderrors.As(err, &e) {
		return &JSONError{
			Code:     errors.ErrUnknown,
			Message:  err.Error(),
			Severity: errors.Severity(errors.ErrUnknown).String(),
		}
	}

	out := &JSONError{
		Code:       jsonCode(e),
		Message:    e.Message,
		Suggestion: e.Suggestion,
		Severity:   e.Severity().String(),
	}
	if e.Cause != nil {
		out.Details = map[string]interface{}{"cause": e.Cause.Error()}
	}
	return out
}

func jsonCode(e *errors.Error) string {
	if e.Code != errors.ErrConfig {
		return e.Code
	}
	msg := strings.ToLower(e.Message)
	if strings.Contains(msg, "not found") || strings.Contains(msg, "couldn't find") {
		return ErrCodeConfigNotFound
	}
	return ErrCodeConfigInvalid
}
