package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/seregonwar/CoreBaseApplication/internal/logger"
)

// Error codes for categorizing errors
const (
	ErrInitialization   = "INITIALIZATION_FAILED"
	ErrShutdown         = "SHUTDOWN_FAILED"
	ErrInvalidString    = "INVALID_STRING"
	ErrConfig           = "CONFIG"
	ErrNetwork          = "NETWORK"
	ErrMonitor          = "MONITOR"
	ErrOperationFailed  = "OPERATION_FAILED"
	ErrInvalidParameter = "INVALID_PARAMETER"
	ErrNotFound         = "RESOURCE_NOT_FOUND"
	ErrPermission       = "PERMISSION_DENIED"
	ErrTimeout          = "TIMEOUT"
	ErrUnknown          = "UNKNOWN"
)

// Codes lists every error code in declaration order.
var Codes = []string{
	ErrInitialization,
	ErrShutdown,
	ErrInvalidString,
	ErrConfig,
	ErrNetwork,
	ErrMonitor,
	ErrOperationFailed,
	ErrInvalidParameter,
	ErrNotFound,
	ErrPermission,
	ErrTimeout,
	ErrUnknown,
}

var labels = map[string]string{
	ErrInitialization:   "Initialization failed",
	ErrShutdown:         "Shutdown failed",
	ErrInvalidString:    "Invalid string",
	ErrConfig:           "Configuration error",
	ErrNetwork:          "Network error",
	ErrMonitor:          "System monitor error",
	ErrOperationFailed:  "Operation failed",
	ErrInvalidParameter: "Invalid parameter",
	ErrNotFound:         "Resource not found",
	ErrPermission:       "Permission denied",
	ErrTimeout:          "Timeout occurred",
	ErrUnknown:          "Unknown error",
}

// Label returns the human-readable prefix for a code.
// Unrecognized codes use the Unknown label.
func Label(code string) string {
	if l, ok := labels[code]; ok {
		return l
	}
	return labels[ErrUnknown]
}

// Severity returns the log level an error of the given code is reported at.
func Severity(code string) logger.Level {
	switch code {
	case ErrInitialization, ErrShutdown:
		return logger.LevelCritical
	case ErrMonitor, ErrInvalidParameter, ErrNotFound, ErrTimeout:
		return logger.LevelWarning
	default:
		return logger.LevelError
	}
}

// Error represents a structured error with code, message, suggestion, and optional cause.
//
// Error() renders "<label>: <message>" so errors compose in log lines.
// Format renders the multi-line block used by the CLI:
//
//	✗ <label>: <message>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Newf creates a structured error without a suggestion using a format string.
func Newf(code, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with a message, defaulting to the Unknown code.
// If err is already structured its code is kept.
func Wrap(err error, message string) *Error {
	code := ErrUnknown
	var e *Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return &Error{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// NotInitialized is returned by operations used before the runtime service started.
func NotInitialized(component string) *Error {
	return &Error{
		Code:       ErrOperationFailed,
		Message:    fmt.Sprintf("%s not initialized", component),
		Suggestion: "Initialize the runtime service before using it",
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", Label(e.Code), e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Severity returns the log level this error is reported at.
func (e *Error) Severity() logger.Level {
	return Severity(e.Code)
}

// Format renders err as the multi-line block shown to users.
// Errors that are not structured are rendered with the Unknown label.
func Format(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if !errors.As(err, &e) {
		return fmt.Sprintf("✗ %s: %s\n", Label(ErrUnknown), err.Error())
	}

	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s: %s\n", Label(e.Code), e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf returns the code of the outermost structured error in err's chain,
// or ErrUnknown when there is none.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrUnknown
}

// SeverityOf returns the log level for any error.
func SeverityOf(err error) logger.Level {
	return Severity(CodeOf(err))
}

// ExitError carries a process exit code without an error message of its own.
// Commands return it when the outcome was already reported to the user.
type ExitError struct {
	Code int
}

// NewExitError creates an ExitError for the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// GetExitCode extracts the code from an ExitError in err's chain.
func GetExitCode(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
