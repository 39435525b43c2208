package runtime

import (
	"fmt"
	"strings"
	"testing"

	"github.com/seregonwar/CoreBaseApplication/internal/errors"
	"github.com/seregonwar/CoreBaseApplication/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler_HandleErrorUsesSeverity(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level string
	}{
		{"initialization is critical", errors.New(errors.ErrInitialization, "boot", ""), "critical"},
		{"shutdown is critical", errors.New(errors.ErrShutdown, "stop", ""), "critical"},
		{"network is error", errors.New(errors.ErrNetwork, "down", ""), "error"},
		{"config is error", errors.New(errors.ErrConfig, "bad", ""), "error"},
		{"monitor is warning", errors.New(errors.ErrMonitor, "cpu", ""), "warn"},
		{"not found is warning", errors.New(errors.ErrNotFound, "conn", ""), "warn"},
		{"timeout is warning", errors.New(errors.ErrTimeout, "slow", ""), "warn"},
		{"plain errors are unknown", fmt.Errorf("boom"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := logger.NewBufferLogger()
			h := NewErrorHandler(buf)

			got := h.HandleError(tt.err)
			assert.Same(t, tt.err, got)

			msgs := buf.Snapshot()
			require.Len(t, msgs, 1)
			assert.Equal(t, tt.level, msgs[0].Level)
			assert.Equal(t, tt.err.Error(), msgs[0].Message)
		})
	}
}

func TestErrorHandler_HandleNil(t *testing.T) {
	buf := logger.NewBufferLogger()
	h := NewErrorHandler(buf)

	assert.NoError(t, h.HandleError(nil))
	assert.Empty(t, buf.Snapshot())
}

func TestErrorHandler_LevelFilter(t *testing.T) {
	buf := logger.NewBufferLogger()
	h := NewErrorHandler(buf)
	assert.Equal(t, logger.LevelInfo, h.Level())

	h.Debug("hidden")
	h.Info("shown %d", 1)
	assert.Len(t, buf.Snapshot(), 1)

	h.SetLevel(logger.LevelError)
	h.Warning("hidden")
	h.Error("shown %d", 2)
	h.Critical("shown %d", 3)

	msgs := buf.Snapshot()
	require.Len(t, msgs, 3)
	assert.Equal(t, "shown 2", msgs[1].Message)
	assert.Equal(t, "critical", msgs[2].Level)

	// Warning-severity errors are filtered too, but still returned.
	err := errors.New(errors.ErrTimeout, "slow", "")
	assert.Same(t, err, h.HandleError(err))
	assert.Len(t, buf.Snapshot(), 3)
}

func TestErrorHandler_Callbacks(t *testing.T) {
	h := NewErrorHandler(nil)

	var infos []ErrorInfo
	var entries []LogEntry
	errID := h.OnError(func(info ErrorInfo) { infos = append(infos, info) })
	logID := h.OnLog(func(e LogEntry) { entries = append(entries, e) })
	assert.NotEqual(t, errID, logID)

	err := errors.New(errors.ErrNetwork, "unreachable", "")
	h.HandleError(err)

	require.Len(t, infos, 1)
	info := infos[0]
	assert.Same(t, err, info.Err)
	assert.Equal(t, errors.ErrNetwork, info.Code)
	assert.Equal(t, logger.LevelError, info.Severity)
	assert.True(t, strings.HasSuffix(info.File, "handler_test.go"), info.File)
	assert.Positive(t, info.Line)
	assert.Contains(t, info.Function, "TestErrorHandler_Callbacks")

	require.Len(t, entries, 1)
	assert.Equal(t, logger.LevelError, entries[0].Level)

	h.RemoveCallback(errID)
	h.RemoveCallback(logID)
	h.RemoveCallback(999)
	h.HandleError(err)
	assert.Len(t, infos, 1)
	assert.Len(t, entries, 1)
}
