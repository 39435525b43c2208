package runtime

import (
	"fmt"
	goruntime "runtime"
	"sync"

	"github.com/seregonwar/CoreBaseApplication/internal/errors"
	"github.com/seregonwar/CoreBaseApplication/internal/logger"
)

// ErrorInfo describes a handled error and where it was reported from.
type ErrorInfo struct {
	Err      error
	Code     string
	Severity logger.Level
	File     string
	Line     int
	Function string
}

// LogEntry is a message that passed the handler's level filter.
type LogEntry struct {
	Level   logger.Level
	Message string
}

// ErrorCallback observes handled errors.
type ErrorCallback func(ErrorInfo)

// LogCallback observes log entries.
type LogCallback func(LogEntry)

// ErrorHandler logs errors at the severity of their kind and notifies callbacks.
// Messages below the configured level are dropped before reaching the sink.
type ErrorHandler struct {
	log logger.Logger

	mu             sync.RWMutex
	level          logger.Level
	nextID         int
	errorCallbacks map[int]ErrorCallback
	logCallbacks   map[int]LogCallback
}

// NewErrorHandler creates a handler writing to log at LevelInfo and above.
func NewErrorHandler(log logger.Logger) *ErrorHandler {
	if log == nil {
		log = logger.Noop()
	}
	return &ErrorHandler{
		log:            log,
		level:          logger.LevelInfo,
		errorCallbacks: make(map[int]ErrorCallback),
		logCallbacks:   make(map[int]LogCallback),
	}
}

// SetLevel sets the minimum level forwarded to the sink.
func (h *ErrorHandler) SetLevel(level logger.Level) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.level = level
}

// Level returns the minimum level forwarded to the sink.
func (h *ErrorHandler) Level() logger.Level {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.level
}

// Log writes a formatted message at level.
func (h *ErrorHandler) Log(level logger.Level, format string, args ...interface{}) {
	h.mu.RLock()
	if level < h.level {
		h.mu.RUnlock()
		return
	}
	callbacks := make([]LogCallback, 0, len(h.logCallbacks))
	for _, cb := range h.logCallbacks {
		callbacks = append(callbacks, cb)
	}
	h.mu.RUnlock()

	msg := fmt.Sprintf(format, args...)
	logger.Log(h.log, level, "%s", msg)

	entry := LogEntry{Level: level, Message: msg}
	for _, cb := range callbacks {
		cb(entry)
	}
}

func (h *ErrorHandler) Debug(format string, args ...interface{}) {
	h.Log(logger.LevelDebug, format, args...)
}

func (h *ErrorHandler) Info(format string, args ...interface{}) {
	h.Log(logger.LevelInfo, format, args...)
}

func (h *ErrorHandler) Warning(format string, args ...interface{}) {
	h.Log(logger.LevelWarning, format, args...)
}

func (h *ErrorHandler) Error(format string, args ...interface{}) {
	h.Log(logger.LevelError, format, args...)
}

func (h *ErrorHandler) Critical(format string, args ...interface{}) {
	h.Log(logger.LevelCritical, format, args...)
}

// HandleError logs err at the severity of its kind, notifies error callbacks
// with the caller's location, and returns err unchanged. A nil err is ignored.
func (h *ErrorHandler) HandleError(err error) error {
	if err == nil {
		return nil
	}

	info := ErrorInfo{
		Err:      err,
		Code:     errors.CodeOf(err),
		Severity: errors.SeverityOf(err),
	}
	if pc, file, line, ok := goruntime.Caller(1); ok {
		info.File = file
		info.Line = line
		if fn := goruntime.FuncForPC(pc); fn != nil {
			info.Function = fn.Name()
		}
	}

	h.Log(info.Severity, "%s", err.Error())

	h.mu.RLock()
	callbacks := make([]ErrorCallback, 0, len(h.errorCallbacks))
	for _, cb := range h.errorCallbacks {
		callbacks = append(callbacks, cb)
	}
	h.mu.RUnlock()

	for _, cb := range callbacks {
		cb(info)
	}
	return err
}

// OnError registers cb and returns an id for RemoveCallback.
func (h *ErrorHandler) OnError(cb ErrorCallback) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	h.errorCallbacks[h.nextID] = cb
	return h.nextID
}

// OnLog registers cb and returns an id for RemoveCallback.
func (h *ErrorHandler) OnLog(cb LogCallback) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	h.logCallbacks[h.nextID] = cb
	return h.nextID
}

// RemoveCallback unregisters the callback with id. Unknown ids are ignored.
func (h *ErrorHandler) RemoveCallback(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.errorCallbacks, id)
	delete(h.logCallbacks, id)
}
