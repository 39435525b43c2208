package runtime

import (
	stderrors "errors"
	"sync"
	"sync/atomic"

	"github.com/seregonwar/CoreBaseApplication/internal/errors"
	"github.com/seregonwar/CoreBaseApplication/internal/logger"
)

// Hook is run when the service starts or stops.
type Hook func() error

// Service is the one-time initialization latch for the process.
type Service struct {
	initialized atomic.Bool

	mu      sync.Mutex
	onStart []Hook
	onStop  []Hook
	log     logger.Logger
}

// NewService creates a service in the uninitialized state.
func NewService(log logger.Logger) *Service {
	if log == nil {
		log = logger.Noop()
	}
	return &Service{log: log}
}

// OnInitialize registers a hook run by the next Initialize that actually starts the service.
func (s *Service) OnInitialize(h Hook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStart = append(s.onStart, h)
}

// OnShutdown registers a hook run by Shutdown, in reverse registration order.
func (s *Service) OnShutdown(h Hook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStop = append(s.onStop, h)
}

// Initialize starts the service. Calling it again while initialized is a no-op.
// If a start hook fails the service stays uninitialized.
func (s *Service) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized.Load() {
		return nil
	}

	for _, h := range s.onStart {
		if err := h(); err != nil {
			return errors.WrapWithCode(err, errors.ErrInitialization,
				"runtime service failed to start", "")
		}
	}

	s.initialized.Store(true)
	s.log.Debug("runtime service initialized")
	return nil
}

// Shutdown stops the service. Calling it while not initialized is a no-op.
// Every stop hook runs even when earlier ones fail; failures are joined.
func (s *Service) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized.Load() {
		return nil
	}
	s.initialized.Store(false)

	var errs []error
	for i := len(s.onStop) - 1; i >= 0; i-- {
		if err := s.onStop[i](); err != nil {
			errs = append(errs, err)
		}
	}

	s.log.Debug("runtime service shut down")
	if len(errs) > 0 {
		return errors.WrapWithCode(stderrors.Join(errs...), errors.ErrShutdown,
			"runtime service did not stop cleanly", "")
	}
	return nil
}

// Initialized reports whether the service is running.
func (s *Service) Initialized() bool {
	return s.initialized.Load()
}

// Require returns OperationFailed naming component when the service is not running.
func (s *Service) Require(component string) error {
	if !s.Initialized() {
		return errors.NotInitialized(component)
	}
	return nil
}
