package monitor

import (
	"sync"
	"time"

	"github.com/seregonwar/CoreBaseApplication/internal/errors"
	"github.com/seregonwar/CoreBaseApplication/internal/logger"
	"github.com/seregonwar/CoreBaseApplication/internal/metrics"
)

// Monitor samples a Sampler according to a Policy and records the results in a History.
type Monitor struct {
	sampler Sampler
	history *History
	log     logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	mu         sync.Mutex // protects policy and lastUpdate
	policy     Policy
	lastUpdate time.Time
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithLogger sets the logger used for failed readings.
func WithLogger(l logger.Logger) Option {
	return func(m *Monitor) {
		if l != nil {
			m.log = l
		}
	}
}

// WithMetrics records samples, failures and alerts on mt.
func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Monitor) {
		m.metrics = mt
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) {
		if now != nil {
			m.now = now
		}
	}
}

// New creates a monitor. The policy must pass Validate.
func New(sampler Sampler, policy Policy, opts ...Option) (*Monitor, error) {
	if sampler == nil {
		return nil, errors.New(errors.ErrInvalidParameter, "monitor requires a sampler", "")
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	m := &Monitor{
		sampler: sampler,
		policy:  policy,
		log:     logger.Noop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.history = newHistory(policy.HistorySize, m.now)
	m.metrics.SetHistorySize(0)
	return m, nil
}

// Sample reads every enabled resource, records the projection in History and returns the snapshot.
// A failed reading leaves its fields at zero and is logged; it never fails the whole sample.
func (m *Monitor) Sample() ResourceSnapshot {
	policy := m.Policy()
	var snap ResourceSnapshot

	if policy.EnableCPU {
		if v, err := m.sampler.CPUUsage(); err != nil {
			m.readFailed(ResourceCPU, err)
		} else {
			snap.CPUPercent = v
		}
	}
	if policy.EnableMemory {
		if avail, total, err := m.sampler.MemoryUsage(); err != nil {
			m.readFailed(ResourceMemory, err)
		} else {
			snap.AvailableMemory, snap.TotalMemory = avail, total
		}
	}
	if policy.EnableDisk {
		if avail, total, err := m.sampler.DiskUsage(); err != nil {
			m.readFailed(ResourceDisk, err)
		} else {
			snap.AvailableDisk, snap.TotalDisk = avail, total
		}
	}
	if policy.EnableNetwork {
		if v, err := m.sampler.NetworkUsage(); err != nil {
			m.readFailed(ResourceNetwork, err)
		} else {
			snap.NetworkPercent = v
		}
	}
	if policy.EnableGPU {
		if v, err := m.sampler.GPUUsage(); err != nil {
			m.readFailed(ResourceGPU, err)
		} else {
			snap.GPUPercent = v
		}
	}

	now := m.now()
	snap.Timestamp = now.Unix()

	m.history.Push(snap.Sample())

	m.mu.Lock()
	m.lastUpdate = now
	m.mu.Unlock()

	m.metrics.ObserveSample(snap.CPUPercent, snap.MemoryPercent(), snap.DiskPercent(), snap.NetworkPercent, snap.GPUPercent)
	m.metrics.SetHistorySize(m.history.Len())
	return snap
}

func (m *Monitor) readFailed(r Resource, err error) {
	m.log.Warn("reading %s usage failed: %v", r, err)
	m.metrics.ObserveSampleError(string(r))
}

// CPUUsage reads CPU utilisation directly from the sampler.
func (m *Monitor) CPUUsage() (float64, error) {
	v, err := m.sampler.CPUUsage()
	if err != nil {
		return 0, monitorError(ResourceCPU, err)
	}
	return v, nil
}

// MemoryUsage reads available and total memory in bytes.
func (m *Monitor) MemoryUsage() (available, total float64, err error) {
	available, total, err = m.sampler.MemoryUsage()
	if err != nil {
		return 0, 0, monitorError(ResourceMemory, err)
	}
	return available, total, nil
}

// DiskUsage reads available and total disk space in bytes.
func (m *Monitor) DiskUsage() (available, total float64, err error) {
	available, total, err = m.sampler.DiskUsage()
	if err != nil {
		return 0, 0, monitorError(ResourceDisk, err)
	}
	return available, total, nil
}

// NetworkUsage reads network utilisation in percent.
func (m *Monitor) NetworkUsage() (float64, error) {
	v, err := m.sampler.NetworkUsage()
	if err != nil {
		return 0, monitorError(ResourceNetwork, err)
	}
	return v, nil
}

// GPUUsage reads GPU utilisation in percent.
func (m *Monitor) GPUUsage() (float64, error) {
	v, err := m.sampler.GPUUsage()
	if err != nil {
		return 0, monitorError(ResourceGPU, err)
	}
	return v, nil
}

func monitorError(r Resource, err error) error {
	return errors.WrapWithCode(err, errors.ErrMonitor, "Failed to get "+string(r)+" usage", "")
}

// History returns the sample history. It is safe to read concurrently with sampling.
func (m *Monitor) History() *History {
	return m.history
}

// ResetHistory drops every recorded sample.
func (m *Monitor) ResetHistory() {
	m.history.Clear()
	m.metrics.SetHistorySize(0)
}

// Policy returns the current policy.
func (m *Monitor) Policy() Policy {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.policy
}

// SetPolicy replaces the policy and shrinks or grows History to the new size.
func (m *Monitor) SetPolicy(p Policy) error {
	if err := p.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	m.policy = p
	m.mu.Unlock()

	m.history.Resize(p.HistorySize)
	m.metrics.SetHistorySize(m.history.Len())
	return nil
}

// LastUpdate returns when the last sample was taken, or the zero time if never.
func (m *Monitor) LastUpdate() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastUpdate
}

// Due reports whether a sample should be taken: never sampled, or at least one interval elapsed.
func (m *Monitor) Due() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lastUpdate.IsZero() {
		return true
	}
	return m.now().Sub(m.lastUpdate) >= m.policy.Interval
}
