package monitor

import (
	"time"

	"github.com/seregonwar/CoreBaseApplication/internal/errors"
)

const (
	// DefaultInterval is the time between scheduled samples.
	DefaultInterval = time.Second
	// DefaultHistorySize is the number of samples retained.
	DefaultHistorySize = 100
)

// Thresholds are alert limits in percent. A reading alerts only when strictly above its limit.
type Thresholds struct {
	CPU     float64 `json:"cpu" yaml:"cpu" mapstructure:"cpu"`
	Memory  float64 `json:"memory" yaml:"memory" mapstructure:"memory"`
	Disk    float64 `json:"disk" yaml:"disk" mapstructure:"disk"`
	Network float64 `json:"network" yaml:"network" mapstructure:"network"`
	GPU     float64 `json:"gpu" yaml:"gpu" mapstructure:"gpu"`
}

// Policy controls what is sampled, how often, and when to alert.
type Policy struct {
	Interval      time.Duration
	HistorySize   int
	EnableCPU     bool
	EnableMemory  bool
	EnableDisk    bool
	EnableNetwork bool
	EnableGPU     bool
	Thresholds    Thresholds
}

// DefaultPolicy samples everything once a second and keeps 100 samples.
func DefaultPolicy() Policy {
	return Policy{
		Interval:      DefaultInterval,
		HistorySize:   DefaultHistorySize,
		EnableCPU:     true,
		EnableMemory:  true,
		EnableDisk:    true,
		EnableNetwork: true,
		EnableGPU:     true,
		Thresholds: Thresholds{
			CPU:     80,
			Memory:  85,
			Disk:    90,
			Network: 80,
			GPU:     80,
		},
	}
}

// Enabled reports whether r is sampled under this policy.
func (p Policy) Enabled(r Resource) bool {
	switch r {
	case ResourceCPU:
		return p.EnableCPU
	case ResourceMemory:
		return p.EnableMemory
	case ResourceDisk:
		return p.EnableDisk
	case ResourceNetwork:
		return p.EnableNetwork
	case ResourceGPU:
		return p.EnableGPU
	default:
		return false
	}
}

// Threshold returns the alert limit for r.
func (p Policy) Threshold(r Resource) float64 {
	switch r {
	case ResourceCPU:
		return p.Thresholds.CPU
	case ResourceMemory:
		return p.Thresholds.Memory
	case ResourceDisk:
		return p.Thresholds.Disk
	case ResourceNetwork:
		return p.Thresholds.Network
	case ResourceGPU:
		return p.Thresholds.GPU
	default:
		return 0
	}
}

// Validate checks that the interval and history size are usable.
func (p Policy) Validate() error {
	if p.Interval <= 0 {
		return errors.Newf(errors.ErrInvalidParameter, "monitor interval must be positive, got %s", p.Interval)
	}
	if p.HistorySize <= 0 {
		return errors.Newf(errors.ErrInvalidParameter, "history size must be positive, got %d", p.HistorySize)
	}
	return nil
}
