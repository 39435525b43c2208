package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckThresholds(t *testing.T) {
	hot := ResourceSnapshot{
		CPUPercent:      85,
		AvailableMemory: 10,
		TotalMemory:     100,
		AvailableDisk:   5,
		TotalDisk:       100,
		NetworkPercent:  81,
		GPUPercent:      99.94,
	}

	tests := []struct {
		name   string
		snap   ResourceSnapshot
		policy func() Policy
		want   []string
	}{
		{
			name:   "all exceeded in fixed order",
			snap:   hot,
			policy: DefaultPolicy,
			want: []string{
				"CPU usage (85.0%) exceeds threshold (80.0%)",
				"Memory usage (90.0%) exceeds threshold (85.0%)",
				"Disk usage (95.0%) exceeds threshold (90.0%)",
				"Network usage (81.0%) exceeds threshold (80.0%)",
				"GPU usage (99.9%) exceeds threshold (80.0%)",
			},
		},
		{
			name: "disabled categories never alert",
			snap: hot,
			policy: func() Policy {
				p := DefaultPolicy()
				p.EnableCPU = false
				p.EnableDisk = false
				p.EnableGPU = false
				return p
			},
			want: []string{
				"Memory usage (90.0%) exceeds threshold (85.0%)",
				"Network usage (81.0%) exceeds threshold (80.0%)",
			},
		},
		{
			name:   "equal to threshold is not an alert",
			snap:   ResourceSnapshot{CPUPercent: 80, NetworkPercent: 80, GPUPercent: 80, AvailableMemory: 50, TotalMemory: 100},
			policy: DefaultPolicy,
			want:   nil,
		},
		{
			name:   "quiet host",
			snap:   ResourceSnapshot{CPUPercent: 5, AvailableMemory: 90, TotalMemory: 100},
			policy: DefaultPolicy,
			want:   nil,
		},
		{
			name: "custom thresholds",
			snap: ResourceSnapshot{CPUPercent: 30.26},
			policy: func() Policy {
				p := DefaultPolicy()
				p.Thresholds.CPU = 30
				return p
			},
			want: []string{"CPU usage (30.3%) exceeds threshold (30.0%)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckThresholds(tt.snap, tt.policy()))
		})
	}
}
