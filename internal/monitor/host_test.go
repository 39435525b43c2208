package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHostSampler_Defaults(t *testing.T) {
	s := NewHostSampler("", 0)
	assert.Equal(t, DefaultDiskPath, s.diskPath)
	assert.Equal(t, float64(DefaultLinkSpeed), s.linkSpeed)

	s = NewHostSampler("/data", 1000)
	assert.Equal(t, "/data", s.diskPath)
	assert.Equal(t, 1000.0, s.linkSpeed)
}

func TestHostSampler_NetworkPercent(t *testing.T) {
	s := NewHostSampler("/", 1000) // 1000 bytes/s link
	t0 := time.Unix(100, 0)

	assert.Zero(t, s.networkPercent(5000, t0), "first call is the baseline")
	assert.InDelta(t, 50.0, s.networkPercent(5500, t0.Add(time.Second)), 1e-9)
	assert.InDelta(t, 25.0, s.networkPercent(6000, t0.Add(3*time.Second)), 1e-9)
	assert.Equal(t, 100.0, s.networkPercent(99999, t0.Add(4*time.Second)), "clamped to the link speed")
	assert.Zero(t, s.networkPercent(10, t0.Add(5*time.Second)), "counter reset")
	assert.Zero(t, s.networkPercent(20, t0.Add(5*time.Second)), "no time elapsed")
}

func TestHostSampler_GPU(t *testing.T) {
	v, err := NewHostSampler("", 0).GPUUsage()
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestHostSampler_ReadsLocalHost(t *testing.T) {
	s := NewHostSampler("", 0)

	avail, total, err := s.MemoryUsage()
	require.NoError(t, err)
	assert.Positive(t, total)
	assert.LessOrEqual(t, avail, total)

	avail, total, err = s.DiskUsage()
	require.NoError(t, err)
	assert.Positive(t, total)
	assert.LessOrEqual(t, avail, total)

	cpu, err := s.CPUUsage()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cpu, 0.0)
	assert.LessOrEqual(t, cpu, 100.0)

	first, err := s.NetworkUsage()
	require.NoError(t, err)
	assert.Zero(t, first)
}

func TestHostSampler_WithMonitor(t *testing.T) {
	m, err := New(NewHostSampler("", 0), DefaultPolicy())
	require.NoError(t, err)

	snap := m.Sample()
	assert.Positive(t, snap.TotalMemory)
	assert.Positive(t, snap.Timestamp)
	assert.Equal(t, 1, m.History().Len())
}
