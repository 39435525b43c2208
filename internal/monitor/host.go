package monitor

import (
	"fmt"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"
)

const (
	// DefaultDiskPath is the filesystem HostSampler reports on.
	DefaultDiskPath = "/"
	// DefaultLinkSpeed is 1 Gbit/s expressed in bytes per second.
	DefaultLinkSpeed = 125_000_000
)

// HostSampler reads the local machine through gopsutil.
//
// Network usage is the combined receive and transmit throughput since the
// previous call, as a percentage of LinkSpeed. The first call establishes a
// baseline and reports 0. GPU usage has no portable source and is always 0.
type HostSampler struct {
	diskPath  string
	linkSpeed float64
	now       func() time.Time

	mu        sync.Mutex // protects the network baseline
	lastBytes uint64
	lastAt    time.Time
}

// NewHostSampler creates a sampler reporting disk usage for diskPath and
// network usage relative to linkSpeed bytes per second. Zero values select defaults.
func NewHostSampler(diskPath string, linkSpeed float64) *HostSampler {
	if diskPath == "" {
		diskPath = DefaultDiskPath
	}
	if linkSpeed <= 0 {
		linkSpeed = DefaultLinkSpeed
	}
	return &HostSampler{
		diskPath:  diskPath,
		linkSpeed: linkSpeed,
		now:       time.Now,
	}
}

// CPUUsage returns overall CPU utilisation since the previous call.
func (s *HostSampler) CPUUsage() (float64, error) {
	percents, err := cpu.Percent(0, false)
	if err != nil {
		return 0, err
	}
	if len(percents) == 0 {
		return 0, fmt.Errorf("no CPU readings")
	}
	return percents[0], nil
}

// MemoryUsage returns available and total physical memory in bytes.
func (s *HostSampler) MemoryUsage() (available, total float64, err error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, 0, err
	}
	return float64(vm.Available), float64(vm.Total), nil
}

// DiskUsage returns free and total bytes on the configured filesystem.
func (s *HostSampler) DiskUsage() (available, total float64, err error) {
	usage, err := disk.Usage(s.diskPath)
	if err != nil {
		return 0, 0, err
	}
	return float64(usage.Free), float64(usage.Total), nil
}

// NetworkUsage returns throughput since the previous call as a percentage of the link speed.
func (s *HostSampler) NetworkUsage() (float64, error) {
	counters, err := psnet.IOCounters(false)
	if err != nil {
		return 0, err
	}
	if len(counters) == 0 {
		return 0, nil
	}
	total := counters[0].BytesRecv + counters[0].BytesSent
	return s.networkPercent(total, s.now()), nil
}

// networkPercent folds a cumulative byte counter into a utilisation percentage.
func (s *HostSampler) networkPercent(total uint64, now time.Time) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevBytes, prevAt := s.lastBytes, s.lastAt
	s.lastBytes, s.lastAt = total, now

	if prevAt.IsZero() {
		return 0
	}
	elapsed := now.Sub(prevAt).Seconds()
	// Counter reset or wraparound.
	if elapsed <= 0 || total < prevBytes {
		return 0
	}

	pct := float64(total-prevBytes) / elapsed / s.linkSpeed * 100
	return min(pct, 100)
}

// GPUUsage always returns 0.
func (s *HostSampler) GPUUsage() (float64, error) {
	return 0, nil
}
