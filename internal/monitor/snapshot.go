package monitor

import "fmt"

// Resource names a monitored resource category.
type Resource string

const (
	ResourceCPU     Resource = "cpu"
	ResourceMemory  Resource = "memory"
	ResourceDisk    Resource = "disk"
	ResourceNetwork Resource = "network"
	ResourceGPU     Resource = "gpu"
)

// Resources lists every category in evaluation order.
var Resources = []Resource{ResourceCPU, ResourceMemory, ResourceDisk, ResourceNetwork, ResourceGPU}

// ResourceSnapshot is one point-in-time reading of every resource category.
// Categories disabled by the policy, or whose reading failed, stay at zero.
type ResourceSnapshot struct {
	CPUPercent      float64 `json:"cpu_percent" yaml:"cpu_percent" cbor:"cpu_percent"`
	AvailableMemory float64 `json:"available_memory" yaml:"available_memory" cbor:"available_memory"`
	TotalMemory     float64 `json:"total_memory" yaml:"total_memory" cbor:"total_memory"`
	AvailableDisk   float64 `json:"available_disk" yaml:"available_disk" cbor:"available_disk"`
	TotalDisk       float64 `json:"total_disk" yaml:"total_disk" cbor:"total_disk"`
	NetworkPercent  float64 `json:"network_percent" yaml:"network_percent" cbor:"network_percent"`
	GPUPercent      float64 `json:"gpu_percent" yaml:"gpu_percent" cbor:"gpu_percent"`
	Timestamp       int64   `json:"timestamp" yaml:"timestamp" cbor:"timestamp"`
}

// MemoryPercent returns used memory as a percentage of total, or 0 when total is unknown.
func (s ResourceSnapshot) MemoryPercent() float64 {
	return usedPercent(s.AvailableMemory, s.TotalMemory)
}

// DiskPercent returns used disk as a percentage of total, or 0 when total is unknown.
func (s ResourceSnapshot) DiskPercent() float64 {
	return usedPercent(s.AvailableDisk, s.TotalDisk)
}

// UsedMemory returns the number of bytes of memory in use.
func (s ResourceSnapshot) UsedMemory() float64 {
	return s.TotalMemory - s.AvailableMemory
}

// UsedDisk returns the number of bytes of disk in use.
func (s ResourceSnapshot) UsedDisk() float64 {
	return s.TotalDisk - s.AvailableDisk
}

// FormatMemoryUsage renders memory as "used / total (pct%)".
func (s ResourceSnapshot) FormatMemoryUsage() string {
	return fmt.Sprintf("%s / %s (%.1f%%)", FormatBytes(s.UsedMemory()), FormatBytes(s.TotalMemory), s.MemoryPercent())
}

// FormatDiskUsage renders disk as "used / total (pct%)".
func (s ResourceSnapshot) FormatDiskUsage() string {
	return fmt.Sprintf("%s / %s (%.1f%%)", FormatBytes(s.UsedDisk()), FormatBytes(s.TotalDisk), s.DiskPercent())
}

// Percent returns the utilisation of r in this snapshot.
func (s ResourceSnapshot) Percent(r Resource) float64 {
	switch r {
	case ResourceCPU:
		return s.CPUPercent
	case ResourceMemory:
		return s.MemoryPercent()
	case ResourceDisk:
		return s.DiskPercent()
	case ResourceNetwork:
		return s.NetworkPercent
	case ResourceGPU:
		return s.GPUPercent
	default:
		return 0
	}
}

// Sample projects the snapshot onto the percentages kept in History.
func (s ResourceSnapshot) Sample() MonitoringSample {
	return MonitoringSample{
		Timestamp: s.Timestamp,
		CPU:       s.CPUPercent,
		Memory:    s.MemoryPercent(),
		Disk:      s.DiskPercent(),
		Network:   s.NetworkPercent,
		GPU:       s.GPUPercent,
	}
}

// MonitoringSample is the condensed form of a snapshot stored in History.
type MonitoringSample struct {
	Timestamp int64   `json:"timestamp" yaml:"timestamp" cbor:"timestamp"`
	CPU       float64 `json:"cpu" yaml:"cpu" cbor:"cpu"`
	Memory    float64 `json:"memory" yaml:"memory" cbor:"memory"`
	Disk      float64 `json:"disk" yaml:"disk" cbor:"disk"`
	Network   float64 `json:"network" yaml:"network" cbor:"network"`
	GPU       float64 `json:"gpu" yaml:"gpu" cbor:"gpu"`
}

// Value returns the percentage recorded for r.
func (m MonitoringSample) Value(r Resource) float64 {
	switch r {
	case ResourceCPU:
		return m.CPU
	case ResourceMemory:
		return m.Memory
	case ResourceDisk:
		return m.Disk
	case ResourceNetwork:
		return m.Network
	case ResourceGPU:
		return m.GPU
	default:
		return 0
	}
}

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatBytes formats a byte count with binary units and two decimals, e.g. "1.50 GB".
func FormatBytes(bytes float64) string {
	size := bytes
	unit := 0
	for size >= 1024 && unit < len(byteUnits)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", size, byteUnits[unit])
}

func usedPercent(available, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return (total - available) / total * 100
}
