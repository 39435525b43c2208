package monitor

// Sampler returns point-in-time readings for each resource category.
// Percentages are in the range 0..100. Memory and disk report raw byte
// counts; the Monitor derives percentages from them.
type Sampler interface {
	CPUUsage() (float64, error)
	MemoryUsage() (available, total float64, err error)
	DiskUsage() (available, total float64, err error)
	NetworkUsage() (float64, error)
	GPUUsage() (float64, error)
}
