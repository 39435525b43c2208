// Package testing provides test doubles for the monitor package.
package testing

import (
	"errors"
	"fmt"
	"sync"

	"github.com/seregonwar/CoreBaseApplication/internal/monitor"
)

// ErrForced is returned by readings configured to fail.
var ErrForced = errors.New("forced failure")

// Reading is one scripted set of sampler values.
type Reading struct {
	CPU             float64
	AvailableMemory float64
	TotalMemory     float64
	AvailableDisk   float64
	TotalDisk       float64
	Network         float64
	GPU             float64
}

// FakeSampler returns scripted readings.
// Queued readings are consumed one per CPUUsage call; once the queue is empty
// the last reading (or the one set with Set) is repeated.
type FakeSampler struct {
	mu      sync.Mutex
	current Reading
	queue   []Reading
	fail    map[monitor.Resource]bool

	// Tracking for assertions
	Calls map[monitor.Resource]int
}

// NewFakeSampler creates a sampler that reports r until told otherwise.
func NewFakeSampler(r Reading) *FakeSampler {
	return &FakeSampler{
		current: r,
		fail:    make(map[monitor.Resource]bool),
		Calls:   make(map[monitor.Resource]int),
	}
}

// Set replaces the current reading.
func (f *FakeSampler) Set(r Reading) *FakeSampler {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = r
	return f
}

// Queue appends readings that successive samples will see in order.
// A sample starts when CPUUsage is called; with CPU disabled call Advance instead.
func (f *FakeSampler) Queue(rs ...Reading) *FakeSampler {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, rs...)
	return f
}

// Advance moves to the next queued reading, if any.
func (f *FakeSampler) Advance() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.advance()
}

func (f *FakeSampler) advance() {
	if len(f.queue) > 0 {
		f.current = f.queue[0]
		f.queue = f.queue[1:]
	}
}

// Fail makes readings of r return ErrForced.
func (f *FakeSampler) Fail(r monitor.Resource) *FakeSampler {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[r] = true
	return f
}

// Recover clears a Fail setting.
func (f *FakeSampler) Recover(r monitor.Resource) *FakeSampler {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.fail, r)
	return f
}

// CallCount returns how many times r was read.
func (f *FakeSampler) CallCount(r monitor.Resource) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls[r]
}

func (f *FakeSampler) read(r monitor.Resource) (Reading, error) {
	f.Calls[r]++
	if f.fail[r] {
		return Reading{}, fmt.Errorf("%s: %w", r, ErrForced)
	}
	return f.current, nil
}

// CPUUsage implements monitor.Sampler.
func (f *FakeSampler) CPUUsage() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.advance()
	r, err := f.read(monitor.ResourceCPU)
	return r.CPU, err
}

// MemoryUsage implements monitor.Sampler.
func (f *FakeSampler) MemoryUsage() (float64, float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, err := f.read(monitor.ResourceMemory)
	return r.AvailableMemory, r.TotalMemory, err
}

// DiskUsage implements monitor.Sampler.
func (f *FakeSampler) DiskUsage() (float64, float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, err := f.read(monitor.ResourceDisk)
	return r.AvailableDisk, r.TotalDisk, err
}

// NetworkUsage implements monitor.Sampler.
func (f *FakeSampler) NetworkUsage() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, err := f.read(monitor.ResourceNetwork)
	return r.Network, err
}

// GPUUsage implements monitor.Sampler.
func (f *FakeSampler) GPUUsage() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, err := f.read(monitor.ResourceGPU)
	return r.GPU, err
}

var _ monitor.Sampler = (*FakeSampler)(nil)
