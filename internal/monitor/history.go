package monitor

import (
	"sync"
	"time"
)

// History keeps the most recent samples in a fixed-size ring buffer.
// Once full, each Push evicts the oldest sample.
type History struct {
	mu  sync.RWMutex
	buf *ringBuffer
	now func() time.Time
}

// ringBuffer is a fixed-size circular buffer of samples.
type ringBuffer struct {
	data  []MonitoringSample
	head  int
	count int
	size  int
}

// NewHistory creates a history holding up to size samples.
func NewHistory(size int) *History {
	return newHistory(size, time.Now)
}

func newHistory(size int, now func() time.Time) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		buf: newRingBuffer(size),
		now: now,
	}
}

// Push appends s, evicting the oldest sample when full.
func (h *History) Push(s MonitoringSample) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf.push(s)
}

// Samples returns every retained sample, oldest first.
func (h *History) Samples() []MonitoringSample {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.buf.getLast(h.buf.count)
}

// Last returns up to n of the newest samples, oldest first.
func (h *History) Last(n int) []MonitoringSample {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.buf.getLast(n)
}

// Series returns up to n of the newest values for r, oldest first.
// It feeds sparkline rendering.
func (h *History) Series(r Resource, n int) []float64 {
	samples := h.Last(n)
	if len(samples) == 0 {
		return nil
	}
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Value(r)
	}
	return out
}

// Average returns the per-field mean of the retained samples, or nil when empty.
// The result is stamped with the current time.
func (h *History) Average() *MonitoringSample {
	h.mu.RLock()
	defer h.mu.RUnlock()

	samples := h.buf.getLast(h.buf.count)
	if len(samples) == 0 {
		return nil
	}

	avg := MonitoringSample{Timestamp: h.now().Unix()}
	for _, s := range samples {
		avg.CPU += s.CPU
		avg.Memory += s.Memory
		avg.Disk += s.Disk
		avg.Network += s.Network
		avg.GPU += s.GPU
	}
	n := float64(len(samples))
	avg.CPU /= n
	avg.Memory /= n
	avg.Disk /= n
	avg.Network /= n
	avg.GPU /= n
	return &avg
}

// Peak returns the per-field maximum of the retained samples, or nil when empty.
// It is an envelope rather than a real observation: its timestamp is the current time.
func (h *History) Peak() *MonitoringSample {
	h.mu.RLock()
	defer h.mu.RUnlock()

	samples := h.buf.getLast(h.buf.count)
	if len(samples) == 0 {
		return nil
	}

	peak := MonitoringSample{Timestamp: h.now().Unix()}
	for _, s := range samples {
		peak.CPU = max(peak.CPU, s.CPU)
		peak.Memory = max(peak.Memory, s.Memory)
		peak.Disk = max(peak.Disk, s.Disk)
		peak.Network = max(peak.Network, s.Network)
		peak.GPU = max(peak.GPU, s.GPU)
	}
	return &peak
}

// Clear drops every sample but keeps the capacity.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf = newRingBuffer(h.buf.size)
}

// Len returns the number of retained samples.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.buf.count
}

// Cap returns the maximum number of samples retained.
func (h *History) Cap() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.buf.size
}

// Resize changes the capacity, keeping the newest samples that still fit.
// Non-positive sizes are ignored.
func (h *History) Resize(size int) {
	if size <= 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if size == h.buf.size {
		return
	}
	kept := h.buf.getLast(size)
	buf := newRingBuffer(size)
	for _, s := range kept {
		buf.push(s)
	}
	h.buf = buf
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]MonitoringSample, size),
		size: size,
	}
}

func (r *ringBuffer) push(s MonitoringSample) {
	r.data[r.head] = s
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last count samples in chronological order (oldest first).
func (r *ringBuffer) getLast(count int) []MonitoringSample {
	if count <= 0 || r.count == 0 {
		return nil
	}
	if count > r.count {
		count = r.count
	}

	result := make([]MonitoringSample, count)

	// head is the next write position, so the newest sample sits at head-1.
	start := (r.head - count + r.size) % r.size
	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}
	return result
}
