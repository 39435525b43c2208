package monitor

import "fmt"

var alertLabels = map[Resource]string{
	ResourceCPU:     "CPU",
	ResourceMemory:  "Memory",
	ResourceDisk:    "Disk",
	ResourceNetwork: "Network",
	ResourceGPU:     "GPU",
}

// CheckThresholds returns one alert per enabled resource whose usage is strictly
// above its threshold, in the order CPU, memory, disk, network, GPU.
func CheckThresholds(snap ResourceSnapshot, policy Policy) []string {
	var alerts []string
	for _, r := range exceeded(snap, policy) {
		alerts = append(alerts, fmt.Sprintf("%s usage (%.1f%%) exceeds threshold (%.1f%%)",
			alertLabels[r], snap.Percent(r), policy.Threshold(r)))
	}
	return alerts
}

// CheckThresholds evaluates snap against the current policy and counts each alert.
func (m *Monitor) CheckThresholds(snap ResourceSnapshot) []string {
	policy := m.Policy()
	for _, r := range exceeded(snap, policy) {
		m.metrics.ObserveAlert(string(r))
	}
	return CheckThresholds(snap, policy)
}

func exceeded(snap ResourceSnapshot, policy Policy) []Resource {
	var out []Resource
	for _, r := range Resources {
		if policy.Enabled(r) && snap.Percent(r) > policy.Threshold(r) {
			out = append(out, r)
		}
	}
	return out
}
