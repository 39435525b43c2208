package monitor

import (
	"context"
	"time"
)

// Run samples once per policy interval and publishes each snapshot on the returned channel.
// The channel is closed when ctx is cancelled. A consumer that stops reading must cancel
// ctx; a pending publish is abandoned on cancellation, so no snapshot is sent afterwards.
//
// The interval is read from the policy at start; call Run again after SetPolicy to pick
// up a new interval.
func (m *Monitor) Run(ctx context.Context) <-chan ResourceSnapshot {
	out := make(chan ResourceSnapshot)
	interval := m.Policy().Interval

	go func() {
		defer close(out)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			// Cancellation may have raced with the tick.
			if ctx.Err() != nil {
				return
			}

			snap := m.Sample()
			select {
			case out <- snap:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
