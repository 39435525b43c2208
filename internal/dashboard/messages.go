package dashboard

import (
	"time"

	"github.com/seregonwar/CoreBaseApplication/internal/monitor"
)

// UpdateMsg carries a new snapshot and the alerts it raised.
type UpdateMsg struct {
	Snapshot monitor.ResourceSnapshot
	Alerts   []string
	Time     time.Time
}

// WatchDoneMsg is sent once the watch loop returns.
type WatchDoneMsg struct {
	Err error
}
