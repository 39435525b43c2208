package dashboard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/seregonwar/CoreBaseApplication/internal/core"
)

// sender is the part of *tea.Program the bridge needs.
type sender interface {
	Send(msg tea.Msg)
}

// Bridge forwards watch events to the Bubble Tea program via Send. It is goroutine-safe.
type Bridge struct {
	program sender
	now     func() time.Time
}

// NewBridge creates a bridge that forwards events to program.
func NewBridge(program *tea.Program) *Bridge {
	return &Bridge{program: program, now: time.Now}
}

// Update forwards one scheduler tick.
func (b *Bridge) Update(u core.Update) {
	b.program.Send(UpdateMsg{
		Snapshot: u.Snapshot,
		Alerts:   u.Alerts,
		Time:     b.now(),
	})
}

// Done reports that the watch loop has stopped.
func (b *Bridge) Done(err error) {
	b.program.Send(WatchDoneMsg{Err: err})
}
