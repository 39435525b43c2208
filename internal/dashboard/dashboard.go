// Package dashboard renders a live Bubble Tea view of the resource monitor:
// one progress bar and sparkline per enabled resource, the current threshold
// alerts, and a short key legend.
package dashboard

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/seregonwar/CoreBaseApplication/internal/core"
)

// Run starts Facade.Watch in the background and shows the dashboard until the
// user quits. Watch updates reach the TUI through a Bridge.
func Run(ctx context.Context, f *core.Facade) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	mon := f.Monitor()
	model := NewModel(mon, cancel)

	program := tea.NewProgram(model, tea.WithAltScreen())
	bridge := NewBridge(program)

	watchErr := make(chan error, 1)
	go func() {
		err := f.Watch(ctx, func(u core.Update) error {
			bridge.Update(u)
			return nil
		})
		bridge.Done(err)
		watchErr <- err
	}()

	if _, err := program.Run(); err != nil {
		cancel()
		<-watchErr
		return err
	}

	cancel()
	return <-watchErr
}
