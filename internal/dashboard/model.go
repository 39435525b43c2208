package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/seregonwar/CoreBaseApplication/internal/monitor"
)

// Model is the Bubble Tea model for the resource dashboard.
type Model struct {
	monitor *monitor.Monitor
	history *monitor.History
	policy  monitor.Policy

	snapshot   monitor.ResourceSnapshot
	alerts     []string
	lastUpdate time.Time
	samples    int

	paused   bool
	showHelp bool
	done     bool
	err      error
	quitting bool

	width  int
	height int

	spinner    spinner.Model
	cancelFunc context.CancelFunc
}

// NewModel creates a dashboard over mon's history, drawing the resources its policy enables.
// cancelFunc is called when the user quits; it may be nil.
func NewModel(mon *monitor.Monitor, cancelFunc context.CancelFunc) Model {
	return Model{
		monitor:    mon,
		history:    mon.History(),
		policy:     mon.Policy(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(mutedStyle)),
		cancelFunc: cancelFunc,
	}
}

// Init starts the waiting spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		// The spinner only runs until the first sample arrives.
		if m.samples > 0 || m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case UpdateMsg:
		if m.paused {
			return m, nil
		}
		m.snapshot = msg.Snapshot
		m.alerts = msg.Alerts
		m.lastUpdate = msg.Time
		m.samples++
		return m, nil

	case WatchDoneMsg:
		// Leave the last frame up so the user can read it.
		m.done = true
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp && key.Matches(msg, keys.Close) {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		if m.cancelFunc != nil {
			m.cancelFunc()
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, keys.Reset):
		m.monitor.ResetHistory()
		return m, nil
	}

	return m, nil
}

// Paused reports whether incoming updates are being ignored.
func (m Model) Paused() bool {
	return m.paused
}

// Samples returns how many updates have been displayed.
func (m Model) Samples() int {
	return m.samples
}
