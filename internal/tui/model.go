// Package tui is the full-screen front end. It renders a progressbar drawn on
// a cell surface and drives the widget's cooperative timers from the
// bubbletea update loop, so every timer callback runs on the UI goroutine.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/gwinbar/internal/gdisp"
	"github.com/agbru/gwinbar/internal/gtimer"
	"github.com/agbru/gwinbar/internal/progressbar"
)

// FrameInterval is the refresh period of the view and the granularity at
// which virtual time advances.
const FrameInterval = time.Second / 30

// DefaultDelay is used by the start/stop key when the bar was never started.
const DefaultDelay = 100 * time.Millisecond

// frameMsg carries the wall-clock time of a frame.
type frameMsg time.Time

// Options configures the full-screen view.
type Options struct {
	Version string
	NoColor bool
	// Delay is the auto-advance period used when the start/stop key starts
	// the bar.
	Delay time.Duration
}

// Model is the bubbletea model of the full-screen view.
type Model struct {
	header HeaderModel
	keymap KeyMap
	help   help.Model

	bar   *progressbar.Progressbar
	sched *gtimer.Scheduler
	cells *gdisp.CellSurface
	opts  Options

	last  time.Time
	width int
}

// NewModel creates the view for bar, which must draw on cells and schedule
// on sched.
func NewModel(bar *progressbar.Progressbar, sched *gtimer.Scheduler, cells *gdisp.CellSurface, opts Options) Model {
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	return Model{
		header: NewHeaderModel(opts.Version),
		keymap: DefaultKeyMap(),
		help:   help.New(),
		bar:    bar,
		sched:  sched,
		cells:  cells,
		opts:   opts,
	}
}

// Init starts the frame clock.
func (m Model) Init() tea.Cmd {
	return frameCmd()
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case frameMsg:
		t := time.Time(msg)
		if !m.last.IsZero() && t.After(m.last) {
			m.sched.Advance(t.Sub(m.last))
		}
		m.last = t
		m.header.SetElapsed(m.sched.Now())
		return m, frameCmd()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.bar.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Toggle):
		if m.bar.Running() {
			m.bar.Stop()
		} else {
			m.bar.Start(m.opts.Delay)
		}

	case key.Matches(msg, m.keymap.Increment):
		m.bar.Increment()
		m.bar.Redraw()

	case key.Matches(msg, m.keymap.Decrement):
		m.bar.Decrement()
		m.bar.Redraw()

	case key.Matches(msg, m.keymap.Reset):
		min, max := m.bar.Range()
		m.bar.SetRange(min, max)
		m.bar.Redraw()
	}
	return m, nil
}

// View renders the header, the bar, a status line and the key help.
func (m Model) View() string {
	bar := panelStyle.Render(m.cells.Render(m.opts.NoColor))
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		bar,
		m.statusLine(),
		m.help.View(m.keymap),
	)
}

func (m Model) statusLine() string {
	min, max := m.bar.Range()
	status := statusIdleStyle.Render("idle")
	switch {
	case m.bar.Position() == max:
		status = statusFullStyle.Render("full")
	case m.bar.Running():
		status = statusRunningStyle.Render("running")
	}
	field := func(label, value string) string {
		return metricLabelStyle.Render(label+" ") + metricValueStyle.Render(value)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		field("position", fmt.Sprintf("%d", m.bar.Position())), "  ",
		field("range", fmt.Sprintf("[%d,%d]", min, max)), "  ",
		field("step", fmt.Sprintf("%d", m.bar.Resolution())), "  ",
		field("done", fmt.Sprintf("%.0f%%", m.bar.Fraction()*100)), "  ",
		status,
	)
}

func frameCmd() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Run shows the view until the user quits or ctx is cancelled.
func Run(ctx context.Context, bar *progressbar.Progressbar, sched *gtimer.Scheduler, cells *gdisp.CellSurface, opts Options) error {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	p := tea.NewProgram(NewModel(bar, sched, cells, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}
