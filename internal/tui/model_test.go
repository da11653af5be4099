package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/gwinbar/internal/gdisp"
	"github.com/agbru/gwinbar/internal/gtimer"
	"github.com/agbru/gwinbar/internal/gwin"
	"github.com/agbru/gwinbar/internal/progressbar"
)

func newTestModel(t *testing.T) (Model, *progressbar.Progressbar, *gtimer.Scheduler) {
	t.Helper()
	cells := gdisp.NewCellSurface(12, 3, gdisp.Black)
	sched := gtimer.NewScheduler(nil)
	tk := gwin.NewToolkit(cells, sched)
	bar, err := progressbar.Create(tk, nil, gwin.WidgetInit{Width: 12, Height: 3, Show: true})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return NewModel(bar, sched, cells, Options{NoColor: true, Delay: 100 * time.Millisecond}), bar, sched
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func TestDefaultKeyMap_AllBindingsDefined(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()

	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"Toggle", km.Toggle},
		{"Increment", km.Increment},
		{"Decrement", km.Decrement},
		{"Reset", km.Reset},
		{"Quit", km.Quit},
	}

	for _, b := range bindings {
		t.Run(b.name, func(t *testing.T) {
			if !b.binding.Enabled() {
				t.Errorf("expected %s binding to be enabled", b.name)
			}
			if len(b.binding.Keys()) == 0 {
				t.Errorf("expected %s binding to have at least one key", b.name)
			}
		})
	}
	if len(km.ShortHelp()) != len(bindings) {
		t.Errorf("ShortHelp() lists %d bindings, want %d", len(km.ShortHelp()), len(bindings))
	}
}

func TestModel_IncrementDecrementReset(t *testing.T) {
	t.Parallel()
	m, bar, _ := newTestModel(t)

	m, _ = update(t, m, runeKey('+'))
	m, _ = update(t, m, runeKey('+'))
	if bar.Position() != 2 {
		t.Fatalf("Position() = %d after two increments, want 2", bar.Position())
	}
	m, _ = update(t, m, runeKey('-'))
	if bar.Position() != 1 {
		t.Fatalf("Position() = %d after decrement, want 1", bar.Position())
	}
	_, _ = update(t, m, runeKey('r'))
	if bar.Position() != 0 {
		t.Errorf("Position() = %d after reset, want 0", bar.Position())
	}
}

func TestModel_ToggleAndFrames(t *testing.T) {
	t.Parallel()
	m, bar, sched := newTestModel(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !bar.Running() {
		t.Fatal("space should start auto-advance")
	}

	m, cmd := update(t, m, frameMsg(base))
	if cmd == nil {
		t.Error("frame should schedule the next frame")
	}
	m, _ = update(t, m, frameMsg(base.Add(350*time.Millisecond)))
	if bar.Position() != 3 {
		t.Errorf("Position() = %d after 350ms at 100ms, want 3", bar.Position())
	}
	if sched.Now() != 350*time.Millisecond {
		t.Errorf("virtual clock = %v, want 350ms", sched.Now())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	_, _ = update(t, m, frameMsg(base.Add(2*time.Second)))
	if bar.Running() || bar.Position() != 3 {
		t.Errorf("after stop: running %v position %d, want stopped at 3", bar.Running(), bar.Position())
	}
}

func TestModel_Quit(t *testing.T) {
	t.Parallel()
	m, bar, _ := newTestModel(t)
	bar.Start(time.Second)

	_, cmd := update(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if bar.Running() {
		t.Error("quit should stop auto-advance")
	}
}

func TestModel_View(t *testing.T) {
	t.Parallel()
	m, bar, _ := newTestModel(t)
	bar.SetPosition(100)
	bar.Redraw()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	view := m.View()
	for _, want := range []string{"gwinbar", "position", "100", "[0,100]", "full", "quit", "█"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestFormatElapsed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0.0s"},
		{1500 * time.Millisecond, "1.5s"},
		{90 * time.Second, "1m30s"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.in); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
