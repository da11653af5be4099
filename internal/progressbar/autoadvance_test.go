package progressbar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/agbru/gwinbar/internal/gdisp"
	"github.com/agbru/gwinbar/internal/gtimer"
	"github.com/agbru/gwinbar/internal/gtimer/mocks"
	"github.com/agbru/gwinbar/internal/gwin"
	"github.com/agbru/gwinbar/internal/logging"
)

// recorder captures metrics calls.
type recorder struct {
	redraws   int
	ticks     int
	positions []float64
	running   []bool
}

func (r *recorder) Redraw(string) { r.redraws++ }
func (r *recorder) Tick(string) { r.ticks++ }
func (r *recorder) Position(_ string, f float64) { r.positions = append(r.positions, f) }
func (r *recorder) AutoAdvance(_ string, run bool) { r.running = append(r.running, run) }

func TestAutoAdvance_StartAndStop(t *testing.T) {
	t.Parallel()
	pb, sched, _ := newTestBar(t, 20, 4)
	pb.SetPosition(50)

	pb.Start(100 * time.Millisecond)
	sched.Advance(300 * time.Millisecond)

	if got := pb.Position(); got != 53 {
		t.Fatalf("Position() after 3 ticks = %d, want 53", got)
	}

	pb.Stop()
	sched.Advance(10 * time.Second)

	if got := pb.Position(); got != 53 {
		t.Errorf("Position() after Stop = %d, want 53", got)
	}
	if pb.Running() {
		t.Error("Running() should be false after Stop")
	}
}

func TestAutoAdvance_ResumesFromPosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		start    int
		res      int
		wantTick int
	}{
		{"inside range", 30, 5, 35},
		{"near max clamps", 98, 5, 100},
		{"at max holds", 100, 1, 100},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pb, sched, _ := newTestBar(t, 20, 4)
			pb.SetResolution(tt.res)
			pb.SetPosition(tt.start)

			pb.Start(50 * time.Millisecond)
			sched.Advance(50 * time.Millisecond)

			if got := pb.Position(); got != tt.wantTick {
				t.Errorf("Position() after one tick = %d, want %d", got, tt.wantTick)
			}
		})
	}
}

func TestAutoAdvance_KeepsRunningAtMax(t *testing.T) {
	t.Parallel()
	pb, sched, _ := newTestBar(t, 20, 4)
	pb.SetRange(0, 3)

	pb.Start(10 * time.Millisecond)
	sched.Advance(time.Second)

	if got := pb.Position(); got != 3 {
		t.Errorf("Position() = %d, want 3", got)
	}
	if !pb.Running() {
		t.Error("reaching max should not stop auto-advance")
	}
	if sched.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", sched.Pending())
	}
}

func TestAutoAdvance_StartWhileRunningReplaces(t *testing.T) {
	t.Parallel()
	pb, sched, _ := newTestBar(t, 20, 4)

	pb.Start(100 * time.Millisecond)
	sched.Advance(50 * time.Millisecond)
	pb.Start(10 * time.Millisecond)
	sched.Advance(40 * time.Millisecond)

	if got := pb.Position(); got != 4 {
		t.Errorf("Position() = %d, want 4", got)
	}
	if got := pb.Delay(); got != 10*time.Millisecond {
		t.Errorf("Delay() = %v, want 10ms", got)
	}
	if sched.Pending() != 1 {
		t.Errorf("Pending() = %d, want exactly one schedule", sched.Pending())
	}
}

func TestAutoAdvance_StopWhenIdle(t *testing.T) {
	t.Parallel()
	pb, _, _ := newTestBar(t, 20, 4)
	pb.SetPosition(7)
	pb.Stop()
	if pb.Position() != 7 || pb.Running() {
		t.Errorf("Stop on idle bar changed state: position %d running %v", pb.Position(), pb.Running())
	}
}

func TestAutoAdvance_TickHook(t *testing.T) {
	t.Parallel()
	pb, sched, _ := newTestBar(t, 20, 4)
	pb.SetRange(0, 2)
	var seen []int
	pb.SetTickHook(func(p *Progressbar) {
		seen = append(seen, p.Position())
		if p.Position() == 2 {
			p.Stop()
		}
	})

	pb.Start(10 * time.Millisecond)
	sched.Advance(time.Second)

	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("hook saw %v, want [1 2]", seen)
	}
	if pb.Running() {
		t.Error("hook Stop should halt auto-advance")
	}
}

func TestAutoAdvance_RedrawsAndRecordsMetrics(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	display := gdisp.NewCellSurface(10, 3, gdisp.Black)
	sched := gtimer.NewScheduler(nil)
	tk := gwin.NewToolkit(display, sched, gwin.WithMetrics(rec))
	pb, err := Create(tk, nil, gwin.WidgetInit{Width: 10, Height: 3, Show: true})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	pb.SetRange(0, 9)
	redrawsBefore := rec.redraws

	pb.Start(10 * time.Millisecond)
	sched.Advance(20 * time.Millisecond)
	pb.Stop()

	if rec.ticks != 2 {
		t.Errorf("ticks = %d, want 2", rec.ticks)
	}
	if got := rec.redraws - redrawsBefore; got != 2 {
		t.Errorf("redraws = %d, want 2", got)
	}
	if len(rec.positions) != 2 || rec.positions[1] != 2.0/9.0 {
		t.Errorf("positions = %v", rec.positions)
	}
	if len(rec.running) != 2 || !rec.running[0] || rec.running[1] {
		t.Errorf("running transitions = %v, want [true false]", rec.running)
	}
	// dpos = (9*2)/9 = 2: the active area spans columns 0 and 1.
	if got := display.At(1, 1).Bg; got != gdisp.Green {
		t.Errorf("active cell = %v, want %v", got, gdisp.Green)
	}
}

func TestAutoAdvance_Logging(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	display := gdisp.NewCellSurface(10, 3, gdisp.Black)
	tk := gwin.NewToolkit(display, gtimer.NewScheduler(nil),
		gwin.WithLogger(logging.NewLogger(&buf, "progressbar")))
	pb, err := Create(tk, nil, gwin.WidgetInit{Width: 10, Height: 3})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	pb.Start(time.Second)
	pb.Start(2 * time.Second)
	pb.Stop()

	out := buf.String()
	for _, want := range []string{
		"progressbar auto-advance started",
		"progressbar auto-advance rescheduled",
		"progressbar auto-advance stopped",
		`"widget":"progressbar-1"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestAutoAdvance_Facility(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	timers := mocks.NewMockFacility(ctrl)
	display := gdisp.NewCellSurface(10, 3, gdisp.Black)
	tk := gwin.NewToolkit(display, timers)
	pb, err := Create(tk, nil, gwin.WidgetInit{Width: 10, Height: 3})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	var tick func()
	gomock.InOrder(
		timers.EXPECT().Schedule(100*time.Millisecond, gomock.Any()).
			DoAndReturn(func(_ time.Duration, fn func()) gtimer.Handle {
				tick = fn
				return gtimer.Handle(7)
			}),
		timers.EXPECT().Cancel(gtimer.Handle(7)),
		timers.EXPECT().Schedule(20*time.Millisecond, gomock.Any()).Return(gtimer.Handle(8)),
		timers.EXPECT().Cancel(gtimer.Handle(8)),
	)

	pb.Start(100 * time.Millisecond)
	tick()
	tick()
	if got := pb.Position(); got != 2 {
		t.Errorf("Position() = %d, want 2", got)
	}
	pb.Start(20 * time.Millisecond)
	pb.Stop()
	pb.Stop()
}

func TestAutoAdvance_NoFacility(t *testing.T) {
	t.Parallel()
	display := gdisp.NewCellSurface(10, 3, gdisp.Black)
	tk := gwin.NewToolkit(display, nil)
	pb, err := Create(tk, nil, gwin.WidgetInit{Width: 10, Height: 3})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	pb.Start(time.Millisecond)
	if pb.Running() {
		t.Error("Start without a timer facility should be ignored")
	}
}
