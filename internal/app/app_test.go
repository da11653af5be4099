package app

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agbru/gwinbar/internal/config"
	apperrors "github.com/agbru/gwinbar/internal/errors"
	"github.com/agbru/gwinbar/internal/gdisp"
)

func newApp(t *testing.T, args ...string) (*Application, *bytes.Buffer) {
	t.Helper()
	var errBuf bytes.Buffer
	a, err := New(append([]string{"gwinbar"}, args...), &errBuf)
	if err != nil {
		t.Fatalf("New(%v) error = %v (stderr %q)", args, err, errBuf.String())
	}
	return a, &errBuf
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	return img
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantHelp   bool
		wantConfig bool
	}{
		{"defaults", nil, false, false},
		{"help", []string{"-h"}, true, false},
		{"bad renderer", []string{"-renderer", "svg"}, false, true},
		{"stray argument", []string{"extra"}, false, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var errBuf bytes.Buffer
			a, err := New(append([]string{"gwinbar"}, tt.args...), &errBuf)
			switch {
			case tt.wantHelp:
				if !IsHelpError(err) {
					t.Errorf("New() error = %v, want help", err)
				}
			case tt.wantConfig:
				if code := apperrors.ExitCodeFor(err); code != apperrors.ExitErrorConfig {
					t.Errorf("New() error = %v maps to exit %d, want %d", err, code, apperrors.ExitErrorConfig)
				}
				if !strings.Contains(errBuf.String(), "Error:") {
					t.Errorf("stderr %q should report the error", errBuf.String())
				}
			default:
				if err != nil || a == nil {
					t.Fatalf("New() = %v, %v", a, err)
				}
				if a.Config.Mode != config.ModeTUI {
					t.Errorf("Mode = %q, want tui", a.Config.Mode)
				}
			}
		})
	}
}

func TestRun_Snapshot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bar.png")
	a, _ := newApp(t, "-mode", "snapshot", "-width", "20", "-height", "6",
		"-delay", "10ms", "-duration", "500ms", "-o", out, "-no-color")

	var stdout bytes.Buffer
	if code := a.Run(context.Background(), &stdout); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), "position 50 of [0,100]") {
		t.Errorf("stdout = %q", stdout.String())
	}

	img := readPNG(t, out)
	if got := img.Bounds(); got != image.Rect(0, 0, 20, 6) {
		t.Fatalf("snapshot bounds = %v", got)
	}
	if got := rgbaAt(img, 3, 3); got != gdisp.Green {
		t.Errorf("active pixel = %v, want green", got)
	}
	if got := rgbaAt(img, 15, 3); got != gdisp.Black {
		t.Errorf("inactive pixel = %v, want black", got)
	}
}

func TestRun_SnapshotImageRenderer(t *testing.T) {
	dir := t.TempDir()
	tile := filepath.Join(dir, "tile.png")
	red := color.RGBA{0xFF, 0, 0, 0xFF}
	f, err := os.Create(tile)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, gdisp.CheckerImage(1, 1, 1, red, red)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	out := filepath.Join(dir, "bar.png")
	a, _ := newApp(t, "-mode", "snapshot", "-width", "20", "-height", "6", "-delay", "0",
		"-pos", "100", "-renderer", "image", "-image", tile, "-o", out, "-no-color")
	if code := a.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want 0", code)
	}
	if got := rgbaAt(readPNG(t, out), 3, 3); got != red {
		t.Errorf("tiled pixel = %v, want red", got)
	}
}

func TestRun_SnapshotCustomColors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bar.png")
	a, _ := newApp(t, "-mode", "snapshot", "-width", "20", "-height", "6", "-delay", "0",
		"-pos", "100", "-color", "#0000ff", "-bg-color", "#101010", "-o", out, "-no-color")
	if code := a.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want 0", code)
	}
	if got := rgbaAt(readPNG(t, out), 3, 3); got != (color.RGBA{0, 0, 0xFF, 0xFF}) {
		t.Errorf("active pixel = %v, want blue", got)
	}
}

func TestRun_Failures(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"missing image", []string{"-renderer", "image", "-image", filepath.Join(dir, "nope.png"),
			"-o", filepath.Join(dir, "a.png")}},
		{"unwritable output", []string{"-o", filepath.Join(dir, "missing", "a.png")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-mode", "snapshot", "-no-color", "-log-level", "error"}, tt.args...)
			a, errBuf := newApp(t, args...)
			if code := a.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorGeneric {
				t.Errorf("Run() = %d, want %d", code, apperrors.ExitErrorGeneric)
			}
			if !strings.Contains(errBuf.String(), "Error:") {
				t.Errorf("stderr %q should report the error", errBuf.String())
			}
		})
	}
}

func TestRun_PlainUntilFull(t *testing.T) {
	a, _ := newApp(t, "-mode", "plain", "-width", "10", "-max", "3", "-delay", "1ms", "-no-color")

	var stdout bytes.Buffer
	if code := a.Run(context.Background(), &stdout); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), "done position 3 of [0,3]") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRun_PlainCancelled(t *testing.T) {
	a, _ := newApp(t, "-mode", "plain", "-no-color")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if code := a.Run(ctx, &bytes.Buffer{}); code != apperrors.ExitErrorCanceled {
		t.Errorf("Run() = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}

func TestRun_MetricsServer(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bar.png")
	a, _ := newApp(t, "-mode", "snapshot", "-metrics-addr", "127.0.0.1:0", "-o", out, "-no-color")
	if code := a.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitSuccess {
		t.Errorf("Run() = %d, want 0", code)
	}
}

func TestVersionFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"-version"}, true},
		{[]string{"-mode", "plain", "--version"}, true},
		{[]string{"-V"}, true},
		{[]string{"-v"}, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}

	var buf bytes.Buffer
	PrintVersion(&buf)
	if !strings.HasPrefix(buf.String(), "gwinbar "+Version) {
		t.Errorf("PrintVersion() = %q", buf.String())
	}
}

func TestDefaultsFromConfig(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.EdgeColor = "#ff0000"

	d, err := defaultsFromConfig(cfg)
	if err != nil {
		t.Fatalf("defaultsFromConfig() error = %v", err)
	}
	if d.Palette.Edge != (color.RGBA{0xFF, 0, 0, 0xFF}) || d.Color != gdisp.Green {
		t.Errorf("defaults = %+v", d)
	}

	cfg.TextColor = "teal"
	if _, err := defaultsFromConfig(cfg); err == nil {
		t.Error("defaultsFromConfig should reject an invalid color")
	}
}
