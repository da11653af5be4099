package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E verifies the built binary functions correctly
func TestCLI_E2E(t *testing.T) {
	tmpDir := t.TempDir()
	binName := "gwinbar"
	if runtime.GOOS == "windows" {
		binName = "gwinbar.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs in test/e2e; build from the module root.
	rootDir := "../.."

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/gwinbar")
	cmd.Dir = rootDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build gwinbar: %v", err)
	}

	snapshot := filepath.Join(tmpDir, "bar.png")

	tests := []struct {
		name     string
		args     []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
		wantFile string
	}{
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "gwinbar",
			wantCode: 0,
		},
		{
			name:     "Snapshot",
			args:     []string{"-mode", "snapshot", "-delay", "10ms", "-duration", "1s", "-o", snapshot},
			wantOut:  "position 100 of [0,100]",
			wantCode: 0,
			wantFile: snapshot,
		},
		{
			name:     "Snapshot Reversed Range",
			args:     []string{"-mode", "snapshot", "-min", "50", "-max", "10", "-delay", "0", "-pos", "99", "-o", snapshot},
			wantOut:  "position 50 of [10,50]",
			wantCode: 0,
		},
		{
			name:     "Plain Until Full",
			args:     []string{"-mode", "plain", "-max", "5", "-delay", "1ms"},
			wantOut:  "done position 5 of [0,5]",
			wantCode: 0,
		},
		{
			name:     "Invalid Renderer",
			args:     []string{"-renderer", "svg"},
			wantOut:  "unknown renderer",
			wantCode: 4,
		},
		{
			name:     "Missing Image",
			args:     []string{"-mode", "snapshot", "-renderer", "image", "-image", filepath.Join(tmpDir, "nope.png"), "-o", snapshot},
			wantOut:  "nope.png",
			wantCode: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()

			outStr := string(output)

			if tt.wantCode == 0 {
				if err != nil {
					t.Errorf("Command failed unexpectedly: %v\nOutput: %s", err, outStr)
				}
			} else {
				if err == nil {
					t.Errorf("Expected non-zero exit code, but command succeeded.\nOutput: %s", outStr)
				} else if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() != tt.wantCode {
					t.Errorf("Exit code = %d, want %d", exitErr.ExitCode(), tt.wantCode)
				}
			}

			if tt.wantOut != "" {
				if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
					t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
				}
			}
			if tt.wantFile != "" {
				if info, err := os.Stat(tt.wantFile); err != nil || info.Size() == 0 {
					t.Errorf("expected a non-empty %s: %v", tt.wantFile, err)
				}
			}
		})
	}
}
