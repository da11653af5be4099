package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// HeaderModel renders the top bar: title, version and elapsed virtual time.
type HeaderModel struct {
	version string
	elapsed time.Duration
	width   int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{version: version}
}

// SetElapsed updates the elapsed time shown.
func (h *HeaderModel) SetElapsed(d time.Duration) {
	h.elapsed = d
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	title := titleStyle.Render("gwinbar")
	if h.version != "" && h.version != "dev" {
		title += versionStyle.Render(" " + h.version)
	}
	pipe := versionStyle.Render(" | ")
	elapsed := elapsedStyle.Render(fmt.Sprintf("Elapsed: %s", formatElapsed(h.elapsed)))

	row := title + pipe + elapsed
	if gap := h.width - 2 - lipgloss.Width(row); gap > 0 {
		row += spaces(gap)
	}
	return headerStyle.Render(row)
}

// formatElapsed rounds d for display: tenths of a second below a minute,
// whole seconds above.
func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return d.Round(time.Second).String()
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
