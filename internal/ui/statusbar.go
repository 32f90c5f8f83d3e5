package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusInfo is what the status bar shows.
type StatusInfo struct {
	Paused     bool
	Registered int
	Connected  int
	Limit      int
	Presses    uint64
	Err        error
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, s StatusInfo) string {
	status := StyleStatusLive.Render("[EMITTING]")
	if s.Paused {
		status = StyleStatusPaused.Render("[PAUSED]")
	}

	info := fmt.Sprintf(" Armbands: %d/%d  Connected: %d  Keys: %d",
		s.Registered, s.Limit, s.Connected, s.Presses)

	content := status + StyleStatusBar.Foreground(ColorGreen).Render(info)
	if s.Err != nil {
		content += "  " + StyleStatusError.Render(s.Err.Error())
	}

	// Clip before padding so a long error cannot wrap the bar.
	if lipgloss.Width(content) > width-2 {
		content = lipgloss.NewStyle().MaxWidth(width - 2).Render(content)
	}

	gap := width - 2 - lipgloss.Width(content)
	if gap < 0 {
		gap = 0
	}

	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}
