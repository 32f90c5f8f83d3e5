package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"armkeys.klederson.com/internal/config"
)

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, profile, source string, paused bool) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	keys := []struct{ key, label string }{
		{"P", "ause"},
		{"↑↓", " select"},
		{"^C", " quit"},
	}

	menu := ""
	for _, k := range keys {
		menu += "  " + StyleMenuKey.Render("["+k.key+"]") + StyleMenuLabel.Render(k.label)
	}

	status := StyleStatusLive.Render("LIVE")
	if paused {
		status = StyleStatusPaused.Render("PAUSED")
	}

	info := StyleMenuLabel.Render(fmt.Sprintf("Profile: %s  Source: %s", profile, source))

	left := StyleMenuKey.Render(title) + menu
	right := status + "  " + info + " "

	gap := width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	return StyleMenuBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
