package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout joins the armband list and detail panel horizontally,
// with menu bar on top and status bar on bottom.
func ComposeLayout(menuBar, armbandList, detailPanel, statusBar string) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, armbandList, detailPanel)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}
