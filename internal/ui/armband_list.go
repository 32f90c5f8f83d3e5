package ui

import (
	"fmt"
	"strings"

	"armkeys.klederson.com/internal/pipeline"
)

// RenderArmbandList renders the scrollable armband list panel with cursor.
// The title stays fixed at the top; only the entries scroll.
func RenderArmbandList(reports []pipeline.Report, limit, width, height, cursorIndex int) string {
	innerW := width - 4
	if innerW < 10 {
		innerW = 10
	}

	title := StylePanelTitle.Render(fmt.Sprintf("ARMBANDS [%d/%d]", len(reports), limit))
	separator := StyleSeparator.Render(strings.Repeat("-", innerW))
	headerLines := []string{title, separator}
	headerCount := len(headerLines)

	// Total inner height (excluding border top+bottom)
	innerH := height - 2
	if innerH < headerCount+1 {
		innerH = headerCount + 1
	}

	entrySpace := innerH - headerCount
	if entrySpace < 1 {
		entrySpace = 1
	}

	var entryLines []string
	if len(reports) == 0 {
		entryLines = append(entryLines, "")
		entryLines = append(entryLines, StyleHelp.Render(" No armbands..."))
		entryLines = append(entryLines, StyleHelp.Render(" Waiting for pairing"))
	} else {
		linesPerEntry := 4 // 3 content + 1 blank
		maxVisible := entrySpace / linesPerEntry
		if maxVisible < 1 {
			maxVisible = 1
		}

		// Compute viewport start so cursor is always visible
		viewStart := 0
		if cursorIndex >= maxVisible {
			viewStart = cursorIndex - maxVisible + 1
		}

		count := 0
		for i := viewStart; i < len(reports); i++ {
			entry := renderArmbandEntry(reports[i], innerW, i == cursorIndex)
			for _, l := range entry {
				if count >= entrySpace {
					break
				}
				entryLines = append(entryLines, l)
				count++
			}
			if count >= entrySpace {
				break
			}
		}
	}

	if len(entryLines) > entrySpace {
		entryLines = entryLines[:entrySpace]
	}
	for len(entryLines) < entrySpace {
		entryLines = append(entryLines, "")
	}

	all := make([]string, 0, innerH)
	all = append(all, headerLines...)
	all = append(all, entryLines...)
	if len(all) > innerH {
		all = all[:innerH]
	}

	rendered := StylePanelBorder.Width(width - 2).Height(innerH).Render(strings.Join(all, "\n"))
	return clampLines(rendered, height)
}

func renderArmbandEntry(r pipeline.Report, maxW int, isCursor bool) []string {
	cursor := "  "
	if isCursor {
		cursor = ">>"
	}

	link := "on "
	if !r.Connected {
		link = "off"
	}

	key := "-"
	if r.Symbol != 0 {
		key = string(r.Symbol)
	}

	orient := "calibrating"
	if r.Calibrated {
		orient = fmt.Sprintf("r%-2d p%-2d y%-2d", r.Current.Roll, r.Current.Pitch, r.Current.Yaw)
	}

	raw1 := truncRaw(fmt.Sprintf("%s #%d [%s] %s", cursor, r.ID, r.Keyset, link), maxW)
	raw2 := truncRaw(fmt.Sprintf("     %s", r.Handle), maxW)
	raw3 := truncRaw(fmt.Sprintf("     %s  key %s", orient, key), maxW)

	if isCursor {
		return []string{cursorRowSty.Render(raw1), cursorRowSty.Render(raw2), cursorRowSty.Render(raw3), ""}
	}
	if !r.Connected {
		return []string{offlineSty.Render(raw1), offlineSty.Render(raw2), offlineSty.Render(raw3), ""}
	}

	linkSty := StyleConnected
	keySty := StyleBuckets
	if r.Pressed {
		keySty = StyleKeyPressed
	}

	line1 := fmt.Sprintf("   %s %s %s",
		StyleArmbandName.Render(fmt.Sprintf("#%d", r.ID)),
		StyleKeyset.Render("["+string(r.Keyset)+"]"),
		linkSty.Render(link))
	line2 := "     " + StyleAddress.Render(string(r.Handle))
	line3 := "     " + StyleBuckets.Render(orient) + "  " + keySty.Render("key "+key)
	return []string{line1, line2, line3, ""}
}

// truncRaw pads or truncates a raw string to exactly w characters.
func truncRaw(s string, w int) string {
	if len(s) > w {
		return s[:w]
	}
	if len(s) < w {
		return s + strings.Repeat(" ", w-len(s))
	}
	return s
}

// clampLines forces rendered output to exactly height lines.
// lipgloss Height() only sets a minimum; it won't truncate overflow.
func clampLines(rendered string, height int) string {
	out := strings.Split(rendered, "\n")
	if len(out) > height {
		out = out[:height]
	}
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}
