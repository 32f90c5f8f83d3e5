package ui

import (
	"fmt"
	"strings"

	"armkeys.klederson.com/internal/orientation"
	"armkeys.klederson.com/internal/pipeline"
)

// RenderDetailPanel renders the selected armband: identity, pose and lock,
// each axis against its baseline, recent keys and the yaw gauge.
func RenderDetailPanel(r *pipeline.Report, history []rune, width, height int) string {
	innerW := width - 4
	if innerW < 20 {
		innerW = 20
	}

	if r == nil {
		lines := []string{StylePanelTitle.Render("ARMBAND DETAIL"), StyleSeparator.Render(strings.Repeat("-", innerW)), ""}
		lines = append(lines, StyleHelp.Render("  Put on an armband and hold it level."))
		lines = append(lines, StyleHelp.Render("  The first orientation sample becomes its baseline."))
		return StylePanelActive.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
	}

	title := StylePanelTitle.Render(fmt.Sprintf("ARMBAND #%d", r.ID))
	lines := []string{title, StyleSeparator.Render(strings.Repeat("-", innerW)), ""}

	link := StyleConnected.Render("connected")
	if !r.Connected {
		link = StyleDisconnected.Render("disconnected")
	}

	fields := []struct{ label, value string }{
		{"Address", string(r.Handle)},
		{"Firmware", orDash(r.Firmware)},
		{"Keyset", string(r.Keyset)},
		{"Pose", r.Pose.String()},
		{"Lock", r.Lock.String()},
		{"Samples", fmt.Sprintf("%d", r.Samples)},
	}
	lines = append(lines, StyleLabel.Render(fmt.Sprintf("  %-10s", "Link"))+link)
	for _, f := range fields {
		lines = append(lines, StyleLabel.Render(fmt.Sprintf("  %-10s", f.label))+StyleValue.Render(f.value))
	}
	lines = append(lines, "")

	if !r.Calibrated {
		lines = append(lines, StyleStatusPaused.Render("  Calibrating... hold the arm at rest"))
	} else {
		base := r.Baseline
		lines = append(lines, StyleLabel.Render(fmt.Sprintf("  Baseline  r%d p%d y%d", base.Roll, base.Pitch, base.Yaw)))
		barW := innerW - 16
		lines = append(lines, renderAxis("Roll", r.Current.Roll, base.Roll, barW))
		lines = append(lines, renderAxis("Pitch", r.Current.Pitch, base.Pitch, barW))
		lines = append(lines, renderAxis("Yaw", r.Current.Yaw, base.Yaw, barW))
	}
	lines = append(lines, "")

	lines = append(lines, StyleLabel.Render("  Keys:  ")+renderHistory(history, innerW-10))
	lines = append(lines, "")

	gaugeH := height - len(lines) - 3
	gaugeW := innerW
	if gaugeW > gaugeH*3 {
		gaugeW = gaugeH * 3 // keep roughly proportional
	}
	if r.Calibrated {
		if gauge := RenderYawGauge(gaugeW, gaugeH, r.Current, r.Baseline); gauge != "" {
			prefix := strings.Repeat(" ", max(0, (innerW-gaugeW)/2))
			for _, gl := range strings.Split(gauge, "\n") {
				lines = append(lines, prefix+gl)
			}
		}
	}

	for len(lines) < height-2 {
		lines = append(lines, "")
	}
	if len(lines) > height-2 {
		lines = lines[:max(0, height-2)]
	}

	return StylePanelActive.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

// renderAxis draws one axis as a strip of buckets with the baseline (o) and
// the current bucket (#) marked.
func renderAxis(label string, current, baseline, width int) string {
	cell := width / orientation.BucketCount
	if cell < 1 {
		cell = 1
	}

	var sb strings.Builder
	for b := 0; b < orientation.BucketCount; b++ {
		ch := "-"
		sty := StyleHelp
		switch b {
		case current:
			ch, sty = "#", StyleKeyPressed
		case baseline:
			ch, sty = "o", StyleBaselineMark
		}
		sb.WriteString(sty.Render(strings.Repeat(ch, cell)))
	}

	delta := fmt.Sprintf("%+3d", current-baseline)
	return StyleLabel.Render(fmt.Sprintf("  %-6s", label)) +
		StyleHelp.Render("[") + sb.String() + StyleHelp.Render("]") +
		StyleValue.Render(" "+delta)
}

// renderHistory shows the most recent keys that fit in width, oldest first.
func renderHistory(keys []rune, width int) string {
	if len(keys) == 0 {
		return StyleHelp.Render("none yet")
	}
	perKey := 2
	start := 0
	if n := width / perKey; len(keys) > n && n > 0 {
		start = len(keys) - n
	}

	parts := make([]string, 0, len(keys)-start)
	for i := start; i < len(keys); i++ {
		sty := StyleKeyset
		if i == len(keys)-1 {
			sty = StyleKeyPressed
		}
		parts = append(parts, sty.Render(string(keys[i])))
	}
	return strings.Join(parts, " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
