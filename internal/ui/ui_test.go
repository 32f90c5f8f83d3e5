package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"armkeys.klederson.com/internal/orientation"
	"armkeys.klederson.com/internal/pipeline"
	"armkeys.klederson.com/internal/pose"
)

func sampleReports() []pipeline.Report {
	return []pipeline.Report{
		{
			ID: 0, Handle: "AA:AA:AA:AA:AA:AA", Connected: true, Keyset: "qerty",
			Current:  orientation.Buckets{Roll: 12, Pitch: 9, Yaw: 9},
			Baseline: orientation.Buckets{Roll: 9, Pitch: 9, Yaw: 9},
			Calibrated: true, Symbol: 'q', Pressed: true, Pose: pose.Fist, Lock: pose.HeldUnlocked,
		},
		{ID: 1, Handle: "BB:BB:BB:BB:BB:BB", Keyset: "adfgh"},
	}
}

func TestRenderArmbandList(t *testing.T) {
	tests := []struct {
		name    string
		reports []pipeline.Report
		want    []string
	}{
		{"empty", nil, []string{"ARMBANDS [0/3]", "No armbands"}},
		{"two armbands", sampleReports(), []string{"ARMBANDS [2/3]", "#0", "[qerty]", "key q", "BB:BB:BB:BB:BB:BB", "calibrating"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderArmbandList(tt.reports, 3, 40, 20, 0)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			if n := len(strings.Split(out, "\n")); n != 20 {
				t.Errorf("lines = %d, want 20", n)
			}
		})
	}
}

func TestRenderDetailPanel(t *testing.T) {
	r := sampleReports()[0]
	out := RenderDetailPanel(&r, []rune("qeq"), 80, 30)
	for _, w := range []string{"ARMBAND #0", "fist", "held", "Baseline  r9 p9 y9", "Roll", "+3", "q e q"} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q", w)
		}
	}

	empty := RenderDetailPanel(nil, nil, 80, 30)
	if !strings.Contains(empty, "hold it level") {
		t.Errorf("empty detail panel = %q", empty)
	}
}

func TestRenderYawGauge(t *testing.T) {
	if got := RenderYawGauge(5, 3, orientation.Buckets{}, orientation.Buckets{}); got != "" {
		t.Errorf("tiny gauge = %q, want empty", got)
	}

	base := orientation.Buckets{Roll: 9, Pitch: 9, Yaw: 9}
	out := RenderYawGauge(30, 11, base, base)
	lines := strings.Split(out, "\n")
	if len(lines) != 11 {
		t.Fatalf("lines = %d, want 11", len(lines))
	}
	if !strings.Contains(out, "B") || !strings.Contains(out, "^") {
		t.Errorf("gauge at baseline should show B and an upward needle:\n%s", out)
	}

	// A quarter turn (about 4.5 buckets) points right.
	right := RenderYawGauge(30, 11, orientation.Buckets{Roll: 9, Pitch: 9, Yaw: 14}, base)
	if !strings.Contains(right, ">") {
		t.Errorf("gauge turned right should point >:\n%s", right)
	}
}

func TestRenderStatusBar(t *testing.T) {
	out := RenderStatusBar(100, StatusInfo{Paused: true, Registered: 2, Connected: 1, Limit: 3, Presses: 7, Err: errors.New("boom")})
	for _, w := range []string{"PAUSED", "Armbands: 2/3", "Connected: 1", "Keys: 7", "boom"} {
		if !strings.Contains(out, w) {
			t.Errorf("status bar missing %q: %q", w, out)
		}
	}
}

func TestRenderMenuBar(t *testing.T) {
	out := RenderMenuBar(120, "drumstick", "DEMO", false)
	for _, w := range []string{"ARMKEYS", "LIVE", "drumstick", "DEMO", "^C"} {
		if !strings.Contains(out, w) {
			t.Errorf("menu bar missing %q", w)
		}
	}
	if w := lipgloss.Width(out); w > 122 {
		t.Errorf("menu bar width = %d", w)
	}
}

func TestNeedleTip(t *testing.T) {
	tests := []struct {
		offset int
		want   byte
	}{
		{0, '^'},
		{9, 'v'},
		{-9, 'v'},
		{-5, '<'},
	}
	for _, tt := range tests {
		if got := needleTip(bucketAngle(tt.offset)); got != tt.want {
			t.Errorf("needleTip(offset %d) = %q, want %q", tt.offset, got, tt.want)
		}
	}
}
