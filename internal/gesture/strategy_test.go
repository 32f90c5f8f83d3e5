package gesture

import (
	"testing"

	"armkeys.klederson.com/internal/orientation"
)

var center = orientation.Buckets{Roll: 9, Pitch: 9, Yaw: 9}

func input(roll, pitch, yaw int, keyset Keyset, prev rune) Input {
	return Input{
		Current:  orientation.Buckets{Roll: roll, Pitch: pitch, Yaw: yaw},
		Baseline: center,
		Keyset:   keyset,
		Previous: prev,
	}
}

func TestCross(t *testing.T) {
	tests := []struct {
		name        string
		roll, pitch int
		want        rune
	}{
		{"roll out, level", 12, 9, 'q'},
		{"roll out at pitch lower bound", 12, 7, 'q'},
		{"roll out at pitch upper bound", 12, 12, 'q'},
		{"roll out, pitch too low", 12, 6, 'x'},
		{"roll out, pitch too high", 12, 13, 'x'},
		{"roll at threshold", 11, 9, 'x'},
		{"roll in, level", 5, 9, 'e'},
		{"roll zero is ignored", 0, 9, 'x'},
		{"arm lowered", 9, 3, 'r'},
		{"arm lowered beats roll out when not level", 12, 3, 'r'},
		{"pitch zero is ignored", 9, 0, 'x'},
		{"arm raised", 9, 16, 't'},
		{"arm slightly raised", 9, 15, 'x'},
		{"neutral holds previous", 9, 9, 'x'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cross(input(tt.roll, tt.pitch, 9, "qerty", 'x'))
			if got != tt.want {
				t.Errorf("Cross(roll=%d, pitch=%d) = %q, want %q", tt.roll, tt.pitch, got, tt.want)
			}
		})
	}
}

func TestDrumStick(t *testing.T) {
	tests := []struct {
		name       string
		pitch, yaw int
		want       rune
	}{
		{"raised is silent", 10, 15, 'x'},
		{"yaw 13", 9, 13, 'q'},
		{"yaw 12", 9, 12, 'e'},
		{"yaw 10", 9, 10, 'e'},
		{"yaw 9", 9, 9, 'r'},
		{"yaw 7", 9, 7, 'r'},
		{"yaw 6", 9, 6, 't'},
		{"yaw 4", 9, 4, 't'},
		{"yaw 3", 9, 3, 'y'},
		{"yaw 0 lowered", 2, 0, 'y'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DrumStick(input(9, tt.pitch, tt.yaw, "qerty", 'x'))
			if got != tt.want {
				t.Errorf("DrumStick(pitch=%d, yaw=%d) = %q, want %q", tt.pitch, tt.yaw, got, tt.want)
			}
		})
	}
}

func TestRolling(t *testing.T) {
	tests := []struct {
		name        string
		roll, pitch int
		want        rune
	}{
		{"roll out ignores pitch", 12, 16, 'q'},
		{"roll in", 5, 9, 'w'},
		{"roll zero, pitch low", 0, 5, 'e'},
		{"pitch low", 9, 8, 'e'},
		{"pitch zero is ignored", 9, 0, 'x'},
		{"pitch high", 9, 16, 'r'},
		{"pitch not high enough", 9, 12, 'x'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rolling(input(tt.roll, tt.pitch, 9, "qwert", 'x'))
			if got != tt.want {
				t.Errorf("Rolling(roll=%d, pitch=%d) = %q, want %q", tt.roll, tt.pitch, got, tt.want)
			}
		})
	}
}

func TestStrategies_Deterministic(t *testing.T) {
	for _, p := range Profiles() {
		t.Run(p.Name, func(t *testing.T) {
			for roll := 0; roll < orientation.BucketCount; roll++ {
				for pitch := 0; pitch < orientation.BucketCount; pitch++ {
					for yaw := 0; yaw < orientation.BucketCount; yaw += 3 {
						in := input(roll, pitch, yaw, p.Keysets[0], 'x')
						a, b := p.Strategy(in), p.Strategy(in)
						if a != b {
							t.Fatalf("%+v: got %q then %q", in, a, b)
						}
					}
				}
			}
		})
	}
}

func TestCross_NoPreviousYieldsNone(t *testing.T) {
	if got := Cross(input(9, 9, 9, "qerty", None)); got != None {
		t.Errorf("Cross(neutral, no previous) = %q, want None", got)
	}
}
