// Package gesture maps baseline-relative orientation onto keyset symbols.
//
// Every strategy is a pure function of its Input: no hidden state, so the
// same input always yields the same symbol.
package gesture

import (
	"armkeys.klederson.com/internal/orientation"
	"armkeys.klederson.com/internal/pose"
)

// None is the symbol value meaning "nothing emitted yet".
const None rune = 0

// Input is everything a strategy may look at for one device on one tick.
type Input struct {
	Current  orientation.Buckets
	Baseline orientation.Buckets
	Keyset   Keyset
	Previous rune
	Pose     pose.Kind
}

// Strategy computes the candidate symbol for one device.
type Strategy func(in Input) rune

// Cross recognises four hand gestures: rotate outward, rotate inward, raise,
// lower. Pitch must stay near the baseline for the two roll gestures.
// Conditions overlap; the first match wins. Anything else holds the
// previous symbol.
func Cross(in Input) rune {
	roll, pitch := in.Current.Roll, in.Current.Pitch
	rollBase, pitchBase := in.Baseline.Roll, in.Baseline.Pitch
	level := pitch > pitchBase-3 && pitch < pitchBase+4

	switch {
	case roll > rollBase+2 && level:
		return in.Keyset.At(0)
	case roll != 0 && roll < rollBase && level:
		return in.Keyset.At(1)
	case pitch > 0 && pitch < pitchBase-4:
		return in.Keyset.At(2)
	case pitch > pitchBase+6:
		return in.Keyset.At(3)
	default:
		return in.Previous
	}
}

// DrumStick treats the arm as a drum stick: raised above the baseline it is
// silent, lowered it plays one of five symbols picked by yaw.
func DrumStick(in Input) rune {
	yaw := in.Current.Yaw

	switch {
	case in.Current.Pitch > in.Baseline.Pitch:
		return in.Previous
	case yaw > 12:
		return in.Keyset.At(0)
	case yaw > 9:
		return in.Keyset.At(1)
	case yaw > 6:
		return in.Keyset.At(2)
	case yaw > 3:
		return in.Keyset.At(3)
	default:
		return in.Keyset.At(4)
	}
}

// Rolling is the two-axis variant: roll and pitch only, no level gate.
func Rolling(in Input) rune {
	roll, pitch := in.Current.Roll, in.Current.Pitch
	rollBase, pitchBase := in.Baseline.Roll, in.Baseline.Pitch

	switch {
	case roll > rollBase+2:
		return in.Keyset.At(0)
	case roll != 0 && roll < rollBase:
		return in.Keyset.At(1)
	case pitch != 0 && pitch < pitchBase:
		return in.Keyset.At(2)
	case pitch > pitchBase+6:
		return in.Keyset.At(3)
	default:
		return in.Previous
	}
}
