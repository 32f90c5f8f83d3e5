package device

import (
	"armkeys.klederson.com/internal/gesture"
	"armkeys.klederson.com/internal/keys"
	"armkeys.klederson.com/internal/orientation"
	"armkeys.klederson.com/internal/pose"
)

// Handle is the transport's opaque identity for one armband. Two events
// refer to the same armband exactly when their handles are equal.
type Handle string

// State is everything the pipeline tracks for one registered armband.
// It is owned by the Registry and mutated in place.
type State struct {
	ID        int
	Handle    Handle
	Firmware  string
	Connected bool

	Calibration orientation.Calibration
	Current     orientation.Buckets
	Samples     uint64 // orientation samples processed

	Pose pose.Kind
	Lock pose.LockState
	Link pose.Link

	Keyset gesture.Keyset
	Edge   keys.Edge
}

// Input builds the gesture strategy input for the current tick.
func (s *State) Input() gesture.Input {
	return gesture.Input{
		Current:  s.Current,
		Baseline: s.Calibration.Baseline,
		Keyset:   s.Keyset,
		Previous: s.Edge.Previous,
		Pose:     s.Pose,
	}
}
