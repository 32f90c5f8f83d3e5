package transport

import (
	"armkeys.klederson.com/internal/device"
	"armkeys.klederson.com/internal/orientation"
	"armkeys.klederson.com/internal/pose"
)

// PairedMsg is sent once when an armband is first seen.
type PairedMsg struct {
	Handle   device.Handle
	Firmware string
	Link     pose.Link
}

// ConnectedMsg is sent when an armband's link comes up.
type ConnectedMsg struct {
	Handle   device.Handle
	Firmware string
}

// DisconnectedMsg is sent when an armband's link goes down.
type DisconnectedMsg struct {
	Handle device.Handle
}

// OrientationMsg carries one orientation sample.
type OrientationMsg struct {
	Handle device.Handle
	Quat   orientation.Quaternion
}

// PoseMsg carries a pose change reported by the armband's classifier.
type PoseMsg struct {
	Handle device.Handle
	Pose   pose.Kind
}

// ErrorMsg reports a transport failure that did not stop the transport.
type ErrorMsg struct {
	Err error
}
