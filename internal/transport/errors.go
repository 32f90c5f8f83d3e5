package transport

import "errors"

var (
	// ErrShortPacket is returned when a notification is too short to decode.
	ErrShortPacket = errors.New("transport: short packet")

	// ErrNotArmband is returned when a connected device lacks the armband services.
	ErrNotArmband = errors.New("transport: device is not an armband")

	// ErrLinkBusy is returned when an armband's command queue is full.
	ErrLinkBusy = errors.New("transport: command queue full")
)
