package device

import "fmt"

// UnknownDeviceError is returned for an event from a handle that never
// registered. The event should be dropped; processing continues.
type UnknownDeviceError struct {
	Handle Handle
}

func (e *UnknownDeviceError) Error() string {
	return fmt.Sprintf("device: unknown device %s", e.Handle)
}

// TooManyDevicesError is returned when a new armband pairs while every slot
// is taken. Only that armband's registration fails.
type TooManyDevicesError struct {
	Limit  int
	Handle Handle
}

func (e *TooManyDevicesError) Error() string {
	return fmt.Sprintf("device: cannot register %s: up to %d armbands are supported", e.Handle, e.Limit)
}
