package transport

import (
	"encoding/binary"
	"fmt"

	"armkeys.klederson.com/internal/orientation"
	"armkeys.klederson.com/internal/pose"
)

// Armband GATT layout. Every UUID is the vendor base with a 16-bit id in
// bytes 2-3.
const myoUUIDFormat = "d506%04x-a904-deb9-4748-2c7f4a124842"

const (
	controlServiceID        = 0x0001
	firmwareCharacteristic  = 0x0201
	commandCharacteristicID = 0x0401
	imuServiceID            = 0x0002
	imuDataCharacteristicID = 0x0402
	classifierServiceID     = 0x0003
	classifierEventCharID   = 0x0103
)

func myoUUIDString(id uint16) string {
	return fmt.Sprintf(myoUUIDFormat, id)
}

// Commands written to the command characteristic: command, payload size,
// payload.
const (
	cmdSetMode    = 0x01
	cmdSleepMode  = 0x09
	cmdUnlock     = 0x0a
	cmdUserAction = 0x0b

	emgModeNone       = 0x00
	imuModeSendData   = 0x01
	classifierEnabled = 0x01

	sleepModeNeverSleep = 0x01

	unlockTimed = 0x01
	unlockHold  = 0x02

	userActionSingle = 0x00
)

// setModeCommand enables IMU data and classifier events, EMG off.
func setModeCommand() []byte {
	return []byte{cmdSetMode, 3, emgModeNone, imuModeSendData, classifierEnabled}
}

func neverSleepCommand() []byte {
	return []byte{cmdSleepMode, 1, sleepModeNeverSleep}
}

func unlockCommand(mode pose.UnlockMode) ([]byte, error) {
	switch mode {
	case pose.UnlockTimed:
		return []byte{cmdUnlock, 1, unlockTimed}, nil
	case pose.UnlockHold:
		return []byte{cmdUnlock, 1, unlockHold}, nil
	default:
		return nil, fmt.Errorf("transport: unsupported unlock mode %v", mode)
	}
}

func userActionCommand() []byte {
	return []byte{cmdUserAction, 1, userActionSingle}
}

// Orientation components arrive as int16 scaled by this factor.
const orientationScale = 16384.0

const imuPacketSize = 20 // quaternion + accelerometer + gyroscope, int16 each

// decodeIMU extracts the orientation quaternion from an IMU data packet.
func decodeIMU(b []byte) (orientation.Quaternion, error) {
	if len(b) < imuPacketSize {
		return orientation.Quaternion{}, fmt.Errorf("%w: imu packet has %d bytes, want %d", ErrShortPacket, len(b), imuPacketSize)
	}
	c := func(i int) float32 {
		return float32(int16(binary.LittleEndian.Uint16(b[2*i:]))) / orientationScale
	}
	return orientation.Quaternion{W: c(0), X: c(1), Y: c(2), Z: c(3)}, nil
}

const classifierEventPose = 0x03

// decodeClassifier returns the pose carried by a classifier event. ok is
// false for events that are not pose changes (arm sync, lock state).
func decodeClassifier(b []byte) (kind pose.Kind, ok bool, err error) {
	if len(b) < 1 {
		return pose.Unknown, false, fmt.Errorf("%w: empty classifier event", ErrShortPacket)
	}
	if b[0] != classifierEventPose {
		return pose.Unknown, false, nil
	}
	if len(b) < 3 {
		return pose.Unknown, false, fmt.Errorf("%w: pose event has %d bytes", ErrShortPacket, len(b))
	}
	return poseFromWire(binary.LittleEndian.Uint16(b[1:])), true, nil
}

func poseFromWire(v uint16) pose.Kind {
	switch v {
	case 0x0000:
		return pose.Rest
	case 0x0001:
		return pose.Fist
	case 0x0002:
		return pose.WaveIn
	case 0x0003:
		return pose.WaveOut
	case 0x0004:
		return pose.FingersSpread
	case 0x0005:
		return pose.DoubleTap
	default:
		return pose.Unknown
	}
}

// decodeFirmware formats the firmware version characteristic
// (major, minor, patch, hardware revision; uint16 each).
func decodeFirmware(b []byte) (string, error) {
	if len(b) < 8 {
		return "", fmt.Errorf("%w: firmware version has %d bytes", ErrShortPacket, len(b))
	}
	u := func(i int) uint16 { return binary.LittleEndian.Uint16(b[2*i:]) }
	return fmt.Sprintf("%d.%d.%d (hw %d)", u(0), u(1), u(2), u(3)), nil
}
