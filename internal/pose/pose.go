package pose

// Kind is a discrete hand pose reported by the armband's classifier.
type Kind int

const (
	Unknown Kind = iota
	Rest
	Fist
	WaveIn
	WaveOut
	FingersSpread
	DoubleTap
)

func (k Kind) String() string {
	switch k {
	case Rest:
		return "rest"
	case Fist:
		return "fist"
	case WaveIn:
		return "waveIn"
	case WaveOut:
		return "waveOut"
	case FingersSpread:
		return "fingersSpread"
	case DoubleTap:
		return "doubleTap"
	default:
		return "unknown"
	}
}

// Active reports whether k is a deliberate gesture, i.e. neither unknown nor rest.
func (k Kind) Active() bool {
	return k != Unknown && k != Rest
}

// UnlockMode is the unlock directive sent back to the armband.
type UnlockMode int

const (
	// UnlockTimed keeps the device unlocked for a short period, after which
	// the firmware locks it again on inactivity.
	UnlockTimed UnlockMode = iota + 1
	// UnlockHold keeps the device unlocked until told otherwise.
	UnlockHold
)

func (m UnlockMode) String() string {
	switch m {
	case UnlockTimed:
		return "timed"
	case UnlockHold:
		return "hold"
	default:
		return "none"
	}
}

// Link is the outbound directive channel to one armband.
type Link interface {
	RequestUnlock(mode UnlockMode) error
	NotifyUserAction() error
}

// LockState is the controller-visible lock state of a device.
type LockState int

const (
	LockUnset LockState = iota
	TimedUnlocked
	HeldUnlocked
)

func (s LockState) String() string {
	switch s {
	case TimedUnlocked:
		return "timed"
	case HeldUnlocked:
		return "held"
	default:
		return "-"
	}
}
