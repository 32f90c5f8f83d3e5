package pose

import "fmt"

// Controller turns pose transitions into unlock directives.
//
// An active pose asks the device to stay unlocked and to signal the user
// (the armband vibrates). Unknown or rest asks for a timed unlock so the
// device locks itself after inactivity.
type Controller struct{}

// NewController creates a pose lock controller.
func NewController() *Controller {
	return &Controller{}
}

// Apply issues the directives for kind on link and returns the resulting
// lock state. A nil link still yields the state; no directive is sent.
func (c *Controller) Apply(link Link, kind Kind) (LockState, error) {
	if !kind.Active() {
		if link != nil {
			if err := link.RequestUnlock(UnlockTimed); err != nil {
				return TimedUnlocked, fmt.Errorf("pose: unlock timed: %w", err)
			}
		}
		return TimedUnlocked, nil
	}

	if link != nil {
		if err := link.RequestUnlock(UnlockHold); err != nil {
			return HeldUnlocked, fmt.Errorf("pose: unlock hold: %w", err)
		}
		if err := link.NotifyUserAction(); err != nil {
			return HeldUnlocked, fmt.Errorf("pose: notify user action: %w", err)
		}
	}
	return HeldUnlocked, nil
}
