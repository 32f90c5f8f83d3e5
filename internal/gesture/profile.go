package gesture

import (
	"fmt"
	"sort"
)

// MaxSlots is the number of devices a profile carries keysets for.
const MaxSlots = 3

// Profile pairs a strategy with the keysets handed out by registration slot.
type Profile struct {
	Name        string
	Description string
	Strategy    Strategy
	Keysets     [MaxSlots]Keyset
}

// Keyset returns the keyset for slot, or an error when slot is out of range.
func (p Profile) Keyset(slot int) (Keyset, error) {
	if slot < 0 || slot >= len(p.Keysets) {
		return "", fmt.Errorf("%w: slot %d", ErrNoKeyset, slot)
	}
	return p.Keysets[slot], nil
}

// Validate checks every keyset of the profile.
func (p Profile) Validate() error {
	if p.Strategy == nil {
		return fmt.Errorf("gesture: profile %q has no strategy", p.Name)
	}
	for i, k := range p.Keysets {
		if err := k.Validate(); err != nil {
			return fmt.Errorf("profile %q slot %d: %w", p.Name, i, err)
		}
	}
	return nil
}

var profiles = map[string]Profile{
	"cross": {
		Name:        "cross",
		Description: "roll left/right with level pitch, raise or lower the arm (4 keys)",
		Strategy:    Cross,
		Keysets:     [MaxSlots]Keyset{"qerty", "adfgh", "zcvbn"},
	},
	"drumstick": {
		Name:        "drumstick",
		Description: "lower the arm to strike, yaw picks one of 5 keys",
		Strategy:    DrumStick,
		Keysets:     [MaxSlots]Keyset{"qerty", "adfgh", "zcvbn"},
	},
	"rolling": {
		Name:        "rolling",
		Description: "two-axis roll/pitch, no yaw (4 keys)",
		Strategy:    Rolling,
		Keysets:     [MaxSlots]Keyset{"qwert", "asdfg", "zxcvb"},
	},
}

// DefaultProfile is used when nothing else is configured.
const DefaultProfile = "cross"

// Lookup returns the built-in profile called name.
func Lookup(name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return p, nil
}

// Profiles returns all built-in profiles sorted by name.
func Profiles() []Profile {
	out := make([]Profile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
