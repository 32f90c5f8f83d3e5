package gesture

import "errors"

var (
	// ErrUnknownProfile is returned by Lookup for a name with no built-in profile.
	ErrUnknownProfile = errors.New("gesture: unknown profile")

	// ErrInvalidKeyset is returned for a keyset that is not 5 lowercase letters.
	ErrInvalidKeyset = errors.New("gesture: invalid keyset")

	// ErrNoKeyset is returned when a registration slot has no keyset.
	ErrNoKeyset = errors.New("gesture: no keyset for slot")
)
