// Package device assigns stable small integer identities to armbands in the
// order they pair and owns their per-device state.
//
// The registry is not safe for concurrent use; the pipeline drives it from a
// single goroutine.
package device

import (
	"fmt"

	"armkeys.klederson.com/internal/gesture"
)

// NotFound is returned by Identify for a handle that never registered.
const NotFound = -1

// Registry maps handles to dense ids backed by a slice of states.
// Slots are never freed: a disconnected armband keeps its id and state.
type Registry struct {
	profile gesture.Profile
	limit   int
	states  []*State
	ids     map[Handle]int
}

// NewRegistry creates a registry handing out keysets from profile. At most
// limit armbands can register; limit is capped by the profile's slots.
func NewRegistry(profile gesture.Profile, limit int) *Registry {
	if limit > len(profile.Keysets) || limit <= 0 {
		limit = len(profile.Keysets)
	}
	return &Registry{
		profile: profile,
		limit:   limit,
		ids:     make(map[Handle]int, limit),
	}
}

// Register returns the id of h, registering it in the next free slot when
// it is new. A new handle beyond the limit yields *TooManyDevicesError and
// leaves the registry unchanged.
func (r *Registry) Register(h Handle) (int, error) {
	if id, ok := r.ids[h]; ok {
		return id, nil
	}
	if len(r.states) >= r.limit {
		return NotFound, &TooManyDevicesError{Limit: r.limit, Handle: h}
	}

	id := len(r.states)
	keyset, err := r.profile.Keyset(id)
	if err != nil {
		return NotFound, fmt.Errorf("device: register %s: %w", h, err)
	}

	r.states = append(r.states, &State{
		ID:     id,
		Handle: h,
		Keyset: keyset,
	})
	r.ids[h] = id
	return id, nil
}

// Identify returns the id of h, or NotFound.
func (r *Registry) Identify(h Handle) int {
	if id, ok := r.ids[h]; ok {
		return id
	}
	return NotFound
}

// Lookup returns the state registered for h, or *UnknownDeviceError.
func (r *Registry) Lookup(h Handle) (*State, error) {
	id := r.Identify(h)
	if id == NotFound {
		return nil, &UnknownDeviceError{Handle: h}
	}
	return r.states[id], nil
}

// State returns the state for id, or nil when id is not registered.
func (r *Registry) State(id int) *State {
	if id < 0 || id >= len(r.states) {
		return nil
	}
	return r.states[id]
}

// States returns the registered states in id order. The slice is a copy;
// the states are shared.
func (r *Registry) States() []*State {
	return append([]*State(nil), r.states...)
}

// Len returns the number of registered armbands.
func (r *Registry) Len() int {
	return len(r.states)
}

// Limit returns the maximum number of armbands.
func (r *Registry) Limit() int {
	return r.limit
}
