// Package keys turns computed symbols into synthesized keystrokes.
package keys

import "fmt"

// Injector is the OS-level input-injection collaborator. PressKey sends a
// key-down followed by a key-up for symbol.
type Injector interface {
	PressKey(symbol rune) error
}

// Edge remembers the last symbol actually emitted for one device.
// Zero means nothing has been emitted yet.
type Edge struct {
	Previous rune
}

// Emitter presses a key only when a device's symbol changes, so a gesture
// held across many ticks produces exactly one keystroke.
type Emitter struct {
	injector Injector
}

// NewEmitter creates an emitter that presses keys through injector.
func NewEmitter(injector Injector) *Emitter {
	return &Emitter{injector: injector}
}

// Emit presses symbol if it differs from e.Previous, then records symbol as
// the previous one. Previous advances even when the injector fails; a
// failed press is reported, not retried on the next tick.
func (m *Emitter) Emit(e *Edge, symbol rune) (bool, error) {
	if symbol == e.Previous {
		return false, nil
	}
	e.Previous = symbol
	if symbol == 0 {
		return false, nil
	}
	if err := m.injector.PressKey(symbol); err != nil {
		return false, fmt.Errorf("keys: press %q: %w", symbol, err)
	}
	return true, nil
}
