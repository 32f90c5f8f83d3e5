package gesture

import "fmt"

// KeysetSize is the number of symbols in every keyset.
const KeysetSize = 5

// Keyset is the fixed ordered set of symbols one device maps onto.
type Keyset string

// At returns the i-th symbol.
func (k Keyset) At(i int) rune {
	return rune(k[i])
}

// Validate checks that k holds exactly KeysetSize lowercase ASCII letters.
func (k Keyset) Validate() error {
	if len(k) != KeysetSize {
		return fmt.Errorf("%w: %q has %d symbols, want %d", ErrInvalidKeyset, string(k), len(k), KeysetSize)
	}
	for i := 0; i < len(k); i++ {
		if k[i] < 'a' || k[i] > 'z' {
			return fmt.Errorf("%w: %q contains %q", ErrInvalidKeyset, string(k), k[i])
		}
	}
	return nil
}
