package app

// KeyRing is a circular buffer of the keys pressed for one armband.
type KeyRing struct {
	buf   []rune
	pos   int
	count int
	total uint64
}

// NewKeyRing creates a new circular buffer with the given capacity.
func NewKeyRing(capacity int) *KeyRing {
	if capacity < 1 {
		capacity = 1
	}
	return &KeyRing{
		buf: make([]rune, capacity),
	}
}

// Push adds a key to the ring buffer.
func (r *KeyRing) Push(key rune) {
	r.buf[r.pos] = key
	r.pos = (r.pos + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
	r.total++
}

// Values returns all stored keys in chronological order.
func (r *KeyRing) Values() []rune {
	if r.count == 0 {
		return nil
	}
	result := make([]rune, r.count)
	if r.count < len(r.buf) {
		copy(result, r.buf[:r.count])
	} else {
		start := r.pos
		n := copy(result, r.buf[start:])
		copy(result[n:], r.buf[:start])
	}
	return result
}

// Last returns the most recent key, or 0 if empty.
func (r *KeyRing) Last() rune {
	if r.count == 0 {
		return 0
	}
	idx := (r.pos - 1 + len(r.buf)) % len(r.buf)
	return r.buf[idx]
}

// Len returns the number of stored keys.
func (r *KeyRing) Len() int {
	return r.count
}

// Total returns how many keys were ever pushed, including overwritten ones.
func (r *KeyRing) Total() uint64 {
	return r.total
}
