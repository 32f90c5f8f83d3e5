package app

import "time"

// TickMsg drives one pipeline tick and one frame.
type TickMsg time.Time
