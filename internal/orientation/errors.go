package orientation

import "fmt"

// DegenerateQuaternionError is returned for a sample that cannot be
// normalized (zero norm or non-finite components).
type DegenerateQuaternionError struct {
	Q Quaternion
}

func (e *DegenerateQuaternionError) Error() string {
	return fmt.Sprintf("orientation: degenerate quaternion (w=%g x=%g y=%g z=%g)", e.Q.W, e.Q.X, e.Q.Y, e.Q.Z)
}
