package orientation

import (
	"fmt"
	"math"
)

// BucketCount is the number of discrete steps each angle is quantized into.
const BucketCount = 18

// NormTolerance is how far a quaternion's norm may drift from 1 before it is
// renormalized ahead of conversion.
const NormTolerance = 1e-3

// Quaternion is a unit quaternion sample as delivered by the transport.
type Quaternion struct {
	W float32 `json:"w"`
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Identity is the rest orientation (no rotation).
var Identity = Quaternion{W: 1}

// Norm returns the Euclidean norm of q.
func (q Quaternion) Norm() float64 {
	w, x, y, z := float64(q.W), float64(q.X), float64(q.Y), float64(q.Z)
	return math.Sqrt(w*w + x*x + y*y + z*z)
}

// Angles holds Euler angles in radians.
type Angles struct {
	Roll  float64
	Pitch float64
	Yaw   float64
}

// Buckets holds quantized angles, each in [0, BucketCount).
type Buckets struct {
	Roll  int `json:"roll"`
	Pitch int `json:"pitch"`
	Yaw   int `json:"yaw"`
}

func (b Buckets) String() string {
	return fmt.Sprintf("%d | %d | %d", b.Roll, b.Pitch, b.Yaw)
}

// Normalize rescales q to unit norm. It fails only when q cannot be scaled:
// a zero norm or a non-finite component.
func Normalize(q Quaternion) (Quaternion, error) {
	for _, c := range [4]float32{q.W, q.X, q.Y, q.Z} {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Quaternion{}, &DegenerateQuaternionError{Q: q}
		}
	}
	n := q.Norm()
	if n == 0 || math.IsInf(n, 0) {
		return Quaternion{}, &DegenerateQuaternionError{Q: q}
	}
	return Quaternion{
		W: float32(float64(q.W) / n),
		X: float32(float64(q.X) / n),
		Y: float32(float64(q.Y) / n),
		Z: float32(float64(q.Z) / n),
	}, nil
}

// EulerFromQuaternion converts a unit quaternion to roll, pitch and yaw.
//
//	roll  = atan2(2(wx + yz), 1 - 2(x² + y²))
//	pitch = asin(clamp(2(wy - zx), -1, 1))
//	yaw   = atan2(2(wz + xy), 1 - 2(y² + z²))
func EulerFromQuaternion(q Quaternion) Angles {
	w, x, y, z := float64(q.W), float64(q.X), float64(q.Y), float64(q.Z)

	roll := math.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y))

	sinP := 2 * (w*y - z*x)
	sinP = math.Max(-1, math.Min(1, sinP))
	pitch := math.Asin(sinP)

	yaw := math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z))

	return Angles{Roll: roll, Pitch: pitch, Yaw: yaw}
}

// Quantize maps angles onto buckets. Roll and yaw span [-π, π], pitch spans
// [-π/2, π/2]; the upper boundary lands in the last bucket.
func Quantize(a Angles) Buckets {
	return Buckets{
		Roll:  bucket(a.Roll, -math.Pi, 2*math.Pi),
		Pitch: bucket(a.Pitch, -math.Pi/2, math.Pi),
		Yaw:   bucket(a.Yaw, -math.Pi, 2*math.Pi),
	}
}

func bucket(angle, lo, span float64) int {
	b := int(math.Floor((angle - lo) / span * BucketCount))
	if b < 0 {
		return 0
	}
	if b >= BucketCount {
		return BucketCount - 1
	}
	return b
}

// Convert turns a quaternion sample into buckets. Samples whose norm has
// drifted are renormalized first.
func Convert(q Quaternion) (Buckets, error) {
	n := q.Norm()
	if math.IsNaN(n) || math.Abs(n-1) > NormTolerance {
		nq, err := Normalize(q)
		if err != nil {
			return Buckets{}, err
		}
		q = nq
	}
	return Quantize(EulerFromQuaternion(q)), nil
}

// FromEuler builds the unit quaternion for roll, pitch and yaw (ZYX order),
// the inverse of EulerFromQuaternion within the principal ranges.
func FromEuler(a Angles) Quaternion {
	cr, sr := math.Cos(a.Roll/2), math.Sin(a.Roll/2)
	cp, sp := math.Cos(a.Pitch/2), math.Sin(a.Pitch/2)
	cy, sy := math.Cos(a.Yaw/2), math.Sin(a.Yaw/2)

	return Quaternion{
		W: float32(cr*cp*cy + sr*sp*sy),
		X: float32(sr*cp*cy - cr*sp*sy),
		Y: float32(cr*sp*cy + sr*cp*sy),
		Z: float32(cr*cp*sy - sr*sp*cy),
	}
}
