package orientation

import "math"

// Calibration is the per-device reference frame. Baseline is written once,
// when Calibrated flips to true, and never again.
type Calibration struct {
	Calibrated bool
	Baseline   Buckets

	// accumulators for calibrators that look at more than one sample
	sum   [3]int
	count int
}

// Calibrator decides when and how a device's baseline is captured.
type Calibrator interface {
	Observe(c *Calibration, sample Buckets)
	Name() string
}

// FirstSample anchors the baseline to the very first sample verbatim.
type FirstSample struct{}

func (FirstSample) Name() string { return "first-sample" }

func (FirstSample) Observe(c *Calibration, sample Buckets) {
	if c.Calibrated {
		return
	}
	c.Baseline = sample
	c.Calibrated = true
}

// Averaging anchors the baseline to the rounded mean of the first Samples
// samples. It trades a short warm-up for less sensitivity to a noisy first
// reading. Angles are averaged linearly, so a device held across the ±π seam
// calibrates poorly.
type Averaging struct {
	Samples int
}

func (a Averaging) Name() string { return "average" }

func (a Averaging) Observe(c *Calibration, sample Buckets) {
	if c.Calibrated {
		return
	}
	n := a.Samples
	if n < 1 {
		n = 1
	}
	c.sum[0] += sample.Roll
	c.sum[1] += sample.Pitch
	c.sum[2] += sample.Yaw
	c.count++
	if c.count < n {
		return
	}
	c.Baseline = Buckets{
		Roll:  roundDiv(c.sum[0], c.count),
		Pitch: roundDiv(c.sum[1], c.count),
		Yaw:   roundDiv(c.sum[2], c.count),
	}
	c.Calibrated = true
	c.sum = [3]int{}
	c.count = 0
}

func roundDiv(sum, n int) int {
	return int(math.Round(float64(sum) / float64(n)))
}
