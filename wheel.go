package openlime

import "math"

const (
	// wheelWarmup is the number of events seen before a wheel counts as
	// classified.
	wheelWarmup = 5
	// notchRepeats is how many repeats of one magnitude mark a notched wheel.
	notchRepeats = 5
	// wheelRateFloor seeds the peak rate estimate after each reclassification.
	wheelRateFloor = 10
	// wheelWindowMs caps the interval used for the delta rate.
	wheelWindowMs = 100
	// wheelGain scales smooth deltas so a typical flick is a few notches.
	wheelGain = 250
)

type wheelKind uint8

const (
	wheelUnknown wheelKind = iota
	wheelNotched
	wheelSmooth
)

// wheelNormalizer maps raw wheel deltas to notches. A wheel that repeats
// the same magnitude is notched and reports one step per event in the
// direction of the delta. Smooth wheels and touchpads are divided by a
// decaying estimate of their peak delta rate.
type wheelNormalizer struct {
	seen int
	kind wheelKind

	lastAbs float64
	repeats int

	peakRate float64
	pending  float64
	lastTime float64
	timed    bool
}

// Normalize converts delta d observed at time now (ms). ok turns true once
// enough events were seen to classify the wheel.
func (n *wheelNormalizer) Normalize(d, now float64) (steps float64, ok bool) {
	ok = n.seen >= wheelWarmup
	if !ok {
		n.seen++
	}
	abs := math.Abs(d)
	if abs == 0 {
		return 0, ok
	}

	n.classify(abs)
	n.trackRate(d, now)

	if n.kind == wheelNotched {
		return math.Copysign(1, d), ok
	}
	return d * wheelGain / n.peakRate, ok
}

// classify counts repeats of the same magnitude. Switching kind restarts the
// peak rate estimate.
func (n *wheelNormalizer) classify(abs float64) {
	if abs == n.lastAbs {
		n.repeats++
	} else {
		n.repeats = 0
	}
	n.lastAbs = abs

	kind := wheelSmooth
	if n.repeats >= notchRepeats {
		kind = wheelNotched
	}
	if kind != n.kind {
		n.peakRate = wheelRateFloor
	}
	n.kind = kind
}

// trackRate folds d into the peak delta-per-second estimate. Deltas arriving
// at the same timestamp accumulate until time moves on.
func (n *wheelNormalizer) trackRate(d, now float64) {
	dt := float64(wheelWindowMs)
	if n.timed {
		dt = now - n.lastTime
	}
	n.pending += d
	if dt > 0 {
		rate := math.Abs(n.pending / (math.Min(dt, wheelWindowMs) / 1000))
		n.pending = 0
		n.lastTime, n.timed = now, true
		if rate > n.peakRate {
			// Average with the old peak to damp spikes.
			n.peakRate = (n.peakRate + rate) / 2
		}
		n.peakRate *= 0.95
	}
	n.peakRate = math.Max(n.peakRate, 1)
}
