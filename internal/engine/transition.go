package engine

import (
	"math"

	"github.com/iburimskiy/vusic/internal/shape"
)

// AssumedFrameRate is the tick rate the per-frame constants were tuned for.
const AssumedFrameRate = 60.0

// SnapshotThreshold is the morph progress at which the outgoing shape is
// considered settled enough to become the next morph's starting point.
const SnapshotThreshold = 0.99

// EaseInOutCubic maps linear progress in [0,1] onto a cubic in/out curve.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Transition tracks the scatter/gather progress and the shape morph
// progress. Both move linearly toward their target and are eased on read.
type Transition struct {
	// Gather is 0 when fully scattered, 1 when fully gathered.
	Gather float64
	// Morph is 0 at the previous shape, 1 at the current one.
	Morph float64

	previous shape.PointSet
}

// NewTransition starts scattered with no morph in flight.
func NewTransition() Transition {
	return Transition{Morph: 1}
}

// Step returns the progress increment for one tick. With a fixed rate the
// increment ignores delta and assumes rate ticks per second.
func Step(delta, seconds, fixedRate float64) float64 {
	if seconds <= 0 {
		return 1
	}
	if fixedRate > 0 {
		return 1 / (seconds * fixedRate)
	}
	return delta / seconds
}

// Advance moves Gather toward 1 when activated (0 otherwise) and Morph
// toward 1, by the given steps.
func (t *Transition) Advance(activated bool, gatherStep, morphStep float64) {
	if t.Morph < 1 {
		t.Morph = snapUnit(t.Morph + morphStep)
	}

	if activated {
		t.Gather = snapUnit(t.Gather + gatherStep)
	} else {
		t.Gather = snapUnit(t.Gather - gatherStep)
	}
}

// progressEpsilon absorbs the rounding left after summing equal steps.
const progressEpsilon = 1e-9

// snapUnit clamps v to [0,1] and snaps values within progressEpsilon of
// either bound onto it, so n steps of 1/n land exactly on the bound.
func snapUnit(v float64) float64 {
	switch {
	case v >= 1-progressEpsilon:
		return 1
	case v <= progressEpsilon:
		return 0
	}
	return v
}

// Retarget restarts the morph after the active shape changed away from
// outgoing. A settled morph snapshots outgoing. An unsettled one keeps the
// older snapshot, unless blend is set, in which case the snapshot becomes
// the currently displayed mix of the old snapshot and outgoing.
func (t *Transition) Retarget(outgoing shape.PointSet, blend bool) {
	switch {
	case t.Morph >= SnapshotThreshold || t.previous == nil:
		t.previous = outgoing
	case blend:
		t.previous = lerpSets(t.previous, outgoing, EaseInOutCubic(t.Morph))
	}
	t.Morph = 0
}

// Morphing reports whether a previous shape is still being blended in.
func (t *Transition) Morphing() bool {
	return t.previous != nil && t.Morph < 1
}

// Previous is the snapshot the current morph starts from.
func (t *Transition) Previous() shape.PointSet { return t.previous }

func lerpSets(from, to shape.PointSet, f float64) shape.PointSet {
	out := make(shape.PointSet, len(to))
	for i := range out {
		a := to[i]
		if i < len(from) {
			a = from[i]
		}
		out[i] = a + (to[i]-a)*f
	}
	return out
}
