package hand

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ayusman/rigkit/internal/landmark"
	"github.com/ayusman/rigkit/internal/vecmath"
)

// Wrist limits, in rig units.
const (
	wristXLimit = 0.3
	wristYScale = 2.3
	wristZScale = -2.3
)

// wristYRange returns the allowed wrist yaw for a side.
func wristYRange(side landmark.Side) (lo, hi float64) {
	if side == landmark.Right {
		return -1.2, 0.6
	}
	return -0.6, 1.6
}

// thumbSegment tunes one thumb joint. damp scales the tracked flexion per
// axis; start is the rest angle it is added to (Y and Z before the side
// direction is applied).
type thumbSegment struct {
	damp  r3.Vec
	start r3.Vec
}

var (
	thumbProximal     = thumbSegment{damp: r3.Vec{X: 2.2, Y: 2.2, Z: 0.5}, start: r3.Vec{X: 1.2, Y: 1.1, Z: 0.2}}
	thumbIntermediate = thumbSegment{damp: r3.Vec{X: 0, Y: 0.7, Z: 0.5}, start: r3.Vec{X: -0.2, Y: 0.1, Z: 0.2}}
	thumbDistal       = thumbSegment{damp: r3.Vec{X: 0, Y: 1, Z: 0.5}, start: r3.Vec{X: -0.2, Y: 0.1, Z: 0.2}}
)

// Thumb limits, in rig units. The proximal Y/Z range is for the right hand;
// the left hand uses its negation.
const (
	thumbProximalXMin  = -0.6
	thumbProximalXMax  = 0.3
	thumbProximalYZMin = -1.0
	thumbProximalYZMax = 0.3
	thumbJointLimit    = 2.0
)

// thumbProximalRange returns the allowed proximal Y/Z rotation for a side.
func thumbProximalRange(side landmark.Side) (lo, hi float64) {
	if side == landmark.Right {
		return thumbProximalYZMin, thumbProximalYZMax
	}
	return -thumbProximalYZMax, -thumbProximalYZMin
}

// rigFingers maps raw palm angles and joint flexion into rig rotations.
// Everything is mirrored by the side direction so both hands curl inward.
func rigFingers(h Hand, side landmark.Side) Hand {
	dir := side.Direction()

	lo, hi := wristYRange(side)
	h.Wrist = r3.Vec{
		X: vecmath.Clamp(h.Wrist.X*2*dir, -wristXLimit, wristXLimit),
		Y: vecmath.Clamp(h.Wrist.Y*wristYScale, lo, hi),
		Z: h.Wrist.Z * wristZScale * dir,
	}

	h.Thumb = Finger{
		Proximal:     rigThumbProximal(h.Thumb.Proximal, side),
		Intermediate: rigThumbJoint(h.Thumb.Intermediate, thumbIntermediate, dir),
		Distal:       rigThumbJoint(h.Thumb.Distal, thumbDistal, dir),
	}
	h.Index = rigDigit(h.Index, side)
	h.Middle = rigDigit(h.Middle, side)
	h.Ring = rigDigit(h.Ring, side)
	h.Little = rigDigit(h.Little, side)

	return h
}

func rigDigit(f Finger, side landmark.Side) Finger {
	return Finger{
		Proximal:     rigJoint(f.Proximal, side),
		Intermediate: rigJoint(f.Intermediate, side),
		Distal:       rigJoint(f.Distal, side),
	}
}

// rigJoint turns flexion into a Z curl that never bends backward:
// [-π, 0] for the right hand, [0, π] for the left.
func rigJoint(tracked r3.Vec, side landmark.Side) r3.Vec {
	lo, hi := -math.Pi, 0.0
	if side == landmark.Left {
		lo, hi = 0, math.Pi
	}
	return r3.Vec{Z: vecmath.Clamp(tracked.Z*-math.Pi*side.Direction(), lo, hi)}
}

// thumbAxis is the shared thumb formula: rest angle plus damped flexion.
func thumbAxis(start, flex, damp, dir float64) float64 {
	return start + flex*-math.Pi*damp*dir
}

func rigThumbProximal(tracked r3.Vec, side landmark.Side) r3.Vec {
	dir := side.Direction()
	seg := thumbProximal

	lo, hi := thumbProximalRange(side)
	return r3.Vec{
		X: vecmath.Clamp(thumbAxis(seg.start.X, tracked.Z, seg.damp.X, 1), thumbProximalXMin, thumbProximalXMax),
		Y: vecmath.Clamp(thumbAxis(seg.start.Y*dir, tracked.Z, seg.damp.Y, dir), lo, hi),
		Z: vecmath.Clamp(thumbAxis(seg.start.Z*dir, tracked.Z, seg.damp.Z, dir), lo, hi),
	}
}

func rigThumbJoint(tracked r3.Vec, seg thumbSegment, dir float64) r3.Vec {
	return r3.Vec{
		X: vecmath.Clamp(thumbAxis(seg.start.X, tracked.Z, seg.damp.X, 1), -thumbJointLimit, thumbJointLimit),
		Y: vecmath.Clamp(thumbAxis(seg.start.Y*dir, tracked.Z, seg.damp.Y, dir), -thumbJointLimit, thumbJointLimit),
		Z: vecmath.Clamp(thumbAxis(seg.start.Z*dir, tracked.Z, seg.damp.Z, dir), -thumbJointLimit, thumbJointLimit),
	}
}
