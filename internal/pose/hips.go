package pose

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ayusman/rigkit/internal/landmark"
	"github.com/ayusman/rigkit/internal/vecmath"
)

// centerLerp is the interpolation factor used for the hip and shoulder
// centers. At 1 the "center" is simply the second point.
//
// TODO: 0.5 gives the true midpoint, but the hip position offsets below
// were tuned against 1. Retune them before changing it.
const centerLerp = 1

// Turning toward profile makes the shoulder and hip pairs overlap, so tilt
// is faded out as yaw moves through this range.
const (
	turnAroundStart = 0.2
	turnAroundEnd   = 0.4
)

// Hip position tuning, in image units. The X offset recenters the hip
// center; Z is the spine length shortfall below 1, so it never goes positive.
const (
	hipOffsetX = 0.4
	hipXLimit  = 1.0
	hipZMin    = -2.0
	hipZMax    = 0.0
)

// calcHips returns the hips and spine. Rotations come from the 3D list,
// position from the image-space list.
func calcHips(world, image landmark.List) (Hips, r3.Vec) {
	hipCenter := vecmath.LerpVec(image.Vec(landmark.PoseLeftHip), image.Vec(landmark.PoseRightHip), centerLerp)
	shoulderCenter := vecmath.LerpVec(image.Vec(landmark.PoseLeftShoulder), image.Vec(landmark.PoseRightShoulder), centerLerp)
	spineLength := vecmath.Distance2D(
		r2.Vec{X: hipCenter.X, Y: hipCenter.Y},
		r2.Vec{X: shoulderCenter.X, Y: shoulderCenter.Y},
	)

	position := r3.Vec{
		X: vecmath.Clamp(hipCenter.X-hipOffsetX, -hipXLimit, hipXLimit),
		Y: 0,
		Z: vecmath.Clamp(spineLength-1, hipZMin, hipZMax),
	}

	worldZ := position.Z * math.Pow(position.Z*-2, 2)
	worldPosition := r3.Vec{
		X: position.X * worldZ,
		Y: 0,
		Z: worldZ,
	}

	hipRotation := trunkRotation(world.Vec(landmark.PoseLeftHip), world.Vec(landmark.PoseRightHip))
	spineRotation := trunkRotation(world.Vec(landmark.PoseLeftShoulder), world.Vec(landmark.PoseRightShoulder))

	hips := Hips{
		Rotation:      r3.Scale(math.Pi, hipRotation),
		Position:      position,
		WorldPosition: worldPosition,
	}
	return hips, r3.Scale(math.Pi, spineRotation)
}

// trunkRotation is the normalized rotation of a left/right landmark pair,
// shifted so facing the camera reads as zero.
func trunkRotation(left, right r3.Vec) r3.Vec {
	rot := vecmath.RollPitchYaw(left, right)

	// move the ±1 seam behind the subject
	if rot.Y > 0.5 {
		rot.Y -= 2
	}
	rot.Y += 0.5

	// tilt is measured from horizontal in both directions
	if rot.Z > 0 {
		rot.Z = 1 - rot.Z
	}
	if rot.Z < 0 {
		rot.Z = -1 - rot.Z
	}

	turnAround := vecmath.Remap(math.Abs(rot.Y), turnAroundStart, turnAroundEnd)
	rot.Z *= 1 - turnAround

	// roll is not reliable enough to drive the rig
	rot.X = 0

	return rot
}
