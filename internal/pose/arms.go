package pose

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ayusman/rigkit/internal/landmark"
	"github.com/ayusman/rigkit/internal/vecmath"
)

// Arm rig calibration.
const (
	lowerArmMinZ = -2.14

	upperArmZScale  = -2.3
	upperArmXOffset = 0.3
	lowerArmScale   = 2.14
	handZScale      = -2.3
	handYScale      = 2

	upperArmMinX = -0.5
	upperArmMaxX = math.Pi
	lowerArmMaxX = 0.3
	handMaxY     = 0.6
)

// calcArm measures one arm and maps it onto the rig.
func calcArm(l landmark.List, side landmark.Side) Arm {
	p := limbs[side]

	upper := vecmath.FindRotation(l.Vec(p.shoulder), l.Vec(p.elbow), true)
	upper.Y = vecmath.AngleBetween3DCoords(l.Vec(p.otherShoulder), l.Vec(p.shoulder), l.Vec(p.elbow))

	lower := vecmath.FindRotation(l.Vec(p.elbow), l.Vec(p.wrist), true)
	lower.Y = vecmath.AngleBetween3DCoords(l.Vec(p.shoulder), l.Vec(p.elbow), l.Vec(p.wrist))
	lower.Z = vecmath.Clamp(lower.Z, lowerArmMinZ, 0)

	knuckles := vecmath.LerpVec(l.Vec(p.pinky), l.Vec(p.index), 0.5)
	hand := vecmath.FindRotation(l.Vec(p.wrist), knuckles, true)

	return rigArm(Arm{Upper: upper, Lower: lower, Hand: hand}, side)
}

// rigArm scales and clamps measured arm angles into rig rotations. The
// elbow's bend is folded into the shoulder's yaw.
func rigArm(a Arm, side landmark.Side) Arm {
	invert := side.Direction()

	upper := r3.Vec{
		X: a.Upper.X - upperArmXOffset*invert,
		Y: a.Upper.Y*math.Pi*invert - math.Max(a.Lower.X, 0) + invert*math.Max(a.Lower.Z, 0),
		Z: a.Upper.Z * upperArmZScale * invert,
	}
	upper.X = vecmath.Clamp(upper.X, upperArmMinX, upperArmMaxX)

	lower := r3.Vec{
		X: vecmath.Clamp(a.Lower.X*lowerArmScale*invert, -lowerArmMaxX, lowerArmMaxX),
		Y: a.Lower.Y * lowerArmScale * invert,
		Z: a.Lower.Z * -lowerArmScale * invert,
	}

	hand := r3.Vec{
		X: a.Hand.X,
		Y: vecmath.Clamp(a.Hand.Z*handYScale, -handMaxY, handMaxY),
		Z: a.Hand.Z * handZScale * invert,
	}

	return Arm{Upper: upper, Lower: lower, Hand: hand}
}
