package vecmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// NormalizeAngle wraps radians into (-π, π] and returns it as a signed
// fraction of π. Used for roll/pitch/yaw outputs.
func NormalizeAngle(radians float64) float64 {
	twoPi := 2 * math.Pi
	angle := math.Mod(radians, twoPi)
	switch {
	case angle > math.Pi:
		angle -= twoPi
	case angle <= -math.Pi:
		angle += twoPi
	}
	return angle / math.Pi
}

// NormalizeRadians is the second normalization rule, used for point to
// point rotations and joint angles. It folds inputs at ±π/2 instead of
// wrapping at ±π, so it disagrees with NormalizeAngle past a quarter turn.
// For inputs in (-π, π] the result lies in [-0.5, 0.5].
//
// TODO: compare against NormalizeAngle on recorded sessions before either
// rule is retired.
func NormalizeRadians(radians float64) float64 {
	if radians >= math.Pi/2 {
		radians -= 2 * math.Pi
	}
	if radians <= -math.Pi/2 {
		radians += 2 * math.Pi
		radians = math.Pi - radians
	}
	return radians / math.Pi
}

// RollPitchYaw returns the per-axis angles of the segment a->b, each taken
// on one projection plane (ZY, ZX, XY) and normalized with NormalizeAngle.
func RollPitchYaw(a, b r3.Vec) r3.Vec {
	return r3.Vec{
		X: NormalizeAngle(Find2DAngle(a.Z, a.Y, b.Z, b.Y)),
		Y: NormalizeAngle(Find2DAngle(a.Z, a.X, b.Z, b.X)),
		Z: NormalizeAngle(Find2DAngle(a.X, a.Y, b.X, b.Y)),
	}
}

// PlaneRotation returns the orientation of the plane through a, b and c as
// normalized (X=roll, Y=pitch, Z=yaw). The frame is built from the plane
// normal (ab × ac) and the a->b edge.
func PlaneRotation(a, b, c r3.Vec) r3.Vec {
	roll, pitch, yaw := PlaneAngles(a, b, c)
	return r3.Vec{
		X: NormalizeAngle(roll),
		Y: NormalizeAngle(pitch),
		Z: NormalizeAngle(yaw),
	}
}

// PlaneAngles returns the raw roll, pitch and yaw of the abc plane in radians.
func PlaneAngles(a, b, c r3.Vec) (roll, pitch, yaw float64) {
	qb := r3.Sub(b, a)
	qc := r3.Sub(c, a)
	n := r3.Cross(qb, qc)

	unitZ := Unit(n)
	unitX := Unit(qb)
	unitY := r3.Cross(unitZ, unitX)

	pitch = math.Asin(Clamp(unitZ.X, -1, 1))
	roll = math.Atan2(-unitZ.Y, unitZ.Z)
	yaw = math.Atan2(-unitY.X, unitX.X)
	return roll, pitch, yaw
}

// FindRotation returns the per-axis angles of the segment a->b on the ZX,
// ZY and XY planes. With normalize set each angle goes through
// NormalizeRadians, otherwise raw radians are returned.
func FindRotation(a, b r3.Vec, normalize bool) r3.Vec {
	rot := r3.Vec{
		X: Find2DAngle(a.Z, a.X, b.Z, b.X),
		Y: Find2DAngle(a.Z, a.Y, b.Z, b.Y),
		Z: Find2DAngle(a.X, a.Y, b.X, b.Y),
	}
	if !normalize {
		return rot
	}
	return r3.Vec{
		X: NormalizeRadians(rot.X),
		Y: NormalizeRadians(rot.Y),
		Z: NormalizeRadians(rot.Z),
	}
}

// AngleBetween3DCoords returns the angle at b between the rays b->a and
// b->c, normalized with NormalizeRadians.
func AngleBetween3DCoords(a, b, c r3.Vec) float64 {
	v1 := Unit(r3.Sub(a, b))
	v2 := Unit(r3.Sub(c, b))
	dot := Clamp(r3.Dot(v1, v2), -1, 1)
	return NormalizeRadians(math.Acos(dot))
}
