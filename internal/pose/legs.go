package pose

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ayusman/rigkit/internal/landmark"
	"github.com/ayusman/rigkit/internal/vecmath"
)

// Leg rig calibration.
const (
	upperLegZOffset = 0.5
	upperLegZScale  = -2.3
)

// calcLeg measures one leg and maps it onto the rig. Hip yaw and all but
// knee flexion on the lower leg are too noisy to track and stay at zero.
func calcLeg(l landmark.List, side landmark.Side) Leg {
	p := limbs[side]

	upper := vecmath.FindRotation(l.Vec(p.hip), l.Vec(p.knee), true)
	upper.Z = vecmath.Clamp(upper.Z-upperLegZOffset, -upperLegZOffset, 0) * upperLegZScale * side.Direction()
	upper.Y = 0

	knee := vecmath.AngleBetween3DCoords(l.Vec(p.hip), l.Vec(p.knee), l.Vec(p.ankle))
	lower := r3.Vec{X: vecmath.Clamp(knee*math.Pi, 0, math.Pi)}

	return Leg{Upper: upper, Lower: lower}
}
