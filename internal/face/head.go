package face

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ayusman/rigkit/internal/landmark"
	"github.com/ayusman/rigkit/internal/vecmath"
)

// Face box corners on the face mesh.
const (
	headTopLeft     = 21
	headTopRight    = 251
	headBottomRight = 397
	headBottomLeft  = 172
)

// EulerPlane returns three points spanning the face: the two top corners of
// the face box and the midpoint of its bottom edge.
func EulerPlane(l landmark.List) [3]r3.Vec {
	bottomMid := vecmath.LerpVec(l.Vec(headBottomRight), l.Vec(headBottomLeft), 0.5)
	return [3]r3.Vec{l.Vec(headTopLeft), l.Vec(headTopRight), bottomMid}
}

// CalcHead returns the head rotation and face box.
func CalcHead(l landmark.List) Head {
	plane := EulerPlane(l)
	rotate := vecmath.PlaneRotation(plane[0], plane[1], plane[2])

	midPoint := vecmath.LerpVec(plane[0], plane[1], 0.5)
	width := vecmath.Distance(plane[0], plane[1])
	height := vecmath.Distance(midPoint, plane[2])

	// camera space to world space
	rotate.X *= -1
	rotate.Y *= -1

	return Head{
		X:                rotate.X * math.Pi,
		Y:                rotate.Y * math.Pi,
		Z:                rotate.Z * math.Pi,
		Width:            width,
		Height:           height,
		Position:         vecmath.LerpVec(midPoint, plane[2], 0.5),
		NormalizedAngles: rotate,
		Degrees:          r3.Scale(180, rotate),
	}
}
