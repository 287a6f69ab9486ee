package face

import (
	"github.com/ayusman/rigkit/internal/landmark"
	"github.com/ayusman/rigkit/internal/vecmath"
)

const (
	eyeInnerCornerLeft  = 133
	eyeInnerCornerRight = 362
	eyeOuterCornerLeft  = 130
	eyeOuterCornerRight = 263

	upperInnerLip    = 13
	lowerInnerLip    = 14
	mouthCornerLeft  = 61
	mouthCornerRight = 291
)

// Calibrated ranges for the mouth ratios. Openness is measured against the
// inner eye corner distance, width against the outer one.
var (
	mouthOpenRange  = [2]float64{0.15, 0.7}
	mouthWidthRange = [2]float64{0.45, 0.9}
	mouthShapeRange = [2]float64{0.17, 0.5}
)

// CalcMouth returns mouth openness and vowel weights.
func CalcMouth(l landmark.List) Mouth {
	eyeInnerDistance := vecmath.Distance(l.Vec(eyeInnerCornerLeft), l.Vec(eyeInnerCornerRight))
	eyeOuterDistance := vecmath.Distance(l.Vec(eyeOuterCornerLeft), l.Vec(eyeOuterCornerRight))
	if eyeInnerDistance == 0 || eyeOuterDistance == 0 {
		return Mouth{}
	}

	mouthOpen := vecmath.Distance(l.Vec(upperInnerLip), l.Vec(lowerInnerLip))
	mouthWidth := vecmath.Distance(l.Vec(mouthCornerLeft), l.Vec(mouthCornerRight))

	ratioY := vecmath.Remap(mouthOpen/eyeInnerDistance, mouthOpenRange[0], mouthOpenRange[1])
	ratioX := vecmath.Remap(mouthWidth/eyeOuterDistance, mouthWidthRange[0], mouthWidthRange[1])
	ratioX = (ratioX - 0.3) * 2

	mouthY := vecmath.Remap(mouthOpen/eyeInnerDistance, mouthShapeRange[0], mouthShapeRange[1])

	return Mouth{
		X:     ratioX,
		Y:     ratioY,
		Shape: Visemes(ratioX, mouthY),
	}
}

// Visemes blends mouth width and openness into vowel weights. Each weight
// builds on the ones before it: I, then A, U, E and O.
func Visemes(mouthX, mouthY float64) Shape {
	i := vecmath.Clamp(vecmath.Remap(mouthX, 0, 1)*2*vecmath.Remap(mouthY, 0.2, 0.7), 0, 1)
	a := mouthY*0.4 + mouthY*(1-i)*0.6
	u := mouthY * vecmath.Remap(1-i, 0, 0.3) * 0.1
	e := vecmath.Remap(u, 0.2, 1) * (1 - i) * 0.3
	o := (1 - i) * vecmath.Remap(mouthY, 0.3, 1) * 0.4

	return Shape{A: a, E: e, I: i, O: o, U: u}
}
