package face

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ayusman/rigkit/internal/landmark"
	"github.com/ayusman/rigkit/internal/vecmath"
)

// Eight point outlines: outer corner, inner corner, three upper lid points
// (outer to inner) and three lower lid points (outer to inner).
var (
	eyeLeftPoints   = [8]int{130, 133, 160, 159, 158, 144, 145, 153}
	eyeRightPoints  = [8]int{263, 362, 387, 386, 385, 373, 374, 380}
	browLeftPoints  = [8]int{35, 244, 63, 105, 66, 229, 230, 231}
	browRightPoints = [8]int{265, 464, 293, 334, 296, 449, 450, 451}
)

// Iris center is the first point of each group.
var (
	pupilLeftPoints  = [5]int{468, 469, 470, 471, 472}
	pupilRightPoints = [5]int{473, 474, 475, 476, 477}
)

const (
	// eyeAspectRatio is the height/width ratio of an open human eye.
	eyeAspectRatio = 0.285
	// pupilBias shifts the iris center down; the tracker places it high.
	pupilBias = 0.075

	browMaxRatio = 1.15
	browHigh     = 0.125
	browLow      = 0.07

	winkThreshold        = 0.8
	winkThresholdNoWinks = 1.2
	blinkClosing         = 0.3
	blinkOpening         = 0.6
	blinkBlend           = 0.95
)

func eyePoints(side landmark.Side) [8]int {
	if side == landmark.Right {
		return eyeRightPoints
	}
	return eyeLeftPoints
}

func browPoints(side landmark.Side) [8]int {
	if side == landmark.Right {
		return browRightPoints
	}
	return browLeftPoints
}

// lidRatio is the mean vertical opening of an outline divided by its width.
// 2D distances jitter less than 3D ones.
func lidRatio(l landmark.List, pts [8]int) float64 {
	width := vecmath.Distance2D(l.Vec2(pts[0]), l.Vec2(pts[1]))
	if width == 0 {
		return 0
	}
	outer := vecmath.Distance2D(l.Vec2(pts[2]), l.Vec2(pts[5]))
	mid := vecmath.Distance2D(l.Vec2(pts[3]), l.Vec2(pts[6]))
	inner := vecmath.Distance2D(l.Vec2(pts[4]), l.Vec2(pts[7]))
	return (outer + mid + inner) / 3 / width
}

// EyeOpen returns the openness of one eye in [0, 1].
func EyeOpen(l landmark.List, side landmark.Side, high, low float64) float64 {
	ratio := vecmath.Clamp(lidRatio(l, eyePoints(side))/eyeAspectRatio, 0, 2)
	return vecmath.Remap(ratio, low, high)
}

// CalcEyes returns both eyes' openness. Without iris points the eyes are
// reported fully open.
func CalcEyes(l landmark.List, high, low float64) Eyes {
	if !landmark.HasIris(l) {
		return Eyes{Left: 1, Right: 1}
	}
	return Eyes{
		Left:  EyeOpen(l, landmark.Left, high, low),
		Right: EyeOpen(l, landmark.Right, high, low),
	}
}

// StabilizeBlink evens out the two eyes within a single frame. Past
// maxRotation of head yaw the hidden eye copies the visible one. Eyes that
// are both closing or both opening, or that differ by more than the wink
// threshold, are kept as they are; anything else collapses onto one value
// weighted toward the more open eye.
func StabilizeBlink(eyes Eyes, headYaw float64, enableWink bool, maxRotation float64) Eyes {
	left := vecmath.Clamp(eyes.Left, 0, 1)
	right := vecmath.Clamp(eyes.Right, 0, 1)

	if headYaw > maxRotation {
		return Eyes{Left: right, Right: right}
	}
	if headYaw < -maxRotation {
		return Eyes{Left: left, Right: left}
	}

	isClosing := left < blinkClosing && right < blinkClosing
	isOpening := left > blinkOpening && right > blinkOpening
	if isClosing || isOpening {
		return Eyes{Left: left, Right: right}
	}

	thresh := winkThreshold
	if !enableWink {
		thresh = winkThresholdNoWinks
	}
	if math.Abs(left-right) >= thresh {
		return Eyes{Left: left, Right: right}
	}

	value := vecmath.Lerp(math.Min(left, right), math.Max(left, right), blinkBlend)
	return Eyes{Left: value, Right: value}
}

// PupilPos returns the iris offset of one eye from the eye's center.
func PupilPos(l landmark.List, side landmark.Side) r2.Vec {
	pts := eyePoints(side)
	pupilPts := pupilLeftPoints
	if side == landmark.Right {
		pupilPts = pupilRightPoints
	}

	outer := l.Vec(pts[0])
	inner := l.Vec(pts[1])
	eyeWidth := vecmath.Distance2D(l.Vec2(pts[0]), l.Vec2(pts[1]))
	if eyeWidth == 0 {
		return r2.Vec{}
	}
	mid := vecmath.LerpVec(outer, inner, 0.5)

	pupil := l.Vec(pupilPts[0])
	dx := mid.X - pupil.X
	dy := mid.Y - pupil.Y - eyeWidth*pupilBias

	return r2.Vec{
		X: 4 * dx / (eyeWidth / 2),
		Y: 4 * dy / (eyeWidth / 4),
	}
}

// CalcPupils averages both pupil offsets, clamped to [-1, 1] per axis.
// Without iris points the pupils are centered.
func CalcPupils(l landmark.List) r2.Vec {
	if !landmark.HasIris(l) {
		return r2.Vec{}
	}
	avg := r2.Scale(0.5, r2.Add(PupilPos(l, landmark.Left), PupilPos(l, landmark.Right)))
	return r2.Vec{
		X: vecmath.Clamp(avg.X, -1, 1),
		Y: vecmath.Clamp(avg.Y, -1, 1),
	}
}

// BrowRaise returns the raise of one eyebrow in [0, 1].
func BrowRaise(l landmark.List, side landmark.Side) float64 {
	ratio := lidRatio(l, browPoints(side))/browMaxRatio - 1
	return vecmath.Remap(ratio, browLow, browHigh)
}

// CalcBrow averages both eyebrows. Without iris points it reports 0.
func CalcBrow(l landmark.List) float64 {
	if !landmark.HasIris(l) {
		return 0
	}
	return (BrowRaise(l, landmark.Left) + BrowRaise(l, landmark.Right)) / 2
}
