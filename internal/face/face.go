// Package face turns a face mesh into head orientation, eye openness, brow
// raise, pupil offset and mouth shape weights.
package face

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ayusman/rigkit/internal/landmark"
)

// Head is the orientation and rough bounds of the face.
type Head struct {
	// X, Y and Z are the rotation in radians.
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	// Position is the center of the face box.
	Position r3.Vec `json:"position"`
	// NormalizedAngles is the rotation as a signed fraction of π.
	NormalizedAngles r3.Vec `json:"normalizedAngles"`
	Degrees          r3.Vec `json:"degrees"`
}

// Eyes holds per-eye openness, 1 is fully open.
type Eyes struct {
	Left  float64 `json:"l"`
	Right float64 `json:"r"`
}

// Shape is the vowel blend-shape weights of the mouth.
type Shape struct {
	A float64 `json:"A"`
	E float64 `json:"E"`
	I float64 `json:"I"`
	O float64 `json:"O"`
	U float64 `json:"U"`
}

// Mouth is the openness of the mouth plus its vowel shape.
type Mouth struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Shape Shape   `json:"shape"`
}

// Face is the full face descriptor for one frame.
type Face struct {
	Head   Head    `json:"head"`
	Eyes   Eyes    `json:"eye"`
	Brow   float64 `json:"brow"`
	Pupils r2.Vec  `json:"pupil"`
	Mouth  Mouth   `json:"mouth"`
}

// Options tunes Solve.
type Options struct {
	// SmoothBlink enables StabilizeBlink.
	SmoothBlink bool `json:"smoothBlink"`
	// BlinkLow and BlinkHigh bound the eye aspect ratio that maps onto
	// closed (0) and open (1).
	BlinkLow  float64 `json:"blinkLow"`
	BlinkHigh float64 `json:"blinkHigh"`
	// EnableWink lowers the eye difference treated as a deliberate wink.
	EnableWink bool `json:"enableWink"`
	// MaxRotation is the head yaw, in radians, past which one eye is
	// considered hidden.
	MaxRotation float64 `json:"maxRotation"`
}

// DefaultOptions returns the thresholds tuned for the MediaPipe face mesh.
func DefaultOptions() Options {
	return Options{
		SmoothBlink: false,
		BlinkLow:    0.35,
		BlinkHigh:   0.5,
		EnableWink:  true,
		MaxRotation: 0.5,
	}
}

// Solve computes the face descriptor. The list must hold at least the 468
// point base mesh; iris dependent outputs fall back to neutral values when
// the 10 iris points are missing.
func Solve(l landmark.List, opts Options) (Face, error) {
	if err := l.RequireAtLeast(landmark.FaceMeshLandmarks, "face"); err != nil {
		return Face{}, err
	}

	head := CalcHead(l)
	mouth := CalcMouth(l)

	eyes := CalcEyes(l, opts.BlinkHigh, opts.BlinkLow)
	if opts.SmoothBlink {
		eyes = StabilizeBlink(eyes, head.Y, opts.EnableWink, opts.MaxRotation)
	}

	pupils := CalcPupils(l)
	brow := CalcBrow(l)

	return Face{
		Head:   head,
		Eyes:   eyes,
		Brow:   brow,
		Pupils: pupils,
		Mouth:  mouth,
	}, nil
}

// Resting returns the neutral face: eyes open, mouth closed, head centered.
func Resting() Face {
	return Face{
		Eyes: Eyes{Left: 1, Right: 1},
		Head: Head{
			Width:    0.3,
			Height:   0.6,
			Position: r3.Vec{X: 0.5, Y: 0.5},
		},
	}
}
