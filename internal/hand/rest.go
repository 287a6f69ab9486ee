package hand

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ayusman/rigkit/internal/landmark"
)

func curl(proximal, intermediate, distal float64) Finger {
	return Finger{
		Proximal:     r3.Vec{Z: proximal},
		Intermediate: r3.Vec{Z: intermediate},
		Distal:       r3.Vec{Z: distal},
	}
}

// Resting returns the relaxed rig pose for a hand, used when it is not
// tracked. Both sides share the wrist rotation.
func Resting(side landmark.Side) Hand {
	h := Hand{
		Side:       side,
		Wrist:      r3.Vec{X: -0.13, Y: -0.07, Z: -1.04},
		Quaternion: mgl64.QuatIdent(),
	}

	if side == landmark.Right {
		h.Thumb = Finger{
			Proximal:     r3.Vec{X: -0.23, Y: -0.33, Z: -0.12},
			Intermediate: r3.Vec{X: -0.2, Y: -0.199, Z: -0.0139},
			Distal:       r3.Vec{X: -0.2, Y: 0.002, Z: 0.15},
		}
		h.Index = curl(-0.24, -0.25, -0.06)
		h.Middle = curl(-0.09, -0.44, -0.06)
		h.Ring = curl(-0.13, -0.4, -0.04)
		h.Little = curl(-0.09, -0.225, -0.1)
		return h
	}

	h.Thumb = Finger{
		Proximal:     r3.Vec{X: -0.23, Y: 0.33, Z: 0.12},
		Intermediate: r3.Vec{X: -0.2, Y: 0.25, Z: 0.05},
		Distal:       r3.Vec{X: -0.2, Y: 0.17, Z: -0.06},
	}
	h.Index = curl(0.24, 0.25, 0.06)
	h.Middle = curl(0.09, 0.44, 0.066)
	h.Ring = curl(0.13, 0.4, 0.049)
	h.Little = curl(0.17, 0.4, 0.1)
	return h
}
