// Package hand turns 21 hand landmarks into wrist orientation and per-joint
// finger rotations.
package hand

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ayusman/rigkit/internal/landmark"
	"github.com/ayusman/rigkit/internal/vecmath"
)

// Finger holds the three joint rotations of one digit, knuckle outward.
type Finger struct {
	Proximal     r3.Vec `json:"proximal"`
	Intermediate r3.Vec `json:"intermediate"`
	Distal       r3.Vec `json:"distal"`
}

// Hand is the rigged hand for one frame.
type Hand struct {
	Side landmark.Side `json:"side"`
	// Palm is the wrist followed by the two outer knuckles, in the order
	// the orientation plane was built from.
	Palm [3]r3.Vec `json:"palm"`
	// Wrist is the rig-ready wrist rotation.
	Wrist r3.Vec `json:"wrist"`
	// Quaternion is the palm plane orientation built from raw yaw, pitch
	// and roll radians.
	Quaternion mgl64.Quat `json:"quaternion"`

	Thumb  Finger `json:"thumb"`
	Index  Finger `json:"index"`
	Middle Finger `json:"middle"`
	Ring   Finger `json:"ring"`
	Little Finger `json:"little"`
}

// wristYawOffset is subtracted from the palm yaw to line the wrist up with
// the rig's rest orientation.
const wristYawOffset = 0.4

// digit is a finger's four landmark indices from knuckle to tip. The
// proximal joint angle is measured against the wrist.
type digit [4]int

var (
	thumbPoints  = digit{landmark.ThumbCMC, landmark.ThumbMCP, landmark.ThumbIP, landmark.ThumbTip}
	indexPoints  = digit{landmark.IndexMCP, landmark.IndexPIP, landmark.IndexDIP, landmark.IndexTip}
	middlePoints = digit{landmark.MiddleMCP, landmark.MiddlePIP, landmark.MiddleDIP, landmark.MiddleTip}
	ringPoints   = digit{landmark.RingMCP, landmark.RingPIP, landmark.RingDIP, landmark.RingTip}
	littlePoints = digit{landmark.PinkyMCP, landmark.PinkyPIP, landmark.PinkyDIP, landmark.PinkyTip}
)

// Palm returns the three palm plane points. The knuckle order flips with
// handedness so both hands produce a consistently oriented normal.
func Palm(l landmark.List, side landmark.Side) [3]r3.Vec {
	if side == landmark.Right {
		return [3]r3.Vec{l.Vec(landmark.Wrist), l.Vec(landmark.PinkyMCP), l.Vec(landmark.IndexMCP)}
	}
	return [3]r3.Vec{l.Vec(landmark.Wrist), l.Vec(landmark.IndexMCP), l.Vec(landmark.PinkyMCP)}
}

// Solve computes the rigged hand. The list must hold exactly 21 points.
func Solve(l landmark.List, side landmark.Side) (Hand, error) {
	if err := l.RequireExactly(landmark.HandLandmarks, "hand"); err != nil {
		return Hand{}, err
	}

	palm := Palm(l, side)
	rotation := vecmath.PlaneRotation(palm[0], palm[1], palm[2])
	rotation.Y = rotation.Z - wristYawOffset

	roll, pitch, yaw := vecmath.PlaneAngles(palm[0], palm[1], palm[2])

	raw := Hand{
		Side:       side,
		Palm:       palm,
		Wrist:      rotation,
		Quaternion: mgl64.AnglesToQuat(yaw, pitch, roll, mgl64.YXZ),
		Thumb:      flexion(l, thumbPoints),
		Index:      flexion(l, indexPoints),
		Middle:     flexion(l, middlePoints),
		Ring:       flexion(l, ringPoints),
		Little:     flexion(l, littlePoints),
	}

	return rigFingers(raw, side), nil
}

// flexion measures the bend at each joint of a digit. Only Z is set.
func flexion(l landmark.List, d digit) Finger {
	joint := func(a, b, c int) r3.Vec {
		return r3.Vec{Z: vecmath.AngleBetween3DCoords(l.Vec(a), l.Vec(b), l.Vec(c))}
	}

	return Finger{
		Proximal:     joint(landmark.Wrist, d[0], d[1]),
		Intermediate: joint(d[0], d[1], d[2]),
		Distal:       joint(d[1], d[2], d[3]),
	}
}
