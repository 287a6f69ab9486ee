// Package pose turns 33 body landmarks into arm, leg, spine and hip
// rotations, falling back to the resting pose for limbs out of frame.
package pose

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ayusman/rigkit/internal/landmark"
)

// Arm holds the rig rotations of one arm.
type Arm struct {
	Upper r3.Vec `json:"upper"`
	Lower r3.Vec `json:"lower"`
	Hand  r3.Vec `json:"hand"`
}

// Leg holds the rig rotations of one leg.
type Leg struct {
	Upper r3.Vec `json:"upper"`
	Lower r3.Vec `json:"lower"`
}

// Hips is the root of the body rig.
type Hips struct {
	// Rotation is in radians.
	Rotation r3.Vec `json:"rotation"`
	// Position is the hip center relative to the frame, with depth taken
	// from the apparent spine length.
	Position r3.Vec `json:"position"`
	// WorldPosition is Position with a perspective correction, meant for
	// translating the avatar root.
	WorldPosition r3.Vec `json:"worldPosition"`
}

// Pose is the full body descriptor for one frame. Sides are the avatar's,
// mirrored from the subject facing the camera.
type Pose struct {
	RightArm Arm    `json:"rightArm"`
	LeftArm  Arm    `json:"leftArm"`
	RightLeg Leg    `json:"rightLeg"`
	LeftLeg  Leg    `json:"leftLeg"`
	Spine    r3.Vec `json:"spine"`
	Hips     Hips   `json:"hips"`
}

// Options tunes Solve.
type Options struct {
	// EnableLegs computes leg rotations. When false the legs stay at rest.
	EnableLegs bool `json:"enableLegs"`
}

// DefaultOptions returns Options with legs enabled.
func DefaultOptions() Options {
	return Options{EnableLegs: true}
}

// Occlusion cutoffs. A limb is out of frame when its anchor point drops
// below the world-space floor, loses visibility, or (hands only) reaches
// the bottom edge of the image.
const (
	offscreenWorldY     = 0.1
	handMinVisibility   = 0.23
	handMaxNormalizedY  = 0.995
	footMinVisibility   = 0.63
	footMaxHipsPosition = -0.4
)

// limb maps one avatar side onto tracker landmarks. The avatar mirrors the
// subject, so the avatar's right side is built from the subject's left.
type limb struct {
	shoulder, otherShoulder int
	elbow, wrist            int
	pinky, index            int
	hip, knee, ankle        int
}

var limbs = map[landmark.Side]limb{
	landmark.Right: {
		shoulder: landmark.PoseLeftShoulder, otherShoulder: landmark.PoseRightShoulder,
		elbow: landmark.PoseLeftElbow, wrist: landmark.PoseLeftWrist,
		pinky: landmark.PoseLeftPinky, index: landmark.PoseLeftIndex,
		hip: landmark.PoseLeftHip, knee: landmark.PoseLeftKnee, ankle: landmark.PoseLeftAnkle,
	},
	landmark.Left: {
		shoulder: landmark.PoseRightShoulder, otherShoulder: landmark.PoseLeftShoulder,
		elbow: landmark.PoseRightElbow, wrist: landmark.PoseRightWrist,
		pinky: landmark.PoseRightPinky, index: landmark.PoseRightIndex,
		hip: landmark.PoseRightHip, knee: landmark.PoseRightKnee, ankle: landmark.PoseRightAnkle,
	},
}

// Solve computes the body descriptor. Either landmark variant may be
// missing: rotations use World when present and Normalized otherwise, and
// the hip position uses Normalized when present and World otherwise.
// Each present variant must hold 33 points.
func Solve(in landmark.Pose, opts Options) (Pose, error) {
	if in.Empty() {
		return Pose{}, fmt.Errorf("%w: pose needs world or normalized landmarks", landmark.ErrTopology)
	}
	if len(in.World) > 0 {
		if err := in.World.RequireAtLeast(landmark.PoseLandmarks, "pose world"); err != nil {
			return Pose{}, err
		}
	}
	if len(in.Normalized) > 0 {
		if err := in.Normalized.RequireAtLeast(landmark.PoseLandmarks, "pose normalized"); err != nil {
			return Pose{}, err
		}
	}

	world, image := in.World, in.Normalized
	if len(world) == 0 {
		world = image
	}
	if len(image) == 0 {
		image = world
	}

	rest := Resting()
	p := Pose{
		RightArm: calcArm(world, landmark.Right),
		LeftArm:  calcArm(world, landmark.Left),
		LeftLeg:  rest.LeftLeg,
		RightLeg: rest.RightLeg,
	}
	p.Hips, p.Spine = calcHips(world, image)

	if handOffscreen(in, landmark.Right) {
		p.RightArm = rest.RightArm
	}
	if handOffscreen(in, landmark.Left) {
		p.LeftArm = rest.LeftArm
	}

	if opts.EnableLegs {
		p.RightLeg = calcLeg(world, landmark.Right)
		p.LeftLeg = calcLeg(world, landmark.Left)

		// The tracker's left hip feeds the avatar's right leg.
		if footOffscreen(in, landmark.Right, p.Hips) {
			p.RightLeg = Leg{}
		}
		if footOffscreen(in, landmark.Left, p.Hips) {
			p.LeftLeg = Leg{}
		}
	}

	return p, nil
}

// handOffscreen reports whether the wrist of a side is out of frame. A
// missing landmark variant skips its check; missing visibility reads as 0.
func handOffscreen(in landmark.Pose, side landmark.Side) bool {
	i := limbs[side].wrist
	if len(in.World) > 0 {
		if in.World[i].Y > offscreenWorldY || in.World[i].Visibility < handMinVisibility {
			return true
		}
	}
	if len(in.Normalized) > 0 {
		if in.Normalized[i].Y > handMaxNormalizedY {
			return true
		}
		if len(in.World) == 0 && in.Normalized[i].Visibility < handMinVisibility {
			return true
		}
	}
	return false
}

// footOffscreen reports whether the hip anchoring a side's leg is out of
// frame, or the subject stands too close for the legs to be seen.
func footOffscreen(in landmark.Pose, side landmark.Side, hips Hips) bool {
	if hips.Position.Z > footMaxHipsPosition {
		return true
	}
	i := limbs[side].hip
	if len(in.World) > 0 {
		return in.World[i].Y > offscreenWorldY || in.World[i].Visibility < footMinVisibility
	}
	return in.Normalized[i].Visibility < footMinVisibility
}
