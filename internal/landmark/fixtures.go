package landmark

// Synthetic landmark sets with hand-placed points. They are shared by the
// solver tests and the mock detector.

// NeutralFace returns a front-facing face mesh with open eyes, relaxed
// brows, centered pupils and a slightly open mouth. With iris set the list
// has the 478 point layout, otherwise 468.
func NeutralFace(iris bool) List {
	n := FaceMeshLandmarks
	if iris {
		n = FaceIrisLandmarks
	}
	l := make(List, n)
	for i := range l {
		l[i] = Landmark{X: 0.5, Y: 0.5, Z: 0, Visibility: 1}
	}

	set := func(i int, x, y float64) {
		l[i] = Landmark{X: x, Y: y, Z: 0, Visibility: 1}
	}

	// Face box
	set(21, 0.35, 0.30)
	set(251, 0.65, 0.30)
	set(397, 0.60, 0.75)
	set(172, 0.40, 0.75)

	// Left eye: 0.08 wide, 0.02 lid opening
	set(130, 0.38, 0.42)
	set(133, 0.46, 0.42)
	set(160, 0.40, 0.41)
	set(159, 0.42, 0.41)
	set(158, 0.44, 0.41)
	set(144, 0.40, 0.43)
	set(145, 0.42, 0.43)
	set(153, 0.44, 0.43)

	// Right eye, mirrored
	set(263, 0.62, 0.42)
	set(362, 0.54, 0.42)
	set(387, 0.60, 0.41)
	set(386, 0.58, 0.41)
	set(385, 0.56, 0.41)
	set(373, 0.60, 0.43)
	set(374, 0.58, 0.43)
	set(380, 0.56, 0.43)

	// Left brow outline: 0.1 wide, 0.126 tall
	set(35, 0.36, 0.40)
	set(244, 0.46, 0.40)
	set(63, 0.38, 0.34)
	set(105, 0.41, 0.34)
	set(66, 0.44, 0.34)
	set(229, 0.38, 0.466)
	set(230, 0.41, 0.466)
	set(231, 0.44, 0.466)

	// Right brow outline
	set(265, 0.64, 0.40)
	set(464, 0.54, 0.40)
	set(293, 0.62, 0.34)
	set(334, 0.59, 0.34)
	set(296, 0.56, 0.34)
	set(449, 0.62, 0.466)
	set(450, 0.59, 0.466)
	set(451, 0.56, 0.466)

	// Mouth: 0.12 wide, 0.03 open
	set(13, 0.50, 0.62)
	set(14, 0.50, 0.65)
	set(61, 0.44, 0.635)
	set(291, 0.56, 0.635)

	if iris {
		// Iris centers sit where the pupil bias cancels out.
		for i := 468; i < 473; i++ {
			set(i, 0.42, 0.414)
		}
		for i := 473; i < 478; i++ {
			set(i, 0.58, 0.414)
		}
	}

	return l
}

// ClosedEyesFace returns NeutralFace(true) with both lids shut.
func ClosedEyesFace() List {
	l := NeutralFace(true)
	for _, i := range []int{160, 159, 158, 144, 145, 153, 387, 386, 385, 373, 374, 380} {
		l[i].Y = 0.42
	}
	return l
}

// ThumbsUpHand returns a right hand with the thumb extended upward while
// the other fingers are curled.
func ThumbsUpHand() List {
	l := make(List, HandLandmarks)

	l[Wrist] = Landmark{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb extended upward (pointing up, Y decreases going up)
	l[ThumbCMC] = Landmark{X: 0.55, Y: 0.75, Z: 0.0}
	l[ThumbMCP] = Landmark{X: 0.58, Y: 0.65, Z: 0.0}
	l[ThumbIP] = Landmark{X: 0.58, Y: 0.50, Z: 0.0}
	l[ThumbTip] = Landmark{X: 0.58, Y: 0.35, Z: 0.0}

	// Index finger curled (knuckles close together, tip near palm)
	l[IndexMCP] = Landmark{X: 0.55, Y: 0.70, Z: -0.02}
	l[IndexPIP] = Landmark{X: 0.55, Y: 0.68, Z: -0.05}
	l[IndexDIP] = Landmark{X: 0.52, Y: 0.70, Z: -0.04}
	l[IndexTip] = Landmark{X: 0.50, Y: 0.72, Z: -0.02}

	l[MiddleMCP] = Landmark{X: 0.50, Y: 0.68, Z: -0.02}
	l[MiddlePIP] = Landmark{X: 0.50, Y: 0.66, Z: -0.05}
	l[MiddleDIP] = Landmark{X: 0.47, Y: 0.68, Z: -0.04}
	l[MiddleTip] = Landmark{X: 0.45, Y: 0.70, Z: -0.02}

	l[RingMCP] = Landmark{X: 0.45, Y: 0.70, Z: -0.02}
	l[RingPIP] = Landmark{X: 0.45, Y: 0.68, Z: -0.05}
	l[RingDIP] = Landmark{X: 0.42, Y: 0.70, Z: -0.04}
	l[RingTip] = Landmark{X: 0.40, Y: 0.72, Z: -0.02}

	l[PinkyMCP] = Landmark{X: 0.40, Y: 0.72, Z: -0.02}
	l[PinkyPIP] = Landmark{X: 0.40, Y: 0.70, Z: -0.05}
	l[PinkyDIP] = Landmark{X: 0.37, Y: 0.72, Z: -0.04}
	l[PinkyTip] = Landmark{X: 0.35, Y: 0.74, Z: -0.02}

	return l
}

// OpenPalmHand returns a right hand with all fingers extended. The palm is
// slightly tilted toward the camera so its plane is well defined.
func OpenPalmHand() List {
	l := make(List, HandLandmarks)

	l[Wrist] = Landmark{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb extended to the side
	l[ThumbCMC] = Landmark{X: 0.55, Y: 0.75, Z: 0.02}
	l[ThumbMCP] = Landmark{X: 0.62, Y: 0.70, Z: 0.03}
	l[ThumbIP] = Landmark{X: 0.68, Y: 0.65, Z: 0.03}
	l[ThumbTip] = Landmark{X: 0.73, Y: 0.60, Z: 0.03}

	l[IndexMCP] = Landmark{X: 0.55, Y: 0.68, Z: 0.02}
	l[IndexPIP] = Landmark{X: 0.57, Y: 0.55, Z: 0.01}
	l[IndexDIP] = Landmark{X: 0.58, Y: 0.45, Z: 0.0}
	l[IndexTip] = Landmark{X: 0.58, Y: 0.35, Z: 0.0}

	// Middle finger is the longest
	l[MiddleMCP] = Landmark{X: 0.50, Y: 0.66, Z: 0.0}
	l[MiddlePIP] = Landmark{X: 0.50, Y: 0.52, Z: 0.0}
	l[MiddleDIP] = Landmark{X: 0.50, Y: 0.40, Z: 0.0}
	l[MiddleTip] = Landmark{X: 0.50, Y: 0.28, Z: 0.0}

	l[RingMCP] = Landmark{X: 0.45, Y: 0.68, Z: -0.01}
	l[RingPIP] = Landmark{X: 0.43, Y: 0.55, Z: -0.01}
	l[RingDIP] = Landmark{X: 0.42, Y: 0.45, Z: 0.0}
	l[RingTip] = Landmark{X: 0.42, Y: 0.35, Z: 0.0}

	l[PinkyMCP] = Landmark{X: 0.40, Y: 0.70, Z: -0.03}
	l[PinkyPIP] = Landmark{X: 0.37, Y: 0.60, Z: -0.02}
	l[PinkyDIP] = Landmark{X: 0.35, Y: 0.50, Z: -0.01}
	l[PinkyTip] = Landmark{X: 0.34, Y: 0.42, Z: 0.0}

	return l
}

// StandingPose returns a subject facing the camera with both arms raised
// halfway, in both world (metric, hip-centered, y down) and normalized
// image space. Every point is fully visible.
func StandingPose() Pose {
	world := make(List, PoseLandmarks)
	norm := make(List, PoseLandmarks)
	for i := range world {
		world[i] = Landmark{X: 0, Y: -0.6, Z: 0, Visibility: 0.99}
		norm[i] = Landmark{X: 0.5, Y: 0.2, Z: 0, Visibility: 0.99}
	}

	setWorld := func(i int, x, y, z float64) {
		world[i] = Landmark{X: x, Y: y, Z: z, Visibility: 0.99}
	}
	setNorm := func(i int, x, y float64) {
		norm[i] = Landmark{X: x, Y: y, Visibility: 0.99}
	}

	setWorld(PoseLeftShoulder, 0.18, -0.45, 0)
	setWorld(PoseRightShoulder, -0.18, -0.45, 0)
	setWorld(PoseLeftElbow, 0.40, -0.30, -0.05)
	setWorld(PoseRightElbow, -0.40, -0.30, -0.05)
	setWorld(PoseLeftWrist, 0.55, -0.40, -0.12)
	setWorld(PoseRightWrist, -0.55, -0.40, -0.12)
	setWorld(PoseLeftPinky, 0.60, -0.40, -0.13)
	setWorld(PoseRightPinky, -0.60, -0.40, -0.13)
	setWorld(PoseLeftIndex, 0.61, -0.43, -0.14)
	setWorld(PoseRightIndex, -0.61, -0.43, -0.14)
	setWorld(PoseLeftHip, 0.10, 0, 0)
	setWorld(PoseRightHip, -0.10, 0, 0)
	setWorld(PoseLeftKnee, 0.11, 0.40, -0.03)
	setWorld(PoseRightKnee, -0.11, 0.40, -0.03)
	setWorld(PoseLeftAnkle, 0.11, 0.80, 0.02)
	setWorld(PoseRightAnkle, -0.11, 0.80, 0.02)

	setNorm(PoseLeftShoulder, 0.58, 0.35)
	setNorm(PoseRightShoulder, 0.42, 0.35)
	setNorm(PoseLeftElbow, 0.68, 0.42)
	setNorm(PoseRightElbow, 0.32, 0.42)
	setNorm(PoseLeftWrist, 0.75, 0.38)
	setNorm(PoseRightWrist, 0.25, 0.38)
	setNorm(PoseLeftHip, 0.55, 0.60)
	setNorm(PoseRightHip, 0.45, 0.60)
	setNorm(PoseLeftKnee, 0.555, 0.78)
	setNorm(PoseRightKnee, 0.445, 0.78)
	setNorm(PoseLeftAnkle, 0.555, 0.95)
	setNorm(PoseRightAnkle, 0.445, 0.95)

	return Pose{World: world, Normalized: norm}
}
