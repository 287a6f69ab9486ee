package landmark

// Hand landmark indices following the MediaPipe hand convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist         = 0
	ThumbCMC      = 1
	ThumbMCP      = 2
	ThumbIP       = 3
	ThumbTip      = 4
	IndexMCP      = 5
	IndexPIP      = 6
	IndexDIP      = 7
	IndexTip      = 8
	MiddleMCP     = 9
	MiddlePIP     = 10
	MiddleDIP     = 11
	MiddleTip     = 12
	RingMCP       = 13
	RingPIP       = 14
	RingDIP       = 15
	RingTip       = 16
	PinkyMCP      = 17
	PinkyPIP      = 18
	PinkyDIP      = 19
	PinkyTip      = 20
	HandLandmarks = 21
)

// Body pose landmark indices (MediaPipe BlazePose, 33 points). Only the
// points the pose solver reads are named.
const (
	PoseLeftShoulder  = 11
	PoseRightShoulder = 12
	PoseLeftElbow     = 13
	PoseRightElbow    = 14
	PoseLeftWrist     = 15
	PoseRightWrist    = 16
	PoseLeftPinky     = 17
	PoseRightPinky    = 18
	PoseLeftIndex     = 19
	PoseRightIndex    = 20
	PoseLeftHip       = 23
	PoseRightHip      = 24
	PoseLeftKnee      = 25
	PoseRightKnee     = 26
	PoseLeftAnkle     = 27
	PoseRightAnkle    = 28
	PoseLandmarks     = 33
)

// Face mesh sizes. The 478 point mesh appends ten iris points (468-477).
const (
	FaceMeshLandmarks = 468
	FaceIrisLandmarks = 478
)

// HasIris reports whether a face list carries the refined iris points.
func HasIris(l List) bool {
	return len(l) == FaceIrisLandmarks
}
