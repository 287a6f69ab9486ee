package landmark

// Hand is one tracked hand and the handedness the tracker assigned to it.
type Hand struct {
	Side   Side    `json:"handedness"`
	Points List    `json:"points"`
	Score  float64 `json:"score,omitempty"`
}

// Pose carries the body landmarks of one frame. World is metric and
// hip-centered, Normalized is image-relative. Either may be empty.
type Pose struct {
	World      List `json:"world,omitempty"`
	Normalized List `json:"normalized,omitempty"`
}

// Empty reports whether neither pose variant is present.
func (p *Pose) Empty() bool {
	return p == nil || (len(p.World) == 0 && len(p.Normalized) == 0)
}

// Frame is everything one tracker pass produced for a single video frame.
type Frame struct {
	Face      List   `json:"face,omitempty"`
	Hands     []Hand `json:"hands,omitempty"`
	Pose      *Pose  `json:"pose,omitempty"`
	Timestamp int64  `json:"timestamp"`
}
