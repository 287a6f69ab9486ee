// Package detector provides landmark tracking interfaces and the wire format
// spoken by the MediaPipe tracking service.
package detector

import (
	"encoding/json"
	"fmt"

	"github.com/ayusman/rigkit/internal/landmark"
)

// response is one JSON line from the tracking service.
type response struct {
	Face  []jsonPoint `json:"face"`
	Hands []jsonHand  `json:"hands"`
	Pose  *jsonPose   `json:"pose"`
	Error string      `json:"error"`
}

type jsonHand struct {
	Points     []jsonPoint `json:"points"`
	Handedness string      `json:"handedness"`
	Score      float64     `json:"score"`
}

type jsonPose struct {
	World      []jsonPoint `json:"world"`
	Normalized []jsonPoint `json:"normalized"`
}

type jsonPoint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
	Presence   float64 `json:"presence"`
}

func toList(points []jsonPoint) landmark.List {
	if len(points) == 0 {
		return nil
	}
	l := make(landmark.List, len(points))
	for i, p := range points {
		l[i] = landmark.Landmark{
			X:          p.X,
			Y:          p.Y,
			Z:          p.Z,
			Visibility: p.Visibility,
			Presence:   p.Presence,
		}
	}
	return l
}

// parseResponse decodes a service response line into a frame. Hands with
// an unknown handedness label are dropped.
func parseResponse(line []byte) (landmark.Frame, error) {
	var resp response
	if err := json.Unmarshal(line, &resp); err != nil {
		return landmark.Frame{}, fmt.Errorf("parse response: %w", err)
	}
	if resp.Error != "" {
		return landmark.Frame{}, fmt.Errorf("tracking service: %s", resp.Error)
	}

	frame := landmark.Frame{Face: toList(resp.Face)}

	for _, h := range resp.Hands {
		side, err := landmark.ParseSide(h.Handedness)
		if err != nil {
			continue
		}
		frame.Hands = append(frame.Hands, landmark.Hand{
			Side:   side,
			Points: toList(h.Points),
			Score:  h.Score,
		})
	}

	if resp.Pose != nil {
		p := &landmark.Pose{
			World:      toList(resp.Pose.World),
			Normalized: toList(resp.Pose.Normalized),
		}
		if !p.Empty() {
			frame.Pose = p
		}
	}

	return frame, nil
}
