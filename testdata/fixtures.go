// Package testdata provides recorded landmark sessions for tests.
package testdata

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/ayusman/rigkit/internal/landmark"
)

//go:embed sessions/*.json
var sessionsFS embed.FS

// Session is a recorded take as exported by the tracker.
type Session struct {
	Name   string           `json:"name"`
	FPS    float64          `json:"fps"`
	Frames []landmark.Frame `json:"frames"`
}

// LoadSession loads a recorded session by name.
//
// "wave" is twelve frames of a right open palm swinging ±25° about the
// wrist at 15 fps. Frame 7 is truncated to 20 hand points.
func LoadSession(name string) (Session, error) {
	data, err := sessionsFS.ReadFile("sessions/" + name + ".json")
	if err != nil {
		return Session{}, fmt.Errorf("load session %s: %w", name, err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("decode session %s: %w", name, err)
	}
	return s, nil
}
