package detector

import (
	"gocv.io/x/gocv"

	"github.com/ayusman/rigkit/internal/landmark"
)

// Detector defines the interface for landmark tracking implementations.
type Detector interface {
	// Detect analyzes a video frame and returns the tracked landmarks.
	// Regions that were not found are left empty.
	Detect(frame *gocv.Mat) (landmark.Frame, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for landmark tracking.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int `json:"maxHands"`

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64 `json:"minConfidence"`

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64 `json:"minTrackingConf"`

	// Face, Hands and Pose select the tracked regions.
	Face  bool `json:"face"`
	Hands bool `json:"hands"`
	Pose  bool `json:"pose"`

	// RefineFace requests the 478 point mesh with iris landmarks.
	RefineFace bool `json:"refineFace"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:        2,
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
		Face:            true,
		Hands:           true,
		Pose:            true,
		RefineFace:      true,
	}
}
