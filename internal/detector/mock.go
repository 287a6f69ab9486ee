package detector

import (
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/rigkit/internal/landmark"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	mu    sync.Mutex
	frame landmark.Frame
	err   error
	calls int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetFrame sets the landmarks that will be returned by Detect.
func (m *MockDetector) SetFrame(frame landmark.Frame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frame = frame
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect has been called.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the pre-configured frame or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (landmark.Frame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return landmark.Frame{}, m.err
	}
	return m.frame, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// FullBodyFrame returns a preset frame with a neutral face, a right open
// palm, a left thumbs up and a standing pose.
func FullBodyFrame() landmark.Frame {
	pose := landmark.StandingPose()
	return landmark.Frame{
		Face: landmark.NeutralFace(true),
		Hands: []landmark.Hand{
			{Side: landmark.Right, Points: landmark.OpenPalmHand(), Score: 0.95},
			{Side: landmark.Left, Points: landmark.ThumbsUpHand().Mirror(), Score: 0.95},
		},
		Pose: &pose,
	}
}
