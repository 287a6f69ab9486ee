package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// GateConfig tunes the change gate.
type GateConfig struct {
	// Threshold is the percentage of pixels that must change before a frame
	// is sent to the tracker again.
	Threshold float64 `json:"threshold"`
	// MaxSkips forces a tracker pass after this many still frames so slow
	// drift is never held forever. Zero disables skipping.
	MaxSkips int `json:"maxSkips"`
}

// DefaultGateConfig skips frames that changed by less than half a percent,
// with a forced refresh every 15 frames.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		Threshold: 0.5,
		MaxSkips:  15,
	}
}

const (
	// blurSize is the Gaussian kernel used to suppress sensor noise.
	blurSize = 21
	// diffThreshold is the per-pixel intensity change that counts as motion.
	diffThreshold = 25
)

// ChangeGate decides whether a frame differs enough from the last tracked
// frame to be worth running through the tracker. When the subject holds
// still the pipeline re-emits its previous rig instead.
type ChangeGate struct {
	config   GateConfig
	prevGray gocv.Mat
	primed   bool
	skipped  int
	mu       sync.Mutex
}

// NewChangeGate creates a ChangeGate. A non-positive threshold falls back to
// the default.
func NewChangeGate(config GateConfig) *ChangeGate {
	if config.Threshold <= 0 {
		config.Threshold = DefaultGateConfig().Threshold
	}
	return &ChangeGate{
		config:   config,
		prevGray: gocv.NewMat(),
	}
}

// Changed reports whether frame should be tracked, along with the
// percentage of pixels that changed since the last tracked frame.
//
// The first frame after a reset is always tracked. A still frame is
// skipped unless MaxSkips still frames have already been skipped in a row.
// The baseline only moves when a frame is tracked, so slow motion
// accumulates until it crosses the threshold.
func (g *ChangeGate) Changed(frame *gocv.Mat) (bool, float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: blurSize, Y: blurSize}, 0, 0, gocv.BorderDefault)

	if !g.primed || blurred.Rows() != g.prevGray.Rows() || blurred.Cols() != g.prevGray.Cols() {
		blurred.CopyTo(&g.prevGray)
		g.primed = true
		g.skipped = 0
		return true, 100
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, g.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, diffThreshold, 255, gocv.ThresholdBinary)

	changed := float64(gocv.CountNonZero(thresh)) / float64(thresh.Rows()*thresh.Cols()) * 100.0

	if changed <= g.config.Threshold && g.skipped < g.config.MaxSkips {
		g.skipped++
		return false, changed
	}

	blurred.CopyTo(&g.prevGray)
	g.skipped = 0
	return true, changed
}

// Reset forgets the baseline so the next frame is always tracked.
func (g *ChangeGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.release()
}

// Close releases the stored baseline.
func (g *ChangeGate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.release()
}

func (g *ChangeGate) release() {
	if !g.prevGray.Empty() {
		g.prevGray.Close()
		g.prevGray = gocv.NewMat()
	}
	g.primed = false
	g.skipped = 0
}
