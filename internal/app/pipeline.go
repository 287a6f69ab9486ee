package app

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/ayusman/rigkit/internal/capture"
	"github.com/ayusman/rigkit/internal/landmark"
	"github.com/ayusman/rigkit/internal/rig"
)

// pipelineState is owned by the pipeline goroutine.
type pipelineState struct {
	lastFrame  landmark.Frame
	lastResult rig.Result
	primed     bool
	// skipped counts still frames since the last tracker pass, for logging.
	skipped int
}

// runPipeline reads frames at the camera rate until ctx is cancelled.
//
// Pipeline logic:
// 1. Read a frame from the camera
// 2. If the change gate says the scene is still, re-emit the last result
// 3. Otherwise run the landmark detector and the rig solver
// 4. Emit the result to subscribers and record the landmarks
func (a *App) runPipeline(ctx context.Context, done chan struct{}) {
	defer close(done)

	var st pipelineState
	fps := a.Camera().FPS()
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			if err := a.step(ctx, &st); err != nil {
				if errors.Is(err, capture.ErrEndOfStream) {
					log.Println("Camera stream ended")
					return
				}
				if !errors.Is(err, context.Canceled) {
					log.Printf("Pipeline frame error: %v", err)
				}
			}

			// Follow FPS changes made through the camera.
			if f := a.Camera().FPS(); f != fps && f > 0 {
				fps = f
				ticker.Reset(time.Second / time.Duration(fps))
			}
		}
	}
}

// step runs one camera frame through the pipeline.
func (a *App) step(ctx context.Context, st *pipelineState) error {
	frame, err := a.Camera().ReadFrame()
	if err != nil {
		return err
	}
	defer frame.Close()

	now := time.Now().UnixMilli()

	if changed, percent := a.gate.Changed(frame); !changed && st.primed {
		st.skipped++
		if st.skipped == 1 {
			log.Printf("Scene still (%.2f%% changed), reusing last rig", percent)
		}
		st.lastFrame.Timestamp = now
		st.lastResult.Timestamp = now
		a.publish(st.lastFrame, st.lastResult)
		return nil
	}

	lf, err := a.Detector().Detect(frame)
	if err != nil {
		// Track again on the next frame even if it looks still.
		a.gate.Reset()
		return err
	}
	if lf.Timestamp == 0 {
		lf.Timestamp = now
	}

	result, err := a.solvers.Solver().Solve(ctx, lf)
	if err != nil {
		a.gate.Reset()
		return err
	}

	if st.skipped > 0 {
		log.Printf("Scene moving after %d still frames", st.skipped)
	}
	st.lastFrame, st.lastResult = lf, result
	st.primed = true
	st.skipped = 0

	a.publish(lf, result)
	return nil
}

func (a *App) publish(lf landmark.Frame, result rig.Result) {
	a.emit(result)
	if err := a.recorder.Add(lf); err != nil && !errors.Is(err, ErrNotRecording) {
		log.Printf("Recording frame failed: %v", err)
	}
}
