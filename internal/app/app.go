// Package app wires the live tracking pipeline: camera frames go through the
// change gate and the landmark detector into the rig solver, and results go
// out to subscribers and the session recorder.
package app

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/ayusman/rigkit/internal/capture"
	"github.com/ayusman/rigkit/internal/detector"
	"github.com/ayusman/rigkit/internal/rig"
	"github.com/ayusman/rigkit/internal/store"
)

// Config holds configuration options for the application.
type Config struct {
	Store    *store.Store
	Camera   capture.Config
	Gate     capture.GateConfig
	Detector detector.Config
	// MockDetector skips the MediaPipe service and tracks nothing.
	MockDetector bool
}

// DefaultConfig returns the default camera, gate and detector settings.
func DefaultConfig() Config {
	return Config{
		Camera:   capture.DefaultConfig(),
		Gate:     capture.DefaultGateConfig(),
		Detector: detector.DefaultConfig(),
	}
}

// SolverSource hands out the solver for the current settings.
type SolverSource interface {
	Solver() *rig.Solver
}

// App is the live pipeline.
type App struct {
	config      Config
	camera      capture.Camera
	gate        *capture.ChangeGate
	detector    detector.Detector
	solvers     SolverSource
	recorder    *Recorder
	subscribers []func(rig.Result)
	enabled     bool
	mu          sync.RWMutex
	cancel      context.CancelFunc
	done        chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config, solvers SolverSource) *App {
	a := &App{
		config:   config,
		camera:   capture.NewCamera(config.Camera),
		gate:     capture.NewChangeGate(config.Gate),
		solvers:  solvers,
		recorder: NewRecorder(config.Store),
		enabled:  true,
	}

	if config.MockDetector {
		a.detector = detector.NewMockDetector()
		return a
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(config.Detector); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe holistic tracking")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// Subscribe registers fn to receive every emitted rig result. Callbacks run
// on the pipeline goroutine and must not block.
func (a *App) Subscribe(fn func(rig.Result)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.subscribers = append(a.subscribers, fn)
}

// SetEnabled pauses or resumes tracking without closing the camera.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the landmark detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera sets the frame source. It must be called before Start.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Start opens the camera and begins the pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.cancel != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.done = make(chan struct{})
	go a.runPipeline(ctx, a.done)

	log.Println("Tracking pipeline started")
	return nil
}

// Stop halts the pipeline, flushes any recording and releases resources.
func (a *App) Stop() error {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	var errs []error
	if _, err := a.recorder.Stop(); err != nil && !errors.Is(err, ErrNotRecording) {
		errs = append(errs, err)
	}
	if err := a.camera.Close(); err != nil {
		errs = append(errs, err)
	}
	a.gate.Close()
	if d := a.Detector(); d != nil {
		if err := d.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	log.Println("Tracking pipeline stopped")
	return errors.Join(errs...)
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Recorder returns the session recorder.
func (a *App) Recorder() *Recorder {
	return a.recorder
}

// Detector returns the landmark detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

func (a *App) emit(result rig.Result) {
	a.mu.RLock()
	subscribers := a.subscribers
	a.mu.RUnlock()

	for _, fn := range subscribers {
		fn(result)
	}
}
