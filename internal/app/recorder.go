package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ayusman/rigkit/internal/landmark"
	"github.com/ayusman/rigkit/internal/store"
)

var (
	// ErrNotRecording is returned when no recording is in progress.
	ErrNotRecording = errors.New("not recording")
	// ErrRecording is returned when a recording is already in progress.
	ErrRecording = errors.New("already recording")
	// ErrNoStore is returned when recording without a database.
	ErrNoStore = errors.New("recording needs a store")
)

// flushEvery is how many frames are buffered before a write.
const flushEvery = 30

// Recorder appends pipeline frames to a stored session.
type Recorder struct {
	store     *store.Store
	mu        sync.Mutex
	sessionID string
	buf       []landmark.Frame
	written   int
}

// NewRecorder creates a Recorder writing to s. A nil store can never
// record.
func NewRecorder(s *store.Store) *Recorder {
	return &Recorder{store: s}
}

// Start begins recording into an existing session.
func (r *Recorder) Start(sessionID string) error {
	if r.store == nil {
		return ErrNoStore
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sessionID != "" {
		return fmt.Errorf("%w: session %s", ErrRecording, r.sessionID)
	}
	if _, err := r.store.Sessions().GetByID(sessionID); err != nil {
		return err
	}

	r.sessionID = sessionID
	r.buf = r.buf[:0]
	r.written = 0
	return nil
}

// Add buffers one frame, writing the buffer out when it fills.
func (r *Recorder) Add(frame landmark.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sessionID == "" {
		return ErrNotRecording
	}

	r.buf = append(r.buf, frame)
	if len(r.buf) < flushEvery {
		return nil
	}
	return r.flush()
}

// Stop writes any buffered frames and ends the recording. It returns how
// many frames were recorded. If the write fails the recording stays open
// with its buffer intact so Stop can be retried.
func (r *Recorder) Stop() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sessionID == "" {
		return 0, ErrNotRecording
	}

	if err := r.flush(); err != nil {
		return r.written, err
	}
	r.sessionID = ""
	return r.written, nil
}

// Recording returns the session being recorded, if any.
func (r *Recorder) Recording() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessionID, r.sessionID != ""
}

func (r *Recorder) flush() error {
	if len(r.buf) == 0 {
		return nil
	}
	if _, err := r.store.Frames().Append(r.sessionID, r.buf); err != nil {
		return fmt.Errorf("record frames: %w", err)
	}
	r.written += len(r.buf)
	r.buf = r.buf[:0]
	return nil
}
