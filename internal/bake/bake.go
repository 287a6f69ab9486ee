// Package bake solves every recorded frame of a stored session into rig
// results.
package bake

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ayusman/rigkit/internal/landmark"
	"github.com/ayusman/rigkit/internal/rig"
	"github.com/ayusman/rigkit/internal/store"
)

// Options tune a bake run.
type Options struct {
	// BatchSize is how many frames are read from the store at once.
	BatchSize int
	// Workers bounds how many frames are solved in parallel.
	Workers int
	// Progress, if set, is called after each batch with the number of
	// frames solved so far and the session total.
	Progress func(done, total int)
}

// DefaultOptions reads 256 frames per batch and solves 4 at a time.
func DefaultOptions() Options {
	return Options{
		BatchSize: 256,
		Workers:   4,
	}
}

// Report summarizes a bake run.
type Report struct {
	SessionID string `json:"sessionId"`
	Frames    int    `json:"frames"`
	// Rejected counts frames whose landmarks failed validation. They are
	// baked as a resting rig (or an empty one with resting fill off).
	Rejected int `json:"rejected"`
}

// Session bakes every frame of the session and replaces its stored results.
func Session(ctx context.Context, st *store.Store, solver *rig.Solver, sessionID string, opts Options) (Report, error) {
	def := DefaultOptions()
	if opts.BatchSize <= 0 {
		opts.BatchSize = def.BatchSize
	}
	if opts.Workers <= 0 {
		opts.Workers = def.Workers
	}

	session, err := st.Sessions().GetByID(sessionID)
	if err != nil {
		return Report{}, err
	}

	report := Report{SessionID: session.ID}
	results := make([]rig.Result, 0, session.Frames)

	for from := 0; ; from += opts.BatchSize {
		frames, err := st.Frames().List(sessionID, from, opts.BatchSize)
		if err != nil {
			return report, fmt.Errorf("load frames: %w", err)
		}
		if len(frames) == 0 {
			break
		}

		batch, rejected, err := solveBatch(ctx, solver, frames, opts.Workers)
		if err != nil {
			return report, err
		}
		results = append(results, batch...)
		report.Rejected += rejected

		if opts.Progress != nil {
			opts.Progress(len(results), session.Frames)
		}
		if len(frames) < opts.BatchSize {
			break
		}
	}

	if err := st.Results().Replace(sessionID, results); err != nil {
		return report, fmt.Errorf("save results: %w", err)
	}

	report.Frames = len(results)
	return report, nil
}

// solveBatch solves frames in parallel. Landmark validation errors reject
// the frame only; anything else aborts the batch.
func solveBatch(ctx context.Context, solver *rig.Solver, frames []landmark.Frame, workers int) ([]rig.Result, int, error) {
	results := make([]rig.Result, len(frames))
	rejected := make([]bool, len(frames))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, frame := range frames {
		g.Go(func() error {
			res, err := solver.Solve(ctx, frame)
			if Rejectable(err) {
				res = rejectedResult(solver.Config(), frame.Timestamp)
				rejected[i] = true
				err = nil
			}
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	n := 0
	for _, r := range rejected {
		if r {
			n++
		}
	}
	return results, n, nil
}

// Rejectable reports whether err comes from bad landmark input rather than
// from the run itself.
func Rejectable(err error) bool {
	return errors.Is(err, landmark.ErrTopology) || errors.Is(err, rig.ErrDuplicateHand)
}

func rejectedResult(cfg rig.Config, timestamp int64) rig.Result {
	if !cfg.FillResting {
		return rig.Result{Timestamp: timestamp}
	}
	res := rig.Resting()
	res.Timestamp = timestamp
	return res
}
